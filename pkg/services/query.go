package services

import (
	"net/url"
	"strconv"
	"strings"
)

// NoLimit is the ListQuery.Limit of a request without a usable limit.
const NoLimit = -1

// ListQuery is what a request to the articles endpoint asks for.
type ListQuery struct {
	Categories []string // empty means every category
	Limit      int
}

// ParseQuery splits a raw query string into key/value pairs. Pairs without
// "=" are ignored and a repeated key keeps its last value. Keys and values
// are percent-decoded; one that fails to decode is kept as written.
func ParseQuery(raw string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(raw, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		params[unescape(key)] = unescape(value)
	}
	return params
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// ParseListQuery reads "categories" and "limit" from a raw query string.
func ParseListQuery(raw string) ListQuery {
	params := ParseQuery(raw)
	q := ListQuery{Limit: NoLimit}

	for _, name := range strings.Split(params["categories"], ",") {
		if name != "" {
			q.Categories = append(q.Categories, name)
		}
	}

	if v, ok := params["limit"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Limit = n
		}
	}
	return q
}

// Includes reports whether category passes the filter.
func (q ListQuery) Includes(category string) bool {
	if len(q.Categories) == 0 {
		return true
	}
	for _, c := range q.Categories {
		if c == category {
			return true
		}
	}
	return false
}

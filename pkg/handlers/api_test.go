package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testSite) fixture(t *testing.T) {
	s.writeFile(t, "news/tech/go-release/manifest.txt", "title = Go release\ndate = 2024-10-02\npicture = cover.png\n")
	s.writeFile(t, "news/tech/go-release/cover.png", "png")
	s.writeFile(t, "news/tech/broken/manifest.txt", "title = Broken\ndate = yesterday\n")
	s.writeFile(t, "news/presentations/keynote/manifest.txt", "title = Keynote\ndate = 2023-15-06\n")
	s.writeFile(t, "news/presentations/untitled/manifest.txt", "date = 2024-01-01\n")
	s.writeFile(t, "news/publications/paper/manifest.txt", "title = Paper\ndate = 2024-05-03\npage = https://arxiv.org/abs/1\npicture = thumb.png\n")
	s.writeFile(t, "news/publications/survey/manifest.txt", "title = Survey\ndate = 2022-28-12\n")
}

func decodeArticles(t *testing.T, body string) []map[string]string {
	t.Helper()
	var out []map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func articleTitles(articles []map[string]string) []string {
	out := []string{}
	for _, a := range articles {
		out = append(out, a["title"])
	}
	return out
}

func TestListArticles(t *testing.T) {
	site := newTestSite(t)
	site.fixture(t)

	w := site.get("/api/articles")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	articles := decodeArticles(t, w.Body.String())
	assert.Equal(t, []string{"Paper", "Go release", "Keynote", "Survey"}, articleTitles(articles))

	assert.Equal(t, map[string]string{
		"title":          "Go release",
		"date":           "2024-10-02",
		"formatted_date": "Feb 10, 2024",
		"picture_url":    "/news/tech/go-release/cover.png",
		"category":       "tech",
		"link":           "/news/tech/go-release/",
	}, articles[1])
	assert.Equal(t, "/static/image-not-found.png", articles[2]["picture_url"])
}

func TestListArticles_Query(t *testing.T) {
	site := newTestSite(t)
	site.fixture(t)

	tests := []struct {
		path   string
		titles []string
	}{
		{"/api/articles/", []string{"Paper", "Go release", "Keynote", "Survey"}},
		{"/api/articles?categories=tech,publications", []string{"Paper", "Go release", "Survey"}},
		{"/api/articles?limit=2", []string{"Paper", "Go release"}},
		{"/api/articles?limit=1&categories=presentations", []string{"Keynote"}},
		{"/api/articles?categories=publications&limit=5", []string{"Paper", "Survey"}},
		{"/api/articles?categories=unknown", []string{}},
		{"/api/articles?limit=abc", []string{"Paper", "Go release", "Keynote", "Survey"}},
		{"/api/articles?limit=0", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := site.get(tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.titles, articleTitles(decodeArticles(t, w.Body.String())))
		})
	}
}

func TestListArticles_EmptyIsArray(t *testing.T) {
	site := newTestSite(t)

	w := site.get("/api/articles")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	site.handlers.cfg.NewsDir = site.root + "/does-not-exist"
	site.handlers.lister = New(site.handlers.cfg, site.handlers.metrics).lister
	w = site.get("/api/articles?categories=tech")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListArticles_Escaping(t *testing.T) {
	site := newTestSite(t)
	title := `He said "hi" \ then	left`
	site.writeFile(t, "news/misc/quote/manifest.txt", "title = "+title+"\ndate = 2024-01-01\n")

	w := site.get("/api/articles")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "[{"))

	articles := decodeArticles(t, w.Body.String())
	require.Len(t, articles, 1)
	assert.Equal(t, title, articles[0]["title"])
}

func TestListArticles_EncodeFailure(t *testing.T) {
	site := newTestSite(t)
	site.fixture(t)

	orig := encodeArticles
	encodeArticles = func(any) ([]byte, error) { return nil, errors.New("boom") }
	defer func() { encodeArticles = orig }()

	w := site.get("/api/articles")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to encode articles")
}

func TestListArticles_Metrics(t *testing.T) {
	site := newTestSite(t)
	site.fixture(t)
	m := site.handlers.metrics

	site.get("/api/articles")

	assert.Equal(t, float64(4), testutil.ToFloat64(m.ArticlesListed))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ArticlesSkipped.WithLabelValues("bad_date")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ArticlesSkipped.WithLabelValues("no_title")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/articles", "200")))

	w := site.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "site_articles_listed_total 4")
	assert.Contains(t, w.Body.String(), `site_articles_skipped_total{reason="bad_date"} 1`)
}

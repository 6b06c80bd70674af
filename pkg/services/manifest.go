package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orailix-site/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	name   string
	format string
}

// Looked up, in order, when the text manifest is missing.
var manifestAlternates = []manifestFile{
	{"manifest.toml", "toml"},
	{"manifest.yaml", "yaml"},
	{"manifest.yml", "yaml"},
}

// ParseManifest decodes manifest content. The "text" format is the plain
// key = value one; "toml" and "yaml" accept the same four keys.
func ParseManifest(content []byte, format string) (models.Manifest, error) {
	var m models.Manifest
	switch format {
	case "text":
		return parseTextManifest(string(content)), nil
	case "toml":
		if err := toml.Unmarshal(content, &m); err != nil {
			return m, err
		}
	case "yaml":
		if err := yaml.Unmarshal(content, &m); err != nil {
			return m, err
		}
	default:
		return m, fmt.Errorf("%w: %s", ErrUnknownType, format)
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Date = strings.TrimSpace(m.Date)
	m.Picture = strings.TrimSpace(m.Picture)
	m.Page = strings.TrimSpace(m.Page)
	return m, nil
}

// parseTextManifest never fails: lines without "=" and unknown keys are
// dropped, and a repeated key keeps its last value.
func parseTextManifest(content string) models.Manifest {
	var m models.Manifest
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "title":
			m.Title = value
		case "date":
			m.Date = value
		case "picture":
			m.Picture = value
		case "page":
			m.Page = value
		}
	}
	return m
}

// ReadManifest loads the manifest of one article folder. textName is tried
// first, then the toml and yaml variants. A folder without any readable
// manifest yields ErrNoManifest, and one without a title yields ErrNoTitle.
func ReadManifest(dir, textName string) (models.Manifest, error) {
	candidates := append([]manifestFile{{textName, "text"}}, manifestAlternates...)

	for _, c := range candidates {
		content, err := os.ReadFile(filepath.Join(dir, c.name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return models.Manifest{}, fmt.Errorf("%w: %v", ErrNoManifest, err)
		}

		m, err := ParseManifest(content, c.format)
		if err != nil {
			return models.Manifest{}, fmt.Errorf("%w: %s: %v", ErrNoManifest, c.name, err)
		}
		if m.Title == "" {
			return m, ErrNoTitle
		}
		return m, nil
	}
	return models.Manifest{}, ErrNoManifest
}

package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"orailix-site/pkg/config"
	"orailix-site/pkg/logger"
	"orailix-site/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://orailix.com"

func init() {
	// Set gin to test mode to reduce noise in tests
	gin.SetMode(gin.TestMode)
	logger.Log.SetOutput(io.Discard)
}

type testSite struct {
	root     string
	handlers *Handlers
	router   *gin.Engine
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "news"), 0755))

	cfg := &config.Config{
		ListenAddr:       ":0",
		Origin:           testOrigin,
		SiteRoot:         root,
		NewsDir:          filepath.Join(root, "news"),
		NewsURLPrefix:    "/news",
		PlaceholderImage: "/static/image-not-found.png",
		ManifestName:     "manifest.txt",
		SessionSecret:    []byte("0123456789abcdef0123456789abcdef"),
	}
	require.NoError(t, cfg.Validate())

	h := New(cfg, metrics.New())
	return &testSite{root: root, handlers: h, router: h.NewRouter()}
}

func (s *testSite) writeFile(t *testing.T, rel, content string) {
	t.Helper()
	p := filepath.Join(s.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func (s *testSite) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testSite) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

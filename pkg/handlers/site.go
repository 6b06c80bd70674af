package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"orailix-site/pkg/logger"
	"orailix-site/pkg/services"

	"github.com/gin-gonic/gin"
)

const (
	indexFile     = "index.html"
	errorPageFile = "error_page.html"
)

func (h *Handlers) Homepage(c *gin.Context) {
	h.serveFile(c, filepath.Join(h.cfg.SiteRoot, indexFile))
}

// StaticFile serves any other GET below the site root. A path ending in "/"
// serves that folder's index.html.
func (h *Handlers) StaticFile(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	target := c.Request.URL.Path
	if strings.HasSuffix(target, "/") {
		target += indexFile
	}

	fullPath := services.SafeJoin(h.cfg.SiteRoot, "", target)
	if fullPath == "" {
		h.notFound(c, target, services.ErrUnsafePath)
		return
	}

	if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
		c.Redirect(http.StatusMovedPermanently, c.Request.URL.Path+"/")
		return
	}
	h.serveFile(c, fullPath)
}

func (h *Handlers) serveFile(c *gin.Context, fullPath string) {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		h.notFound(c, fullPath, err)
		return
	}
	c.Data(http.StatusOK, services.ContentType(fullPath, content), content)
}

// notFound answers with the site's error page, or plain text if that is
// missing too.
func (h *Handlers) notFound(c *gin.Context, target string, cause error) {
	logger.Log.WithFields(logger.Fields{
		"path":       target,
		"request_id": c.GetString(requestIDKey),
	}).WithError(cause).Debug("File not found")

	page, err := os.ReadFile(filepath.Join(h.cfg.SiteRoot, errorPageFile))
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
}

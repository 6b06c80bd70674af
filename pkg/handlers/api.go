package handlers

import (
	"net/http"

	"orailix-site/pkg/config"
	"orailix-site/pkg/logger"
	"orailix-site/pkg/metrics"
	"orailix-site/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Handlers carries what the route handlers need. Nothing in it changes after
// construction.
type Handlers struct {
	cfg     *config.Config
	lister  *services.ArticleLister
	metrics *metrics.Metrics
}

func New(cfg *config.Config, m *metrics.Metrics) *Handlers {
	return &Handlers{
		cfg: cfg,
		lister: services.NewArticleLister(services.ListerOptions{
			NewsDir:          cfg.NewsDir,
			URLPrefix:        cfg.NewsURLPrefix,
			PlaceholderImage: cfg.PlaceholderImage,
			ManifestName:     cfg.ManifestName,
		}),
		metrics: m,
	}
}

// encodeArticles is swapped out by tests to exercise the failure path.
var encodeArticles = json.Marshal

func (h *Handlers) ListArticles(c *gin.Context) {
	query := services.ParseListQuery(c.Request.URL.RawQuery)
	articles, report := h.lister.List(query)
	h.recordScan(c, report)

	body, err := encodeArticles(articles)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to encode articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode articles"})
		return
	}

	h.metrics.ArticlesListed.Add(float64(len(articles)))
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handlers) recordScan(c *gin.Context, report services.ScanReport) {
	log := logger.Log.WithField("request_id", c.GetString(requestIDKey))

	for _, err := range report.DirErrors {
		log.WithError(err).Warn("Failed to read news directory")
	}

	for _, res := range report.Skipped() {
		h.metrics.ArticlesSkipped.WithLabelValues(string(res.Skip)).Inc()

		entry := log.WithFields(logger.Fields{
			"category": res.Category,
			"folder":   res.Folder,
			"reason":   res.Skip,
		}).WithError(res.Err)
		if res.Skip == services.SkipBadDate {
			entry.Warn("Skipping article with invalid date")
		} else {
			entry.Debug("Skipping article folder")
		}
	}
}

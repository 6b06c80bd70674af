package handlers

import (
	"net/http"
	"strconv"
	"time"

	"orailix-site/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

const permissionsPolicy = "accelerometer=(), ambient-light-sensor=(), autoplay=(), battery=(), camera=(), " +
	"cross-origin-isolated=(), display-capture=(), document-domain=(), encrypted-media=(), " +
	"execution-while-not-rendered=(), execution-while-out-of-viewport=(), fullscreen=(), geolocation=(), " +
	"gyroscope=(), keyboard-map=(), magnetometer=(), microphone=(), midi=(), navigation-override=(), " +
	"payment=(), picture-in-picture=(), publickey-credentials-get=(), screen-wake-lock=(), sync-xhr=(), " +
	"usb=(), web-share=(), xr-spatial-tracking=()"

// SecurityHeaders adds the fixed security and CORS headers to every response.
func (h *Handlers) SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Strict-Transport-Security", "max-age=63072000")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Access-Control-Allow-Origin", h.cfg.Origin)
		c.Header("Vary", "Origin")
		c.Header("Permissions-Policy", permissionsPolicy)
		c.Header("Date", time.Now().UTC().Format(http.TimeFormat))
		c.Next()
	}
}

// RequestID reuses the caller's X-Request-ID or makes a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request and feeds the request metrics.
func (h *Handlers) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "static"
		}
		status := c.Writer.Status()

		h.metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		h.metrics.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(duration.Seconds())

		logger.Log.WithFields(logger.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration":    duration,
			"request_id":  c.GetString(requestIDKey),
			"remote_addr": c.ClientIP(),
		}).Info("Request processed")
	}
}

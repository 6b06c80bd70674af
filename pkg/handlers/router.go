package handlers

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route of the site.
func (h *Handlers) NewRouter() *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(h.RequestLogger())
	r.Use(h.SecurityHeaders())
	r.Use(h.Sessions())

	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/", h.ListArticles)
		api.POST("/login", h.ConnectUser)
		api.GET("/session", h.IsUserConnected)
	}

	r.GET("/", h.Homepage)
	r.NoRoute(h.StaticFile)

	return r
}

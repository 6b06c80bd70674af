package handlers

import (
	"net/http"

	"orailix-site/pkg/logger"
	"orailix-site/pkg/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	sessionName     = "orailix_session"
	loginSessionKey = "login"
)

// Sessions installs the cookie session store. Cookies are marked Secure only
// when the server itself runs over TLS.
func (h *Handlers) Sessions() gin.HandlerFunc {
	store := cookie.NewStore(h.cfg.SessionSecret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		Secure:   h.cfg.HTTPS,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(sessionName, store)
}

// loginData returns the visitor's login state, or nil when there is none.
func loginData(c *gin.Context) *models.LoginData {
	raw, ok := sessions.Default(c).Get(loginSessionKey).(string)
	if !ok {
		return nil
	}
	var data models.LoginData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return &data
}

// ConnectUser accepts a login attempt. Credentials are not checked yet, so the
// session is never marked as connected.
func (h *Handlers) ConnectUser(c *gin.Context) {
	if _, err := c.GetRawData(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	logger.Log.WithField("request_id", c.GetString(requestIDKey)).Debug("Login attempt received")
	c.JSON(http.StatusNotImplemented, gin.H{"error": "Login is not available"})
}

func (h *Handlers) IsUserConnected(c *gin.Context) {
	if data := loginData(c); data != nil && data.Connected {
		c.String(http.StatusOK, "user is connected")
		return
	}
	c.String(http.StatusOK, "user is NOT connected")
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/auth"
	"github.com/vikash-ftw/VideoTube-Backend/internal/config"
	"github.com/vikash-ftw/VideoTube-Backend/internal/social"
	"github.com/vikash-ftw/VideoTube-Backend/internal/storage"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	auth     *auth.Service
	toggles  *social.ToggleService
	uploader storage.MediaUploader
	cfg      *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(authService *auth.Service, toggleService *social.ToggleService, uploader storage.MediaUploader, cfg *config.Config) *Handlers {
	return &Handlers{
		auth:     authService,
		toggles:  toggleService,
		uploader: uploader,
		cfg:      cfg,
	}
}

// setAuthCookies attaches the token pair as httpOnly cookies. The
// cookies are marked Secure outside development.
func (h *Handlers) setAuthCookies(c *gin.Context, pair *auth.TokenPair) {
	secure := h.cfg.Environment != "development"
	c.SetCookie("accessToken", pair.AccessToken,
		int(h.cfg.AccessTokenExpiry.Seconds()), "/", "", secure, true)
	c.SetCookie("refreshToken", pair.RefreshToken,
		int(h.cfg.RefreshTokenExpiry.Seconds()), "/", "", secure, true)
}

// clearAuthCookies expires both auth cookies
func (h *Handlers) clearAuthCookies(c *gin.Context) {
	secure := h.cfg.Environment != "development"
	c.SetCookie("accessToken", "", -1, "/", "", secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", secure, true)
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/jfjensen/fyyur/internal/config"
	"github.com/jfjensen/fyyur/internal/utils"
)

// AuthHandler issues admin access tokens.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type tokenReq struct {
	Password string `json:"password" form:"password"`
}

// Token exchanges the admin password for an access token.  The route
// answers 404 while token issuing is not configured.
func (h *AuthHandler) Token(c echo.Context) error {
	if !h.Cfg.TokenIssuingEnabled() {
		return echo.ErrNotFound
	}
	var req tokenReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Password) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}
	if !utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password) {
		log.Warn().Str("ip", c.RealIP()).Msg("admin token refused")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	access, err := utils.NewAccessToken(h.Cfg.AdminJWTSecret, utils.AdminSubject, utils.AdminRole, h.Cfg.AdminTokenTTLMin)
	if err != nil {
		log.Error().Err(err).Msg("issue access token")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"access": access})
}

package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/http/middleware"
)

const operatorName = "admin"

// AuthPublicModule mounts /auth/login. Login is disabled when no password hash is configured.
func AuthPublicModule(jwtSecret, passwordHash string) api.Module {
	ctl := &AccountManager{jwtSecret: jwtSecret, passwordHash: passwordHash}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.login)
	})
}

type AccountManager struct {
	jwtSecret    string
	passwordHash string
}

// POST /api/admin/auth/login
func (a *AccountManager) login(ctx *gin.Context) (any, *api.APIError) {
	if a.passwordHash == "" {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "admin login is not configured"}
	}

	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	if !middleware.CheckPassword(a.passwordHash, request.Password) {
		log.Warn().Str("ip", ctx.ClientIP()).Msg("admin login rejected")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(operatorName, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Msg("could not sign admin token")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.LoginResponse{Token: token}, nil
}

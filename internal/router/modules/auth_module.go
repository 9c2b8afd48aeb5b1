package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlifeai/fitlife-backend/internal/container"
	handlers "github.com/fitlifeai/fitlife-backend/internal/interface/http"
	"github.com/fitlifeai/fitlife-backend/internal/interface/middleware"
)

// AuthModule wires account creation and login.
// Public: POST /api/auth/register, POST /api/auth/login

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	g := rg.Group("/auth")
	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/login", loginLimiter, m.Handler.Login)
}

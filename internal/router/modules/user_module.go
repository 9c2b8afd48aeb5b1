package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlifeai/fitlife-backend/internal/container"
	handlers "github.com/fitlifeai/fitlife-backend/internal/interface/http"
	"github.com/fitlifeai/fitlife-backend/internal/interface/middleware"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
)

// UserModule wires the profile and account-deletion routes.
// Protected: GET/PUT /api/user/profile, POST /api/user/delete/init,
// POST /api/user/delete/confirm

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/user")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	g.GET("/profile", m.Handler.GetProfile)
	g.PUT("/profile", m.Handler.UpdateProfile)

	// account deletion is deliberately slow to retry
	deleteLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUserID(), nil)
	g.POST("/delete/init", deleteLimiter, m.Handler.DeleteInit)
	g.POST("/delete/confirm", deleteLimiter, m.Handler.DeleteConfirm)
}

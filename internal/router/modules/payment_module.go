package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlifeai/fitlife-backend/internal/container"
	handlers "github.com/fitlifeai/fitlife-backend/internal/interface/http"
	"github.com/fitlifeai/fitlife-backend/internal/interface/middleware"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
)

// PaymentModule wires checkout and the provider webhook.
// Protected: POST /api/payments/checkout, GET /api/payments/status/:session_id
// Public (signature-verified): POST /api/webhook/stripe

type PaymentModule struct {
	Handler *handlers.PaymentHandler
	JWT     *helpers.JWTManager
}

func NewPaymentModule(h *handlers.PaymentHandler, jwt *helpers.JWTManager) *PaymentModule {
	return &PaymentModule{Handler: h, JWT: jwt}
}

func (m *PaymentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/payments")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	g.POST("/checkout", m.Handler.CreateCheckout)
	g.GET("/status/:session_id", m.Handler.Status)

	// webhook authenticates via its signature header, not a bearer token
	webhookLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	rg.POST("/webhook/stripe", webhookLimiter, m.Handler.Webhook)
}

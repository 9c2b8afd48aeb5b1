package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlifeai/fitlife-backend/internal/container"
	handlers "github.com/fitlifeai/fitlife-backend/internal/interface/http"
	"github.com/fitlifeai/fitlife-backend/internal/interface/middleware"
)

// FeedbackModule wires the public feedback endpoint.
// Public: POST /api/feedback

type FeedbackModule struct {
	Handler *handlers.FeedbackHandler
}

func NewFeedbackModule(h *handlers.FeedbackHandler) *FeedbackModule {
	return &FeedbackModule{Handler: h}
}

func (m *FeedbackModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/feedback", limiter, m.Handler.Submit)
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlifeai/fitlife-backend/internal/container"
	handlers "github.com/fitlifeai/fitlife-backend/internal/interface/http"
	"github.com/fitlifeai/fitlife-backend/internal/interface/middleware"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
)

// SuggestionModule wires AI suggestion generation, history and search.
// Protected: POST /api/suggestions/{workout,nutrition},
// GET /api/history/{workouts,nutrition}, DELETE /api/history/{workouts,nutrition}/:id,
// GET /api/history/search

type SuggestionModule struct {
	Handler *handlers.SuggestionHandler
	JWT     *helpers.JWTManager
}

func NewSuggestionModule(h *handlers.SuggestionHandler, jwt *helpers.JWTManager) *SuggestionModule {
	return &SuggestionModule{Handler: h, JWT: jwt}
}

func (m *SuggestionModule) Register(rg *gin.RouterGroup) {
	auth := middleware.Auth(m.JWT)

	// LLM calls are the expensive path, keep the limiter tight
	genLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil)
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)

	sg := rg.Group("/suggestions")
	sg.Use(auth)
	sg.POST("/workout", genLimiter, m.Handler.GenerateWorkout)
	sg.POST("/nutrition", genLimiter, m.Handler.GenerateNutrition)

	hg := rg.Group("/history")
	hg.Use(auth, readLimiter)
	hg.GET("/workouts", m.Handler.WorkoutHistory)
	hg.GET("/nutrition", m.Handler.NutritionHistory)
	hg.DELETE("/workouts/:id", m.Handler.DeleteWorkout)
	hg.DELETE("/nutrition/:id", m.Handler.DeleteNutrition)
	hg.GET("/search", m.Handler.Search)
}

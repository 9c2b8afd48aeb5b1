package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/fitlifeai/fitlife-backend/internal/application"
	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/pkg/response"
)

type SuggestionHandler struct {
	Svc    *app.SuggestionService
	Logger *logrus.Logger
}

func NewSuggestionHandler(svc *app.SuggestionService, logger *logrus.Logger) *SuggestionHandler {
	return &SuggestionHandler{Svc: svc, Logger: logger}
}

func (h *SuggestionHandler) GenerateWorkout(c *gin.Context) {
	h.generate(c, entity.SuggestionWorkout)
}

func (h *SuggestionHandler) GenerateNutrition(c *gin.Context) {
	h.generate(c, entity.SuggestionNutrition)
}

func (h *SuggestionHandler) generate(c *gin.Context, kind string) {
	uid := c.GetString("userID")
	sg, err := h.Svc.Generate(c.Request.Context(), uid, kind)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			// valid signature, deleted account: same answer as a bad token
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
		case errors.Is(err, app.ErrTrialExpired):
			response.Error[any](c, http.StatusForbidden,
				"trial expired, subscription required", gin.H{"upgrade": "/api/payments/checkout"})
		default:
			h.Logger.WithError(err).WithField("kind", kind).Error("generate suggestion failed")
			response.Error[any](c, http.StatusBadGateway, "suggestion service unavailable", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, suggestionJSON(sg), "suggestion generated", nil)
}

func (h *SuggestionHandler) WorkoutHistory(c *gin.Context) {
	h.history(c, entity.SuggestionWorkout)
}

func (h *SuggestionHandler) NutritionHistory(c *gin.Context) {
	h.history(c, entity.SuggestionNutrition)
}

func (h *SuggestionHandler) history(c *gin.Context, kind string) {
	uid := c.GetString("userID")
	items, err := h.Svc.History(c.Request.Context(), uid, kind)
	if err != nil {
		h.Logger.WithError(err).WithField("kind", kind).Error("load history failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load history", nil)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, sg := range items {
		out = append(out, suggestionJSON(sg))
	}
	response.Success(c, http.StatusOK, out, "history", gin.H{"count": len(out)})
}

func (h *SuggestionHandler) DeleteWorkout(c *gin.Context) {
	h.delete(c, entity.SuggestionWorkout)
}

func (h *SuggestionHandler) DeleteNutrition(c *gin.Context) {
	h.delete(c, entity.SuggestionNutrition)
}

func (h *SuggestionHandler) delete(c *gin.Context, kind string) {
	uid := c.GetString("userID")
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), uid, kind, id); err != nil {
		response.Error[any](c, http.StatusNotFound, "record not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "record deleted", nil)
}

// Search runs a full-text query across the caller's own suggestion history.
func (h *SuggestionHandler) Search(c *gin.Context) {
	uid := c.GetString("userID")
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		h.Logger.WithError(err).Error("search failed")
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func suggestionJSON(sg *entity.Suggestion) gin.H {
	return gin.H{
		"id":         sg.ID,
		"type":       sg.Kind,
		"suggestion": sg.Suggestion,
		"created_at": sg.CreatedAt,
	}
}

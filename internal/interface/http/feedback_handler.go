package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/fitlifeai/fitlife-backend/internal/application"
	"github.com/fitlifeai/fitlife-backend/pkg/response"
	"github.com/fitlifeai/fitlife-backend/pkg/validation"
)

type FeedbackHandler struct {
	Svc    *app.FeedbackService
	Logger *logrus.Logger
}

func NewFeedbackHandler(svc *app.FeedbackService, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{Svc: svc, Logger: logger}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req app.FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	f, err := h.Svc.Submit(req)
	if err != nil {
		h.Logger.WithError(err).Error("save feedback failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to save feedback", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": f.ID}, "feedback received", nil)
}

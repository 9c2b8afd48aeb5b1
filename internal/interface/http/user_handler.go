package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/fitlifeai/fitlife-backend/internal/application"
	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/pkg/response"
	"github.com/fitlifeai/fitlife-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *app.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name                *string  `json:"name" binding:"omitempty,max=120"`
	Age                 *int     `json:"age" binding:"omitempty,min=1,max=120"`
	Weight              *float64 `json:"weight" binding:"omitempty,gt=0"`
	Height              *float64 `json:"height" binding:"omitempty,gt=0"`
	Goals               *string  `json:"goals"`
	DietaryRestrictions *string  `json:"dietary_restrictions"`
	WorkoutType         *string  `json:"workout_type" binding:"omitempty,oneof=academia casa ar_livre"`
	CurrentActivities   *string  `json:"current_activities"`
}

type confirmDeleteRequest struct {
	Token string `json:"token" binding:"required"`
}

// userJSON shapes a user for API output. The password hash never leaves
// the server.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":                   u.ID,
		"email":                u.Email,
		"name":                 u.Name,
		"age":                  u.Age,
		"weight":               u.Weight,
		"height":               u.Height,
		"goals":                u.Goals,
		"dietary_restrictions": u.DietaryRestrictions,
		"workout_type":         u.WorkoutType,
		"current_activities":   u.CurrentActivities,
		"is_premium":           u.IsPremium,
		"trial_end_date":       u.TrialEndDate,
		"created_at":           u.CreatedAt,
		"updated_at":           u.UpdatedAt,
	}
}

// A token can outlive its account: verification still succeeds after deletion,
// so a missing user behind a valid token reads as an invalid token (401), the
// same as a forced logout.
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, app.UpdateProfileInput{
		Name:                req.Name,
		Age:                 req.Age,
		Weight:              req.Weight,
		Height:              req.Height,
		Goals:               req.Goals,
		DietaryRestrictions: req.DietaryRestrictions,
		WorkoutType:         req.WorkoutType,
		CurrentActivities:   req.CurrentActivities,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyUpdate):
			response.Error[any](c, http.StatusBadRequest, "no fields to update", nil)
		case errors.Is(err, app.ErrUserNotFound):
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
		default:
			h.Logger.WithError(err).Error("update profile failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile updated", nil)
}

// DeleteInit starts the two-step account deletion: a short-lived token is
// issued and mailed to the account owner.
func (h *UserHandler) DeleteInit(c *gin.Context) {
	uid := c.GetString("userID")
	_, err := h.Svc.RequestDeletion(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		h.Logger.WithError(err).Error("request deletion failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to start account deletion", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"requested": true},
		"confirmation email sent", nil)
}

func (h *UserHandler) DeleteConfirm(c *gin.Context) {
	uid := c.GetString("userID")
	var req confirmDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ConfirmDeletion(c.Request.Context(), uid, req.Token); err != nil {
		if errors.Is(err, app.ErrBadConfirmToken) {
			response.Error[any](c, http.StatusBadRequest, "invalid or expired confirmation token", nil)
			return
		}
		h.Logger.WithError(err).Error("confirm deletion failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete account", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
}

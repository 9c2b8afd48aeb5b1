package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/fitlifeai/fitlife-backend/internal/application"
	"github.com/fitlifeai/fitlife-backend/pkg/response"
	"github.com/fitlifeai/fitlife-backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *app.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email               string  `json:"email" binding:"required,email"`
	Password            string  `json:"password" binding:"required,pwd"`
	Name                string  `json:"name" binding:"required,max=120"`
	Age                 int     `json:"age" binding:"omitempty,min=1,max=120"`
	Weight              float64 `json:"weight" binding:"omitempty,gt=0"`
	Height              float64 `json:"height" binding:"omitempty,gt=0"`
	Goals               string  `json:"goals"`
	DietaryRestrictions string  `json:"dietary_restrictions"`
	WorkoutType         string  `json:"workout_type" binding:"omitempty,oneof=academia casa ar_livre"`
	CurrentActivities   string  `json:"current_activities"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Email:               req.Email,
		Password:            req.Password,
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
		if errors.Is(err, app.ErrEmailTaken) {
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to register", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  userJSON(res.User),
		"token": res.Token,
	}, "account created", gin.H{"token_expires_at": res.TokenExpiry})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  userJSON(res.User),
		"token": res.Token,
	}, "login successful", gin.H{"token_expires_at": res.TokenExpiry})
}

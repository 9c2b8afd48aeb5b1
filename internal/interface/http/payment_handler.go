package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/fitlifeai/fitlife-backend/internal/application"
	"github.com/fitlifeai/fitlife-backend/pkg/checkout"
	"github.com/fitlifeai/fitlife-backend/pkg/response"
)

const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	Svc    *app.BillingService
	Logger *logrus.Logger
}

func NewPaymentHandler(svc *app.BillingService, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

// CreateCheckout opens a hosted checkout session. The price is fixed server
// side; the request body is ignored.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	uid := c.GetString("userID")
	sess, err := h.Svc.CreateCheckout(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		h.Logger.WithError(err).Error("create checkout failed")
		response.Error[any](c, http.StatusBadGateway, "payment provider unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"session_id":   sess.SessionID,
		"checkout_url": sess.URL,
	}, "checkout session created", nil)
}

func (h *PaymentHandler) Status(c *gin.Context) {
	uid := c.GetString("userID")
	sessionID := c.Param("session_id")

	st, err := h.Svc.Status(c.Request.Context(), uid, sessionID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "session not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("session_id", sessionID).Error("checkout status failed")
		response.Error[any](c, http.StatusBadGateway, "payment provider unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"session_id":     st.SessionID,
		"status":         st.Status,
		"payment_status": st.PaymentStatus,
	}, "checkout status", nil)
}

// Webhook receives signed provider events. It always answers quickly; a bad
// signature is the only client error worth reporting back.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable body", nil)
		return
	}
	sig := c.GetHeader("Stripe-Signature")

	if err := h.Svc.HandleWebhook(c.Request.Context(), payload, sig); err != nil {
		if errors.Is(err, checkout.ErrBadSignature) || errors.Is(err, checkout.ErrStaleEvent) {
			response.Error[any](c, http.StatusBadRequest, "signature verification failed", nil)
			return
		}
		h.Logger.WithError(err).Error("webhook processing failed")
		response.Error[any](c, http.StatusInternalServerError, "webhook processing failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"received": true}, "ok", nil)
}

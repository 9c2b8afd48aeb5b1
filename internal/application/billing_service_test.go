package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/pkg/checkout"
)

func newTestBillingService(provider *fakeCheckout) (*BillingService, *fakeUserRepo, *fakeTransactionRepo) {
	users := newFakeUserRepo()
	txs := newFakeTransactionRepo()
	svc := NewBillingService(users, txs, provider, BillingConfig{
		Amount:        14.90,
		Currency:      "brl",
		SuccessURL:    "https://app.example.com/success",
		CancelURL:     "https://app.example.com/cancel",
		WebhookSecret: "whsec_test",
	}, nil, nil, false)
	return svc, users, txs
}

func TestCreateCheckout(t *testing.T) {
	provider := &fakeCheckout{
		session: &checkout.Session{SessionID: "cs_123", URL: "https://pay.example.com/cs_123"},
	}
	svc, users, txs := newTestBillingService(provider)
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))

	sess, err := svc.CreateCheckout(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", sess.SessionID)

	// the price is fixed server side
	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, 14.90, req.Amount)
	assert.Equal(t, "brl", req.Currency)
	assert.Equal(t, "u1", req.Metadata["user_id"])
	assert.Equal(t, "premium_monthly", req.Metadata["subscription_type"])

	tx, err := txs.GetBySession("cs_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, tx.PaymentStatus)
	assert.Equal(t, "u1", tx.UserID)
}

func TestCreateCheckoutUnknownUser(t *testing.T) {
	svc, _, _ := newTestBillingService(&fakeCheckout{})
	_, err := svc.CreateCheckout(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStatusPaidActivatesPremium(t *testing.T) {
	provider := &fakeCheckout{
		status: &checkout.SessionStatus{SessionID: "cs_123", Status: "complete", PaymentStatus: "paid"},
	}
	svc, users, txs := newTestBillingService(provider)
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))
	require.NoError(t, txs.Create(&entity.PaymentTransaction{
		ID: "t1", UserID: "u1", SessionID: "cs_123", PaymentStatus: entity.PaymentPending,
	}))

	st, err := svc.Status(context.Background(), "u1", "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "paid", st.PaymentStatus)

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.True(t, u.IsPremium)

	tx, err := txs.GetBySession("cs_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, tx.PaymentStatus)
}

func TestStatusOwnershipEnforced(t *testing.T) {
	provider := &fakeCheckout{
		status: &checkout.SessionStatus{SessionID: "cs_123", Status: "complete", PaymentStatus: "paid"},
	}
	svc, users, txs := newTestBillingService(provider)
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))
	require.NoError(t, users.Create(&entity.User{ID: "u2", Email: "bob@example.com"}))
	require.NoError(t, txs.Create(&entity.PaymentTransaction{
		ID: "t1", UserID: "u1", SessionID: "cs_123", PaymentStatus: entity.PaymentPending,
	}))

	_, err := svc.Status(context.Background(), "u2", "cs_123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.False(t, u.IsPremium, "a foreign status poll must not activate premium")
}

func TestStatusExpiredClosesTransaction(t *testing.T) {
	provider := &fakeCheckout{
		status: &checkout.SessionStatus{SessionID: "cs_123", Status: "expired", PaymentStatus: "unpaid"},
	}
	svc, users, txs := newTestBillingService(provider)
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))
	require.NoError(t, txs.Create(&entity.PaymentTransaction{
		ID: "t1", UserID: "u1", SessionID: "cs_123", PaymentStatus: entity.PaymentPending,
	}))

	_, err := svc.Status(context.Background(), "u1", "cs_123")
	require.NoError(t, err)

	tx, err := txs.GetBySession("cs_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentExpired, tx.PaymentStatus)

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.False(t, u.IsPremium)
}

func signedWebhookPayload(t *testing.T, secret string, at time.Time, sessionID, paymentStatus string, meta map[string]string) ([]byte, string) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"type": "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id":             sessionID,
				"status":         "complete",
				"payment_status": paymentStatus,
				"amount_total":   1490,
				"currency":       "brl",
				"metadata":       meta,
			},
		},
	})
	require.NoError(t, err)
	return payload, checkout.SignPayload(payload, secret, at)
}

func TestHandleWebhookPaid(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, users, txs := newTestBillingService(&fakeCheckout{})
	svc.Now = func() time.Time { return now }
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))
	require.NoError(t, txs.Create(&entity.PaymentTransaction{
		ID: "t1", UserID: "u1", SessionID: "cs_123", PaymentStatus: entity.PaymentPending,
		Metadata: map[string]string{"email": "ana@example.com"},
	}))

	payload, sig := signedWebhookPayload(t, "whsec_test", now, "cs_123", "paid", nil)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.True(t, u.IsPremium)

	tx, err := txs.GetBySession("cs_123")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, tx.PaymentStatus)

	// a replayed event is accepted and changes nothing
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
}

func TestHandleWebhookBadSignature(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, users, _ := newTestBillingService(&fakeCheckout{})
	svc.Now = func() time.Time { return now }
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))

	payload, _ := signedWebhookPayload(t, "whsec_test", now, "cs_123", "paid", nil)
	_, wrongSig := signedWebhookPayload(t, "whsec_other", now, "cs_123", "paid", nil)

	err := svc.HandleWebhook(context.Background(), payload, wrongSig)
	assert.ErrorIs(t, err, checkout.ErrBadSignature)

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.False(t, u.IsPremium)
}

func TestHandleWebhookStaleTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestBillingService(&fakeCheckout{})
	svc.Now = func() time.Time { return now }

	payload, sig := signedWebhookPayload(t, "whsec_test", now.Add(-10*time.Minute), "cs_123", "paid", nil)
	err := svc.HandleWebhook(context.Background(), payload, sig)
	assert.ErrorIs(t, err, checkout.ErrStaleEvent)
}

func TestHandleWebhookUnpaidIgnored(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, users, _ := newTestBillingService(&fakeCheckout{})
	svc.Now = func() time.Time { return now }
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))

	payload, sig := signedWebhookPayload(t, "whsec_test", now, "cs_123", "unpaid", nil)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.False(t, u.IsPremium)
}

func TestHandleWebhookFallsBackToMetadata(t *testing.T) {
	// session created by another instance: no local transaction, but the
	// metadata still names the user
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, users, _ := newTestBillingService(&fakeCheckout{})
	svc.Now = func() time.Time { return now }
	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com"}))

	payload, sig := signedWebhookPayload(t, "whsec_test", now, "cs_unknown", "paid",
		map[string]string{"user_id": "u1"})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))

	u, err := users.GetByID("u1")
	require.NoError(t, err)
	assert.True(t, u.IsPremium)
}

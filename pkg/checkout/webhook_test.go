package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookBody = `{
	"type": "checkout.session.completed",
	"data": {"object": {
		"id": "cs_test_123",
		"status": "complete",
		"payment_status": "paid",
		"amount_total": 1490,
		"currency": "brl",
		"metadata": {"user_id": "u1"}
	}}
}`

func TestParseEvent(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := []byte(webhookBody)
	sig := SignPayload(payload, "whsec_test", now)

	ev, err := ParseEvent(payload, sig, "whsec_test", now)
	require.NoError(t, err)

	assert.Equal(t, "checkout.session.completed", ev.Type)
	assert.Equal(t, "cs_test_123", ev.Session.SessionID)
	assert.Equal(t, "paid", ev.Session.PaymentStatus)
	assert.Equal(t, 14.90, ev.Session.AmountTotal)
	assert.Equal(t, "u1", ev.Session.Metadata["user_id"])
}

func TestParseEventWrongSecret(t *testing.T) {
	now := time.Now()
	payload := []byte(webhookBody)
	sig := SignPayload(payload, "whsec_other", now)

	_, err := ParseEvent(payload, sig, "whsec_test", now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseEventTamperedPayload(t *testing.T) {
	now := time.Now()
	payload := []byte(webhookBody)
	sig := SignPayload(payload, "whsec_test", now)

	tampered := []byte(webhookBody[:len(webhookBody)-2] + " }")
	_, err := ParseEvent(tampered, sig, "whsec_test", now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseEventToleranceWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := []byte(webhookBody)

	sig := SignPayload(payload, "whsec_test", now.Add(-DefaultTolerance+time.Second))
	_, err := ParseEvent(payload, sig, "whsec_test", now)
	assert.NoError(t, err)

	sig = SignPayload(payload, "whsec_test", now.Add(-DefaultTolerance-time.Second))
	_, err = ParseEvent(payload, sig, "whsec_test", now)
	assert.ErrorIs(t, err, ErrStaleEvent)

	// events from the future are just as suspicious
	sig = SignPayload(payload, "whsec_test", now.Add(DefaultTolerance+time.Second))
	_, err = ParseEvent(payload, sig, "whsec_test", now)
	assert.ErrorIs(t, err, ErrStaleEvent)
}

func TestParseEventMalformedHeader(t *testing.T) {
	_, err := ParseEvent([]byte(webhookBody), "not-a-header", "whsec_test", time.Now())
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = ParseEvent([]byte(webhookBody), "", "whsec_test", time.Now())
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseEventMultipleSignatures(t *testing.T) {
	now := time.Now()
	payload := []byte(webhookBody)
	good := SignPayload(payload, "whsec_test", now)

	// header with a rotated (stale) signature first and the valid one second
	mixed := good + ",v1=deadbeef"
	_, err := ParseEvent(payload, mixed, "whsec_test", now)
	assert.NoError(t, err)
}

package entity

import "time"

// Payment transaction statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentExpired   = "expired"
)

// PaymentTransaction records a checkout session created for a user.
// Amount and currency are the server-side subscription price at creation time;
// status moves pending→completed on a paid session or pending→expired when the
// provider reports the session expired.
type PaymentTransaction struct {
	ID            string
	UserID        string
	SessionID     string
	Amount        float64
	Currency      string
	PaymentStatus string
	Metadata      map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	repo "github.com/fitlifeai/fitlife-backend/internal/domain/repository"
	"github.com/fitlifeai/fitlife-backend/pkg/checkout"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
	"github.com/fitlifeai/fitlife-backend/pkg/mailer"
)

const premiumProductName = "FitLife AI Premium (mensal)"

// CheckoutProvider is the hosted checkout boundary. Satisfied by
// *checkout.Client; tests plug in a fake.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req checkout.SessionRequest) (*checkout.Session, error)
	GetStatus(ctx context.Context, sessionID string) (*checkout.SessionStatus, error)
}

// BillingConfig is the slice of configuration the billing service needs.
// The amount and currency are server-side facts; nothing here is ever taken
// from a client request.
type BillingConfig struct {
	Amount        float64
	Currency      string
	SuccessURL    string
	CancelURL     string
	WebhookSecret string
}

// BillingService creates checkout sessions, reconciles their status and
// handles signed provider webhooks. Confirming a payment twice is harmless:
// the premium flag only moves false→true.
type BillingService struct {
	Users        repo.UserRepository
	Transactions repo.TransactionRepository
	Provider     CheckoutProvider
	Cfg          BillingConfig
	Pub          *helpers.RabbitPublisher
	Logger       *logrus.Logger
	MailEnabled  bool

	// Now feeds webhook signature tolerance checks; injectable for tests.
	Now func() time.Time
}

func NewBillingService(users repo.UserRepository, txs repo.TransactionRepository,
	provider CheckoutProvider, cfg BillingConfig, pub *helpers.RabbitPublisher,
	logger *logrus.Logger, mailEnabled bool) *BillingService {
	return &BillingService{
		Users:        users,
		Transactions: txs,
		Provider:     provider,
		Cfg:          cfg,
		Pub:          pub,
		Logger:       logger,
		MailEnabled:  mailEnabled,
		Now:          time.Now,
	}
}

// CreateCheckout opens a hosted checkout session for the fixed premium
// subscription price and records a pending transaction for it.
func (s *BillingService) CreateCheckout(ctx context.Context, userID string) (*checkout.Session, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	meta := map[string]string{
		"user_id":           u.ID,
		"email":             u.Email,
		"subscription_type": "premium_monthly",
	}
	sess, err := s.Provider.CreateSession(ctx, checkout.SessionRequest{
		Amount:      s.Cfg.Amount,
		Currency:    s.Cfg.Currency,
		ProductName: premiumProductName,
		SuccessURL:  s.Cfg.SuccessURL,
		CancelURL:   s.Cfg.CancelURL,
		Metadata:    meta,
	})
	if err != nil {
		return nil, err
	}

	t := &entity.PaymentTransaction{
		ID:            uuid.NewString(),
		UserID:        u.ID,
		SessionID:     sess.SessionID,
		Amount:        s.Cfg.Amount,
		Currency:      s.Cfg.Currency,
		PaymentStatus: entity.PaymentPending,
		Metadata:      meta,
	}
	if err := s.Transactions.Create(t); err != nil {
		return nil, err
	}
	return sess, nil
}

// Status polls the provider for a session the caller owns and reconciles the
// local transaction: paid sessions flip the premium flag, expired sessions
// close the transaction.
func (s *BillingService) Status(ctx context.Context, userID, sessionID string) (*checkout.SessionStatus, error) {
	t, err := s.Transactions.GetBySession(sessionID)
	if err != nil || t == nil || t.UserID != userID {
		return nil, ErrUserNotFound
	}

	st, err := s.Provider.GetStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case st.PaymentStatus == "paid":
		s.confirmPayment(ctx, t)
	case st.Status == "expired":
		if t.PaymentStatus == entity.PaymentPending {
			if err := s.Transactions.UpdateStatus(sessionID, entity.PaymentExpired); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("session_id", sessionID).Warn("expire transaction failed")
			}
		}
	}
	return st, nil
}

// HandleWebhook verifies the provider signature and applies a completed
// checkout. Replayed events are accepted and do nothing.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	ev, err := checkout.ParseEvent(payload, sigHeader, s.Cfg.WebhookSecret, s.Now())
	if err != nil {
		return err
	}
	if ev.Session.PaymentStatus != "paid" {
		return nil
	}

	t, err := s.Transactions.GetBySession(ev.Session.SessionID)
	if err != nil || t == nil {
		// fall back to metadata when the session was created elsewhere
		uid := ev.Session.Metadata["user_id"]
		if uid == "" {
			return nil
		}
		return s.Users.SetPremium(uid)
	}
	s.confirmPayment(ctx, t)
	return nil
}

func (s *BillingService) confirmPayment(ctx context.Context, t *entity.PaymentTransaction) {
	if t.PaymentStatus == entity.PaymentCompleted {
		return
	}
	if err := s.Users.SetPremium(t.UserID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", t.UserID).Error("set premium failed")
	}
	if err := s.Transactions.UpdateStatus(t.SessionID, entity.PaymentCompleted); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("session_id", t.SessionID).Error("complete transaction failed")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": t.UserID, "session_id": t.SessionID}).Info("premium activated")
	}

	if s.Pub != nil && s.MailEnabled {
		email := t.Metadata["email"]
		if email == "" {
			if u, err := s.Users.GetByID(t.UserID); err == nil && u != nil {
				email = u.Email
			}
		}
		if email != "" {
			job := mailer.EmailJob{
				To:       email,
				Template: mailer.TemplatePremiumWelcome,
				Data:     map[string]any{"Amount": t.Amount, "Currency": t.Currency},
			}
			if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
				s.Logger.WithError(err).Warn("enqueue premium welcome email failed")
			}
		}
	}
}

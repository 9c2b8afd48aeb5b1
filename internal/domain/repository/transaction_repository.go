package repository

import "github.com/fitlifeai/fitlife-backend/internal/domain/entity"

// TransactionRepository defines storage for payment transactions.
type TransactionRepository interface {
	Create(t *entity.PaymentTransaction) error
	GetBySession(sessionID string) (*entity.PaymentTransaction, error)
	UpdateStatus(sessionID, status string) error
	DeleteByUser(userID string) error
}

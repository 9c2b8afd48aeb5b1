package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/internal/domain/repository"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Create(t *entity.PaymentTransaction) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO payment_transactions (id, user_id, session_id, amount, currency, payment_status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.SessionID, t.Amount, t.Currency, t.PaymentStatus, t.Metadata)
	return row.Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *TransactionRepository) GetBySession(sessionID string) (*entity.PaymentTransaction, error) {
	t := &entity.PaymentTransaction{}
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, user_id, session_id, amount, currency, payment_status, metadata, created_at, updated_at
		FROM payment_transactions
		WHERE session_id = $1
	`, sessionID)
	if err := row.Scan(&t.ID, &t.UserID, &t.SessionID, &t.Amount, &t.Currency,
		&t.PaymentStatus, &t.Metadata, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) UpdateStatus(sessionID, status string) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE payment_transactions
		SET payment_status = $1, updated_at = now()
		WHERE session_id = $2
	`, status, sessionID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteByUser(userID string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM payment_transactions WHERE user_id = $1`, userID)
	return err
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/internal/domain/repository"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func (r *FeedbackRepository) Create(f *entity.Feedback) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO feedback (id, name, email, message, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, f.ID, f.Name, f.Email, f.Message, f.Rating)
	return row.Scan(&f.CreatedAt)
}

var _ repository.FeedbackRepository = (*FeedbackRepository)(nil)

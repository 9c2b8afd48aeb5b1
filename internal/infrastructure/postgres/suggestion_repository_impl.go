package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/internal/domain/repository"
)

type SuggestionRepository struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepository(pool *pgxpool.Pool) *SuggestionRepository {
	return &SuggestionRepository{pool: pool}
}

func (r *SuggestionRepository) Create(s *entity.Suggestion) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO suggestions (id, user_id, kind, suggestion)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, s.ID, s.UserID, s.Kind, s.Suggestion)
	return row.Scan(&s.CreatedAt)
}

func (r *SuggestionRepository) ListByUser(userID, kind string, limit int) ([]*entity.Suggestion, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, user_id, kind, suggestion, created_at
		FROM suggestions
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Suggestion, 0, limit)
	for rows.Next() {
		s := &entity.Suggestion{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Kind, &s.Suggestion, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteOwned deletes a suggestion only when it belongs to userID. A wrong
// owner looks exactly like a missing row.
func (r *SuggestionRepository) DeleteOwned(id, userID string) error {
	res, err := r.pool.Exec(context.Background(), `
		DELETE FROM suggestions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SuggestionRepository) DeleteByUser(userID string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM suggestions WHERE user_id = $1`, userID)
	return err
}

var _ repository.SuggestionRepository = (*SuggestionRepository)(nil)

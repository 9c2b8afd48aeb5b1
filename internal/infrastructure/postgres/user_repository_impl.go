package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/internal/domain/repository"
)

// ErrNotFound is returned when a row does not exist. Duplicate-email inserts
// surface as repository.ErrDuplicateEmail so the service can answer without
// leaking SQL state.
var ErrNotFound = errors.New("not found")

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, age, weight, height, goals,
	dietary_restrictions, workout_type, current_activities, is_premium,
	trial_end_date, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Age, &u.Weight,
		&u.Height, &u.Goals, &u.DietaryRestrictions, &u.WorkoutType,
		&u.CurrentActivities, &u.IsPremium, &u.TrialEndDate,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, name, age, weight, height, goals,
			dietary_restrictions, workout_type, current_activities, trial_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.Password, u.Name, u.Age, u.Weight, u.Height, u.Goals,
		u.DietaryRestrictions, u.WorkoutType, u.CurrentActivities, u.TrialEndDate)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(context.Background(), `
		UPDATE users
		SET name = $1, age = $2, weight = $3, height = $4, goals = $5,
			dietary_restrictions = $6, workout_type = $7, current_activities = $8,
			updated_at = $9
		WHERE id = $10
	`, u.Name, u.Age, u.Weight, u.Height, u.Goals, u.DietaryRestrictions,
		u.WorkoutType, u.CurrentActivities, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPremium flips the premium flag. The update is idempotent: two concurrent
// payment confirmations for the same user are harmless.
func (r *UserRepository) SetPremium(id string) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE users SET is_premium = TRUE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user; suggestions and transactions go with it via
// ON DELETE CASCADE in the schema.
func (r *UserRepository) Delete(id string) error {
	res, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	type sqlState interface{ SQLState() string }
	var st sqlState
	return errors.As(err, &st) && st.SQLState() == uniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)

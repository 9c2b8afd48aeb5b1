package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/fitlifeai/fitlife-backend/config"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@fitlifeai.com.br"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	trialEnd := time.Now().UTC().Add(cfg.TrialPeriod)

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, age, weight, height, goals,
			dietary_restrictions, workout_type, current_activities, trial_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, 30, 75.0, 1.75, "perder peso e ganhar massa",
		"sem lactose", "academia", "musculação 3x por semana", trialEnd).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s trial_until=%s\n",
		id, email, password, trialEnd.Format(time.RFC3339))
}

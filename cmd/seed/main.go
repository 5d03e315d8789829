package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/meetup-api/config"
	"github.com/oksasatya/meetup-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	meetups := []struct {
		title      string
		host       string
		daysAhead  int
		maxPeople  int
		categories string // postgres array literal
	}{
		{"Go Stockholm", "Demo User", 7, 30, `{Tech}`},
		{"Morning Run Club", "Demo User", 3, 15, `{Sport}`},
		{"Jazz & Dinner", "Demo User", 14, 20, `{Music,Food}`},
	}
	for _, m := range meetups {
		var id string
		err := db.QueryRow(`
			INSERT INTO meetups (title, date, host, max_participants, categories)
			VALUES ($1, $2, $3, $4, $5::text[])
			RETURNING id
		`, m.title, time.Now().AddDate(0, 0, m.daysAhead), m.host, m.maxPeople, m.categories).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed meetup %q: %v", m.title, err)
		}
		fmt.Printf("seeded meetup: id=%s title=%q\n", id, m.title)
	}
}

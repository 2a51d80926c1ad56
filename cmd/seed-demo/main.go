package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/lovemap/lovemap-api/internal/config"
	"github.com/lovemap/lovemap-api/internal/database"
)

// Demo accounts centered on Catbalogan City (11.7756 N, 124.886 E), each with
// a song so the map has something to play.
const (
	baseLat = 11.7756
	baseLng = 124.886
)

type demoAccount struct {
	nickname  string
	status    string
	youtubeID string
}

var demoAccounts = []demoAccount{
	{"Maria", "In love", "kJQP7kiw5Fk"},
	{"Juan", "Engaged", "RgKAFK5djSk"},
	{"Sofia", "Happily taken", "450p7goxZqg"},
	{"Carlos", "In a relationship", "nfWlot6h_JM"},
	{"Ana", "Married", "lp-EO5I60KA"},
	{"Miguel", "Forever yours", "SlPhMPnQ58k"},
	{"Isabella", "Single", "OPf0YbXqDm0"},
	{"Diego", "Looking for love", "e-ORhEE9VVg"},
	{"Carmen", "In love", "fRh_vgS2dFE"},
	{"Rafael", "Love is in the air", "JGwWNGJdvx8"},
	{"Elena", "My heart is full", "bo_efYhYU2A"},
	{"Pedro", "Healing", "0yW7w8F2TVA"},
	{"Rosa", "Free spirit", "CvBfHwUxHIk"},
	{"Luis", "Crushing hard", "QpbQ4I3Eidg"},
	{"Lucia", "Taken and happy", "7wtfhZwyrcc"},
	{"Marco", "Looking for my soulmate", "ru0K8uYEZWw"},
	{"Camila", "Loving life", "hT_nvWreIhg"},
	{"Antonio", "Music is my love", "YQHsXMglC9A"},
	{"Valentina", "Hopelessly romantic", "pB-5XG-DbAA"},
	{"Jose", "Dreaming of love", "hLQl3WQQoQ0"},
}

// randomOffset spreads pins within roughly 5km of the base point.
func randomOffset() float64 {
	return (rand.Float64() - 0.5) * 0.045
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	_, err = db.Pool.Exec(ctx, `
		DELETE FROM users WHERE provider = 'demo'
	`)
	if err != nil {
		log.Fatalf("Failed to delete old demo users: %v", err)
	}
	fmt.Println("Removed old demo accounts")

	for i, account := range demoAccounts {
		var userID string
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO users (email, nickname, provider, provider_id)
			VALUES ($1, $2, 'demo', $3)
			RETURNING id
		`, fmt.Sprintf("demo%d@lovemap.invalid", i+1), account.nickname, fmt.Sprintf("demo-%d", i+1)).Scan(&userID)
		if err != nil {
			log.Fatalf("Failed to create demo user %s: %v", account.nickname, err)
		}

		_, err = db.Pool.Exec(ctx, `
			INSERT INTO pins (user_id, nickname, status, youtube_id, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, account.nickname, account.status, account.youtubeID,
			baseLat+randomOffset(), baseLng+randomOffset())
		if err != nil {
			log.Fatalf("Failed to create pin for %s: %v", account.nickname, err)
		}

		fmt.Printf("Seeded %s (%s)\n", account.nickname, account.status)
	}

	fmt.Printf("Done, seeded %d demo pins\n", len(demoAccounts))
}

package main

import (
	"bus-planning-service/internal/adapters/cache"
	"bus-planning-service/internal/adapters/geocode"
	"bus-planning-service/internal/adapters/repositories"
	"bus-planning-service/internal/adapters/scorer"
	"bus-planning-service/internal/api"
	"bus-planning-service/internal/config"
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/ports"
	"bus-planning-service/internal/services"
	"bus-planning-service/internal/viz"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// The console serves Bhopal's network; the map opens there.
var mapCenter = domain.Coordinates{Lat: 23.2599, Lng: 77.4126}

const mapZoom = 12

// main is the application composition root.
// It wires concrete adapters (SQLite, Google Geocoding, the scoring
// service) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	port := config.Get("PORT", "8080")

	scorerURL := os.Getenv("SCORER_URL")
	if strings.TrimSpace(scorerURL) == "" {
		log.Fatal("SCORER_URL is required")
	}

	mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(mapsKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// The geocode cache defaults to the embedded SQLite file; a REDIS_URL
	// switches it to a shared Redis so replicas reuse each other's lookups.
	var geocodeCache ports.GeocodeCache = cache.NewSqliteGeocodeCache(db)
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		geocodeCache = cache.NewRedisGeocodeCache(redis.NewClient(opts))
		log.Println("Geocode cache backed by Redis")
	}

	geocoder := geocode.NewGoogleGeocoder(mapsKey, geocodeCache)
	scorerClient := scorer.NewClient(scorerURL)
	repo := repositories.NewSqliteRouteRepository(db)

	display := viz.NewDisplayList()
	sync := viz.NewSynchronizer(display)
	sync.Initialize(mapCenter, mapZoom)

	session := services.NewSession(sync)

	router := api.NewRouter(session, geocoder, scorerClient, repo, display)

	// Timeouts are tuned for batch planning (the scoring call dominates).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"hos-trip-planner/internal/adapters/cache"
	"hos-trip-planner/internal/adapters/geo"
	"hos-trip-planner/internal/api"
	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/platform/db"
	"hos-trip-planner/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Redis caches, Nominatim, OSRM)
// behind ports and starts the HTTP server.
func main() {
	config.Load()

	port := config.Get("PORT", "8080")
	dbPath := config.Get("DB_PATH", "data/app.db")
	databaseURL := config.Get("DATABASE_URL", "")
	redisAddr := config.Get("REDIS_ADDR", "")
	nominatimURL := config.Get("NOMINATIM_BASE_URL", geo.DefaultNominatimBaseURL)
	osrmURL := config.Get("OSRM_BASE_URL", geo.DefaultOSRMBaseURL)
	origins := strings.Split(config.Get("ALLOWED_ORIGINS", "http://localhost:5173"), ",")

	geocodeCache, legCache, cleanup, err := buildCaches(dbPath, databaseURL, redisAddr)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	geocoder := geo.NewNominatimGeocoder(nominatimURL, geocodeCache)
	routes := geo.NewOSRMRouteProvider(osrmURL, legCache)

	router := api.NewRouter(geocoder, routes, origins)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCaches selects the cache backend: Redis when REDIS_ADDR is set,
// Postgres when DATABASE_URL is set (both shared across instances),
// a local SQLite file otherwise.
func buildCaches(dbPath, databaseURL, redisAddr string) (ports.GeocodeCache, ports.LegCache, func(), error) {
	if redisAddr != "" {
		ttlHours, err := strconv.Atoi(config.Get("CACHE_TTL_HOURS", "168"))
		if err != nil || ttlHours < 0 {
			return nil, nil, nil, fmt.Errorf("invalid CACHE_TTL_HOURS: %q", config.Get("CACHE_TTL_HOURS", "168"))
		}
		ttl := time.Duration(ttlHours) * time.Hour

		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		log.Printf("Using redis caches addr=%s ttl=%s", redisAddr, ttl)

		return cache.NewRedisGeocodeCache(client, ttl),
			cache.NewRedisLegCache(client, ttl),
			func() { _ = client.Close() },
			nil
	}

	if databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}

		if err := cache.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		log.Print("Using postgres caches")

		return cache.NewSQLGeocodeCache(conn),
			cache.NewSQLLegCache(conn),
			func() { _ = conn.Close() },
			nil
	}

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := cache.InitSqliteSchema(sqliteDB); err != nil {
		sqliteDB.Close()
		return nil, nil, nil, err
	}
	log.Printf("Using sqlite caches path=%s", dbPath)

	return cache.NewSqliteGeocodeCache(sqliteDB),
		cache.NewSqliteLegCache(sqliteDB),
		func() { _ = sqliteDB.Close() },
		nil
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

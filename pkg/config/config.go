package config

import (
	"log"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsProduction bool

	JWTSecret string
	Port      string
	DBPath    string

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	ListingCacheTTLSeconds int
	ListingCacheMaxItems   int
	WSReadLimitBytes       int
	WSReadTimeoutSeconds   int
)

// loadAppEnv loads .env for non-production environments. A missing file is
// fine; the host environment may carry everything.
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "production" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
}

func init() {
	loadAppEnv()

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "development"
	}
	if !slices.Contains([]string{"development", "staging", "production"}, AppEnv) {
		log.Fatal("environment variable APP_ENV must be 'development', 'staging' or 'production'")
	}
	IsProduction = AppEnv == "production"

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set in production")
	}
	if JWTSecret == "" {
		JWTSecret = "studenthub-dev-secret"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}
	DBPath = os.Getenv("DB_PATH")
	if DBPath == "" {
		DBPath = "studenthub.db"
	}

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 10)
	ListingCacheTTLSeconds = atoiOr(os.Getenv("LISTING_CACHE_TTL_SECONDS"), 60)
	ListingCacheMaxItems = atoiOr(os.Getenv("LISTING_CACHE_MAX_ITEMS"), 500)
	WSReadLimitBytes = atoiOr(os.Getenv("WS_READ_LIMIT_BYTES"), 1<<20)
	WSReadTimeoutSeconds = atoiOr(os.Getenv("WS_READ_TIMEOUT_SECONDS"), 60)

	log.Printf("[config] AppEnv=%s IsProduction=%v Port=%s DBPath=%s", AppEnv, IsProduction, Port, DBPath)
	log.Printf("[config] RateLimit window=%ds capacity=%d listingCacheTTL=%ds listingCacheMax=%d",
		RateLimitWindowSeconds, RateLimitCapacity, ListingCacheTTLSeconds, ListingCacheMaxItems)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

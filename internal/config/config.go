package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Database settings are
// optional: when DB_HOST is unset the server runs with the in-memory
// ledger and authentication disabled endpoints fail fast.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address (empty disables MySQL)
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	RefreshTTLDays int           // refresh token time-to-live in days
	BcryptCost     int           // bcrypt cost for password hashing
	OMDBAPIKey     string        // OMDB metadata API key
	NowShowing     []string      // curated titles for the now-showing rail
	ComingSoon     []string      // curated titles for the coming-soon rail
	BookingFee     int64         // flat booking fee in IDR
	PaymentDelay   time.Duration // simulated payment settlement delay
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must() and missing values cause the
// program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "cix"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   atoiDefault("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: atoiDefault("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:     atoiDefault("BCRYPT_COST", 10),
		OMDBAPIKey:     must("OMDB_API_KEY"),
		NowShowing:     splitTitles(getenv("NOW_SHOWING_TITLES", "Dune: Part Two,Civil War,Furiosa,Challengers")),
		ComingSoon:     splitTitles(getenv("COMING_SOON_TITLES", "Deadpool,Alien,Gladiator")),
		BookingFee:     int64(atoiDefault("BOOKING_FEE_IDR", 5000)),
		PaymentDelay:   parseDur(getenv("PAYMENT_SETTLEMENT_DELAY", "2.5s")),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func atoiDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func splitTitles(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

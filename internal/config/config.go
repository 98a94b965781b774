package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the schedule anchor date
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for counts,
// durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time‑to‑live in minutes
	RefreshTTLDays int    // refresh token time‑to‑live in days
	BcryptCost     int    // bcrypt cost for password hashing

	TotalSeats   int // total seats on the floor
	RegularSeats int // seats reserved for the owning batch
	FloaterSeats int // first-come floater seats

	ScheduleStrategy  string // "fixed" or "rotating"
	ScheduleRefMonday string // anchor Monday for the rotating strategy (YYYY-MM-DD)
	TimeZone          string // IANA zone the office schedule lives in
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Seat counts and the
// schedule default to the standard 50-seat floor on the fixed rotation.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),      // environment (dev/test/prod)
		Port:           must("APP_PORT"),     // port to bind the HTTP server
		DBUser:         must("DB_USER"),      // database user
		DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:         must("DB_HOST"),      // database host
		DBPort:         must("DB_PORT"),      // database port
		DBName:         must("DB_NAME"),      // database name
		JWTSecret:      must("JWT_SECRET"),   // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		BcryptCost:     mustInt("BCRYPT_COST"),            // bcrypt cost factor

		TotalSeats:   envInt("TOTAL_SEATS", 50),
		RegularSeats: envInt("REGULAR_SEATS", 40),
		FloaterSeats: envInt("FLOATER_SEATS", 10),

		ScheduleStrategy:  envStr("SCHEDULE_STRATEGY", "fixed"),
		ScheduleRefMonday: envStr("SCHEDULE_REF_MONDAY", "2025-01-06"),
		TimeZone:          envStr("TIME_ZONE", "UTC"),
	}
	if cfg.RegularSeats+cfg.FloaterSeats != cfg.TotalSeats {
		log.Fatalf("seat counts disagree: %d regular + %d floater != %d total",
			cfg.RegularSeats, cfg.FloaterSeats, cfg.TotalSeats)
	}
	if _, err := time.Parse("2006-01-02", cfg.ScheduleRefMonday); err != nil {
		log.Fatalf("invalid SCHEDULE_REF_MONDAY: %q", cfg.ScheduleRefMonday)
	}
	return cfg
}

// RefMonday returns the schedule anchor in the given location.
func (c Config) RefMonday(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", c.ScheduleRefMonday, loc)
	return t
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

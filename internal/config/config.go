package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	AuthCookieSecure bool

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	Redis RedisConfig

	Matching MatchingConfig

	RateLimit RateLimitConfig

	Onboarding OnboardingConfig
}

// RedisConfig configures the shared redis client used by the
// onboarding store and the inquiry rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MatchingConfig points at the external matching engine.
type MatchingConfig struct {
	BaseURL        string
	TimeoutSeconds int
	ScoreCacheTTL  int
}

// RateLimitConfig controls inquiry submission limits.
type RateLimitConfig struct {
	Enabled      bool
	InquiryRate  float64
	InquiryBurst int
}

// OnboardingConfig controls wizard progress retention.
type OnboardingConfig struct {
	ProgressTTLHours  int
	SweepIntervalMins int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:          getenv("APP_SERVICE", "stagecrew"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure: authCookieSecure,
		OTLPEndpoint:     getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "stagecrew"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			DB:       getenvInt("REDIS_DB", 0),
		},

		Matching: MatchingConfig{
			BaseURL:        strings.TrimSpace(getenv("MATCHING_ENGINE_URL", "http://localhost:9090")),
			TimeoutSeconds: getenvInt("MATCHING_ENGINE_TIMEOUT", 10),
			ScoreCacheTTL:  getenvInt("MATCHING_SCORE_CACHE_TTL", 60),
		},

		RateLimit: RateLimitConfig{
			Enabled:      getenvBool("RATE_LIMIT_ENABLED", false),
			InquiryRate:  getenvFloat("RATE_LIMIT_INQUIRY_RATE", 0.5),
			InquiryBurst: getenvInt("RATE_LIMIT_INQUIRY_BURST", 5),
		},

		Onboarding: OnboardingConfig{
			ProgressTTLHours:  getenvInt("ONBOARDING_PROGRESS_TTL_HOURS", 720),
			SweepIntervalMins: getenvInt("ONBOARDING_SWEEP_INTERVAL_MINS", 60),
		},
	}
}

// Module wires configuration loading.
var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single back-office login. User management is out of scope; the admin
	// credentials come from the environment.
	AdminUsername     string
	AdminPasswordHash string

	// Background worker
	RedisAddr        string
	ReminderSchedule string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "plot-booking-app")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Login will be rejected until it is configured.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.ReminderSchedule = viper.GetString("REMINDER_SCHEDULE")

	return cfg, nil
}

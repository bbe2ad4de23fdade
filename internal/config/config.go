package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig seeds the work calendar on first boot. Once an admin edits the
// calendar through the API, the stored record wins.
type EngineConfig struct {
	WeekStartDay   string
	DaysPerWeek    int
	MinWeeklyHours float64
	MinDailyHours  float64
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timekeeping"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine defaults
	daysPerWeek, err := strconv.Atoi(getEnv("WORK_DAYS_PER_WEEK", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_DAYS_PER_WEEK: %w", err)
	}
	minWeekly, err := strconv.ParseFloat(getEnv("MIN_WEEKLY_HOURS", "40"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_WEEKLY_HOURS: %w", err)
	}
	minDaily, err := strconv.ParseFloat(getEnv("MIN_DAILY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_DAILY_HOURS: %w", err)
	}

	config.Engine = EngineConfig{
		WeekStartDay:   getEnv("WEEK_START_DAY", "monday"),
		DaysPerWeek:    daysPerWeek,
		MinWeeklyHours: minWeekly,
		MinDailyHours:  minDaily,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Engine.DaysPerWeek < 1 || c.Engine.DaysPerWeek > 7 {
		return fmt.Errorf("WORK_DAYS_PER_WEEK must be between 1 and 7")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

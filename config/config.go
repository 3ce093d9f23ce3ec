package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Generator GeneratorConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	FilePath string // sqlite database file
}

// GeneratorConfig holds the generation tunables shared by all pipeline stages
type GeneratorConfig struct {
	HorizonStart time.Time
	HorizonEnd   time.Time
	MinMembers   int
	MaxMembers   int
	Seed         uint64
	ExportDir    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist in production
		fmt.Println("No .env file found")
	}

	horizonStart, err := time.Parse("2006-01-02", getEnv("HORIZON_START", "2022-01-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid HORIZON_START: %w", err)
	}
	horizonEnd, err := time.Parse("2006-01-02", getEnv("HORIZON_END", "2024-12-31"))
	if err != nil {
		return nil, fmt.Errorf("invalid HORIZON_END: %w", err)
	}
	// The horizon end covers the whole final day
	horizonEnd = horizonEnd.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	if !horizonEnd.After(horizonStart) {
		return nil, fmt.Errorf("HORIZON_END %s must be after HORIZON_START %s",
			horizonEnd.Format("2006-01-02"), horizonStart.Format("2006-01-02"))
	}

	config := &Config{
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "gymchain"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			FilePath: getEnv("DB_FILE", "gym_database.db"),
		},
		Generator: GeneratorConfig{
			HorizonStart: horizonStart,
			HorizonEnd:   horizonEnd,
			MinMembers:   getEnvInt("MIN_MEMBERS_PER_BRANCH", 250),
			MaxMembers:   getEnvInt("MAX_MEMBERS_PER_BRANCH", 400),
			Seed:         uint64(getEnvInt("GENERATOR_SEED", 0)),
			ExportDir:    getEnv("EXPORT_DIR", "out"),
		},
	}

	if config.Generator.MinMembers < 1 || config.Generator.MaxMembers < config.Generator.MinMembers {
		return nil, fmt.Errorf("invalid member count range [%d, %d]",
			config.Generator.MinMembers, config.Generator.MaxMembers)
	}

	return config, nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "sqlite" {
		return c.FilePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an integer environment variable with a fallback value
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

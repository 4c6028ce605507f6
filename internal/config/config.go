package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // container images ship without a zone database

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
)

const (
	defaultPort             = "8080"
	defaultTimeZone         = "UTC"
	defaultTransactionLimit = 100
)

type Config struct {
	ProjectID        string
	Region           string
	LogLevel         string
	TimeZone         string
	Port             string
	TransactionLimit string

	// Set by Validate.
	Location *time.Location
	Limit    int
}

// New reads the environment. A .env file in the working directory, when
// present, is loaded first and never overrides variables already set.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID:        os.Getenv("PROJECTID"),
		Region:           os.Getenv("REGION"),
		LogLevel:         os.Getenv("LOGLEVEL"),
		TimeZone:         getOr("TIMEZONE", defaultTimeZone),
		Port:             getOr("PORT", defaultPort),
		TransactionLimit: os.Getenv("TRANSACTIONLIMIT"),
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate must pass before any client is created.
func (c *Config) Validate() error {
	var missing []string
	if c.ProjectID == "" {
		missing = append(missing, "PROJECTID")
	}
	if len(missing) > 0 {
		return errs.NewConfigurationError("missing required configuration", missing...)
	}

	if c.TimeZone == "" {
		c.TimeZone = defaultTimeZone
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return errs.NewConfigurationError("invalid TIMEZONE " + c.TimeZone)
	}
	c.Location = loc

	c.Limit = defaultTransactionLimit
	if c.TransactionLimit != "" {
		n, err := strconv.Atoi(c.TransactionLimit)
		if err != nil || n <= 0 {
			return errs.NewConfigurationError("TRANSACTIONLIMIT must be a positive integer")
		}
		c.Limit = n
	}

	if c.Port == "" {
		c.Port = defaultPort
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// Package config reads the configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	ErrAPIURLMissing    = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid    = errors.New("environment variable API_URL must be a valid URL")
	ErrAuthSecretNotSet = errors.New("environment variable AUTH_JWT_SECRET must be set unless AUTH_DISABLED is true")
	ErrDevOwnerInvalid  = errors.New("environment variable AUTH_DEV_OWNER must be a valid UUID when AUTH_DISABLED is true")
	ErrLogFormatInvalid = errors.New("environment variable LOG_FORMAT must be 'human' or 'json'")
)

type Config struct {
	Port             string
	APIURL           *url.URL
	GinMode          string
	LogFormat        string // "human", "json" or empty for the default of the gin mode
	DataDir          string
	Database         Database
	CORSAllowOrigins []string
	EnablePprof      bool
	Auth             Auth
}

// Database configures a PostgreSQL database. If Host is empty,
// SQLite in the data directory is used.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	Secret   string
	Disabled bool
	DevOwner uuid.UUID // Owner of all requests when authentication is disabled
}

// Postgres reports if a PostgreSQL database is configured.
func (d Database) Postgres() bool {
	return d.Host != ""
}

// SQLitePath is the path of the SQLite database file.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "ledgerbook.db")
}

// Load reads .env files and the environment and validates the result.
// Variables already set in the environment take precedence over .env files.
// Missing .env files are not an error.
func Load(files ...string) (Config, error) {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (Config, error) {
	c := Config{
		Port:      getenv("PORT", "8080"),
		GinMode:   getenv("GIN_MODE", "release"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		DataDir:   getenv("DATA_DIR", "data"),
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "ledgerbook"),
		},
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
		Auth: Auth{
			Secret:   os.Getenv("AUTH_JWT_SECRET"),
			Disabled: os.Getenv("AUTH_DISABLED") == "true",
		},
	}

	var errs []error

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok || apiURL == "" {
		errs = append(errs, ErrAPIURLMissing)
	} else {
		u, err := url.Parse(apiURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ErrAPIURLInvalid)
		}
		c.APIURL = u
	}

	if c.Auth.Disabled {
		owner, err := uuid.Parse(os.Getenv("AUTH_DEV_OWNER"))
		if err != nil {
			errs = append(errs, ErrDevOwnerInvalid)
		}
		c.Auth.DevOwner = owner
	}

	errs = append(errs, c.Validate())
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the values that cannot be wrong after parsing.
func (c Config) Validate() error {
	var errs []error

	if !c.Auth.Disabled && c.Auth.Secret == "" {
		errs = append(errs, ErrAuthSecretNotSet)
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errs = append(errs, ErrLogFormatInvalid)
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

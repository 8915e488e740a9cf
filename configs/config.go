package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDatabaseConfig = errors.New("missing database configuration: set DATABASE_URL or DB_USER")

type Config struct {
	Env             string
	Port            string
	ShutdownTimeout time.Duration
	DB              DB
}

type DB struct {
	URL          string
	User         string
	Password     string
	Host         string
	Name         string
	SSLMode      string
	MaxOpenConns int
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the
// individual credentials.
func (db DB) DSN() (string, error) {
	if db.URL != "" {
		return db.URL, nil
	}
	if db.User == "" {
		return "", ErrMissingDatabaseConfig
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   db.Host,
		Path:   "/" + db.Name,
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{db.SSLMode}}.Encode()
	}
	return u.String(), nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	v := viper.New()
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("db_host", "localhost:5432")
	v.SetDefault("db_name", "trivia")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_max_open_conns", 10)
	v.AutomaticEnv()

	cfg := &Config{
		Env:             v.GetString("app_env"),
		Port:            v.GetString("port"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		DB: DB{
			URL:          v.GetString("database_url"),
			User:         v.GetString("db_user"),
			Password:     v.GetString("db_password"),
			Host:         v.GetString("db_host"),
			Name:         v.GetString("db_name"),
			SSLMode:      v.GetString("db_sslmode"),
			MaxOpenConns: v.GetInt("db_max_open_conns"),
		},
	}

	if _, err := cfg.DB.DSN(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

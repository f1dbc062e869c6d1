package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080" validate:"required,numeric"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	BodyLimit  string `env:"BODY_LIMIT" envDefault:"50M"`
	ResetDB    bool   `env:"RESET_DB"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql" validate:"oneof=mysql sqlite"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/notes?charset=utf8mb4&parseTime=True&loc=Local"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"notes.db"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me" validate:"required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h" validate:"gt=0"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1" validate:"required"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket           string `env:"AWS_BUCKET_NAME" envDefault:"notes" validate:"required"`
	S3Endpoint         string `env:"S3_ENDPOINT" validate:"omitempty,url"`
	S3PublicURL        string `env:"S3_PUBLIC_URL" validate:"omitempty,url"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from an optional .env file and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// PublicBaseURL returns the URL prefix under which stored objects are served.
func (c *Config) PublicBaseURL() string {
	if c.S3PublicURL != "" {
		return c.S3PublicURL
	}
	if c.S3Endpoint != "" {
		return fmt.Sprintf("%s/%s", c.S3Endpoint, c.S3Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.S3Bucket, c.AWSRegion)
}

// DatabaseDSN returns the connection string for the configured driver.
func (c *Config) DatabaseDSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.MySQLDSN
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverBadger = "badger"
	StoreDriverMemory = "memory"
)

type Config struct {
	Env     string `env:"ENV" envDefault:"local" validate:"oneof=local dev docker prod"`
	Logging LoggingConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	Aws     AwsConfig
	Nats    NatsConfig
	Tracing TracingConfig
}

type LoggingConfig struct {
	Level    string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	CrashDir string `env:"LOG_CRASH_DIR" envDefault:"./logs/crash"`
}

type HTTPConfig struct {
	Port               int           `env:"HTTP_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	RequestTimeout     time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout    time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CorsAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type StoreConfig struct {
	Driver        string `env:"STORE_DRIVER" envDefault:"mongo" validate:"oneof=mongo badger memory"`
	MongoURI      string `env:"MONGODB_URI" validate:"required_if=Driver mongo"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"car_search_db"`
	BadgerPath    string `env:"BADGER_PATH" envDefault:"./data/badger" validate:"required_if=Driver badger"`
}

// AwsConfig configures the S3 export archive. Archiving is off when ExportBucket is empty.
type AwsConfig struct {
	Region       string `env:"AWS_REGION" validate:"required_with=ExportBucket"`
	ExportBucket string `env:"AWS_S3_EXPORT_BUCKET"`
	AccessKey    string `env:"AWS_ACCESS_KEY"`
	SecretKey    string `env:"AWS_SECRET_KEY" validate:"required_with=AccessKey"`
}

// NatsConfig configures export events. Publishing is off when URL is empty.
type NatsConfig struct {
	URL           string `env:"NATS_URL"`
	ExportSubject string `env:"NATS_EXPORT_SUBJECT" envDefault:"cars.exported"`
}

type TracingConfig struct {
	Enabled     bool   `env:"TRACING_ENABLED" envDefault:"false"`
	ServiceName string `env:"TRACING_SERVICE_NAME" envDefault:"car-search-webserver"`
}

// ArchiveEnabled reports whether exports should be copied to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.Aws.ExportBucket != ""
}

// EventsEnabled reports whether export events should be published to NATS.
func (c *Config) EventsEnabled() bool {
	return c.Nats.URL != ""
}

// ReadConfig loads an optional .env file, then parses and validates the environment.
func ReadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("no .env file loaded, using process environment: %v", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

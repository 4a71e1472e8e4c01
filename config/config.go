package config

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr        string `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"address the HTTP server listens on"`
	GatewayAddr     string `long:"gateway-addr" env:"GATEWAY_ADDR" description:"address of the receipts and spreadsheets gateway"`
	RedisAddr       string `long:"redis-addr" env:"REDIS_ADDR" description:"redis address used as the message broker"`
	PostgresURL     string `long:"postgres-url" env:"POSTGRES_URL" description:"postgres connection string"`
	JaegerEndpoint  string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"jaeger collector endpoint, derived from the gateway address when empty"`
	ReceiptCurrency string `long:"receipt-currency" env:"RECEIPT_CURRENCY" default:"GBP" description:"currency of issued receipts"`
	LogLevel        string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"logrus log level"`
}

// Load parses command line arguments, falling back to environment variables
// and defaults.
func Load(args []string) (Config, error) {
	var cfg Config

	parser := flags.NewParser(&cfg, flags.HelpFlag)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.GatewayAddr == "" {
		errs = append(errs, errors.New("gateway address is required"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, errors.New("redis address is required"))
	}
	if c.PostgresURL == "" {
		errs = append(errs, errors.New("postgres url is required"))
	}
	if c.ReceiptCurrency == "" {
		errs = append(errs, errors.New("receipt currency is required"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}

	return errors.Join(errs...)
}

func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

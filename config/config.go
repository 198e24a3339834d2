package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Fulfillment modes.
const (
	FulfillmentModeHTTP  = "http"
	FulfillmentModeKafka = "kafka"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Stripe:WebhookSecret
	StripeWebhookSecret    string        `env:"STRIPE_WEBHOOK_SECRET,required,notEmpty"`
	StripeWebhookTolerance time.Duration `env:"STRIPE_WEBHOOK_TOLERANCE" envDefault:"5m"`

	WebhookPath         string `env:"WEBHOOK_PATH" envDefault:"/api/webhooks"`
	WebhookMaxBodyBytes int64  `env:"WEBHOOK_MAX_BODY_BYTES" envDefault:"65536"`

	// Fulfillment mode: "http" (order service call) or "kafka" (publish and forget)
	FulfillmentMode string `env:"FULFILLMENT_MODE" envDefault:"http"`

	OrderServiceBaseURL string        `env:"ORDER_SERVICE_BASE_URL"`
	OrderServiceTimeout time.Duration `env:"ORDER_SERVICE_TIMEOUT" envDefault:"10s"`

	KafkaBrokers          []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaFulfillmentTopic string   `env:"KAFKA_FULFILLMENT_TOPIC" envDefault:"orders.fulfillment"`
}

var ErrInvalidConfig = errors.New("invalid config")

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the fields whose requirement depends on the fulfillment mode.
func (c Config) Validate() error {
	switch c.FulfillmentMode {
	case FulfillmentModeHTTP:
		if c.OrderServiceBaseURL == "" {
			return fmt.Errorf("%w: ORDER_SERVICE_BASE_URL is required in %q mode", ErrInvalidConfig, c.FulfillmentMode)
		}
	case FulfillmentModeKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("%w: KAFKA_BROKERS is required in %q mode", ErrInvalidConfig, c.FulfillmentMode)
		}
	default:
		return fmt.Errorf("%w: unsupported FULFILLMENT_MODE %q", ErrInvalidConfig, c.FulfillmentMode)
	}

	if c.WebhookMaxBodyBytes <= 0 {
		return fmt.Errorf("%w: WEBHOOK_MAX_BODY_BYTES must be positive", ErrInvalidConfig)
	}

	return nil
}

package app

import (
	"fmt"
	"log/slog"

	"CakeshopWebhooks/config"
	"CakeshopWebhooks/internal/domain/checkout"
	"CakeshopWebhooks/internal/external/kafka"
	"CakeshopWebhooks/internal/external/orderservice"
	"CakeshopWebhooks/internal/fulfillment"
	"CakeshopWebhooks/pkg/health"
)

// fulfillmentBackend is the fulfiller selected by FULFILLMENT_MODE together
// with the readiness check and cleanup of the resource behind it.
type fulfillmentBackend struct {
	fulfiller checkout.Fulfiller
	checker   health.Checker
	close     func() error
}

func newFulfillmentBackend(cfg config.Config) (fulfillmentBackend, error) {
	switch cfg.FulfillmentMode {
	case config.FulfillmentModeHTTP:
		slog.Info("Fulfillment mode: http",
			slog.String("order_service", cfg.OrderServiceBaseURL),
			slog.Duration("timeout", cfg.OrderServiceTimeout))

		client := orderservice.NewClient(orderservice.Config{
			BaseURL: cfg.OrderServiceBaseURL,
			Timeout: cfg.OrderServiceTimeout,
		})
		return fulfillmentBackend{
			fulfiller: fulfillment.WithMetrics(cfg.FulfillmentMode, fulfillment.NewHTTPFulfiller(client)),
			checker:   health.NewHTTPChecker("order-service", client.HealthURL(), nil),
			close:     client.Close,
		}, nil

	case config.FulfillmentModeKafka:
		slog.Info("Fulfillment mode: kafka",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaFulfillmentTopic))

		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaFulfillmentTopic)
		return fulfillmentBackend{
			fulfiller: fulfillment.WithMetrics(cfg.FulfillmentMode, fulfillment.NewAsyncFulfiller(publisher)),
			checker:   health.NewKafkaChecker(cfg.KafkaBrokers),
			close:     publisher.Close,
		}, nil

	default:
		return fulfillmentBackend{}, fmt.Errorf("%w: unsupported FULFILLMENT_MODE %q", config.ErrInvalidConfig, cfg.FulfillmentMode)
	}
}

package rabbitmq_client

import (
	"context"
	"log/slog"

	"github.com/init-pkg/report-parser/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// New dials the broker, or returns nil when no url is configured.
func New(cfg *config.Config, lc fx.Lifecycle, log *slog.Logger) (*amqp.Connection, error) {
	if cfg.Clients.RabbitMQ.Url == "" {
		log.Info("rabbitmq disabled, queue consumer not started")
		return nil, nil
	}

	conn, e := amqp.Dial(cfg.Clients.RabbitMQ.Url)
	if e != nil {
		return nil, e
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if conn.IsClosed() {
				return nil
			}
			return conn.Close()
		},
	})
	return conn, nil
}

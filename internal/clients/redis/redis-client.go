package redis_client

import (
	"context"
	"log/slog"

	"github.com/init-pkg/report-parser/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// New returns nil when no Redis url is configured; consumers treat a nil
// client as "no cache".
func New(cfg *config.Config, lc fx.Lifecycle, log *slog.Logger) (*redis.Client, error) {
	if cfg.Clients.Redis.Url == "" {
		log.Info("redis disabled, downloads are not cached")
		return nil, nil
	}

	opts, e := redis.ParseURL(cfg.Clients.Redis.Url)
	if e != nil {
		return nil, e
	}
	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if e := client.Ping(ctx).Err(); e != nil {
				// the cache is optional, keep serving without it
				log.Warn("redis unreachable", "addr", opts.Addr, "error", e)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

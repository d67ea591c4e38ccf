package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/init-pkg/report-parser/internal/config"
	http_server "github.com/init-pkg/report-parser/internal/http-server"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func coreOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.MustLoad,
			newLogger,
			http_server.New,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With("component", "fx")}
		}),
		fx.Invoke(startHttpServer),
	)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if e := level.UnmarshalText([]byte(cfg.Log.Level)); e != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Log.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler).With("app", cfg.App.Name, "env", cfg.App.Env)
	slog.SetDefault(log)
	return log
}

// startHttpServer binds the port during start so a busy address fails the
// application instead of a background goroutine.
func startHttpServer(lc fx.Lifecycle, cfg *config.Config, server *fiber.App, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, e := net.Listen("tcp", cfg.Http.Addr())
			if e != nil {
				return e
			}
			go func() {
				e := server.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
				if e != nil && !errors.Is(e, net.ErrClosed) {
					log.Error("http server stopped", "error", e)
				}
			}()
			log.Info("http server listening", "addr", cfg.Http.Addr())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.ShutdownWithContext(ctx)
		},
	})
}

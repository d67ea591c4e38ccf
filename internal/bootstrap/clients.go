package bootstrap

import (
	"github.com/init-pkg/report-parser/domain/app"
	rabbitmq_client "github.com/init-pkg/report-parser/internal/clients/rabbitmq"
	redis_client "github.com/init-pkg/report-parser/internal/clients/redis"
	remote_file_client "github.com/init-pkg/report-parser/internal/clients/remote-file"
	"go.uber.org/fx"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			redis_client.New,
			rabbitmq_client.New,
			fx.Annotate(remote_file_client.New, fx.As(new(app.FileFetcher))),
		),
	)
}

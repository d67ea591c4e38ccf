package report_parser_module

import (
	"github.com/init-pkg/report-parser/domain/app"
	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	report_decoder "github.com/init-pkg/report-parser/internal/app/report-parser/decoder"
	report_parser_service "github.com/init-pkg/report-parser/internal/app/report-parser/service"
	report_parser_amqp_consumer "github.com/init-pkg/report-parser/internal/app/report-parser/transports/amqp"
	report_parser_http_handler "github.com/init-pkg/report-parser/internal/app/report-parser/transports/http"
	"github.com/init-pkg/report-parser/internal/config"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			NewParser,
			fx.Annotate(report_decoder.New, fx.As(new(app.SpreadsheetDecoder))),
			fx.Annotate(report_parser_service.New, fx.As(new(app.ReportParserService))),
			report_parser_http_handler.New,
			report_parser_amqp_consumer.New,
		),
		fx.Invoke(registerTransports),
	)
}

// NewParser builds the parser from the built-in profile and the optional
// profile file. A broken profile file stops the application at startup.
func NewParser(cfg *config.Config) (*report_core.Parser, error) {
	profile, e := config.LoadProfile(cfg.Report)
	if e != nil {
		return nil, e
	}
	return report_core.NewParser(profile), nil
}

func registerTransports(
	lc fx.Lifecycle,
	server *fiber.App,
	httpHandler *report_parser_http_handler.ReportParserHttpHandler,
	amqpConsumer *report_parser_amqp_consumer.ReportParserAmqpConsumer,
) {
	httpHandler.Register(server)
	lc.Append(fx.Hook{
		OnStart: amqpConsumer.Start,
		OnStop:  amqpConsumer.Stop,
	})
}

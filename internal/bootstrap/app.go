package bootstrap

import (
	report_parser_module "github.com/init-pkg/report-parser/internal/app/report-parser"
	"go.uber.org/fx"
)

func appOptions() fx.Option {
	return fx.Options(
		report_parser_module.Register(),
	)
}

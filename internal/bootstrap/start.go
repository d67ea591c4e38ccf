package bootstrap

import (
	"time"

	"go.uber.org/fx"
)

// stopTimeout leaves room for in-flight downloads and queue replies.
const stopTimeout = 45 * time.Second

func options() fx.Option {
	return fx.Options(
		coreOptions(),
		appOptions(),
		clientsOptions(),
		fx.StopTimeout(stopTimeout),
	)
}

func Run() {
	fx.New(options()).Run()
}

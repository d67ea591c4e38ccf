package http_server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/init-pkg/report-parser/domain/dtos"
	"github.com/init-pkg/report-parser/internal/config"
	"github.com/init-pkg/report-parser/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(out any) error {
	return v.validate.Struct(out)
}

// New builds the fiber app shared by all HTTP handlers. Every error a
// handler returns is rendered as the JSON error envelope.
func New(cfg *config.Config, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:         cfg.App.Name,
		BodyLimit:       cfg.Http.BodyLimit,
		ReadTimeout:     30 * time.Second,
		StructValidator: &structValidator{validator.New()},
		ErrorHandler:    errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(accessLog(log))

	return app
}

func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(fctx fiber.Ctx, e error) error {
		err, ok := errs.As(e)
		if !ok {
			var fe *fiber.Error
			if errors.As(e, &fe) {
				err = errs.NewAppError(&errs.ErrorOpts{
					Code:    codeForStatus(fe.Code),
					Status:  fe.Code,
					Message: fe.Message,
				})
			} else {
				log.Error("unhandled error", "path", fctx.Path(), "requestId", requestid.FromContext(fctx), "error", e)
				err = errs.WrapAppError(e, &errs.ErrorOpts{Message: "internal error"})
			}
		}
		return fctx.Status(err.Status()).JSON(dtos.ErrorEnvelope(err))
	}
}

func codeForStatus(status int) string {
	return strings.ReplaceAll(http.StatusText(status), " ", "")
}

func accessLog(log *slog.Logger) fiber.Handler {
	return func(fctx fiber.Ctx) error {
		started := time.Now()
		if err := fctx.Next(); err != nil {
			// render now so the logged status is the one sent
			if err := fctx.App().ErrorHandler(fctx, err); err != nil {
				return err
			}
		}
		log.Info("http request",
			"method", fctx.Method(),
			"path", fctx.Path(),
			"status", fctx.Response().StatusCode(),
			"requestId", requestid.FromContext(fctx),
			"took", time.Since(started),
		)
		return nil
	}
}

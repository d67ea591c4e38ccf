package report_parser_http_handler

import (
	"io"
	"net/http"

	_ "github.com/init-pkg/report-parser/docs"
	"github.com/init-pkg/report-parser/domain/app"
	"github.com/init-pkg/report-parser/domain/dtos"
	"github.com/init-pkg/report-parser/internal/errs"

	swagger "github.com/Flussen/swagger-fiber-v3"
	"github.com/gofiber/fiber/v3"
	"github.com/swaggo/swag"
)

const (
	parseRoute  = "/parse-ozon-report"
	uploadField = "file"
)

type ReportParserHttpHandler struct {
	service app.ReportParserService
}

func New(service app.ReportParserService) *ReportParserHttpHandler {
	return &ReportParserHttpHandler{service}
}

func (this *ReportParserHttpHandler) Register(mainApp *fiber.App) {
	mainApp.Get("/health", this.health)
	mainApp.Get("/swagger/doc.json", this.swaggerDoc)
	mainApp.Get("/swagger/*", swagger.HandlerDefault)

	var api = mainApp.Group("/api")

	api.Post(parseRoute, this.parseOzonReport)
	api.All(parseRoute, this.methodNotAllowed)
	api.Post(parseRoute+"/upload", this.uploadOzonReport)
}

// parseOzonReport godoc
//
//	@Summary	Parse an Ozon sales report
//	@Tags		report-parser
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dtos.ParseReportRequest	true	"Report location"
//	@Success	200		{object}	dtos.ReportEnvelope
//	@Failure	400		{object}	dtos.ReportEnvelope
//	@Failure	415		{object}	dtos.ReportEnvelope
//	@Failure	422		{object}	dtos.ReportEnvelope
//	@Failure	502		{object}	dtos.ReportEnvelope
//	@Router		/api/parse-ozon-report [post]
func (this *ReportParserHttpHandler) parseOzonReport(fctx fiber.Ctx) error {
	var req dtos.ParseReportRequest
	if e := fctx.Bind().WithoutAutoHandling().JSON(&req); e != nil {
		return errs.BadRequest("body must be a JSON object with an absolute file_url", map[string]any{
			"reason": e.Error(),
		})
	}

	res, err := this.service.ParseURL(fctx.Context(), req.Target())
	if err != nil {
		return err
	}
	return fctx.JSON(dtos.SuccessEnvelope(res))
}

// uploadOzonReport godoc
//
//	@Summary	Parse an uploaded Ozon sales report
//	@Tags		report-parser
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"Report file (.xlsx or .xls)"
//	@Success	200		{object}	dtos.ReportEnvelope
//	@Failure	400		{object}	dtos.ReportEnvelope
//	@Failure	415		{object}	dtos.ReportEnvelope
//	@Failure	422		{object}	dtos.ReportEnvelope
//	@Router		/api/parse-ozon-report/upload [post]
func (this *ReportParserHttpHandler) uploadOzonReport(fctx fiber.Ctx) error {
	header, e := fctx.FormFile(uploadField)
	if e != nil {
		return errs.BadRequest("multipart form must carry the report in the \"file\" field", map[string]any{
			"reason": e.Error(),
		})
	}
	file, e := header.Open()
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	defer file.Close()

	data, e := io.ReadAll(file)
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	res, err := this.service.ParseFile(fctx.Context(), data)
	if err != nil {
		return err
	}
	res.Source = header.Filename
	return fctx.JSON(dtos.SuccessEnvelope(res))
}

func (this *ReportParserHttpHandler) methodNotAllowed(fctx fiber.Ctx) error {
	fctx.Set(fiber.HeaderAllow, fiber.MethodPost)
	return errs.NewAppError(&errs.ErrorOpts{
		Code:    errs.CodeMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
		Message: fctx.Method() + " is not allowed, use POST",
	})
}

func (this *ReportParserHttpHandler) health(fctx fiber.Ctx) error {
	return fctx.JSON(fiber.Map{"ok": true})
}

func (this *ReportParserHttpHandler) swaggerDoc(fctx fiber.Ctx) error {
	doc, e := swag.ReadDoc()
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	fctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return fctx.SendString(doc)
}

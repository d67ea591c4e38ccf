package report_parser_service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/init-pkg/report-parser/domain/app"
	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	"github.com/init-pkg/report-parser/internal/errs"
)

type ReportParserService struct {
	fetcher app.FileFetcher
	decoder app.SpreadsheetDecoder
	parser  *report_core.Parser
	log     *slog.Logger
}

var _ app.ReportParserService = &ReportParserService{}

func New(fetcher app.FileFetcher, decoder app.SpreadsheetDecoder, parser *report_core.Parser, log *slog.Logger) *ReportParserService {
	return &ReportParserService{fetcher, decoder, parser, log}
}

func (this *ReportParserService) ParseURL(ctx context.Context, url string) (*app.ParseReportResult, errs.Error) {
	file, err := this.fetcher.Fetch(ctx, url)
	if err != nil {
		this.log.Warn("report download failed", "url", url, "code", err.Code(), "error", err.Error())
		return nil, err
	}

	res, err := this.parse(ctx, file)
	if err != nil {
		return nil, err
	}
	res.Source = url
	return res, nil
}

func (this *ReportParserService) ParseFile(ctx context.Context, file []byte) (*app.ParseReportResult, errs.Error) {
	return this.parse(ctx, file)
}

func (this *ReportParserService) parse(ctx context.Context, file []byte) (*app.ParseReportResult, errs.Error) {
	if e := ctx.Err(); e != nil {
		return nil, errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	started := time.Now()

	wb, err := this.decoder.Decode(file)
	if err != nil {
		this.log.Warn("report decode failed", "bytes", len(file), "error", err.Error())
		return nil, err
	}

	parser := this.parser
	if wb.Date1904 && parser.Profile().Epoch.Equal(report_core.Epoch1900) {
		parser = parser.WithEpoch(report_core.Epoch1904)
	}

	res, e := parser.Parse(wb)
	if e != nil {
		return nil, this.failure(wb, e)
	}

	if res.Layout.LowConfidence {
		this.log.Warn("header located by fixed row fallback", "sheet", res.Sheet, "headerRow", res.Layout.HeaderRow, "headers", res.Layout.Headers)
	}
	this.log.Info("report parsed",
		"format", wb.Format,
		"sheet", res.Sheet,
		"layout", res.Layout.String(),
		"operations", res.Count,
		"sales", res.Summary.SalesCount,
		"returns", res.Summary.ReturnsCount,
		"took", time.Since(started),
	)

	return &app.ParseReportResult{
		Format:     wb.Format,
		Sheet:      res.Sheet,
		Count:      res.Count,
		Operations: res.Operations,
		Summary:    res.Summary,
		Layout:     res.Layout,
		Columns:    res.Columns,
	}, nil
}

// failure maps a core failure to an application error with the failure
// kind as code and its diagnostics as details.
func (this *ReportParserService) failure(wb *app.DecodedWorkbook, e error) errs.Error {
	f, ok := report_core.AsFailure(e)
	if !ok {
		this.log.Error("report parse failed", "error", e)
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	this.log.Warn("report rejected",
		"kind", f.Kind,
		"sheet", f.Sheet,
		"format", wb.Format,
		"headers", f.Headers,
		"error", f.Message,
	)
	return errs.WrapAppError(f, &errs.ErrorOpts{
		Code:    string(f.Kind),
		Status:  http.StatusUnprocessableEntity,
		Message: f.Message,
		Details: f,
	})
}

package app

import (
	"context"

	"github.com/init-pkg/report-parser/internal/errs"
)

type ReportParserService interface {
	// ParseURL downloads the report at url and parses it.
	ParseURL(ctx context.Context, url string) (*ParseReportResult, errs.Error)
	// ParseFile parses an already downloaded report.
	ParseFile(ctx context.Context, file []byte) (*ParseReportResult, errs.Error)
}

type FileFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, errs.Error)
}

type SpreadsheetDecoder interface {
	Decode(data []byte) (*DecodedWorkbook, errs.Error)
}

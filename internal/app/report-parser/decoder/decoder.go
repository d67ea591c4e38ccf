package report_decoder

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"

	"github.com/init-pkg/report-parser/domain/app"
	"github.com/init-pkg/report-parser/internal/errs"
)

const (
	FormatXLSX = "xlsx"
	FormatXLS  = "xls"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// SpreadsheetDecoder turns downloaded bytes into a workbook of typed cells.
// The format is sniffed from the content, never from a file name.
type SpreadsheetDecoder struct {
	log *slog.Logger
}

var _ app.SpreadsheetDecoder = &SpreadsheetDecoder{}

func New(log *slog.Logger) *SpreadsheetDecoder {
	return &SpreadsheetDecoder{log}
}

func (this *SpreadsheetDecoder) Decode(data []byte) (*app.DecodedWorkbook, errs.Error) {
	switch Sniff(data) {
	case FormatXLSX:
		return this.decodeXLSX(data)
	case FormatXLS:
		return this.decodeXLS(data)
	}
	return nil, errs.NewAppError(&errs.ErrorOpts{
		Code:    errs.CodeUnsupportedFile,
		Status:  http.StatusUnsupportedMediaType,
		Message: "file is neither xlsx nor xls",
		Details: map[string]any{"size": len(data)},
	})
}

// Sniff returns FormatXLSX, FormatXLS or "".
func Sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	}
	return ""
}

func decodeFailed(format string, e error) errs.Error {
	return errs.WrapAppError(e, &errs.ErrorOpts{
		Code:    errs.CodeUnsupportedFile,
		Status:  http.StatusUnsupportedMediaType,
		Message: "cannot read " + format + " workbook: " + e.Error(),
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

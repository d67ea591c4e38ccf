package dtos

import (
	"github.com/init-pkg/report-parser/domain/app"
	"github.com/init-pkg/report-parser/internal/errs"
)

// ReportEnvelope is the response body of every transport. On success the
// result fields sit next to "ok"; on failure only "error" is set.
type ReportEnvelope struct {
	Ok bool `json:"ok"`
	*app.ParseReportResult
	Error *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func SuccessEnvelope(res *app.ParseReportResult) ReportEnvelope {
	return ReportEnvelope{Ok: true, ParseReportResult: res}
}

func ErrorEnvelope(err errs.Error) ReportEnvelope {
	return ReportEnvelope{Error: &ErrorBody{
		Code:    err.Code(),
		Message: err.Error(),
		Details: err.Details(),
	}}
}

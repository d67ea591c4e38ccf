package report_core

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	NoSheets              FailureKind = "NoSheets"
	SheetNotFound         FailureKind = "SheetNotFound"
	EmptySheet            FailureKind = "EmptySheet"
	HeaderNotFound        FailureKind = "HeaderNotFound"
	RequiredColumnMissing FailureKind = "RequiredColumnMissing"
	NoDataRows            FailureKind = "NoDataRows"
)

// HeaderSampleRows bounds the diagnostic sample attached to HeaderNotFound.
const HeaderSampleRows = 25

// Failure is the only error the core returns. Every field besides Kind and
// Message is diagnostic payload and may be zero.
type Failure struct {
	Kind       FailureKind `json:"kind"`
	Message    string      `json:"message"`
	Sheet      string      `json:"sheet,omitempty"`
	SheetNames []string    `json:"sheet_names,omitempty"`
	HeaderRow  *int        `json:"header_row,omitempty"`
	Headers    []string    `json:"headers,omitempty"`
	Sample     [][]string  `json:"sample,omitempty"`
}

func (f *Failure) Error() string {
	if f.Sheet != "" {
		return fmt.Sprintf("%s: %s (sheet %q)", f.Kind, f.Message, f.Sheet)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Is matches failures by kind, so errors.Is(err, &Failure{Kind: EmptySheet}) works.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func headerNotFound(g Grid) *Failure {
	n := min(len(g), HeaderSampleRows)
	sample := make([][]string, 0, n)
	for r := 0; r < n; r++ {
		sample = append(sample, g.RowTexts(r))
	}
	return &Failure{
		Kind:    HeaderNotFound,
		Message: "no header row matched any layout strategy",
		Sample:  sample,
	}
}

func intPtr(v int) *int { return &v }

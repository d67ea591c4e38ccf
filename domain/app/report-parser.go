package app

import (
	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
)

// DecodedWorkbook is a workbook plus what the decoder learned about the file.
type DecodedWorkbook struct {
	report_core.Workbook
	Format   string
	Date1904 bool
}

type ParseReportResult struct {
	Source     string                   `json:"source,omitempty"`
	Format     string                   `json:"format"`
	Sheet      string                   `json:"sheet"`
	Count      int                      `json:"count"`
	Operations []report_core.Operation  `json:"operations"`
	Summary    report_core.Summary      `json:"summary"`
	Layout     report_core.HeaderLayout `json:"layout"`
	Columns    report_core.ColumnMap    `json:"columns"`
}

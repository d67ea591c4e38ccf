package report_decoder

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/init-pkg/report-parser/domain/app"
	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	"github.com/init-pkg/report-parser/internal/errs"

	"github.com/xuri/excelize/v2"
)

func (this *SpreadsheetDecoder) decodeXLSX(data []byte) (*app.DecodedWorkbook, errs.Error) {
	f, e := excelize.OpenReader(bytes.NewReader(data))
	if e != nil {
		return nil, decodeFailed(FormatXLSX, e)
	}

	var date1904 bool
	if props, e := f.GetWorkbookProps(); e == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	wb := &xlsxWorkbook{
		decoder:  this,
		file:     f,
		date1904: date1904,
		names:    f.GetSheetList(),
		grids:    make(map[string]report_core.Grid),
		styles:   make(map[int]bool),
	}
	return &app.DecodedWorkbook{Workbook: wb, Format: FormatXLSX, Date1904: date1904}, nil
}

// xlsxWorkbook reads sheets on first access.
type xlsxWorkbook struct {
	decoder  *SpreadsheetDecoder
	file     *excelize.File
	date1904 bool
	names    []string

	mu     sync.Mutex
	grids  map[string]report_core.Grid
	styles map[int]bool // style id -> is a date format
}

func (w *xlsxWorkbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

func (w *xlsxWorkbook) Sheet(name string) (report_core.Grid, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if g, ok := w.grids[name]; ok {
		return g, true
	}
	g, e := w.readSheet(name)
	if e != nil {
		w.decoder.log.Warn("xlsx sheet unreadable", "sheet", name, "error", e)
		return nil, false
	}
	w.grids[name] = g
	return g, true
}

func (w *xlsxWorkbook) readSheet(sheet string) (report_core.Grid, error) {
	rows, e := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if e != nil {
		return nil, e
	}

	grid := make(report_core.Grid, len(rows))
	for r, raw := range rows {
		row := make(report_core.Row, len(raw))
		for c, v := range raw {
			if v == "" {
				row[c] = report_core.EmptyCell()
				continue
			}
			axis, e := excelize.CoordinatesToCellName(c+1, r+1)
			if e != nil {
				return nil, e
			}
			row[c] = w.typedCell(sheet, axis, v)
		}
		grid[r] = row
	}

	if e := w.fillMerged(sheet, grid); e != nil {
		return nil, e
	}
	return grid, nil
}

func (w *xlsxWorkbook) typedCell(sheet, axis, raw string) report_core.Cell {
	kind, e := w.file.GetCellType(sheet, axis)
	if e != nil {
		return report_core.TextCell(raw)
	}

	switch kind {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		v, e := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if e != nil || !isFinite(v) {
			return report_core.TextCell(raw)
		}
		if w.isDateStyled(sheet, axis) {
			if t, e := excelize.ExcelDateToTime(v, w.date1904); e == nil {
				return report_core.DateCell(t)
			}
		}
		return report_core.NumberCell(v)
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, e := time.Parse(layout, raw); e == nil {
				return report_core.DateCell(t)
			}
		}
	}
	return report_core.TextCell(raw)
}

func (w *xlsxWorkbook) isDateStyled(sheet, axis string) bool {
	id, e := w.file.GetCellStyle(sheet, axis)
	if e != nil || id == 0 {
		return false
	}
	if isDate, ok := w.styles[id]; ok {
		return isDate
	}
	var isDate bool
	if style, e := w.file.GetStyle(id); e == nil && style != nil {
		isDate = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	w.styles[id] = isDate
	return isDate
}

// isDateFormat recognizes the built-in date and date-time formats and
// custom format codes with day or year tokens.
func isDateFormat(id int, custom *string) bool {
	if custom != nil {
		return customDateCode(*custom)
	}
	switch {
	case 14 <= id && id <= 22, 45 <= id && id <= 47:
		return true
	case 27 <= id && id <= 36, 50 <= id && id <= 58:
		return true
	}
	return false
}

func customDateCode(code string) bool {
	var (
		b       strings.Builder
		quoted  bool
		bracket bool
	)
	for _, r := range code {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	return strings.ContainsAny(s, "dy")
}

// fillMerged copies the top-left value of every merged range into the rest
// of the range, so multi-column and multi-row labels read as filled.
// Numbers are left in the top-left cell only: a merged amount is one amount.
func (w *xlsxWorkbook) fillMerged(sheet string, grid report_core.Grid) error {
	merges, e := w.file.GetMergeCells(sheet)
	if e != nil {
		return e
	}
	for _, m := range merges {
		startCol, startRow, e := excelize.CellNameToCoordinates(m.GetStartAxis())
		if e != nil {
			continue
		}
		endCol, endRow, e := excelize.CellNameToCoordinates(m.GetEndAxis())
		if e != nil {
			continue
		}
		top := grid.At(startRow-1, startCol-1)
		if top.IsEmpty() || top.Kind == report_core.CellNumber {
			continue
		}
		for r := startRow - 1; r < endRow && r < len(grid); r++ {
			for c := startCol - 1; c < endCol; c++ {
				if r == startRow-1 && c == startCol-1 {
					continue
				}
				for len(grid[r]) <= c {
					grid[r] = append(grid[r], report_core.EmptyCell())
				}
				grid[r][c] = top
			}
		}
	}
	return nil
}

package report_decoder

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/init-pkg/report-parser/domain/app"
	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	"github.com/init-pkg/report-parser/internal/errs"

	"github.com/extrame/xls"
)

// legacy exports are cp1251 more often than not
var xlsCharsets = []string{"windows-1251", "utf-8"}

func (this *SpreadsheetDecoder) decodeXLS(data []byte) (*app.DecodedWorkbook, errs.Error) {
	var (
		book *xls.WorkBook
		e    error
	)
	for _, charset := range xlsCharsets {
		book, e = openXLS(data, charset)
		if e == nil && book != nil {
			break
		}
	}
	if e != nil {
		return nil, decodeFailed(FormatXLS, e)
	}
	if book == nil {
		return nil, decodeFailed(FormatXLS, errors.New("no workbook stream"))
	}

	sheets := make([]report_core.Sheet, 0, book.NumSheets())
	for i := 0; i < book.NumSheets(); i++ {
		sheet, e := readXLSSheet(book, i)
		if e != nil {
			this.log.Warn("xls sheet unreadable", "index", i, "error", e)
			continue
		}
		sheets = append(sheets, *sheet)
	}

	return &app.DecodedWorkbook{Workbook: report_core.NewWorkbook(sheets...), Format: FormatXLS}, nil
}

// openXLS shields callers from panics inside the OLE reader on corrupt input.
func openXLS(data []byte, charset string) (book *xls.WorkBook, e error) {
	defer func() {
		if r := recover(); r != nil {
			book, e = nil, fmt.Errorf("corrupt xls: %v", r)
		}
	}()
	return xls.OpenReader(bytes.NewReader(data), charset)
}

func readXLSSheet(book *xls.WorkBook, index int) (sheet *report_core.Sheet, e error) {
	defer func() {
		if r := recover(); r != nil {
			sheet, e = nil, fmt.Errorf("corrupt sheet: %v", r)
		}
	}()

	ws := book.GetSheet(index)
	if ws == nil {
		return nil, fmt.Errorf("sheet %d missing", index)
	}

	var grid report_core.Grid
	if ws.MaxRow > 0 || hasRow(ws, 0) {
		grid = make(report_core.Grid, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			grid = append(grid, readXLSRow(ws, r))
		}
	}
	return &report_core.Sheet{Name: ws.Name, Grid: grid}, nil
}

// hasRow reports whether row r exists; WorkSheet.Row panics on missing rows.
func hasRow(ws *xls.WorkSheet, r int) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return ws.Row(r) != nil
}

func readXLSRow(ws *xls.WorkSheet, r int) report_core.Row {
	if !hasRow(ws, r) {
		return nil
	}
	row := ws.Row(r)
	out := make(report_core.Row, row.LastCol())
	for c := range out {
		out[c] = inferCell(row.Col(c))
	}
	return out
}

// inferCell restores cell kinds from the text the xls reader produces:
// numbers are printed in shortest form and user-formatted dates as RFC 3339.
func inferCell(s string) report_core.Cell {
	if strings.TrimSpace(s) == "" {
		return report_core.EmptyCell()
	}
	if v, e := strconv.ParseFloat(s, 64); e == nil && isFinite(v) && strconv.FormatFloat(v, 'f', -1, 64) == s {
		return report_core.NumberCell(v)
	}
	if t, e := time.Parse(time.RFC3339, s); e == nil {
		return report_core.DateCell(t)
	}
	return report_core.TextCell(s)
}

package report_core

import "time"

type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellDate
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is one grid position as produced by the spreadsheet decoder.
// Only the field matching Kind is meaningful.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Date   time.Time
}

func EmptyCell() Cell           { return Cell{Kind: CellEmpty} }
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }
func TextCell(s string) Cell    { return Cell{Kind: CellText, Text: s} }
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }
func (c Cell) IsEmpty() bool    { return c.Kind == CellEmpty }
func (c Cell) IsBlank() bool {
	return c.Kind == CellEmpty || (c.Kind == CellText && isBlankText(c.Text))
}

type Row []Cell

// Grid is a read-only, possibly ragged, matrix of cells.
type Grid []Row

// At returns the cell at (r, c) or an empty cell when the position is
// outside the grid or past the end of a short row.
func (g Grid) At(r, c int) Cell {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return EmptyCell()
	}
	return g[r][c]
}

func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// RowTexts coerces every cell of row r to trimmed text.
func (g Grid) RowTexts(r int) []string {
	if r < 0 || r >= len(g) {
		return nil
	}
	out := make([]string, len(g[r]))
	for i, c := range g[r] {
		out[i] = ToText(c)
	}
	return out
}

func (g Grid) isEmptyRow(r int) bool {
	if r < 0 || r >= len(g) {
		return true
	}
	for _, c := range g[r] {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

type Sheet struct {
	Name string
	Grid Grid
}

// Workbook is the decoder's view of a spreadsheet file.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Grid, bool)
}

type memoryWorkbook struct {
	names  []string
	sheets map[string]Grid
}

// NewWorkbook keeps sheets in the given order.
func NewWorkbook(sheets ...Sheet) Workbook {
	wb := &memoryWorkbook{
		names:  make([]string, 0, len(sheets)),
		sheets: make(map[string]Grid, len(sheets)),
	}
	for _, s := range sheets {
		if _, ok := wb.sheets[s.Name]; !ok {
			wb.names = append(wb.names, s.Name)
		}
		wb.sheets[s.Name] = s.Grid
	}
	return wb
}

func (w *memoryWorkbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

func (w *memoryWorkbook) Sheet(name string) (Grid, bool) {
	g, ok := w.sheets[name]
	return g, ok
}

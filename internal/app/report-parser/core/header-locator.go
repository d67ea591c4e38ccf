package report_core

import (
	"strings"
)

const NoColumn = -1

// HeaderLayout describes where the column labels of a report are.
// For single-row layouts BlockRow is -1. IndexColumn is the row numbering
// column ("№") when the layout has one, -1 otherwise.
type HeaderLayout struct {
	Strategy      string   `json:"strategy"`
	HeaderRow     int      `json:"header_row"`
	BlockRow      int      `json:"block_row"`
	DataStart     int      `json:"data_start"`
	IndexColumn   int      `json:"index_column"`
	Headers       []string `json:"headers"`
	Blocks        []string `json:"blocks,omitempty"`
	LowConfidence bool     `json:"low_confidence,omitempty"`
}

func (l HeaderLayout) TwoTier() bool { return l.BlockRow >= 0 }

// LayoutStrategy is one way of recognizing a report layout. Locate must be
// pure: the same grid always yields the same layout.
type LayoutStrategy interface {
	Name() string
	Locate(g Grid) (HeaderLayout, bool)
}

// LocateHeader tries strategies in order and returns the first match.
// A header whose data rows cannot be found is a NoDataRows failure, not a
// reason to try the next strategy.
func LocateHeader(g Grid, strategies []LayoutStrategy) (HeaderLayout, error) {
	for _, s := range strategies {
		layout, ok := s.Locate(g)
		if !ok {
			continue
		}
		if layout.DataStart < 0 || layout.DataStart >= len(g) {
			return HeaderLayout{}, &Failure{
				Kind:      NoDataRows,
				Message:   "no data rows after the header",
				HeaderRow: intPtr(layout.HeaderRow),
				Headers:   layout.Headers,
			}
		}
		return layout, nil
	}
	return HeaderLayout{}, headerNotFound(g)
}

// MarkerStrategy picks the first row whose joined text contains a marker.
type MarkerStrategy struct {
	Markers []string
	// IndexLabels name the row numbering column. When the header has one,
	// data starts at the first numeric index cell and ends at the first
	// non-numeric one.
	IndexLabels []string
}

func (s MarkerStrategy) Name() string { return "marker" }

func (s MarkerStrategy) Locate(g Grid) (HeaderLayout, bool) {
	markers := foldAll(s.Markers)
	if len(markers) == 0 {
		return HeaderLayout{}, false
	}
	for r := range g {
		joined := foldLabel(strings.Join(g.RowTexts(r), " "))
		if joined == "" || !containsAny(joined, markers) {
			continue
		}
		headers := g.RowTexts(r)
		layout := HeaderLayout{
			Strategy:    s.Name(),
			HeaderRow:   r,
			BlockRow:    -1,
			DataStart:   r + 1,
			IndexColumn: findIndexColumn(headers, foldAll(s.IndexLabels)),
			Headers:     headers,
		}
		if layout.IndexColumn != NoColumn {
			layout.DataStart = firstNumericRow(g, r+1, layout.IndexColumn)
		}
		return layout, true
	}
	return HeaderLayout{}, false
}

// TwoTierStrategy recognizes a block row (grouping columns under "sold" /
// "returned") followed by a sub-header row of field names. The block row is
// found by a marker in its first cell, which is also the row numbering column.
type TwoTierStrategy struct {
	BlockMarkers []string
}

func (s TwoTierStrategy) Name() string { return "two-tier" }

func (s TwoTierStrategy) Locate(g Grid) (HeaderLayout, bool) {
	markers := foldAll(s.BlockMarkers)
	if len(markers) == 0 {
		return HeaderLayout{}, false
	}
	for r := range g {
		first := foldLabel(ToText(g.At(r, 0)))
		if first == "" || !containsAny(first, markers) {
			continue
		}
		// a numbered row right below means a flat header, not a block row
		if r+1 >= len(g) || IsNumeric(g.At(r+1, 0)) {
			return HeaderLayout{}, false
		}
		blocks := g.RowTexts(r)
		return HeaderLayout{
			Strategy:    s.Name(),
			HeaderRow:   r + 1,
			BlockRow:    r,
			DataStart:   firstNumericRow(g, r+2, 0),
			IndexColumn: 0,
			Headers:     mergeHeaderRows(blocks, g.RowTexts(r+1)),
			Blocks:      blocks,
		}, true
	}
	return HeaderLayout{}, false
}

// mergeHeaderRows takes the sub-header label of each column, falling back
// to the block row for columns spanning both rows (unfilled vertical merges).
func mergeHeaderRows(blocks, sub []string) []string {
	out := make([]string, max(len(blocks), len(sub)))
	for i := range out {
		if i < len(sub) && sub[i] != "" {
			out[i] = sub[i]
		} else if i < len(blocks) {
			out[i] = blocks[i]
		}
	}
	return out
}

// FixedRowStrategy trusts a statically configured header row. It is the
// last resort for layouts without recognizable marker text and always
// reports LowConfidence.
type FixedRowStrategy struct {
	Row int
}

func (s FixedRowStrategy) Name() string { return "fixed-row" }

func (s FixedRowStrategy) Locate(g Grid) (HeaderLayout, bool) {
	if s.Row < 0 || s.Row >= len(g) || g.isEmptyRow(s.Row) {
		return HeaderLayout{}, false
	}
	return HeaderLayout{
		Strategy:      s.Name(),
		HeaderRow:     s.Row,
		BlockRow:      -1,
		DataStart:     s.Row + 1,
		IndexColumn:   NoColumn,
		Headers:       g.RowTexts(s.Row),
		LowConfidence: true,
	}, true
}

// firstNumericRow returns -1 when no row from start on has a numeric cell in col.
func firstNumericRow(g Grid, start, col int) int {
	for r := start; r < len(g); r++ {
		if IsNumeric(g.At(r, col)) {
			return r
		}
	}
	return -1
}

func findIndexColumn(headers []string, labels []string) int {
	if len(labels) == 0 {
		return NoColumn
	}
	for i, h := range headers {
		fh := foldLabel(h)
		for _, l := range labels {
			if fh == l {
				return i
			}
		}
	}
	return NoColumn
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := foldLabel(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

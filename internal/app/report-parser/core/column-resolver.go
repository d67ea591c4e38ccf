package report_core

import (
	"fmt"
	"strings"
)

type Field string

const (
	FieldSKU          Field = "sku"
	FieldQtySale      Field = "qty_sale"
	FieldAmountSale   Field = "amount_sale"
	FieldQtyReturn    Field = "qty_return"
	FieldAmountReturn Field = "amount_return"
	FieldOrderNumber  Field = "order_number"
	FieldOrderDate    Field = "order_date"
)

// resolution order; earlier fields claim columns first
var fieldOrder = []Field{
	FieldSKU,
	FieldOrderNumber,
	FieldOrderDate,
	FieldQtySale,
	FieldAmountSale,
	FieldQtyReturn,
	FieldAmountReturn,
}

func Fields() []Field { return append([]Field(nil), fieldOrder...) }

func (f Field) saleRole() bool   { return f == FieldQtySale || f == FieldAmountSale }
func (f Field) returnRole() bool { return f == FieldQtyReturn || f == FieldAmountReturn }

// ColumnMap maps logical fields to grid columns. Absent fields read as NoColumn.
type ColumnMap map[Field]int

func (m ColumnMap) Index(f Field) int {
	if i, ok := m[f]; ok {
		return i
	}
	return NoColumn
}

type FieldLabels struct {
	Exact    []string `yaml:"exact"`
	Contains []string `yaml:"contains"`
}

type ColumnRules struct {
	Labels map[Field]FieldLabels
	// Positional is the fixed column table used for fields no label matched.
	Positional map[Field]int
	// PositionalOnly skips label lookup and uses Positional as-is.
	PositionalOnly bool
	// ReturnBlockMarkers find the first column of the "returned" block in
	// the block row of two-tier layouts.
	ReturnBlockMarkers []string
}

// ResolveColumns maps fields to columns of layout.Headers: exact labels
// first, then substrings, then the positional table. A column taken by one
// field is not offered to later ones, so a label repeated under "sold" and
// "returned" resolves left to right to the sale role first.
func ResolveColumns(layout HeaderLayout, rules ColumnRules) (ColumnMap, error) {
	cols := make(ColumnMap, len(fieldOrder))

	if rules.PositionalOnly {
		for f, i := range rules.Positional {
			if i >= 0 {
				cols[f] = i
			}
		}
		return cols, requireSKU(cols, layout)
	}

	headers := make([]string, len(layout.Headers))
	for i, h := range layout.Headers {
		headers[i] = foldLabel(h)
	}
	returnBlock := returnBlockColumns(layout, foldAll(rules.ReturnBlockMarkers))
	claimed := make(map[int]bool)

	match := func(f Field, labels []string, eq bool) {
		if _, done := cols[f]; done {
			return
		}
		for _, label := range foldAll(labels) {
			for i := range headers {
				if claimed[i] || headers[i] == "" || !allowed(f, i, returnBlock) {
					continue
				}
				if (eq && headers[i] == label) || (!eq && strings.Contains(headers[i], label)) {
					cols[f] = i
					claimed[i] = true
					return
				}
			}
		}
	}

	for _, f := range fieldOrder {
		match(f, rules.Labels[f].Exact, true)
	}
	for _, f := range fieldOrder {
		match(f, rules.Labels[f].Contains, false)
	}
	for _, f := range fieldOrder {
		if _, done := cols[f]; done {
			continue
		}
		if i, ok := rules.Positional[f]; ok && i >= 0 && !claimed[i] {
			cols[f] = i
			claimed[i] = true
		}
	}

	return cols, requireSKU(cols, layout)
}

func requireSKU(cols ColumnMap, layout HeaderLayout) error {
	if cols.Index(FieldSKU) != NoColumn {
		return nil
	}
	return &Failure{
		Kind:      RequiredColumnMissing,
		Message:   fmt.Sprintf("column %q not found in header row %d", FieldSKU, layout.HeaderRow),
		HeaderRow: intPtr(layout.HeaderRow),
		Headers:   layout.Headers,
	}
}

// returnBlockColumns marks the columns under a "returned" block of a
// two-tier layout. Block labels are carried right over empty cells, since
// a merged block label only sits in its first column. Nil means no block
// matched and columns are not constrained.
func returnBlockColumns(layout HeaderLayout, markers []string) []bool {
	if !layout.TwoTier() || len(markers) == 0 {
		return nil
	}
	var (
		in    = make([]bool, len(layout.Headers))
		found bool
		label string
	)
	for i := range in {
		if i < len(layout.Blocks) && layout.Blocks[i] != "" {
			label = foldLabel(layout.Blocks[i])
		}
		if label != "" && containsAny(label, markers) {
			in[i] = true
			found = true
		}
	}
	if !found {
		return nil
	}
	return in
}

func allowed(f Field, col int, returnBlock []bool) bool {
	if returnBlock == nil {
		return true
	}
	switch {
	case f.returnRole():
		return returnBlock[col]
	case f.saleRole():
		return !returnBlock[col]
	}
	return true
}

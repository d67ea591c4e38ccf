package report_core

import (
	"fmt"
	"strings"
	"time"
)

// Result is a successful parse. It is never returned together with an error.
type Result struct {
	Sheet      string       `json:"sheet"`
	Layout     HeaderLayout `json:"layout"`
	Columns    ColumnMap    `json:"columns"`
	Operations []Operation  `json:"operations"`
	Count      int          `json:"count"`
	Summary    Summary      `json:"summary"`
}

// Parser is stateless past construction and safe for concurrent use.
type Parser struct {
	profile Profile
}

func NewParser(profile Profile) *Parser {
	if profile.Epoch.IsZero() {
		profile.Epoch = Epoch1900
	}
	return &Parser{profile: profile}
}

func (p *Parser) Profile() Profile { return p.profile }

// WithEpoch returns a parser reading serial dates from epoch, for
// workbooks that declare their own date system.
func (p *Parser) WithEpoch(epoch time.Time) *Parser {
	profile := p.profile
	profile.Epoch = epoch
	return NewParser(profile)
}

// Parse runs sheet selection, header location, column resolution and row
// mapping. Every error it returns is a *Failure.
func (p *Parser) Parse(wb Workbook) (*Result, error) {
	name, grid, err := p.SelectSheet(wb)
	if err != nil {
		return nil, err
	}
	return p.ParseGrid(name, grid)
}

func (p *Parser) ParseGrid(sheet string, grid Grid) (*Result, error) {
	if len(grid) == 0 {
		return nil, &Failure{Kind: EmptySheet, Message: "selected sheet has no rows", Sheet: sheet}
	}

	layout, err := LocateHeader(grid, p.profile.Strategies)
	if err != nil {
		return nil, withSheet(err, sheet)
	}

	cols, err := ResolveColumns(layout, p.profile.Columns)
	if err != nil {
		return nil, withSheet(err, sheet)
	}

	ops := MapOperations(grid, layout, cols, p.profile.Epoch)
	return &Result{
		Sheet:      sheet,
		Layout:     layout,
		Columns:    cols,
		Operations: ops,
		Count:      len(ops),
		Summary:    Summarize(ops),
	}, nil
}

// SelectSheet prefers the first sheet whose name contains a sheet marker
// and falls back to the first sheet.
func (p *Parser) SelectSheet(wb Workbook) (string, Grid, error) {
	var names []string
	if wb != nil {
		names = wb.SheetNames()
	}
	if len(names) == 0 {
		return "", nil, &Failure{Kind: NoSheets, Message: "workbook has no sheets"}
	}

	pick := names[0]
	markers := foldAll(p.profile.SheetMarkers)
	for _, n := range names {
		if containsAny(foldLabel(n), markers) {
			pick = n
			break
		}
	}

	grid, ok := wb.Sheet(pick)
	if !ok {
		return "", nil, &Failure{
			Kind:       SheetNotFound,
			Message:    fmt.Sprintf("sheet %q is listed but cannot be read", pick),
			Sheet:      pick,
			SheetNames: names,
		}
	}
	return pick, grid, nil
}

func withSheet(err error, sheet string) error {
	if f, ok := AsFailure(err); ok && f.Sheet == "" {
		f.Sheet = sheet
	}
	return err
}

// String is a one-line description used in logs.
func (l HeaderLayout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s header=%d data=%d", l.Strategy, l.HeaderRow, l.DataStart)
	if l.TwoTier() {
		fmt.Fprintf(&b, " block=%d", l.BlockRow)
	}
	if l.IndexColumn != NoColumn {
		fmt.Fprintf(&b, " index=%d", l.IndexColumn)
	}
	return b.String()
}

package config

import (
	"bytes"
	"fmt"
	"os"

	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the YAML shape of a report profile. Empty lists keep the
// built-in values.
type ProfileFile struct {
	SheetMarkers []string `yaml:"sheet_markers"`
	Header       struct {
		BlockMarkers []string `yaml:"block_markers"`
		Markers      []string `yaml:"markers"`
		IndexLabels  []string `yaml:"index_labels"`
		FixedRow     *int     `yaml:"fixed_row"`
	} `yaml:"header"`
	ReturnBlockMarkers []string                                      `yaml:"return_block_markers"`
	Columns            map[report_core.Field]report_core.FieldLabels `yaml:"columns"`
	Positional         map[report_core.Field]int                     `yaml:"positional"`
	PositionalOnly     bool                                          `yaml:"positional_only"`
	Date1904           *bool                                         `yaml:"date1904"`
}

// LoadProfile builds the parser profile from the report config and the
// optional profile file it points to.
func LoadProfile(cfg ReportConfig) (report_core.Profile, error) {
	var file ProfileFile
	if cfg.ProfilePath != "" {
		buf, e := os.ReadFile(cfg.ProfilePath)
		if e != nil {
			return report_core.Profile{}, fmt.Errorf("read profile: %w", e)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(buf))
		decoder.KnownFields(true)
		if e := decoder.Decode(&file); e != nil {
			return report_core.Profile{}, fmt.Errorf("decode profile %s: %w", cfg.ProfilePath, e)
		}
	}
	return file.apply(cfg)
}

func (f *ProfileFile) apply(cfg ReportConfig) (report_core.Profile, error) {
	fixedRow := cfg.FixedHeaderRow
	if f.Header.FixedRow != nil {
		fixedRow = *f.Header.FixedRow
	}
	p := report_core.DefaultProfile(fixedRow)

	if cfg.Date1904 || (f.Date1904 != nil && *f.Date1904) {
		p.Epoch = report_core.Epoch1904
	}
	if len(f.SheetMarkers) > 0 {
		p.SheetMarkers = f.SheetMarkers
	}

	for i, s := range p.Strategies {
		switch st := s.(type) {
		case report_core.TwoTierStrategy:
			if len(f.Header.BlockMarkers) > 0 {
				st.BlockMarkers = f.Header.BlockMarkers
			}
			p.Strategies[i] = st
		case report_core.MarkerStrategy:
			if len(f.Header.Markers) > 0 {
				st.Markers = f.Header.Markers
			}
			if len(f.Header.IndexLabels) > 0 {
				st.IndexLabels = f.Header.IndexLabels
			}
			p.Strategies[i] = st
		}
	}

	if len(f.ReturnBlockMarkers) > 0 {
		p.Columns.ReturnBlockMarkers = f.ReturnBlockMarkers
	}
	known := make(map[report_core.Field]bool)
	for _, field := range report_core.Fields() {
		known[field] = true
	}
	for field, labels := range f.Columns {
		if !known[field] {
			return report_core.Profile{}, fmt.Errorf("profile: unknown column field %q", field)
		}
		current := p.Columns.Labels[field]
		if len(labels.Exact) > 0 {
			current.Exact = labels.Exact
		}
		if len(labels.Contains) > 0 {
			current.Contains = labels.Contains
		}
		p.Columns.Labels[field] = current
	}
	for field := range f.Positional {
		if !known[field] {
			return report_core.Profile{}, fmt.Errorf("profile: unknown positional field %q", field)
		}
	}
	if len(f.Positional) > 0 {
		p.Columns.Positional = f.Positional
	}
	p.Columns.PositionalOnly = f.PositionalOnly
	if i, ok := p.Columns.Positional[report_core.FieldSKU]; p.Columns.PositionalOnly && (!ok || i < 0) {
		return report_core.Profile{}, fmt.Errorf("profile: positional_only needs a sku position")
	}
	return p, nil
}

package report_core

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

const isoDate = "2006-01-02"

var (
	// Epoch1900 is the base of the 1900 date system as spreadsheet
	// applications actually count it (serial 1 == 1899-12-31, the phantom
	// 1900-02-29 included).
	Epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	Epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
)

const (
	msPerDay = 86400000
	// maxSerial is 9999-12-31 in the 1900 date system.
	maxSerial = 2958465
	// maxExponent bounds scientific notation in text numbers.
	maxExponent = 64
)

// ToNumber never fails: anything that is not a readable number becomes 0.
// Text may use a decimal comma and whitespace (including NBSP) as
// thousands separators. A mis-resolved column therefore silently yields
// zeros instead of an error.
func ToNumber(c Cell) float64 {
	switch c.Kind {
	case CellNumber:
		if !isFinite(c.Number) {
			return 0
		}
		return c.Number
	case CellText:
		v, ok := parseLocalizedNumber(c.Text)
		if !ok {
			return 0
		}
		return v
	default:
		return 0
	}
}

// IsNumeric reports whether the cell holds a number or text that reads as one.
func IsNumeric(c Cell) bool {
	switch c.Kind {
	case CellNumber:
		return isFinite(c.Number)
	case CellText:
		_, ok := parseLocalizedNumber(c.Text)
		return ok
	default:
		return false
	}
}

func parseLocalizedNumber(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == ',':
			return '.'
		case r == '−':
			return '-'
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return 0, false
	}
	v := d.InexactFloat64()
	if !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ToISODate renders a date-ish cell as YYYY-MM-DD (UTC). Numbers are
// serial days counted from epoch; text is passed through as-is.
func ToISODate(c Cell, epoch time.Time) *string {
	var out string
	switch c.Kind {
	case CellDate:
		out = c.Date.UTC().Format(isoDate)
	case CellNumber:
		if !isFinite(c.Number) || c.Number < 0 || c.Number > maxSerial {
			return nil
		}
		ms := int64(math.Round(c.Number * msPerDay))
		out = epoch.Add(time.Duration(ms) * time.Millisecond).UTC().Format(isoDate)
	case CellText:
		out = strings.TrimSpace(c.Text)
		if out == "" {
			return nil
		}
	default:
		return nil
	}
	return &out
}

func ToText(c Cell) string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Date.UTC().Format(isoDate)
	case CellText:
		return strings.TrimSpace(c.Text)
	default:
		return ""
	}
}

func isBlankText(s string) bool {
	return strings.TrimSpace(s) == ""
}

// foldLabel prepares header and marker text for comparison: case folded,
// line breaks and runs of white space collapsed to a single space.
func foldLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}

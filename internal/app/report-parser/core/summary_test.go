package report_core_test

import (
	"math"
	"testing"

	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	ops := []report_core.Operation{
		{Type: report_core.OperationSale, SKU: "A", Quantity: 1, Amount: 0.1},
		{Type: report_core.OperationSale, SKU: "B", Quantity: 2, Amount: 0.2},
		{Type: report_core.OperationReturn, SKU: "A", Quantity: 1, Amount: -0.1},
	}

	s := report_core.Summarize(ops)

	assert.Equal(t, 2, s.SalesCount)
	assert.Equal(t, 3.0, s.SalesQuantity)
	assert.Equal(t, 0.3, s.SalesAmount, "decimal sums do not drift")
	assert.Equal(t, 1, s.ReturnsCount)
	assert.Equal(t, 1.0, s.ReturnsQuantity)
	assert.Equal(t, -0.1, s.ReturnsAmount)
	assert.Equal(t, 0.2, s.NetAmount)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, report_core.Summary{}, report_core.Summarize(nil))
}

func TestSummarizeIgnoresNonFiniteValues(t *testing.T) {
	ops := []report_core.Operation{
		{Type: report_core.OperationSale, SKU: "A", Quantity: math.NaN(), Amount: math.Inf(1)},
		{Type: report_core.OperationSale, SKU: "B", Quantity: 1, Amount: 5},
	}

	var s report_core.Summary
	require.NotPanics(t, func() { s = report_core.Summarize(ops) })
	assert.Equal(t, 2, s.SalesCount)
	assert.Equal(t, 1.0, s.SalesQuantity)
	assert.Equal(t, 5.0, s.SalesAmount)
}

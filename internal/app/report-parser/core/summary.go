package report_core

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary totals a report. Sums are accumulated as decimals so a long
// report does not drift by float rounding.
type Summary struct {
	SalesCount      int     `json:"sales_count"`
	SalesQuantity   float64 `json:"sales_quantity"`
	SalesAmount     float64 `json:"sales_amount"`
	ReturnsCount    int     `json:"returns_count"`
	ReturnsQuantity float64 `json:"returns_quantity"`
	ReturnsAmount   float64 `json:"returns_amount"`
	NetAmount       float64 `json:"net_amount"`
}

func Summarize(ops []Operation) Summary {
	var (
		s                             Summary
		saleQty, saleAmt, retQty, ret decimal.Decimal
	)
	for _, op := range ops {
		switch op.Type {
		case OperationSale:
			s.SalesCount++
			saleQty = saleQty.Add(toDecimal(op.Quantity))
			saleAmt = saleAmt.Add(toDecimal(op.Amount))
		case OperationReturn:
			s.ReturnsCount++
			retQty = retQty.Add(toDecimal(op.Quantity))
			ret = ret.Add(toDecimal(op.Amount))
		}
	}
	s.SalesQuantity = saleQty.InexactFloat64()
	s.SalesAmount = saleAmt.InexactFloat64()
	s.ReturnsQuantity = retQty.InexactFloat64()
	s.ReturnsAmount = ret.InexactFloat64()
	s.NetAmount = saleAmt.Add(ret).InexactFloat64()
	return s
}

// toDecimal counts non-finite values as zero.
func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

package report_core

import (
	"math"
	"time"
)

type OperationType string

const (
	OperationSale   OperationType = "sale"
	OperationReturn OperationType = "return"
)

// Operation is one normalized report line. Amount is never zero and is
// never positive for returns.
type Operation struct {
	Type        OperationType `json:"operation_type"`
	SKU         string        `json:"sku"`
	Quantity    float64       `json:"quantity"`
	Amount      float64       `json:"amount"`
	OrderNumber *string       `json:"order_number"`
	OrderDate   *string       `json:"order_date"`
}

// MapOperations turns the data rows of layout into operations. A row yields
// a sale when its sold amount is non-zero and a return when its returned
// amount is non-zero; both, one or neither.
func MapOperations(g Grid, layout HeaderLayout, cols ColumnMap, epoch time.Time) []Operation {
	ops := make([]Operation, 0)
	if layout.DataStart < 0 {
		return ops
	}

	skuCol := cols.Index(FieldSKU)
	read := func(r int, f Field) Cell {
		i := cols.Index(f)
		if i == NoColumn {
			return EmptyCell()
		}
		return g.At(r, i)
	}

	for r := layout.DataStart; r < len(g); r++ {
		if g.isEmptyRow(r) {
			continue
		}
		// the numbered block ends at the first row without a number
		if layout.IndexColumn != NoColumn && !IsNumeric(g.At(r, layout.IndexColumn)) {
			break
		}

		sku := ToText(g.At(r, skuCol))
		if sku == "" {
			continue
		}

		var (
			qtySale      = ToNumber(read(r, FieldQtySale))
			amountSale   = ToNumber(read(r, FieldAmountSale))
			qtyReturn    = ToNumber(read(r, FieldQtyReturn))
			amountReturn = ToNumber(read(r, FieldAmountReturn))
			orderNumber  *string
			orderDate    *string
		)
		if n := ToText(read(r, FieldOrderNumber)); n != "" {
			orderNumber = &n
		}
		if cols.Index(FieldOrderDate) != NoColumn {
			orderDate = ToISODate(read(r, FieldOrderDate), epoch)
		}

		if amountSale != 0 {
			ops = append(ops, Operation{
				Type:        OperationSale,
				SKU:         sku,
				Quantity:    qtySale,
				Amount:      amountSale,
				OrderNumber: orderNumber,
				OrderDate:   orderDate,
			})
		}
		if amountReturn != 0 {
			ops = append(ops, Operation{
				Type:        OperationReturn,
				SKU:         sku,
				Quantity:    qtyReturn,
				Amount:      -math.Abs(amountReturn),
				OrderNumber: orderNumber,
				OrderDate:   orderDate,
			})
		}
	}
	return ops
}

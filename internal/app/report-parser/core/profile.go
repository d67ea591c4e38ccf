package report_core

import "time"

// Profile is everything the parser needs to know about one family of
// report exports.
type Profile struct {
	SheetMarkers []string
	Strategies   []LayoutStrategy
	Columns      ColumnRules
	Epoch        time.Time
}

// DefaultProfile recognizes the Ozon "Отчет о реализации" exports: the
// two-row header with "Реализовано" / "Возвращено" blocks under a "№ п/п"
// column, and the flat single-row variant keyed by "Артикул продавца".
// fixedHeaderRow < 0 disables the fixed-row fallback.
func DefaultProfile(fixedHeaderRow int) Profile {
	strategies := []LayoutStrategy{
		TwoTierStrategy{BlockMarkers: []string{"№ п/п", "№п/п"}},
		MarkerStrategy{
			Markers:     []string{"артикул продавца", "артикул", "№ п/п"},
			IndexLabels: []string{"№", "№ п/п", "no.", "№п/п"},
		},
	}
	if fixedHeaderRow >= 0 {
		strategies = append(strategies, FixedRowStrategy{Row: fixedHeaderRow})
	}

	return Profile{
		SheetMarkers: []string{"отчет", "отчёт", "report"},
		Strategies:   strategies,
		Epoch:        Epoch1900,
		Columns: ColumnRules{
			ReturnBlockMarkers: []string{"возвращено", "возврат"},
			Labels: map[Field]FieldLabels{
				FieldSKU: {
					Exact:    []string{"Артикул продавца", "Артикул", "SKU"},
					Contains: []string{"артикул"},
				},
				FieldOrderNumber: {
					Exact:    []string{"Номер заказа", "Номер отправления", "Отправление"},
					Contains: []string{"номер заказа", "номер отправления"},
				},
				FieldOrderDate: {
					Exact:    []string{"Дата заказа", "Дата отправления", "Дата"},
					Contains: []string{"дата заказа", "дата"},
				},
				FieldQtySale: {
					Exact:    []string{"Количество", "Кол-во", "Реализовано, шт."},
					Contains: []string{"количество", "кол-во"},
				},
				FieldAmountSale: {
					Exact:    []string{"Итого к начислению, руб.", "Реализовано на сумму, руб.", "Сумма, руб."},
					Contains: []string{"к начислению", "на сумму"},
				},
				FieldQtyReturn: {
					Exact:    []string{"Количество возвратов", "Кол-во возвратов", "Возвращено, шт.", "Количество", "Кол-во"},
					Contains: []string{"возврат"},
				},
				FieldAmountReturn: {
					Exact:    []string{"Итого возвращено, руб.", "Возвращено на сумму, руб.", "Итого к начислению, руб.", "Сумма, руб."},
					Contains: []string{"возвращено", "возврат"},
				},
			},
		},
	}
}

package report_core_test

import (
	"time"

	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
)

// row builds a grid row from plain Go values: nil is an empty cell,
// strings are text, ints and floats are numbers, time.Time is a date.
func row(values ...any) report_core.Row {
	out := make(report_core.Row, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
			out[i] = report_core.EmptyCell()
		case string:
			out[i] = report_core.TextCell(x)
		case int:
			out[i] = report_core.NumberCell(float64(x))
		case float64:
			out[i] = report_core.NumberCell(x)
		case time.Time:
			out[i] = report_core.DateCell(x)
		default:
			panic("unsupported cell value")
		}
	}
	return out
}

func grid(rows ...report_core.Row) report_core.Grid {
	return report_core.Grid(rows)
}

func strPtr(s string) *string { return &s }

// scenarioGrid is the flat report used across tests: two title rows, the
// header on row 2 and a single data row.
func scenarioGrid() report_core.Grid {
	return grid(
		row("Отчет о реализации товара"),
		row(nil),
		row("Артикул продавца", "Количество", "Итого к начислению, руб.", "Количество возвратов", "Итого возвращено, руб."),
		row("SKU1", 3, "150,50", 1, "50"),
	)
}

// twoTierGrid mimics an export with a "№ п/п" column spanning two header
// rows and merged "Реализовано" / "Возвращено" blocks left unfilled.
func twoTierGrid() report_core.Grid {
	return grid(
		row("Отчет о реализации товара за март"),
		row("№ п/п", "Артикул продавца", "Номер отправления", "Дата заказа", "Реализовано", nil, "Возвращено", nil),
		row(nil, nil, nil, nil, "Кол-во", "Сумма, руб.", "Кол-во", "Сумма, руб."),
		row(1, "A-1", "1001-1", 45352, 2, "1 200,00", nil, nil),
		row(2, "A-2", "1002-1", 45353, nil, nil, 1, "300"),
		row(3, "A-3", 1003, "2024-03-04", 1, "99,9", 1, "-99,9"),
		row("Итого", nil, nil, nil, 3, "1299,9", 2, "399,9"),
		row(4, "A-4", "1004-1", 45354, 5, "500", nil, nil),
	)
}

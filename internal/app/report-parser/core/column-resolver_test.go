package report_core_test

import (
	"testing"

	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatLayout(headers ...string) report_core.HeaderLayout {
	return report_core.HeaderLayout{
		Strategy:    "marker",
		HeaderRow:   0,
		BlockRow:    -1,
		DataStart:   1,
		IndexColumn: report_core.NoColumn,
		Headers:     headers,
	}
}

func defaultRules() report_core.ColumnRules {
	return report_core.DefaultProfile(-1).Columns
}

func TestResolveColumnsExactLabels(t *testing.T) {
	layout := flatLayout("Артикул продавца", "Количество", "Итого к начислению, руб.", "Количество возвратов", "Итого возвращено, руб.")

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)

	assert.Equal(t, report_core.ColumnMap{
		report_core.FieldSKU:          0,
		report_core.FieldQtySale:      1,
		report_core.FieldAmountSale:   2,
		report_core.FieldQtyReturn:    3,
		report_core.FieldAmountReturn: 4,
	}, cols)
	assert.Equal(t, report_core.NoColumn, cols.Index(report_core.FieldOrderDate))
}

func TestResolveColumnsIgnoresCaseAndLineBreaks(t *testing.T) {
	layout := flatLayout("АРТИКУЛ\nпродавца", "  количество ")

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, 0, cols.Index(report_core.FieldSKU))
	assert.Equal(t, 1, cols.Index(report_core.FieldQtySale))
}

func TestResolveColumnsBySubstring(t *testing.T) {
	layout := flatLayout("Ваш артикул (код)", "Номер заказа покупателя", "Сумма к начислению за период")

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, 0, cols.Index(report_core.FieldSKU))
	assert.Equal(t, 1, cols.Index(report_core.FieldOrderNumber))
	assert.Equal(t, 2, cols.Index(report_core.FieldAmountSale))
}

func TestResolveColumnsExactBeatsSubstring(t *testing.T) {
	// "Артикул товара" would match by substring, but the exact label wins
	layout := flatLayout("Артикул товара", "Артикул")

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, 1, cols.Index(report_core.FieldSKU))
}

func TestResolveColumnsRepeatedLabelsGoLeftToRight(t *testing.T) {
	layout := flatLayout("Артикул", "Кол-во", "Сумма, руб.", "Кол-во", "Сумма, руб.")

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, 1, cols.Index(report_core.FieldQtySale))
	assert.Equal(t, 2, cols.Index(report_core.FieldAmountSale))
	assert.Equal(t, 3, cols.Index(report_core.FieldQtyReturn))
	assert.Equal(t, 4, cols.Index(report_core.FieldAmountReturn))
}

func TestResolveColumnsTwoTierBlocks(t *testing.T) {
	layout, err := report_core.LocateHeader(twoTierGrid(), report_core.DefaultProfile(-1).Strategies)
	require.NoError(t, err)

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)

	assert.Equal(t, report_core.ColumnMap{
		report_core.FieldSKU:          1,
		report_core.FieldOrderNumber:  2,
		report_core.FieldOrderDate:    3,
		report_core.FieldQtySale:      4,
		report_core.FieldAmountSale:   5,
		report_core.FieldQtyReturn:    6,
		report_core.FieldAmountReturn: 7,
	}, cols)
}

func TestResolveColumnsReturnBlockFirst(t *testing.T) {
	// blocks in reverse order still bind returns to the "returned" block
	layout := report_core.HeaderLayout{
		Strategy:    "two-tier",
		HeaderRow:   1,
		BlockRow:    0,
		DataStart:   2,
		IndexColumn: 0,
		Blocks:      []string{"№ п/п", "Артикул", "Возвращено", "", "Реализовано", ""},
		Headers:     []string{"№ п/п", "Артикул", "Кол-во", "Сумма, руб.", "Кол-во", "Сумма, руб."},
	}

	cols, err := report_core.ResolveColumns(layout, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, 4, cols.Index(report_core.FieldQtySale))
	assert.Equal(t, 5, cols.Index(report_core.FieldAmountSale))
	assert.Equal(t, 2, cols.Index(report_core.FieldQtyReturn))
	assert.Equal(t, 3, cols.Index(report_core.FieldAmountReturn))
}

func TestResolveColumnsPositionalFallback(t *testing.T) {
	rules := defaultRules()
	rules.Positional = map[report_core.Field]int{
		report_core.FieldSKU:       0,
		report_core.FieldOrderDate: 4,
		report_core.FieldQtySale:   1,
	}
	layout := flatLayout("Артикул", "Количество", "", "", "?")

	cols, err := report_core.ResolveColumns(layout, rules)
	require.NoError(t, err)
	assert.Equal(t, 0, cols.Index(report_core.FieldSKU))
	assert.Equal(t, 1, cols.Index(report_core.FieldQtySale))
	assert.Equal(t, 4, cols.Index(report_core.FieldOrderDate), "unlabeled field takes its fixed position")
}

func TestResolveColumnsPositionalOnly(t *testing.T) {
	rules := report_core.ColumnRules{
		PositionalOnly: true,
		Positional: map[report_core.Field]int{
			report_core.FieldSKU:        2,
			report_core.FieldAmountSale: 5,
			report_core.FieldQtyReturn:  -1,
		},
	}

	cols, err := report_core.ResolveColumns(flatLayout("x", "y"), rules)
	require.NoError(t, err)
	assert.Equal(t, report_core.ColumnMap{
		report_core.FieldSKU:        2,
		report_core.FieldAmountSale: 5,
	}, cols)
}

func TestResolveColumnsMissingSKU(t *testing.T) {
	layout := flatLayout("Количество", "Сумма, руб.")
	layout.HeaderRow = 4

	_, err := report_core.ResolveColumns(layout, defaultRules())

	f, ok := report_core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, report_core.RequiredColumnMissing, f.Kind)
	require.NotNil(t, f.HeaderRow)
	assert.Equal(t, 4, *f.HeaderRow)
	assert.Equal(t, []string{"Количество", "Сумма, руб."}, f.Headers)
}

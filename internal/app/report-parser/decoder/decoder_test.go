package report_decoder_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	report_core "github.com/init-pkg/report-parser/internal/app/report-parser/core"
	report_decoder "github.com/init-pkg/report-parser/internal/app/report-parser/decoder"
	"github.com/init-pkg/report-parser/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Отчет о реализации"

func newDecoder() *report_decoder.SpreadsheetDecoder {
	return report_decoder.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func buildXLSX(t *testing.T, build func(f *excelize.File, sheet string)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", reportSheet))
	build(f, reportSheet)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func setRows(t *testing.T, f *excelize.File, sheet string, rows map[string][]any) {
	t.Helper()
	for axis, values := range rows {
		require.NoError(t, f.SetSheetRow(sheet, axis, &values))
	}
}

// twoTierReport lays out a report the way the marketplace exports it: a
// merged "№ п/п" column over two header rows and merged block labels.
func twoTierReport(t *testing.T) []byte {
	return buildXLSX(t, func(f *excelize.File, sheet string) {
		setRows(t, f, sheet, map[string][]any{
			"A1": {"Отчет о реализации товара"},
			"A2": {"№ п/п", "Артикул продавца", "Дата заказа", "Реализовано", nil, "Возвращено"},
			"D3": {"Кол-во", "Сумма, руб.", "Кол-во", "Сумма, руб."},
			"A4": {1, "A-1", 45352, 2, 1200.5},
			"A5": {2, "A-2", 45353, nil, nil, 1, 300},
			"A6": {"Итого", nil, nil, 2, 1200.5, 1, 300},
		})
		for _, r := range [][2]string{{"A2", "A3"}, {"B2", "B3"}, {"C2", "C3"}, {"D2", "E2"}, {"F2", "G2"}} {
			require.NoError(t, f.MergeCell(sheet, r[0], r[1]))
		}
		dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, "C4", "C5", dateStyle))
	})
}

func TestSniff(t *testing.T) {
	assert.Equal(t, report_decoder.FormatXLSX, report_decoder.Sniff([]byte("PK\x03\x04rest")))
	assert.Equal(t, report_decoder.FormatXLS, report_decoder.Sniff([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0}))
	assert.Equal(t, "", report_decoder.Sniff([]byte("sku;qty\n")))
	assert.Equal(t, "", report_decoder.Sniff(nil))
}

func TestDecodeRejectsUnknownContent(t *testing.T) {
	_, err := newDecoder().Decode([]byte("<html>not a spreadsheet</html>"))

	require.NotNil(t, err)
	assert.Equal(t, errs.CodeUnsupportedFile, err.Code())
	assert.Equal(t, http.StatusUnsupportedMediaType, err.Status())
}

func TestDecodeRejectsBrokenZip(t *testing.T) {
	_, err := newDecoder().Decode([]byte("PK\x03\x04 definitely not a workbook"))

	require.NotNil(t, err)
	assert.Equal(t, errs.CodeUnsupportedFile, err.Code())
}

func TestDecodeXLSXTypesCells(t *testing.T) {
	wb, err := newDecoder().Decode(twoTierReport(t))
	require.Nil(t, err)

	assert.Equal(t, report_decoder.FormatXLSX, wb.Format)
	assert.False(t, wb.Date1904)
	assert.Equal(t, []string{reportSheet}, wb.SheetNames())

	g, ok := wb.Sheet(reportSheet)
	require.True(t, ok)

	assert.Equal(t, report_core.TextCell("Артикул продавца"), g.At(1, 1))
	assert.Equal(t, report_core.NumberCell(1), g.At(3, 0))
	assert.Equal(t, report_core.NumberCell(1200.5), g.At(3, 4))
	assert.Equal(t, report_core.CellDate, g.At(3, 2).Kind)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), g.At(3, 2).Date)
	assert.True(t, g.At(4, 3).IsEmpty())

	_, ok = wb.Sheet("missing")
	assert.False(t, ok)
}

func TestDecodeXLSXFillsMergedCells(t *testing.T) {
	wb, err := newDecoder().Decode(twoTierReport(t))
	require.Nil(t, err)
	g, ok := wb.Sheet(reportSheet)
	require.True(t, ok)

	assert.Equal(t, "№ п/п", report_core.ToText(g.At(2, 0)), "vertical merge")
	assert.Equal(t, "Реализовано", report_core.ToText(g.At(1, 4)), "horizontal merge")
	assert.Equal(t, "Возвращено", report_core.ToText(g.At(1, 6)))
	assert.Equal(t, "Кол-во", report_core.ToText(g.At(2, 3)), "unmerged cells keep their value")
}

func TestDecodeXLSXDoesNotRepeatMergedAmounts(t *testing.T) {
	data := buildXLSX(t, func(f *excelize.File, sheet string) {
		setRows(t, f, sheet, map[string][]any{
			"A1": {"Артикул продавца", "Количество", "Итого к начислению, руб."},
			"A2": {"A-1", 1, 500},
			"A3": {nil, 1, nil},
		})
		require.NoError(t, f.MergeCell(sheet, "A2", "A3"))
		require.NoError(t, f.MergeCell(sheet, "C2", "C3"))
	})

	wb, err := newDecoder().Decode(data)
	require.Nil(t, err)
	g, ok := wb.Sheet(reportSheet)
	require.True(t, ok)
	assert.Equal(t, report_core.TextCell("A-1"), g.At(2, 0), "merged text is filled")
	assert.True(t, g.At(2, 2).IsEmpty(), "merged number stays in its first cell")

	res, perr := report_core.NewParser(report_core.DefaultProfile(-1)).Parse(wb)
	require.NoError(t, perr)
	require.Len(t, res.Operations, 1)
	assert.Equal(t, 500.0, res.Summary.SalesAmount)
}

func TestDecodeXLSXDate1904(t *testing.T) {
	data := buildXLSX(t, func(f *excelize.File, sheet string) {
		date1904 := true
		require.NoError(t, f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}))
		require.NoError(t, f.SetCellValue(sheet, "A1", 1000))
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("dd.mm.yyyy")})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, "A1", "A1", style))
	})

	wb, err := newDecoder().Decode(data)
	require.Nil(t, err)
	assert.True(t, wb.Date1904)

	g, ok := wb.Sheet(reportSheet)
	require.True(t, ok)
	assert.Equal(t, "1906-09-27", report_core.ToText(g.At(0, 0)))
}

func TestDecodedReportParses(t *testing.T) {
	wb, err := newDecoder().Decode(twoTierReport(t))
	require.Nil(t, err)

	res, perr := report_core.NewParser(report_core.DefaultProfile(-1)).Parse(wb)
	require.NoError(t, perr)

	assert.Equal(t, reportSheet, res.Sheet)
	assert.Equal(t, "two-tier", res.Layout.Strategy)
	require.Len(t, res.Operations, 2)
	assert.Equal(t, report_core.Operation{
		Type: report_core.OperationSale, SKU: "A-1", Quantity: 2, Amount: 1200.5,
		OrderDate: strPtr("2024-03-01"),
	}, res.Operations[0])
	assert.Equal(t, report_core.Operation{
		Type: report_core.OperationReturn, SKU: "A-2", Quantity: 1, Amount: -300,
		OrderDate: strPtr("2024-03-02"),
	}, res.Operations[1])
}

func strPtr(s string) *string { return &s }

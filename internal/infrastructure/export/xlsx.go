package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/application/report"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report
const SheetName = "Production Report"

// Header row of the results table; data starts on the next row
const tableHeaderRow = 12

var tableColumns = []struct {
	title string
	width float64
}{
	{"Species", 18},
	{"Specification", 16},
	{"Size", 8},
	{"Range", 12},
	{"Status", 9},
	{"Glazing %", 10},
	{"Ref. Weight (g)", 14},
	{"Ref. RM (BDT)", 14},
	{"Adjusted RM (BDT)", 17},
	{"Total (BDT)", 13},
	{"USD Cost", 11},
	{"Pre-Subsidy (USD)", 17},
	{"Subsidy (USD)", 13},
	{"Final CFR (USD)", 15},
	{"Error", 40},
}

// XLSXRenderer renders the production report as an Excel workbook
type XLSXRenderer struct{}

// NewXLSXRenderer creates a new XLSXRenderer
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

// Format returns the export format handled
func (r *XLSXRenderer) Format() string { return "xlsx" }

// ContentType returns the MIME type of the document
func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type xlsxStyles struct {
	title, subtitle, section, label, header, text, money, percent, errorText, total int
}

// Render builds the workbook
func (r *XLSXRenderer) Render(rep *report.ProductionReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	for i, c := range tableColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	st, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(tableColumns))

	if err := f.MergeCell(SheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(SheetName, "A1", reportTitle)
	f.SetCellStyle(SheetName, "A1", lastCol+"1", st.title)

	if err := f.MergeCell(SheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(SheetName, "A2", "Generated: "+rep.GeneratedAt.Format("2006-01-02 15:04 MST"))
	f.SetCellStyle(SheetName, "A2", lastCol+"2", st.subtitle)

	writeConstants(f, rep, st)
	next := writeResults(f, rep, st)
	writeSummary(f, rep, st, next+1)

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      tableHeaderRow,
		TopLeftCell: cell("A", tableHeaderRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeConstants(f *excelize.File, rep *report.ProductionReport, st xlsxStyles) {
	c := rep.Constants
	f.SetCellValue(SheetName, "A4", "System Constants")
	f.SetCellStyle(SheetName, "A4", "B4", st.section)

	rows := []struct {
		label string
		value decimal.Decimal
		style int
	}{
		{"USD Rate (BDT)", c.USDRate, st.money},
		{"Variable Overhead (BDT)", c.VariableOverhead, st.money},
		{"Fixed Overhead (BDT)", c.FixedOverhead, st.money},
		{"Freight (USD, flat)", c.Freight, st.money},
		{"Insurance (USD, flat)", c.Insurance, st.money},
		{"Subsidy Rate", c.SubsidyRate, st.percent},
		{"Subsidy Cap (USD)", c.SubsidyCap, st.money},
	}
	for i, r := range rows {
		n := 5 + i
		f.SetCellValue(SheetName, cell("A", n), r.label)
		f.SetCellStyle(SheetName, cell("A", n), cell("A", n), st.label)
		f.SetCellValue(SheetName, cell("B", n), r.value.InexactFloat64())
		f.SetCellStyle(SheetName, cell("B", n), cell("B", n), r.style)
	}
}

// writeResults writes the header and one row per product and returns the
// first free row
func writeResults(f *excelize.File, rep *report.ProductionReport, st xlsxStyles) int {
	lastCol, _ := excelize.ColumnNumberToName(len(tableColumns))
	for i, c := range tableColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(SheetName, cell(name, tableHeaderRow), c.title)
	}
	f.SetCellStyle(SheetName, cell("A", tableHeaderRow), cell(lastCol, tableHeaderRow), st.header)

	n := tableHeaderRow + 1
	for _, r := range rep.Rows {
		f.SetCellValue(SheetName, cell("A", n), sanitizeExcelCell(r.Species))
		f.SetCellValue(SheetName, cell("B", n), sanitizeExcelCell(r.Specification))
		f.SetCellValue(SheetName, cell("C", n), sanitizeExcelCell(r.Size))
		f.SetCellValue(SheetName, cell("D", n), r.RangeLabel)
		f.SetCellValue(SheetName, cell("E", n), r.Status)
		f.SetCellValue(SheetName, cell("F", n), r.Glazing.InexactFloat64())
		f.SetCellValue(SheetName, cell("G", n), r.ReferenceWeight.InexactFloat64())
		f.SetCellStyle(SheetName, cell("A", n), cell("G", n), st.text)

		if r.Failed() {
			f.SetCellValue(SheetName, cell("O", n), sanitizeExcelCell(r.Error))
			f.SetCellStyle(SheetName, cell("H", n), cell("O", n), st.errorText)
			n++
			continue
		}

		amounts := []decimal.Decimal{
			r.ReferenceRMCost,
			r.AdjustedRMCost,
			r.TotalBDT,
			r.USDCost,
			r.PreSubsidyCost,
			r.AppliedSubsidy,
			r.FinalCFRCostUSD,
		}
		for i, v := range amounts {
			name, _ := excelize.ColumnNumberToName(8 + i)
			f.SetCellValue(SheetName, cell(name, n), v.InexactFloat64())
		}
		f.SetCellStyle(SheetName, cell("H", n), cell("M", n), st.money)
		f.SetCellStyle(SheetName, cell("N", n), cell("N", n), st.total)
		f.SetCellStyle(SheetName, cell("O", n), cell("O", n), st.text)
		n++
	}
	return n
}

func writeSummary(f *excelize.File, rep *report.ProductionReport, st xlsxStyles, n int) {
	s := rep.Summary
	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"Products", s.ProductCount, st.text},
		{"Costed", s.CostedCount, st.text},
		{"Failed", s.FailedCount, st.text},
		{"Average CFR (USD)", s.AverageFinalCFR.InexactFloat64(), st.total},
		{"Lowest CFR (USD)", s.MinFinalCFR.InexactFloat64(), st.money},
		{"Highest CFR (USD)", s.MaxFinalCFR.InexactFloat64(), st.money},
	}
	for i, r := range rows {
		row := n + i
		f.SetCellValue(SheetName, cell("M", row), r.label)
		f.SetCellStyle(SheetName, cell("M", row), cell("M", row), st.label)
		f.SetCellValue(SheetName, cell("N", row), r.value)
		f.SetCellStyle(SheetName, cell("N", row), cell("N", row), r.style)
	}
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var st xlsxStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "#3B82F6"}}},
		{&st.subtitle, &excelize.Style{Font: &excelize.Font{Size: 10, Color: "#646464"}}},
		{&st.section, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 11},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#F5F3EF"}, Pattern: 1},
		}},
		{&st.label, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}}},
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    thinBorders(),
		}},
		{&st.text, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&st.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), NumFmt: 4}},
		{&st.percent, &excelize.Style{Font: &excelize.Font{Size: 10}, NumFmt: 10}},
		{&st.errorText, &excelize.Style{Font: &excelize.Font{Size: 10, Color: "#B91C1C", Italic: true}, Border: thinBorders()}},
		{&st.total, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Border: thinBorders(), NumFmt: 4}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sanitizeExcelCell prefixes a quote to text Excel would read as a formula
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

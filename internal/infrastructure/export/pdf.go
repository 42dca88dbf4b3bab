package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shrimpcfr/backend/internal/application/report"
)

const reportTitle = "Production Report - CFR Cost Calculation"

var (
	grey     = &props.Color{Red: 100, Green: 100, Blue: 100}
	blue     = &props.Color{Red: 59, Green: 130, Blue: 246}
	red      = &props.Color{Red: 185, Green: 28, Blue: 28}
	headerBg = &props.Color{Red: 245, Green: 243, Blue: 239}
)

// PDFRenderer renders the production report as a landscape A4 PDF
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Format returns the export format handled
func (r *PDFRenderer) Format() string { return "pdf" }

// ContentType returns the MIME type of the document
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render builds the PDF document
func (r *PDFRenderer) Render(rep *report.ProductionReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	f := newFormatter()

	addHeader(m, rep)
	addConstants(m, rep, f)
	addResultsTable(m, rep, f)
	addSummary(m, rep, f)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, rep *report.ProductionReport) {
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(
				text.New(reportTitle, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: blue,
				}),
			),
			col.New(4).Add(
				text.New("Generated "+rep.GeneratedAt.Format("2006-01-02 15:04 MST"), props.Text{
					Size:  8,
					Align: align.Right,
					Color: grey,
				}),
			),
		),
	)
	m.AddRows(row.New(3))
}

func addConstants(m core.Maroto, rep *report.ProductionReport, f formatter) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: grey}
	value := props.Text{Size: 8, Align: align.Left}
	c := rep.Constants

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("System Constants", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			})).WithStyle(&props.Cell{BackgroundColor: headerBg}),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(2).Add(text.New("USD Rate", label)),
			col.New(2).Add(text.New(f.money(c.USDRate)+" BDT", value)),
			col.New(2).Add(text.New("Variable Overhead", label)),
			col.New(2).Add(text.New(f.money(c.VariableOverhead)+" BDT", value)),
			col.New(2).Add(text.New("Fixed Overhead", label)),
			col.New(2).Add(text.New(f.money(c.FixedOverhead)+" BDT", value)),
		),
		row.New(6).Add(
			col.New(2).Add(text.New("Freight", label)),
			col.New(2).Add(text.New("$"+f.money(c.Freight)+" (flat)", value)),
			col.New(2).Add(text.New("Insurance", label)),
			col.New(2).Add(text.New("$"+f.money(c.Insurance)+" (flat)", value)),
			col.New(2).Add(text.New("Subsidy", label)),
			col.New(2).Add(text.New(f.percent(c.SubsidyRate)+", cap $"+f.money(c.SubsidyCap), value)),
		),
	)
	m.AddRows(row.New(4))
}

func addResultsTable(m core.Maroto, rep *report.ProductionReport, f formatter) {
	header := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center}
	cell := &props.Cell{BackgroundColor: headerBg}

	headers := []struct {
		title string
		size  int
	}{
		{"Product", 3},
		{"Size", 1},
		{"Range", 1},
		{"Glazing", 1},
		{"Ref. RM (BDT)", 1},
		{"Total (BDT)", 1},
		{"USD Cost", 1},
		{"Pre-Subsidy", 1},
		{"Subsidy", 1},
		{"CFR (USD)", 1},
	}
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = col.New(h.size).Add(text.New(h.title, header)).WithStyle(cell)
	}
	m.AddRows(row.New(8).Add(cols...))

	left := props.Text{Size: 7, Align: align.Left}
	right := props.Text{Size: 7, Align: align.Right}
	bold := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}

	for _, r := range rep.Rows {
		name := r.Species + " " + r.Specification
		if r.Status != "active" {
			name += " (" + r.Status + ")"
		}

		if r.Failed() {
			m.AddRows(
				row.New(6).Add(
					col.New(3).Add(text.New(name, left)),
					col.New(1).Add(text.New(r.Size, left)),
					col.New(1).Add(text.New(r.RangeLabel, left)),
					col.New(7).Add(text.New(r.Error, props.Text{Size: 7, Align: align.Left, Color: red})),
				),
			)
			continue
		}

		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(name, left)),
				col.New(1).Add(text.New(r.Size, left)),
				col.New(1).Add(text.New(r.RangeLabel, left)),
				col.New(1).Add(text.New(f.plain(r.Glazing)+"%", right)),
				col.New(1).Add(text.New(f.money(r.ReferenceRMCost), right)),
				col.New(1).Add(text.New(f.money(r.TotalBDT), right)),
				col.New(1).Add(text.New("$"+f.money(r.USDCost), right)),
				col.New(1).Add(text.New("$"+f.money(r.PreSubsidyCost), right)),
				col.New(1).Add(text.New("$"+f.money(r.AppliedSubsidy), right)),
				col.New(1).Add(text.New("$"+f.money(r.FinalCFRCostUSD), bold)),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addSummary(m core.Maroto, rep *report.ProductionReport, f formatter) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}
	s := rep.Summary

	lines := [][2]string{
		{"Products", fmt.Sprintf("%d (%d costed, %d failed)", s.ProductCount, s.CostedCount, s.FailedCount)},
		{"Average CFR", "$" + f.money(s.AverageFinalCFR)},
		{"Lowest / Highest CFR", "$" + f.money(s.MinFinalCFR) + " / $" + f.money(s.MaxFinalCFR)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(6).Add(
				col.New(8),
				col.New(2).Add(text.New(l[0], label)),
				col.New(2).Add(text.New(l[1], value)),
			),
		)
	}
}

package export

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	"github.com/shrimpcfr/backend/internal/application/report"
	"github.com/shrimpcfr/backend/internal/domain/costing"
)

func sampleReport() *report.ProductionReport {
	d := decimal.RequireFromString
	return &report.ProductionReport{
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Constants:   appcosting.ToConstantsResponse(costing.DefaultConstants()),
		Rows: []report.Row{
			{
				ProductID:       uuid.New(),
				Species:         "Black Tiger",
				Specification:   "Head On",
				Size:            "13/15",
				RangeLabel:      "14-20",
				Status:          "active",
				Glazing:         d("80"),
				ReferenceWeight: d("855"),
				ReferenceRMCost: d("1568.57"),
				AdjustedRMCost:  d("1467.67"),
				TotalBDT:        d("1617.67"),
				USDCost:         d("13.26"),
				PreSubsidyCost:  d("13.61"),
				AppliedSubsidy:  d("0.80"),
				FinalCFRCostUSD: d("12.81"),
			},
			{
				ProductID:       uuid.New(),
				Species:         "=Vannamei",
				Specification:   "HLSO",
				Size:            "U/10",
				RangeLabel:      "40-50",
				Status:          "inactive",
				Glazing:         d("90"),
				ReferenceWeight: d("900"),
				Error:           "No rates found for size range 40-50",
			},
		},
		Summary: report.Summary{
			ProductCount:    2,
			CostedCount:     1,
			FailedCount:     1,
			AverageFinalCFR: d("12.81"),
			MinFinalCFR:     d("12.81"),
			MaxFinalCFR:     d("12.81"),
		},
	}
}

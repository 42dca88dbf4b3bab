// Package report builds the production costing report and its exports.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	"github.com/shrimpcfr/backend/internal/domain/costing"
)

// Row is the costing of one product at quantity 1. When the calculation
// fails the money fields are zero and Error carries the reason.
type Row struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Species         string          `json:"species"`
	Specification   string          `json:"specification"`
	Size            string          `json:"size"`
	RangeLabel      string          `json:"range_label"`
	Status          string          `json:"status"`
	Glazing         decimal.Decimal `json:"glazing"`
	ReferenceWeight decimal.Decimal `json:"reference_weight"`
	ReferenceRMCost decimal.Decimal `json:"reference_rm_cost"`
	AdjustedRMCost  decimal.Decimal `json:"adjusted_rm_cost"`
	TotalBDT        decimal.Decimal `json:"total_bdt"`
	USDCost         decimal.Decimal `json:"usd_cost"`
	PreSubsidyCost  decimal.Decimal `json:"pre_subsidy_cost"`
	AppliedSubsidy  decimal.Decimal `json:"applied_subsidy"`
	FinalCFRCostUSD decimal.Decimal `json:"final_cfr_cost_usd"`
	Error           string          `json:"error,omitempty"`
}

// Failed reports whether the row could not be costed
func (r Row) Failed() bool {
	return r.Error != ""
}

// Summary aggregates the report rows. The average covers costed rows only.
type Summary struct {
	ProductCount    int             `json:"product_count"`
	CostedCount     int             `json:"costed_count"`
	FailedCount     int             `json:"failed_count"`
	AverageFinalCFR decimal.Decimal `json:"average_final_cfr"`
	MinFinalCFR     decimal.Decimal `json:"min_final_cfr"`
	MaxFinalCFR     decimal.Decimal `json:"max_final_cfr"`
}

// ProductionReport is the costing of every reported product with the
// constants used
type ProductionReport struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	Constants   appcosting.ConstantsResponse `json:"constants"`
	Rows        []Row                        `json:"rows"`
	Summary     Summary                      `json:"summary"`
}

// Renderer turns a report into a downloadable document
type Renderer interface {
	Format() string
	ContentType() string
	Render(r *ProductionReport) ([]byte, error)
}

// GenerateRequest selects the products to report on
type GenerateRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ExportRequest selects the products and the document format
type ExportRequest struct {
	Format          string `form:"format" binding:"required,oneof=pdf xlsx"`
	IncludeInactive bool   `form:"include_inactive"`
}

// ExportResult is a rendered report. ArchiveKey is set when the document
// was also stored in the archive.
type ExportResult struct {
	Data        []byte
	ContentType string
	FileName    string
	ArchiveKey  string
}

func summarize(rows []Row) Summary {
	s := Summary{ProductCount: len(rows)}
	total := decimal.Zero
	for _, r := range rows {
		if r.Failed() {
			s.FailedCount++
			continue
		}
		if s.CostedCount == 0 || r.FinalCFRCostUSD.LessThan(s.MinFinalCFR) {
			s.MinFinalCFR = r.FinalCFRCostUSD
		}
		if s.CostedCount == 0 || r.FinalCFRCostUSD.GreaterThan(s.MaxFinalCFR) {
			s.MaxFinalCFR = r.FinalCFRCostUSD
		}
		total = total.Add(r.FinalCFRCostUSD)
		s.CostedCount++
	}
	if s.CostedCount > 0 {
		s.AverageFinalCFR = costing.Round2(total.Div(decimal.NewFromInt(int64(s.CostedCount))))
	}
	return s
}

package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/costing"
)

// CreateRateRequest represents a request to create a rate bracket
type CreateRateRequest struct {
	Name string          `json:"name" binding:"required,min=1,max=50"`
	Low  int             `json:"low" binding:"required,min=1,max=10000"`
	High int             `json:"high" binding:"required,min=1,max=10000"`
	Rate decimal.Decimal `json:"rate"`
}

// UpdateRateRequest replaces a rate bracket
type UpdateRateRequest struct {
	Name string          `json:"name" binding:"required,min=1,max=50"`
	Low  int             `json:"low" binding:"required,min=1,max=10000"`
	High int             `json:"high" binding:"required,min=1,max=10000"`
	Rate decimal.Decimal `json:"rate"`
}

// RateListFilter represents filter options for the rate list
type RateListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RateResponse represents a rate bracket in API responses
type RateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Low       int             `json:"low"`
	High      int             `json:"high"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToRateResponse converts a domain Rate to RateResponse
func ToRateResponse(r *costing.Rate) RateResponse {
	return RateResponse{
		ID:        r.ID,
		Name:      r.Name,
		Low:       r.Low,
		High:      r.High,
		Rate:      r.Rate,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
	}
}

// ToRateResponses converts a rate slice
func ToRateResponses(rates []costing.Rate) []RateResponse {
	responses := make([]RateResponse, len(rates))
	for i := range rates {
		responses[i] = ToRateResponse(&rates[i])
	}
	return responses
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Species         string          `json:"species" binding:"required,min=1,max=100"`
	Specification   string          `json:"specification" binding:"required,min=1,max=100"`
	Size            string          `json:"size" binding:"max=50"`
	Glazing         decimal.Decimal `json:"glazing"`
	Low             int             `json:"low" binding:"required,min=1,max=10000"`
	High            int             `json:"high" binding:"required,min=1,max=10000"`
	ReferenceWeight decimal.Decimal `json:"reference_weight"`
	Status          string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateProductRequest replaces the editable product attributes
type UpdateProductRequest struct {
	Species         string          `json:"species" binding:"required,min=1,max=100"`
	Specification   string          `json:"specification" binding:"required,min=1,max=100"`
	Size            string          `json:"size" binding:"max=50"`
	Glazing         decimal.Decimal `json:"glazing"`
	Low             int             `json:"low" binding:"required,min=1,max=10000"`
	High            int             `json:"high" binding:"required,min=1,max=10000"`
	ReferenceWeight decimal.Decimal `json:"reference_weight"`
	Status          string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Species         string          `json:"species"`
	Specification   string          `json:"specification"`
	Size            string          `json:"size"`
	Glazing         decimal.Decimal `json:"glazing"`
	Low             int             `json:"low"`
	High            int             `json:"high"`
	RangeLabel      string          `json:"range_label"`
	ReferenceWeight decimal.Decimal `json:"reference_weight"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *costing.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Species:         p.Species,
		Specification:   p.Specification,
		Size:            p.Size,
		Glazing:         p.Glazing,
		Low:             p.Low,
		High:            p.High,
		RangeLabel:      p.RangeLabel(),
		ReferenceWeight: p.ReferenceWeight,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// ToProductResponses converts a product slice
func ToProductResponses(products []costing.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ConstantsResponse represents the costing constants in API responses
type ConstantsResponse struct {
	USDRate          decimal.Decimal `json:"usd_rate"`
	VariableOverhead decimal.Decimal `json:"variable_overhead"`
	FixedOverhead    decimal.Decimal `json:"fixed_overhead"`
	Freight          decimal.Decimal `json:"freight"`
	Insurance        decimal.Decimal `json:"insurance"`
	SubsidyRate      decimal.Decimal `json:"subsidy_rate"`
	SubsidyCap       decimal.Decimal `json:"subsidy_cap"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToConstantsResponse converts domain Constants to ConstantsResponse
func ToConstantsResponse(c costing.Constants) ConstantsResponse {
	return ConstantsResponse{
		USDRate:          c.USDRate,
		VariableOverhead: c.VariableOverhead,
		FixedOverhead:    c.FixedOverhead,
		Freight:          c.Freight,
		Insurance:        c.Insurance,
		SubsidyRate:      c.SubsidyRate,
		SubsidyCap:       c.SubsidyCap,
		UpdatedAt:        c.UpdatedAt,
	}
}

// UpdateConstantsRequest is a partial update; omitted fields keep their value
type UpdateConstantsRequest struct {
	USDRate          *float64 `json:"usd_rate"`
	VariableOverhead *float64 `json:"variable_overhead"`
	FixedOverhead    *float64 `json:"fixed_overhead"`
	Freight          *float64 `json:"freight"`
	Insurance        *float64 `json:"insurance"`
	SubsidyRate      *float64 `json:"subsidy_rate"`
	SubsidyCap       *float64 `json:"subsidy_cap"`
}

func (r UpdateConstantsRequest) toDomain() costing.ConstantsUpdate {
	return costing.ConstantsUpdate{
		USDRate:          r.USDRate,
		VariableOverhead: r.VariableOverhead,
		FixedOverhead:    r.FixedOverhead,
		Freight:          r.Freight,
		Insurance:        r.Insurance,
		SubsidyRate:      r.SubsidyRate,
		SubsidyCap:       r.SubsidyCap,
	}
}

// ProductCostRequest asks for the costing of a stored product.
// Quantity defaults to 1. With ActualWeight the weight-adjustment method is
// used instead of glazing.
type ProductCostRequest struct {
	ProductID    uuid.UUID        `json:"product_id"`
	Quantity     *int             `json:"quantity"`
	ActualWeight *decimal.Decimal `json:"actual_weight"`
}

// ReferenceCostRequest asks for the averaged rate over a size range
type ReferenceCostRequest struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// ReferenceCostResponse is the averaged reference raw material cost
type ReferenceCostResponse struct {
	Low             int             `json:"low"`
	High            int             `json:"high"`
	ReferenceRMCost decimal.Decimal `json:"reference_rm_cost"`
	Rounded         decimal.Decimal `json:"rounded"`
}

// FinalCFRRequest converts a BDT cost with the current constants
type FinalCFRRequest struct {
	BDTCost decimal.Decimal `json:"bdt_cost"`
}

// SubsidyRequest is a standalone subsidy calculation. Rate and cap default
// to the current constants when omitted.
type SubsidyRequest struct {
	PreSubsidyCost decimal.Decimal  `json:"pre_subsidy_cost"`
	SubsidyRate    *decimal.Decimal `json:"subsidy_rate"`
	SubsidyCap     *decimal.Decimal `json:"subsidy_cap"`
}

// SubsidyBatchRequest calculates several subsidies in order
type SubsidyBatchRequest struct {
	Items []SubsidyRequest `json:"items"`
}

// SubsidyResponse is the rounded outcome of a subsidy calculation
type SubsidyResponse struct {
	PreSubsidyCost decimal.Decimal `json:"pre_subsidy_cost"`
	Subsidy        decimal.Decimal `json:"subsidy"`
	FinalCFRCost   decimal.Decimal `json:"final_cfr_cost"`
	SubsidyRate    decimal.Decimal `json:"subsidy_rate"`
	SubsidyCap     decimal.Decimal `json:"subsidy_cap"`
}

// SubsidyValidationResponse reports whether rounding kept the result within
// one cent of the exact figures
type SubsidyValidationResponse struct {
	Valid  bool            `json:"valid"`
	Result SubsidyResponse `json:"result"`
}

// DemoRequest runs the glazing method against the reference rate table and
// the default constants
type DemoRequest struct {
	SizeRange       string          `json:"size_range"`
	Glazing         decimal.Decimal `json:"glazing"`
	ReferenceWeight decimal.Decimal `json:"reference_weight"`
}

// DemoResponse is the worked example of a costing
type DemoResponse struct {
	SizeRange       string            `json:"size_range"`
	Low             int               `json:"low"`
	High            int               `json:"high"`
	ApplicableRates []RateResponse    `json:"applicable_rates"`
	ReferenceRMCost decimal.Decimal   `json:"reference_rm_cost"`
	Constants       ConstantsResponse `json:"constants"`
	Breakdown       BreakdownResponse `json:"breakdown"`
}

// BreakdownResponse is the step-by-step CFR calculation
type BreakdownResponse struct {
	BaseCostBDT       decimal.Decimal `json:"base_cost_bdt"`
	VariableOverhead  decimal.Decimal `json:"variable_overhead"`
	FixedOverhead     decimal.Decimal `json:"fixed_overhead"`
	SubtotalBDT       decimal.Decimal `json:"subtotal_bdt"`
	TotalBDT          decimal.Decimal `json:"total_bdt"`
	USDCost           decimal.Decimal `json:"usd_cost"`
	FreightCostUSD    decimal.Decimal `json:"freight_cost_usd"`
	InsuranceCostUSD  decimal.Decimal `json:"insurance_cost_usd"`
	PreSubsidyCost    decimal.Decimal `json:"pre_subsidy_cost"`
	CalculatedSubsidy decimal.Decimal `json:"calculated_subsidy"`
	AppliedSubsidy    decimal.Decimal `json:"applied_subsidy"`
	GrossCFR          decimal.Decimal `json:"gross_cfr"`
	SubsidyAmount     decimal.Decimal `json:"subsidy_amount"`
	FinalCFRCostUSD   decimal.Decimal `json:"final_cfr_cost_usd"`

	ReferenceRMCost   *decimal.Decimal `json:"reference_rm_cost,omitempty"`
	GlazingPercentage *decimal.Decimal `json:"glazing_percentage,omitempty"`
	NetWeight         *decimal.Decimal `json:"net_weight,omitempty"`
	ReferenceWeight   *decimal.Decimal `json:"reference_weight,omitempty"`
	RMCostPerGram     *decimal.Decimal `json:"rm_cost_per_gram,omitempty"`
	AdjustedRMCost    *decimal.Decimal `json:"adjusted_rm_cost,omitempty"`
	ActualWeight      *decimal.Decimal `json:"actual_weight,omitempty"`
	AdjustmentRatio   *decimal.Decimal `json:"adjustment_ratio,omitempty"`
}

// ToBreakdownResponse converts a domain Breakdown
func ToBreakdownResponse(b costing.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		BaseCostBDT:       b.BaseCostBDT,
		VariableOverhead:  b.VariableOverhead,
		FixedOverhead:     b.FixedOverhead,
		SubtotalBDT:       b.SubtotalBDT,
		TotalBDT:          b.TotalBDT,
		USDCost:           b.USDCost,
		FreightCostUSD:    b.FreightCostUSD,
		InsuranceCostUSD:  b.InsuranceCostUSD,
		PreSubsidyCost:    b.PreSubsidyCost,
		CalculatedSubsidy: b.CalculatedSubsidy,
		AppliedSubsidy:    b.AppliedSubsidy,
		GrossCFR:          b.GrossCFR,
		SubsidyAmount:     b.SubsidyAmount,
		FinalCFRCostUSD:   b.FinalCFRCostUSD,
		ReferenceRMCost:   b.ReferenceRMCost,
		GlazingPercentage: b.GlazingPercentage,
		NetWeight:         b.NetWeight,
		ReferenceWeight:   b.ReferenceWeight,
		RMCostPerGram:     b.RMCostPerGram,
		AdjustedRMCost:    b.AdjustedRMCost,
		ActualWeight:      b.ActualWeight,
		AdjustmentRatio:   b.AdjustmentRatio,
	}
}

// ProductCostResponse is the costing of a product for a quantity
type ProductCostResponse struct {
	Product   ProductSummaryResponse `json:"product"`
	Quantity  int                    `json:"quantity"`
	Rate      decimal.Decimal        `json:"rate"`
	RateName  string                 `json:"rate_name"`
	Breakdown BreakdownResponse      `json:"breakdown"`
	Constants ConstantsResponse      `json:"constants"`
	Totals    TotalsResponse         `json:"totals"`
}

// ProductSummaryResponse identifies the costed product
type ProductSummaryResponse struct {
	ID              uuid.UUID       `json:"id"`
	Species         string          `json:"species"`
	Specification   string          `json:"specification"`
	Size            string          `json:"size"`
	Glazing         decimal.Decimal `json:"glazing"`
	ReferenceWeight decimal.Decimal `json:"reference_weight"`
}

// TotalsResponse are the headline figures of a costing
type TotalsResponse struct {
	TotalCostUSD   decimal.Decimal `json:"total_cost_usd"`
	TotalCostLocal decimal.Decimal `json:"total_cost_local"`
	UnitCostUSD    decimal.Decimal `json:"unit_cost_usd"`
	UnitCostLocal  decimal.Decimal `json:"unit_cost_local"`
}

// ToProductCostResponse converts a domain CostingResult
func ToProductCostResponse(r *costing.CostingResult) ProductCostResponse {
	return ProductCostResponse{
		Product: ProductSummaryResponse{
			ID:              r.Product.ID,
			Species:         r.Product.Species,
			Specification:   r.Product.Specification,
			Size:            r.Product.Size,
			Glazing:         r.Product.Glazing,
			ReferenceWeight: r.Product.ReferenceWeight,
		},
		Quantity:  r.Quantity,
		Rate:      r.Rate,
		RateName:  r.RateName,
		Breakdown: ToBreakdownResponse(r.Breakdown),
		Constants: ToConstantsResponse(r.Constants),
		Totals: TotalsResponse{
			TotalCostUSD:   r.Totals.TotalCostUSD,
			TotalCostLocal: r.Totals.TotalCostLocal,
			UnitCostUSD:    r.Totals.UnitCostUSD,
			UnitCostLocal:  r.Totals.UnitCostLocal,
		},
	}
}

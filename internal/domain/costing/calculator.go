package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	gramsPerKg = decimal.NewFromInt(1000)
	hundred    = decimal.NewFromInt(100)
)

// Breakdown is the step-by-step result of a CFR calculation. Money fields
// are rounded to 2 places. The pointer fields are only set by the
// weight-based calculations.
type Breakdown struct {
	BaseCostBDT      decimal.Decimal
	VariableOverhead decimal.Decimal
	FixedOverhead    decimal.Decimal
	SubtotalBDT      decimal.Decimal
	TotalBDT         decimal.Decimal

	USDCost           decimal.Decimal
	FreightCostUSD    decimal.Decimal
	InsuranceCostUSD  decimal.Decimal
	PreSubsidyCost    decimal.Decimal
	CalculatedSubsidy decimal.Decimal
	AppliedSubsidy    decimal.Decimal
	GrossCFR          decimal.Decimal
	SubsidyAmount     decimal.Decimal
	FinalCFRCostUSD   decimal.Decimal

	ReferenceRMCost   *decimal.Decimal
	GlazingPercentage *decimal.Decimal
	NetWeight         *decimal.Decimal
	ReferenceWeight   *decimal.Decimal
	RMCostPerGram     *decimal.Decimal
	AdjustedRMCost    *decimal.Decimal
	ActualWeight      *decimal.Decimal
	AdjustmentRatio   *decimal.Decimal
}

// ProductSummary identifies the product a result was computed for
type ProductSummary struct {
	ID              uuid.UUID
	Species         string
	Specification   string
	Size            string
	Glazing         decimal.Decimal
	ReferenceWeight decimal.Decimal
}

// Totals are the headline figures of a product costing
type Totals struct {
	TotalCostUSD   decimal.Decimal
	TotalCostLocal decimal.Decimal
	UnitCostUSD    decimal.Decimal
	UnitCostLocal  decimal.Decimal
}

// CostingResult is the full costing of a product for a quantity
type CostingResult struct {
	Product   ProductSummary
	Quantity  int
	Rate      decimal.Decimal // unrounded reference RM cost
	RateName  string
	Breakdown Breakdown
	Constants Constants
	Totals    Totals
}

// ReferenceRMCost averages, over every integer size in [low, high], the
// first rate bracket containing that size. Sizes no bracket covers are
// skipped, so only the part of the range inside the table is walked. The
// average is returned unrounded.
func ReferenceRMCost(rates RateTable, low, high int) (decimal.Decimal, error) {
	if high > MaxSizeCount {
		return decimal.Zero, errSizeCountTooLarge
	}

	from, to, ok := rates.span()
	if !ok {
		return decimal.Zero, NewNoRatesForRangeError(low, high)
	}
	from = max(from, low)
	to = min(to, high)

	sum := decimal.Zero
	found := 0
	for size := from; size <= to; size++ {
		if rate, ok := rates.Find(size); ok {
			sum = sum.Add(rate.Rate)
			found++
		}
	}

	if found == 0 {
		return decimal.Zero, NewNoRatesForRangeError(low, high)
	}
	return sum.Div(decimal.NewFromInt(int64(found))), nil
}

// FinalCFR converts a BDT cost to the final USD CFR cost:
//
//	usd   = bdt / usdRate
//	pre   = usd + freight + insurance
//	sub   = min(pre * subsidyRate, subsidyCap)
//	final = pre - sub
func FinalCFR(bdtCost decimal.Decimal, c Constants) Breakdown {
	usdCost := bdtCost.Div(c.USDRate)
	preSubsidy := usdCost.Add(c.Freight).Add(c.Insurance)
	calculatedSubsidy := preSubsidy.Mul(c.SubsidyRate)
	appliedSubsidy := decimalMin(calculatedSubsidy, c.SubsidyCap)
	final := preSubsidy.Sub(appliedSubsidy)

	bdt := Round2(bdtCost)
	return Breakdown{
		BaseCostBDT:       bdt,
		VariableOverhead:  c.VariableOverhead,
		FixedOverhead:     c.FixedOverhead,
		SubtotalBDT:       bdt,
		TotalBDT:          bdt,
		USDCost:           Round2(usdCost),
		FreightCostUSD:    Round2(c.Freight),
		InsuranceCostUSD:  Round2(c.Insurance),
		PreSubsidyCost:    Round2(preSubsidy),
		CalculatedSubsidy: Round2(calculatedSubsidy),
		AppliedSubsidy:    Round2(appliedSubsidy),
		GrossCFR:          Round2(preSubsidy),
		SubsidyAmount:     Round2(appliedSubsidy),
		FinalCFRCostUSD:   Round2(final),
	}
}

// WithGlazingPercentage derives the raw material cost from the net weight
// implied by the glazing fraction (0.80 means 800 g net per kg) and prices
// it per gram of the reference weight.
func WithGlazingPercentage(referenceRMCost, glazingFraction, referenceWeight decimal.Decimal, c Constants) Breakdown {
	netWeight := glazingFraction.Mul(gramsPerKg)
	rmCostPerGram := referenceRMCost.Div(referenceWeight)
	adjusted := netWeight.Mul(rmCostPerGram)

	b := adjustedBreakdown(referenceRMCost, adjusted, c)
	b.GlazingPercentage = decimalPtr(glazingFraction)
	b.NetWeight = decimalPtr(netWeight)
	b.ReferenceWeight = decimalPtr(referenceWeight)
	b.RMCostPerGram = decimalPtr(round4(rmCostPerGram))
	return b
}

// WithWeightAdjustment scales the reference raw material cost by the ratio
// of the actual weight to the reference weight.
func WithWeightAdjustment(referenceRMCost, actualWeight, referenceWeight decimal.Decimal, c Constants) Breakdown {
	ratio := actualWeight.Div(referenceWeight)
	adjusted := referenceRMCost.Mul(ratio)

	b := adjustedBreakdown(referenceRMCost, adjusted, c)
	b.ActualWeight = decimalPtr(actualWeight)
	b.ReferenceWeight = decimalPtr(referenceWeight)
	b.AdjustmentRatio = decimalPtr(round5(ratio))
	return b
}

func adjustedBreakdown(referenceRMCost, adjusted decimal.Decimal, c Constants) Breakdown {
	bdt := adjusted.Add(c.VariableOverhead).Add(c.FixedOverhead)

	b := FinalCFR(bdt, c)
	b.BaseCostBDT = Round2(adjusted)
	b.SubtotalBDT = Round2(bdt)
	b.TotalBDT = Round2(bdt)
	b.ReferenceRMCost = decimalPtr(Round2(referenceRMCost))
	b.AdjustedRMCost = decimalPtr(Round2(adjusted))
	return b
}

// ProductCost computes the costing of quantity units of p. With an actual
// weight the weight-adjustment method is used, otherwise the glazing method.
// For quantities above one the final CFR is recomputed on the scaled
// subtotal and the BDT figures are multiplied by the quantity.
func ProductCost(p *Product, rates RateTable, c Constants, quantity int, actualWeight *decimal.Decimal) (*CostingResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if actualWeight != nil && !actualWeight.IsPositive() {
		return nil, ErrInvalidActualWeight
	}

	referenceRMCost, err := ReferenceRMCost(rates, p.Low, p.High)
	if err != nil {
		return nil, err
	}

	var b Breakdown
	if actualWeight != nil {
		b = WithWeightAdjustment(referenceRMCost, *actualWeight, p.ReferenceWeight, c)
	} else {
		b = WithGlazingPercentage(referenceRMCost, p.Glazing.Div(hundred), p.ReferenceWeight, c)
	}

	if quantity > 1 {
		b = scaleBreakdown(b, quantity, c)
	}

	q := decimal.NewFromInt(int64(quantity))
	return &CostingResult{
		Product: ProductSummary{
			ID:              p.ID,
			Species:         p.Species,
			Specification:   p.Specification,
			Size:            p.Size,
			Glazing:         p.Glazing,
			ReferenceWeight: p.ReferenceWeight,
		},
		Quantity:  quantity,
		Rate:      referenceRMCost,
		RateName:  p.RangeLabel(),
		Breakdown: b,
		Constants: c,
		Totals: Totals{
			TotalCostUSD:   b.FinalCFRCostUSD,
			TotalCostLocal: b.TotalBDT,
			UnitCostUSD:    Round2(b.FinalCFRCostUSD.Div(q)),
			UnitCostLocal:  Round2(b.TotalBDT.Div(q)),
		},
	}, nil
}

func scaleBreakdown(b Breakdown, quantity int, c Constants) Breakdown {
	q := decimal.NewFromInt(int64(quantity))

	scaled := FinalCFR(b.SubtotalBDT.Mul(q), c)
	scaled.BaseCostBDT = b.BaseCostBDT.Mul(q)
	scaled.SubtotalBDT = b.SubtotalBDT.Mul(q)
	scaled.TotalBDT = b.TotalBDT.Mul(q)

	scaled.ReferenceRMCost = b.ReferenceRMCost
	scaled.GlazingPercentage = b.GlazingPercentage
	scaled.NetWeight = b.NetWeight
	scaled.ReferenceWeight = b.ReferenceWeight
	scaled.RMCostPerGram = b.RMCostPerGram
	scaled.ActualWeight = b.ActualWeight
	scaled.AdjustmentRatio = b.AdjustmentRatio
	if b.AdjustedRMCost != nil {
		scaled.AdjustedRMCost = decimalPtr(b.AdjustedRMCost.Mul(q))
	}
	return scaled
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

package costing

import "github.com/shopspring/decimal"

var subsidyTolerance = decimal.RequireFromString("0.01")

// SubsidyInput is a standalone subsidy calculation request.
// SubsidyRate is a fraction (0.08) and SubsidyCap a USD amount.
type SubsidyInput struct {
	PreSubsidyCost decimal.Decimal
	SubsidyRate    decimal.Decimal
	SubsidyCap     decimal.Decimal
}

// SubsidyResult holds the rounded outcome of a subsidy calculation
type SubsidyResult struct {
	PreSubsidyCost decimal.Decimal
	Subsidy        decimal.Decimal
	FinalCFRCost   decimal.Decimal
}

// CalculateSubsidy applies subsidy = min(pre * rate, cap) and
// final = pre - subsidy, rounding every output to 2 places.
func CalculateSubsidy(in SubsidyInput) SubsidyResult {
	subsidy, final := subsidyExact(in)
	return SubsidyResult{
		PreSubsidyCost: Round2(in.PreSubsidyCost),
		Subsidy:        Round2(subsidy),
		FinalCFRCost:   Round2(final),
	}
}

// CalculateSubsidyBatch calculates every input, preserving order
func CalculateSubsidyBatch(inputs []SubsidyInput) []SubsidyResult {
	results := make([]SubsidyResult, len(inputs))
	for i, in := range inputs {
		results[i] = CalculateSubsidy(in)
	}
	return results
}

// ValidateSubsidy reports whether the rounded calculation stays within one
// cent of the exact subsidy and final cost.
func ValidateSubsidy(in SubsidyInput) bool {
	result := CalculateSubsidy(in)
	subsidy, final := subsidyExact(in)

	return result.Subsidy.Sub(subsidy).Abs().LessThan(subsidyTolerance) &&
		result.FinalCFRCost.Sub(final).Abs().LessThan(subsidyTolerance)
}

func subsidyExact(in SubsidyInput) (subsidy, final decimal.Decimal) {
	subsidy = decimalMin(in.PreSubsidyCost.Mul(in.SubsidyRate), in.SubsidyCap)
	return subsidy, in.PreSubsidyCost.Sub(subsidy)
}

package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSubsidy(t *testing.T) {
	t.Run("capped", func(t *testing.T) {
		result := CalculateSubsidy(SubsidyInput{
			PreSubsidyCost: dec("13.61"),
			SubsidyRate:    dec("0.08"),
			SubsidyCap:     dec("0.80"),
		})
		assertDecimal(t, "13.61", result.PreSubsidyCost)
		assertDecimal(t, "0.80", result.Subsidy)
		assertDecimal(t, "12.81", result.FinalCFRCost)
	})

	t.Run("below cap", func(t *testing.T) {
		result := CalculateSubsidy(SubsidyInput{
			PreSubsidyCost: dec("5.00"),
			SubsidyRate:    dec("0.08"),
			SubsidyCap:     dec("0.80"),
		})
		assertDecimal(t, "0.40", result.Subsidy)
		assertDecimal(t, "4.60", result.FinalCFRCost)
	})

	t.Run("half cent tie rounds like float arithmetic", func(t *testing.T) {
		result := CalculateSubsidy(SubsidyInput{
			PreSubsidyCost: dec("1.005"),
			SubsidyRate:    decimal.Zero,
			SubsidyCap:     decimal.Zero,
		})
		assertDecimal(t, "1.00", result.PreSubsidyCost)
		assertDecimal(t, "0", result.Subsidy)
		assertDecimal(t, "1.00", result.FinalCFRCost)
	})

	t.Run("exactly at cap", func(t *testing.T) {
		result := CalculateSubsidy(SubsidyInput{
			PreSubsidyCost: dec("10"),
			SubsidyRate:    dec("0.08"),
			SubsidyCap:     dec("0.80"),
		})
		assertDecimal(t, "0.80", result.Subsidy)
		assertDecimal(t, "9.20", result.FinalCFRCost)
	})
}

func TestCalculateSubsidyBatch(t *testing.T) {
	inputs := []SubsidyInput{
		{PreSubsidyCost: dec("13.61"), SubsidyRate: dec("0.08"), SubsidyCap: dec("0.80")},
		{PreSubsidyCost: dec("5.00"), SubsidyRate: dec("0.08"), SubsidyCap: dec("0.80")},
	}

	results := CalculateSubsidyBatch(inputs)
	require.Len(t, results, 2)
	assertDecimal(t, "12.81", results[0].FinalCFRCost)
	assertDecimal(t, "4.60", results[1].FinalCFRCost)

	assert.Empty(t, CalculateSubsidyBatch(nil))
}

func TestValidateSubsidy(t *testing.T) {
	assert.True(t, ValidateSubsidy(SubsidyInput{
		PreSubsidyCost: dec("13.61"),
		SubsidyRate:    dec("0.08"),
		SubsidyCap:     dec("0.80"),
	}))
	assert.True(t, ValidateSubsidy(SubsidyInput{
		PreSubsidyCost: dec("7.777"),
		SubsidyRate:    dec("0.0333"),
		SubsidyCap:     dec("5"),
	}))
}

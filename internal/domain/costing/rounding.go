package costing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Rounding places used by the costing breakdown.
const (
	moneyPlaces   = 2
	perGramPlaces = 4
	ratioPlaces   = 5
)

// Round2 rounds to two decimal places the way published costings were
// produced: the value is scaled in float64 and rounded half up, so a tie
// that is not exactly representable (1.005 is 1.00499... as a float64)
// rounds down.
func Round2(d decimal.Decimal) decimal.Decimal {
	return roundFloat(d, moneyPlaces)
}

func round4(d decimal.Decimal) decimal.Decimal {
	return roundFloat(d, perGramPlaces)
}

func round5(d decimal.Decimal) decimal.Decimal {
	return roundFloat(d, ratioPlaces)
}

func roundFloat(d decimal.Decimal, places int32) decimal.Decimal {
	f, _ := d.Float64()
	scaled := f * math.Pow10(int(places))
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return d.Round(places)
	}
	return decimal.NewFromFloat(roundHalfUp(scaled)).Shift(-places).Round(places)
}

// roundHalfUp rounds ties toward positive infinity. math.Floor(x+0.5) would
// misround 0.49999999999999994 because the addition itself rounds up.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// decimalMin returns the smaller of a and b.
func decimalMin(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

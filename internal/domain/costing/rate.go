package costing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// Rate is a raw material price bracket keyed by size count.
// A size count is the number of pieces per unit weight, so lower counts are
// bigger shrimp and cost more per kg.
type Rate struct {
	shared.BaseAggregateRoot
	Name string
	Low  int
	High int
	Rate decimal.Decimal // BDT
}

// NewRate creates a new rate bracket
func NewRate(name string, low, high int, rate decimal.Decimal) (*Rate, error) {
	if err := validateRate(name, low, high, rate); err != nil {
		return nil, err
	}

	return &Rate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Low:               low,
		High:              high,
		Rate:              rate,
	}, nil
}

// Update replaces the bracket definition
func (r *Rate) Update(name string, low, high int, rate decimal.Decimal) error {
	if err := validateRate(name, low, high, rate); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(name)
	r.Low = low
	r.High = high
	r.Rate = rate
	r.MarkUpdated()
	return nil
}

// Contains reports whether size falls inside the bracket, bounds included
func (r *Rate) Contains(size int) bool {
	return size >= r.Low && size <= r.High
}

// Overlaps reports whether the bracket intersects [low, high]
func (r *Rate) Overlaps(low, high int) bool {
	return r.Low <= high && r.High >= low
}

func validateRate(name string, low, high int, rate decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_RATE_NAME", "Rate name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_RATE_NAME", "Rate name cannot exceed 50 characters")
	}
	if low < 1 {
		return shared.NewDomainError("INVALID_RATE_RANGE", "Low bound must be at least 1")
	}
	if high < low {
		return shared.NewDomainError("INVALID_RATE_RANGE", "High bound cannot be less than low bound")
	}
	if high > MaxSizeCount {
		return shared.NewDomainError("INVALID_RATE_RANGE", fmt.Sprintf("High bound cannot exceed %d", MaxSizeCount))
	}
	if !rate.IsPositive() {
		return shared.NewDomainError("INVALID_RATE_VALUE", "Rate must be positive")
	}
	return nil
}

// RateTable is an ordered set of brackets. Lookups take the first match, so
// order matters when brackets overlap.
type RateTable []Rate

// Find returns the first bracket containing size
func (t RateTable) Find(size int) (*Rate, bool) {
	for i := range t {
		if t[i].Contains(size) {
			return &t[i], true
		}
	}
	return nil, false
}

// ForQuantity returns the bracket that applies to quantity q
func (t RateTable) ForQuantity(q int) (*Rate, error) {
	rate, ok := t.Find(q)
	if !ok {
		return nil, ErrRateNotFound
	}
	return rate, nil
}

// span returns the smallest low and largest high bound in the table
func (t RateTable) span() (low, high int, ok bool) {
	for i, r := range t {
		if i == 0 || r.Low < low {
			low = r.Low
		}
		if i == 0 || r.High > high {
			high = r.High
		}
	}
	return low, high, len(t) > 0
}

// Overlapping returns every bracket that intersects [low, high]
func (t RateTable) Overlapping(low, high int) RateTable {
	result := make(RateTable, 0, len(t))
	for _, r := range t {
		if r.Overlaps(low, high) {
			result = append(result, r)
		}
	}
	return result
}

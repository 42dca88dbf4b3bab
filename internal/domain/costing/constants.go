package costing

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// Constants are the costing parameters shared by every calculation.
// Overheads are BDT per unit; freight, insurance and the subsidy cap are flat
// USD amounts; SubsidyRate is a fraction.
type Constants struct {
	USDRate          decimal.Decimal
	VariableOverhead decimal.Decimal
	FixedOverhead    decimal.Decimal
	Freight          decimal.Decimal
	Insurance        decimal.Decimal
	SubsidyRate      decimal.Decimal
	SubsidyCap       decimal.Decimal
	UpdatedAt        time.Time
}

// DefaultConstants returns the factory costing parameters
func DefaultConstants() Constants {
	return Constants{
		USDRate:          decimal.NewFromInt(122),
		VariableOverhead: decimal.NewFromInt(80),
		FixedOverhead:    decimal.NewFromInt(70),
		Freight:          decimal.RequireFromString("0.20"),
		Insurance:        decimal.RequireFromString("0.15"),
		SubsidyRate:      decimal.RequireFromString("0.08"),
		SubsidyCap:       decimal.RequireFromString("0.80"),
		UpdatedAt:        time.Now(),
	}
}

// ConstantsUpdate is a partial update. Nil fields keep their value.
type ConstantsUpdate struct {
	USDRate          *float64
	VariableOverhead *float64
	FixedOverhead    *float64
	Freight          *float64
	Insurance        *float64
	SubsidyRate      *float64
	SubsidyCap       *float64
}

// Apply returns a copy of c with the update merged in. NaN and infinite
// values fall back to the current value.
func (c Constants) Apply(u ConstantsUpdate) (Constants, error) {
	next := c
	next.USDRate = sanitize(u.USDRate, c.USDRate)
	next.VariableOverhead = sanitize(u.VariableOverhead, c.VariableOverhead)
	next.FixedOverhead = sanitize(u.FixedOverhead, c.FixedOverhead)
	next.Freight = sanitize(u.Freight, c.Freight)
	next.Insurance = sanitize(u.Insurance, c.Insurance)
	next.SubsidyRate = sanitize(u.SubsidyRate, c.SubsidyRate)
	next.SubsidyCap = sanitize(u.SubsidyCap, c.SubsidyCap)

	if err := next.Validate(); err != nil {
		return c, err
	}
	next.UpdatedAt = time.Now()
	return next, nil
}

// Validate checks the parameters can drive a calculation
func (c Constants) Validate() error {
	if !c.USDRate.IsPositive() {
		return shared.NewDomainError("INVALID_USD_RATE", "USD rate must be positive")
	}
	if c.VariableOverhead.IsNegative() || c.FixedOverhead.IsNegative() {
		return shared.NewDomainError("INVALID_OVERHEAD", "Overheads cannot be negative")
	}
	if c.Freight.IsNegative() || c.Insurance.IsNegative() {
		return shared.NewDomainError("INVALID_FREIGHT", "Freight and insurance cannot be negative")
	}
	if c.SubsidyRate.IsNegative() || c.SubsidyRate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_SUBSIDY_RATE", "Subsidy rate must be between 0 and 1")
	}
	if c.SubsidyCap.IsNegative() {
		return shared.NewDomainError("INVALID_SUBSIDY_CAP", "Subsidy cap cannot be negative")
	}
	return nil
}

func sanitize(v *float64, current decimal.Decimal) decimal.Decimal {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return current
	}
	return decimal.NewFromFloat(*v)
}

// ConstantsRepository stores the single constants record.
// Get returns shared.ErrNotFound when nothing has been saved yet.
type ConstantsRepository interface {
	Get(ctx context.Context) (*Constants, error)
	Save(ctx context.Context, constants *Constants) error
}

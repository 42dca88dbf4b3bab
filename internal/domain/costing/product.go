package costing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// ProductStatus represents whether a product takes part in reporting
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid reports whether the status is known
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product is a costed shrimp product. Low and High give the size-count
// range used to average the reference raw material rate.
type Product struct {
	shared.BaseAggregateRoot
	Species         string
	Specification   string
	Size            string
	Glazing         decimal.Decimal // percent of net weight, 0 < g <= 100
	Low             int
	High            int
	ReferenceWeight decimal.Decimal // grams
	Status          ProductStatus
}

// ProductInput carries the editable product attributes
type ProductInput struct {
	Species         string
	Specification   string
	Size            string
	Glazing         decimal.Decimal
	Low             int
	High            int
	ReferenceWeight decimal.Decimal
}

// NewProduct creates a new active product
func NewProduct(in ProductInput) (*Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            ProductStatusActive,
	}
	p.apply(in)
	return p, nil
}

// Update replaces the product attributes
func (p *Product) Update(in ProductInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	p.apply(in)
	p.MarkUpdated()
	return nil
}

func (p *Product) apply(in ProductInput) {
	p.Species = strings.TrimSpace(in.Species)
	p.Specification = strings.TrimSpace(in.Specification)
	p.Size = strings.TrimSpace(in.Size)
	p.Glazing = in.Glazing
	p.Low = in.Low
	p.High = in.High
	p.ReferenceWeight = in.ReferenceWeight
}

// Activate marks the product active
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.MarkUpdated()
	return nil
}

// Deactivate marks the product inactive
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.MarkUpdated()
	return nil
}

// ToggleStatus flips between active and inactive
func (p *Product) ToggleStatus() {
	if p.IsActive() {
		p.Status = ProductStatusInactive
	} else {
		p.Status = ProductStatusActive
	}
	p.MarkUpdated()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// RangeLabel returns the size range label shown as the rate name
func (p *Product) RangeLabel() string {
	return fmt.Sprintf("Range %d-%d", p.Low, p.High)
}

// Matches reports whether term appears in species, specification or size,
// ignoring case
func (p *Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Species), term) ||
		strings.Contains(strings.ToLower(p.Specification), term) ||
		strings.Contains(strings.ToLower(p.Size), term)
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Species) == "" {
		return shared.NewDomainError("INVALID_SPECIES", "Species cannot be empty")
	}
	if len(in.Species) > 100 {
		return shared.NewDomainError("INVALID_SPECIES", "Species cannot exceed 100 characters")
	}
	if strings.TrimSpace(in.Specification) == "" {
		return shared.NewDomainError("INVALID_SPECIFICATION", "Specification cannot be empty")
	}
	if len(in.Specification) > 100 {
		return shared.NewDomainError("INVALID_SPECIFICATION", "Specification cannot exceed 100 characters")
	}
	if len(in.Size) > 50 {
		return shared.NewDomainError("INVALID_SIZE", "Size cannot exceed 50 characters")
	}
	if !in.Glazing.IsPositive() || in.Glazing.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GLAZING", "Glazing must be greater than 0 and at most 100")
	}
	if in.Low < 1 {
		return shared.NewDomainError("INVALID_SIZE_RANGE", "Low size count must be at least 1")
	}
	if in.High < in.Low {
		return shared.NewDomainError("INVALID_SIZE_RANGE", "High size count cannot be less than low size count")
	}
	if in.High > MaxSizeCount {
		return errSizeCountTooLarge
	}
	if !in.ReferenceWeight.IsPositive() {
		return shared.NewDomainError("INVALID_REFERENCE_WEIGHT", "Reference weight must be positive")
	}
	return nil
}

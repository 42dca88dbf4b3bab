package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/costing"
)

// RateModel is the persistence model for a raw material rate bracket.
type RateModel struct {
	AggregateModel
	Name string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Low  int             `gorm:"not null;index"`
	High int             `gorm:"not null"`
	Rate decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (RateModel) TableName() string {
	return "rates"
}

// ToDomain converts the model to a domain Rate
func (m *RateModel) ToDomain() *costing.Rate {
	return &costing.Rate{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Low:               m.Low,
		High:              m.High,
		Rate:              m.Rate,
	}
}

// RateModelFromDomain creates a model from a domain Rate
func RateModelFromDomain(r *costing.Rate) *RateModel {
	m := &RateModel{
		Name: r.Name,
		Low:  r.Low,
		High: r.High,
		Rate: r.Rate,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}

// ProductModel is the persistence model for a costed product.
type ProductModel struct {
	AggregateModel
	Species         string                `gorm:"type:varchar(100);not null;index"`
	Specification   string                `gorm:"type:varchar(100);not null"`
	Size            string                `gorm:"type:varchar(50);not null"`
	Glazing         decimal.Decimal       `gorm:"type:decimal(5,2);not null"`
	Low             int                   `gorm:"not null"`
	High            int                   `gorm:"not null"`
	ReferenceWeight decimal.Decimal       `gorm:"type:decimal(10,2);not null"`
	Status          costing.ProductStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *costing.Product {
	return &costing.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Species:           m.Species,
		Specification:     m.Specification,
		Size:              m.Size,
		Glazing:           m.Glazing,
		Low:               m.Low,
		High:              m.High,
		ReferenceWeight:   m.ReferenceWeight,
		Status:            m.Status,
	}
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *costing.Product) *ProductModel {
	m := &ProductModel{
		Species:         p.Species,
		Specification:   p.Specification,
		Size:            p.Size,
		Glazing:         p.Glazing,
		Low:             p.Low,
		High:            p.High,
		ReferenceWeight: p.ReferenceWeight,
		Status:          p.Status,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ConstantsID is the primary key of the single constants row.
const ConstantsID = 1

// ConstantsModel is the persistence model for the costing constants.
// The table holds at most one row.
type ConstantsModel struct {
	ID               int             `gorm:"primaryKey;autoIncrement:false"`
	USDRate          decimal.Decimal `gorm:"column:usd_rate;type:decimal(10,4);not null"`
	VariableOverhead decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FixedOverhead    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Freight          decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Insurance        decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	SubsidyRate      decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	SubsidyCap       decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConstantsModel) TableName() string {
	return "costing_constants"
}

// ToDomain converts the model to domain Constants
func (m *ConstantsModel) ToDomain() *costing.Constants {
	return &costing.Constants{
		USDRate:          m.USDRate,
		VariableOverhead: m.VariableOverhead,
		FixedOverhead:    m.FixedOverhead,
		Freight:          m.Freight,
		Insurance:        m.Insurance,
		SubsidyRate:      m.SubsidyRate,
		SubsidyCap:       m.SubsidyCap,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ConstantsModelFromDomain creates the singleton model from domain Constants
func ConstantsModelFromDomain(c *costing.Constants) *ConstantsModel {
	return &ConstantsModel{
		ID:               ConstantsID,
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

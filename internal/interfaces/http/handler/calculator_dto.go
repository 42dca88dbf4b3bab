package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/application/costing"
)

// ProductCostRequest is the HTTP body for costing a stored product
type ProductCostRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity     *int             `json:"quantity" binding:"omitempty,min=1" example:"1"`
	ActualWeight *decimal.Decimal `json:"actual_weight" swaggertype:"string" example:"800"`
}

func (r ProductCostRequest) toApp() costing.ProductCostRequest {
	return costing.ProductCostRequest{
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		ActualWeight: r.ActualWeight,
	}
}

// ReferenceCostRequest is the HTTP body for a reference raw material cost
type ReferenceCostRequest struct {
	Low  int `json:"low" binding:"required,min=1,max=10000" example:"14"`
	High int `json:"high" binding:"required,min=1,max=10000" example:"20"`
}

func (r ReferenceCostRequest) toApp() costing.ReferenceCostRequest {
	return costing.ReferenceCostRequest{Low: r.Low, High: r.High}
}

// FinalCFRRequest is the HTTP body for converting a BDT cost
type FinalCFRRequest struct {
	BDTCost decimal.Decimal `json:"bdt_cost" swaggertype:"string" example:"1617.67"`
}

func (r FinalCFRRequest) toApp() costing.FinalCFRRequest {
	return costing.FinalCFRRequest{BDTCost: r.BDTCost}
}

// SubsidyRequest is the HTTP body for a subsidy calculation. Rate and cap
// fall back to the current constants.
type SubsidyRequest struct {
	PreSubsidyCost decimal.Decimal  `json:"pre_subsidy_cost" swaggertype:"string" example:"13.61"`
	SubsidyRate    *decimal.Decimal `json:"subsidy_rate" swaggertype:"string" example:"0.08"`
	SubsidyCap     *decimal.Decimal `json:"subsidy_cap" swaggertype:"string" example:"0.80"`
}

func (r SubsidyRequest) toApp() costing.SubsidyRequest {
	return costing.SubsidyRequest{
		PreSubsidyCost: r.PreSubsidyCost,
		SubsidyRate:    r.SubsidyRate,
		SubsidyCap:     r.SubsidyCap,
	}
}

// SubsidyBatchRequest is the HTTP body for a batch of subsidy calculations
type SubsidyBatchRequest struct {
	Items []SubsidyRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

func (r SubsidyBatchRequest) toApp() costing.SubsidyBatchRequest {
	items := make([]costing.SubsidyRequest, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.toApp()
	}
	return costing.SubsidyBatchRequest{Items: items}
}

// DemoRequest is the HTTP body for the worked costing example
type DemoRequest struct {
	SizeRange       string          `json:"size_range" binding:"required" example:"14-20"`
	Glazing         decimal.Decimal `json:"glazing" swaggertype:"string" example:"80"`
	ReferenceWeight decimal.Decimal `json:"reference_weight" swaggertype:"string" example:"855"`
}

func (r DemoRequest) toApp() costing.DemoRequest {
	return costing.DemoRequest{
		SizeRange:       r.SizeRange,
		Glazing:         r.Glazing,
		ReferenceWeight: r.ReferenceWeight,
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/application/costing"
)

// CalculatorHandler exposes the CFR calculations
type CalculatorHandler struct {
	BaseHandler
	calculator *costing.CalculatorService
}

// NewCalculatorHandler creates a new CalculatorHandler
func NewCalculatorHandler(calculator *costing.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

// ProductCost godoc
// @ID           calculateProductCost
// @Summary      Cost a product
// @Description  Full CFR breakdown of a stored product. Quantity defaults to 1; with actual_weight the weight-adjustment method replaces glazing.
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body handler.ProductCostRequest true "Product and quantity"
// @Success      200 {object} dto.Response{data=costing.ProductCostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /calculator/product-cost [post]
func (h *CalculatorHandler) ProductCost(c *gin.Context) {
	var req ProductCostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.calculator.CalculateProductCost(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReferenceCost godoc
// @ID           calculateReferenceCost
// @Summary      Reference raw material cost
// @Description  Average rate of the brackets overlapping a size range
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body handler.ReferenceCostRequest true "Size range"
// @Success      200 {object} dto.Response{data=costing.ReferenceCostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /calculator/reference-cost [post]
func (h *CalculatorHandler) ReferenceCost(c *gin.Context) {
	var req ReferenceCostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.calculator.ReferenceRMCost(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// FinalCFR godoc
// @ID           calculateFinalCFR
// @Summary      Final CFR from a BDT cost
// @Description  Adds overheads, converts to USD, adds freight and insurance and applies the capped subsidy
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body handler.FinalCFRRequest true "BDT cost"
// @Success      200 {object} dto.Response{data=costing.BreakdownResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /calculator/cfr [post]
func (h *CalculatorHandler) FinalCFR(c *gin.Context) {
	var req FinalCFRRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.calculator.FinalCFR(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Subsidy godoc
// @ID           calculateSubsidy
// @Summary      Subsidy calculation
// @Description  Capped subsidy of a pre-subsidy cost. Rate and cap default to the current constants.
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body handler.SubsidyRequest true "Pre-subsidy cost"
// @Success      200 {object} dto.Response{data=costing.SubsidyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /calculator/subsidy [post]
func (h *CalculatorHandler) Subsidy(c *gin.Context) {
	var req SubsidyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.calculator.Subsidy(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubsidyBatch godoc
// @ID           calculateSubsidyBatch
// @Summary      Batch subsidy calculation
// @Description  Calculates each item in order; the results keep the request order
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body handler.SubsidyBatchRequest true "Items"
// @Success      200 {object} dto.Response{data=[]costing.SubsidyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /calculator/subsidy/batch [post]
func (h *CalculatorHandler) SubsidyBatch(c *gin.Context) {
	var req SubsidyBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	results, err := h.calculator.SubsidyBatch(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ValidateSubsidy godoc
// @ID           validateSubsidy
// @Summary      Check subsidy rounding
// @Description  Reports whether the rounded result stays within one cent of the exact figures
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body handler.SubsidyRequest true "Pre-subsidy cost"
// @Success      200 {object} dto.Response{data=costing.SubsidyValidationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /calculator/subsidy/validate [post]
func (h *CalculatorHandler) ValidateSubsidy(c *gin.Context) {
	var req SubsidyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.calculator.ValidateSubsidy(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Demo godoc
// @ID           demoCosting
// @Summary      Worked costing example
// @Description  Runs the glazing method for a size range such as "21-25" against the reference rate table and default constants
// @Tags         demo
// @Accept       json
// @Produce      json
// @Param        request body handler.DemoRequest true "Size range, glazing and reference weight"
// @Success      200 {object} dto.Response{data=costing.DemoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demo/costing [post]
func (h *CalculatorHandler) Demo(c *gin.Context) {
	var req DemoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.calculator.Demo(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/application/costing"
)

// RateHandler handles rate bracket endpoints
type RateHandler struct {
	BaseHandler
	rateService *costing.RateService
}

// NewRateHandler creates a new RateHandler
func NewRateHandler(rateService *costing.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// RateLookupQuery is the query of GET /rates/lookup
type RateLookupQuery struct {
	Quantity int `form:"quantity" binding:"required,min=1"`
}

// Create godoc
// @ID           createRate
// @Summary      Create a rate bracket
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        request body costing.CreateRateRequest true "Rate bracket"
// @Success      201 {object} dto.Response{data=costing.RateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rates [post]
func (h *RateHandler) Create(c *gin.Context) {
	var req costing.CreateRateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rate, err := h.rateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rate)
}

// GetByID godoc
// @ID           getRateById
// @Summary      Get a rate bracket
// @Tags         rates
// @Produce      json
// @Param        id path string true "Rate ID" format(uuid)
// @Success      200 {object} dto.Response{data=costing.RateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rates/{id} [get]
func (h *RateHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rate, err := h.rateService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// List godoc
// @ID           listRates
// @Summary      List rate brackets
// @Description  Retrieve a paginated list of rate brackets, ordered by low bound
// @Tags         rates
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(low)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(asc)
// @Success      200 {object} dto.Response{data=[]costing.RateResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rates [get]
func (h *RateHandler) List(c *gin.Context) {
	var filter costing.RateListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	rates, total, err := h.rateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rates, total, filter.Page, filter.PageSize)
}

// Lookup godoc
// @ID           lookupRate
// @Summary      Find the bracket for a quantity
// @Description  Returns the rate bracket whose range contains the quantity
// @Tags         rates
// @Produce      json
// @Param        quantity query int true "Pieces per unit" minimum(1)
// @Success      200 {object} dto.Response{data=costing.RateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rates/lookup [get]
func (h *RateHandler) Lookup(c *gin.Context) {
	var q RateLookupQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rate, err := h.rateService.LookupByQuantity(c.Request.Context(), q.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// Update godoc
// @ID           updateRate
// @Summary      Update a rate bracket
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        id path string true "Rate ID" format(uuid)
// @Param        request body costing.UpdateRateRequest true "Rate bracket"
// @Success      200 {object} dto.Response{data=costing.RateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rates/{id} [put]
func (h *RateHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req costing.UpdateRateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rate, err := h.rateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// Delete godoc
// @ID           deleteRate
// @Summary      Delete a rate bracket
// @Tags         rates
// @Param        id path string true "Rate ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rates/{id} [delete]
func (h *RateHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.rateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

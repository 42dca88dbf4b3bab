package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/application/costing"
)

// ConstantsHandler handles the costing constants
type ConstantsHandler struct {
	BaseHandler
	constantsService *costing.ConstantsService
}

// NewConstantsHandler creates a new ConstantsHandler
func NewConstantsHandler(constantsService *costing.ConstantsService) *ConstantsHandler {
	return &ConstantsHandler{constantsService: constantsService}
}

// Get godoc
// @ID           getConstants
// @Summary      Get costing constants
// @Tags         constants
// @Produce      json
// @Success      200 {object} dto.Response{data=costing.ConstantsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /constants [get]
func (h *ConstantsHandler) Get(c *gin.Context) {
	constants, err := h.constantsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, constants)
}

// Update godoc
// @ID           updateConstants
// @Summary      Update costing constants
// @Description  Partial update. Omitted fields keep their current value.
// @Tags         constants
// @Accept       json
// @Produce      json
// @Param        request body costing.UpdateConstantsRequest true "Constants"
// @Success      200 {object} dto.Response{data=costing.ConstantsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /constants [put]
func (h *ConstantsHandler) Update(c *gin.Context) {
	var req costing.UpdateConstantsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	constants, err := h.constantsService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, constants)
}

// Reset godoc
// @ID           resetConstants
// @Summary      Restore default constants
// @Tags         constants
// @Produce      json
// @Success      200 {object} dto.Response{data=costing.ConstantsResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /constants/reset [post]
func (h *ConstantsHandler) Reset(c *gin.Context) {
	constants, err := h.constantsService.Reset(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, constants)
}

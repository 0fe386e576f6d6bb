package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/apierror"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/middleware"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/service"
)

type CheckoutHandler struct{ svc service.CheckoutService }

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Complete runs the full sale completion flow: stock check, payment
// capture, persistence, inventory, financial booking, fiscal issuance.
// Best-effort step failures come back in the response's warnings array.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.CompleteSale(c.Request.Context(), claims.OperatorID(), req)
	if err != nil {
		writeFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancel reverses a completed sale: fiscal cancellation, restock,
// financial reversal and the drawer refund entry.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	warnings, err := h.svc.CancelSale(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeFault(c, err)
		return
	}
	if len(warnings) > 0 {
		c.JSON(http.StatusOK, gin.H{"warnings": warnings})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated, filtered list of sales.
func (h *CheckoutHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

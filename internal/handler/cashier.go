package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/apierror"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/middleware"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/service"
)

type CashierHandler struct{ svc service.CashierService }

func NewCashierHandler(svc service.CashierService) *CashierHandler {
	return &CashierHandler{svc: svc}
}

// Open starts a new drawer session for the authenticated operator.
func (h *CashierHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Open(c.Request.Context(), claims.OperatorID(), req)
	if err != nil {
		writeFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Withdraw records a cash removal (sangria) from the drawer.
func (h *CashierHandler) Withdraw(c *gin.Context) {
	var req dto.CashMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Withdraw(c.Request.Context(), req); err != nil {
		writeFault(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Deposit records a cash addition (suprimento) to the drawer.
func (h *CashierHandler) Deposit(c *gin.Context) {
	var req dto.CashMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Deposit(c.Request.Context(), req); err != nil {
		writeFault(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Close performs the blind count reconciliation and closes the session.
func (h *CashierHandler) Close(c *gin.Context) {
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), req)
	if err != nil {
		writeFault(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary returns the session report derived from ledger replay.
func (h *CashierHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Active returns the operator's currently open session, if any.
func (h *CashierHandler) Active(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Active(c.Request.Context(), claims.OperatorID())
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("nenhuma sessão de caixa aberta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns a paginated list of past sessions.
func (h *CashierHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	sessions, total, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar sessões"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions, "total": total, "page": page, "limit": limit})
}

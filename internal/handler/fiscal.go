package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/apierror"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
)

type FiscalHandler struct{ repo repository.FiscalRepository }

func NewFiscalHandler(repo repository.FiscalRepository) *FiscalHandler {
	return &FiscalHandler{repo: repo}
}

// BySale returns the fiscal document linked to a sale, including retry
// state for documents stuck in "pending".
func (h *FiscalHandler) BySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	doc, err := h.repo.FindBySaleID(c.Request.Context(), saleID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("documento fiscal não encontrado"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"document": dto.FiscalDocumentResponse{
			ID:        doc.ID.String(),
			Type:      doc.Type,
			Number:    doc.Number,
			AccessKey: doc.AccessKey,
			Status:    doc.Status,
		},
		"retry_count":   doc.RetryCount,
		"next_retry_at": doc.NextRetryAt,
		"last_error":    doc.LastError,
	})
}

package worker

// fiscal_worker.go
// Processes fiscal re-issuance jobs from QueueFiscal: documents that failed
// to issue synchronously during checkout are retried here with exponential
// backoff before being handed to the slower retry cron.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
)

// FiscalWorker re-attempts issuance of pending fiscal documents.
type FiscalWorker struct {
	fiscal     gateway.FiscalGateway
	fiscalRepo repository.FiscalRepository
	saleRepo   repository.SaleRepository
}

func NewFiscalWorker(fiscal gateway.FiscalGateway, fiscalRepo repository.FiscalRepository, saleRepo repository.SaleRepository) *FiscalWorker {
	return &FiscalWorker{fiscal: fiscal, fiscalRepo: fiscalRepo, saleRepo: saleRepo}
}

// Process handles a single fiscal retry job:
//  1. Parse FiscalRetryPayload from the job envelope
//  2. Fetch the document and its sale (with items)
//  3. Re-issue with exponential backoff (max 3 attempts)
//  4. Update the document: issued, or rescheduled for the retry cron
func (w *FiscalWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FiscalRetryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("fiscal_worker: invalid payload")
		return
	}
	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		log.Error().Str("document_id", payload.DocumentID).Msg("fiscal_worker: invalid document_id")
		return
	}

	doc, sale, err := w.loadPending(ctx, docID)
	if err != nil {
		log.Error().Err(err).Str("document_id", payload.DocumentID).Msg("fiscal_worker: load failed")
		return
	}
	if doc == nil {
		return // already issued or cancelled meanwhile
	}

	var issued *gateway.IssuedDocument
	issueErr := withRetry(ctx, 3, func(attempt int) error {
		resp, err := w.fiscal.Issue(ctx, buildIssueRequest(doc, sale))
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("document_id", doc.ID.String()).
				Msg("fiscal_worker: issuance attempt failed, retrying")
			return err
		}
		issued = resp
		return nil
	})

	if issueErr != nil {
		doc.RetryCount++
		msg := issueErr.Error()
		doc.LastError = &msg
		next := time.Now().Add(computeRetryBackoff(doc.RetryCount))
		doc.NextRetryAt = &next
		_ = w.fiscalRepo.Update(ctx, doc)
		log.Error().
			Err(issueErr).
			Str("document_id", doc.ID.String()).
			Time("next_retry_at", next).
			Msg("fiscal_worker: issuance failed after all attempts, handed to retry cron")
		return
	}

	doc.Status = model.FiscalIssued
	doc.ExternalID = &issued.ExternalID
	doc.Number = &issued.Number
	doc.AccessKey = &issued.AccessKey
	doc.NextRetryAt = nil
	doc.LastError = nil
	if err := w.fiscalRepo.Update(ctx, doc); err != nil {
		log.Error().Err(err).Str("document_id", doc.ID.String()).Msg("fiscal_worker: failed to persist issued document")
		return
	}
	log.Info().
		Str("document_id", doc.ID.String()).
		Str("access_key", issued.AccessKey).
		Msg("fiscal_worker: document issued on retry")
}

func (w *FiscalWorker) loadPending(ctx context.Context, docID uuid.UUID) (*model.FiscalDocument, *model.Sale, error) {
	doc, err := w.fiscalRepo.FindByID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if doc.Status != model.FiscalPending {
		return nil, nil, nil
	}
	sale, err := w.saleRepo.FindByID(ctx, doc.SaleID)
	if err != nil {
		return nil, nil, err
	}
	return doc, sale, nil
}

func buildIssueRequest(doc *model.FiscalDocument, sale *model.Sale) gateway.IssueRequest {
	req := gateway.IssueRequest{
		SaleID:       sale.ID,
		DocumentType: doc.Type,
		Total:        sale.Total,
		TaxAmount:    sale.TaxAmount,
	}
	for _, item := range sale.Items {
		req.Items = append(req.Items, gateway.IssueItem{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return req
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

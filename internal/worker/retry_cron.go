package worker

// retry_cron.go
// Background goroutine that periodically re-attempts issuance for fiscal
// documents stuck in status "pending" with a next_retry_at in the past.
// Uses the circuit breaker to avoid hammering a downed sidecar.

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/infra"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxFiscalRetries caps cron re-attempts before a document is marked
	// rejected and moved to the DLQ for manual inspection.
	MaxFiscalRetries = 5
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	FiscalRepo repository.FiscalRepository
	SaleRepo   repository.SaleRepository
	Fiscal     gateway.FiscalGateway
	CB         *infra.CircuitBreaker
	RDB        *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending documents, and re-attempts issuance through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed sidecar
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	docs, err := cfg.FiscalRepo.FindPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(docs) == 0 {
		return
	}

	log.Info().Int("count", len(docs)).Msg("retry_cron: processing pending fiscal documents")

	for i := range docs {
		doc := &docs[i]

		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		sale, err := cfg.SaleRepo.FindByID(ctx, doc.SaleID)
		if err != nil {
			log.Error().Err(err).Str("document_id", doc.ID.String()).Msg("retry_cron: sale not found")
			continue
		}

		issued, issueErr := cfg.Fiscal.Issue(ctx, buildIssueRequest(doc, sale))
		if issueErr != nil {
			doc.RetryCount++
			msg := issueErr.Error()
			doc.LastError = &msg
			next := time.Now().Add(computeRetryBackoff(doc.RetryCount))
			doc.NextRetryAt = &next

			if doc.RetryCount >= MaxFiscalRetries {
				doc.Status = model.FiscalRejected
				doc.NextRetryAt = nil
				log.Error().
					Str("document_id", doc.ID.String()).
					Str("sale_id", doc.SaleID.String()).
					Int("retries", doc.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to DLQ")

				payload := fmt.Sprintf(`{"document_id":"%s","sale_id":"%s"}`, doc.ID, doc.SaleID)
				SendToDLQ(ctx, cfg.RDB, QueueFiscal, "fiscal_retry", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxFiscalRetries, msg),
					doc.RetryCount)
			} else {
				log.Warn().
					Str("document_id", doc.ID.String()).
					Int("retry_count", doc.RetryCount).
					Time("next_retry_at", *doc.NextRetryAt).
					Msg("retry_cron: issuance retry failed, scheduled next attempt")
			}

			_ = cfg.FiscalRepo.Update(ctx, doc)
			continue
		}

		doc.Status = model.FiscalIssued
		doc.ExternalID = &issued.ExternalID
		doc.Number = &issued.Number
		doc.AccessKey = &issued.AccessKey
		doc.NextRetryAt = nil
		doc.LastError = nil
		_ = cfg.FiscalRepo.Update(ctx, doc)

		log.Info().
			Str("document_id", doc.ID.String()).
			Str("access_key", issued.AccessKey).
			Int("total_retries", doc.RetryCount).
			Msg("retry_cron: document issued after retry")
	}
}

// computeRetryBackoff grows the wait with each failed attempt:
// 1m, 2m, 4m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Minute * time.Duration(1<<uint(retryCount-1))
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}

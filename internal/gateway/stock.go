package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
)

// repoStock is the default StockGateway, backed by the local product table.
// Deployments with a remote inventory service swap in an HTTP client instead.
type repoStock struct {
	products repository.ProductRepository
}

func NewRepoStock(products repository.ProductRepository) StockGateway {
	return &repoStock{products: products}
}

func (g *repoStock) CheckAvailability(ctx context.Context, lines []StockLine) ([]Shortage, error) {
	var shortages []Shortage
	for _, line := range lines {
		p, err := g.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("produto %s não encontrado: %w", line.Name, err)
		}
		if !p.Active {
			shortages = append(shortages, Shortage{
				ProductID: line.ProductID, Name: p.Name,
				Requested: line.Quantity, Available: 0,
			})
			continue
		}
		if p.StockQuantity < line.Quantity {
			shortages = append(shortages, Shortage{
				ProductID: line.ProductID, Name: p.Name,
				Requested: line.Quantity, Available: p.StockQuantity,
			})
		}
	}
	return shortages, nil
}

func (g *repoStock) Decrement(ctx context.Context, saleID uuid.UUID, lines []StockLine) error {
	return g.move(saleID, lines, -1, "sale", "Venda")
}

func (g *repoStock) Restock(ctx context.Context, saleID uuid.UUID, lines []StockLine) error {
	return g.move(saleID, lines, +1, "restock_cancellation", "Cancelamento de venda")
}

// move adjusts stock for every line in one direction and records a movement
// row per product for the audit trail.
func (g *repoStock) move(saleID uuid.UUID, lines []StockLine, sign int, movType, reason string) error {
	for _, line := range lines {
		before, err := g.products.FindByIDTx(nil, line.ProductID)
		stockBefore := 0
		if err == nil && before != nil {
			stockBefore = before.StockQuantity
		}

		delta := sign * line.Quantity
		if err := g.products.AdjustStockTx(nil, line.ProductID, delta); err != nil {
			return fmt.Errorf("ajuste de estoque de %s: %w", line.Name, err)
		}

		ref := saleID
		mov := &model.StockMovement{
			ProductID:   line.ProductID,
			Type:        movType,
			Quantity:    delta,
			StockBefore: stockBefore,
			StockAfter:  stockBefore + delta,
			Reason:      fmt.Sprintf("%s %s", reason, saleID),
			ReferenceID: &ref,
		}
		if err := g.products.CreateMovementTx(nil, mov); err != nil {
			return err
		}
	}
	return nil
}

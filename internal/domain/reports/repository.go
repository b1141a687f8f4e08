package reports

import (
	"context"

	"bayanihan/internal/core/id"
)

// Repository computes report aggregations by scanning current state.
type Repository interface {
	GetBeneficiaryStats(ctx context.Context, beneficiaryID id.ID) (*BeneficiaryStats, error)
	GetLowStock(ctx context.Context) ([]LowStockItem, error)
	GetTopItems(ctx context.Context, limit int) ([]TopItem, error)
	GetTopCalamities(ctx context.Context, limit int) ([]TopCalamity, error)
}

package reports

import (
	"context"
	"fmt"

	"bayanihan/internal/core/id"
)

const (
	defaultTopN = 10
	maxTopN     = 100
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetBeneficiaryStats returns distribution count, total items received and
// last distribution date for one beneficiary.
func (s *Service) GetBeneficiaryStats(ctx context.Context, beneficiaryID id.ID) (*BeneficiaryStats, error) {
	stats, err := s.repo.GetBeneficiaryStats(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("get beneficiary stats: %w", err)
	}
	return stats, nil
}

// GetLowStock returns items at or below their low-stock threshold.
func (s *Service) GetLowStock(ctx context.Context) ([]LowStockItem, error) {
	items, err := s.repo.GetLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}
	return items, nil
}

// GetTopItems returns the N items with the highest distributed quantity.
func (s *Service) GetTopItems(ctx context.Context, limit int) ([]TopItem, error) {
	limit = clampLimit(limit)
	items, err := s.repo.GetTopItems(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get top items: %w", err)
	}
	return items, nil
}

// GetTopCalamities returns the N calamities with the highest distributed
// quantity.
func (s *Service) GetTopCalamities(ctx context.Context, limit int) ([]TopCalamity, error) {
	limit = clampLimit(limit)
	calamities, err := s.repo.GetTopCalamities(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get top calamities: %w", err)
	}
	return calamities, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopN
	}
	if limit > maxTopN {
		return maxTopN
	}
	return limit
}

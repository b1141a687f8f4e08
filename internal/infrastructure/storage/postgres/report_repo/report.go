// Package report_repo provides PostgreSQL-backed report aggregations.
// Reports are computed with plain SQL over current state; nothing is cached
// or maintained incrementally.
package report_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/reports"
	"bayanihan/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetBeneficiaryStats aggregates a beneficiary's distribution history.
// A beneficiary with no distributions yields zeros, not an error.
func (r *ReportRepo) GetBeneficiaryStats(ctx context.Context, beneficiaryID id.ID) (*reports.BeneficiaryStats, error) {
	sql := `
		SELECT
			COUNT(DISTINCT d.id)              AS distribution_count,
			COALESCE(SUM(di.quantity), 0)     AS total_items,
			MAX(d.distribution_date)          AS last_distribution_at
		FROM distributions d
		JOIN distribution_items di ON di.distribution_id = d.id
		WHERE d.beneficiary_id = $1
	`

	stats := &reports.BeneficiaryStats{BeneficiaryID: beneficiaryID}
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, beneficiaryID).Scan(
		&stats.DistributionCount, &stats.TotalItemsReceived, &stats.LastDistributionAt,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("aggregate beneficiary stats: %w", err)
	}

	return stats, nil
}

// GetLowStock returns items at or below their low-stock threshold, most
// depleted first.
func (r *ReportRepo) GetLowStock(ctx context.Context) ([]reports.LowStockItem, error) {
	sql := `
		SELECT id, item_name, quantity, low_stock_threshold, unit
		FROM inventory
		WHERE quantity <= low_stock_threshold
		ORDER BY quantity ASC, item_name
	`

	var items []reports.LowStockItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql); err != nil {
		return nil, fmt.Errorf("select low stock: %w", err)
	}

	return items, nil
}

// GetTopItems ranks items by total distributed quantity. Voided
// distributions do not count: their rows are gone.
func (r *ReportRepo) GetTopItems(ctx context.Context, limit int) ([]reports.TopItem, error) {
	sql := `
		SELECT
			di.inventory_id,
			i.item_name,
			SUM(di.quantity) AS total_quantity
		FROM distribution_items di
		JOIN inventory i ON i.id = di.inventory_id
		GROUP BY di.inventory_id, i.item_name
		ORDER BY total_quantity DESC, i.item_name
		LIMIT $1
	`

	var items []reports.TopItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, limit); err != nil {
		return nil, fmt.Errorf("select top items: %w", err)
	}

	return items, nil
}

// GetTopCalamities ranks calamities by total distributed quantity.
func (r *ReportRepo) GetTopCalamities(ctx context.Context, limit int) ([]reports.TopCalamity, error) {
	sql := `
		SELECT
			d.calamity_id,
			c.name,
			COUNT(DISTINCT d.id) AS distribution_count,
			SUM(di.quantity)     AS total_quantity
		FROM distributions d
		JOIN calamities c ON c.id = d.calamity_id
		JOIN distribution_items di ON di.distribution_id = d.id
		WHERE d.calamity_id IS NOT NULL
		GROUP BY d.calamity_id, c.name
		ORDER BY total_quantity DESC, c.name
		LIMIT $1
	`

	var calamities []reports.TopCalamity
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &calamities, sql, limit); err != nil {
		return nil, fmt.Errorf("select top calamities: %w", err)
	}

	return calamities, nil
}

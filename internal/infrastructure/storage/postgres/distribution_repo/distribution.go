// Package distribution_repo provides the PostgreSQL implementation of the
// distribution repository.
package distribution_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/distribution"
	"bayanihan/internal/infrastructure/storage/postgres"
)

const (
	distributionsTable = "distributions"
	linesTable         = "distribution_items"
)

var distributionColumns = []string{
	"id", "beneficiary_id", "calamity_id", "distribution_date",
	"distributed_by", "notes", "created_at",
}

// DistributionRepo implements distribution.Repository.
type DistributionRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// Ensure interface compliance.
var _ distribution.Repository = (*DistributionRepo)(nil)

// NewDistributionRepo creates a new distribution repository.
func NewDistributionRepo(txManager *postgres.TxManager) *DistributionRepo {
	return &DistributionRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the distribution header.
func (r *DistributionRepo) Create(ctx context.Context, d *distribution.Distribution) error {
	q := r.builder.Insert(distributionsTable).
		Columns(distributionColumns...).
		Values(
			d.ID, d.BeneficiaryID, d.CalamityID, d.Date,
			d.DistributedBy, d.Notes, d.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewValidation("distribution references an unknown beneficiary or calamity").
				WithCause(err)
		}
		return fmt.Errorf("insert distribution: %w", err)
	}

	return nil
}

// SaveLines inserts the line set for a distribution.
func (r *DistributionRepo) SaveLines(ctx context.Context, distributionID id.ID, lines []distribution.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder.Insert(linesTable).
		Columns("id", "distribution_id", "inventory_id", "quantity")

	for _, line := range lines {
		q = q.Values(line.ID, distributionID, line.ItemID, line.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewValidation("distribution line references an unknown item").
				WithCause(err)
		}
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// GetByID retrieves the header without lines.
func (r *DistributionRepo) GetByID(ctx context.Context, distributionID id.ID) (*distribution.Distribution, error) {
	q := r.builder.Select(distributionColumns...).
		From(distributionsTable).
		Where(squirrel.Eq{"id": distributionID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d distribution.Distribution
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("distribution", distributionID.String())
		}
		return nil, fmt.Errorf("get distribution: %w", err)
	}

	return &d, nil
}

// GetLines retrieves lines in insertion order.
func (r *DistributionRepo) GetLines(ctx context.Context, distributionID id.ID) ([]distribution.Line, error) {
	q := r.builder.Select("id", "inventory_id", "quantity").
		From(linesTable).
		Where(squirrel.Eq{"distribution_id": distributionID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []distribution.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}

	return lines, nil
}

// Delete removes the header; lines cascade.
func (r *DistributionRepo) Delete(ctx context.Context, distributionID id.ID) error {
	q := r.builder.Delete(distributionsTable).
		Where(squirrel.Eq{"id": distributionID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete distribution: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("distribution", distributionID.String())
	}

	return nil
}

// List retrieves headers matching the filter, newest first.
func (r *DistributionRepo) List(ctx context.Context, filter distribution.ListFilter) ([]*distribution.Distribution, error) {
	q := r.builder.Select(distributionColumns...).
		From(distributionsTable)

	if filter.BeneficiaryID != nil {
		q = q.Where(squirrel.Eq{"beneficiary_id": *filter.BeneficiaryID})
	}
	if filter.CalamityID != nil {
		q = q.Where(squirrel.Eq{"calamity_id": *filter.CalamityID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"distribution_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"distribution_date": *filter.DateTo})
	}

	q = q.OrderBy("distribution_date DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var distributions []*distribution.Distribution
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &distributions, sql, args...); err != nil {
		return nil, fmt.Errorf("select distributions: %w", err)
	}

	return distributions, nil
}

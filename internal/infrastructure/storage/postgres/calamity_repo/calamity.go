// Package calamity_repo provides the PostgreSQL implementation of the
// calamity repository.
package calamity_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/calamity"
	"bayanihan/internal/infrastructure/storage/postgres"
)

const (
	calamitiesTable    = "calamities"
	calamityItemsTable = "calamity_items"
)

var calamityColumns = []string{
	"id", "name", "description", "status", "created_at",
}

// CalamityRepo implements calamity.Repository.
type CalamityRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// Ensure interface compliance.
var _ calamity.Repository = (*CalamityRepo)(nil)

// NewCalamityRepo creates a new calamity repository.
func NewCalamityRepo(txManager *postgres.TxManager) *CalamityRepo {
	return &CalamityRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new calamity.
func (r *CalamityRepo) Create(ctx context.Context, c *calamity.Calamity) error {
	q := r.builder.Insert(calamitiesTable).
		Columns(calamityColumns...).
		Values(c.ID, c.Name, c.Description, c.Status, c.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("calamity", "name", c.Name).WithCause(err)
		}
		return fmt.Errorf("insert calamity: %w", err)
	}

	return nil
}

// Update modifies calamity fields.
func (r *CalamityRepo) Update(ctx context.Context, c *calamity.Calamity) error {
	q := r.builder.Update(calamitiesTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("status", c.Status).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("calamity", "name", c.Name).WithCause(err)
		}
		return fmt.Errorf("update calamity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("calamity", c.ID.String())
	}

	return nil
}

// SaveItems replaces the template item set for a calamity.
func (r *CalamityRepo) SaveItems(ctx context.Context, calamityID id.ID, items []calamity.TemplateItem) error {
	del := r.builder.Delete(calamityItemsTable).
		Where(squirrel.Eq{"calamity_id": calamityID})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear template items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	ins := r.builder.Insert(calamityItemsTable).
		Columns("id", "calamity_id", "inventory_id", "standard_quantity")

	for _, item := range items {
		ins = ins.Values(item.ID, calamityID, item.ItemID, item.StandardQuantity)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewValidation("template references an unknown item").
				WithCause(err)
		}
		if postgres.IsUniqueViolation(err) {
			return apperror.NewValidation("template lists the same item twice").
				WithCause(err)
		}
		return fmt.Errorf("insert template items: %w", err)
	}

	return nil
}

// GetByID retrieves a calamity without template items.
func (r *CalamityRepo) GetByID(ctx context.Context, calamityID id.ID) (*calamity.Calamity, error) {
	q := r.builder.Select(calamityColumns...).
		From(calamitiesTable).
		Where(squirrel.Eq{"id": calamityID})

	return r.getOne(ctx, q, calamityID.String())
}

// GetByName retrieves a calamity by exact name.
func (r *CalamityRepo) GetByName(ctx context.Context, name string) (*calamity.Calamity, error) {
	q := r.builder.Select(calamityColumns...).
		From(calamitiesTable).
		Where(squirrel.Eq{"name": name})

	return r.getOne(ctx, q, name)
}

// GetItems retrieves template items for a calamity.
func (r *CalamityRepo) GetItems(ctx context.Context, calamityID id.ID) ([]calamity.TemplateItem, error) {
	q := r.builder.Select("id", "inventory_id", "standard_quantity").
		From(calamityItemsTable).
		Where(squirrel.Eq{"calamity_id": calamityID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []calamity.TemplateItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select template items: %w", err)
	}

	return items, nil
}

// GetAll retrieves all calamities ordered by creation, newest first.
func (r *CalamityRepo) GetAll(ctx context.Context) ([]*calamity.Calamity, error) {
	q := r.builder.Select(calamityColumns...).
		From(calamitiesTable).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var calamities []*calamity.Calamity
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &calamities, sql, args...); err != nil {
		return nil, fmt.Errorf("select calamities: %w", err)
	}

	return calamities, nil
}

// Delete removes a calamity; template items cascade.
func (r *CalamityRepo) Delete(ctx context.Context, calamityID id.ID) error {
	q := r.builder.Delete(calamitiesTable).
		Where(squirrel.Eq{"id": calamityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("calamity is referenced by distributions").
				WithDetail("id", calamityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete calamity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("calamity", calamityID.String())
	}

	return nil
}

// ReferencedByDistribution reports whether any distribution is grouped under
// this calamity.
func (r *CalamityRepo) ReferencedByDistribution(ctx context.Context, calamityID id.ID) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM distributions WHERE calamity_id = $1)`

	var referenced bool
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, calamityID).Scan(&referenced)
	if err != nil {
		return false, fmt.Errorf("check references: %w", err)
	}

	return referenced, nil
}

func (r *CalamityRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*calamity.Calamity, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c calamity.Calamity
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("calamity", key)
		}
		return nil, fmt.Errorf("get calamity: %w", err)
	}

	return &c, nil
}

// Package inventory_repo provides the PostgreSQL implementation of the
// inventory repository.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/inventory"
	"bayanihan/internal/infrastructure/storage/postgres"
)

const inventoryTable = "inventory"

var inventoryColumns = []string{
	"id", "item_name", "category", "quantity", "unit",
	"low_stock_threshold", "created_at", "updated_at",
}

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// Ensure interface compliance.
var _ inventory.Repository = (*InventoryRepo)(nil)

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo(txManager *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new item.
func (r *InventoryRepo) Create(ctx context.Context, item *inventory.Item) error {
	q := r.builder.Insert(inventoryTable).
		Columns(inventoryColumns...).
		Values(
			item.ID, item.Name, item.Category, item.Quantity, item.Unit,
			item.LowStockThreshold, item.CreatedAt, item.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("item", "name", item.Name).WithCause(err)
		}
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// Update modifies item fields. Quantity is written as-is; services that must
// preserve the ledgered quantity copy it from the current row first.
func (r *InventoryRepo) Update(ctx context.Context, item *inventory.Item) error {
	q := r.builder.Update(inventoryTable).
		Set("item_name", item.Name).
		Set("category", item.Category).
		Set("quantity", item.Quantity).
		Set("unit", item.Unit).
		Set("low_stock_threshold", item.LowStockThreshold).
		Set("updated_at", item.UpdatedAt).
		Where(squirrel.Eq{"id": item.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("item", "name", item.Name).WithCause(err)
		}
		return fmt.Errorf("update item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", item.ID.String())
	}

	return nil
}

// GetByID retrieves an item by id.
func (r *InventoryRepo) GetByID(ctx context.Context, itemID id.ID) (*inventory.Item, error) {
	q := r.builder.Select(inventoryColumns...).
		From(inventoryTable).
		Where(squirrel.Eq{"id": itemID})

	return r.getOne(ctx, q, itemID.String())
}

// GetByName retrieves an item by exact name.
func (r *InventoryRepo) GetByName(ctx context.Context, name string) (*inventory.Item, error) {
	q := r.builder.Select(inventoryColumns...).
		From(inventoryTable).
		Where(squirrel.Eq{"item_name": name})

	return r.getOne(ctx, q, name)
}

// GetForUpdate retrieves an item with a row lock. Must run inside a
// transaction; on the pool the lock would be released immediately.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, itemID id.ID) (*inventory.Item, error) {
	sql := `
		SELECT id, item_name, category, quantity, unit,
			   low_stock_threshold, created_at, updated_at
		FROM inventory
		WHERE id = $1
		FOR UPDATE
	`

	var item inventory.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, itemID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", itemID.String())
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}

	return &item, nil
}

// GetAll retrieves all items ordered by name.
func (r *InventoryRepo) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	q := r.builder.Select(inventoryColumns...).
		From(inventoryTable).
		OrderBy("item_name")

	return r.selectMany(ctx, q)
}

// GetLowStock retrieves items at or below their threshold.
func (r *InventoryRepo) GetLowStock(ctx context.Context) ([]*inventory.Item, error) {
	q := r.builder.Select(inventoryColumns...).
		From(inventoryTable).
		Where("quantity <= low_stock_threshold").
		OrderBy("quantity ASC", "item_name")

	return r.selectMany(ctx, q)
}

// AdjustQuantity applies a signed delta. The quantity >= 0 CHECK constraint
// is the storage-level backstop behind the engine's pre-validation.
func (r *InventoryRepo) AdjustQuantity(ctx context.Context, itemID id.ID, delta int64) error {
	sql := `
		UPDATE inventory
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, itemID, delta)
	if err != nil {
		if postgres.IsCheckViolation(err) {
			return apperror.NewBusinessRule(apperror.CodeInsufficientStock,
				"quantity adjustment would go negative").
				WithDetail("item_id", itemID.String()).
				WithDetail("delta", delta).
				WithCause(err)
		}
		return fmt.Errorf("adjust quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}

	return nil
}

// SetQuantity writes an absolute quantity.
func (r *InventoryRepo) SetQuantity(ctx context.Context, itemID id.ID, quantity int64) error {
	sql := `
		UPDATE inventory
		SET quantity = $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, itemID, quantity)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}

	return nil
}

// Delete removes an item. Fails with a conflict when ledger entries or
// distribution lines still reference it.
func (r *InventoryRepo) Delete(ctx context.Context, itemID id.ID) error {
	q := r.builder.Delete(inventoryTable).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("item is referenced by transactions or distributions").
				WithDetail("id", itemID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}

	return nil
}

func (r *InventoryRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*inventory.Item, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item inventory.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", key)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}

func (r *InventoryRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*inventory.Item, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*inventory.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	return items, nil
}

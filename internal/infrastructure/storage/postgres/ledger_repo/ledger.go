// Package ledger_repo provides the PostgreSQL implementation of the
// transaction ledger. Inserts only; the interface carries the append-only
// guarantee and the schema has no UPDATE/DELETE path for this table.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/ledger"
	"bayanihan/internal/infrastructure/storage/postgres"
)

const ledgerTable = "inventory_transactions"

var ledgerColumns = []string{
	"id", "inventory_id", "actor_id", "transaction_type",
	"quantity_change", "quantity_before", "quantity_after",
	"notes", "reference_id", "reference_type", "created_at",
}

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append inserts one entry.
func (r *LedgerRepo) Append(ctx context.Context, entry *ledger.Entry) error {
	return r.AppendAll(ctx, []*ledger.Entry{entry})
}

// AppendAll batch inserts entries in one statement.
func (r *LedgerRepo) AppendAll(ctx context.Context, entries []*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	q := r.builder.Insert(ledgerTable).Columns(ledgerColumns...)

	for _, e := range entries {
		q = q.Values(
			e.ID, e.ItemID, e.ActorID, e.Kind,
			e.Delta, e.Before, e.After,
			e.Note, e.ReferenceID, nullableString(e.ReferenceKind), e.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewValidation("ledger entry references an unknown item").
				WithCause(err)
		}
		return fmt.Errorf("insert ledger entries: %w", err)
	}

	return nil
}

// ByItem returns entries for one item, newest first.
func (r *LedgerRepo) ByItem(ctx context.Context, itemID id.ID, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	q := r.baseSelect().Where(squirrel.Eq{"inventory_id": itemID})
	return r.selectMany(ctx, r.applyFilter(q, filter))
}

// All returns entries across all items, newest first.
func (r *LedgerRepo) All(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	return r.selectMany(ctx, r.applyFilter(r.baseSelect(), filter))
}

// CountByItem returns the number of entries recorded for an item.
func (r *LedgerRepo) CountByItem(ctx context.Context, itemID id.ID) (int64, error) {
	q := r.builder.Select("COUNT(*)").
		From(ledgerTable).
		Where(squirrel.Eq{"inventory_id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}

	return count, nil
}

func (r *LedgerRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(ledgerColumns...).From(ledgerTable)
}

func (r *LedgerRepo) applyFilter(q squirrel.SelectBuilder, filter ledger.ListFilter) squirrel.SelectBuilder {
	if filter.Kind != nil {
		q = q.Where(squirrel.Eq{"transaction_type": *filter.Kind})
	}

	q = q.OrderBy("created_at DESC", "id DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	return q
}

func (r *LedgerRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*ledger.Entry, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []*ledger.Entry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	return entries, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

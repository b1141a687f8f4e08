// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/beneficiary"
	"bayanihan/internal/infrastructure/storage/postgres"
)

const beneficiariesTable = "beneficiaries"

var beneficiaryColumns = []string{
	"id", "full_name", "barangay", "purok", "family_size",
	"contact", "created_at", "updated_at",
}

// BeneficiaryRepo implements beneficiary.Repository.
type BeneficiaryRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// Ensure interface compliance.
var _ beneficiary.Repository = (*BeneficiaryRepo)(nil)

// NewBeneficiaryRepo creates a new beneficiary repository.
func NewBeneficiaryRepo(txManager *postgres.TxManager) *BeneficiaryRepo {
	return &BeneficiaryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new beneficiary.
func (r *BeneficiaryRepo) Create(ctx context.Context, b *beneficiary.Beneficiary) error {
	q := r.builder.Insert(beneficiariesTable).
		Columns(beneficiaryColumns...).
		Values(
			b.ID, b.FullName, b.Barangay, b.Purok, b.FamilySize,
			b.Contact, b.CreatedAt, b.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("beneficiary", "identity", b.FullName).WithCause(err)
		}
		return fmt.Errorf("insert beneficiary: %w", err)
	}

	return nil
}

// Update modifies beneficiary fields.
func (r *BeneficiaryRepo) Update(ctx context.Context, b *beneficiary.Beneficiary) error {
	q := r.builder.Update(beneficiariesTable).
		Set("full_name", b.FullName).
		Set("barangay", b.Barangay).
		Set("purok", b.Purok).
		Set("family_size", b.FamilySize).
		Set("contact", b.Contact).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("beneficiary", "identity", b.FullName).WithCause(err)
		}
		return fmt.Errorf("update beneficiary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("beneficiary", b.ID.String())
	}

	return nil
}

// GetByID retrieves a beneficiary by id.
func (r *BeneficiaryRepo) GetByID(ctx context.Context, beneficiaryID id.ID) (*beneficiary.Beneficiary, error) {
	q := r.builder.Select(beneficiaryColumns...).
		From(beneficiariesTable).
		Where(squirrel.Eq{"id": beneficiaryID})

	return r.getOne(ctx, q, beneficiaryID.String())
}

// FindByIdentity matches the exact (name, barangay, purok) triple.
func (r *BeneficiaryRepo) FindByIdentity(ctx context.Context, fullName, barangay, purok string) (*beneficiary.Beneficiary, error) {
	q := r.builder.Select(beneficiaryColumns...).
		From(beneficiariesTable).
		Where(squirrel.Eq{
			"full_name": fullName,
			"barangay":  barangay,
			"purok":     purok,
		})

	return r.getOne(ctx, q, fullName)
}

// GetAll retrieves all beneficiaries ordered by name.
func (r *BeneficiaryRepo) GetAll(ctx context.Context) ([]*beneficiary.Beneficiary, error) {
	q := r.builder.Select(beneficiaryColumns...).
		From(beneficiariesTable).
		OrderBy("full_name", "barangay")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var beneficiaries []*beneficiary.Beneficiary
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &beneficiaries, sql, args...); err != nil {
		return nil, fmt.Errorf("select beneficiaries: %w", err)
	}

	return beneficiaries, nil
}

// Delete removes a beneficiary. Fails with a conflict when distributions
// still reference the record.
func (r *BeneficiaryRepo) Delete(ctx context.Context, beneficiaryID id.ID) error {
	q := r.builder.Delete(beneficiariesTable).
		Where(squirrel.Eq{"id": beneficiaryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("beneficiary is referenced by distributions").
				WithDetail("id", beneficiaryID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete beneficiary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("beneficiary", beneficiaryID.String())
	}

	return nil
}

func (r *BeneficiaryRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*beneficiary.Beneficiary, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b beneficiary.Beneficiary
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("beneficiary", key)
		}
		return nil, fmt.Errorf("get beneficiary: %w", err)
	}

	return &b, nil
}

package beneficiary

import (
	"context"
	"fmt"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/core/tx"
	"bayanihan/pkg/logger"
)

// Service provides business operations on the beneficiary catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new beneficiary service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create registers a beneficiary. Duplicate detection is the exact
// (name, barangay, purok) triple.
func (s *Service) Create(ctx context.Context, b *Beneficiary) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.FindByIdentity(ctx, b.FullName, b.Barangay, b.Purok)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check duplicate beneficiary: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("beneficiary", "name/barangay/purok", b.FullName)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, b)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "beneficiary registered", "beneficiary_id", b.ID, "name", b.FullName)
	return nil
}

// Update modifies a beneficiary record.
func (s *Service) Update(ctx context.Context, b *Beneficiary) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.FindByIdentity(ctx, b.FullName, b.Barangay, b.Purok)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check duplicate beneficiary: %w", err)
	}
	if existing != nil && existing.ID != b.ID {
		return apperror.NewDuplicate("beneficiary", "name/barangay/purok", b.FullName)
	}

	b.Touch()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, b)
	})
}

// GetByID retrieves one beneficiary.
func (s *Service) GetByID(ctx context.Context, beneficiaryID id.ID) (*Beneficiary, error) {
	return s.repo.GetByID(ctx, beneficiaryID)
}

// GetAll retrieves all beneficiaries.
func (s *Service) GetAll(ctx context.Context) ([]*Beneficiary, error) {
	return s.repo.GetAll(ctx)
}

// Delete removes a beneficiary. The persistence layer refuses the delete
// while distributions still reference the record.
func (s *Service) Delete(ctx context.Context, beneficiaryID id.ID) error {
	if _, err := s.repo.GetByID(ctx, beneficiaryID); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, beneficiaryID)
	})
}

// DisplayName implements the directory lookup the distribution engine uses
// for ledger notes.
func (s *Service) DisplayName(ctx context.Context, beneficiaryID id.ID) (string, error) {
	b, err := s.repo.GetByID(ctx, beneficiaryID)
	if err != nil {
		return "", err
	}
	return b.FullName, nil
}

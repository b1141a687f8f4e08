package distribution

import (
	"context"
	"fmt"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/core/tx"
	"bayanihan/internal/domain/inventory"
	"bayanihan/internal/domain/ledger"
	"bayanihan/pkg/logger"
)

// BeneficiaryDirectory resolves a beneficiary id to a display name for
// ledger notes. Implemented by the beneficiary service.
type BeneficiaryDirectory interface {
	DisplayName(ctx context.Context, beneficiaryID id.ID) (string, error)
}

// Archiver preserves a snapshot of a distribution before void deletes its
// rows. May be nil when archiving is disabled.
type Archiver interface {
	ArchiveVoided(ctx context.Context, d *Distribution, actorID *id.ID) error
}

// Service is the distribution engine. Create and Void each run as a single
// transaction spanning the header, the lines, the inventory adjustments and
// the ledger appends, so a failure partway leaves neither inventory nor
// ledger inconsistent.
type Service struct {
	repo          Repository
	items         inventory.Repository
	ledger        ledger.Repository
	beneficiaries BeneficiaryDirectory
	archive       Archiver
	txManager     tx.Manager
}

// NewService creates the distribution engine.
func NewService(
	repo Repository,
	items inventory.Repository,
	ledgerRepo ledger.Repository,
	beneficiaries BeneficiaryDirectory,
	archive Archiver,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		items:         items,
		ledger:        ledgerRepo,
		beneficiaries: beneficiaries,
		archive:       archive,
		txManager:     txManager,
	}
}

// Create validates the requested lines against current stock and, in one
// transaction, persists the distribution, decrements inventory and appends
// one Distribution ledger entry per line.
//
// All lines are validated before any mutation. When the same item appears on
// several lines the running total is validated, not each line in isolation.
func (s *Service) Create(ctx context.Context, d *Distribution) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	beneficiaryName, err := s.beneficiaries.DisplayName(ctx, d.BeneficiaryID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("beneficiary not found").
				WithDetail("beneficiary_id", d.BeneficiaryID.String())
		}
		return fmt.Errorf("resolve beneficiary: %w", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Pin stock levels under row locks and validate every line before
		// touching anything.
		stock := make(map[id.ID]int64, len(d.Lines))
		remaining := make(map[id.ID]int64, len(d.Lines))
		for _, line := range d.Lines {
			if _, seen := stock[line.ItemID]; !seen {
				item, err := s.items.GetForUpdate(ctx, line.ItemID)
				if err != nil {
					if apperror.IsNotFound(err) {
						return apperror.NewValidation("item not found").
							WithDetail("item_id", line.ItemID.String())
					}
					return fmt.Errorf("lock item: %w", err)
				}
				stock[line.ItemID] = item.Quantity
				remaining[line.ItemID] = item.Quantity
			}
			if remaining[line.ItemID] < line.Quantity {
				return apperror.NewInsufficientStock(
					line.ItemID.String(),
					line.Quantity,
					remaining[line.ItemID],
				)
			}
			remaining[line.ItemID] -= line.Quantity
		}

		if err := s.repo.Create(ctx, d); err != nil {
			return fmt.Errorf("create distribution: %w", err)
		}
		if err := s.repo.SaveLines(ctx, d.ID, d.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		// Decrement and ledger per line, in the order given.
		entries := make([]*ledger.Entry, 0, len(d.Lines))
		for _, line := range d.Lines {
			before := stock[line.ItemID]
			if err := s.items.AdjustQuantity(ctx, line.ItemID, -line.Quantity); err != nil {
				return fmt.Errorf("decrement inventory: %w", err)
			}

			entry := ledger.NewEntry(
				line.ItemID,
				d.DistributedBy,
				ledger.KindDistribution,
				-line.Quantity,
				before,
				fmt.Sprintf("Distributed to %s", beneficiaryName),
			).WithReference(d.ID, ledger.ReferenceKindDistribution)

			if err := entry.Validate(ctx); err != nil {
				return err
			}
			entries = append(entries, entry)
			stock[line.ItemID] = before - line.Quantity
		}

		return s.ledger.AppendAll(ctx, entries)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "distribution created",
		"distribution_id", d.ID,
		"beneficiary_id", d.BeneficiaryID,
		"lines", len(d.Lines),
		"total_quantity", d.TotalQuantity(),
	)
	return nil
}

// GetByID retrieves a distribution with its lines.
func (s *Service) GetByID(ctx context.Context, distributionID id.ID) (*Distribution, error) {
	d, err := s.repo.GetByID(ctx, distributionID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, distributionID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	d.Lines = lines

	return d, nil
}

// List retrieves distributions matching the filter, without lines.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Distribution, error) {
	return s.repo.List(ctx, filter)
}

// Void irreversibly cancels a distribution: the record and its lines are
// deleted, inventory is restored and compensating VoidDistribution entries
// are appended — all in one transaction. The acting user is recorded on the
// compensating entries.
//
// Returns false when the distribution existed but had no lines to restore.
func (s *Service) Void(ctx context.Context, distributionID id.ID, actorID *id.ID) (bool, error) {
	var restored bool

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetByID(ctx, distributionID)
		if err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, distributionID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		d.Lines = lines

		if s.archive != nil {
			if err := s.archive.ArchiveVoided(ctx, d, actorID); err != nil {
				return fmt.Errorf("archive voided distribution: %w", err)
			}
		}

		if err := s.repo.Delete(ctx, distributionID); err != nil {
			return fmt.Errorf("delete distribution: %w", err)
		}

		for _, line := range lines {
			item, err := s.items.GetForUpdate(ctx, line.ItemID)
			if err != nil {
				return fmt.Errorf("lock item: %w", err)
			}

			if err := s.items.AdjustQuantity(ctx, line.ItemID, line.Quantity); err != nil {
				return fmt.Errorf("restore inventory: %w", err)
			}

			entry := ledger.NewEntry(
				line.ItemID,
				actorID,
				ledger.KindVoidDistribution,
				line.Quantity,
				item.Quantity,
				"Distribution voided",
			).WithReference(distributionID, ledger.ReferenceKindDistribution)

			if err := entry.Validate(ctx); err != nil {
				return err
			}
			if err := s.ledger.Append(ctx, entry); err != nil {
				return fmt.Errorf("append ledger entry: %w", err)
			}
		}

		restored = len(lines) > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info(ctx, "distribution voided",
		"distribution_id", distributionID,
		"restored", restored,
	)
	return restored, nil
}

package inventory

import (
	"context"
	"fmt"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/core/tx"
	"bayanihan/internal/domain/ledger"
	"bayanihan/pkg/logger"
)

// Service provides business operations on the inventory store.
// Quantity changes funnel through the ledger: restock and set-quantity each
// write exactly one entry when the quantity actually changes.
type Service struct {
	repo      Repository
	ledger    ledger.Repository
	txManager tx.Manager
}

// NewService creates a new inventory service.
func NewService(repo Repository, ledgerRepo ledger.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledgerRepo,
		txManager: txManager,
	}
}

// CreateItem registers a new inventory item.
// The initial quantity is recorded as given and does NOT produce a ledger
// entry; only explicit quantity-changing operations do.
func (s *Service) CreateItem(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, item.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check duplicate name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("item", "name", item.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, item)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "inventory item created",
		"item_id", item.ID,
		"name", item.Name,
		"quantity", item.Quantity,
	)
	return nil
}

// UpdateItem changes name, category, unit or threshold.
// Quantity is not written through this path; use Restock or SetQuantity so
// the change lands in the ledger.
func (s *Service) UpdateItem(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	current, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}

	if item.Name != current.Name {
		existing, err := s.repo.GetByName(ctx, item.Name)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("check duplicate name: %w", err)
		}
		if existing != nil && existing.ID != item.ID {
			return apperror.NewDuplicate("item", "name", item.Name)
		}
	}

	// Keep the ledgered quantity authoritative.
	item.Quantity = current.Quantity
	item.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, item)
	})
}

// GetByID retrieves a single item.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// GetAll retrieves all items.
func (s *Service) GetAll(ctx context.Context) ([]*Item, error) {
	return s.repo.GetAll(ctx)
}

// GetLowStock returns items at or below their threshold.
func (s *Service) GetLowStock(ctx context.Context) ([]*Item, error) {
	return s.repo.GetLowStock(ctx)
}

// Restock adds stock. The amount must be strictly positive.
func (s *Service) Restock(ctx context.Context, itemID id.ID, amount int64, actorID *id.ID, note string) error {
	if amount <= 0 {
		return apperror.NewValidation("restock amount must be positive").
			WithDetail("amount", amount)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		if err := s.repo.AdjustQuantity(ctx, itemID, amount); err != nil {
			return fmt.Errorf("adjust quantity: %w", err)
		}

		entry := ledger.NewEntry(itemID, actorID, ledger.KindRestock, amount, item.Quantity, note)
		if err := entry.Validate(ctx); err != nil {
			return err
		}
		return s.ledger.Append(ctx, entry)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "item restocked", "item_id", itemID, "amount", amount)
	return nil
}

// SetQuantity writes an absolute quantity.
// A no-op set (new quantity equals current) succeeds without touching the
// ledger; zero-delta entries must not pollute the audit trail.
func (s *Service) SetQuantity(ctx context.Context, itemID id.ID, newQuantity int64, actorID *id.ID, note string) error {
	if newQuantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("quantity", newQuantity)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		delta := newQuantity - item.Quantity
		if delta == 0 {
			return nil
		}

		if err := s.repo.SetQuantity(ctx, itemID, newQuantity); err != nil {
			return fmt.Errorf("set quantity: %w", err)
		}

		entry := ledger.NewEntry(itemID, actorID, ledger.KindSetQuantity, delta, item.Quantity, note)
		if err := entry.Validate(ctx); err != nil {
			return err
		}
		return s.ledger.Append(ctx, entry)
	})
}

// DeleteItem removes an item. The persistence layer refuses the delete while
// ledger entries or distribution lines still reference it.
func (s *Service) DeleteItem(ctx context.Context, itemID id.ID) error {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, itemID)
	})
}

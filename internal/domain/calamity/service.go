package calamity

import (
	"context"
	"fmt"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/core/tx"
	"bayanihan/internal/domain/inventory"
	"bayanihan/pkg/logger"
)

// Service provides business operations on calamities and their templates.
type Service struct {
	repo      Repository
	items     inventory.Repository
	txManager tx.Manager
}

// NewService creates a new calamity service.
func NewService(repo Repository, items inventory.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		txManager: txManager,
	}
}

// Create registers a calamity. Status defaults to Active when unset.
func (s *Service) Create(ctx context.Context, c *Calamity) error {
	if c.Status == "" {
		c.Status = StatusActive
	}
	if err := c.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, c.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check duplicate name: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicate("calamity", "name", c.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create calamity: %w", err)
		}
		return s.repo.SaveItems(ctx, c.ID, c.Items)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "calamity created", "calamity_id", c.ID, "name", c.Name)
	return nil
}

// Update modifies a calamity and its template. Every template standard
// quantity is validated against the referenced item's current stock; the
// first offending item is named in the error.
func (s *Service) Update(ctx context.Context, c *Calamity) error {
	if c.Status == "" {
		c.Status = StatusActive
	}
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, c.ID); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, c.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check duplicate name: %w", err)
	}
	if existing != nil && existing.ID != c.ID {
		return apperror.NewDuplicate("calamity", "name", c.Name)
	}

	for _, templateItem := range c.Items {
		item, err := s.items.GetByID(ctx, templateItem.ItemID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("template item not found").
					WithDetail("item_id", templateItem.ItemID.String())
			}
			return fmt.Errorf("look up template item: %w", err)
		}
		if templateItem.StandardQuantity > item.Quantity {
			return apperror.NewValidation(
				fmt.Sprintf("standard quantity for %s exceeds current stock", item.Name)).
				WithDetail("item_id", item.ID.String()).
				WithDetail("standard_quantity", templateItem.StandardQuantity).
				WithDetail("available", item.Quantity)
		}
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update calamity: %w", err)
		}
		return s.repo.SaveItems(ctx, c.ID, c.Items)
	})
}

// GetByID retrieves a calamity with its template items.
func (s *Service) GetByID(ctx context.Context, calamityID id.ID) (*Calamity, error) {
	c, err := s.repo.GetByID(ctx, calamityID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, calamityID)
	if err != nil {
		return nil, fmt.Errorf("get template items: %w", err)
	}
	c.Items = items

	return c, nil
}

// GetAll retrieves all calamities without template items.
func (s *Service) GetAll(ctx context.Context) ([]*Calamity, error) {
	return s.repo.GetAll(ctx)
}

// Delete removes a calamity. Returns false without error when the delete is
// refused: an Active calamity cannot be deleted regardless of references,
// and neither can one still grouping distributions.
func (s *Service) Delete(ctx context.Context, calamityID id.ID) (bool, error) {
	c, err := s.repo.GetByID(ctx, calamityID)
	if err != nil {
		return false, err
	}

	if c.IsActive() {
		logger.Warn(ctx, "refusing to delete active calamity", "calamity_id", calamityID)
		return false, nil
	}

	referenced, err := s.repo.ReferencedByDistribution(ctx, calamityID)
	if err != nil {
		return false, fmt.Errorf("check references: %w", err)
	}
	if referenced {
		logger.Warn(ctx, "refusing to delete referenced calamity", "calamity_id", calamityID)
		return false, nil
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, calamityID)
	})
	if err != nil {
		return false, err
	}

	logger.Info(ctx, "calamity deleted", "calamity_id", calamityID)
	return true, nil
}

// LoadTemplate expands the calamity's template for a new distribution.
// Each line is clamped to min(standardQuantity, currentStock); items fully
// out of stock are dropped.
func (s *Service) LoadTemplate(ctx context.Context, calamityID id.ID) ([]TemplateLine, error) {
	templateItems, err := s.repo.GetItems(ctx, calamityID)
	if err != nil {
		return nil, err
	}

	lines := make([]TemplateLine, 0, len(templateItems))
	for _, templateItem := range templateItems {
		item, err := s.items.GetByID(ctx, templateItem.ItemID)
		if err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("look up template item: %w", err)
		}

		if item.Quantity <= 0 {
			continue
		}

		quantity := templateItem.StandardQuantity
		if quantity > item.Quantity {
			quantity = item.Quantity
		}

		lines = append(lines, TemplateLine{
			ItemID:           item.ID,
			ItemName:         item.Name,
			Quantity:         quantity,
			StandardQuantity: templateItem.StandardQuantity,
		})
	}

	return lines, nil
}

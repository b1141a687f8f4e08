package calamity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/inventory"
)

// --- Test fakes ---

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCalamityRepo struct {
	calamities map[id.ID]*Calamity
	items      map[id.ID][]TemplateItem
	referenced map[id.ID]bool
}

func newFakeCalamityRepo() *fakeCalamityRepo {
	return &fakeCalamityRepo{
		calamities: make(map[id.ID]*Calamity),
		items:      make(map[id.ID][]TemplateItem),
		referenced: make(map[id.ID]bool),
	}
}

func (r *fakeCalamityRepo) Create(_ context.Context, c *Calamity) error {
	clone := *c
	clone.Items = nil
	r.calamities[c.ID] = &clone
	return nil
}

func (r *fakeCalamityRepo) Update(_ context.Context, c *Calamity) error {
	if _, ok := r.calamities[c.ID]; !ok {
		return apperror.NewNotFound("calamity", c.ID.String())
	}
	clone := *c
	clone.Items = nil
	r.calamities[c.ID] = &clone
	return nil
}

func (r *fakeCalamityRepo) SaveItems(_ context.Context, calamityID id.ID, items []TemplateItem) error {
	r.items[calamityID] = append([]TemplateItem(nil), items...)
	return nil
}

func (r *fakeCalamityRepo) GetByID(_ context.Context, calamityID id.ID) (*Calamity, error) {
	c, ok := r.calamities[calamityID]
	if !ok {
		return nil, apperror.NewNotFound("calamity", calamityID.String())
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCalamityRepo) GetByName(_ context.Context, name string) (*Calamity, error) {
	for _, c := range r.calamities {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("calamity", name)
}

func (r *fakeCalamityRepo) GetItems(_ context.Context, calamityID id.ID) ([]TemplateItem, error) {
	return append([]TemplateItem(nil), r.items[calamityID]...), nil
}

func (r *fakeCalamityRepo) GetAll(_ context.Context) ([]*Calamity, error) {
	out := make([]*Calamity, 0, len(r.calamities))
	for _, c := range r.calamities {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeCalamityRepo) Delete(_ context.Context, calamityID id.ID) error {
	if _, ok := r.calamities[calamityID]; !ok {
		return apperror.NewNotFound("calamity", calamityID.String())
	}
	delete(r.calamities, calamityID)
	delete(r.items, calamityID)
	return nil
}

func (r *fakeCalamityRepo) ReferencedByDistribution(_ context.Context, calamityID id.ID) (bool, error) {
	return r.referenced[calamityID], nil
}

type fakeItemRepo struct {
	items map[id.ID]*inventory.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[id.ID]*inventory.Item)}
}

func (r *fakeItemRepo) add(name string, quantity int64) id.ID {
	item := inventory.NewItem(name, "Food", quantity, "piece")
	r.items[item.ID] = item
	return item.ID
}

func (r *fakeItemRepo) Create(_ context.Context, item *inventory.Item) error {
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *inventory.Item) error {
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, itemID id.ID) (*inventory.Item, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	clone := *item
	return &clone, nil
}

func (r *fakeItemRepo) GetByName(_ context.Context, name string) (*inventory.Item, error) {
	for _, item := range r.items {
		if item.Name == name {
			clone := *item
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("item", name)
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, itemID id.ID) (*inventory.Item, error) {
	return r.GetByID(ctx, itemID)
}

func (r *fakeItemRepo) GetAll(_ context.Context) ([]*inventory.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) GetLowStock(_ context.Context) ([]*inventory.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) AdjustQuantity(_ context.Context, itemID id.ID, delta int64) error {
	item, ok := r.items[itemID]
	if !ok {
		return apperror.NewNotFound("item", itemID.String())
	}
	item.Quantity += delta
	return nil
}

func (r *fakeItemRepo) SetQuantity(_ context.Context, itemID id.ID, quantity int64) error {
	item, ok := r.items[itemID]
	if !ok {
		return apperror.NewNotFound("item", itemID.String())
	}
	item.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, itemID id.ID) error {
	delete(r.items, itemID)
	return nil
}

func newTestService() (*Service, *fakeCalamityRepo, *fakeItemRepo) {
	calRepo := newFakeCalamityRepo()
	itemRepo := newFakeItemRepo()
	return NewService(calRepo, itemRepo, stubTxManager{}), calRepo, itemRepo
}

// --- Tests ---

func TestCreateCalamity(t *testing.T) {
	ctx := context.Background()

	t.Run("status defaults to Active", func(t *testing.T) {
		svc, repo, _ := newTestService()

		c := New("Typhoon Odette Relief", "relief operations")
		c.Status = ""
		require.NoError(t, svc.Create(ctx, c))

		stored, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, stored.Status)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		require.NoError(t, svc.Create(ctx, New("Typhoon Odette Relief", "")))
		err := svc.Create(ctx, New("Typhoon Odette Relief", "second"))
		assert.True(t, apperror.IsDuplicate(err))
	})

	t.Run("template persisted with calamity", func(t *testing.T) {
		svc, repo, itemRepo := newTestService()
		riceID := itemRepo.add("Rice", 100)

		c := New("Flood Response", "")
		c.AddItem(riceID, 2)
		require.NoError(t, svc.Create(ctx, c))

		items, err := repo.GetItems(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, riceID, items[0].ItemID)
		assert.Equal(t, int64(2), items[0].StandardQuantity)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _, _ := newTestService()
		err := svc.Create(ctx, New("   ", ""))
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("duplicate template item rejected", func(t *testing.T) {
		svc, _, itemRepo := newTestService()
		riceID := itemRepo.add("Rice", 100)

		c := New("Flood Response", "")
		c.AddItem(riceID, 2)
		c.AddItem(riceID, 3)

		err := svc.Create(ctx, c)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("non-positive standard quantity rejected", func(t *testing.T) {
		svc, _, itemRepo := newTestService()
		riceID := itemRepo.add("Rice", 100)

		c := New("Flood Response", "")
		c.AddItem(riceID, 0)

		err := svc.Create(ctx, c)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestUpdateCalamity(t *testing.T) {
	ctx := context.Background()

	t.Run("standard quantity exceeding stock names the item", func(t *testing.T) {
		svc, _, itemRepo := newTestService()
		riceID := itemRepo.add("Rice", 5)

		c := New("Flood Response", "")
		require.NoError(t, svc.Create(ctx, c))

		c.AddItem(riceID, 10)
		err := svc.Update(ctx, c)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "Rice")
	})

	t.Run("standard quantity at stock is allowed", func(t *testing.T) {
		svc, repo, itemRepo := newTestService()
		riceID := itemRepo.add("Rice", 5)

		c := New("Flood Response", "")
		require.NoError(t, svc.Create(ctx, c))

		c.AddItem(riceID, 5)
		require.NoError(t, svc.Update(ctx, c))

		items, err := repo.GetItems(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("rename to an existing name rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		first := New("Typhoon Odette Relief", "")
		require.NoError(t, svc.Create(ctx, first))
		second := New("Flood Response", "")
		require.NoError(t, svc.Create(ctx, second))

		second.Name = "Typhoon Odette Relief"
		err := svc.Update(ctx, second)
		assert.True(t, apperror.IsDuplicate(err))
	})

	t.Run("update keeping own name is allowed", func(t *testing.T) {
		svc, _, _ := newTestService()

		c := New("Typhoon Odette Relief", "")
		require.NoError(t, svc.Create(ctx, c))

		c.Description = "updated"
		assert.NoError(t, svc.Update(ctx, c))
	})

	t.Run("unknown calamity is not found", func(t *testing.T) {
		svc, _, _ := newTestService()
		err := svc.Update(ctx, New("Ghost", ""))
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestDeleteCalamity(t *testing.T) {
	ctx := context.Background()

	t.Run("active calamity refused without error", func(t *testing.T) {
		svc, repo, _ := newTestService()

		c := New("Typhoon Odette Relief", "")
		require.NoError(t, svc.Create(ctx, c))

		deleted, err := svc.Delete(ctx, c.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.GetByID(ctx, c.ID)
		assert.NoError(t, err, "calamity must survive the refused delete")
	})

	t.Run("referenced calamity refused without error", func(t *testing.T) {
		svc, repo, _ := newTestService()

		c := New("Typhoon Odette Relief", "")
		c.Status = StatusInactive
		require.NoError(t, svc.Create(ctx, c))
		repo.referenced[c.ID] = true

		deleted, err := svc.Delete(ctx, c.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("inactive unreferenced calamity deleted", func(t *testing.T) {
		svc, repo, _ := newTestService()

		c := New("Typhoon Odette Relief", "")
		c.Status = StatusInactive
		require.NoError(t, svc.Create(ctx, c))

		deleted, err := svc.Delete(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, c.ID)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("missing calamity is not found", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Delete(ctx, id.New())
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestLoadTemplate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *fakeItemRepo, *Calamity, id.ID, id.ID, id.ID) {
		t.Helper()
		svc, _, itemRepo := newTestService()
		riceID := itemRepo.add("Rice", 100)
		waterID := itemRepo.add("Bottled Water", 3)
		blanketID := itemRepo.add("Blankets", 0)

		c := New("Typhoon Odette Relief", "")
		c.AddItem(riceID, 2)    // fully available
		c.AddItem(waterID, 12)  // clamped to 3
		c.AddItem(blanketID, 2) // out of stock, dropped
		require.NoError(t, svc.Create(ctx, c))

		return svc, itemRepo, c, riceID, waterID, blanketID
	}

	t.Run("clamps to stock and drops empty items", func(t *testing.T) {
		svc, _, c, riceID, waterID, _ := setup(t)

		lines, err := svc.LoadTemplate(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, lines, 2)

		assert.Equal(t, riceID, lines[0].ItemID)
		assert.Equal(t, "Rice", lines[0].ItemName)
		assert.Equal(t, int64(2), lines[0].Quantity)
		assert.Equal(t, int64(2), lines[0].StandardQuantity)

		assert.Equal(t, waterID, lines[1].ItemID)
		assert.Equal(t, int64(3), lines[1].Quantity, "clamped to available stock")
		assert.Equal(t, int64(12), lines[1].StandardQuantity)
	})

	t.Run("vanished item dropped silently", func(t *testing.T) {
		svc, itemRepo, c, riceID, waterID, _ := setup(t)
		require.NoError(t, itemRepo.Delete(ctx, waterID))

		lines, err := svc.LoadTemplate(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, riceID, lines[0].ItemID)
	})

	t.Run("empty template yields empty lines", func(t *testing.T) {
		svc, _, _ := newTestService()
		c := New("Drought Response", "")
		require.NoError(t, svc.Create(ctx, c))

		lines, err := svc.LoadTemplate(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

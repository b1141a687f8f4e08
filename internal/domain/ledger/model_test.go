package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

func TestNewEntry_DerivesAfter(t *testing.T) {
	itemID := id.New()
	actorID := id.New()

	entry := NewEntry(itemID, &actorID, KindRestock, 25, 100, "resupply")

	assert.Equal(t, itemID, entry.ItemID)
	assert.Equal(t, &actorID, entry.ActorID)
	assert.Equal(t, int64(25), entry.Delta)
	assert.Equal(t, int64(100), entry.Before)
	assert.Equal(t, int64(125), entry.After)
	assert.False(t, id.IsNil(entry.ID))
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestNewEntry_NegativeDelta(t *testing.T) {
	entry := NewEntry(id.New(), nil, KindDistribution, -30, 100, "")

	assert.Equal(t, int64(70), entry.After)
	require.NoError(t, entry.Validate(context.Background()))
}

func TestEntry_WithReference(t *testing.T) {
	refID := id.New()
	entry := NewEntry(id.New(), nil, KindDistribution, -1, 10, "").
		WithReference(refID, ReferenceKindDistribution)

	require.NotNil(t, entry.ReferenceID)
	assert.Equal(t, refID, *entry.ReferenceID)
	assert.Equal(t, ReferenceKindDistribution, entry.ReferenceKind)
}

func TestEntry_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("nil item rejected", func(t *testing.T) {
		entry := NewEntry(id.Nil(), nil, KindRestock, 1, 0, "")
		err := entry.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		entry := NewEntry(id.New(), nil, Kind("Adjustment"), 1, 0, "")
		err := entry.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("inconsistent quantities rejected", func(t *testing.T) {
		entry := NewEntry(id.New(), nil, KindRestock, 5, 10, "")
		entry.After = 99
		err := entry.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("negative after rejected", func(t *testing.T) {
		entry := NewEntry(id.New(), nil, KindDistribution, -20, 10, "")
		err := entry.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("all kinds accepted", func(t *testing.T) {
		for _, kind := range []Kind{KindRestock, KindSetQuantity, KindDistribution, KindVoidDistribution} {
			entry := NewEntry(id.New(), nil, kind, 1, 5, "")
			assert.NoError(t, entry.Validate(ctx), "kind %s", kind)
		}
	})
}

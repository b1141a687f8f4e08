package reports

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayanihan/internal/core/id"
)

type fakeReportRepo struct {
	stats      *BeneficiaryStats
	lowStock   []LowStockItem
	topItems   []TopItem
	calamities []TopCalamity
	err        error

	lastLimit int
}

func (r *fakeReportRepo) GetBeneficiaryStats(_ context.Context, _ id.ID) (*BeneficiaryStats, error) {
	return r.stats, r.err
}

func (r *fakeReportRepo) GetLowStock(_ context.Context) ([]LowStockItem, error) {
	return r.lowStock, r.err
}

func (r *fakeReportRepo) GetTopItems(_ context.Context, limit int) ([]TopItem, error) {
	r.lastLimit = limit
	return r.topItems, r.err
}

func (r *fakeReportRepo) GetTopCalamities(_ context.Context, limit int) ([]TopCalamity, error) {
	r.lastLimit = limit
	return r.calamities, r.err
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultTopN, clampLimit(0))
	assert.Equal(t, defaultTopN, clampLimit(-5))
	assert.Equal(t, 5, clampLimit(5))
	assert.Equal(t, maxTopN, clampLimit(maxTopN))
	assert.Equal(t, maxTopN, clampLimit(500))
}

func TestGetTopItems_LimitPassedThrough(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReportRepo{topItems: []TopItem{{Name: "Rice", TotalQuantity: 40}}}
	svc := NewService(repo)

	items, err := svc.GetTopItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultTopN, repo.lastLimit)
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)

	_, err = svc.GetTopItems(ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, maxTopN, repo.lastLimit)
}

func TestGetTopCalamities_LimitPassedThrough(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReportRepo{calamities: []TopCalamity{{Name: "Typhoon Odette Relief"}}}
	svc := NewService(repo)

	calamities, err := svc.GetTopCalamities(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastLimit)
	require.Len(t, calamities, 1)
}

func TestGetBeneficiaryStats(t *testing.T) {
	ctx := context.Background()
	beneficiaryID := id.New()
	repo := &fakeReportRepo{stats: &BeneficiaryStats{
		BeneficiaryID:      beneficiaryID,
		DistributionCount:  3,
		TotalItemsReceived: 27,
	}}
	svc := NewService(repo)

	stats, err := svc.GetBeneficiaryStats(ctx, beneficiaryID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.DistributionCount)
	assert.Equal(t, int64(27), stats.TotalItemsReceived)
	assert.Nil(t, stats.LastDistributionAt)
}

func TestReportErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	cause := fmt.Errorf("connection reset")
	repo := &fakeReportRepo{err: cause}
	svc := NewService(repo)

	_, err := svc.GetBeneficiaryStats(ctx, id.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	_, err = svc.GetLowStock(ctx)
	assert.ErrorIs(t, err, cause)

	_, err = svc.GetTopItems(ctx, 5)
	assert.ErrorIs(t, err, cause)

	_, err = svc.GetTopCalamities(ctx, 5)
	assert.ErrorIs(t, err, cause)
}

package beneficiary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBeneficiaryRepo struct {
	records map[id.ID]*Beneficiary
}

func newFakeBeneficiaryRepo() *fakeBeneficiaryRepo {
	return &fakeBeneficiaryRepo{records: make(map[id.ID]*Beneficiary)}
}

func (r *fakeBeneficiaryRepo) Create(_ context.Context, b *Beneficiary) error {
	clone := *b
	r.records[b.ID] = &clone
	return nil
}

func (r *fakeBeneficiaryRepo) Update(_ context.Context, b *Beneficiary) error {
	if _, ok := r.records[b.ID]; !ok {
		return apperror.NewNotFound("beneficiary", b.ID.String())
	}
	clone := *b
	r.records[b.ID] = &clone
	return nil
}

func (r *fakeBeneficiaryRepo) GetByID(_ context.Context, beneficiaryID id.ID) (*Beneficiary, error) {
	b, ok := r.records[beneficiaryID]
	if !ok {
		return nil, apperror.NewNotFound("beneficiary", beneficiaryID.String())
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBeneficiaryRepo) FindByIdentity(_ context.Context, fullName, barangay, purok string) (*Beneficiary, error) {
	for _, b := range r.records {
		if b.FullName == fullName && b.Barangay == barangay && b.Purok == purok {
			clone := *b
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("beneficiary", fullName)
}

func (r *fakeBeneficiaryRepo) GetAll(_ context.Context) ([]*Beneficiary, error) {
	out := make([]*Beneficiary, 0, len(r.records))
	for _, b := range r.records {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeBeneficiaryRepo) Delete(_ context.Context, beneficiaryID id.ID) error {
	if _, ok := r.records[beneficiaryID]; !ok {
		return apperror.NewNotFound("beneficiary", beneficiaryID.String())
	}
	delete(r.records, beneficiaryID)
	return nil
}

func newTestService() (*Service, *fakeBeneficiaryRepo) {
	repo := newFakeBeneficiaryRepo()
	return NewService(repo, stubTxManager{}), repo
}

func TestCreateBeneficiary(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new beneficiary", func(t *testing.T) {
		svc, repo := newTestService()

		b := New("Maria Santos", "San Isidro", "Purok 1", 5)
		require.NoError(t, svc.Create(ctx, b))

		stored, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maria Santos", stored.FullName)
	})

	t.Run("duplicate identity triple rejected", func(t *testing.T) {
		svc, _ := newTestService()

		require.NoError(t, svc.Create(ctx, New("Maria Santos", "San Isidro", "Purok 1", 5)))
		err := svc.Create(ctx, New("Maria Santos", "San Isidro", "Purok 1", 3))
		assert.True(t, apperror.IsDuplicate(err))
	})

	t.Run("same name in a different purok is a different person", func(t *testing.T) {
		svc, _ := newTestService()

		require.NoError(t, svc.Create(ctx, New("Maria Santos", "San Isidro", "Purok 1", 5)))
		assert.NoError(t, svc.Create(ctx, New("Maria Santos", "San Isidro", "Purok 2", 5)))
		assert.NoError(t, svc.Create(ctx, New("Maria Santos", "Poblacion", "Purok 1", 5)))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _ := newTestService()
		err := svc.Create(ctx, New("  ", "San Isidro", "Purok 1", 5))
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("family size below one rejected", func(t *testing.T) {
		svc, _ := newTestService()
		err := svc.Create(ctx, New("Jose Reyes", "San Isidro", "Purok 1", 0))
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestUpdateBeneficiary(t *testing.T) {
	ctx := context.Background()

	t.Run("update keeping own identity is allowed", func(t *testing.T) {
		svc, repo := newTestService()

		b := New("Maria Santos", "San Isidro", "Purok 1", 5)
		require.NoError(t, svc.Create(ctx, b))

		b.FamilySize = 6
		require.NoError(t, svc.Update(ctx, b))

		stored, _ := repo.GetByID(ctx, b.ID)
		assert.Equal(t, 6, stored.FamilySize)
	})

	t.Run("update into another record's identity rejected", func(t *testing.T) {
		svc, _ := newTestService()

		require.NoError(t, svc.Create(ctx, New("Maria Santos", "San Isidro", "Purok 1", 5)))
		other := New("Jose Reyes", "San Isidro", "Purok 1", 3)
		require.NoError(t, svc.Create(ctx, other))

		other.FullName = "Maria Santos"
		err := svc.Update(ctx, other)
		assert.True(t, apperror.IsDuplicate(err))
	})
}

func TestDisplayName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	b := New("Ana Cruz", "Poblacion", "Purok 1", 6)
	require.NoError(t, svc.Create(ctx, b))

	name, err := svc.DisplayName(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", name)

	_, err = svc.DisplayName(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteBeneficiary(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	b := New("Pedro Garcia", "Poblacion", "Purok 3", 4)
	require.NoError(t, svc.Create(ctx, b))

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err := repo.GetByID(ctx, b.ID)
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, b.ID)
	assert.True(t, apperror.IsNotFound(err))
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
)

func TestUserRepo_EmailUnico(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &entity.User{ID: "1", Email: "a@b.test", Role: entity.RoleUser}))

	err := r.Create(ctx, &entity.User{ID: "2", Email: "a@b.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, r.UpdateRole(ctx, "1", entity.RoleAdmin))
	u, err := r.GetByEmail(ctx, "a@b.test")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	assert.ErrorIs(t, r.UpdateRole(ctx, "9", entity.RoleAdmin), domain.ErrNotFound)
}

func TestSweetRepo_DevuelveCopias(t *testing.T) {
	r := NewSweetRepository()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &entity.Sweet{ID: "1", Name: "Toffee", Price: decimal.NewFromInt(1), Quantity: 2}))

	s, err := r.GetByID(ctx, "1")
	require.NoError(t, err)
	s.Quantity = 100

	again, err := r.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Quantity, "modificar el resultado no altera el repositorio")
}

func TestSweetRepo_UpdateQuantityYDelete(t *testing.T) {
	r := NewSweetRepository()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &entity.Sweet{ID: "1", Name: "Toffee", Price: decimal.NewFromInt(1), Quantity: 2}))

	assert.ErrorIs(t, r.UpdateQuantity(ctx, "1", -1, time.Now()), domain.ErrOutOfStock)
	assert.ErrorIs(t, r.UpdateQuantity(ctx, "9", 1, time.Now()), domain.ErrNotFound)
	require.NoError(t, r.Delete(ctx, "1"))
	assert.ErrorIs(t, r.Delete(ctx, "1"), domain.ErrNotFound)

	s, err := r.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSweetRepo_ListConservaOrdenDeAlta(t *testing.T) {
	r := NewSweetRepository()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Create(ctx, &entity.Sweet{ID: id, Name: id, Price: decimal.NewFromInt(1)}))
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
)

func TestSupplierUseCase(t *testing.T) {
	store := memory.New()
	uc := NewSupplierUseCase(store.Repos().Suppliers)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.SupplierRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	s, err := uc.Create(ctx, dto.SupplierRequest{Name: "Italcol", Phone: "3001234567"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.SupplierRequest{Name: "Italcol"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	up, err := uc.Update(ctx, s.ID, dto.SupplierRequest{ContactName: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, "Italcol", up.Name)
	assert.Equal(t, "Luis", up.ContactName)
	assert.Equal(t, "3001234567", up.Phone)

	list, err := uc.List(ctx, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	now := time.Now()
	require.NoError(t, store.Repos().FeedInventory.Create(ctx, &entity.FeedInventoryItem{
		ID: "f1", FeedType: "Postura", SupplierID: &s.ID, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Repos().FeedPurchases.Create(ctx, &entity.FeedPurchase{
		ID: "p1", InventoryID: "f1", SupplierID: s.ID, PurchaseDate: now, CreatedAt: now, UpdatedAt: now,
	}))
	assert.True(t, errors.Is(uc.Delete(ctx, s.ID), domain.ErrConflict))

	other, err := uc.Create(ctx, dto.SupplierRequest{Name: "Solla"})
	require.NoError(t, err)
	require.NoError(t, store.Repos().FeedInventory.Create(ctx, &entity.FeedInventoryItem{
		ID: "f2", FeedType: "Engorde", SupplierID: &other.ID, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, uc.Delete(ctx, other.ID))
	item, err := store.Repos().FeedInventory.GetByID(ctx, "f2")
	require.NoError(t, err)
	assert.Nil(t, item.SupplierID)

	_, err = uc.GetByID(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserUseCase(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Email: "a@b.co", PasswordHash: "x",
		Role: entity.RoleViewer, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}))

	uc := NewUserUseCase(store.Users())
	u, err := uc.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, u.Role)

	_, err = uc.GetByID(ctx, "u2")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

package service

import (
	"context"
	"olukosi-storefront/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)

	updated, err := env.inventoryService.AdjustStock(ctx, product.ID, 3, model.ChangeSale)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.StockQuantity)

	entries, err := env.inventoryLogRepo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ChangeSale, entries[0].Type)
	assert.Equal(t, -3, entries[0].QuantityChange)
	assert.Equal(t, 10, entries[0].PreviousQuantity)
	assert.Equal(t, 7, entries[0].NewQuantity)
}

func TestAdjustStockRestock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 2)

	updated, err := env.inventoryService.AdjustStock(ctx, product.ID, 5, model.ChangeRestock)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.StockQuantity)

	entries, err := env.inventoryLogRepo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].QuantityChange)
	assert.Equal(t, 2, entries[0].PreviousQuantity)
	assert.Equal(t, 7, entries[0].NewQuantity)
}

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 3)

	_, err := env.inventoryService.AdjustStock(ctx, product.ID, 2, model.ChangeSale)
	require.NoError(t, err)

	_, err = env.inventoryService.AdjustStock(ctx, product.ID, 2, model.ChangeSale)
	require.ErrorIs(t, err, model.ErrInsufficientStock)

	// the rejected sale left stock and the log untouched
	reloaded, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.StockQuantity)

	entries, err := env.inventoryLogRepo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventoryService.AdjustStock(context.Background(), "no-such-id", 1, model.ChangeSale)
	require.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestAdjustStockRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 3)

	_, err := env.inventoryService.AdjustStock(ctx, product.ID, 0, model.ChangeSale)
	require.ErrorIs(t, err, model.ErrInvalidQuantity)

	_, err = env.inventoryService.AdjustStock(ctx, product.ID, 1, model.InventoryChangeType("typo"))
	require.Error(t, err)
}

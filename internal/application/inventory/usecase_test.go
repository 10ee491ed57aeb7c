package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store     *memory.Store
	items     *ItemUseCase
	movements *RegisterMovementUseCase
	orders    *PurchaseOrderUseCase
	supplier  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	now := time.Now()
	require.NoError(t, repos.Suppliers.Create(context.Background(), &entity.Supplier{
		ID: "sup-1", Name: "Veterinaria El Campo", CreatedAt: now, UpdatedAt: now,
	}))
	return fixture{
		store:     store,
		items:     NewItemUseCase(repos.InventoryItems, repos.Suppliers),
		movements: NewRegisterMovementUseCase(store, repos.StockMovements, nil, zerolog.Nop()),
		orders:    NewPurchaseOrderUseCase(store, repos.PurchaseOrders, nil, zerolog.Nop()),
		supplier:  "sup-1",
	}
}

func (fx fixture) newItem(t *testing.T, name, stock, reorder string) string {
	t.Helper()
	it, err := fx.items.Create(context.Background(), dto.CreateInventoryItemRequest{
		Name: name, Category: entity.ItemCategoryMedicine, Unit: "frasco",
		CurrentStock: d(stock), ReorderLevel: d(reorder), UnitCost: d("12000"),
	})
	require.NoError(t, err)
	return it.ID
}

func (fx fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := fx.items.GetByID(context.Background(), id)
	require.NoError(t, err)
	return it.CurrentStock
}

func (fx fixture) move(id, typ, qty string) (*entity.StockMovement, error) {
	return fx.movements.RegisterMovement(context.Background(), MovementInput{
		UserID: "u", ItemID: id, Type: typ, Quantity: d(qty), Date: time.Now(),
	})
}

func TestRegisterMovement_SignosYSaldo(t *testing.T) {
	fx := newFixture(t)
	id := fx.newItem(t, "Enrofloxacina", "10", "0")

	m, err := fx.move(id, entity.MovementConsumption, "3")
	require.NoError(t, err)
	assert.True(t, d("-3").Equal(m.Quantity))
	assert.True(t, d("7").Equal(m.BalanceAfter))

	m, err = fx.move(id, entity.MovementAdjustment, "-2")
	require.NoError(t, err)
	assert.True(t, d("5").Equal(m.BalanceAfter))

	_, err = fx.move(id, entity.MovementDamage, "6")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("5").Equal(fx.stock(t, id)))

	_, err = fx.move(id, "transfer", "1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.move("nope", entity.MovementPurchase, "1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegisterMovement_CompraActualizaCosto(t *testing.T) {
	fx := newFixture(t)
	id := fx.newItem(t, "Vacuna Newcastle", "0", "0")
	cost := d("15000")
	m, err := fx.movements.RegisterMovement(context.Background(), MovementInput{
		ItemID: id, Type: entity.MovementPurchase, Quantity: d("4"), UnitCost: &cost,
		Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, cost.Equal(m.UnitCost))

	it, err := fx.items.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, cost.Equal(it.UnitCost))
	require.NotNil(t, it.LastRestockDate)
	assert.Equal(t, "2024-05-02", *it.LastRestockDate)
}

func TestDeleteMovement(t *testing.T) {
	fx := newFixture(t)
	id := fx.newItem(t, "Jeringas", "0", "0")
	in, err := fx.move(id, entity.MovementPurchase, "10")
	require.NoError(t, err)
	_, err = fx.move(id, entity.MovementConsumption, "8")
	require.NoError(t, err)

	err = fx.movements.DeleteMovement(context.Background(), in.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "borrar la entrada dejaría -8")
	assert.True(t, d("2").Equal(fx.stock(t, id)))

	rows, err := fx.movements.ListMovements(context.Background(), repository.Filter{ItemID: id})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NoError(t, fx.movements.DeleteMovement(context.Background(), rows[1].ID))
	assert.True(t, d("10").Equal(fx.stock(t, id)))
	assert.True(t, errors.Is(fx.movements.DeleteMovement(context.Background(), rows[1].ID), domain.ErrNotFound))
}

func TestProperty_LibroConsistente(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)
	types := []string{entity.MovementPurchase, entity.MovementConsumption, entity.MovementAdjustment,
		entity.MovementReturn, entity.MovementDamage}

	properties.Property("cada saldo es el anterior más la cantidad firmada y el último es el stock", prop.ForAll(
		func(kinds []int, qtys []int) bool {
			fx := newFixture(t)
			id := fx.newItem(t, "Desinfectante", "0", "0")
			for i := range kinds {
				_, err := fx.move(id, types[kinds[i]], decimal.NewFromInt(int64(qtys[i])).String())
				if err != nil && !errors.Is(err, domain.ErrInsufficientStock) {
					return false
				}
			}
			rows, err := fx.movements.ListMovements(context.Background(), repository.Filter{ItemID: id})
			if err != nil {
				return false
			}
			balance := decimal.Zero
			for _, m := range rows {
				balance = balance.Add(m.Quantity)
				if !balance.Equal(m.BalanceAfter) || balance.IsNegative() {
					return false
				}
			}
			return balance.Equal(fx.stock(t, id))
		},
		gen.SliceOfN(10, gen.IntRange(0, len(types)-1)),
		gen.SliceOfN(10, gen.IntRange(1, 20)),
	))
	properties.TestingRun(t)
}

func TestPurchaseOrder_CrearYRecibir(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.newItem(t, "Vitaminas", "2", "5")
	b := fx.newItem(t, "Antibiótico", "0", "0")

	o, err := fx.orders.Create(ctx, "u", dto.CreatePurchaseOrderRequest{
		SupplierID: fx.supplier, OrderDate: "2024-06-01",
		Items: []dto.PurchaseOrderItemRequest{
			{ItemID: a, Quantity: d("10"), UnitPrice: d("3000")},
			{ItemID: b, Quantity: d("4"), UnitPrice: d("25000")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusDraft, o.Status)
	assert.True(t, d("130000").Equal(o.TotalAmount))
	assert.Regexp(t, `^PO-20240601-[0-9A-F]{6}$`, o.OrderNumber)

	got, err := fx.orders.UpdateStatus(ctx, "u", dto.UpdatePurchaseOrderStatusRequest{ID: o.ID, Status: entity.POStatusReceived})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
	require.NotNil(t, got.ReceivedDate)

	assert.True(t, d("12").Equal(fx.stock(t, a)))
	assert.True(t, d("4").Equal(fx.stock(t, b)))
	it, err := fx.items.GetByID(ctx, a)
	require.NoError(t, err)
	assert.True(t, d("3000").Equal(it.UnitCost))

	rows, err := fx.movements.ListMovements(ctx, repository.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, m := range rows {
		assert.Equal(t, entity.MovementPurchase, m.Type)
		assert.Equal(t, o.OrderNumber, m.Reference)
	}

	_, err = fx.orders.UpdateStatus(ctx, "u", dto.UpdatePurchaseOrderStatusRequest{ID: o.ID, Status: entity.POStatusReceived})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.True(t, d("12").Equal(fx.stock(t, a)), "recibir dos veces no suma de nuevo")

	assert.True(t, errors.Is(fx.orders.Delete(ctx, o.ID), domain.ErrConflict))
}

func TestPurchaseOrder_RecepcionAtomica(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.newItem(t, "Vitaminas", "2", "0")
	now := time.Now()

	// Línea huérfana insertada directo en el repositorio para forzar la falla a mitad de la recepción.
	require.NoError(t, fx.store.Repos().PurchaseOrders.Create(ctx, &entity.PurchaseOrder{
		ID: "po-1", OrderNumber: "PO-TEST", SupplierID: fx.supplier, OrderDate: now, Status: entity.POStatusOrdered,
		Items: []entity.PurchaseOrderItem{
			{ID: "l1", OrderID: "po-1", ItemID: a, Quantity: d("10"), UnitPrice: d("1"), TotalPrice: d("10")},
			{ID: "l2", OrderID: "po-1", ItemID: "ghost", Quantity: d("1"), UnitPrice: d("1"), TotalPrice: d("1")},
		},
		CreatedAt: now, UpdatedAt: now,
	}))

	_, err := fx.orders.UpdateStatus(ctx, "u", dto.UpdatePurchaseOrderStatusRequest{ID: "po-1", Status: entity.POStatusReceived})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.True(t, d("2").Equal(fx.stock(t, a)), "la primera línea se revierte")
	rows, err := fx.movements.ListMovements(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	o, err := fx.orders.GetByID(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusOrdered, o.Status)
	assert.Nil(t, o.ReceivedDate)
}

func TestPurchaseOrder_Validaciones(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.newItem(t, "Vitaminas", "2", "0")
	line := []dto.PurchaseOrderItemRequest{{ItemID: a, Quantity: d("1"), UnitPrice: d("1")}}

	cases := []struct {
		name   string
		req    dto.CreatePurchaseOrderRequest
		target error
	}{
		{"sin proveedor", dto.CreatePurchaseOrderRequest{Items: line}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreatePurchaseOrderRequest{SupplierID: fx.supplier}, domain.ErrInvalidInput},
		{"nace recibida", dto.CreatePurchaseOrderRequest{SupplierID: fx.supplier, Status: entity.POStatusReceived, Items: line}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreatePurchaseOrderRequest{SupplierID: fx.supplier, Items: []dto.PurchaseOrderItemRequest{{ItemID: a, Quantity: d("0")}}}, domain.ErrInvalidInput},
		{"proveedor inexistente", dto.CreatePurchaseOrderRequest{SupplierID: "nope", Items: line}, domain.ErrNotFound},
		{"ítem inexistente", dto.CreatePurchaseOrderRequest{SupplierID: fx.supplier, Items: []dto.PurchaseOrderItemRequest{{ItemID: "nope", Quantity: d("1")}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.orders.Create(ctx, "u", tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "err = %v", err)
		})
	}

	o, err := fx.orders.Create(ctx, "u", dto.CreatePurchaseOrderRequest{OrderNumber: "OC-77", SupplierID: fx.supplier, Items: line})
	require.NoError(t, err)
	_, err = fx.orders.Create(ctx, "u", dto.CreatePurchaseOrderRequest{OrderNumber: "OC-77", SupplierID: fx.supplier, Items: line})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = fx.orders.UpdateStatus(ctx, "u", dto.UpdatePurchaseOrderStatusRequest{ID: o.ID, Status: "shipped"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.orders.UpdateStatus(ctx, "u", dto.UpdatePurchaseOrderStatusRequest{ID: o.ID, Status: entity.POStatusCancelled})
	require.NoError(t, err)
	_, err = fx.orders.UpdateStatus(ctx, "u", dto.UpdatePurchaseOrderStatusRequest{ID: o.ID, Status: entity.POStatusReceived})
	assert.True(t, errors.Is(err, domain.ErrConflict), "cancelada es terminal")
	assert.True(t, d("2").Equal(fx.stock(t, a)))

	require.NoError(t, fx.orders.Delete(ctx, o.ID))
}

func TestGenerateLowStockList(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.newItem(t, "Vitaminas", "2", "10")
	fx.newItem(t, "Guantes", "50", "10")
	fx.newItem(t, "Sin alerta", "0", "0")
	now := time.Now()
	require.NoError(t, fx.store.Repos().FeedInventory.Create(ctx, &entity.FeedInventoryItem{
		ID: "feed-1", FeedType: "Iniciación", Brand: "Italcol", CurrentStock: d("5"), ReorderLevel: d("40"),
		UnitCost: d("100"), CreatedAt: now, UpdatedAt: now,
	}))

	uc := NewReplenishmentUseCase(fx.store.Repos().FeedInventory, fx.store.Repos().InventoryItems)
	list, err := uc.GenerateLowStockList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, SourceFeed, list[0].Source)
	assert.Equal(t, "Iniciación (Italcol)", list[0].Name)
	assert.True(t, d("35").Equal(list[0].Deficit))
	assert.True(t, d("55").Equal(list[0].SuggestedOrderQty))
	assert.True(t, d("5500").Equal(list[0].EstimatedOrderCost))

	assert.Equal(t, SourceInventory, list[1].Source)
	assert.True(t, d("13").Equal(list[1].SuggestedOrderQty))
}

func TestItemUseCase(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.items.Create(ctx, dto.CreateInventoryItemRequest{Name: "X", Category: "toys"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	id := fx.newItem(t, "Vitaminas", "2", "10")
	_, err = fx.items.Create(ctx, dto.CreateInventoryItemRequest{Name: "Vitaminas"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	name := "Vitaminas AD3E"
	up, err := fx.items.Update(ctx, id, dto.UpdateInventoryItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, up.Name)
	assert.True(t, up.LowStock)
	assert.True(t, d("24000").Equal(up.StockValue))

	_, err = fx.move(id, entity.MovementConsumption, "1")
	require.NoError(t, err)
	assert.True(t, errors.Is(fx.items.Delete(ctx, id), domain.ErrConflict), "tiene movimientos")

	list, err := fx.items.List(ctx, repository.Filter{Category: entity.ItemCategoryMedicine})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

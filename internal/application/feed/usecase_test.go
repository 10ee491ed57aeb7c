package feed

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
	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}
func sp(s string) *string { return &s }

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	supplier string
	flock    string
	item     string
}

func newFixture(t *testing.T, stock string) fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()

	s := &entity.Supplier{ID: "sup-1", Name: "Concentrados del Valle", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Suppliers.Create(ctx, s))
	f := &entity.Flock{ID: "flock-1", Name: "Galpón 1", Type: entity.BirdTypeLayer, InitialCount: 500,
		CurrentStock: 500, StartDate: now, Status: entity.GroupStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Flocks.Create(ctx, f))

	uc := NewUseCase(store, repos, nil, zerolog.Nop())
	item, err := uc.CreateItem(ctx, dto.CreateFeedInventoryRequest{
		FeedType: "Postura fase 1", SupplierID: sp("sup-1"),
		CurrentStock: d(stock), ReorderLevel: d("20"), UnitCost: d("900"),
	})
	require.NoError(t, err)
	return fixture{uc: uc, store: store, supplier: s.ID, flock: f.ID, item: item.ID}
}

func (fx fixture) stock(t *testing.T) decimal.Decimal {
	t.Helper()
	it, err := fx.uc.GetItem(context.Background(), fx.item)
	require.NoError(t, err)
	return it.CurrentStock
}

func (fx fixture) purchase(t *testing.T, qty, price string) *dto.FeedPurchaseResponse {
	t.Helper()
	p, err := fx.uc.RecordPurchase(context.Background(), "user-1", dto.CreateFeedPurchaseRequest{
		InventoryID: fx.item, SupplierID: fx.supplier, PurchaseDate: "2024-03-01",
		Quantity: d(qty), PricePerBag: dp(price),
	})
	require.NoError(t, err)
	return p
}

func (fx fixture) consume(qty string) (*dto.FeedConsumptionResponse, error) {
	return fx.uc.RecordConsumption(context.Background(), "user-1", dto.CreateFeedConsumptionRequest{
		InventoryID: fx.item, FlockID: sp(fx.flock), Date: "2024-03-02", QuantityBags: d(qty),
	})
}

func TestCompraYConsumo_Secuencia(t *testing.T) {
	fx := newFixture(t, "100")

	p := fx.purchase(t, "50", "950")
	assert.True(t, d("47500").Equal(p.TotalCost))
	assert.Equal(t, entity.PaymentPending, p.PaymentStatus)

	it, err := fx.uc.GetItem(context.Background(), fx.item)
	require.NoError(t, err)
	assert.True(t, d("150").Equal(it.CurrentStock))
	assert.True(t, d("950").Equal(it.UnitCost))
	require.NotNil(t, it.LastRestockDate)
	assert.Equal(t, "2024-03-01", *it.LastRestockDate)

	_, err = fx.consume("180")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "150", ise.Available)
	assert.True(t, d("150").Equal(fx.stock(t)), "el rechazo no escribe")

	rows, err := fx.uc.ListConsumption(context.Background(), repository.Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	c, err := fx.consume("150")
	require.NoError(t, err)
	assert.True(t, fx.stock(t).IsZero())
	assert.True(t, d("950").Equal(c.UnitCost), "el consumo guarda el costo vigente")
	assert.True(t, d("3750").Equal(c.QuantityKg))
}

func TestRecordPurchase_Validaciones(t *testing.T) {
	fx := newFixture(t, "10")
	ctx := context.Background()
	base := dto.CreateFeedPurchaseRequest{InventoryID: fx.item, SupplierID: fx.supplier, Quantity: d("5"), PricePerBag: dp("10")}

	cases := []struct {
		name   string
		mutate func(r *dto.CreateFeedPurchaseRequest)
		target error
	}{
		{"cantidad cero", func(r *dto.CreateFeedPurchaseRequest) { r.Quantity = d("0") }, domain.ErrInvalidInput},
		{"sin precio", func(r *dto.CreateFeedPurchaseRequest) { r.PricePerBag = nil }, domain.ErrInvalidInput},
		{"precio negativo", func(r *dto.CreateFeedPurchaseRequest) { r.PricePerBag = dp("-1") }, domain.ErrInvalidInput},
		{"cantidad con más de 3 decimales", func(r *dto.CreateFeedPurchaseRequest) { r.Quantity = d("0.0004") }, domain.ErrInvalidInput},
		{"precio con más de 2 decimales", func(r *dto.CreateFeedPurchaseRequest) { r.PricePerBag = dp("10.005") }, domain.ErrInvalidInput},
		{"estado de pago inválido", func(r *dto.CreateFeedPurchaseRequest) { r.PaymentStatus = "credit" }, domain.ErrInvalidInput},
		{"fecha inválida", func(r *dto.CreateFeedPurchaseRequest) { r.PurchaseDate = "01/03/2024" }, domain.ErrInvalidInput},
		{"ítem inexistente", func(r *dto.CreateFeedPurchaseRequest) { r.InventoryID = "nope" }, domain.ErrNotFound},
		{"proveedor inexistente", func(r *dto.CreateFeedPurchaseRequest) { r.SupplierID = "nope" }, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := fx.uc.RecordPurchase(ctx, "user-1", req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "err = %v", err)
			assert.True(t, d("10").Equal(fx.stock(t)))
		})
	}
}

func TestRecordPurchase_PrecioCeroPermitido(t *testing.T) {
	fx := newFixture(t, "0")
	p := fx.purchase(t, "3", "0")
	assert.True(t, p.TotalCost.IsZero())
	assert.True(t, d("3").Equal(fx.stock(t)))
}

func TestRecordPurchase_FacturaDuplicada(t *testing.T) {
	fx := newFixture(t, "0")
	ctx := context.Background()
	req := dto.CreateFeedPurchaseRequest{InventoryID: fx.item, SupplierID: fx.supplier,
		Quantity: d("5"), PricePerBag: dp("10"), InvoiceNumber: sp("FV-001")}
	_, err := fx.uc.RecordPurchase(ctx, "user-1", req)
	require.NoError(t, err)

	_, err = fx.uc.RecordPurchase(ctx, "user-1", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.True(t, d("5").Equal(fx.stock(t)), "la segunda compra no suma stock")
}

func TestUpdatePurchase_AplicaDiferencia(t *testing.T) {
	fx := newFixture(t, "100")
	ctx := context.Background()
	p := fx.purchase(t, "50", "950")

	up, err := fx.uc.UpdatePurchase(ctx, dto.UpdateFeedPurchaseRequest{ID: p.ID, Quantity: dp("30")})
	require.NoError(t, err)
	assert.True(t, d("130").Equal(fx.stock(t)))
	assert.True(t, d("28500").Equal(up.TotalCost))

	_, err = fx.uc.UpdatePurchase(ctx, dto.UpdateFeedPurchaseRequest{ID: p.ID, Quantity: dp("80")})
	require.NoError(t, err)
	assert.True(t, d("180").Equal(fx.stock(t)))
}

func TestUpdatePurchase_MismaCantidadNoCambiaStock(t *testing.T) {
	fx := newFixture(t, "100")
	p := fx.purchase(t, "50", "950")

	up, err := fx.uc.UpdatePurchase(context.Background(), dto.UpdateFeedPurchaseRequest{
		ID: p.ID, Quantity: dp("50"), PaymentStatus: sp(entity.PaymentPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, up.PaymentStatus)
	assert.True(t, d("150").Equal(fx.stock(t)))
}

func TestUpdatePurchase_RechazaStockNegativo(t *testing.T) {
	fx := newFixture(t, "0")
	p := fx.purchase(t, "50", "950")
	_, err := fx.consume("40")
	require.NoError(t, err)

	_, err = fx.uc.UpdatePurchase(context.Background(), dto.UpdateFeedPurchaseRequest{ID: p.ID, Quantity: dp("5")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("10").Equal(fx.stock(t)))

	rows, err := fx.uc.ListPurchases(context.Background(), repository.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, d("50").Equal(rows[0].Quantity), "la compra queda intacta")
}

func TestUpdatePurchase_CambioDeItem(t *testing.T) {
	fx := newFixture(t, "0")
	ctx := context.Background()
	other, err := fx.uc.CreateItem(ctx, dto.CreateFeedInventoryRequest{FeedType: "Engorde", CurrentStock: d("5")})
	require.NoError(t, err)
	p := fx.purchase(t, "20", "800")

	_, err = fx.uc.UpdatePurchase(ctx, dto.UpdateFeedPurchaseRequest{ID: p.ID, InventoryID: sp(other.ID), Quantity: dp("12")})
	require.NoError(t, err)

	assert.True(t, fx.stock(t).IsZero())
	moved, err := fx.uc.GetItem(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, d("17").Equal(moved.CurrentStock))
}

func TestUpdatePurchase_NoExiste(t *testing.T) {
	fx := newFixture(t, "0")
	_, err := fx.uc.UpdatePurchase(context.Background(), dto.UpdateFeedPurchaseRequest{ID: "nope", Quantity: dp("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = fx.uc.UpdatePurchase(context.Background(), dto.UpdateFeedPurchaseRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDeletePurchase(t *testing.T) {
	fx := newFixture(t, "10")
	ctx := context.Background()
	p := fx.purchase(t, "50", "950")

	_, err := fx.consume("55")
	require.NoError(t, err)
	err = fx.uc.DeletePurchase(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("5").Equal(fx.stock(t)))

	fx2 := newFixture(t, "10")
	p2 := fx2.purchase(t, "50", "950")
	require.NoError(t, fx2.uc.DeletePurchase(ctx, p2.ID))
	assert.True(t, d("10").Equal(fx2.stock(t)))
	assert.True(t, errors.Is(fx2.uc.DeletePurchase(ctx, p2.ID), domain.ErrNotFound))
}

func TestRecordConsumption_Validaciones(t *testing.T) {
	fx := newFixture(t, "10")
	ctx := context.Background()

	_, err := fx.uc.RecordConsumption(ctx, "u", dto.CreateFeedConsumptionRequest{InventoryID: fx.item, QuantityBags: d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin parvada ni lote")

	_, err = fx.uc.RecordConsumption(ctx, "u", dto.CreateFeedConsumptionRequest{InventoryID: fx.item, FlockID: sp(fx.flock), QuantityBags: d("0")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = fx.uc.RecordConsumption(ctx, "u", dto.CreateFeedConsumptionRequest{InventoryID: fx.item, BatchID: sp("nope"), QuantityBags: d("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = fx.uc.RecordConsumption(ctx, "u", dto.CreateFeedConsumptionRequest{InventoryID: fx.item, FlockID: sp(fx.flock), QuantityBags: d("1.0005")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "más de 3 decimales")
	assert.True(t, d("10").Equal(fx.stock(t)))
}

func TestDeleteConsumption_DevuelveStock(t *testing.T) {
	fx := newFixture(t, "10")
	c, err := fx.consume("4")
	require.NoError(t, err)
	assert.True(t, d("6").Equal(fx.stock(t)))

	require.NoError(t, fx.uc.DeleteConsumption(context.Background(), c.ID))
	assert.True(t, d("10").Equal(fx.stock(t)))
}

func TestListItems_SoloBajoStock(t *testing.T) {
	fx := newFixture(t, "15")
	ctx := context.Background()
	_, err := fx.uc.CreateItem(ctx, dto.CreateFeedInventoryRequest{FeedType: "Engorde", CurrentStock: d("500"), ReorderLevel: d("20")})
	require.NoError(t, err)

	all, err := fx.uc.ListItems(ctx, false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	low, err := fx.uc.ListItems(ctx, true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, fx.item, low[0].ID)
	assert.True(t, low[0].LowStock)
}

func TestUpdateItem_NoTocaStock(t *testing.T) {
	fx := newFixture(t, "15")
	ctx := context.Background()
	up, err := fx.uc.UpdateItem(ctx, fx.item, dto.UpdateFeedInventoryRequest{Brand: sp("Solla"), ReorderLevel: dp("5")})
	require.NoError(t, err)
	assert.Equal(t, "Solla", up.Brand)
	assert.True(t, d("15").Equal(up.CurrentStock))
	assert.False(t, up.LowStock)

	_, err = fx.uc.UpdateItem(ctx, fx.item, dto.UpdateFeedInventoryRequest{UnitCost: dp("-1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDeleteItem_ConCompras(t *testing.T) {
	fx := newFixture(t, "0")
	fx.purchase(t, "1", "1")
	err := fx.uc.DeleteItem(context.Background(), fx.item)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// El stock final es siempre inicial + compras − consumos aceptados, y nunca negativo.
func TestProperty_StockConsistente(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)

	properties.Property("stock = inicial + compras − consumos", prop.ForAll(
		func(initial int, ops []int) bool {
			fx := newFixture(t, decimal.NewFromInt(int64(initial)).String())
			expected := decimal.NewFromInt(int64(initial))
			for _, op := range ops {
				q := decimal.NewFromInt(int64(op))
				if op > 0 {
					if _, err := fx.uc.RecordPurchase(context.Background(), "u", dto.CreateFeedPurchaseRequest{
						InventoryID: fx.item, SupplierID: fx.supplier, Quantity: q, PricePerBag: dp("10"),
					}); err != nil {
						return false
					}
					expected = expected.Add(q)
					continue
				}
				_, err := fx.consume(q.Neg().String())
				if expected.Add(q).IsNegative() {
					if !errors.Is(err, domain.ErrInsufficientStock) {
						return false
					}
					continue
				}
				if err != nil {
					return false
				}
				expected = expected.Add(q)
			}
			got := fx.stock(t)
			return got.Equal(expected) && !got.IsNegative()
		},
		gen.IntRange(0, 100),
		gen.SliceOfN(8, gen.IntRange(-60, 59).Map(func(v int) int {
			if v >= 0 {
				return v + 1
			}
			return v
		})),
	))

	properties.Property("registrar y eliminar una compra deja el stock igual", prop.ForAll(
		func(initial, qty int) bool {
			fx := newFixture(t, decimal.NewFromInt(int64(initial)).String())
			p, err := fx.uc.RecordPurchase(context.Background(), "u", dto.CreateFeedPurchaseRequest{
				InventoryID: fx.item, SupplierID: fx.supplier, Quantity: decimal.NewFromInt(int64(qty)), PricePerBag: dp("1"),
			})
			if err != nil {
				return false
			}
			if err := fx.uc.DeletePurchase(context.Background(), p.ID); err != nil {
				return false
			}
			return fx.stock(t).Equal(decimal.NewFromInt(int64(initial)))
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t)
}

var _ ports.TxRunner = (*memory.Store)(nil)

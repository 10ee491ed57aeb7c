package inventory

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSignedQuantity(t *testing.T) {
	cases := []struct {
		name    string
		typ     string
		qty     string
		want    string
		wantErr bool
	}{
		{"compra suma", entity.MovementPurchase, "10", "10", false},
		{"consumo resta", entity.MovementConsumption, "4", "-4", false},
		{"daño resta", entity.MovementDamage, "1.5", "-1.5", false},
		{"devolución resta", entity.MovementReturn, "2", "-2", false},
		{"ajuste positivo", entity.MovementAdjustment, "3", "3", false},
		{"ajuste negativo", entity.MovementAdjustment, "-3", "-3", false},
		{"cero rechazado", entity.MovementAdjustment, "0", "", true},
		{"consumo negativo rechazado", entity.MovementConsumption, "-1", "", true},
		{"tipo desconocido", "transfer", "1", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SignedQuantity(tc.typ, d(tc.qty))
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tc.want).Equal(got), "got %s", got)
		})
	}
}

func TestApplyDelta_RechazaNegativo(t *testing.T) {
	got, err := ApplyDelta("it-1", d("150"), d("-180"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("150").Equal(got), "el stock no cambia al rechazar")

	got, err = ApplyDelta("it-1", d("150"), d("-150"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLowStockYSugerido(t *testing.T) {
	assert.True(t, IsLowStock(d("50"), d("50")))
	assert.False(t, IsLowStock(d("51"), d("50")))
	assert.False(t, IsLowStock(d("0"), d("0")), "sin punto de reorden no hay alerta")

	assert.True(t, d("55").Equal(SuggestedOrderQuantity(d("20"), d("50"))))
	assert.True(t, d("1").Equal(SuggestedOrderQuantity(d("74.5"), d("50"))))
	assert.True(t, SuggestedOrderQuantity(d("100"), d("50")).IsZero())
}

func TestCheckPOTransition(t *testing.T) {
	assert.NoError(t, CheckPOTransition(entity.POStatusDraft, entity.POStatusApproved))
	assert.NoError(t, CheckPOTransition(entity.POStatusOrdered, entity.POStatusReceived))
	assert.ErrorIs(t, CheckPOTransition(entity.POStatusReceived, entity.POStatusReceived), domain.ErrConflict)
	assert.ErrorIs(t, CheckPOTransition(entity.POStatusCancelled, entity.POStatusOrdered), domain.ErrConflict)
	assert.ErrorIs(t, CheckPOTransition(entity.POStatusDraft, "shipped"), domain.ErrInvalidInput)
}

// Cualquier secuencia de deltas aplicada con ApplyDelta deja el stock >= 0, y los
// deltas rechazados no alteran el saldo.
func TestApplyDelta_StockNuncaNegativo(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("stock >= 0 tras cualquier secuencia", prop.ForAll(
		func(initial int64, deltas []int64) bool {
			stock := decimal.NewFromInt(initial)
			for _, raw := range deltas {
				next, err := ApplyDelta("it", stock, decimal.NewFromInt(raw))
				if err != nil {
					if !next.Equal(stock) {
						return false
					}
					continue
				}
				stock = next
				if stock.IsNegative() {
					return false
				}
			}
			return true
		},
		gen.Int64Range(0, 500),
		gen.SliceOf(gen.Int64Range(-200, 200)),
	))

	properties.TestingRun(t)
}

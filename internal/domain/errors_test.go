package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear compra: %w", Invalid("quantity", "debe ser mayor que 0"))

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "quantity: debe ser mayor que 0")

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "quantity", ve.Field)
}

func TestStoreError_ConservaCodigo(t *testing.T) {
	err := fmt.Errorf("insert supplier: %w", &StoreError{Code: "23505", Err: ErrDuplicate})

	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, "23505", StoreCode(err))
	assert.Equal(t, "", StoreCode(errors.New("otro")))
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{ItemID: "it-1", Available: "150", Requested: "180"}
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Contains(t, err.Error(), "disponible 150")
}

func TestCheckScale(t *testing.T) {
	assert.NoError(t, CheckQuantity("quantity", decimal.RequireFromString("12.345")))
	assert.NoError(t, CheckQuantity("quantity", decimal.RequireFromString("12.3400")))
	assert.NoError(t, CheckMoney("amount", decimal.RequireFromString("95000.50")))

	err := CheckQuantity("quantity", decimal.RequireFromString("0.0004"))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "quantity", ve.Field)

	assert.True(t, errors.Is(CheckMoney("amount", decimal.RequireFromString("10.005")), ErrInvalidInput))
	assert.True(t, errors.Is(CheckMoney("amount", decimal.RequireFromString("-0.001")), ErrInvalidInput))
}

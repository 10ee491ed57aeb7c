package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimales que guardan las columnas NUMERIC: cantidades (bultos, kg, unidades) y dinero.
const (
	QuantityPlaces int32 = 3
	MoneyPlaces    int32 = 2
)

// CheckQuantity rechaza cantidades con más de QuantityPlaces decimales.
func CheckQuantity(field string, v decimal.Decimal) error {
	return checkScale(field, v, QuantityPlaces)
}

// CheckMoney rechaza montos con más de MoneyPlaces decimales.
func CheckMoney(field string, v decimal.Decimal) error {
	return checkScale(field, v, MoneyPlaces)
}

func checkScale(field string, v decimal.Decimal, places int32) error {
	if !v.Equal(v.Truncate(places)) {
		return Invalid(field, fmt.Sprintf("admite como máximo %d decimales", places))
	}
	return nil
}

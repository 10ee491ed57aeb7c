package repository

import "time"

// Filter criterios comunes de listado. Los campos vacíos no filtran.
// From y To son fechas inclusivas.
type Filter struct {
	FlockID       string
	BatchID       string
	InventoryID   string
	ItemID        string
	SupplierID    string
	Category      string
	Status        string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
	Limit         int // 0 = sin límite
	Offset        int
}

// InRange indica si t cae dentro de [From, To] comparando solo la fecha.
func (f Filter) InRange(t time.Time) bool {
	day := truncateDay(t)
	if f.From != nil && day.Before(truncateDay(*f.From)) {
		return false
	}
	if f.To != nil && day.After(truncateDay(*f.To)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

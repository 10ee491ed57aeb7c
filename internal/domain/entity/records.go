package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MortalityRecord registro de bajas; descuenta aves de la parvada o lote.
type MortalityRecord struct {
	ID        string
	FlockID   *string
	BatchID   *string
	Date      time.Time
	Count     int
	Cause     string
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// EggCollection recolección diaria de huevos.
type EggCollection struct {
	ID          string
	FlockID     *string
	BatchID     *string
	Date        time.Time
	TotalEggs   int
	DamagedEggs int
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

// WeightRecord pesaje de muestra de un lote. AverageWeight en kg.
type WeightRecord struct {
	ID            string
	BatchID       string
	Date          time.Time
	SampleSize    int
	AverageWeight decimal.Decimal
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// Tipos de registro sanitario.
const (
	HealthVaccination = "vaccination"
	HealthTreatment   = "treatment"
	HealthCheckup     = "checkup"
	HealthOther       = "other"
)

// HealthRecord vacunación, tratamiento o revisión veterinaria.
type HealthRecord struct {
	ID           string
	FlockID      *string
	BatchID      *string
	Date         time.Time
	Type         string
	Description  string
	Medication   string
	Dosage       string
	Cost         decimal.Decimal
	Veterinarian string
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFlockRequest body para POST /api/flocks.
type CreateFlockRequest struct {
	Name         string `json:"name"`
	Breed        string `json:"breed"`
	Type         string `json:"type"`
	HouseNumber  string `json:"house_number"`
	InitialCount int    `json:"initial_count"`
	StartDate    string `json:"start_date"`
	Notes        string `json:"notes"`
}

// UpdateFlockRequest body para PUT /api/flocks/:id.
type UpdateFlockRequest struct {
	Name        *string `json:"name,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Type        *string `json:"type,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// FlockResponse salida de una parvada.
type FlockResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Breed         string          `json:"breed"`
	Type          string          `json:"type"`
	HouseNumber   string          `json:"house_number"`
	InitialCount  int             `json:"initial_count"`
	CurrentStock  int             `json:"current_stock"`
	MortalityRate decimal.Decimal `json:"mortality_rate"`
	StartDate     string          `json:"start_date"`
	AgeDays       int             `json:"age_days"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	BatchNumber  string  `json:"batch_number"`
	FlockID      *string `json:"flock_id,omitempty"`
	Breed        string  `json:"breed"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	InitialCount int     `json:"initial_count"`
	Notes        string  `json:"notes"`
}

// UpdateBatchRequest body para PUT /api/batches/:id.
type UpdateBatchRequest struct {
	BatchNumber *string `json:"batch_number,omitempty"`
	FlockID     *string `json:"flock_id,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID            string          `json:"id"`
	BatchNumber   string          `json:"batch_number"`
	FlockID       *string         `json:"flock_id"`
	Breed         string          `json:"breed"`
	Type          string          `json:"type"`
	StartDate     string          `json:"start_date"`
	AgeDays       int             `json:"age_days"`
	InitialCount  int             `json:"initial_count"`
	CurrentStock  int             `json:"current_stock"`
	MortalityRate decimal.Decimal `json:"mortality_rate"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateMortalityRequest body para POST /api/mortality.
type CreateMortalityRequest struct {
	FlockID *string `json:"flock_id,omitempty"`
	BatchID *string `json:"batch_id,omitempty"`
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Cause   string  `json:"cause"`
	Notes   string  `json:"notes"`
}

// MortalityResponse salida de un registro de mortalidad.
type MortalityResponse struct {
	ID        string    `json:"id"`
	FlockID   *string   `json:"flock_id"`
	BatchID   *string   `json:"batch_id"`
	Date      string    `json:"date"`
	Count     int       `json:"count"`
	Cause     string    `json:"cause"`
	Notes     string    `json:"notes"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEggCollectionRequest body para POST /api/egg-collection.
type CreateEggCollectionRequest struct {
	FlockID     *string `json:"flock_id,omitempty"`
	BatchID     *string `json:"batch_id,omitempty"`
	Date        string  `json:"date"`
	TotalEggs   int     `json:"total_eggs"`
	DamagedEggs int     `json:"damaged_eggs"`
	Notes       string  `json:"notes"`
}

// EggCollectionResponse salida de una recolección.
type EggCollectionResponse struct {
	ID          string    `json:"id"`
	FlockID     *string   `json:"flock_id"`
	BatchID     *string   `json:"batch_id"`
	Date        string    `json:"date"`
	TotalEggs   int       `json:"total_eggs"`
	DamagedEggs int       `json:"damaged_eggs"`
	GoodEggs    int       `json:"good_eggs"`
	Notes       string    `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateWeightRecordRequest body para POST /api/weight-tracking. average_weight en kg.
type CreateWeightRecordRequest struct {
	BatchID       string          `json:"batch_id"`
	Date          string          `json:"date"`
	SampleSize    int             `json:"sample_size"`
	AverageWeight decimal.Decimal `json:"average_weight"`
	Notes         string          `json:"notes"`
}

// WeightRecordResponse salida de un pesaje.
type WeightRecordResponse struct {
	ID            string          `json:"id"`
	BatchID       string          `json:"batch_id"`
	Date          string          `json:"date"`
	SampleSize    int             `json:"sample_size"`
	AverageWeight decimal.Decimal `json:"average_weight"`
	Notes         string          `json:"notes"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateHealthRecordRequest body para POST /api/health/records.
type CreateHealthRecordRequest struct {
	FlockID      *string         `json:"flock_id,omitempty"`
	BatchID      *string         `json:"batch_id,omitempty"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Medication   string          `json:"medication"`
	Dosage       string          `json:"dosage"`
	Cost         decimal.Decimal `json:"cost"`
	Veterinarian string          `json:"veterinarian"`
	Notes        string          `json:"notes"`
}

// HealthRecordResponse salida de un registro sanitario.
type HealthRecordResponse struct {
	ID           string          `json:"id"`
	FlockID      *string         `json:"flock_id"`
	BatchID      *string         `json:"batch_id"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Medication   string          `json:"medication"`
	Dosage       string          `json:"dosage"`
	Cost         decimal.Decimal `json:"cost"`
	Veterinarian string          `json:"veterinarian"`
	Notes        string          `json:"notes"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FCRTrendPointDTO punto de la serie de FCR acumulado.
type FCRTrendPointDTO struct {
	Date             string          `json:"date"`
	AverageWeight    decimal.Decimal `json:"average_weight"`
	Population       int             `json:"population"`
	CumulativeFeedKg decimal.Decimal `json:"cumulative_feed_kg"`
	FCR              decimal.Decimal `json:"fcr"`
}

// FCRResponse salida de GET /api/fcr.
type FCRResponse struct {
	BatchID         string             `json:"batch_id"`
	BatchNumber     string             `json:"batch_number"`
	PopulationMode  string             `json:"population_mode"` // current | historical
	CurrentStock    int                `json:"current_stock"`
	Population      int                `json:"population"`
	TotalFeedKg     decimal.Decimal    `json:"total_feed_kg"`
	TotalFeedCost   decimal.Decimal    `json:"total_feed_cost"`
	CurrentWeight   decimal.Decimal    `json:"current_weight"`
	WeightGain      decimal.Decimal    `json:"weight_gain"`
	TotalWeightGain decimal.Decimal    `json:"total_weight_gain"`
	FCR             decimal.Decimal    `json:"fcr"`
	CostPerKg       decimal.Decimal    `json:"cost_per_kg"`
	FeedPerBird     decimal.Decimal    `json:"feed_per_bird"`
	DaysOnFeed      int                `json:"days_on_feed"`
	Performance     string             `json:"performance"`
	Trend           []FCRTrendPointDTO `json:"trend"`
}

package entity

import "time"

// Tipos de ave.
const (
	BirdTypeLayer   = "layer"
	BirdTypeBroiler = "broiler"
	BirdTypeBreeder = "breeder"
)

// Estados de parvada/lote.
const (
	GroupStatusActive    = "active"
	GroupStatusSold      = "sold"
	GroupStatusCulled    = "culled"
	GroupStatusCompleted = "completed"
)

// Flock parvada alojada en un galpón.
type Flock struct {
	ID           string
	Name         string
	Breed        string
	Type         string
	HouseNumber  string
	InitialCount int
	CurrentStock int
	StartDate    time.Time
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Batch lote de aves, opcionalmente asociado a una parvada.
type Batch struct {
	ID           string
	BatchNumber  string
	FlockID      *string
	Breed        string
	Type         string
	StartDate    time.Time
	InitialCount int
	CurrentStock int
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidBirdType indica si el tipo de ave existe.
func IsValidBirdType(t string) bool {
	return t == BirdTypeLayer || t == BirdTypeBroiler || t == BirdTypeBreeder
}

// IsValidGroupStatus indica si el estado existe.
func IsValidGroupStatus(s string) bool {
	switch s {
	case GroupStatusActive, GroupStatusSold, GroupStatusCulled, GroupStatusCompleted:
		return true
	}
	return false
}

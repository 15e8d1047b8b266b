package model

// AvailableService is a catalog entry for a pluggable board service.
// The catalog is seeded by migration; board creation and service enablement
// validate service keys against it.
type AvailableService struct {
	ID          string `gorm:"primaryKey"`
	DisplayName string `gorm:"not null"`
	Description string
	HasQuestion bool
	Singleton   bool
}

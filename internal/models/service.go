package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `json:"professional_id"`
	Professional   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// fixed | hourly | budget
	PriceType string  `gorm:"size:10;not null" json:"price_type"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `gorm:"size:3;default:'EUR'" json:"currency"`

	// Posição sugerida do seletor de duração (ver internal/duration).
	DurationDial int  `json:"duration_dial"`
	Active       bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

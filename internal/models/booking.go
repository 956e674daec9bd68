package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientID uint `json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ProfessionalID uint `json:"professional_id"`
	Professional   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	Status string `gorm:"size:20;default:'requested'" json:"status"`

	// Data-hora ingênua "YYYY-MM-DD HH:mm"; ambos nulos = horário indefinido.
	StartAt     *string `gorm:"size:19" json:"start_at"`
	EndAt       *string `gorm:"size:19" json:"end_at"`
	DurationMin *int    `json:"duration_min"`

	// Copiados do serviço na criação, imutáveis depois.
	PriceType string  `gorm:"size:10" json:"price_type"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `gorm:"size:3" json:"currency"`

	BasePrice  *float64 `json:"base_price"`
	Commission *float64 `json:"commission"`
	FinalPrice *float64 `json:"final_price"`

	// Liquidação por fase: o depósito nunca é cobrado duas vezes.
	DepositPaid     bool     `gorm:"default:false" json:"deposit_paid"`
	DepositAmount   *float64 `json:"deposit_amount"`
	DepositChargeID string   `gorm:"size:64" json:"deposit_charge_id"`
	DepositRefunded bool     `gorm:"default:false" json:"deposit_refunded"`
	IsPaidFinal     bool     `gorm:"default:false" json:"is_paid_final"`
	FinalAmount     *float64 `json:"final_amount"`
	FinalChargeID   string   `gorm:"size:64" json:"final_charge_id"`

	PaymentMethodRef string `gorm:"size:64" json:"-"`

	Address string `gorm:"size:255" json:"address"`

	AcceptedAt  *time.Time `json:"accepted_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

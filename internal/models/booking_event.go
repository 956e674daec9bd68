package models

import "time"

// Registro de transição de status emitido para a camada de notificação.
type BookingEvent struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	BookingID string `gorm:"size:36;index" json:"booking_id"`

	Kind           string `gorm:"size:30;not null" json:"kind"`
	PreviousStatus string `gorm:"size:20" json:"previous_status"`
	NewStatus      string `gorm:"size:20" json:"new_status"`

	// Carimbo ingênuo "YYYY-MM-DD HH:mm:ss" da transição.
	At string `gorm:"size:19" json:"at"`

	CreatedAt time.Time `json:"created_at"`
}

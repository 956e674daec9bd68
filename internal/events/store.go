package events

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ev booking.Event) error {
	rec := models.BookingEvent{
		ID:             uuid.NewString(),
		BookingID:      ev.BookingID,
		Kind:           ev.Kind,
		PreviousStatus: string(ev.Previous),
		NewStatus:      string(ev.New),
		At:             ev.At.Format(),
	}

	return s.db.Create(&rec).Error
}

package dto

import (
	"time"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
)

type BookingDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	StartAt     *string `json:"start_at"`
	EndAt       *string `json:"end_at"`
	DurationMin *int    `json:"duration_min"`

	PriceType  string   `json:"price_type"`
	UnitPrice  float64  `json:"unit_price"`
	Currency   string   `json:"currency"`
	BasePrice  *float64 `json:"base_price"`
	Commission *float64 `json:"commission"`
	FinalPrice *float64 `json:"final_price"`

	FinalPricePending bool `json:"final_price_pending"`
	DepositPaid       bool `json:"deposit_paid"`
	DepositRefunded   bool `json:"deposit_refunded"`
	IsPaidFinal       bool `json:"is_paid_final"`

	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromBooking monta o DTO com o status efetivo ("in_progress" derivado,
// nunca persistido) e o flag derivado de preço pendente.
func FromBooking(bk *models.Booking, now naivetime.DateTime) BookingDTO {
	return BookingDTO{
		ID:     bk.ID,
		Status: string(domain.EffectiveStatus(bk, now)),

		StartAt:     bk.StartAt,
		EndAt:       bk.EndAt,
		DurationMin: bk.DurationMin,

		PriceType:  bk.PriceType,
		UnitPrice:  bk.UnitPrice,
		Currency:   bk.Currency,
		BasePrice:  bk.BasePrice,
		Commission: bk.Commission,
		FinalPrice: bk.FinalPrice,

		FinalPricePending: domain.FinalPricePending(bk),
		DepositPaid:       bk.DepositPaid,
		DepositRefunded:   bk.DepositRefunded,
		IsPaidFinal:       bk.IsPaidFinal,

		Address:   bk.Address,
		CreatedAt: bk.CreatedAt,
	}
}

type ServiceDTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PriceType    string  `json:"price_type"`
	UnitPrice    float64 `json:"unit_price"`
	Currency     string  `json:"currency"`
	DurationDial int     `json:"duration_dial"`
	DurationMin  int     `json:"duration_min"`
}

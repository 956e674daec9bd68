package booking

import (
	"context"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
)

// Dispatcher é a fronteira com a camada de eventos: cada transição emite
// um evento que o chamador despacha.
type Dispatcher interface {
	Dispatch(ev domain.Event)
	DispatchAll(evs []domain.Event)
}

// Locker serializa transição + liquidação por booking id.
type Locker interface {
	Acquire(ctx context.Context, bookingID string) (func(), error)
}

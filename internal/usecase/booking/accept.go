package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
)

type AcceptBooking struct {
	repo   domain.Repository
	events Dispatcher
	locks  Locker
	log    *zap.Logger
}

func NewAcceptBooking(
	repo domain.Repository,
	events Dispatcher,
	locks Locker,
	log *zap.Logger,
) *AcceptBooking {
	return &AcceptBooking{
		repo:   repo,
		events: events,
		locks:  locks,
		log:    log,
	}
}

func (uc *AcceptBooking) Execute(
	ctx context.Context,
	bookingID string,
	professionalID uint,
	now naivetime.DateTime,
) (*models.Booking, error) {

	release, err := uc.locks.Acquire(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	bk, err := uc.repo.GetBookingForParty(ctx, bookingID, professionalID, domain.RoleProfessional)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	ev, err := domain.Accept(bk, domain.RoleProfessional, now)
	if err != nil {
		return nil, err
	}

	wall := time.Now()
	bk.AcceptedAt = &wall

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.events.Dispatch(ev)
	return bk, nil
}

package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
)

type RejectBooking struct {
	repo   domain.Repository
	events Dispatcher
	settle *Settlement
	locks  Locker
	log    *zap.Logger
}

func NewRejectBooking(
	repo domain.Repository,
	events Dispatcher,
	settle *Settlement,
	locks Locker,
	log *zap.Logger,
) *RejectBooking {
	return &RejectBooking{
		repo:   repo,
		events: events,
		settle: settle,
		locks:  locks,
		log:    log,
	}
}

// Execute rejeita a reserva ainda não confirmada e devolve o depósito
// inteiro. Se a devolução falhar no gateway, nada é persistido.
func (uc *RejectBooking) Execute(
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

	ev, refund, err := domain.Reject(bk, domain.RoleProfessional, now)
	if err != nil {
		return nil, err
	}

	if refund == domain.RefundDeposit {
		if err := uc.settle.RefundDeposit(ctx, bk); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.events.Dispatch(ev)
	return bk, nil
}

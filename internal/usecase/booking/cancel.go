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

type CancelBooking struct {
	repo   domain.Repository
	events Dispatcher
	settle *Settlement
	locks  Locker
	log    *zap.Logger
}

func NewCancelBooking(
	repo domain.Repository,
	events Dispatcher,
	settle *Settlement,
	locks Locker,
	log *zap.Logger,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		events: events,
		settle: settle,
		locks:  locks,
		log:    log,
	}
}

// Execute cancela a reserva. A política de devolução sai do domínio:
// cliente em "requested" recupera tudo; cliente em "accepted" perde o
// depósito; profissional devolve tudo e recebe o sinal de penalidade.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID string,
	userID uint,
	actor domain.Role,
	now naivetime.DateTime,
) (*models.Booking, error) {

	release, err := uc.locks.Acquire(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	bk, err := uc.repo.GetBookingForParty(ctx, bookingID, userID, actor)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	evs, refund, err := domain.Cancel(bk, actor, now)
	if err != nil {
		return nil, err
	}

	if refund == domain.RefundDeposit {
		if err := uc.settle.RefundDeposit(ctx, bk); err != nil {
			return nil, err
		}
	}

	wall := time.Now()
	bk.CancelledAt = &wall

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.events.DispatchAll(evs)
	uc.log.Info("booking canceled",
		zap.String("booking_id", bk.ID),
		zap.String("actor", string(actor)),
		zap.Bool("refunded", refund == domain.RefundDeposit),
	)
	return bk, nil
}

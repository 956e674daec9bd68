package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
)

type SetActualDuration struct {
	repo   domain.Repository
	settle *Settlement
	locks  Locker
	log    *zap.Logger
}

func NewSetActualDuration(
	repo domain.Repository,
	settle *Settlement,
	locks Locker,
	log *zap.Logger,
) *SetActualDuration {
	return &SetActualDuration{
		repo:   repo,
		settle: settle,
		locks:  locks,
		log:    log,
	}
}

// Execute registra a duração real de uma reserva "hourly" e recomputa
// base, comissão e final a partir dela. Se a fase final já estava
// liquidada com a estimativa, só o delta é cobrado ou devolvido.
func (uc *SetActualDuration) Execute(
	ctx context.Context,
	bookingID string,
	professionalID uint,
	minutes int,
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

	if bk.PriceType != domain.PriceTypeHourly {
		return nil, httperr.ErrBusiness("not_hourly_pricing")
	}
	status := domain.Status(bk.Status)
	if status != domain.StatusAccepted && status != domain.StatusCompleted {
		return nil, httperr.ErrBusiness("booking_not_confirmed")
	}

	quote, err := domain.QuotePrice(domain.PriceTypeHourly, bk.UnitPrice, &minutes)
	if err != nil {
		return nil, err
	}

	bk.DurationMin = &minutes
	if start, ok := domain.StartOf(bk); ok {
		e := start.AddMinutes(minutes).Format()
		bk.EndAt = &e
	}
	domain.ApplyQuote(bk, quote)

	// A duração real e o preço recomputado persistem mesmo com a cobrança
	// pendente de autenticação: a retomada só liquida o valor já gravado.
	var pending error
	if status == domain.StatusCompleted {
		if err := uc.settle.AdjustFinal(ctx, bk); err != nil {
			var pe *payments.PaymentError
			if errors.As(err, &pe) && pe.RequiresAction() {
				pending = err
			} else {
				return nil, err
			}
		}
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.log.Info("actual duration set",
		zap.String("booking_id", bk.ID),
		zap.Int("minutes", minutes),
	)
	return bk, pending
}

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

type SetFinalPrice struct {
	repo   domain.Repository
	settle *Settlement
	locks  Locker
	log    *zap.Logger
}

func NewSetFinalPrice(
	repo domain.Repository,
	settle *Settlement,
	locks Locker,
	log *zap.Logger,
) *SetFinalPrice {
	return &SetFinalPrice{
		repo:   repo,
		settle: settle,
		locks:  locks,
		log:    log,
	}
}

// Execute declara o preço de uma reserva "budget". Só o profissional, e só
// depois de a reserva estar confirmada ou concluída. Se já concluída, a
// fase final liquida na hora (o depósito simbólico é abatido).
func (uc *SetFinalPrice) Execute(
	ctx context.Context,
	bookingID string,
	professionalID uint,
	declared float64,
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

	if bk.PriceType != domain.PriceTypeBudget {
		return nil, httperr.ErrBusiness("not_budget_pricing")
	}
	status := domain.Status(bk.Status)
	if status != domain.StatusAccepted && status != domain.StatusCompleted {
		return nil, httperr.ErrBusiness("booking_not_confirmed")
	}

	quote, err := domain.DeclaredQuote(declared)
	if err != nil {
		return nil, err
	}
	domain.ApplyQuote(bk, quote)

	// O preço declarado é persistido mesmo quando a cobrança fica pendente
	// de autenticação: a retomada encontra o preço gravado e só liquida.
	var pending error
	if status == domain.StatusCompleted {
		if err := uc.settle.SettleFinal(ctx, bk); err != nil {
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

	uc.log.Info("final price declared",
		zap.String("booking_id", bk.ID),
		zap.Float64("declared", declared),
	)
	return bk, pending
}

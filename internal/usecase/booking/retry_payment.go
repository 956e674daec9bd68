package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

type RetryPayment struct {
	repo   domain.Repository
	settle *Settlement
	locks  Locker
	log    *zap.Logger
}

func NewRetryPayment(
	repo domain.Repository,
	settle *Settlement,
	locks Locker,
	log *zap.Logger,
) *RetryPayment {
	return &RetryPayment{
		repo:   repo,
		settle: settle,
		locks:  locks,
		log:    log,
	}
}

// Execute retoma a fase de pagamento pendente depois de o cliente concluir
// a autenticação fora de banda. Os flags de liquidação tornam a repetição
// de fases já resolvidas um no-op.
func (uc *RetryPayment) Execute(
	ctx context.Context,
	bookingID string,
	clientID uint,
) (*models.Booking, error) {

	release, err := uc.locks.Acquire(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	bk, err := uc.repo.GetBookingForParty(ctx, bookingID, clientID, domain.RoleClient)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	switch {
	case !bk.DepositPaid && !domain.IsTerminal(domain.Status(bk.Status)):
		if err := uc.settle.ChargeDeposit(ctx, bk); err != nil {
			uc.persistPending(ctx, bk)
			return nil, err
		}

	case domain.Status(bk.Status) == domain.StatusCompleted && !bk.IsPaidFinal:
		if err := uc.settle.SettleFinal(ctx, bk); err != nil {
			uc.persistPending(ctx, bk)
			return nil, err
		}

	default:
		return nil, httperr.ErrBusiness("no_pending_payment")
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.log.Info("pending payment resolved", zap.String("booking_id", bk.ID))
	return bk, nil
}

// persistPending grava a referência da cobrança que continua pendente, para
// a próxima retomada reconciliar no gateway em vez de cobrar de novo.
func (uc *RetryPayment) persistPending(ctx context.Context, bk *models.Booking) {
	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		uc.log.Error("pending charge state not persisted",
			zap.String("booking_id", bk.ID),
			zap.Error(err),
		)
	}
}

package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
)

type CompleteBooking struct {
	repo   domain.Repository
	events Dispatcher
	settle *Settlement
	locks  Locker
	log    *zap.Logger
}

func NewCompleteBooking(
	repo domain.Repository,
	events Dispatcher,
	settle *Settlement,
	locks Locker,
	log *zap.Logger,
) *CompleteBooking {
	return &CompleteBooking{
		repo:   repo,
		events: events,
		settle: settle,
		locks:  locks,
		log:    log,
	}
}

func (uc *CompleteBooking) Execute(
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

	return uc.finish(ctx, bk, actor, now)
}

// ExecuteAuto conclui a reserva cuja janela já encerrou. Chamado pelo
// sweep periódico e pela reconciliação na leitura; nunca bloqueia à
// espera do relógio.
func (uc *CompleteBooking) ExecuteAuto(
	ctx context.Context,
	bookingID string,
	now naivetime.DateTime,
) (*models.Booking, error) {

	release, err := uc.locks.Acquire(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	bk, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.DueForAutoComplete(bk, now) {
		return bk, nil
	}

	return uc.finish(ctx, bk, domain.RoleProfessional, now)
}

func (uc *CompleteBooking) finish(
	ctx context.Context,
	bk *models.Booking,
	actor domain.Role,
	now naivetime.DateTime,
) (*models.Booking, error) {

	ev, err := domain.Complete(bk, actor, now)
	if err != nil {
		return nil, err
	}

	wall := time.Now()
	bk.CompletedAt = &wall

	// Se o preço final já é conhecido, liquida o restante. Preço pendente
	// (hourly sem duração, budget sem valor) conclui na mesma: a cobrança
	// vem depois de o profissional informar o valor.
	var pending error
	if err := uc.settle.SettleFinal(ctx, bk); err != nil {
		var pe *payments.PaymentError
		if errors.As(err, &pe) && pe.RequiresAction() {
			// concluída, pagamento retomável com o token
			pending = err
		} else {
			return nil, err
		}
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.events.Dispatch(ev)
	uc.log.Info("booking completed",
		zap.String("booking_id", bk.ID),
		zap.Bool("final_price_pending", domain.FinalPricePending(bk)),
	)
	return bk, pending
}

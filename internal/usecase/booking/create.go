package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/duration"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientID  uint
	ServiceID uint

	// Data e hora ingênuas; as duas vazias = horário indefinido.
	StartDate string
	StartTime string

	// Duração: posição do seletor ou minutos diretos (o seletor ganha).
	DurationDial *int
	DurationMin  *int

	Address string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	events Dispatcher
	settle *Settlement
	log    *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	events Dispatcher,
	settle *Settlement,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		events: events,
		settle: settle,
		log:    log,
	}
}

// Execute cria a reserva em "requested", calcula os campos monetários e
// cobra o depósito. Falha do gateway não desfaz a reserva: ela fica
// "requested" com pagamento por resolver, e o erro sobe para o chamador.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
	now naivetime.DateTime,
) (*models.Booking, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	client, err := uc.repo.GetUser(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// --------------------------------------------------
	// Duração
	// --------------------------------------------------
	durMin := in.DurationMin
	if in.DurationDial != nil {
		m := duration.PositionToMinutes(duration.Clamp(*in.DurationDial))
		durMin = &m
	}

	// --------------------------------------------------
	// Janela de tempo (ingênua)
	// --------------------------------------------------
	var startAt, endAt *string
	if in.StartDate != "" || in.StartTime != "" {
		start, err := naivetime.At(in.StartDate, in.StartTime)
		if err != nil {
			return nil, err
		}
		if start.Before(now) {
			return nil, httperr.ErrBusiness("start_in_the_past")
		}
		s := start.Format()
		startAt = &s
		if durMin != nil {
			e := start.AddMinutes(*durMin).Format()
			endAt = &e
		}
	}

	// --------------------------------------------------
	// Preço inicial
	// --------------------------------------------------
	quote, err := domain.QuotePrice(svc.PriceType, svc.UnitPrice, durMin)
	if err != nil {
		return nil, err
	}

	bk := &models.Booking{
		ID:             uuid.NewString(),
		ServiceID:      svc.ID,
		ClientID:       client.ID,
		ProfessionalID: svc.ProfessionalID,
		Status:         string(domain.InitialStatus()),

		StartAt:     startAt,
		EndAt:       endAt,
		DurationMin: durMin,

		PriceType: svc.PriceType,
		UnitPrice: svc.UnitPrice,
		Currency:  svc.Currency,

		PaymentMethodRef: client.PaymentMethodRef,
		Address:          in.Address,
	}
	domain.ApplyQuote(bk, quote)

	if err := uc.repo.CreateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.events.Dispatch(domain.Event{
		BookingID: bk.ID,
		Kind:      domain.EventStatusChange,
		New:       domain.StatusRequested,
		At:        now,
	})

	// --------------------------------------------------
	// Depósito
	// --------------------------------------------------
	if err := uc.settle.ChargeDeposit(ctx, bk); err != nil {
		// grava a referência da cobrança pendente (se houver) para a
		// retomada reconciliar em vez de cobrar de novo
		if uerr := uc.repo.UpdateBooking(ctx, bk); uerr != nil {
			uc.log.Error("pending deposit state not persisted",
				zap.String("booking_id", bk.ID),
				zap.Error(uerr),
			)
		}
		uc.log.Warn("deposit charge unresolved",
			zap.String("booking_id", bk.ID),
			zap.Error(err),
		)
		return bk, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	return bk, nil
}

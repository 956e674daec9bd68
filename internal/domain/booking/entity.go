package booking

import (
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
)

// ===============================
// Outbound events
// ===============================

const (
	EventStatusChange        = "status_change"
	EventProfessionalPenalty = "professional_penalty"
)

// Event é o efeito colateral externo de uma transição: o chamador é quem
// despacha, nunca a entidade.
type Event struct {
	BookingID string
	Kind      string
	Previous  Status
	New       Status
	At        naivetime.DateTime
}

func statusEvent(bk *models.Booking, prev Status, now naivetime.DateTime) Event {
	return Event{
		BookingID: bk.ID,
		Kind:      EventStatusChange,
		Previous:  prev,
		New:       Status(bk.Status),
		At:        now,
	}
}

// ===============================
// Refund policy
// ===============================

type RefundPolicy int

const (
	RefundNone RefundPolicy = iota
	RefundDeposit
)

// ===============================
// Time helpers (naive)
// ===============================

func StartOf(bk *models.Booking) (naivetime.DateTime, bool) {
	if bk.StartAt == nil {
		return naivetime.DateTime{}, false
	}
	dt, err := naivetime.Parse(*bk.StartAt)
	if err != nil {
		return naivetime.DateTime{}, false
	}
	return dt, true
}

func EndOf(bk *models.Booking) (naivetime.DateTime, bool) {
	if bk.EndAt == nil {
		return naivetime.DateTime{}, false
	}
	dt, err := naivetime.Parse(*bk.EndAt)
	if err != nil {
		return naivetime.DateTime{}, false
	}
	return dt, true
}

func setWindow(bk *models.Booking, start naivetime.DateTime) {
	s := start.Format()
	bk.StartAt = &s
	if bk.DurationMin != nil {
		e := start.AddMinutes(*bk.DurationMin).Format()
		bk.EndAt = &e
	}
}

// ===============================
// Domain Actions
// ===============================

// Accept confirma a reserva. Se o horário era indefinido, o início passa a
// ser o agora ingênuo injetado.
func Accept(bk *models.Booking, actor Role, now naivetime.DateTime) (Event, error) {
	if err := CanAccept(Status(bk.Status), actor); err != nil {
		return Event{}, err
	}

	prev := Status(bk.Status)
	if bk.StartAt == nil {
		setWindow(bk, now)
	}
	bk.Status = string(StatusAccepted)

	return statusEvent(bk, prev, now), nil
}

// Reject recusa a reserva ainda não confirmada. Devolve o depósito inteiro.
func Reject(bk *models.Booking, actor Role, now naivetime.DateTime) (Event, RefundPolicy, error) {
	if err := CanReject(Status(bk.Status), actor); err != nil {
		return Event{}, RefundNone, err
	}

	prev := Status(bk.Status)
	bk.Status = string(StatusRejected)

	return statusEvent(bk, prev, now), RefundDeposit, nil
}

// Cancel encerra a reserva ativa. A consequência depende de quem cancela:
//   - cliente a partir de "requested": devolução integral (nunca confirmada)
//   - cliente a partir de "accepted": depósito retido como compensação
//   - profissional: devolução integral sempre, com sinal de penalidade
func Cancel(bk *models.Booking, actor Role, now naivetime.DateTime) ([]Event, RefundPolicy, error) {
	if err := CanCancel(Status(bk.Status), actor); err != nil {
		return nil, RefundNone, err
	}

	prev := Status(bk.Status)
	bk.Status = string(StatusCanceled)

	events := []Event{statusEvent(bk, prev, now)}
	refund := RefundNone

	switch actor {
	case RoleProfessional:
		refund = RefundDeposit
		events = append(events, Event{
			BookingID: bk.ID,
			Kind:      EventProfessionalPenalty,
			Previous:  prev,
			New:       StatusCanceled,
			At:        now,
		})
	case RoleClient:
		if prev == StatusRequested {
			refund = RefundDeposit
		}
	}

	return events, refund, nil
}

// Complete conclui a reserva aceita. O preço final pode continuar pendente
// (hourly sem duração, budget sem valor declarado): é um estado derivado,
// não um status próprio.
func Complete(bk *models.Booking, actor Role, now naivetime.DateTime) (Event, error) {
	if err := CanComplete(Status(bk.Status), actor); err != nil {
		return Event{}, err
	}

	prev := Status(bk.Status)
	bk.Status = string(StatusCompleted)

	return statusEvent(bk, prev, now), nil
}

// ===============================
// Derived state (never stored)
// ===============================

func InProgress(bk *models.Booking, now naivetime.DateTime) bool {
	if Status(bk.Status) != StatusAccepted {
		return false
	}
	start, ok := StartOf(bk)
	if !ok || now.Before(start) {
		return false
	}
	if end, ok := EndOf(bk); ok {
		return now.Before(end)
	}
	return true
}

func FinalPricePending(bk *models.Booking) bool {
	return Status(bk.Status) == StatusCompleted && bk.FinalPrice == nil
}

// DueForAutoComplete: aceita, com janela conhecida e já encerrada.
func DueForAutoComplete(bk *models.Booking, now naivetime.DateTime) bool {
	if Status(bk.Status) != StatusAccepted {
		return false
	}
	if _, ok := StartOf(bk); !ok {
		return false
	}
	end, ok := EndOf(bk)
	if !ok {
		return false
	}
	return !now.Before(end)
}

// EffectiveStatus devolve o status para leitura, com "in_progress"
// calculado na hora.
func EffectiveStatus(bk *models.Booking, now naivetime.DateTime) Status {
	if InProgress(bk, now) {
		return StatusInProgress
	}
	return Status(bk.Status)
}

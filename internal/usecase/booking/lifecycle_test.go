package booking

import (
	"context"
	"errors"
	"testing"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/lock"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

// reserva fixa 100/10/110 com depósito liquidado.
func requestedBooking() models.Booking {
	return models.Booking{
		ID:               "bk-1",
		ServiceID:        10,
		ClientID:         1,
		ProfessionalID:   2,
		Status:           string(domain.StatusRequested),
		PriceType:        domain.PriceTypeFixed,
		UnitPrice:        100,
		Currency:         "EUR",
		BasePrice:        f64Ptr(100),
		Commission:       f64Ptr(10),
		FinalPrice:       f64Ptr(110),
		DepositPaid:      true,
		DepositAmount:    f64Ptr(10),
		DepositChargeID:  "ch_dep",
		PaymentMethodRef: "pm_1",
	}
}

func TestAcceptBooking(t *testing.T) {
	f := newFixture()
	bk := requestedBooking()
	bk.StartAt = strPtr("2025-03-02 09:00")
	f.addBooking(bk)
	now := testNow(t, "2025-03-01 10:00")

	uc := NewAcceptBooking(f.repo, f.events, f.locks, f.log)
	out, err := uc.Execute(context.Background(), "bk-1", 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != string(domain.StatusAccepted) || out.AcceptedAt == nil {
		t.Fatalf("estado inesperado: %s %v", out.Status, out.AcceptedAt)
	}
	if f.repo.mustGet(t, "bk-1").Status != string(domain.StatusAccepted) {
		t.Fatal("transição não persistida")
	}
	if len(f.locks.acquired) != 1 || f.locks.acquired[0] != "bk-1" {
		t.Fatal("transição sem a trava da reserva")
	}
	if len(f.events.events) != 1 || f.events.events[0].New != domain.StatusAccepted {
		t.Fatalf("evento errado: %+v", f.events.events)
	}
}

func TestAcceptBooking_WrongParty(t *testing.T) {
	f := newFixture()
	f.addBooking(requestedBooking())
	now := testNow(t, "2025-03-01 10:00")

	uc := NewAcceptBooking(f.repo, f.events, f.locks, f.log)
	// Usuário 7 não é o profissional da reserva.
	if _, err := uc.Execute(context.Background(), "bk-1", 7, now); !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("want booking_not_found, got %v", err)
	}
}

func TestAcceptBooking_Locked(t *testing.T) {
	f := newFixture()
	f.addBooking(requestedBooking())
	f.locks.err = lock.ErrLocked
	now := testNow(t, "2025-03-01 10:00")

	uc := NewAcceptBooking(f.repo, f.events, f.locks, f.log)
	if _, err := uc.Execute(context.Background(), "bk-1", 2, now); !errors.Is(err, lock.ErrLocked) {
		t.Fatalf("want ErrLocked, got %v", err)
	}
}

func TestRejectBooking_RefundsDeposit(t *testing.T) {
	f := newFixture()
	f.addBooking(requestedBooking())
	now := testNow(t, "2025-03-01 10:00")

	uc := NewRejectBooking(f.repo, f.events, f.settle, f.locks, f.log)
	out, err := uc.Execute(context.Background(), "bk-1", 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != string(domain.StatusRejected) || !out.DepositRefunded {
		t.Fatalf("estado inesperado: %s refunded=%v", out.Status, out.DepositRefunded)
	}
	if len(f.gateway.refunds) != 1 || f.gateway.refunds[0].amount != nil {
		t.Fatalf("devolução integral esperada: %+v", f.gateway.refunds)
	}
}

func TestRejectBooking_RefundFailureAborts(t *testing.T) {
	f := newFixture()
	f.addBooking(requestedBooking())
	f.gateway.refundErr = errors.New("gateway fora do ar")
	now := testNow(t, "2025-03-01 10:00")

	uc := NewRejectBooking(f.repo, f.events, f.settle, f.locks, f.log)
	if _, err := uc.Execute(context.Background(), "bk-1", 2, now); err == nil {
		t.Fatal("falha do gateway deveria subir")
	}
	// Atômico: nada persistido, nenhum evento.
	if f.repo.mustGet(t, "bk-1").Status != string(domain.StatusRequested) {
		t.Fatal("transição persistida apesar da falha")
	}
	if len(f.events.events) != 0 {
		t.Fatal("evento despachado apesar da falha")
	}
}

func TestCancelBooking_ClientBeforeConfirmation(t *testing.T) {
	f := newFixture()
	f.addBooking(requestedBooking())
	now := testNow(t, "2025-03-01 10:00")

	uc := NewCancelBooking(f.repo, f.events, f.settle, f.locks, f.log)
	out, err := uc.Execute(context.Background(), "bk-1", 1, domain.RoleClient, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != string(domain.StatusCanceled) || !out.DepositRefunded {
		t.Fatalf("cancelamento antes da confirmação devolve tudo: %+v", out)
	}
	if out.CancelledAt == nil {
		t.Fatal("cancelled_at não gravado")
	}
}

func TestCancelBooking_ClientAfterConfirmation(t *testing.T) {
	f := newFixture()
	bk := requestedBooking()
	bk.Status = string(domain.StatusAccepted)
	f.addBooking(bk)
	now := testNow(t, "2025-03-01 10:00")

	uc := NewCancelBooking(f.repo, f.events, f.settle, f.locks, f.log)
	out, err := uc.Execute(context.Background(), "bk-1", 1, domain.RoleClient, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Depósito retido como compensação.
	if out.DepositRefunded || len(f.gateway.refunds) != 0 {
		t.Fatal("depósito não deveria ser devolvido")
	}
	if out.Status != string(domain.StatusCanceled) {
		t.Fatalf("status = %s", out.Status)
	}
}

func TestCancelBooking_Professional(t *testing.T) {
	f := newFixture()
	bk := requestedBooking()
	bk.Status = string(domain.StatusAccepted)
	f.addBooking(bk)
	now := testNow(t, "2025-03-01 10:00")

	uc := NewCancelBooking(f.repo, f.events, f.settle, f.locks, f.log)
	out, err := uc.Execute(context.Background(), "bk-1", 2, domain.RoleProfessional, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.DepositRefunded {
		t.Fatal("profissional que cancela devolve o depósito")
	}
	// status_change + penalidade.
	if len(f.events.events) != 2 || f.events.events[1].Kind != domain.EventProfessionalPenalty {
		t.Fatalf("faltou a penalidade: %+v", f.events.events)
	}
}

func TestCancelBooking_Terminal(t *testing.T) {
	f := newFixture()
	bk := requestedBooking()
	bk.Status = string(domain.StatusCompleted)
	f.addBooking(bk)
	now := testNow(t, "2025-03-01 10:00")

	uc := NewCancelBooking(f.repo, f.events, f.settle, f.locks, f.log)
	_, err := uc.Execute(context.Background(), "bk-1", 1, domain.RoleClient, now)
	var terr domain.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("want InvalidTransitionError, got %v", err)
	}
}

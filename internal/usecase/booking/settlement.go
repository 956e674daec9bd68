package booking

import (
	"context"
	"math"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
)

// Settlement orquestra depósito, pagamento final e devoluções contra o
// gateway. Só altera os flags de liquidação da reserva em memória: quem
// persiste é o caso de uso chamador, depois de a fase inteira dar certo.
type Settlement struct {
	gateway payments.Gateway
	log     *zap.Logger
}

func NewSettlement(gateway payments.Gateway, log *zap.Logger) *Settlement {
	return &Settlement{gateway: gateway, log: log}
}

// ChargeDeposit cobra o depósito na criação da reserva. Idempotente:
// repetir uma fase já liquidada com o mesmo valor é no-op; com valor
// diferente é conflito.
func (s *Settlement) ChargeDeposit(ctx context.Context, bk *models.Booking) error {
	amount := domain.DepositDue(bk)

	if bk.DepositPaid {
		if bk.DepositAmount != nil && *bk.DepositAmount != amount {
			return domain.SettlementConflictError{
				Phase:     "deposit",
				Settled:   *bk.DepositAmount,
				Attempted: amount,
			}
		}
		return nil
	}

	// Cobrança pendente de autenticação: reconcilia o desfecho no gateway
	// antes de cobrar de novo. O pagamento pode ter capturado fora de
	// banda, e uma nova cobrança duplicaria o depósito.
	if bk.DepositChargeID != "" {
		res, err := s.gateway.Status(ctx, bk.DepositChargeID)
		if err != nil {
			return err
		}
		switch res.Status {
		case payments.StatusSucceeded:
			bk.DepositPaid = true
			bk.DepositAmount = &amount
			return nil
		case payments.StatusRequiresAction:
			return &payments.PaymentError{
				Code:        "requires_action",
				ActionToken: res.ActionToken,
			}
		}
		// recusada: a referência pendente morre e a fase recomeça
		bk.DepositChargeID = ""
	}

	res, err := s.gateway.Charge(
		ctx,
		bk.PaymentMethodRef,
		amount,
		bk.Currency,
		"Wisdom booking deposit "+bk.ID,
	)
	if err != nil {
		return err
	}

	switch res.Status {
	case payments.StatusSucceeded:
		bk.DepositPaid = true
		bk.DepositAmount = &amount
		bk.DepositChargeID = res.ChargeID
		return nil

	case payments.StatusRequiresAction:
		bk.DepositChargeID = res.ChargeID
		return &payments.PaymentError{
			Code:        "requires_action",
			ActionToken: res.ActionToken,
		}

	default:
		return &payments.PaymentError{Code: "deposit_charge_failed"}
	}
}

// SettleFinal cobra o restante (final menos depósito) quando a reserva
// está concluída e o preço final é conhecido. Repetir com valor diferente
// devolve SettlementConflictError; o ajuste legítimo passa por AdjustFinal.
func (s *Settlement) SettleFinal(ctx context.Context, bk *models.Booking) error {
	remaining, ok := domain.RemainingDue(bk)
	if !ok {
		// preço final pendente: nada para cobrar ainda
		return nil
	}

	if bk.IsPaidFinal {
		if bk.FinalAmount != nil && *bk.FinalAmount != remaining {
			return domain.SettlementConflictError{
				Phase:     "final",
				Settled:   *bk.FinalAmount,
				Attempted: remaining,
			}
		}
		return nil
	}

	return s.chargeFinal(ctx, bk, remaining)
}

// AdjustFinal aplica a recomputação (duração real diferente da estimada):
// se a fase final já liquidou, cobra ou devolve só o delta.
func (s *Settlement) AdjustFinal(ctx context.Context, bk *models.Booking) error {
	remaining, ok := domain.RemainingDue(bk)
	if !ok {
		return nil
	}

	if !bk.IsPaidFinal {
		return s.chargeFinal(ctx, bk, remaining)
	}

	settled := 0.0
	if bk.FinalAmount != nil {
		settled = *bk.FinalAmount
	}
	delta := math.Round((remaining-settled)*100) / 100
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		res, err := s.gateway.Charge(
			ctx,
			bk.PaymentMethodRef,
			delta,
			bk.Currency,
			"Wisdom booking adjustment "+bk.ID,
		)
		if err != nil {
			return err
		}
		if res.Status != payments.StatusSucceeded {
			return &payments.PaymentError{
				Code:        "adjustment_charge_failed",
				ActionToken: res.ActionToken,
			}
		}
	} else {
		refund := -delta
		if err := s.gateway.Refund(ctx, bk.FinalChargeID, &refund); err != nil {
			return err
		}
	}

	bk.FinalAmount = &remaining
	s.log.Info("final payment adjusted",
		zap.String("booking_id", bk.ID),
		zap.Float64("delta", delta),
	)
	return nil
}

// RefundDeposit devolve o depósito inteiro (inclui a comissão). Idempotente.
func (s *Settlement) RefundDeposit(ctx context.Context, bk *models.Booking) error {
	if !bk.DepositPaid || bk.DepositRefunded {
		return nil
	}

	if err := s.gateway.Refund(ctx, bk.DepositChargeID, nil); err != nil {
		return err
	}

	bk.DepositRefunded = true
	s.log.Info("deposit refunded",
		zap.String("booking_id", bk.ID),
		zap.String("charge_id", bk.DepositChargeID),
	)
	return nil
}

func (s *Settlement) chargeFinal(ctx context.Context, bk *models.Booking, remaining float64) error {
	// mesma reconciliação da fase de depósito: nunca duplicar uma cobrança
	// que pode ter capturado fora de banda
	if bk.FinalChargeID != "" {
		res, err := s.gateway.Status(ctx, bk.FinalChargeID)
		if err != nil {
			return err
		}
		switch res.Status {
		case payments.StatusSucceeded:
			bk.IsPaidFinal = true
			bk.FinalAmount = &remaining
			return nil
		case payments.StatusRequiresAction:
			return &payments.PaymentError{
				Code:        "requires_action",
				ActionToken: res.ActionToken,
			}
		}
		bk.FinalChargeID = ""
	}

	res, err := s.gateway.Charge(
		ctx,
		bk.PaymentMethodRef,
		remaining,
		bk.Currency,
		"Wisdom booking final payment "+bk.ID,
	)
	if err != nil {
		return err
	}

	switch res.Status {
	case payments.StatusSucceeded:
		bk.IsPaidFinal = true
		bk.FinalAmount = &remaining
		bk.FinalChargeID = res.ChargeID
		s.log.Info("final payment settled",
			zap.String("booking_id", bk.ID),
			zap.Float64("amount", remaining),
		)
		return nil

	case payments.StatusRequiresAction:
		bk.FinalChargeID = res.ChargeID
		return &payments.PaymentError{
			Code:        "requires_action",
			ActionToken: res.ActionToken,
		}

	default:
		return &payments.PaymentError{Code: "final_charge_failed"}
	}
}

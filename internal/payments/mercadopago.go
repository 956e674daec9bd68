package payments

import (
	"context"
	"strconv"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"go.uber.org/zap"
)

// MercadoPagoGateway implementa Gateway sobre o SDK oficial. Toda chamada
// sai com timeout limitado: uma falha ou estouro deixa a reserva no estado
// pré-cobrança.
type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
	timeout  time.Duration
	log      *zap.Logger
}

func NewMercadoPagoGateway(
	accessToken string,
	timeout time.Duration,
	log *zap.Logger,
) (*MercadoPagoGateway, error) {

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
		timeout:  timeout,
		log:      log,
	}, nil
}

func (g *MercadoPagoGateway) Charge(
	ctx context.Context,
	methodRef string,
	amount float64,
	currency string,
	description string,
) (Result, error) {

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.payments.Create(ctx, payment.Request{
		TransactionAmount: amount,
		Token:             methodRef,
		Description:       description,
		Installments:      1,
	})
	if err != nil {
		g.log.Warn("mercadopago charge failed",
			zap.Float64("amount", amount),
			zap.Error(err),
		)
		return Result{Status: StatusFailed}, &PaymentError{Code: "gateway_error", Err: err}
	}

	chargeID := strconv.Itoa(resp.ID)

	switch resp.Status {
	case "approved":
		g.log.Info("mercadopago charge approved",
			zap.String("charge_id", chargeID),
			zap.Float64("amount", amount),
			zap.String("currency", currency),
		)
		return Result{Status: StatusSucceeded, ChargeID: chargeID}, nil

	case "pending", "in_process":
		// Autenticação adicional (3DS ou revisão): o chamador retoma com
		// o token e repete a fase.
		token := chargeID
		if resp.ThreeDSInfo.ExternalResourceURL != "" {
			token = resp.ThreeDSInfo.ExternalResourceURL
		}
		return Result{
			Status:      StatusRequiresAction,
			ChargeID:    chargeID,
			ActionToken: token,
		}, nil

	default:
		g.log.Warn("mercadopago charge rejected",
			zap.String("charge_id", chargeID),
			zap.String("status_detail", resp.StatusDetail),
		)
		return Result{Status: StatusFailed, ChargeID: chargeID},
			&PaymentError{Code: resp.StatusDetail}
	}
}

// Status consulta o desfecho atual de uma cobrança pendente (3DS capturado
// fora de banda, revisão concluída ou pagamento recusado).
func (g *MercadoPagoGateway) Status(
	ctx context.Context,
	chargeID string,
) (Result, error) {

	id, err := strconv.Atoi(chargeID)
	if err != nil {
		return Result{}, &PaymentError{Code: "invalid_charge_ref", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return Result{}, &PaymentError{Code: "gateway_error", Err: err}
	}

	switch resp.Status {
	case "approved":
		return Result{Status: StatusSucceeded, ChargeID: chargeID}, nil

	case "pending", "in_process":
		token := chargeID
		if resp.ThreeDSInfo.ExternalResourceURL != "" {
			token = resp.ThreeDSInfo.ExternalResourceURL
		}
		return Result{
			Status:      StatusRequiresAction,
			ChargeID:    chargeID,
			ActionToken: token,
		}, nil

	default:
		return Result{Status: StatusFailed, ChargeID: chargeID}, nil
	}
}

func (g *MercadoPagoGateway) Refund(
	ctx context.Context,
	chargeID string,
	amount *float64,
) error {

	id, err := strconv.Atoi(chargeID)
	if err != nil {
		return &PaymentError{Code: "invalid_charge_ref", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if amount == nil {
		_, err = g.refunds.Create(ctx, id)
	} else {
		_, err = g.refunds.CreatePartialRefund(ctx, id, *amount)
	}
	if err != nil {
		g.log.Warn("mercadopago refund failed",
			zap.String("charge_id", chargeID),
			zap.Error(err),
		)
		return &PaymentError{Code: "refund_failed", Err: err}
	}

	g.log.Info("mercadopago refund issued", zap.String("charge_id", chargeID))
	return nil
}

// Compile-time check
var _ Gateway = (*MercadoPagoGateway)(nil)

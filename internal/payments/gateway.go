package payments

import (
	"context"
	"fmt"
)

// ===============================
// Gateway boundary
// ===============================

type ResultStatus string

const (
	StatusSucceeded      ResultStatus = "succeeded"
	StatusRequiresAction ResultStatus = "requires_action"
	StatusFailed         ResultStatus = "failed"
)

// Result é o desfecho de uma cobrança. Em requires_action o ActionToken é o
// token de continuação que o chamador usa para concluir a autenticação
// fora de banda e repetir a fase.
type Result struct {
	Status      ResultStatus
	ChargeID    string
	ActionToken string
}

type PaymentError struct {
	Code        string
	ActionToken string
	Err         error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment error (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("payment error (%s)", e.Code)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// RequiresAction indica que o erro é retomável após autenticação.
func (e *PaymentError) RequiresAction() bool {
	return e.ActionToken != ""
}

// Gateway é o colaborador de pagamento. Amount em unidades da moeda;
// Refund com amount nil devolve a cobrança inteira. Status consulta o
// desfecho de uma cobrança pendente de autenticação: o pagamento pode ter
// capturado fora de banda, e repetir a fase sem consultar cobraria duas
// vezes.
type Gateway interface {
	Charge(
		ctx context.Context,
		methodRef string,
		amount float64,
		currency string,
		description string,
	) (Result, error)

	Status(
		ctx context.Context,
		chargeID string,
	) (Result, error)

	Refund(
		ctx context.Context,
		chargeID string,
		amount *float64,
	) error
}

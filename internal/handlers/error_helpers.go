package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/lock"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
)

// writeDomainError traduz a taxonomia do domínio para a borda HTTP.
// Transições e preços inválidos são erro do cliente; pagamento é 402 com
// o token de continuação quando a cobrança é retomável.
func writeDomainError(c *gin.Context, err error) {
	var (
		fe  naivetime.FormatError
		pe  domain.PricingError
		ite domain.InvalidTransitionError
		sce domain.SettlementConflictError
		pay *payments.PaymentError
		be  httperr.BusinessError
	)

	switch {
	case errors.As(err, &fe):
		httperr.BadRequest(c, "invalid_datetime", "Data ou hora inválida.")

	case errors.As(err, &pe):
		httperr.BadRequest(c, "pricing_error", pe.Error())

	case errors.As(err, &ite):
		httperr.Conflict(c, "invalid_transition", ite.Error())

	case errors.As(err, &sce):
		httperr.Conflict(c, "settlement_conflict", sce.Error())

	case errors.As(err, &pay):
		if pay.RequiresAction() {
			c.JSON(402, gin.H{
				"error_code":   "payment_requires_action",
				"message":      "Pagamento requer autenticação adicional.",
				"action_token": pay.ActionToken,
			})
			return
		}
		httperr.PaymentRequired(c, "payment_failed", "Pagamento recusado pelo gateway.")

	case errors.Is(err, lock.ErrLocked):
		httperr.Conflict(c, "booking_busy", "Outra operação em andamento nesta reserva.")

	case errors.As(err, &be):
		if be.Code == "booking_not_found" || be.Code == "service_not_found" {
			httperr.NotFound(c, be.Code, "Registro não encontrado.")
			return
		}
		httperr.BadRequest(c, be.Code, be.Code)

	default:
		httperr.Internal(c, "internal_error", "Algo deu errado.")
	}
}

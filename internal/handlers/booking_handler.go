package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/dto"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/httpresp"
	"github.com/MrRexos/wisdom-booking-api/internal/middleware"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
	ucBooking "github.com/MrRexos/wisdom-booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo domain.Repository

	create      *ucBooking.CreateBooking
	accept      *ucBooking.AcceptBooking
	reject      *ucBooking.RejectBooking
	cancel      *ucBooking.CancelBooking
	complete    *ucBooking.CompleteBooking
	finalPrice  *ucBooking.SetFinalPrice
	setDuration *ucBooking.SetActualDuration
	retry       *ucBooking.RetryPayment
}

func NewBookingHandler(
	repo domain.Repository,
	create *ucBooking.CreateBooking,
	accept *ucBooking.AcceptBooking,
	reject *ucBooking.RejectBooking,
	cancel *ucBooking.CancelBooking,
	complete *ucBooking.CompleteBooking,
	finalPrice *ucBooking.SetFinalPrice,
	setDuration *ucBooking.SetActualDuration,
	retry *ucBooking.RetryPayment,
) *BookingHandler {
	return &BookingHandler{
		repo:        repo,
		create:      create,
		accept:      accept,
		reject:      reject,
		cancel:      cancel,
		complete:    complete,
		finalPrice:  finalPrice,
		setDuration: setDuration,
		retry:       retry,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	StartDate       string `json:"start_date"`
	StartTime       string `json:"start_time"`
	DurationDial    *int   `json:"duration_dial"`
	DurationMinutes *int   `json:"duration_minutes"`
	Address         string `json:"address"`
}

type SetFinalPriceRequest struct {
	Price float64 `json:"price" binding:"required"`
}

type SetDurationRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func actorFrom(c *gin.Context) (uint, domain.Role) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := domain.Role(c.GetString(middleware.ContextUserRole))
	return userID, role
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	clientID, _ := actorFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	now := naivetime.Now()
	bk, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ClientID:     clientID,
		ServiceID:    req.ServiceID,
		StartDate:    req.StartDate,
		StartTime:    req.StartTime,
		DurationDial: req.DurationDial,
		DurationMin:  req.DurationMinutes,
		Address:      req.Address,
	}, now)

	if err != nil {
		// reserva criada mas depósito por resolver: devolve as duas coisas
		var pay *payments.PaymentError
		if bk != nil && errors.As(err, &pay) {
			c.JSON(402, gin.H{
				"booking":      dto.FromBooking(bk, now),
				"error_code":   "payment_unresolved",
				"action_token": pay.ActionToken,
			})
			return
		}
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(bk, now))
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	userID, role := actorFrom(c)
	id := c.Param("id")

	bk, err := h.repo.GetBookingForParty(c.Request.Context(), id, userID, role)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Reserva não encontrada.")
		return
	}

	// reconciliação na leitura: janela encerrada conclui agora
	now := naivetime.Now()
	if domain.DueForAutoComplete(bk, now) {
		if done, err := h.complete.ExecuteAuto(c.Request.Context(), bk.ID, now); err == nil {
			bk = done
		}
	}

	httpresp.OK(c, dto.FromBooking(bk, now))
}

func (h *BookingHandler) List(c *gin.Context) {
	userID, role := actorFrom(c)

	bks, err := h.repo.ListBookingsForParty(c.Request.Context(), userID, role)
	if err != nil {
		httperr.Internal(c, "list_failed", "Erro ao listar reservas.")
		return
	}

	now := naivetime.Now()
	out := make([]dto.BookingDTO, 0, len(bks))
	for i := range bks {
		out = append(out, dto.FromBooking(&bks[i], now))
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Accept(c *gin.Context) {
	userID, _ := actorFrom(c)

	bk, err := h.accept.Execute(c.Request.Context(), c.Param("id"), userID, naivetime.Now())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, naivetime.Now()))
}

func (h *BookingHandler) Reject(c *gin.Context) {
	userID, _ := actorFrom(c)

	bk, err := h.reject.Execute(c.Request.Context(), c.Param("id"), userID, naivetime.Now())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, naivetime.Now()))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, role := actorFrom(c)

	bk, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), userID, role, naivetime.Now())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, naivetime.Now()))
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID, role := actorFrom(c)

	now := naivetime.Now()
	bk, err := h.complete.Execute(c.Request.Context(), c.Param("id"), userID, role, now)
	if err != nil {
		// concluída mas com pagamento retomável: devolve as duas coisas
		var pay *payments.PaymentError
		if bk != nil && errors.As(err, &pay) && pay.RequiresAction() {
			c.JSON(402, gin.H{
				"booking":      dto.FromBooking(bk, now),
				"error_code":   "payment_requires_action",
				"action_token": pay.ActionToken,
			})
			return
		}
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, now))
}

// ======================================================
// PRICE / DURATION (budget, hourly)
// ======================================================

func (h *BookingHandler) SetFinalPrice(c *gin.Context) {
	userID, _ := actorFrom(c)

	var req SetFinalPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	now := naivetime.Now()
	bk, err := h.finalPrice.Execute(c.Request.Context(), c.Param("id"), userID, req.Price)
	if err != nil {
		// preço gravado mas cobrança pendente: devolve as duas coisas
		var pay *payments.PaymentError
		if bk != nil && errors.As(err, &pay) && pay.RequiresAction() {
			c.JSON(402, gin.H{
				"booking":      dto.FromBooking(bk, now),
				"error_code":   "payment_requires_action",
				"action_token": pay.ActionToken,
			})
			return
		}
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, now))
}

func (h *BookingHandler) SetDuration(c *gin.Context) {
	userID, _ := actorFrom(c)

	var req SetDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	now := naivetime.Now()
	bk, err := h.setDuration.Execute(c.Request.Context(), c.Param("id"), userID, req.Minutes)
	if err != nil {
		// duração gravada mas ajuste pendente: devolve as duas coisas
		var pay *payments.PaymentError
		if bk != nil && errors.As(err, &pay) && pay.RequiresAction() {
			c.JSON(402, gin.H{
				"booking":      dto.FromBooking(bk, now),
				"error_code":   "payment_requires_action",
				"action_token": pay.ActionToken,
			})
			return
		}
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, now))
}

// ======================================================
// PAYMENT RETRY
// ======================================================

func (h *BookingHandler) RetryPayment(c *gin.Context) {
	userID, _ := actorFrom(c)

	bk, err := h.retry.Execute(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(bk, naivetime.Now()))
}

// ======================================================
// DELETE (inactive only)
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	userID, role := actorFrom(c)
	id := c.Param("id")

	bk, err := h.repo.GetBookingForParty(c.Request.Context(), id, userID, role)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Reserva não encontrada.")
		return
	}

	// só reservas inativas podem ser apagadas
	status := domain.Status(bk.Status)
	if status != domain.StatusCanceled && status != domain.StatusRejected {
		httperr.Conflict(c, "booking_still_active", "Reserva ainda ativa.")
		return
	}

	if err := h.repo.DeleteBooking(c.Request.Context(), id); err != nil {
		httperr.Internal(c, "delete_failed", "Erro ao apagar reserva.")
		return
	}

	c.Status(204)
}

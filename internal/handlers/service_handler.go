package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/dto"
	"github.com/MrRexos/wisdom-booking-api/internal/duration"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/httpresp"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

// Catálogo de serviços: referência só de leitura para o core de reservas.
type ServiceHandler struct {
	repo domain.Repository
}

func NewServiceHandler(repo domain.Repository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

func serviceDTO(svc *models.Service) dto.ServiceDTO {
	return dto.ServiceDTO{
		ID:           svc.ID,
		Name:         svc.Name,
		Description:  svc.Description,
		PriceType:    svc.PriceType,
		UnitPrice:    svc.UnitPrice,
		Currency:     svc.Currency,
		DurationDial: svc.DurationDial,
		DurationMin:  duration.PositionToMinutes(duration.Clamp(svc.DurationDial)),
	}
}

func (h *ServiceHandler) List(c *gin.Context) {
	svcs, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "list_failed", "Erro ao listar serviços.")
		return
	}

	out := make([]dto.ServiceDTO, 0, len(svcs))
	for i := range svcs {
		out = append(out, serviceDTO(&svcs[i]))
	}

	httpresp.List(c, out)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	httpresp.OK(c, serviceDTO(svc))
}

package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	msgInvalidCompanyID    = "некорректный ID компании"
	msgInvalidTechnicianID = "некорректный ID техника"
	msgMissingInterval     = "параметры start и end обязательны"
	msgInvalidInterval     = "некорректный интервал, ожидается RFC 3339 и start < end"
	msgTechnicianNotFound  = "техник не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/technicians/{technicianId}/availability
// Query params: start, end (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathID(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	technicianID, err := handlers.PathID(r, "technicianId")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	start, err := handlers.QueryTime(r, "start")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}
	end, err := handlers.QueryTime(r, "end")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}
	if start == nil || end == nil {
		h.logger.Warn("GET /availability - Missing start or end")
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}

	verdict, err := h.service.Check(r.Context(), companyID, technicianID, domain.Interval{Start: *start, End: *end})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			h.logger.Warn("GET /availability - Invalid interval: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /availability - Technician not found: company_id=%d, technician_id=%d", companyID, technicianID)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		default:
			h.logger.Error("GET /availability - Failed to check: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Checked: technician_id=%d, verdict=%s", technicianID, verdict.Label())
	handlers.RespondJSON(w, http.StatusOK, FromVerdict(verdict))
}

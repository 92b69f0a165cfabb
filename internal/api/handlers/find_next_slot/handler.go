package find_next_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	msgInvalidCompanyID    = "некорректный ID компании"
	msgInvalidTechnicianID = "некорректный ID техника"
	msgMissingStartDate    = "параметр startDate обязателен"
	msgInvalidStartDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration     = "некорректная длительность, ожидается положительное durationMinutes"
	msgInvalidMaxDays      = "некорректный горизонт поиска, ожидается maxDays от 1 до 30"
	msgInvalidRequest      = "некорректные параметры поиска"
	msgTechnicianNotFound  = "техник не найден"
)

type Handler struct {
	useCase FindNextSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindNextSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/technicians/{technicianId}/next-slot
// Query params: startDate (required, YYYY-MM-DD), durationMinutes (required), maxDays (optional, default 7)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathID(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /next-slot - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	technicianID, err := handlers.PathID(r, "technicianId")
	if err != nil {
		h.logger.Warn("GET /next-slot - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	startDate := r.URL.Query().Get("startDate")
	if startDate == "" {
		h.logger.Warn("GET /next-slot - Missing startDate")
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	duration, err := handlers.QueryInt(r, "durationMinutes")
	if err != nil || duration == nil {
		h.logger.Warn("GET /next-slot - Invalid durationMinutes: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	maxDays, err := handlers.QueryInt(r, "maxDays")
	if err != nil {
		h.logger.Warn("GET /next-slot - Invalid maxDays: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMaxDays)
		return
	}

	useCaseReq, err := ToUseCaseRequest(companyID, technicianID, startDate, *duration, maxDays)
	if err != nil {
		h.logger.Warn("GET /next-slot - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			h.logger.Warn("GET /next-slot - Invalid request: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /next-slot - Technician not found: company_id=%d, technician_id=%d", companyID, technicianID)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		default:
			h.logger.Error("GET /next-slot - Failed to search: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /next-slot - Search finished: technician_id=%d, found=%t, days_scanned=%d",
		technicianID, result.Found, result.DaysScanned)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	workingHours "github.com/m04kA/SMC-AvailabilityService/internal/service/working_hours"
)

const (
	msgInvalidCompanyID    = "некорректный ID компании"
	msgInvalidTechnicianID = "некорректный ID техника"
	msgInvalidEntryID      = "некорректный ID записи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidEntry        = "некорректная запись рабочего времени, ожидается день недели 0-6 и время HH:MM"
	msgTechnicianNotFound  = "техник не найден"
	msgEntryNotFound       = "запись рабочего времени не найдена"
	msgOverlap             = "запись пересекается с существующим рабочим временем"
)

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/companies/{companyId}/technicians/{technicianId}/working-hours
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "GET /working-hours")
	if !ok {
		return
	}

	result, err := h.service.ListForTechnician(r.Context(), companyID, technicianID)
	if err != nil {
		h.respondServiceError(w, "GET /working-hours", technicianID, err)
		return
	}

	h.logger.Info("GET /working-hours - Entries retrieved: technician_id=%d, count=%d", technicianID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Add POST /api/v1/companies/{companyId}/technicians/{technicianId}/working-hours
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "POST /working-hours")
	if !ok {
		return
	}

	var req AddWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(companyID, technicianID)
	if err != nil {
		h.logger.Warn("POST /working-hours - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntry)
		return
	}

	result, err := h.service.Add(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "POST /working-hours", technicianID, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("POST /working-hours - Entry created: entry_id=%d, technician_id=%d, user_id=%d", result.ID, technicianID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/companies/{companyId}/technicians/{technicianId}/working-hours/{entryId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "PUT /working-hours/{id}")
	if !ok {
		return
	}

	entryID, err := handlers.PathID(r, "entryId")
	if err != nil {
		h.logger.Warn("PUT /working-hours/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /working-hours/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(companyID, technicianID, entryID)
	if err != nil {
		h.logger.Warn("PUT /working-hours/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntry)
		return
	}

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "PUT /working-hours/{id}", technicianID, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("PUT /working-hours/{id} - Entry updated: entry_id=%d, technician_id=%d, user_id=%d", entryID, technicianID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Remove DELETE /api/v1/companies/{companyId}/technicians/{technicianId}/working-hours/{entryId}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "DELETE /working-hours/{id}")
	if !ok {
		return
	}

	entryID, err := handlers.PathID(r, "entryId")
	if err != nil {
		h.logger.Warn("DELETE /working-hours/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Remove(r.Context(), companyID, technicianID, entryID); err != nil {
		h.respondServiceError(w, "DELETE /working-hours/{id}", technicianID, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("DELETE /working-hours/{id} - Entry deleted: entry_id=%d, technician_id=%d, user_id=%d", entryID, technicianID, userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseOwner(w http.ResponseWriter, r *http.Request, route string) (int64, int64, bool) {
	companyID, err := handlers.PathID(r, "companyId")
	if err != nil {
		h.logger.Warn("%s - Invalid company ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return 0, 0, false
	}

	technicianID, err := handlers.PathID(r, "technicianId")
	if err != nil {
		h.logger.Warn("%s - Invalid technician ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return 0, 0, false
	}

	return companyID, technicianID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, technicianID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrOverlap):
		h.logger.Warn("%s - Overlap: technician_id=%d, error=%v", route, technicianID, err)
		handlers.RespondConflict(w, msgOverlap, err)

	case errors.Is(err, workingHours.ErrTechnicianNotFound):
		h.logger.Warn("%s - Technician not found: technician_id=%d", route, technicianID)
		handlers.RespondNotFound(w, msgTechnicianNotFound)

	case errors.Is(err, workingHours.ErrEntryNotFound):
		h.logger.Warn("%s - Entry not found: technician_id=%d", route, technicianID)
		handlers.RespondNotFound(w, msgEntryNotFound)

	case errors.Is(err, domain.ErrInvalidArgument):
		h.logger.Warn("%s - Invalid entry: technician_id=%d, error=%v", route, technicianID, err)
		handlers.RespondBadRequest(w, msgInvalidEntry)

	default:
		h.logger.Error("%s - Failed: technician_id=%d, error=%v", route, technicianID, err)
		handlers.RespondInternalError(w)
	}
}

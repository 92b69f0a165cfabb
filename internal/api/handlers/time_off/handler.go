package time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	timeOff "github.com/m04kA/SMC-AvailabilityService/internal/service/time_off"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/time_off/models"
)

const (
	msgInvalidCompanyID    = "некорректный ID компании"
	msgInvalidTechnicianID = "некорректный ID техника"
	msgInvalidEntryID      = "некорректный ID записи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRange        = "некорректный интервал, ожидается RFC 3339 и from < to"
	msgInvalidEntry        = "некорректный период отсутствия"
	msgTechnicianNotFound  = "техник не найден"
	msgEntryNotFound       = "период отсутствия не найден"
	msgOverlap             = "период пересекается с существующим отсутствием"
)

type Handler struct {
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/companies/{companyId}/technicians/{technicianId}/time-off
// Query params: from, to (optional, RFC 3339)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "GET /time-off")
	if !ok {
		return
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		h.logger.Warn("GET /time-off - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		h.logger.Warn("GET /time-off - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListRequest{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		From:         from,
		To:           to,
	})
	if err != nil {
		h.respondServiceError(w, "GET /time-off", technicianID, err)
		return
	}

	h.logger.Info("GET /time-off - Entries retrieved: technician_id=%d, count=%d", technicianID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Add POST /api/v1/companies/{companyId}/technicians/{technicianId}/time-off
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "POST /time-off")
	if !ok {
		return
	}

	var req AddTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(companyID, technicianID)
	if err != nil {
		h.logger.Warn("POST /time-off - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntry)
		return
	}

	result, err := h.service.Add(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "POST /time-off", technicianID, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("POST /time-off - Entry created: entry_id=%d, technician_id=%d, user_id=%d", result.ID, technicianID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/companies/{companyId}/technicians/{technicianId}/time-off/{entryId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "PUT /time-off/{id}")
	if !ok {
		return
	}

	entryID, err := handlers.PathID(r, "entryId")
	if err != nil {
		h.logger.Warn("PUT /time-off/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req UpdateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /time-off/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(companyID, technicianID, entryID)
	if err != nil {
		h.logger.Warn("PUT /time-off/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntry)
		return
	}

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "PUT /time-off/{id}", technicianID, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("PUT /time-off/{id} - Entry updated: entry_id=%d, technician_id=%d, user_id=%d", entryID, technicianID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Remove DELETE /api/v1/companies/{companyId}/technicians/{technicianId}/time-off/{entryId}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	companyID, technicianID, ok := h.parseOwner(w, r, "DELETE /time-off/{id}")
	if !ok {
		return
	}

	entryID, err := handlers.PathID(r, "entryId")
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Remove(r.Context(), companyID, technicianID, entryID); err != nil {
		h.respondServiceError(w, "DELETE /time-off/{id}", technicianID, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("DELETE /time-off/{id} - Entry deleted: entry_id=%d, technician_id=%d, user_id=%d", entryID, technicianID, userID)
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

	case errors.Is(err, timeOff.ErrTechnicianNotFound):
		h.logger.Warn("%s - Technician not found: technician_id=%d", route, technicianID)
		handlers.RespondNotFound(w, msgTechnicianNotFound)

	case errors.Is(err, timeOff.ErrEntryNotFound):
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

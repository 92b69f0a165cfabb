package scan_fleet

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "некорректный слот, ожидается RFC 3339 и start < end"
	msgCompanyNotFound    = "компания не найдена"
)

type Handler struct {
	useCase ScanFleetUseCase
	logger  Logger
}

func NewHandler(useCase ScanFleetUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/availability/scan
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathID(r, "companyId")
	if err != nil {
		h.logger.Warn("POST /availability/scan - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req ScanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/scan - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(companyID)
	if err != nil {
		h.logger.Warn("POST /availability/scan - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			h.logger.Warn("POST /availability/scan - Invalid request: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /availability/scan - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("POST /availability/scan - Failed to scan: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/scan - Scan finished: company_id=%d, technicians=%d, available=%d",
		companyID, len(result.Technicians), result.AvailableCount())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

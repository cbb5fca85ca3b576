package rest

import (
	"log/slog"
	"net/http"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/application/usecase"
)

// ApplicationHandler exposes the loan application lifecycle over HTTP.
type ApplicationHandler struct {
	submit       *usecase.SubmitApplicationUseCase
	get          *usecase.GetApplicationUseCase
	list         *usecase.ListApplicationsUseCase
	updateStatus *usecase.UpdateApplicationStatusUseCase
	lenderStats  *usecase.GetLenderStatsUseCase
	msmeDetails  *usecase.GetMSMEDetailsUseCase
	logger       *slog.Logger
}

// NewApplicationHandler creates the application HTTP handler.
func NewApplicationHandler(
	submit *usecase.SubmitApplicationUseCase,
	get *usecase.GetApplicationUseCase,
	list *usecase.ListApplicationsUseCase,
	updateStatus *usecase.UpdateApplicationStatusUseCase,
	lenderStats *usecase.GetLenderStatsUseCase,
	msmeDetails *usecase.GetMSMEDetailsUseCase,
	logger *slog.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		submit:       submit,
		get:          get,
		list:         list,
		updateStatus: updateStatus,
		lenderStats:  lenderStats,
		msmeDetails:  msmeDetails,
		logger:       logger,
	}
}

// RegisterRoutes attaches application routes to the given mux.
//
// The {id}/{sub} pattern exists because a literal "{id}/msme-details"
// registration conflicts with "msme/{msmeId}" under ServeMux precedence
// (neither is more specific); the subresource is dispatched by hand instead.
func (h *ApplicationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/applications", h.submitApplication)
	mux.HandleFunc("GET /api/v1/applications/{id}", h.getApplication)
	mux.HandleFunc("GET /api/v1/applications/{id}/{sub}", h.applicationSubresource)
	mux.HandleFunc("PUT /api/v1/applications/{id}/status", h.updateApplicationStatus)
	mux.HandleFunc("GET /api/v1/applications/msme/{msmeId}", h.listForMSME)
	mux.HandleFunc("GET /api/v1/applications/lender/{lenderId}", h.listForLender)
	mux.HandleFunc("GET /api/v1/applications/lender/{lenderId}/stats", h.getLenderStats)
}

func (h *ApplicationHandler) applicationSubresource(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("sub") {
	case "msme-details":
		h.getMSMEDetails(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *ApplicationHandler) submitApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.submit.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "submit application failed", "error", err)
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, resp)
}

func (h *ApplicationHandler) getApplication(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), dto.GetApplicationRequest{
		ApplicationID: r.PathValue("id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) updateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateApplicationStatusRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ApplicationID = r.PathValue("id")

	resp, err := h.updateStatus.Execute(r.Context(), req)
	if err != nil {
		h.logger.WarnContext(r.Context(), "status update rejected",
			"application_id", req.ApplicationID,
			"target_status", req.Status,
			"error", err,
		)
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) listForMSME(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list.ExecuteForMSME(r.Context(), dto.ListApplicationsRequest{
		MSMEID: r.PathValue("msmeId"),
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) listForLender(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := h.list.ExecuteForLender(r.Context(), dto.ListApplicationsRequest{
		LenderID:  r.PathValue("lenderId"),
		Status:    query.Get("status"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) getMSMEDetails(w http.ResponseWriter, r *http.Request) {
	resp, err := h.msmeDetails.Execute(r.Context(), dto.MSMEDetailsRequest{
		ApplicationID: r.PathValue("id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) getLenderStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.lenderStats.Execute(r.Context(), dto.LenderStatsRequest{
		LenderID: r.PathValue("lenderId"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

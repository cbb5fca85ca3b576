package rest

import (
	"log/slog"
	"net/http"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/application/usecase"
)

// PolicyHandler exposes lending policy management and fit previews over HTTP.
type PolicyHandler struct {
	create     *usecase.CreatePolicyUseCase
	get        *usecase.GetPolicyUseCase
	list       *usecase.ListPoliciesUseCase
	update     *usecase.UpdatePolicyUseCase
	deactivate *usecase.DeactivatePolicyUseCase
	preview    *usecase.PreviewPolicyFitUseCase
	logger     *slog.Logger
}

// NewPolicyHandler creates the policy HTTP handler.
func NewPolicyHandler(
	create *usecase.CreatePolicyUseCase,
	get *usecase.GetPolicyUseCase,
	list *usecase.ListPoliciesUseCase,
	update *usecase.UpdatePolicyUseCase,
	deactivate *usecase.DeactivatePolicyUseCase,
	preview *usecase.PreviewPolicyFitUseCase,
	logger *slog.Logger,
) *PolicyHandler {
	return &PolicyHandler{
		create:     create,
		get:        get,
		list:       list,
		update:     update,
		deactivate: deactivate,
		preview:    preview,
		logger:     logger,
	}
}

// RegisterRoutes attaches policy routes to the given mux.
func (h *PolicyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/policies", h.createPolicy)
	mux.HandleFunc("GET /api/v1/policies/active", h.listActive)
	mux.HandleFunc("GET /api/v1/policies/lender/{lenderId}", h.listForLender)
	mux.HandleFunc("GET /api/v1/policies/{id}", h.getPolicy)
	mux.HandleFunc("PUT /api/v1/policies/{id}", h.updatePolicy)
	mux.HandleFunc("DELETE /api/v1/policies/{id}", h.deactivatePolicy)
	mux.HandleFunc("POST /api/v1/policies/{id}/fit-preview", h.previewFit)
}

func (h *PolicyHandler) createPolicy(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePolicyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.create.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create policy failed", "error", err)
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, resp)
}

func (h *PolicyHandler) getPolicy(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *PolicyHandler) listActive(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list.ExecuteActive(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *PolicyHandler) listForLender(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	resp, err := h.list.ExecuteForLender(r.Context(), r.PathValue("lenderId"), activeOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *PolicyHandler) updatePolicy(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePolicyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.PolicyID = r.PathValue("id")

	resp, err := h.update.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *PolicyHandler) deactivatePolicy(w http.ResponseWriter, r *http.Request) {
	resp, err := h.deactivate.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *PolicyHandler) previewFit(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewPolicyFitRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.PolicyID = r.PathValue("id")

	resp, err := h.preview.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

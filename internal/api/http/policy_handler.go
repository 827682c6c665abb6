package http

import (
	"net/http"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/service"
)

type PolicyHandler struct {
	policySvc service.PolicyService
}

func NewPolicyHandler(policySvc service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policySvc: policySvc}
}

type updatePolicyRequest struct {
	MaxBooksPerUser   int32 `json:"max_books_per_user" validate:"required,gte=1"`
	IssueDurationDays int32 `json:"issue_duration_days" validate:"required,gte=1"`
	FinePerDay        int32 `json:"fine_per_day" validate:"gte=0"`
}

func (h *PolicyHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.policySvc.GetPolicy(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

func (h *PolicyHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	var req updatePolicyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, r, validationError(err))
		return
	}

	policy := &domain.Policy{
		MaxBooksPerUser:   req.MaxBooksPerUser,
		IssueDurationDays: req.IssueDurationDays,
		FinePerDay:        req.FinePerDay,
	}
	if err := h.policySvc.UpdatePolicy(r.Context(), policy); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

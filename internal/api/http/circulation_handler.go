package http

import (
	"net/http"
	"strconv"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/service"
)

type CirculationHandler struct {
	circSvc service.CirculationService
}

func NewCirculationHandler(circSvc service.CirculationService) *CirculationHandler {
	return &CirculationHandler{circSvc: circSvc}
}

type requestBookRequest struct {
	BookID int32 `json:"book_id" validate:"required,gt=0"`
}

// directIssueRequest is the librarian-mediated entry point: the
// borrower identity comes from the request body, not the caller's own
// token.
type directIssueRequest struct {
	BookID    int32  `json:"book_id" validate:"required,gt=0"`
	UserID    int32  `json:"user_id" validate:"required,gt=0"`
	UserName  string `json:"user_name" validate:"required"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
	UserRole  string `json:"user_role" validate:"required,oneof=STUDENT TEACHER"`
}

func (h *CirculationHandler) RequestBook(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
		return
	}

	var req requestBookRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, r, validationError(err))
		return
	}

	rec, err := h.circSvc.RequestBook(r.Context(), req.BookID, actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *CirculationHandler) IssueBook(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	var req directIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, r, validationError(err))
		return
	}

	borrower := domain.Actor{
		ID:    req.UserID,
		Name:  req.UserName,
		Email: req.UserEmail,
		Role:  domain.Role(req.UserRole),
	}
	rec, err := h.circSvc.IssueBook(r.Context(), req.BookID, borrower)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *CirculationHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := h.circSvc.ApproveRequest(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *CirculationHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := h.circSvc.RejectRequest(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *CirculationHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := h.circSvc.ReturnBook(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *CirculationHandler) GetLiveFine(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	fine, err := h.circSvc.LiveFine(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"issue_id": id, "fine": fine})
}

func (h *CirculationHandler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rec, err := h.circSvc.GetIssue(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *CirculationHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	filter := domain.IssueFilter{}
	if v, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 32); err == nil && v > 0 {
		filter.UserID = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("bookId"), 10, 32); err == nil && v > 0 {
		filter.BookID = int32(v)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !domain.ValidIssueStatus(status) {
			respondError(w, r, domain.NewValidationError("status", "unknown status"))
			return
		}
		filter.Status = domain.IssueStatus(status)
	}

	// Students and teachers only see their own records.
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
		return
	}
	if !actor.Role.CanManageCirculation() {
		filter.UserID = actor.ID
	}

	records, total, err := h.circSvc.ListIssues(r.Context(), filter, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: records, Total: total, Page: page, PageSize: pageSize})
}

func (h *CirculationHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.circSvc.GetStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

package http

import (
	"net/http"
	"strconv"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

type BookHandler struct {
	catalogSvc service.CatalogService
}

func NewBookHandler(catalogSvc service.CatalogService) *BookHandler {
	return &BookHandler{catalogSvc: catalogSvc}
}

type createBookRequest struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Subject  string `json:"subject"`
	ISBN     string `json:"isbn" validate:"omitempty,max=17"`
	Category string `json:"category" validate:"required"`
	Quantity int32  `json:"quantity" validate:"gte=0"`
}

type updateBookRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Author   *string `json:"author" validate:"omitempty,min=1"`
	Subject  *string `json:"subject"`
	ISBN     *string `json:"isbn" validate:"omitempty,max=17"`
	Category *string `json:"category"`
	Quantity *int32  `json:"quantity" validate:"omitempty,gte=0"`
}

func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return domain.NewValidationError(errs[0].Field(), "failed "+errs[0].Tag()+" check")
	}
	return domain.NewValidationError("", err.Error())
}

func parseID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

func parsePaging(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("pageSize"), 10, 32); err == nil && v > 0 {
		pageSize = int32(v)
	}
	return page, pageSize
}

func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, r, validationError(err))
		return
	}

	book := &domain.Book{
		Title:    req.Title,
		Author:   req.Author,
		Subject:  req.Subject,
		ISBN:     req.ISBN,
		Category: domain.BookCategory(req.Category),
		Quantity: req.Quantity,
	}
	if err := h.catalogSvc.CreateBook(r.Context(), book); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	book, err := h.catalogSvc.GetBook(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateBookRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, r, validationError(err))
		return
	}

	upd := service.BookUpdate{
		Title:    req.Title,
		Author:   req.Author,
		Subject:  req.Subject,
		ISBN:     req.ISBN,
		Quantity: req.Quantity,
	}
	if req.Category != nil {
		category := domain.BookCategory(*req.Category)
		upd.Category = &category
	}

	book, err := h.catalogSvc.UpdateBook(r.Context(), id, upd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if !requireLibrarian(w, r) {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalogSvc.DeleteBook(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	books, total, err := h.catalogSvc.ListBooks(r.Context(), query, category, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: books, Total: total, Page: page, PageSize: pageSize})
}

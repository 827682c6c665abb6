package http

import (
	"schoollib-backend/internal/security"
	"schoollib-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all REST routes under /api/v1. Every route sits
// behind the identity middleware; per-operation role checks live in the
// handlers.
func NewRouter(
	tokenManager security.TokenManager,
	catalogSvc service.CatalogService,
	circSvc service.CirculationService,
	policySvc service.PolicyService,
) *mux.Router {
	bookHandler := NewBookHandler(catalogSvc)
	circHandler := NewCirculationHandler(circSvc)
	policyHandler := NewPolicyHandler(policySvc)

	router := mux.NewRouter()
	router.Use(RequestLogger)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokenManager))

	api.HandleFunc("/books", bookHandler.ListBooks).Methods("GET")
	api.HandleFunc("/books", bookHandler.CreateBook).Methods("POST")
	api.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.UpdateBook).Methods("PATCH")
	api.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")

	api.HandleFunc("/issues", circHandler.ListIssues).Methods("GET")
	api.HandleFunc("/issues", circHandler.IssueBook).Methods("POST")
	api.HandleFunc("/issues/request", circHandler.RequestBook).Methods("POST")
	api.HandleFunc("/issues/{id}", circHandler.GetIssue).Methods("GET")
	api.HandleFunc("/issues/{id}/approve", circHandler.ApproveRequest).Methods("POST")
	api.HandleFunc("/issues/{id}/reject", circHandler.RejectRequest).Methods("POST")
	api.HandleFunc("/issues/{id}/return", circHandler.ReturnBook).Methods("POST")
	api.HandleFunc("/issues/{id}/fine", circHandler.GetLiveFine).Methods("GET")

	api.HandleFunc("/policy", policyHandler.GetPolicy).Methods("GET")
	api.HandleFunc("/policy", policyHandler.UpdatePolicy).Methods("PUT")

	api.HandleFunc("/stats", circHandler.GetStats).Methods("GET")

	return router
}

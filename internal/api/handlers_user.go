package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/topio-market/topio-registry/internal/api/respond"
	"github.com/topio-market/topio-registry/internal/api/validate"
	"github.com/topio-market/topio-registry/internal/services"
)

// UserHandler is the HTTP transport for user registration and lookup.
type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// Register POST /users/register
// Re-registering an identical (name, user_namespace) pair returns the
// existing user with 200 instead of 201.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name      string `json:"name"`
		Namespace string `json:"user_namespace"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteValidationError(w, "request body must be valid JSON")
		return
	}
	if err := validate.NonEmpty("name", in.Name); err != nil {
		respond.WriteValidationError(w, err.Error())
		return
	}
	if err := validate.Namespace(in.Namespace); err != nil {
		respond.WriteValidationError(w, err.Error())
		return
	}

	u, created, err := h.svc.Register(r.Context(), in.Name, in.Namespace)
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond.WriteJSON(w, status, u)
}

// Get GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respond.WriteValidationError(w, "id must be an integer")
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

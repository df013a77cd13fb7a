package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/topio-market/topio-registry/internal/api/respond"
	"github.com/topio-market/topio-registry/internal/api/validate"
	"github.com/topio-market/topio-registry/internal/services"
)

// AssetTypeHandler is the HTTP transport for the asset type catalog.
type AssetTypeHandler struct {
	svc *services.AssetTypeService
}

func NewAssetTypeHandler(svc *services.AssetTypeService) *AssetTypeHandler {
	return &AssetTypeHandler{svc: svc}
}

// Register POST /asset_types/register
func (h *AssetTypeHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID          string  `json:"id"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteValidationError(w, "request body must be valid JSON")
		return
	}
	if err := validate.AssetTypeID(in.ID); err != nil {
		respond.WriteValidationError(w, err.Error())
		return
	}

	at, created, err := h.svc.Register(r.Context(), in.ID, in.Description)
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond.WriteJSON(w, status, at)
}

// Get GET /asset_types/{id}
func (h *AssetTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	at, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, at)
}

// List GET /asset_types/
// Types are returned in registration order.
func (h *AssetTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.List(r.Context())
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, types)
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/topio-market/topio-registry/internal/api/respond"
	"github.com/topio-market/topio-registry/internal/api/validate"
	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/services"
)

// AssetHandler is the HTTP transport for asset registration and both
// directions of identifier resolution.
type AssetHandler struct {
	svc *services.AssetService
}

func NewAssetHandler(svc *services.AssetService) *AssetHandler { return &AssetHandler{svc: svc} }

// Register POST /assets/register
// Every call mints a new asset id; the response carries the derived topio
// id alongside the stored fields.
func (h *AssetHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		LocalID     *string `json:"local_id"`
		OwnerID     *int64  `json:"owner_id"`
		AssetType   string  `json:"asset_type"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteValidationError(w, "request body must be valid JSON")
		return
	}
	if in.OwnerID == nil {
		respond.WriteValidationError(w, "owner_id is required")
		return
	}
	if err := validate.NonEmpty("asset_type", in.AssetType); err != nil {
		respond.WriteValidationError(w, err.Error())
		return
	}

	a, err := h.svc.Register(r.Context(), &model.Asset{
		LocalID:     in.LocalID,
		OwnerID:     *in.OwnerID,
		AssetType:   in.AssetType,
		Description: in.Description,
	})
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, a)
}

// TopioID GET /assets/topio_id?owner_id=&asset_type=&local_id=
// Responds with the bare topio id as a JSON string.
func (h *AssetHandler) TopioID(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ownerRaw := q.Get("owner_id")
	if ownerRaw == "" {
		respond.WriteValidationError(w, "owner_id is required")
		return
	}
	ownerID, err := strconv.ParseInt(ownerRaw, 10, 64)
	if err != nil {
		respond.WriteValidationError(w, "owner_id must be an integer")
		return
	}
	assetType := q.Get("asset_type")
	if assetType == "" {
		respond.WriteValidationError(w, "asset_type is required")
		return
	}

	topioID, err := h.svc.ResolveTopioID(r.Context(), ownerID, assetType, q.Get("local_id"))
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, topioID)
}

// CustomID GET /assets/custom_id?topio_id=
// Responds with the recorded local id as a JSON string. Malformed topio
// ids read as 404, the same as unknown ones.
func (h *AssetHandler) CustomID(w http.ResponseWriter, r *http.Request) {
	topioID := r.URL.Query().Get("topio_id")
	if topioID == "" {
		respond.WriteValidationError(w, "topio_id is required")
		return
	}

	localID, err := h.svc.ResolveLocalID(r.Context(), topioID)
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, localID)
}

// List GET /assets/?owner_id=
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	var ownerID *int64
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.WriteValidationError(w, "owner_id must be an integer")
			return
		}
		ownerID = &id
	}

	assets, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respond.WriteDomainError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, assets)
}

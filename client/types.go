package client

// User mirrors the registry's user payload.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Namespace string `json:"user_namespace"`
}

// AssetType mirrors the registry's asset type payload.
type AssetType struct {
	ID          string  `json:"id"`
	Description *string `json:"description,omitempty"`
}

// Asset mirrors the registry's asset payload. TopioID is derived by the
// server and never supplied on registration.
type Asset struct {
	ID          int64   `json:"id"`
	LocalID     *string `json:"local_id"`
	OwnerID     int64   `json:"owner_id"`
	AssetType   string  `json:"asset_type"`
	Description *string `json:"description"`
	TopioID     string  `json:"topio_id"`
}

// AssetRegistration is the payload for RegisterAsset.
type AssetRegistration struct {
	LocalID     *string `json:"local_id,omitempty"`
	OwnerID     int64   `json:"owner_id"`
	AssetType   string  `json:"asset_type"`
	Description *string `json:"description,omitempty"`
}

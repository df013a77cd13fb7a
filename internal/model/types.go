package model

// User is a registered asset owner. The namespace becomes the second
// segment of every topio id the user mints.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Namespace string `json:"user_namespace"`
}

// AssetType is a global, caller-defined asset category. The id doubles as
// display name and as the final segment of derived topio ids.
type AssetType struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
}

// Asset is a registered asset. TopioID is derived from the owner namespace,
// the asset id and the asset type at read time; it is never persisted.
type Asset struct {
	ID          int64   `json:"id"`
	LocalID     *string `json:"local_id"`
	OwnerID     int64   `json:"owner_id"`
	AssetType   string  `json:"asset_type"`
	Description *string `json:"description"`
	TopioID     string  `json:"topio_id"`
}

// Package pid implements the topio identifier codec.
//
// A topio id is a dot-separated string of the form
//
//	topio.{owner_namespace}.{asset_sequence}.{asset_type}
//
// Owner namespaces and asset type ids never contain dots or whitespace,
// so every encoded id splits back into exactly four fields.
package pid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Tag is the fixed first segment of every topio id.
const Tag = "topio"

// ErrMalformed reports a topio id string that does not parse.
var ErrMalformed = errors.New("malformed topio id")

// ID holds the structural key encoded in a topio id.
type ID struct {
	OwnerNamespace string
	AssetSeq       int64
	AssetType      string
}

// Format renders the canonical topio id for an asset's structural key.
// It is pure and total; input validity is guaranteed by the registration
// rules for namespaces and asset types.
func Format(ownerNamespace string, assetSeq int64, assetType string) string {
	return fmt.Sprintf("%s.%s.%d.%s", Tag, ownerNamespace, assetSeq, assetType)
}

// Parse splits a topio id into its structural key. It fails with
// ErrMalformed when the field count is not exactly four, the leading tag
// is wrong, the namespace or asset type field is empty, or the sequence
// field is not a positive integer.
func Parse(topioID string) (ID, error) {
	parts := strings.Split(topioID, ".")
	if len(parts) != 4 {
		return ID{}, fmt.Errorf("%w: %q: want 4 dot-separated fields, got %d", ErrMalformed, topioID, len(parts))
	}
	if parts[0] != Tag {
		return ID{}, fmt.Errorf("%w: %q: leading tag must be %q", ErrMalformed, topioID, Tag)
	}
	ns, seqField, assetType := parts[1], parts[2], parts[3]
	if ns == "" || assetType == "" {
		return ID{}, fmt.Errorf("%w: %q: empty namespace or asset type field", ErrMalformed, topioID)
	}
	seq, err := strconv.ParseInt(seqField, 10, 64)
	if err != nil || seq < 1 {
		return ID{}, fmt.Errorf("%w: %q: sequence field %q is not a positive integer", ErrMalformed, topioID, seqField)
	}
	return ID{OwnerNamespace: ns, AssetSeq: seq, AssetType: assetType}, nil
}

// String re-encodes the id in canonical form.
func (id ID) String() string {
	return Format(id.OwnerNamespace, id.AssetSeq, id.AssetType)
}

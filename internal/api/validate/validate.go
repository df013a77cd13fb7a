package validate

import (
	"fmt"
	"regexp"
)

// segmentRx matches characters that may not appear in a topio id segment:
// any whitespace, and the dot used as the field separator.
var segmentRx = regexp.MustCompile(`[\s.]`)

// Namespace validates a user namespace. Namespaces become the second
// segment of every topio id the owner mints, so they must be non-empty and
// free of whitespace and dots.
func Namespace(v string) error {
	if v == "" {
		return fmt.Errorf("user_namespace is required")
	}
	if segmentRx.MatchString(v) {
		return fmt.Errorf("user_namespace must not contain whitespace or '.'")
	}
	return nil
}

// AssetTypeID validates an asset type id. Type ids are the final topio id
// segment and follow the same character rules as namespaces.
func AssetTypeID(v string) error {
	if v == "" {
		return fmt.Errorf("asset type id is required")
	}
	if segmentRx.MatchString(v) {
		return fmt.Errorf("asset type id must not contain whitespace or '.'")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

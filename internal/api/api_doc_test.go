package api

import (
	"os"
	"strings"
	"testing"
)

// TestAPIDocumentationCoversEndpoints ensures the endpoint documentation
// stays in step with the router.
func TestAPIDocumentationCoversEndpoints(t *testing.T) {
	data, err := os.ReadFile("../../docs/api-documentation.md")
	if err != nil {
		t.Fatalf("read api doc: %v", err)
	}
	doc := string(data)
	for _, section := range []string{
		"Users API",
		"Asset Types API",
		"Assets API",
		"Health API",
		"/assets/topio_id",
		"/assets/custom_id",
	} {
		if !strings.Contains(doc, section) {
			t.Fatalf("docs/api-documentation.md missing %q", section)
		}
	}
}

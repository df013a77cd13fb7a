package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_CheckHealth(t *testing.T) {
	h := NewHealthHandler(nil, func() bool { return true })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.CheckHealth(w, req)

	if code := w.Result().StatusCode; code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "UP" {
		t.Fatalf("status: got %v", body["status"])
	}
}

func TestHealthHandler_CheckHealthDown(t *testing.T) {
	h := NewHealthHandler(nil, func() bool { return false })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.CheckHealth(w, req)

	if code := w.Result().StatusCode; code != http.StatusInternalServerError {
		t.Fatalf("unexpected status code: %d", code)
	}
}

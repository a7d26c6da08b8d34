package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/stockroom/pkg/httpx"
)

func TestJSON_setsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
}

func TestJSON_encodesBody(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("unexpected body: %v", body)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestRedirect_SeeOther(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Redirect(w, httptest.NewRequest(http.MethodPost, "/api/items", http.NoBody), "/api/items/7")

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/items/7" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestSameOriginReferer(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"no referer", "", "/api/items"},
		{"same host absolute", "http://example.com/api/items/3?tab=docs", "/api/items/3?tab=docs"},
		{"relative path", "/api/items/3", "/api/items/3"},
		{"other host", "https://evil.example/phish", "/api/items"},
		{"protocol relative", "//evil.example/phish", "/api/items"},
		{"backslash trick", `/\evil.example`, "/api/items"},
		{"javascript scheme", "javascript:alert(1)", "/api/items"},
		{"relative without slash", "items/3", "/api/items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://example.com/api/documents/1/delete", http.NoBody)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			if got := httpx.SameOriginReferer(r, "/api/items"); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedirectBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://example.com/api/documents/1/delete", http.NoBody)
	r.Header.Set("Referer", "http://example.com/api/items/9")
	w := httptest.NewRecorder()
	httpx.RedirectBack(w, r, "/api/items")

	if loc := w.Header().Get("Location"); loc != "/api/items/9" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

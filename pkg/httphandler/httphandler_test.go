package httphandler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	httphandler "github.com/mutablelogic/go-mia/pkg/httphandler"
	manager "github.com/mutablelogic/go-mia/pkg/manager"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func newTestManager(t *testing.T) *manager.Manager {
	t.Helper()
	m, err := manager.New(manager.WithSeed(1), manager.WithRates(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func serveMux(manager *manager.Manager) *http.ServeMux {
	mux := http.NewServeMux()
	for _, endpoint := range httphandler.Endpoints() {
		path, handler, _ := endpoint(manager)
		mux.HandleFunc(path, httphandler.Recover(handler))
	}
	return mux
}

// do sends a request and decodes the response body
func do(t *testing.T, mux *http.ServeMux, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var r *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = httptest.NewRequest(method, path, bytes.NewReader(data))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return w.Code, resp
}

func expectError(t *testing.T, code int, resp map[string]any, expected int) {
	t.Helper()
	if code != expected {
		t.Fatalf("expected %d, got %d: %v", expected, code, resp)
	}
	if resp["status"] != "error" {
		t.Fatalf("expected status=error, got %v", resp["status"])
	}
	if message, _ := resp["error"].(string); message == "" {
		t.Fatalf("expected an error message, got %v", resp)
	}
}

func expectSuccess(t *testing.T, code int, resp map[string]any) {
	t.Helper()
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, resp)
	}
	if resp["status"] != "success" {
		t.Fatalf("expected status=success, got %v", resp["status"])
	}
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func TestRecover_Panic(t *testing.T) {
	handler := httphandler.Recover(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	expectError(t, w.Code, resp, http.StatusInternalServerError)
}

func TestHealth_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/health", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["status"] != "healthy" {
		t.Fatalf("expected status=healthy, got %v", resp["status"])
	}
	if resp["service"] != "Mia Tech Support Avatar" {
		t.Fatalf("unexpected service %v", resp["service"])
	}
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/health", map[string]any{})
	expectError(t, code, resp, http.StatusMethodNotAllowed)
}

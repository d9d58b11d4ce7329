package httphandler_test

import (
	"net/http"
	"testing"
)

func TestAvatarStatus_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/avatar/status", nil)
	expectSuccess(t, code, resp)
	avatar, _ := resp["avatar"].(map[string]any)
	if avatar["name"] != "Mia" {
		t.Fatalf("expected avatar name Mia, got %v", avatar["name"])
	}
}

func TestAvatarExpression_Invalid(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/avatar/expression", map[string]any{"expression": "grumpy"})
	expectError(t, code, resp, http.StatusBadRequest)
}

func TestAvatarSession_Lifecycle(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/avatar/session/s1", nil)
	expectError(t, code, resp, http.StatusNotFound)

	code, resp = do(t, mux, http.MethodPost, "/avatar/gesture", map[string]any{"session_id": "s1", "gesture": "nodding"})
	expectSuccess(t, code, resp)

	code, resp = do(t, mux, http.MethodGet, "/avatar/session/s1", nil)
	expectSuccess(t, code, resp)
	state, _ := resp["avatar_state"].(map[string]any)
	if state["current_gesture"] != "nodding" {
		t.Fatalf("expected current_gesture=nodding, got %v", state["current_gesture"])
	}

	code, resp = do(t, mux, http.MethodDelete, "/avatar/session/s1", nil)
	expectSuccess(t, code, resp)
	code, resp = do(t, mux, http.MethodGet, "/avatar/session/s1", nil)
	expectError(t, code, resp, http.StatusNotFound)
}

func TestAvatarPreset_Apply(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/avatar/presets", nil)
	expectSuccess(t, code, resp)
	if resp["count"] != 6.0 {
		t.Fatalf("expected count=6, got %v", resp["count"])
	}

	code, resp = do(t, mux, http.MethodPost, "/avatar/preset/celebration", nil)
	expectSuccess(t, code, resp)
	if resp["preset"] != "celebration" {
		t.Fatalf("expected preset=celebration, got %v", resp["preset"])
	}

	code, resp = do(t, mux, http.MethodPost, "/avatar/preset/missing", map[string]any{"session_id": "s1"})
	expectError(t, code, resp, http.StatusNotFound)
}

func TestAvatarSequence_Defaults(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/avatar/animation-sequence", map[string]any{
		"session_id": "s1",
		"sequence":   map[string]any{"gesture": "pointing"},
	})
	expectSuccess(t, code, resp)
	sequence, _ := resp["sequence"].(map[string]any)
	if sequence["gesture"] != "pointing" || sequence["expression"] != "neutral" {
		t.Fatalf("unexpected sequence %v", sequence)
	}
}

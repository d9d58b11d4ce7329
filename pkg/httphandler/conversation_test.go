package httphandler_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestChat_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/chat", map[string]any{
		"message":    "Hello",
		"session_id": "s1",
	})
	expectSuccess(t, code, resp)
	if resp["intent"] != "greeting" {
		t.Fatalf("expected intent=greeting, got %v", resp["intent"])
	}
	if resp["session_id"] != "s1" {
		t.Fatalf("expected session_id=s1, got %v", resp["session_id"])
	}
	if _, exists := resp["avatar_instructions"].(map[string]any); !exists {
		t.Fatalf("expected avatar_instructions, got %v", resp)
	}
}

func TestChat_Topic(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/chat", map[string]any{
		"message": "My XETA kit won't connect",
	})
	expectSuccess(t, code, resp)
	if intent, _ := resp["intent"].(string); !strings.HasPrefix(intent, "xeta_") {
		t.Fatalf("expected a xeta intent, got %v", resp["intent"])
	}
	if resp["confidence"] != 1.0 {
		t.Fatalf("expected confidence=1, got %v", resp["confidence"])
	}
	if resp["session_id"] != "default" {
		t.Fatalf("expected session_id=default, got %v", resp["session_id"])
	}
}

func TestChat_MissingMessage(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/chat", map[string]any{"session_id": "s1"})
	expectError(t, code, resp, http.StatusBadRequest)
}

func TestChat_MethodNotAllowed(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/conversation/chat", nil)
	expectError(t, code, resp, http.StatusMethodNotAllowed)
}

func TestIntent_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/intent", map[string]any{
		"message": "My printer is not working, this is urgent",
	})
	expectSuccess(t, code, resp)
	if resp["urgency"] != "urgent" {
		t.Fatalf("expected urgency=urgent, got %v", resp["urgency"])
	}
	entities, _ := resp["entities"].(map[string]any)
	devices, _ := entities["devices"].([]any)
	if len(devices) == 0 || devices[0] != "printer" {
		t.Fatalf("expected devices=[printer], got %v", entities["devices"])
	}
}

func TestSession_HistoryAndClear(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/context", map[string]any{
		"session_id": "s1",
		"context":    map[string]any{"device": "laptop"},
	})
	expectSuccess(t, code, resp)
	for _, message := range []string{"Hello", "Thanks"} {
		code, resp = do(t, mux, http.MethodPost, "/conversation/chat", map[string]any{"message": message, "session_id": "s1"})
		expectSuccess(t, code, resp)
	}

	code, resp = do(t, mux, http.MethodGet, "/conversation/session/s1", nil)
	expectSuccess(t, code, resp)
	if resp["message_count"] != 2.0 {
		t.Fatalf("expected message_count=2, got %v", resp["message_count"])
	}

	code, resp = do(t, mux, http.MethodDelete, "/conversation/session/s1", nil)
	expectSuccess(t, code, resp)

	code, resp = do(t, mux, http.MethodGet, "/conversation/session/s1", nil)
	expectSuccess(t, code, resp)
	if resp["message_count"] != 0.0 {
		t.Fatalf("expected message_count=0, got %v", resp["message_count"])
	}
}

func TestContext_Missing(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/context", map[string]any{"session_id": "s1"})
	expectError(t, code, resp, http.StatusBadRequest)
}

func TestFeedback_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/conversation/feedback", map[string]any{
		"session_id": "s1",
		"message_id": "m1",
		"rating":     5,
	})
	expectSuccess(t, code, resp)
}

func TestLanguage_Switch(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/conversation/languages", nil)
	expectSuccess(t, code, resp)
	if resp["default_language"] != "en" {
		t.Fatalf("expected default_language=en, got %v", resp["default_language"])
	}

	code, resp = do(t, mux, http.MethodPost, "/conversation/language", map[string]any{"session_id": "s1", "language": "es"})
	expectSuccess(t, code, resp)
	if resp["new_language"] != "es" || resp["old_language"] != "en" {
		t.Fatalf("unexpected language change %v", resp)
	}

	code, resp = do(t, mux, http.MethodPost, "/conversation/language", map[string]any{"language": "fr"})
	expectError(t, code, resp, http.StatusNotFound)
	code, resp = do(t, mux, http.MethodPost, "/conversation/language", map[string]any{})
	expectError(t, code, resp, http.StatusBadRequest)
}

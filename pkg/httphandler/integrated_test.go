package httphandler_test

import (
	"net/http"
	"testing"
)

func TestCompleteResponse_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/chat/complete-response", map[string]any{"message": "Hello"})
	expectSuccess(t, code, resp)
	speech, _ := resp["voice_synthesis"].(map[string]any)
	if speech["mock_mode"] != true {
		t.Fatalf("expected mock speech, got %v", resp["voice_synthesis"])
	}
	reply, _ := resp["ai_response"].(map[string]any)
	if reply["intent"] != "greeting" {
		t.Fatalf("expected intent=greeting, got %v", reply["intent"])
	}

	code, resp = do(t, mux, http.MethodPost, "/chat/complete-response", map[string]any{"message": "Hello", "include_voice": false})
	expectSuccess(t, code, resp)
	if _, exists := resp["voice_synthesis"]; exists {
		t.Fatalf("expected no speech, got %v", resp["voice_synthesis"])
	}
}

func TestQuickResponse_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/chat/quick-response", map[string]any{"message": "Thank you"})
	expectSuccess(t, code, resp)
	if resp["response_type"] != "quick" {
		t.Fatalf("expected response_type=quick, got %v", resp["response_type"])
	}
}

func TestVoiceOnly_MissingText(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/chat/voice-only", map[string]any{})
	expectError(t, code, resp, http.StatusBadRequest)

	code, resp = do(t, mux, http.MethodPost, "/chat/voice-only", map[string]any{"text": "Hello"})
	expectSuccess(t, code, resp)
}

func TestConversationFlow_Sequence(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/chat/conversation-flow", map[string]any{
		"messages":      []string{"Hello", "My wifi is slow", "Thanks"},
		"session_id":    "flow",
		"include_voice": false,
	})
	expectSuccess(t, code, resp)
	if resp["total_messages"] != 3.0 {
		t.Fatalf("expected total_messages=3, got %v", resp["total_messages"])
	}
	flow, _ := resp["conversation_flow"].([]any)
	last, _ := flow[len(flow)-1].(map[string]any)
	if last["sequence"] != 3.0 {
		t.Fatalf("expected sequence=3, got %v", last["sequence"])
	}

	code, resp = do(t, mux, http.MethodPost, "/chat/conversation-flow", map[string]any{"messages": []string{}})
	expectError(t, code, resp, http.StatusBadRequest)
}

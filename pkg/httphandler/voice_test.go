package httphandler_test

import (
	"net/http"
	"testing"
)

func TestSynthesize_Mock(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/voice/synthesize", map[string]any{"text": "Hello there"})
	expectSuccess(t, code, resp)
	if resp["mock_mode"] != true || resp["success"] != true {
		t.Fatalf("expected a mock result, got %v", resp)
	}

	code, resp = do(t, mux, http.MethodPost, "/voice/synthesize", map[string]any{"text": ""})
	expectError(t, code, resp, http.StatusBadRequest)
}

func TestSynthesizeWithTiming_LipSync(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/voice/synthesize-with-timing", map[string]any{"text": "Restart the router now"})
	expectSuccess(t, code, resp)
	timing, _ := resp["lip_sync_timing"].(map[string]any)
	if timing["word_count"] != 4.0 {
		t.Fatalf("expected word_count=4, got %v", timing["word_count"])
	}
}

func TestConversationVoice_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/voice/conversation-response", map[string]any{
		"ai_response": map[string]any{"text": "Let me check that"},
	})
	expectSuccess(t, code, resp)
	coordination, _ := resp["avatar_coordination"].(map[string]any)
	if coordination["synchronized"] != true {
		t.Fatalf("expected synchronized coordination, got %v", coordination)
	}

	code, resp = do(t, mux, http.MethodPost, "/voice/conversation-response", map[string]any{})
	expectError(t, code, resp, http.StatusBadRequest)
}

func TestVoices_Profile(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/voice/voices", nil)
	expectSuccess(t, code, resp)
	if resp["count"] != 8.0 {
		t.Fatalf("expected count=8, got %v", resp["count"])
	}

	code, resp = do(t, mux, http.MethodPost, "/voice/voice-profile", map[string]any{"voice_key": "warm_friendly_en"})
	expectSuccess(t, code, resp)
	if resp["current_voice"] != "warm_friendly_en" {
		t.Fatalf("expected current_voice=warm_friendly_en, got %v", resp["current_voice"])
	}

	code, resp = do(t, mux, http.MethodPost, "/voice/voice-profile", map[string]any{"voice_key": "missing"})
	expectError(t, code, resp, http.StatusBadRequest)
}

func TestTestConnection_Mock(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/voice/test-connection", nil)
	expectSuccess(t, code, resp)
	if resp["mock_mode"] != true {
		t.Fatalf("expected mock_mode, got %v", resp)
	}
}

func TestAudioFile_Missing(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodGet, "/voice/audio-file/missing.mp3", nil)
	expectError(t, code, resp, http.StatusNotFound)
}

func TestBatch_OK(t *testing.T) {
	mux := serveMux(newTestManager(t))

	code, resp := do(t, mux, http.MethodPost, "/voice/batch-synthesize", map[string]any{
		"texts":      []string{"One", " ", "Three"},
		"voice_tone": "warm",
	})
	expectSuccess(t, code, resp)
	if resp["total_processed"] != 2.0 || resp["voice_tone"] != "warm" {
		t.Fatalf("unexpected batch %v", resp)
	}

	code, resp = do(t, mux, http.MethodPost, "/voice/batch-synthesize", map[string]any{})
	expectError(t, code, resp, http.StatusBadRequest)

	code, resp = do(t, mux, http.MethodGet, "/voice/presets", nil)
	expectSuccess(t, code, resp)
}

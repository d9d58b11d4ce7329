package httphandler

import (
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-mia/pkg/manager"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /voice/synthesize
func SynthesizeHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/synthesize", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.SpeechRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.Synthesize(r.Context(), req)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Convert text to speech",
			},
		})
}

// Path: /voice/synthesize-with-timing
func SynthesizeWithTimingHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/synthesize-with-timing", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.SpeechRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SynthesizeWithTiming(r.Context(), req)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Convert text to speech with lip-sync timing",
			},
		})
}

// Path: /voice/conversation-response
func ConversationVoiceHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/conversation-response", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ConversationVoiceRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.ConversationVoice(r.Context(), req)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Voice an existing reply and time its animation",
			},
		})
}

// Path: /voice/voices
func VoicesHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/voices", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				respond(w, r, manager.Voices())
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List the voice catalog",
			},
		})
}

// Path: /voice/voice-profile
func VoiceProfileHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/voice-profile", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.VoiceProfileRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SetVoice(req)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Select the current voice profile",
			},
		})
}

// Path: /voice/test-connection
func TestConnectionHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/test-connection", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.TestConnection(r.Context())
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Check the speech service",
			},
		})
}

// Path: /voice/audio-file/{path...}
func AudioFileHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/audio-file/{path...}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				path, err := manager.AudioFile(r.PathValue("path"))
				if err != nil {
					fail(w, r, err)
					return
				}
				http.ServeFile(w, r, path)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Download a generated audio file",
			},
		})
}

// Path: /voice/presets
func VoicePresetsHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/presets", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				respond(w, r, manager.VoicePresets())
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List the voice tones suited to common interactions",
			},
		})
}

// Path: /voice/batch-synthesize
func BatchHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/voice/batch-synthesize", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.BatchRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.Batch(r.Context(), req)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Convert several texts to speech with one tone",
			},
		})
}

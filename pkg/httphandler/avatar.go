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

// Path: /avatar/status
func AvatarStatusHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/status", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				respond(w, r, manager.AvatarStatus())
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Describe the avatar and what it can render",
			},
		})
}

// Path: /avatar/expression
func ExpressionHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/expression", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ExpressionRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SetExpression(req)
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
				Description: "Set the facial expression of an avatar session",
			},
		})
}

// Path: /avatar/gesture
func GestureHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/gesture", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.GestureRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SetGesture(req)
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
				Description: "Set the gesture of an avatar session",
			},
		})
}

// Path: /avatar/voice-tone
func VoiceToneHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/voice-tone", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.VoiceToneRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SetVoiceTone(req)
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
				Description: "Set the voice tone of an avatar session",
			},
		})
}

// Path: /avatar/animation-sequence
func SequenceHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/animation-sequence", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.SequenceRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.PlaySequence(req)
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
				Description: "Play an animation sequence",
			},
		})
}

// Path: /avatar/session/{session}
func AvatarSessionHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/session/{session}", func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue("session")
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.AvatarSession(id)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			case http.MethodDelete:
				respond(w, r, manager.ClearAvatarSession(id))
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get the avatar state of a session",
			},
			Delete: &openapi.Operation{
				Description: "Clear the avatar state of a session",
			},
		})
}

// Path: /avatar/presets
func AvatarPresetsHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/presets", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				respond(w, r, manager.AvatarPresets())
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List the avatar presets",
			},
		})
}

// Path: /avatar/preset/{preset}
func AvatarPresetHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/avatar/preset/{preset}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.PresetRequest
				if r.ContentLength != 0 && !read(w, r, &req) {
					return
				}
				resp, err := manager.ApplyPreset(r.PathValue("preset"), req)
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
				Description: "Apply a preset to an avatar session",
			},
		})
}

package httphandler

import (
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-mia/pkg/manager"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /chat/complete-response
func CompleteResponseHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/chat/complete-response", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.CompleteRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.CompleteResponse(r.Context(), req)
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
				Description: "Reply to a message with text, speech and animation",
			},
		})
}

// Path: /chat/quick-response
func QuickResponseHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/chat/quick-response", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ChatRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.QuickResponse(r.Context(), req)
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
				Description: "Reply to a message with text and animation only",
			},
		})
}

// Path: /chat/voice-only
func VoiceOnlyHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/chat/voice-only", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.VoiceOnlyRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.VoiceOnly(r.Context(), req)
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
				Description: "Voice text outside of a conversation",
			},
		})
}

// Path: /chat/conversation-flow
func ConversationFlowHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/chat/conversation-flow", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.FlowRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.ConversationFlow(r.Context(), req)
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
				Description: "Reply to several messages in order within one session",
			},
		})
}

// Path: /health
func HealthHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/health", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				// The health report carries its own status
				health := manager.Health()
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), health)
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Report the state of the service",
			},
		})
}

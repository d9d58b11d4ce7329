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

// Path: /conversation/chat
func ChatHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/chat", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ChatRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.Chat(r.Context(), req)
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
				Description: "Reply to a message within a session",
			},
		})
}

// Path: /conversation/intent
func IntentHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/intent", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.IntentRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.Intent(r.Context(), req)
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
				Description: "Classify a message and extract its entities",
			},
		})
}

// Path: /conversation/context
func ContextHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/context", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ContextRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.UpdateContext(r.Context(), req)
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
				Description: "Merge keys into the context of a session",
			},
		})
}

// Path: /conversation/session/{session}
func SessionHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/session/{session}", func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue("session")
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.History(r.Context(), id)
				if err != nil {
					fail(w, r, err)
					return
				}
				respond(w, r, resp)
			case http.MethodDelete:
				resp, err := manager.ClearSession(r.Context(), id)
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
				Description: "Get the message history of a session",
			},
			Delete: &openapi.Operation{
				Description: "Clear a session",
			},
		})
}

// Path: /conversation/feedback
func FeedbackHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/feedback", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.FeedbackRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.Feedback(r.Context(), req)
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
				Description: "Rate a reply",
			},
		})
}

// Path: /conversation/languages
func LanguagesHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/languages", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				respond(w, r, manager.Languages())
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List the supported languages",
			},
		})
}

// Path: /conversation/language
func LanguageHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/conversation/language", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.LanguageRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SwitchLanguage(r.Context(), req)
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
				Description: "Set the language of a session",
			},
		})
}

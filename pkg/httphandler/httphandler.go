/*
httphandler exposes the manager over JSON HTTP. Every response body carries
a status field, "success" or "error", and failed requests carry the reason
in an error field.
*/
package httphandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	manager "github.com/mutablelogic/go-mia/pkg/manager"
	server "github.com/mutablelogic/go-server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

// Endpoint returns the path, handler and description of a route
type Endpoint func(*manager.Manager) (string, http.HandlerFunc, *openapi.PathItem)

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	statusSuccess = "success"
	statusError   = "error"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoints returns every route served by the package
func Endpoints() []Endpoint {
	return []Endpoint{
		// Conversation
		ChatHandler,
		IntentHandler,
		ContextHandler,
		SessionHandler,
		FeedbackHandler,
		LanguagesHandler,
		LanguageHandler,

		// Avatar
		AvatarStatusHandler,
		ExpressionHandler,
		GestureHandler,
		VoiceToneHandler,
		SequenceHandler,
		AvatarSessionHandler,
		AvatarPresetsHandler,
		AvatarPresetHandler,

		// Knowledge
		SearchHandler,
		SolutionHandler,
		CategoriesHandler,
		QuickFixHandler,
		QuestionsHandler,
		KeywordsHandler,
		CategoryHandler,

		// Voice
		SynthesizeHandler,
		SynthesizeWithTimingHandler,
		ConversationVoiceHandler,
		VoicesHandler,
		VoiceProfileHandler,
		TestConnectionHandler,
		AudioFileHandler,
		VoicePresetsHandler,
		BatchHandler,

		// Integrated
		CompleteResponseHandler,
		QuickResponseHandler,
		VoiceOnlyHandler,
		ConversationFlowHandler,

		// Health
		HealthHandler,
	}
}

func RegisterHandlers(manager *manager.Manager, router server.HTTPRouter, middleware bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, Recover(handler), middleware, spec))
	}

	// Register handlers
	for _, endpoint := range Endpoints() {
		register(endpoint(manager))
	}

	// Return any errors
	return result
}

// Recover answers 500 when a handler panics
func Recover(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				fail(w, r, mia.ErrInternalServerError.Withf("%v", v))
			}
		}()
		handler(w, r)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// read decodes the request body, answering 400 when it cannot
func read(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httprequest.Read(r, v); err != nil {
		fail(w, r, mia.ErrBadParameter.With(err.Error()))
		return false
	}
	return true
}

// respond writes v with a success status spliced into the object
func respond(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fail(w, r, err)
		return
	}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '{' {
		fail(w, r, mia.ErrInternalServerError.Withf("unexpected response type %T", v))
		return
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, `{"status":%q`, statusSuccess)
	if rest := bytes.TrimSpace(data[1:]); len(rest) > 0 && rest[0] != '}' {
		body.WriteByte(',')
	}
	body.Write(data[1:])
	_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), json.RawMessage(body.Bytes()))
}

// fail writes an error with the status code for its kind
func fail(w http.ResponseWriter, r *http.Request, err error) {
	_ = httpresponse.JSON(w, statusCode(err), httprequest.Indent(r), errorResponse{
		Status: statusError,
		Error:  err.Error(),
	})
}

func notAllowed(w http.ResponseWriter, r *http.Request) {
	_ = httpresponse.JSON(w, http.StatusMethodNotAllowed, httprequest.Indent(r), errorResponse{
		Status: statusError,
		Error:  "method not allowed: " + r.Method,
	})
}

func statusCode(err error) int {
	switch mia.Code(err) {
	case mia.ErrBadParameter:
		return http.StatusBadRequest
	case mia.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

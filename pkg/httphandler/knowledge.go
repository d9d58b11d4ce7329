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

// Path: /knowledge/search
func SearchHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/search", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.SearchRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.Search(req)
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
				Description: "Search the knowledge base",
			},
		})
}

// Path: /knowledge/solution/{id}
func SolutionHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/solution/{id}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.Solution(r.PathValue("id"))
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
				Description: "Get a solution and the solutions related to it",
			},
		})
}

// Path: /knowledge/categories
func CategoriesHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/categories", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				respond(w, r, manager.Categories())
			default:
				notAllowed(w, r)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List the knowledge base categories",
			},
		})
}

// Path: /knowledge/category/{category}
func CategoryHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/category/{category}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.Category(r.PathValue("category"))
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
				Description: "List the solutions in a category",
			},
		})
}

// Path: /knowledge/quick-fix
func QuickFixHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/quick-fix", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.QuickFixRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.QuickFix(req)
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
				Description: "Get the quick fix for an issue type",
			},
		})
}

// Path: /knowledge/diagnostic-questions/{category}
func QuestionsHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/diagnostic-questions/{category}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				resp, err := manager.DiagnosticQuestions(r.PathValue("category"))
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
				Description: "List the diagnostic questions for a category",
			},
		})
}

// Path: /knowledge/keywords
func KeywordsHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/knowledge/keywords", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.KeywordsRequest
				if !read(w, r, &req) {
					return
				}
				resp, err := manager.SearchKeywords(req)
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
				Description: "Search the knowledge base by keyword",
			},
		})
}

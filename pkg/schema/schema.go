/*
schema contains the data model shared by the conversation pipeline, the
stores and the HTTP API.
*/
package schema

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Languages
	LanguageEnglish = "en"
	LanguageSpanish = "es"

	// DefaultSession is used when a request does not name a session
	DefaultSession = "default"

	// DefaultIntent is returned when no intent pattern matches
	DefaultIntent = "general"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func Stringify[T any](v T) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

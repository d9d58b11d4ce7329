/*
mia is a scripted tech-support assistant. It guesses an intent from user
text with regular expressions, selects and personalizes a canned reply,
maps the reply onto instructions for an external avatar renderer and
optionally voices it through a text-to-speech service.

The packages under pkg implement the pipeline:

	pkg/nlu        language detection, intent classification, entities
	pkg/topic      pre-authored replies for the XETA product topic
	pkg/responder  template selection and personalization
	pkg/knowledge  troubleshooting solutions and quick fixes
	pkg/avatar     avatar instructions, presets and state
	pkg/voice      ElevenLabs speech synthesis with a mock fallback
	pkg/store      session and feedback stores
	pkg/manager    the conversation pipeline
	pkg/httphandler the JSON API
*/
package mia

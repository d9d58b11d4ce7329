package manager

import (
	"context"
	"maps"
	"strings"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	mia "github.com/mutablelogic/go-mia"
	avatar "github.com/mutablelogic/go-mia/pkg/avatar"
	responder "github.com/mutablelogic/go-mia/pkg/responder"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Confidence of a special topic reply
	topicConfidence = 1.0

	// Context key holding the language of the last message
	contextLanguage = "language"

	// Reply type for a change of language
	languageSwitch = "language_switch"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat answers a message within a session, creating the session when it
// does not exist
func (m *Manager) Chat(ctx context.Context, req schema.ChatRequest) (result *schema.ChatResponse, err error) {
	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Chat",
		attribute.String("session", sessionID(req.Session)),
	)
	defer func() { endSpan(err) }()

	return m.chat(ctx, req)
}

// Intent classifies a message without replying to it
func (m *Manager) Intent(ctx context.Context, req schema.IntentRequest) (result *schema.IntentResponse, err error) {
	_, endSpan := otel.StartSpan(m.tracer, ctx, "Intent")
	defer func() { endSpan(err) }()

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, mia.ErrBadParameter.With("message is required")
	}
	lang := m.nlu.Detect(text)
	if req.Language != "" {
		if lang, err = m.nlu.Language(req.Language); err != nil {
			return nil, err
		}
	}
	return &schema.IntentResponse{
		Intent:   m.nlu.Classify(text, lang),
		Language: lang,
		Entities: m.nlu.Extract(text, lang),
	}, nil
}

// UpdateContext merges keys into the context of a session
func (m *Manager) UpdateContext(ctx context.Context, req schema.ContextRequest) (result *schema.MessageResponse, err error) {
	id := sessionID(req.Session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "UpdateContext",
		attribute.String("session", id),
	)
	defer func() { endSpan(err) }()

	if req.Context == nil {
		return nil, mia.ErrBadParameter.With("context is required")
	}
	if _, err := m.sessionStore.UpdateSession(ctx, id, func(s *schema.Session) error {
		s.Merge(req.Context)
		return nil
	}); err != nil {
		return nil, err
	}
	return &schema.MessageResponse{Message: "Context updated successfully", Session: id}, nil
}

// History returns the messages of a session. A session which does not exist
// has an empty history.
func (m *Manager) History(ctx context.Context, session string) (result *schema.HistoryResponse, err error) {
	id := sessionID(session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "History",
		attribute.String("session", id),
	)
	defer func() { endSpan(err) }()

	s, err := m.sessionStore.GetSession(ctx, id)
	if mia.Code(err) == mia.ErrNotFound {
		return &schema.HistoryResponse{Session: id, History: []schema.Message{}}, nil
	} else if err != nil {
		return nil, err
	}
	return &schema.HistoryResponse{
		Session:  id,
		Language: s.Language,
		State:    s.State,
		History:  s.Messages,
		Count:    len(s.Messages),
	}, nil
}

// ClearSession forgets a session and the avatar state that goes with it
func (m *Manager) ClearSession(ctx context.Context, session string) (result *schema.MessageResponse, err error) {
	id := sessionID(session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "ClearSession",
		attribute.String("session", id),
	)
	defer func() { endSpan(err) }()

	if err := m.sessionStore.DeleteSession(ctx, id); err != nil {
		return nil, err
	}
	m.avatars.Delete(id)
	return &schema.MessageResponse{Message: "Session " + id + " cleared successfully", Session: id}, nil
}

// Feedback records a rating of a reply. The rating is stored as submitted.
func (m *Manager) Feedback(ctx context.Context, req schema.FeedbackRequest) (result *schema.MessageResponse, err error) {
	id := sessionID(req.Session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Feedback",
		attribute.String("session", id),
		attribute.Int("rating", req.Rating),
	)
	defer func() { endSpan(err) }()

	feedback := schema.Feedback{
		ID:        uuid.New().String(),
		Session:   id,
		MessageID: req.MessageID,
		Rating:    req.Rating,
		Comment:   req.Feedback,
		Timestamp: time.Now(),
	}
	if err := m.feedbackStore.RecordFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	m.log.Info().
		Str("session", id).
		Str("message", req.MessageID).
		Int("rating", req.Rating).
		Msg("feedback recorded")
	return &schema.MessageResponse{Message: "Feedback recorded successfully", Session: id}, nil
}

// Languages returns the supported languages
func (m *Manager) Languages() *schema.LanguagesResponse {
	languages := m.nlu.Languages()
	return &schema.LanguagesResponse{
		Languages: languages,
		Default:   m.nlu.DefaultLanguage(),
		Count:     len(languages),
	}
}

// SwitchLanguage sets the language of a session and returns the
// confirmation in the new language
func (m *Manager) SwitchLanguage(ctx context.Context, req schema.LanguageRequest) (result *schema.LanguageResponse, err error) {
	id := sessionID(req.Session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "SwitchLanguage",
		attribute.String("session", id),
		attribute.String("language", req.Language),
	)
	defer func() { endSpan(err) }()

	code, err := m.nlu.Language(req.Language)
	if err != nil {
		return nil, err
	}

	result = &schema.LanguageResponse{Session: id, Language: code}
	if _, err := m.sessionStore.UpdateSession(ctx, id, func(s *schema.Session) error {
		result.Previous = s.Language
		s.Language = code
		s.Merge(map[string]any{contextLanguage: code})
		return nil
	}); err != nil {
		return nil, err
	}
	result.Message, _ = m.responder.Template(languageSwitch, code)
	if profile := m.nlu.Profile(code); profile != nil {
		result.VoiceID = profile.VoiceID
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// chat runs the pipeline for one message while holding the session
func (m *Manager) chat(ctx context.Context, req schema.ChatRequest) (*schema.ChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, mia.ErrBadParameter.With("message is required")
	}
	id := sessionID(req.Session)
	lang := m.nlu.Detect(text)

	var response schema.ChatResponse
	if _, err := m.sessionStore.UpdateSession(ctx, id, func(s *schema.Session) error {
		s.Language = lang
		s.Merge(req.Context)
		s.Merge(map[string]any{contextLanguage: lang})

		message := schema.Message{
			ID:          uuid.New().String(),
			Timestamp:   time.Now(),
			UserMessage: text,
			Language:    lang,
		}
		response = schema.ChatResponse{
			Session:   id,
			MessageID: message.ID,
			Language:  lang,
			Timestamp: message.Timestamp,
		}

		if reply, ok := m.topics.Match(text, lang); ok {
			// Special topics have pre-authored replies
			message.AIResponse = reply.Response
			message.Intent = reply.Intent
			message.Confidence = topicConfidence
			message.Entities = schema.NewEntities()
			message.Emotion = reply.Emotion
			message.Animation = reply.Animation
			message.VoiceTone = reply.VoiceTone
			response.Avatar = avatar.FromTopic(reply)
			response.Emotion = reply.Emotion
			response.FollowUp = reply.FollowUp
			m.log.Debug().Str("session", id).Str("topic", reply.Intent).Msg("topic reply")
		} else {
			intent := m.nlu.Classify(text, lang)
			entities := m.nlu.Extract(text, lang)
			message.Intent = intent.Intent
			message.Confidence = intent.Confidence
			message.Entities = entities
			if code, ok := m.nlu.SwitchRequest(text, lang); ok {
				message.AIResponse, _ = m.responder.Template(languageSwitch, code)
				s.Language = code
				s.Merge(map[string]any{contextLanguage: code})
				response.Language = code
			} else {
				message.AIResponse = m.responder.Respond(responder.Request{
					Intent:   intent.Intent,
					Text:     text,
					Language: lang,
					Entities: entities,
					Context:  s.Context,
				})
			}
			response.Avatar = avatar.Instruct(intent.Intent, intent.Confidence, entities)
			message.Animation = response.Avatar.Gesture
			message.VoiceTone = response.Avatar.VoiceTone
		}

		message.Context = maps.Clone(s.Context)
		s.Append(message)

		response.Response = message.AIResponse
		response.Intent = message.Intent
		response.Confidence = message.Confidence
		response.Entities = message.Entities.Clone()
		return nil
	}); err != nil {
		return nil, err
	}

	// Keep the avatar in step with the reply
	m.avatars.Apply(id, response.Avatar)

	return &response, nil
}

// sessionID returns the session a request refers to
func sessionID(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return schema.DefaultSession
	}
	return id
}

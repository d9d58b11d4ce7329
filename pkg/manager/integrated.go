package manager

import (
	"context"
	"strings"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CompleteResponse answers a message with text, speech and an avatar
// animation timed to the speech. When the speech service fails the mock
// speech is used instead.
func (m *Manager) CompleteResponse(ctx context.Context, req schema.CompleteRequest) (result *schema.CompleteResponse, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "CompleteResponse",
		attribute.String("session", sessionID(req.Session)),
	)
	defer func() { endSpan(err) }()

	chat, err := m.chat(ctx, req.ChatRequest)
	if err != nil {
		return nil, err
	}

	result = &schema.CompleteResponse{
		UserMessage: strings.TrimSpace(req.Message),
		Reply:       replyOf(chat),
		Avatar:      chat.Avatar,
		Session:     chat.Session,
		Timestamp:   time.Now(),
	}
	if enabled(req.IncludeVoice) {
		result.Voice = m.speak(ctx, chat.Session, chat.Response, chat.Avatar.VoiceTone, chat.Language, req.VoiceFormat)
		result.Coordination = coordinate(chat.Avatar, result.Voice)
	} else {
		result.Coordination = &schema.AvatarCoordination{
			AvatarInstruction: chat.Avatar,
			TotalTime:         chat.Avatar.Duration,
		}
	}
	return result, nil
}

// QuickResponse answers a message with text and an avatar animation only
func (m *Manager) QuickResponse(ctx context.Context, req schema.ChatRequest) (result *schema.CompleteResponse, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "QuickResponse",
		attribute.String("session", sessionID(req.Session)),
	)
	defer func() { endSpan(err) }()

	chat, err := m.chat(ctx, req)
	if err != nil {
		return nil, err
	}
	return &schema.CompleteResponse{
		UserMessage:  strings.TrimSpace(req.Message),
		Reply:        replyOf(chat),
		Avatar:       chat.Avatar,
		Session:      chat.Session,
		ResponseType: "quick",
		Timestamp:    time.Now(),
	}, nil
}

// VoiceOnly synthesizes text outside of a conversation, with lip-sync
// timing
func (m *Manager) VoiceOnly(ctx context.Context, req schema.VoiceOnlyRequest) (result *schema.VoiceOnlyResponse, err error) {
	id := sessionID(req.Session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "VoiceOnly",
		attribute.String("session", id),
	)
	defer func() { endSpan(err) }()

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, mia.ErrBadParameter.With("text is required")
	}
	tone := req.VoiceTone
	if tone == "" {
		tone = voice.DefaultTone
	}
	lang := m.nlu.Detect(text)
	if req.Language != "" {
		if lang, err = m.nlu.Language(req.Language); err != nil {
			return nil, err
		}
	}

	speech := m.speak(ctx, id, text, tone, lang, "")
	return &schema.VoiceOnlyResponse{
		Text:      text,
		Voice:     speech,
		Session:   id,
		Mock:      speech.Mock,
		Timestamp: time.Now(),
	}, nil
}

// ConversationFlow answers several messages in order within one session.
// Blank messages are skipped but keep their place in the sequence.
func (m *Manager) ConversationFlow(ctx context.Context, req schema.FlowRequest) (result *schema.FlowResponse, err error) {
	id := sessionID(req.Session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "ConversationFlow",
		attribute.String("session", id),
		attribute.Int("messages", len(req.Messages)),
	)
	defer func() { endSpan(err) }()

	if len(req.Messages) == 0 {
		return nil, mia.ErrBadParameter.With("messages array is required")
	}

	includeVoice := enabled(req.IncludeVoice)
	result = &schema.FlowResponse{
		Flow:         make([]schema.FlowItem, 0, len(req.Messages)),
		Session:      id,
		IncludeVoice: includeVoice,
	}
	for i, message := range req.Messages {
		if strings.TrimSpace(message) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chat, err := m.chat(ctx, schema.ChatRequest{Message: message, Session: id, Context: req.Context})
		if err != nil {
			return nil, err
		}
		item := schema.FlowItem{
			Sequence:    i + 1,
			UserMessage: strings.TrimSpace(message),
			Reply:       replyOf(chat),
			Avatar:      chat.Avatar,
			Timestamp:   time.Now(),
		}
		if includeVoice {
			item.Voice = m.speak(ctx, id, chat.Response, chat.Avatar.VoiceTone, chat.Language, "")
		}
		result.Flow = append(result.Flow, item)
	}
	result.Total = len(result.Flow)
	return result, nil
}

// ConversationVoice synthesizes an existing reply with the tone of its
// animation, and times the animation to the speech
func (m *Manager) ConversationVoice(ctx context.Context, req schema.ConversationVoiceRequest) (result *schema.ConversationVoiceResponse, err error) {
	id := sessionID(req.Session)
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "ConversationVoice",
		attribute.String("session", id),
	)
	defer func() { endSpan(err) }()

	text := strings.TrimSpace(req.Response.Text)
	if text == "" {
		return nil, mia.ErrBadParameter.With("reply text is required")
	}
	instruction := schema.AvatarInstruction{
		Expression: "helpful",
		Gesture:    "none",
		VoiceTone:  voice.DefaultTone,
		Duration:   3.0,
	}
	if a := req.Response.Avatar; a != nil {
		instruction.Expression = valueOr(a.Expression, instruction.Expression)
		instruction.Gesture = valueOr(a.Gesture, instruction.Gesture)
		instruction.VoiceTone = valueOr(a.VoiceTone, instruction.VoiceTone)
		if a.Duration > 0 {
			instruction.Duration = a.Duration
		}
	}

	speech, err := m.voice.SynthesizeWithTiming(ctx, schema.SpeechRequest{
		Text:      text,
		VoiceTone: instruction.VoiceTone,
		Language:  m.nlu.Detect(text),
	})
	if err != nil {
		return nil, err
	}
	return &schema.ConversationVoiceResponse{
		Session:      id,
		Response:     req.Response,
		Voice:        speech,
		Coordination: *coordinate(instruction, speech),
		Mock:         speech.Mock,
		Timestamp:    time.Now(),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// speak synthesizes a reply with timing, falling back to the mock speech
// when the speech service fails
func (m *Manager) speak(ctx context.Context, session, text, tone, lang, format string) *schema.Speech {
	speech, err := m.voice.SynthesizeWithTiming(ctx, schema.SpeechRequest{
		Text:         text,
		VoiceTone:    tone,
		Language:     lang,
		OutputFormat: format,
	})
	if err == nil {
		return speech
	}

	m.log.Warn().Err(err).Str("session", session).Str("voice_tone", tone).Msg("speech synthesis failed, using mock speech")
	speech = m.voice.MockSpeech(text, tone)
	speech.Language = lang
	speech.LipSync = voice.LipSync(speech.OptimizedText, speech.DurationEstimate)
	return speech
}

// coordinate times an animation to speech
func coordinate(instruction schema.AvatarInstruction, speech *schema.Speech) *schema.AvatarCoordination {
	return &schema.AvatarCoordination{
		AvatarInstruction: instruction,
		VoiceDuration:     speech.DurationEstimate,
		TotalTime:         max(instruction.Duration, speech.DurationEstimate),
		LipSync:           speech.LipSync,
		Synchronized:      true,
	}
}

// replyOf returns the conversational part of a chat response
func replyOf(chat *schema.ChatResponse) schema.Reply {
	return schema.Reply{
		Text:       chat.Response,
		Intent:     chat.Intent,
		Confidence: chat.Confidence,
		Language:   chat.Language,
		Entities:   chat.Entities,
		MessageID:  chat.MessageID,
		FollowUp:   chat.FollowUp,
	}
}

// enabled returns the value of an optional flag which defaults to true
func enabled(flag *bool) bool {
	return flag == nil || *flag
}

func valueOr(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

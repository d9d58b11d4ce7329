package manager_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	manager "github.com/mutablelogic/go-mia/pkg/manager"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	store "github.com/mutablelogic/go-mia/pkg/store"
	voice "github.com/mutablelogic/go-mia/pkg/voice"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// unavailable is a speech service which always fails
type unavailable struct{}

func (unavailable) Speak(context.Context, string, schema.VoiceProfile, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func newManager(t *testing.T, opts ...manager.Opt) *manager.Manager {
	t.Helper()
	opts = append([]manager.Opt{manager.WithSeed(1), manager.WithRates(0, 0)}, opts...)
	m, err := manager.New(opts...)
	if err != nil {
		t.Fatalf("manager.New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func failingSynthesizer(t *testing.T) manager.Opt {
	t.Helper()
	s, err := voice.New(voice.WithSpeaker(unavailable{}), voice.WithAudioDir(t.TempDir()))
	if err != nil {
		t.Fatalf("voice.New: %v", err)
	}
	return manager.WithSynthesizer(s)
}

///////////////////////////////////////////////////////////////////////////////
// CONVERSATION

func Test_manager_001(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	response, err := m.Chat(context.TODO(), schema.ChatRequest{Message: "Hello", Session: "s1"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("greeting", response.Intent)
	assert.Equal("en", response.Language)
	assert.Equal("s1", response.Session)
	assert.NotEmpty(response.MessageID)
	assert.True(strings.HasPrefix(response.Response, "Hello! I'm Mia"))
	assert.Equal("welcoming", response.Avatar.Gesture)
	assert.NotNil(response.Entities.Devices)

	history, err := m.History(context.TODO(), "s1")
	if assert.NoError(err) {
		assert.Equal(1, history.Count)
		assert.Equal(schema.StateActive, history.State)
		assert.Equal(response.MessageID, history.History[0].ID)
		assert.Equal("en", history.History[0].Context["language"])
	}

	// The avatar follows the reply
	state, err := m.AvatarSession("s1")
	if assert.NoError(err) {
		assert.Equal("welcoming", state.State.Gesture)
	}
}

func Test_manager_002(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	response, err := m.Chat(context.TODO(), schema.ChatRequest{Message: "How do I install the XETA router?"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("xeta_installation", response.Intent)
	assert.Equal(1.0, response.Confidence)
	assert.Equal("default", response.Session)
	assert.Equal("helpful", response.Emotion)
	assert.NotEmpty(response.FollowUp)
	assert.True(strings.HasPrefix(response.Response, "Perfect! I'll help you install your XETA Kit."))
	assert.Equal("explaining", response.Avatar.Gesture)

	history, _ := m.History(context.TODO(), "")
	if assert.Equal(1, history.Count) {
		message := history.History[0]
		assert.Equal("explaining", message.Animation)
		assert.Equal("professional", message.VoiceTone)
		assert.Equal("helpful", message.Emotion)
	}
}

func Test_manager_003(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	response, err := m.Chat(context.TODO(), schema.ChatRequest{Message: "Can you speak Spanish?", Session: "s1"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("es", response.Language)
	assert.Equal("He cambiado al español. ¿Cómo puedo asistirte?", response.Response)

	history, _ := m.History(context.TODO(), "s1")
	assert.Equal("es", history.Language)
}

func Test_manager_004(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	for _, message := range []string{"", "   \t"} {
		_, err := m.Chat(context.TODO(), schema.ChatRequest{Message: message})
		assert.Equal(mia.ErrBadParameter, mia.Code(err))
	}
	history, err := m.History(context.TODO(), "default")
	if assert.NoError(err) {
		assert.Equal(0, history.Count)
		assert.NotNil(history.History)
	}
}

// Clearing a session starts the next message afresh
func Test_manager_005(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	m.UpdateContext(context.TODO(), schema.ContextRequest{Session: "s1", Context: map[string]any{"device": "laptop"}})
	m.Chat(context.TODO(), schema.ChatRequest{Message: "Hello", Session: "s1"})
	m.Chat(context.TODO(), schema.ChatRequest{Message: "Hello", Session: "s2"})

	_, err := m.ClearSession(context.TODO(), "s1")
	assert.NoError(err)
	history, _ := m.History(context.TODO(), "s1")
	assert.Equal(0, history.Count)
	_, err = m.AvatarSession("s1")
	assert.Equal(mia.ErrNotFound, mia.Code(err))

	// Other sessions are untouched
	history, _ = m.History(context.TODO(), "s2")
	assert.Equal(1, history.Count)

	m.Chat(context.TODO(), schema.ChatRequest{Message: "Thanks", Session: "s1"})
	history, _ = m.History(context.TODO(), "s1")
	if assert.Equal(1, history.Count) {
		assert.NotContains(history.History[0].Context, "device")
	}
}

func Test_manager_006(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	_, err := m.UpdateContext(context.TODO(), schema.ContextRequest{Session: "s1"})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))

	_, err = m.UpdateContext(context.TODO(), schema.ContextRequest{Session: "s1", Context: map[string]any{"device": "laptop", "plan": "pro"}})
	assert.NoError(err)
	m.UpdateContext(context.TODO(), schema.ContextRequest{Session: "s1", Context: map[string]any{"plan": "free"}})
	m.Chat(context.TODO(), schema.ChatRequest{Message: "Hello", Session: "s1", Context: map[string]any{"os": "linux"}})

	history, _ := m.History(context.TODO(), "s1")
	if assert.Equal(1, history.Count) {
		context := history.History[0].Context
		assert.Equal("laptop", context["device"])
		assert.Equal("free", context["plan"])
		assert.Equal("linux", context["os"])
	}
}

// Ratings are stored as submitted
func Test_manager_007(t *testing.T) {
	assert := assert.New(t)
	feedback := store.NewMemoryFeedbackStore()
	m := newManager(t, manager.WithFeedbackStore(feedback))

	_, err := m.Feedback(context.TODO(), schema.FeedbackRequest{Session: "s1", MessageID: "m1", Rating: 42, Feedback: "odd"})
	assert.NoError(err)
	_, err = m.Feedback(context.TODO(), schema.FeedbackRequest{Rating: -3})
	assert.NoError(err)

	list, _ := feedback.ListFeedback(context.TODO(), "s1")
	if assert.Len(list, 1) {
		assert.Equal(42, list[0].Rating)
		assert.Equal("m1", list[0].MessageID)
		assert.Equal("odd", list[0].Comment)
	}
	list, _ = feedback.ListFeedback(context.TODO(), "default")
	if assert.Len(list, 1) {
		assert.Equal(-3, list[0].Rating)
	}
}

// Concurrent messages to one session are all kept
func Test_manager_008(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.Chat(context.TODO(), schema.ChatRequest{Message: fmt.Sprint("Hello ", i), Session: "shared"})
			assert.NoError(err)
		}(i)
	}
	wg.Wait()

	history, _ := m.History(context.TODO(), "shared")
	assert.Equal(20, history.Count)
}

func Test_manager_009(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	languages := m.Languages()
	assert.Equal("en", languages.Default)
	assert.GreaterOrEqual(languages.Count, 2)

	result, err := m.SwitchLanguage(context.TODO(), schema.LanguageRequest{Session: "s1", Language: "Spanish"})
	if assert.NoError(err) {
		assert.Equal("en", result.Previous)
		assert.Equal("es", result.Language)
		assert.Equal("He cambiado al español. ¿Cómo puedo asistirte?", result.Message)
	}
	history, _ := m.History(context.TODO(), "s1")
	assert.Equal("es", history.Language)

	_, err = m.SwitchLanguage(context.TODO(), schema.LanguageRequest{Language: "fr"})
	assert.Equal(mia.ErrNotFound, mia.Code(err))
	_, err = m.SwitchLanguage(context.TODO(), schema.LanguageRequest{})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
}

func Test_manager_010(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	result, err := m.Intent(context.TODO(), schema.IntentRequest{Message: "URGENT: my laptop is broken and I'm frustrated"})
	if assert.NoError(err) {
		assert.Equal(schema.UrgencyUrgent, result.Urgency)
		assert.Contains(result.Entities.Emotions, "frustrated")
		assert.Equal("en", result.Language)
	}
	result, err = m.Intent(context.TODO(), schema.IntentRequest{Message: "hola", Language: "es-MX"})
	if assert.NoError(err) {
		assert.Equal("es", result.Language)
	}
	_, err = m.Intent(context.TODO(), schema.IntentRequest{})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))

	// Classification does not touch sessions
	history, _ := m.History(context.TODO(), "default")
	assert.Equal(0, history.Count)
}

///////////////////////////////////////////////////////////////////////////////
// INTEGRATED

func Test_manager_011(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)
	assert.True(m.Mock())

	result, err := m.CompleteResponse(context.TODO(), schema.CompleteRequest{ChatRequest: schema.ChatRequest{Message: "Hello", Session: "s1"}})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("Hello", result.UserMessage)
	assert.Equal("greeting", result.Reply.Intent)
	if assert.NotNil(result.Voice) && assert.NotNil(result.Coordination) {
		assert.True(result.Voice.Mock)
		assert.NotNil(result.Voice.LipSync)
		assert.True(result.Coordination.Synchronized)
		assert.Equal(result.Voice.DurationEstimate, result.Coordination.VoiceDuration)
		assert.Equal(max(result.Avatar.Duration, result.Voice.DurationEstimate), result.Coordination.TotalTime)
	}

	// Without voice
	off := false
	result, err = m.CompleteResponse(context.TODO(), schema.CompleteRequest{ChatRequest: schema.ChatRequest{Message: "Hello"}, IncludeVoice: &off})
	if assert.NoError(err) {
		assert.Nil(result.Voice)
		assert.False(result.Coordination.Synchronized)
	}
}

// A failing speech service is replaced by the mock
func Test_manager_012(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t, failingSynthesizer(t))
	assert.False(m.Mock())

	result, err := m.CompleteResponse(context.TODO(), schema.CompleteRequest{ChatRequest: schema.ChatRequest{Message: "Hello"}})
	if assert.NoError(err) && assert.NotNil(result.Voice) {
		assert.True(result.Voice.Mock)
		assert.True(result.Voice.Success)
		assert.Equal("mock_audio_data_base64", result.Voice.AudioBase64)
	}

	only, err := m.VoiceOnly(context.TODO(), schema.VoiceOnlyRequest{Text: "Restart your router"})
	if assert.NoError(err) {
		assert.True(only.Mock)
		assert.Equal("default", only.Session)
	}

	// Voice routes report the failure
	_, err = m.ConversationVoice(context.TODO(), schema.ConversationVoiceRequest{Response: schema.ReplyText{Text: "Hello"}})
	assert.Equal(mia.ErrServiceUnavailable, mia.Code(err))
	speech, err := m.Synthesize(context.TODO(), schema.SpeechRequest{Text: "Hello"})
	assert.Equal(mia.ErrServiceUnavailable, mia.Code(err))
	if assert.NotNil(speech) {
		assert.False(speech.Success)
		assert.NotEmpty(speech.Error)
	}
	test, err := m.TestConnection(context.TODO())
	if assert.NoError(err) {
		assert.Equal("degraded", test.Status)
		assert.False(test.Test.Success)
	}
}

func Test_manager_013(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	result, err := m.QuickResponse(context.TODO(), schema.ChatRequest{Message: "Thank you so much"})
	if assert.NoError(err) {
		assert.Equal("quick", result.ResponseType)
		assert.Nil(result.Voice)
		assert.Nil(result.Coordination)
	}

	_, err = m.VoiceOnly(context.TODO(), schema.VoiceOnlyRequest{Text: " "})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
	only, err := m.VoiceOnly(context.TODO(), schema.VoiceOnlyRequest{Text: "Hello there", Session: "s1"})
	if assert.NoError(err) {
		assert.Equal("professional", only.Voice.VoiceTone)
		assert.Equal(0.8, only.Voice.DurationEstimate)
	}
}

func Test_manager_014(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	_, err := m.ConversationFlow(context.TODO(), schema.FlowRequest{})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))

	off := false
	result, err := m.ConversationFlow(context.TODO(), schema.FlowRequest{
		Messages:     []string{"Hello", "  ", "Thank you"},
		Session:      "flow",
		IncludeVoice: &off,
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(2, result.Total)
	if assert.Len(result.Flow, 2) {
		assert.Equal(1, result.Flow[0].Sequence)
		assert.Equal(3, result.Flow[1].Sequence)
		assert.Nil(result.Flow[1].Voice)
	}
	history, _ := m.History(context.TODO(), "flow")
	assert.Equal(2, history.Count)

	result, err = m.ConversationFlow(context.TODO(), schema.FlowRequest{Messages: []string{"Hello"}})
	if assert.NoError(err) && assert.Len(result.Flow, 1) {
		assert.True(result.IncludeVoice)
		assert.NotNil(result.Flow[0].Voice)
	}
}

func Test_manager_015(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	_, err := m.ConversationVoice(context.TODO(), schema.ConversationVoiceRequest{})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))

	result, err := m.ConversationVoice(context.TODO(), schema.ConversationVoiceRequest{
		Session: "s1",
		Response: schema.ReplyText{
			Text:   "Let me check that for you",
			Avatar: &schema.AvatarInstruction{Expression: "thinking", VoiceTone: "warm"},
		},
	})
	if assert.NoError(err) {
		assert.True(result.Mock)
		assert.Equal("thinking", result.Coordination.Expression)
		assert.Equal("none", result.Coordination.Gesture)
		assert.Equal(3.0, result.Coordination.Duration)
		assert.Equal("warm", result.Voice.VoiceTone)
	}
}

///////////////////////////////////////////////////////////////////////////////
// KNOWLEDGE, AVATAR AND VOICE

func Test_manager_016(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	_, err := m.Search(schema.SearchRequest{Query: " "})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
	result, err := m.Search(schema.SearchRequest{Query: "wifi connection problem"})
	if assert.NoError(err) {
		assert.Equal(len(result.Solutions), result.Count)
		assert.True(slices.ContainsFunc(result.Solutions, func(s schema.Solution) bool {
			return s.ID == "wifi_connection_issues"
		}))
	}

	_, err = m.Solution("missing")
	assert.Equal(mia.ErrNotFound, mia.Code(err))
	solution, err := m.Solution("wifi_connection_issues")
	if assert.NoError(err) {
		assert.NotNil(solution.Related)
	}

	_, err = m.Category("missing")
	assert.Equal(mia.ErrNotFound, mia.Code(err))
	_, err = m.DiagnosticQuestions("missing")
	assert.Equal(mia.ErrNotFound, mia.Code(err))
	_, err = m.QuickFix(schema.QuickFixRequest{})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
	_, err = m.SearchKeywords(schema.KeywordsRequest{Keywords: []string{" "}})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))

	categories := m.Categories()
	assert.Equal(len(categories.Categories), categories.Count)
}

func Test_manager_017(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	_, err := m.ApplyPreset("missing", schema.PresetRequest{})
	assert.Equal(mia.ErrNotFound, mia.Code(err))
	_, err = m.SetExpression(schema.ExpressionRequest{Expression: "grumpy"})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))

	update, err := m.ApplyPreset("greeting", schema.PresetRequest{Session: "s1"})
	if assert.NoError(err) {
		assert.Equal("s1", update.Session)
	}
	state, err := m.AvatarSession("s1")
	if assert.NoError(err) {
		assert.Equal("greeting", state.State.Preset)
	}
	m.ClearAvatarSession("s1")
	_, err = m.AvatarSession("s1")
	assert.Equal(mia.ErrNotFound, mia.Code(err))

	assert.Equal(6, m.AvatarPresets().Count)
	assert.Equal("Mia", m.AvatarStatus().Avatar.Name)
}

func Test_manager_018(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t)

	voices := m.Voices()
	assert.Equal(8, voices.Count)
	assert.Equal(voice.DefaultVoice, voices.Current)

	_, err := m.SetVoice(schema.VoiceProfileRequest{Key: "missing"})
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
	profile, err := m.SetVoice(schema.VoiceProfileRequest{Key: "warm_friendly_es"})
	if assert.NoError(err) {
		assert.Equal("warm_friendly_es", profile.Current)
	}

	test, err := m.TestConnection(context.TODO())
	if assert.NoError(err) {
		assert.True(test.Mock)
		assert.Equal("degraded", test.Status)
	}

	batch, err := m.Batch(context.TODO(), schema.BatchRequest{Texts: []string{"one", "", "three"}})
	if assert.NoError(err) {
		assert.Equal(2, batch.Total)
		assert.Equal("professional", batch.VoiceTone)
	}
	assert.Equal(6, m.VoicePresets().Count)
}

// Run stops with its context
func Test_manager_019(t *testing.T) {
	assert := assert.New(t)
	m := newManager(t, manager.WithTTL(time.Millisecond), manager.WithPurgeInterval(5*time.Millisecond))
	m.Chat(context.TODO(), schema.ChatRequest{Message: "Hello"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(m.Run(ctx))

	history, _ := m.History(context.TODO(), "default")
	assert.Equal(0, history.Count)
}

func Test_manager_020(t *testing.T) {
	assert := assert.New(t)
	_, err := manager.New(manager.WithRates(2, 0))
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
	_, err = manager.New(manager.WithSessionStore(nil))
	assert.Equal(mia.ErrBadParameter, mia.Code(err))
	_, err = manager.New(manager.WithDefaultLanguage("xx"))
	assert.Error(err)
}

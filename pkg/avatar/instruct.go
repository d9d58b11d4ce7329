/*
avatar maps replies to animation instructions for the external renderer,
and keeps the last state applied to each avatar session.
*/
package avatar

import (
	"slices"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	Expressions = []string{"neutral", "understanding", "helpful", "thinking", "explaining", "speaking", "attentive", "celebrating"}
	Gestures    = []string{"none", "welcoming", "explaining", "pointing", "nodding", "celebration", "supportive", "thinking_pose"}
	VoiceTones  = []string{"professional", "warm", "focused", "clear", "confirming", "excited", "empathetic", "uncertain", "confident"}
)

var (
	// Values accepted but not listed in the avatar status
	hiddenGestures   = []string{"none"}
	hiddenVoiceTones = []string{"uncertain", "confident"}

	// Topic bundle tones which have no avatar equivalent
	topicVoiceTones = map[string]string{
		"enthusiastic": "excited",
		"encouraging":  "excited",
		"supportive":   "empathetic",
	}
)

var (
	defaultInstruction = schema.AvatarInstruction{Expression: "helpful", Gesture: "none", VoiceTone: "professional", Duration: 3.0}

	intentInstructions = map[string]schema.AvatarInstruction{
		"greeting":        {Expression: "helpful", Gesture: "welcoming", VoiceTone: "warm", Duration: 3.5},
		"problem_solving": {Expression: "thinking", Gesture: "explaining", VoiceTone: "focused", Duration: 4.0},
		"explanation":     {Expression: "explaining", Gesture: "pointing", VoiceTone: "clear", Duration: 5.0},
		"how_to":          {Expression: "explaining", Gesture: "pointing", VoiceTone: "clear", Duration: 5.0},
		"confirmation":    {Expression: "understanding", Gesture: "nodding", VoiceTone: "confirming", Duration: 2.5},
		"gratitude":       {Expression: "celebrating", Gesture: "celebration", VoiceTone: "excited", Duration: 3.0},
		"denial":          {Expression: "understanding", Gesture: "supportive", VoiceTone: "empathetic", Duration: 3.5},
	}

	negativeEmotions = []string{"frustrated", "angry", "stressed"}
	positiveEmotions = []string{"happy", "pleased", "grateful"}
)

const (
	lowConfidence  = 0.3
	highConfidence = 0.8
	urgentDuration = 2.0
	topicDuration  = 3.0
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Instruct returns the animation for a classified reply. The intent sets the
// base instruction, which is then adjusted for confidence, emotion and
// urgency in that order.
func Instruct(intent string, confidence float64, entities schema.Entities) schema.AvatarInstruction {
	instruction, exists := intentInstructions[intent]
	if !exists {
		instruction = defaultInstruction
	}

	// Confidence
	if confidence < lowConfidence {
		instruction.Expression = "thinking"
		instruction.VoiceTone = "uncertain"
	} else if confidence > highConfidence {
		instruction.VoiceTone = "confident"
	}

	// Emotion
	emotions := entities.Get(schema.EntityEmotions)
	if containsAny(emotions, negativeEmotions) {
		instruction.VoiceTone = "empathetic"
		instruction.Expression = "understanding"
	} else if containsAny(emotions, positiveEmotions) {
		instruction.VoiceTone = "excited"
		instruction.Expression = "celebrating"
	}

	// Urgency
	if len(entities.Get(schema.EntityUrgency)) > 0 {
		instruction.VoiceTone = "focused"
		instruction.Duration = urgentDuration
	}

	return instruction
}

// FromTopic returns the animation for a pre-authored topic reply
func FromTopic(reply *schema.TopicReply) schema.AvatarInstruction {
	instruction := schema.AvatarInstruction{
		Expression: "helpful",
		Gesture:    "none",
		VoiceTone:  reply.VoiceTone,
		Duration:   topicDuration,
	}
	if slices.Contains(Gestures, reply.Animation) {
		instruction.Gesture = reply.Animation
	}
	if tone, exists := topicVoiceTones[instruction.VoiceTone]; exists {
		instruction.VoiceTone = tone
	}
	if !slices.Contains(VoiceTones, instruction.VoiceTone) {
		instruction.VoiceTone = defaultInstruction.VoiceTone
	}
	return instruction
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func without(values, hidden []string) []string {
	return slices.DeleteFunc(slices.Clone(values), func(v string) bool {
		return slices.Contains(hidden, v)
	})
}

func containsAny(values, set []string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return slices.Contains(set, v)
	})
}

package manager

import (
	"time"

	// Packages
	schema "github.com/mutablelogic/go-mia/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// AvatarStatus describes the avatar and what it can render
func (m *Manager) AvatarStatus() *schema.AvatarStatusResponse {
	return &schema.AvatarStatusResponse{
		Avatar:    m.avatars.Status(),
		Timestamp: time.Now(),
	}
}

func (m *Manager) SetExpression(req schema.ExpressionRequest) (*schema.AvatarUpdate, error) {
	return m.avatars.SetExpression(req)
}

func (m *Manager) SetGesture(req schema.GestureRequest) (*schema.AvatarUpdate, error) {
	return m.avatars.SetGesture(req)
}

func (m *Manager) SetVoiceTone(req schema.VoiceToneRequest) (*schema.AvatarUpdate, error) {
	return m.avatars.SetVoiceTone(req)
}

func (m *Manager) PlaySequence(req schema.SequenceRequest) (*schema.AvatarUpdate, error) {
	return m.avatars.PlaySequence(req)
}

// AvatarSession returns the avatar state of a session
func (m *Manager) AvatarSession(session string) (*schema.AvatarResponse, error) {
	id := sessionID(session)
	state, err := m.avatars.Get(id)
	if err != nil {
		return nil, err
	}
	return &schema.AvatarResponse{
		Session:   id,
		State:     *state,
		Timestamp: time.Now(),
	}, nil
}

// ClearAvatarSession forgets the avatar state of a session
func (m *Manager) ClearAvatarSession(session string) *schema.MessageResponse {
	id := sessionID(session)
	m.avatars.Delete(id)
	return &schema.MessageResponse{
		Message: "Avatar session " + id + " cleared successfully",
		Session: id,
	}
}

// AvatarPresets returns the named avatar presets
func (m *Manager) AvatarPresets() *schema.PresetsResponse {
	presets := m.avatars.Presets()
	return &schema.PresetsResponse{
		Presets: presets,
		Count:   len(presets),
	}
}

func (m *Manager) ApplyPreset(name string, req schema.PresetRequest) (*schema.AvatarUpdate, error) {
	return m.avatars.ApplyPreset(name, req)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_TypeEnabled(t *testing.T) {
	s := Settings{TaskUpdates: true, ChatMessages: false, Mentions: true, Meetings: false}

	tests := []struct {
		typ     Type
		enabled bool
		ok      bool
	}{
		{TypeTask, true, true},
		{TypeMessage, false, true},
		{TypeMention, true, true},
		{TypeMeeting, false, true},
		{TypeReminder, false, true},
		{Type("billing"), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			enabled, ok := s.TypeEnabled(tt.typ)
			assert.Equal(t, tt.enabled, enabled)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSettings_ReminderFollowsMeetings(t *testing.T) {
	on := Settings{Meetings: true}
	enabled, _ := on.TypeEnabled(TypeReminder)
	assert.True(t, enabled)
}

func TestSettingsPatch_Apply(t *testing.T) {
	off := false
	got := SettingsPatch{Email: &off}.Apply(DefaultSettings())

	assert.False(t, got.Email)
	assert.True(t, got.Push)
	assert.True(t, got.ChatMessages)
}

func TestRecipient_EffectiveSettings(t *testing.T) {
	assert.Equal(t, DefaultSettings(), Recipient{ID: "u1"}.EffectiveSettings())

	stored := Settings{Push: true}
	assert.Equal(t, stored, Recipient{ID: "u1", Settings: &stored}.EffectiveSettings())
}

func TestNewEmailJob(t *testing.T) {
	job := NewEmailJob("j1", "Frooxi Workspace", "noreply@frooxi.com", "a@b.c", "Hi", "line1\nline2")

	assert.Equal(t, `"Frooxi Workspace" <noreply@frooxi.com>`, job.From)
	assert.Equal(t, "line1\nline2", job.Text)
	assert.Equal(t, "line1<br>line2", job.HTML)
}

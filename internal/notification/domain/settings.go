package domain

// Settings per-user delivery preferences
type Settings struct {
	Email        bool `json:"email" bson:"email"`
	Push         bool `json:"push" bson:"push"`
	TaskUpdates  bool `json:"taskUpdates" bson:"task_updates"`
	Mentions     bool `json:"mentions" bson:"mentions"`
	Meetings     bool `json:"meetings" bson:"meetings"`
	ChatMessages bool `json:"chatMessages" bson:"chat_messages"`
}

// DefaultSettings used when a user never stored preferences
func DefaultSettings() Settings {
	return Settings{
		Email:        true,
		Push:         true,
		TaskUpdates:  true,
		Mentions:     true,
		Meetings:     true,
		ChatMessages: true,
	}
}

// TypeEnabled type specific flag; ok is false for unknown types
func (s Settings) TypeEnabled(t Type) (enabled bool, ok bool) {
	switch t {
	case TypeTask:
		return s.TaskUpdates, true
	case TypeMessage:
		return s.ChatMessages, true
	case TypeMention:
		return s.Mentions, true
	// reminder 與 meeting 共用同一個開關
	case TypeMeeting, TypeReminder:
		return s.Meetings, true
	}
	return false, false
}

// SettingsPatch partial update, nil fields keep the stored value
type SettingsPatch struct {
	Email        *bool `json:"email"`
	Push         *bool `json:"push"`
	TaskUpdates  *bool `json:"taskUpdates"`
	Mentions     *bool `json:"mentions"`
	Meetings     *bool `json:"meetings"`
	ChatMessages *bool `json:"chatMessages"`
}

// Apply merge patch onto s
func (p SettingsPatch) Apply(s Settings) Settings {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.Email, p.Email)
	set(&s.Push, p.Push)
	set(&s.TaskUpdates, p.TaskUpdates)
	set(&s.Mentions, p.Mentions)
	set(&s.Meetings, p.Meetings)
	set(&s.ChatMessages, p.ChatMessages)
	return s
}

// Recipient the slice of a user document the gate needs
type Recipient struct {
	ID       string    `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Email    string    `json:"email" bson:"email"`
	Settings *Settings `json:"settings,omitempty" bson:"notification_settings,omitempty"`
}

// EffectiveSettings stored settings or the all enabled default
func (r Recipient) EffectiveSettings() Settings {
	if r.Settings == nil {
		return DefaultSettings()
	}
	return *r.Settings
}

// Package models defines the agenda domain types shared across layers.
package models

import "time"

// AgendaTopic is a single timed agenda item. Duration is a free-text label
// such as "15 min", not a machine-parsed time unit.
type AgendaTopic struct {
	Name     string `json:"name" yaml:"name"`
	Duration string `json:"duration" yaml:"duration"`
}

// Agenda is the three-field structure presented to and edited by the user.
// Topics may be empty but is never null in API output.
type Agenda struct {
	Opening string        `json:"opening" yaml:"opening"`
	Topics  []AgendaTopic `json:"topics" yaml:"topics"`
	WrapUp  string        `json:"wrapUp" yaml:"wrap_up"`
}

// Clone returns a deep copy, so drafts handed out never share topic slices
// with their source.
func (a Agenda) Clone() Agenda {
	topics := make([]AgendaTopic, len(a.Topics))
	copy(topics, a.Topics)
	return Agenda{Opening: a.Opening, Topics: topics, WrapUp: a.WrapUp}
}

// AgendaRecord is the persisted superset of an Agenda. The store generates
// ID, ShareToken, and the timestamps on insert.
type AgendaRecord struct {
	ID              string        `json:"id"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	UserID          string        `json:"user_id,omitempty"`
	MeetingTitle    string        `json:"meeting_title"`
	Opening         string        `json:"opening"`
	Topics          []AgendaTopic `json:"topics"`
	WrapUp          string        `json:"wrap_up"`
	IsPublic        bool          `json:"is_public"`
	ShareToken      string        `json:"share_token"`
	ViewCount       int           `json:"view_count"`
	MeetingDate     *time.Time    `json:"meeting_date,omitempty"`
	MeetingDuration *int          `json:"meeting_duration,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

// Agenda projects the editable three-field shape, discarding every other
// persisted field.
func (r *AgendaRecord) Agenda() Agenda {
	return Agenda{Opening: r.Opening, Topics: r.Topics, WrapUp: r.WrapUp}.Clone()
}

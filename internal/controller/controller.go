// Package controller models the client generate/edit/save/share lifecycle as
// a pure state machine: a single immutable state record plus a transition
// function, testable without any rendering surface.
package controller

import "github.com/starford/ansuz/internal/models"

// ViewMode selects which UI surface is shown.
type ViewMode string

const (
	ModeEmpty    ViewMode = "empty"
	ModeTemplate ViewMode = "template"
	ModeEditor   ViewMode = "editor"
	ModePreview  ViewMode = "preview"
)

// SavedMeta identifies a persisted record.
type SavedMeta struct {
	ID         string
	ShareToken string
}

// State is the whole controller state. Reduce replaces it atomically; there
// is no partial or interleaved mutation.
type State struct {
	ViewMode     ViewMode
	Agenda       *models.Agenda
	MeetingTitle string
	Saved        *SavedMeta
	Loading      bool
	Saving       bool
	Error        string
}

// Initial returns the empty starting state.
func Initial() State {
	return State{ViewMode: ModeEmpty}
}

// Event is a controller input. Exactly one concrete event type applies per
// dispatch.
type Event interface {
	event()
}

// OpenTemplates activates the template picker overlay.
type OpenTemplates struct{}

// SelectTemplate loads a draft from a catalog template, bypassing AI
// generation entirely.
type SelectTemplate struct {
	Agenda       models.Agenda
	MeetingTitle string
}

// GenerateStart begins agenda generation for a meeting title.
type GenerateStart struct {
	MeetingTitle string
}

// GenerateSuccess delivers a generated agenda draft.
type GenerateSuccess struct {
	Agenda models.Agenda
}

// GenerateError reports a failed generation; the draft is discarded.
type GenerateError struct {
	Message string
}

// UpdateAgenda replaces the draft with a locally edited version.
type UpdateAgenda struct {
	Agenda models.Agenda
}

// SaveStart begins persisting the current draft.
type SaveStart struct{}

// SaveSuccess carries the server-side projection of the saved record;
// the draft is replaced with it rather than the pre-save client copy.
type SaveSuccess struct {
	Saved        SavedMeta
	Agenda       models.Agenda
	MeetingTitle string
}

// SaveError reports a failed save; the draft stays editable.
type SaveError struct {
	Message string
}

// LoadSharedStart begins resolving a share token found at page load.
type LoadSharedStart struct{}

// LoadSharedSuccess delivers a shared record for read-only preview.
type LoadSharedSuccess struct {
	Agenda       models.Agenda
	MeetingTitle string
	Saved        SavedMeta
}

// LoadSharedError reports a failed shared load; the view is unchanged.
type LoadSharedError struct {
	Message string
}

// EditFromPreview re-enables mutation of the existing draft. This is the
// only path out of preview; the preview draft is never edited directly.
type EditFromPreview struct{}

// ResetHome clears all fields back to the initial state.
type ResetHome struct{}

func (OpenTemplates) event()     {}
func (SelectTemplate) event()    {}
func (GenerateStart) event()     {}
func (GenerateSuccess) event()   {}
func (GenerateError) event()     {}
func (UpdateAgenda) event()      {}
func (SaveStart) event()         {}
func (SaveSuccess) event()       {}
func (SaveError) event()         {}
func (LoadSharedStart) event()   {}
func (LoadSharedSuccess) event() {}
func (LoadSharedError) event()   {}
func (EditFromPreview) event()   {}
func (ResetHome) event()         {}

// Reduce applies an event and returns the next state. The input state is
// never mutated, and agendas entering the state are deep-copied so later
// edits cannot reach back into templates or server responses.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case OpenTemplates:
		s.ViewMode = ModeTemplate
		s.Error = ""

	case SelectTemplate:
		a := ev.Agenda.Clone()
		s.ViewMode = ModeEditor
		s.Agenda = &a
		s.MeetingTitle = ev.MeetingTitle
		s.Saved = nil
		s.Error = ""

	case GenerateStart:
		s.ViewMode = ModeEditor
		s.Agenda = nil
		s.MeetingTitle = ev.MeetingTitle
		s.Saved = nil
		s.Loading = true
		s.Error = ""

	case GenerateSuccess:
		a := ev.Agenda.Clone()
		s.ViewMode = ModeEditor
		s.Agenda = &a
		s.Loading = false

	case GenerateError:
		s.ViewMode = ModeEmpty
		s.Agenda = nil
		s.Loading = false
		s.Error = ev.Message

	case UpdateAgenda:
		a := ev.Agenda.Clone()
		s.Agenda = &a

	case SaveStart:
		s.Saving = true
		s.Error = ""

	case SaveSuccess:
		a := ev.Agenda.Clone()
		saved := ev.Saved
		s.ViewMode = ModePreview
		s.Agenda = &a
		s.MeetingTitle = ev.MeetingTitle
		s.Saved = &saved
		s.Saving = false

	case SaveError:
		s.Saving = false
		s.Error = ev.Message

	case LoadSharedStart:
		s.Loading = true
		s.Error = ""

	case LoadSharedSuccess:
		a := ev.Agenda.Clone()
		saved := ev.Saved
		s.ViewMode = ModePreview
		s.Agenda = &a
		s.MeetingTitle = ev.MeetingTitle
		s.Saved = &saved
		s.Loading = false

	case LoadSharedError:
		s.Loading = false
		s.Error = ev.Message

	case EditFromPreview:
		s.ViewMode = ModeEditor

	case ResetHome:
		s = Initial()
	}
	return s
}

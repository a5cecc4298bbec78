package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
	"github.com/starford/ansuz/internal/templates"
)

// GenerateAgendaRequest is the request body for POST /api/generate-agenda.
type GenerateAgendaRequest struct {
	MeetingTitle string `json:"meetingTitle"`
}

// CreateAgendaRequest is the request body for POST /api/agendas.
// IsPublic defaults to true when omitted.
type CreateAgendaRequest struct {
	MeetingTitle    string               `json:"meeting_title"`
	Opening         string               `json:"opening"`
	Topics          []models.AgendaTopic `json:"topics"`
	WrapUp          string               `json:"wrap_up"`
	UserID          string               `json:"user_id,omitempty"`
	IsPublic        *bool                `json:"is_public,omitempty"`
	MeetingDate     *time.Time           `json:"meeting_date,omitempty"`
	MeetingDuration *int                 `json:"meeting_duration,omitempty"`
	Tags            []string             `json:"tags,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

// Validate checks the request before it reaches the store.
func (r CreateAgendaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MeetingTitle, validation.Required),
	)
}

func (r CreateAgendaRequest) createParams() store.CreateParams {
	return store.CreateParams{
		MeetingTitle:    r.MeetingTitle,
		Opening:         r.Opening,
		Topics:          r.Topics,
		WrapUp:          r.WrapUp,
		UserID:          r.UserID,
		IsPublic:        r.IsPublic,
		MeetingDate:     r.MeetingDate,
		MeetingDuration: r.MeetingDuration,
		Tags:            r.Tags,
		Notes:           r.Notes,
	}
}

// UpdateAgendaRequest is the request body for PUT /api/agendas/{id}.
// Omitted fields are left unchanged.
type UpdateAgendaRequest struct {
	MeetingTitle    *string              `json:"meeting_title,omitempty"`
	Opening         *string              `json:"opening,omitempty"`
	Topics          []models.AgendaTopic `json:"topics,omitempty"`
	WrapUp          *string              `json:"wrap_up,omitempty"`
	IsPublic        *bool                `json:"is_public,omitempty"`
	MeetingDate     *time.Time           `json:"meeting_date,omitempty"`
	MeetingDuration *int                 `json:"meeting_duration,omitempty"`
	Tags            []string             `json:"tags,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
}

func (r UpdateAgendaRequest) updateParams() store.UpdateParams {
	return store.UpdateParams{
		MeetingTitle:    r.MeetingTitle,
		Opening:         r.Opening,
		Topics:          r.Topics,
		WrapUp:          r.WrapUp,
		IsPublic:        r.IsPublic,
		MeetingDate:     r.MeetingDate,
		MeetingDuration: r.MeetingDuration,
		Tags:            r.Tags,
		Notes:           r.Notes,
	}
}

// AgendaListResponse wraps a user's agenda listing.
type AgendaListResponse struct {
	Agendas []models.AgendaRecord `json:"agendas"`
}

// TemplateListResponse wraps the template catalog.
type TemplateListResponse struct {
	Templates []templates.Item `json:"templates"`
}

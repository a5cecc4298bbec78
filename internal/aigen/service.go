// Package aigen turns free-text meeting titles into validated structured
// agendas via a single chat-completion call.
package aigen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// Service generates agendas through a Completer.
type Service struct {
	completer Completer
}

// NewService creates a generation service.
func NewService(c Completer) *Service {
	return &Service{completer: c}
}

// ValidTitle applies the heuristic input filter: after trimming, the title
// must have at least 4 characters, at least 2 whitespace-separated tokens,
// and at least one letter. Titles failing this are too generic or
// numeric/symbolic-only to produce a meaningful agenda.
func ValidTitle(title string) bool {
	title = strings.TrimSpace(title)
	if len(title) < 4 {
		return false
	}
	if len(strings.Fields(title)) < 2 {
		return false
	}
	return hasLetter(title)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// Generate produces an agenda for the given meeting title. Invalid titles
// fail with apperr.ErrInvalidTitle before any external call. Exactly one
// completion call is attempted; its output is extracted, parsed, and
// structurally validated, failing with apperr.ErrMalformedResponse or
// apperr.ErrBadStructure respectively. On success the agenda is returned
// with its content unmodified.
func (s *Service) Generate(ctx context.Context, meetingTitle string) (models.Agenda, error) {
	title := strings.TrimSpace(meetingTitle)
	if !ValidTitle(title) {
		return models.Agenda{}, apperr.ErrInvalidTitle
	}

	raw, err := s.completer.Complete(ctx, systemPrompt, buildUserPrompt(title))
	if err != nil {
		return models.Agenda{}, err
	}
	return ParseAgenda(raw)
}

// ParseAgenda extracts and structurally validates an agenda from raw model
// output. Text that does not start with "{" is first narrowed to the span
// between the first "{" and the last "}". Failures are
// apperr.ErrMalformedResponse (not JSON) or apperr.ErrBadStructure (JSON
// with the wrong shape).
func ParseAgenda(raw string) (models.Agenda, error) {
	jsonText := strings.TrimSpace(raw)
	if !strings.HasPrefix(jsonText, "{") {
		jsonText = extractJSON(jsonText)
	}

	var parsed any
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return models.Agenda{}, apperr.ErrMalformedResponse
	}

	agenda, ok := decodeAgenda(parsed)
	if !ok {
		return models.Agenda{}, apperr.ErrBadStructure
	}
	return agenda, nil
}

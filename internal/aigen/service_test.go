package aigen

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
)

// stubCompleter returns a canned response (or error) and counts calls.
type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestGenerate_RejectsInvalidTitlesBeforeCalling(t *testing.T) {
	cases := []struct {
		name  string
		title string
	}{
		{"too short", "abc"},
		{"single word", "Standup"},
		{"no letters", "1234 5678"},
		{"whitespace only", "    "},
		{"empty", ""},
		{"short after trim", "  ab "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubCompleter{response: `{"opening":"A","topics":[],"wrapUp":"B"}`}
			svc := NewService(stub)
			_, err := svc.Generate(context.Background(), tc.title)
			if !errors.Is(err, apperr.ErrInvalidTitle) {
				t.Fatalf("err = %v, want ErrInvalidTitle", err)
			}
			if stub.calls != 0 {
				t.Errorf("completer called %d times for invalid title", stub.calls)
			}
		})
	}
}

func TestGenerate_ValidTitleCallsOnce(t *testing.T) {
	stub := &stubCompleter{response: `{"opening":"Welcome","topics":[{"name":"Capacity","duration":"10 min"}],"wrapUp":"Next steps"}`}
	svc := NewService(stub)

	agenda, err := svc.Generate(context.Background(), "Sprint Planning")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("completer calls = %d, want 1", stub.calls)
	}
	if agenda.Opening != "Welcome" || agenda.WrapUp != "Next steps" {
		t.Errorf("agenda = %+v", agenda)
	}
	if len(agenda.Topics) != 1 || agenda.Topics[0].Name != "Capacity" || agenda.Topics[0].Duration != "10 min" {
		t.Errorf("topics = %+v", agenda.Topics)
	}
}

func TestGenerate_RecoversJSONFromProse(t *testing.T) {
	stub := &stubCompleter{response: "Sure! {\"opening\":\"A\",\"topics\":[],\"wrapUp\":\"B\"} Thanks!"}
	svc := NewService(stub)

	agenda, err := svc.Generate(context.Background(), "Q3 Sales Review")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if agenda.Opening != "A" || agenda.WrapUp != "B" {
		t.Errorf("agenda = %+v", agenda)
	}
	if agenda.Topics == nil || len(agenda.Topics) != 0 {
		t.Errorf("topics = %#v, want empty non-nil slice", agenda.Topics)
	}
}

func TestGenerate_NotJSON(t *testing.T) {
	stub := &stubCompleter{response: "not json at all"}
	svc := NewService(stub)

	_, err := svc.Generate(context.Background(), "Design Review Meeting")
	if !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	if stub.calls != 1 {
		t.Errorf("completer calls = %d, want 1 (no retry)", stub.calls)
	}
}

func TestGenerate_TopicMissingDuration(t *testing.T) {
	stub := &stubCompleter{response: `{"opening":"A","topics":[{"name":"X"}],"wrapUp":"B"}`}
	svc := NewService(stub)

	_, err := svc.Generate(context.Background(), "Project Kickoff")
	if !errors.Is(err, apperr.ErrBadStructure) {
		t.Fatalf("err = %v, want ErrBadStructure", err)
	}
}

func TestGenerate_NullTopics(t *testing.T) {
	stub := &stubCompleter{response: `{"opening":"A","topics":null,"wrapUp":"B"}`}
	svc := NewService(stub)

	_, err := svc.Generate(context.Background(), "Team Retro")
	if !errors.Is(err, apperr.ErrBadStructure) {
		t.Fatalf("err = %v, want ErrBadStructure", err)
	}
}

func TestGenerate_ProviderErrorNotRetried(t *testing.T) {
	provErr := &apperr.ProviderError{Status: 500, Message: "upstream down"}
	stub := &stubCompleter{err: provErr}
	svc := NewService(stub)

	_, err := svc.Generate(context.Background(), "Weekly Sync")
	var perr *apperr.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if stub.calls != 1 {
		t.Errorf("completer calls = %d, want 1 (no retry)", stub.calls)
	}
}

func TestGenerate_EmptyCompletionChoice(t *testing.T) {
	stub := &stubCompleter{response: ""}
	svc := NewService(stub)

	_, err := svc.Generate(context.Background(), "Monthly Review")
	if !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

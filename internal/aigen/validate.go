package aigen

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// extractJSON recovers a JSON document embedded in surrounding prose by
// slicing from the first '{' through the last '}'. When no such span exists
// the input is returned unchanged and will fail parsing downstream. This is
// the only recovery heuristic; there is deliberately no further fallback.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

// decodeAgenda structurally validates an untyped JSON value against the
// agenda contract and builds the typed Agenda: a non-null object whose
// opening and wrapUp are strings and whose topics is an array of non-null
// objects with string name and duration. Topic count and string lengths are
// not bounded here.
func decodeAgenda(v any) (models.Agenda, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Agenda{}, false
	}
	opening, ok := obj["opening"].(string)
	if !ok {
		return models.Agenda{}, false
	}
	wrapUp, ok := obj["wrapUp"].(string)
	if !ok {
		return models.Agenda{}, false
	}
	rawTopics, ok := obj["topics"].([]any)
	if !ok {
		return models.Agenda{}, false
	}

	topics := make([]models.AgendaTopic, 0, len(rawTopics))
	for _, rt := range rawTopics {
		t, ok := rt.(map[string]any)
		if !ok {
			return models.Agenda{}, false
		}
		name, ok := t["name"].(string)
		if !ok {
			return models.Agenda{}, false
		}
		duration, ok := t["duration"].(string)
		if !ok {
			return models.Agenda{}, false
		}
		topics = append(topics, models.AgendaTopic{Name: name, Duration: duration})
	}

	return models.Agenda{Opening: opening, Topics: topics, WrapUp: wrapUp}, true
}

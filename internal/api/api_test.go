package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/ansuz/internal/aigen"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/templates"
	"github.com/starford/ansuz/internal/testutil"
)

// stubCompleter returns a canned completion and counts calls.
type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

// testEnv sets up a temp store, catalog, and router around a stub completer.
func testEnv(t *testing.T, stub *stubCompleter) (http.Handler, *testEnvDeps) {
	t.Helper()
	db := testutil.TestStore(t)
	catalog := templates.NewCatalog()
	h := NewHandler(aigen.NewService(stub), db, catalog, nil)
	router := NewRouter(h, false, "", nil)
	return router, &testEnvDeps{stub: stub}
}

type testEnvDeps struct {
	stub *stubCompleter
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func TestGenerateAgenda_Success(t *testing.T) {
	router, env := testEnv(t, &stubCompleter{
		response: `{"opening":"Welcome","topics":[{"name":"Capacity","duration":"10 min"}],"wrapUp":"Done"}`,
	})

	w := postJSON(t, router, "/generate-agenda", map[string]string{"meetingTitle": "Sprint Planning"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var agenda models.Agenda
	if err := json.Unmarshal(w.Body.Bytes(), &agenda); err != nil {
		t.Fatal(err)
	}
	if agenda.Opening != "Welcome" || len(agenda.Topics) != 1 {
		t.Errorf("agenda = %+v", agenda)
	}
	if env.stub.calls != 1 {
		t.Errorf("completer calls = %d, want 1", env.stub.calls)
	}
}

func TestGenerateAgenda_RecoversEmbeddedJSON(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{
		response: "Sure! {\"opening\":\"A\",\"topics\":[],\"wrapUp\":\"B\"} Thanks!",
	})

	w := postJSON(t, router, "/generate-agenda", map[string]string{"meetingTitle": "Q3 Sales Review"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var agenda models.Agenda
	_ = json.Unmarshal(w.Body.Bytes(), &agenda)
	if agenda.Opening != "A" || agenda.WrapUp != "B" || len(agenda.Topics) != 0 {
		t.Errorf("agenda = %+v", agenda)
	}
}

func TestGenerateAgenda_MissingTitle(t *testing.T) {
	router, env := testEnv(t, &stubCompleter{})

	for _, body := range []any{
		map[string]string{},
		map[string]any{"meetingTitle": 42},
		map[string]any{"meetingTitle": nil},
	} {
		w := postJSON(t, router, "/generate-agenda", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d for body %+v, want 400", w.Code, body)
		}
		if msg := errorMessage(t, w); msg != "meetingTitle is required" {
			t.Errorf("error = %q", msg)
		}
	}
	if env.stub.calls != 0 {
		t.Errorf("completer called %d times", env.stub.calls)
	}
}

func TestGenerateAgenda_HeuristicReject(t *testing.T) {
	router, env := testEnv(t, &stubCompleter{})

	for _, title := range []string{"abc", "Standup", "1234 5678"} {
		w := postJSON(t, router, "/generate-agenda", map[string]string{"meetingTitle": title})
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d for %q, want 422", w.Code, title)
		}
		if msg := errorMessage(t, w); msg != invalidTitleMsg {
			t.Errorf("error = %q", msg)
		}
	}
	if env.stub.calls != 0 {
		t.Errorf("completer called %d times for invalid titles", env.stub.calls)
	}
}

func TestGenerateAgenda_ModelNotJSON(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{response: "not json at all"})

	w := postJSON(t, router, "/generate-agenda", map[string]string{"meetingTitle": "Design Review"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Model did not return valid JSON" {
		t.Errorf("error = %q", msg)
	}
}

func TestGenerateAgenda_BadStructure(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{
		response: `{"opening":"A","topics":[{"name":"X"}],"wrapUp":"B"}`,
	})

	w := postJSON(t, router, "/generate-agenda", map[string]string{"meetingTitle": "Project Kickoff"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Invalid agenda structure from model" {
		t.Errorf("error = %q", msg)
	}
}

func TestGenerateAgenda_ProviderFailureIsGeneric(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{
		err: &apperr.ProviderError{Status: 429, Type: "rate_limit", Message: "slow down"},
	})

	w := postJSON(t, router, "/generate-agenda", map[string]string{"meetingTitle": "Weekly Sync"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	msg := errorMessage(t, w)
	if msg != "Failed to generate agenda" {
		t.Errorf("error = %q, provider detail must not leak", msg)
	}
}

func TestCreateAndGetAgenda(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	w := postJSON(t, router, "/agendas", map[string]any{
		"meeting_title": "Sprint Planning",
		"opening":       "Welcome",
		"topics":        []map[string]string{{"name": "Capacity", "duration": "10 min"}},
		"wrap_up":       "Next steps",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created models.AgendaRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.ShareToken == "" {
		t.Fatalf("record = %+v", created)
	}
	if !created.IsPublic {
		t.Error("is_public should default to true")
	}

	req := httptest.NewRequest(http.MethodGet, "/agendas/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got models.AgendaRecord
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.MeetingTitle != "Sprint Planning" {
		t.Errorf("meeting_title = %q", got.MeetingTitle)
	}
}

func TestCreateAgenda_MissingTitle(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	w := postJSON(t, router, "/agendas", map[string]any{"opening": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSharedAgenda_PublicAndPrivate(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	// Public record resolves through its token.
	w := postJSON(t, router, "/agendas", map[string]any{"meeting_title": "Public Meeting"})
	var pub models.AgendaRecord
	_ = json.Unmarshal(w.Body.Bytes(), &pub)

	req := httptest.NewRequest(http.MethodGet, "/shared/"+pub.ShareToken, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("shared get = %d, body = %s", w2.Code, w2.Body.String())
	}
	var shared models.AgendaRecord
	_ = json.Unmarshal(w2.Body.Bytes(), &shared)
	if shared.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", shared.ViewCount)
	}

	// Private record's token must not resolve.
	w = postJSON(t, router, "/agendas", map[string]any{"meeting_title": "Private Meeting", "is_public": false})
	var priv models.AgendaRecord
	_ = json.Unmarshal(w.Body.Bytes(), &priv)

	req = httptest.NewRequest(http.MethodGet, "/shared/"+priv.ShareToken, nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotFound {
		t.Errorf("private shared get = %d, want 404", w2.Code)
	}
}

func TestUpdateAgenda(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	w := postJSON(t, router, "/agendas", map[string]any{"meeting_title": "Before", "opening": "v1"})
	var created models.AgendaRecord
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	body, _ := json.Marshal(map[string]string{"opening": "v2"})
	req := httptest.NewRequest(http.MethodPut, "/agendas/"+created.ID, bytes.NewReader(body))
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("update = %d, body = %s", w2.Code, w2.Body.String())
	}
	var updated models.AgendaRecord
	_ = json.Unmarshal(w2.Body.Bytes(), &updated)
	if updated.Opening != "v2" || updated.MeetingTitle != "Before" {
		t.Errorf("updated = %+v", updated)
	}

	// Unknown id → 404.
	req = httptest.NewRequest(http.MethodPut, "/agendas/missing", bytes.NewReader(body))
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotFound {
		t.Errorf("update missing = %d, want 404", w2.Code)
	}
}

func TestDeleteAgenda(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	w := postJSON(t, router, "/agendas", map[string]any{"meeting_title": "Doomed Meeting"})
	var created models.AgendaRecord
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	req := httptest.NewRequest(http.MethodDelete, "/agendas/"+created.ID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusNoContent {
		t.Fatalf("delete = %d, want 204", w2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/agendas/"+created.ID, nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w2.Code)
	}
}

func TestListAgendasByUser(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	for _, title := range []string{"First Meeting", "Second Meeting"} {
		postJSON(t, router, "/agendas", map[string]any{"meeting_title": title, "user_id": "u1"})
	}
	postJSON(t, router, "/agendas", map[string]any{"meeting_title": "Other Meeting", "user_id": "u2"})

	req := httptest.NewRequest(http.MethodGet, "/agendas?user_id=u1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var resp AgendaListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Agendas) != 2 {
		t.Errorf("len = %d, want 2", len(resp.Agendas))
	}

	// Missing user_id → 400.
	req = httptest.NewRequest(http.MethodGet, "/agendas", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("list without user_id = %d, want 400", w.Code)
	}
}

func TestListTemplates(t *testing.T) {
	router, _ := testEnv(t, &stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("templates = %d", w.Code)
	}
	var resp TemplateListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Templates) != 7 {
		t.Errorf("templates = %d, want 7", len(resp.Templates))
	}
}

func TestAuthMiddleware(t *testing.T) {
	db := testutil.TestStore(t)
	h := NewHandler(aigen.NewService(&stubCompleter{}), db, templates.NewCatalog(), nil)
	router := NewRouter(h, true, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/templates", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("with token = %d, want 200", w.Code)
	}
}

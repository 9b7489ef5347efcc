package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/schemas"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard, "", 0))}, opts...)
	srv, err := New(schemas.Default(), opts...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func do(t *testing.T, srv *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, srv *Server, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, srv, http.MethodPost, target, "application/json", body)
}

func postForm(t *testing.T, srv *Server, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, srv, http.MethodPost, target, "application/x-www-form-urlencoded", form.Encode())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: want %d got %d, body: %s", want, rec.Code, rec.Body.String())
	}
}

func mustContain(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}
}

func mustNotContain(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(body, fragment) {
			t.Fatalf("did not expect %q in body:\n%s", fragment, body)
		}
	}
}

func TestHealthAndIndex(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/healthz", "", "")
	expectStatus(t, rec, http.StatusOK)
	mustContain(t, rec.Body.String(), `"status":"ok"`)

	rec = do(t, srv, http.MethodGet, "/", "", "")
	expectStatus(t, rec, http.StatusFound)
	if got := rec.Header().Get("Location"); got != "/forms/employee" {
		t.Fatalf("redirect: want /forms/employee got %q", got)
	}
}

func TestDefaultSchemaOption(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, WithDefaultSchema(schemas.SurveyKey))

	rec := do(t, srv, http.MethodGet, "/", "", "")
	if got := rec.Header().Get("Location"); got != "/forms/survey" {
		t.Fatalf("redirect: want /forms/survey got %q", got)
	}

	if _, err := New(schemas.Default(), WithDefaultSchema("missing")); err == nil {
		t.Fatalf("expected unknown default schema to be rejected")
	}
}

func TestFormPageLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/forms/survey", "", "")
	expectStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	mustContain(t, body, `name="customerType"`, `name="satisfaction"`, `href="/forms/employee"`)
	mustNotContain(t, body, `name="purchaseFrequency"`, `name="improvements"`)

	ids := srv.Store().IDs()
	if len(ids) != 1 {
		t.Fatalf("expected one session, got %d", len(ids))
	}
	id := ids[0]
	mustContain(t, body, `name="_session" value="`+id+`"`)

	rec = postForm(t, srv, "/forms/survey", url.Values{
		render.SessionField: {id},
		render.ActionField:  {"change"},
		"customerType":      {"existing"},
	})
	expectStatus(t, rec, http.StatusOK)
	mustContain(t, rec.Body.String(), `name="purchaseFrequency"`)
	mustNotContain(t, rec.Body.String(), `name="referralSource"`)

	rec = postForm(t, srv, "/forms/survey", url.Values{
		render.SessionField: {id},
		render.ActionField:  {"submit"},
		"customerType":      {"existing"},
		"purchaseFrequency": {""},
	})
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	mustContain(t, rec.Body.String(),
		"Purchase Frequency is required for existing customers",
		"Satisfaction rating is required",
	)

	rec = postForm(t, srv, "/forms/survey", url.Values{
		render.SessionField: {id},
		render.ActionField:  {"submit"},
		"customerType":      {"existing"},
		"purchaseFrequency": {"monthly"},
		"satisfaction":      {"satisfied"},
	})
	expectStatus(t, rec, http.StatusOK)
	mustContain(t, rec.Body.String(), "Form submitted successfully", "monthly")

	rec = postForm(t, srv, "/forms/survey", url.Values{
		render.SessionField: {id},
		render.ActionField:  {"submit", "reset"},
	})
	expectStatus(t, rec, http.StatusOK)
	sess, err := srv.Store().Get(id)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if got := sess.Snapshot().Values; len(got) != 0 {
		t.Fatalf("expected reset values, got %v", got)
	}
}

func TestFormPostIgnoresFieldsThatWereHidden(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := postForm(t, srv, "/forms/survey", url.Values{
		"customerType":      {"existing"},
		"purchaseFrequency": {"monthly"},
		"satisfaction":      {"satisfied"},
	})
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	mustContain(t, rec.Body.String(), "Purchase Frequency is required for existing customers")
}

func TestFormPostSwitchesSessionSchema(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	sess, err := srv.Store().Create(schemas.SurveyKey, session.WithValues(model.Values{
		"customerType": model.Scalar("new"),
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := do(t, srv, http.MethodGet, "/forms/employee?session="+sess.ID(), "", "")
	expectStatus(t, rec, http.StatusOK)
	snap := sess.Snapshot()
	if snap.Schema != schemas.EmployeeKey || len(snap.Values) != 0 {
		t.Fatalf("expected reset employee session, got %+v", snap)
	}
}

func TestUnknownForm(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/forms/missing", "", "")
	expectStatus(t, rec, http.StatusNotFound)
	mustContain(t, rec.Body.String(), "schema not found")
}

func TestSessionAPI(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/sessions", `{"schema":"survey"}`)
	expectStatus(t, rec, http.StatusCreated)
	snap := decode[session.Snapshot](t, rec)
	if diff := cmp.Diff([]string{"customerType", "satisfaction"}, snap.Visible); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}
	base := "/api/sessions/" + snap.ID

	rec = postJSON(t, srv, base+"/change", `{"field":"customerType","value":"existing"}`)
	expectStatus(t, rec, http.StatusOK)
	update := decode[session.Update](t, rec)
	if diff := cmp.Diff([]string{"customerType", "purchaseFrequency", "satisfaction"}, update.Visible); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}

	expectStatus(t, postJSON(t, srv, base+"/change", `{"field":"purchaseFrequency","value":"monthly"}`), http.StatusOK)

	rec = postJSON(t, srv, base+"/change", `{"field":"customerType","value":"new"}`)
	expectStatus(t, rec, http.StatusOK)
	update = decode[session.Update](t, rec)
	if diff := cmp.Diff([]string{"purchaseFrequency"}, update.Cleared); diff != "" {
		t.Fatalf("cleared mismatch (-want +got):\n%s", diff)
	}

	rec = postJSON(t, srv, base+"/submit", "")
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	rejected := decode[submitResponse](t, rec)
	wantErrors := model.Errors{
		"referralSource": {"Referral Source is required for new customers"},
		"satisfaction":   {"Satisfaction rating is required"},
	}
	if diff := cmp.Diff(wantErrors, rejected.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	expectStatus(t, postJSON(t, srv, base+"/change", `{"field":"referralSource","value":"friend"}`), http.StatusOK)
	expectStatus(t, postJSON(t, srv, base+"/change", `{"field":"satisfaction","value":"dissatisfied"}`), http.StatusOK)
	expectStatus(t, postJSON(t, srv, base+"/change", `{"field":"improvements","value":["pricing","delivery"]}`), http.StatusOK)

	rec = postJSON(t, srv, base+"/submit", "")
	expectStatus(t, rec, http.StatusOK)
	accepted := decode[submitResponse](t, rec)
	wantPayload := map[string]any{
		"customerType":   "new",
		"referralSource": "friend",
		"satisfaction":   "dissatisfied",
		"improvements":   []any{"pricing", "delivery"},
	}
	if diff := cmp.Diff(wantPayload, accepted.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	rec = postJSON(t, srv, base+"/reset", "")
	expectStatus(t, rec, http.StatusOK)
	if snap := decode[session.Snapshot](t, rec); len(snap.Values) != 0 {
		t.Fatalf("expected empty values after reset, got %v", snap.Values)
	}

	rec = postJSON(t, srv, base+"/switch", `{"schema":"employee"}`)
	expectStatus(t, rec, http.StatusOK)
	if snap := decode[session.Snapshot](t, rec); snap.Schema != schemas.EmployeeKey {
		t.Fatalf("expected employee schema, got %q", snap.Schema)
	}

	rec = do(t, srv, http.MethodDelete, base, "", "")
	expectStatus(t, rec, http.StatusNoContent)
	expectStatus(t, do(t, srv, http.MethodGet, base, "", ""), http.StatusNotFound)
}

func TestSessionAPIErrors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/sessions", `{"schema":"survey"}`)
	expectStatus(t, rec, http.StatusCreated)
	base := "/api/sessions/" + decode[session.Snapshot](t, rec).ID

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "unknown field", target: base + "/change", body: `{"field":"nope","value":"x"}`, status: http.StatusBadRequest},
		{name: "scalar for checkbox", target: base + "/change", body: `{"field":"improvements","value":"pricing"}`, status: http.StatusBadRequest},
		{name: "nested value", target: base + "/change", body: `{"field":"customerType","value":{"a":1}}`, status: http.StatusBadRequest},
		{name: "missing field", target: base + "/change", body: `{"value":"x"}`, status: http.StatusBadRequest},
		{name: "malformed json", target: base + "/change", body: `{`, status: http.StatusBadRequest},
		{name: "unknown schema switch", target: base + "/switch", body: `{"schema":"missing"}`, status: http.StatusNotFound},
		{name: "unknown session", target: "/api/sessions/missing/submit", body: "", status: http.StatusNotFound},
		{name: "unknown schema create", target: "/api/sessions", body: `{"schema":"missing"}`, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, postJSON(t, srv, tt.target, tt.body), tt.status)
		})
	}
}

func TestCreateSessionWithValues(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/sessions", `{"schema":"survey","values":{"customerType":"existing","satisfaction":"neutral"}}`)
	expectStatus(t, rec, http.StatusCreated)
	snap := decode[session.Snapshot](t, rec)
	want := []string{"customerType", "purchaseFrequency", "satisfaction", "improvements"}
	if diff := cmp.Diff(want, snap.Visible); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestStatelessSubmit(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/forms/employee/submit", `{
		"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
		"isEmployed": "yes", "companyName": "Acme", "position": "developer",
		"experience": 7, "skills": ["javascript"], "lookingForJob": "actively"
	}`)
	expectStatus(t, rec, http.StatusOK)
	accepted := decode[submitResponse](t, rec)
	if accepted.Payload["experience"] != float64(7) {
		t.Fatalf("expected numeric experience, got %#v", accepted.Payload["experience"])
	}
	if _, ok := accepted.Payload["lookingForJob"]; ok {
		t.Fatalf("hidden field leaked into payload: %v", accepted.Payload)
	}

	rec = postJSON(t, srv, "/api/forms/survey/submit", `{"customerType":"existing"}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	rejected := decode[submitResponse](t, rec)
	if rejected.OK || len(rejected.Errors) == 0 {
		t.Fatalf("expected rejection, got %+v", rejected)
	}

	expectStatus(t, postJSON(t, srv, "/api/forms/missing/submit", `{}`), http.StatusNotFound)
}

func TestSchemaEndpoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/schemas", "", "")
	expectStatus(t, rec, http.StatusOK)
	summaries := decode[[]schemaSummary](t, rec)
	if len(summaries) != 2 || summaries[0].Key != schemas.EmployeeKey {
		t.Fatalf("unexpected summaries %+v", summaries)
	}

	rec = do(t, srv, http.MethodGet, "/schemas/survey", "", "")
	expectStatus(t, rec, http.StatusOK)
	mustContain(t, rec.Body.String(), `"title":"Customer Feedback Survey"`, `"customerType"`)

	rec = do(t, srv, http.MethodGet, "/schemas/survey/openapi.json", "", "")
	expectStatus(t, rec, http.StatusOK)
	doc := decode[map[string]any](t, rec)
	if doc["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", doc["openapi"])
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/api/forms/survey/submit"]; !ok {
		t.Fatalf("expected survey submit path, got %v", paths)
	}

	expectStatus(t, do(t, srv, http.MethodGet, "/schemas/missing/openapi.json", "", ""), http.StatusNotFound)
	expectStatus(t, do(t, srv, http.MethodGet, "/openapi.json", "", ""), http.StatusOK)
}

func TestViewFormats(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/sessions", `{"schema":"survey","values":{"customerType":"new"}}`)
	expectStatus(t, rec, http.StatusCreated)
	base := "/api/sessions/" + decode[session.Snapshot](t, rec).ID

	rec = do(t, srv, http.MethodGet, base+"/view?format=tui", "", "")
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	mustContain(t, rec.Body.String(), `"schema": "survey"`, `"customerType": "new"`)

	rec = do(t, srv, http.MethodGet, base+"/view", "", "")
	expectStatus(t, rec, http.StatusOK)
	mustContain(t, rec.Body.String(), `name="referralSource"`)

	expectStatus(t, do(t, srv, http.MethodGet, base+"/view?format=pdf", "", ""), http.StatusBadRequest)
}

package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"biglabo/internal/configstore"
	"biglabo/internal/core"
	"biglabo/internal/services"
)

func newTestServer(t *testing.T) (*Server, *core.Store) {
	t.Helper()
	sim := core.NewStore()
	svc := services.NewConfigService(configstore.NewMemoryStore(), nil)
	s := NewServer(":0", sim, svc)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s, sim
}

func doRequest(s *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersInputs(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"管理費収入", "遊び場", "総収入", `name="inc_manage"`, `value="10000000"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestSimulateUpdatesValuesAndReport(t *testing.T) {
	s, sim := newTestServer(t)

	form := url.Values{}
	form.Set("inc_manage", "12000000")
	form.Set("not_a_field", "999")
	form.Set("exp_wages", "abc") // unparseable, keeps current value

	rec := doRequest(s, http.MethodPost, "/simulate", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}

	if got, _ := sim.Get("inc_manage"); got != 12000000 {
		t.Fatalf("inc_manage: %d", got)
	}
	if got, _ := sim.Get("exp_wages"); got != 5200000 {
		t.Fatalf("exp_wages should keep default: %d", got)
	}
	if !strings.Contains(rec.Body.String(), "総収入") {
		t.Fatalf("expected report partial in response")
	}
}

func TestEventLifecycle(t *testing.T) {
	s, sim := newTestServer(t)

	form := url.Values{}
	form.Set("name", "夏祭り")
	form.Set("income", "80000")
	form.Set("expense", "30000")
	rec := doRequest(s, http.MethodPost, "/events", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status: %d", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") != "report:refresh" {
		t.Fatalf("expected report refresh trigger")
	}
	if sim.Events().Len() != 1 {
		t.Fatalf("events: %d", sim.Events().Len())
	}

	del := url.Values{}
	del.Set("index", "0")
	rec = doRequest(s, http.MethodPost, "/events/delete", del)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: %d", rec.Code)
	}
	if sim.Events().Len() != 0 {
		t.Fatalf("events after delete: %d", sim.Events().Len())
	}

	rec = doRequest(s, http.MethodPost, "/events/delete", del)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete out of range status: %d", rec.Code)
	}
}

func TestAddEventRejectsEmptyName(t *testing.T) {
	s, sim := newTestServer(t)

	form := url.Values{}
	form.Set("name", "   ")
	rec := doRequest(s, http.MethodPost, "/events", form)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rec.Code)
	}
	if sim.Events().Len() != 0 {
		t.Fatalf("event should not be added")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s, sim := newTestServer(t)

	if err := sim.Set("inc_manage", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec := doRequest(s, http.MethodPost, "/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if rec.Header().Get("HX-Refresh") != "true" {
		t.Fatalf("expected full page refresh")
	}
	if got, _ := sim.Get("inc_manage"); got != 10000000 {
		t.Fatalf("inc_manage after reset: %d", got)
	}
}

func TestExportCSV(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/export/csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("expected UTF-8 BOM prefix")
	}
	if !strings.Contains(string(body), "区分,項目,金額,詳細") {
		t.Fatalf("expected CSV header row")
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "simulation_result.csv") {
		t.Fatalf("content disposition: %q", got)
	}
}

func TestExportConfigFilename(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/export/config?creator=tanaka", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "tanaka") || !strings.Contains(cd, ".json") {
		t.Fatalf("content disposition: %q", cd)
	}
	if !strings.Contains(rec.Body.String(), `"inc_manage"`) {
		t.Fatalf("expected flat field keys in export body")
	}
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImportConfig(t *testing.T) {
	s, sim := newTestServer(t)

	req := uploadRequest(t, "/import/config", "plan.json", []byte(`{"inc_manage": 7000000, "custom_events": []}`))
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	if got, _ := sim.Get("inc_manage"); got != 7000000 {
		t.Fatalf("inc_manage: %d", got)
	}
}

func TestImportConfigMalformed(t *testing.T) {
	s, sim := newTestServer(t)

	before, _ := sim.Get("inc_manage")
	req := uploadRequest(t, "/import/config", "broken.json", []byte(`{`))
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rec.Code)
	}
	if after, _ := sim.Get("inc_manage"); after != before {
		t.Fatalf("malformed import must not change state")
	}
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	s, sim := newTestServer(t)

	if err := sim.Set("inc_manage", 4242); err != nil {
		t.Fatalf("set: %v", err)
	}

	form := url.Values{}
	form.Set("name", "プランA")
	form.Set("creator", "tanaka")
	rec := doRequest(s, http.MethodPost, "/configs", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "プランA") {
		t.Fatalf("list should show the saved name")
	}

	list, err := s.configs.ListConfigurations(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d items)", err, len(list))
	}

	// Mutate the session, then load the saved configuration back.
	if err := sim.Set("inc_manage", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	load := url.Values{}
	load.Set("ref", list[0].Ref)
	rec = doRequest(s, http.MethodPost, "/configs/load", load)
	if rec.Code != http.StatusOK {
		t.Fatalf("load status: %d", rec.Code)
	}
	if got, _ := sim.Get("inc_manage"); got != 4242 {
		t.Fatalf("inc_manage after load: %d", got)
	}
}

func TestLoadConfigUnknownRef(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{}
	form.Set("ref", "missing")
	rec := doRequest(s, http.MethodPost, "/configs/load", form)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/", nil)
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options: %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options: %q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	for _, target := range []string{"/simulate", "/events", "/reset", "/import/config"} {
		rec := doRequest(s, http.MethodGet, target, nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status %d", target, rec.Code)
		}
	}
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/savebonus/internal/calendar"
	"github.com/theirongolddev/savebonus/internal/config"
	"go.uber.org/goleak"
)

// mutableClock lets sweep tests move time forward.
type mutableClock struct{ t time.Time }

func (c *mutableClock) Now() time.Time { return c.t }

func april11() *mutableClock {
	return &mutableClock{t: time.Date(2024, 4, 11, 12, 0, 0, 0, calendar.SGT)}
}

func newTestService(t *testing.T, clk calendar.Clock) *Service {
	t.Helper()
	return New(Config{
		Addr:          "127.0.0.1:0",
		DefaultBuffer: 50,
		SessionTTL:    10 * time.Minute,
		SweepSchedule: "@every 1h",
	}, calendar.NewProvider(clk), nil)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCompute_WorkedScenario(t *testing.T) {
	s := newTestService(t, april11())

	rec := postJSON(t, s.Handler(), "/v1/compute",
		`{"available_balance":1000,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp computeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Results.DaysInMonth)
	assert.Equal(t, 50.0, resp.Results.Buffer)
	assert.Equal(t, 1675.0, resp.Results.AdjustmentDaily)
	assert.Equal(t, 3125.0, resp.Results.AmountToAddOrRemoveNextMonth)
	require.Len(t, resp.Series.After, 3)
	assert.Equal(t, 550.0, resp.Series.After[2].Value)
	assert.Contains(t, resp.Report, "Required Transfer (in/out): +1,675.00 (Deposit)")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().calculations.WithLabelValues(frontendAPI, outcomeOK)))
}

func TestCompute_DaysOverride(t *testing.T) {
	s := newTestService(t, april11())

	rec := postJSON(t, s.Handler(), "/v1/compute",
		`{"available_balance":1000,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":10,"buffer":0,"days_in_month":31}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp computeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 31, resp.Results.DaysInMonth)
	assert.Equal(t, 21, resp.Results.RemainingDays)
	assert.Equal(t, 0.0, resp.Results.Buffer)
}

func TestCompute_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"bad json", `{"available_balance":`, http.StatusBadRequest, kindInvalidRequest},
		{"unknown field", `{"balance":1}`, http.StatusBadRequest, kindInvalidRequest},
		{"missing fields", `{"available_balance":1000}`, http.StatusBadRequest, kindInvalidRequest},
		{"negative balance", `{"available_balance":-1,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":10}`, http.StatusUnprocessableEntity, kindInvalidRange},
		{"as-of past month end", `{"available_balance":1,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":31}`, http.StatusUnprocessableEntity, kindInvalidRange},
		{"last day", `{"available_balance":1,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":30}`, http.StatusUnprocessableEntity, "undefined_adjustment"},
		{"bad days override", `{"available_balance":1,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":3,"days_in_month":0}`, http.StatusUnprocessableEntity, kindInvalidRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestService(t, april11())
			rec := postJSON(t, s.Handler(), "/v1/compute", c.body)
			require.Equal(t, c.status, rec.Code, rec.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, c.kind, resp.Kind)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCompute_MethodNotAllowed(t *testing.T) {
	s := newTestService(t, april11())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/compute", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func chat(t *testing.T, h http.Handler, id, text string) chatResponse {
	t.Helper()
	body, err := json.Marshal(chatRequest{SessionID: id, Text: text})
	require.NoError(t, err)
	rec := postJSON(t, h, "/v1/chat", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestChat_Conversation(t *testing.T) {
	s := newTestService(t, april11())
	h := s.Handler()

	first := chat(t, h, "", "/calculate")
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, "awaiting_balance", first.State)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().chatSessions))

	id := first.SessionID
	for _, msg := range []string{"1000", "2,000", "100", "10"} {
		r := chat(t, h, id, msg)
		assert.Equal(t, id, r.SessionID)
		assert.False(t, r.Done)
	}
	final := chat(t, h, id, "")
	assert.True(t, final.Done)
	assert.Equal(t, "idle", final.State)
	assert.Contains(t, final.Reply, "+1,675.00 (Deposit)")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().calculations.WithLabelValues(frontendChat, outcomeOK)))
}

func TestChat_UnknownSession(t *testing.T) {
	s := newTestService(t, april11())
	rec := postJSON(t, s.Handler(), "/v1/chat", `{"session_id":"nope","text":"10"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, kindUnknownSession, resp.Kind)
}

func TestChat_SessionLimit(t *testing.T) {
	clk := april11()
	s := New(Config{
		Addr:          "127.0.0.1:0",
		SessionTTL:    10 * time.Minute,
		SweepSchedule: "@every 1h",
		MaxSessions:   2,
	}, calendar.NewProvider(clk), nil)
	h := s.Handler()

	first := chat(t, h, "", "/calculate").SessionID
	chat(t, h, "", "/calculate")

	rec := postJSON(t, h, "/v1/chat", `{"text":"/calculate"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, kindSessionLimit, resp.Kind)
	assert.Equal(t, 2, s.sessions.len())

	// Live sessions keep working at the limit.
	assert.Equal(t, "awaiting_adb", chat(t, h, first, "1000").State)

	clk.t = clk.t.Add(11 * time.Minute)
	s.sweep()
	assert.NotEmpty(t, chat(t, h, "", "/calculate").SessionID)
}

func TestSweep_RemovesIdleSessions(t *testing.T) {
	clk := april11()
	s := newTestService(t, clk)
	h := s.Handler()

	old := chat(t, h, "", "/calculate").SessionID
	clk.t = clk.t.Add(8 * time.Minute)
	fresh := chat(t, h, "", "/calculate").SessionID

	clk.t = clk.t.Add(5 * time.Minute)
	s.sweep()

	assert.Equal(t, 1, s.sessions.len())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().chatSessions))

	rec := postJSON(t, h, "/v1/chat", `{"session_id":"`+old+`","text":"1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "awaiting_adb", chat(t, h, fresh, "1").State)
}

func TestSetConfig_ChangesDefaultBuffer(t *testing.T) {
	s := newTestService(t, april11())

	cfg := config.DefaultConfig()
	cfg.General.DefaultBuffer = 0
	s.SetConfig(cfg)

	rec := postJSON(t, s.Handler(), "/v1/compute",
		`{"available_balance":1000,"current_month_adb":2000,"adb_increase_vs_last_month":100,"balance_as_of":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp computeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Results.Buffer)
	assert.Equal(t, 1600.0, resp.Results.AdjustmentDaily)
}

func TestIndex_GetPrefillsForm(t *testing.T) {
	s := newTestService(t, april11())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="balance_as_of" value="10"`)
	assert.Contains(t, body, `name="buffer" value="50"`)
	assert.Contains(t, body, "day 1-30")
	assert.Contains(t, body, "10:00 PM (SGT)")
	assert.NotContains(t, body, "<svg")
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex_PostRendersReportAndChart(t *testing.T) {
	s := newTestService(t, april11())
	rec := postForm(t, s.Handler(), url.Values{
		"available_balance":          {"$1,000"},
		"current_month_adb":          {"2000"},
		"adb_increase_vs_last_month": {"100"},
		"balance_as_of":              {"10"},
		"buffer":                     {""},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Required Transfer (in/out): &#43;1,675.00 (Deposit)")
	assert.Contains(t, body, "<svg")
	assert.Equal(t, 2, strings.Count(body, "<polyline"))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().calculations.WithLabelValues(frontendWeb, outcomeOK)))
}

func TestIndex_PostErrorRerendersForm(t *testing.T) {
	s := newTestService(t, april11())
	rec := postForm(t, s.Handler(), url.Values{
		"available_balance":          {"lots"},
		"current_month_adb":          {"2000"},
		"adb_increase_vs_last_month": {"100"},
		"balance_as_of":              {"10"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, `value="lots"`)
	assert.NotContains(t, body, "<svg")
}

func TestIndex_UnknownPath(t *testing.T) {
	s := newTestService(t, april11())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestService(t, april11())
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok\n", rec.Body.String())

	postJSON(t, h, "/v1/compute", `{}`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `savebonus_calculations_total{frontend="api",outcome="invalid_request"} 1`)
	assert.Contains(t, body, `savebonus_http_request_duration_seconds_count{path="/v1/compute"} 1`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestService(t, april11())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_InvalidSchedule(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0", SweepSchedule: "every now and then"}, calendar.NewProvider(april11()), nil)
	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sweep schedule")
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/model"
	"github.com/theirongolddev/savebonus/internal/pipeline"
	"github.com/theirongolddev/savebonus/internal/report"
	"go.uber.org/zap"
)

// Error kinds returned by the boundary, alongside pipeline.ErrorKind values.
const (
	kindInvalidRequest  = "invalid_request"
	kindMalformedNumber = "malformed_number"
	kindInvalidRange    = "invalid_range"
	kindUnknownSession  = "unknown_session"
	kindSessionLimit    = "session_limit"
	kindInternal        = "internal"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

type computeRequest struct {
	AvailableBalance       *float64 `json:"available_balance"`
	CurrentMonthADB        *float64 `json:"current_month_adb"`
	ADBIncreaseVsLastMonth *float64 `json:"adb_increase_vs_last_month"`
	BalanceAsOf            *int     `json:"balance_as_of"`
	Buffer                 *float64 `json:"buffer,omitempty"`
	DaysInMonth            *int     `json:"days_in_month,omitempty"`
}

type computeResponse struct {
	Results model.Results `json:"results"`
	Series  model.Series  `json:"series"`
	Report  string        `json:"report"`
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	State     string `json:"state"`
	Done      bool   `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindInvalidRequest, "method not allowed")
		return
	}

	var req computeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.RecordCalculation(frontendAPI, kindInvalidRequest)
		writeError(w, http.StatusBadRequest, kindInvalidRequest, err.Error())
		return
	}
	if missing := req.missing(); len(missing) > 0 {
		s.metrics.RecordCalculation(frontendAPI, kindInvalidRequest)
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "missing fields: "+strings.Join(missing, ", "))
		return
	}

	days := s.calendar.DaysInCurrentMonth()
	if req.DaysInMonth != nil {
		if *req.DaysInMonth < 28 || *req.DaysInMonth > 31 {
			s.metrics.RecordCalculation(frontendAPI, kindInvalidRange)
			writeError(w, http.StatusUnprocessableEntity, kindInvalidRange, "days_in_month must be between 28 and 31")
			return
		}
		days = *req.DaysInMonth
	}

	in := model.Inputs{
		AvailableBalance:       *req.AvailableBalance,
		CurrentMonthADB:        *req.CurrentMonthADB,
		ADBIncreaseVsLastMonth: *req.ADBIncreaseVsLastMonth,
		BalanceAsOf:            *req.BalanceAsOf,
		Buffer:                 s.config().DefaultBuffer,
	}
	if req.Buffer != nil {
		in.Buffer = *req.Buffer
	}

	res, err := s.calculate(frontendAPI, in, days)
	if err != nil {
		status, kind := classify(err)
		writeError(w, status, kind, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, computeResponse{
		Results: res,
		Series:  pipeline.BuildSeries(res),
		Report:  report.Format(res),
	})
}

func (req computeRequest) missing() []string {
	var out []string
	if req.AvailableBalance == nil {
		out = append(out, "available_balance")
	}
	if req.CurrentMonthADB == nil {
		out = append(out, "current_month_adb")
	}
	if req.ADBIncreaseVsLastMonth == nil {
		out = append(out, "adb_increase_vs_last_month")
	}
	if req.BalanceAsOf == nil {
		out = append(out, "balance_as_of")
	}
	return out
}

func (s *Service) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindInvalidRequest, "method not allowed")
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, err.Error())
		return
	}

	id, reply, err := s.sessions.handle(req.SessionID, req.Text, s.config().DefaultBuffer)
	switch {
	case errors.Is(err, errSessionLimit):
		s.logger.Warn("chat session limit reached", zap.Int("live", s.sessions.len()))
		writeError(w, http.StatusServiceUnavailable, kindSessionLimit, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusNotFound, kindUnknownSession, err.Error())
		return
	}
	s.metrics.SetChatSessions(s.sessions.len())

	if reply.Done {
		outcome := outcomeOK
		if reply.Err != nil {
			_, outcome = classify(reply.Err)
		}
		s.metrics.RecordCalculation(frontendChat, outcome)
		s.logger.Debug("chat calculation finished", zap.String("session", id), zap.String("outcome", outcome))
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: id,
		Reply:     reply.Text,
		State:     reply.State.String(),
		Done:      reply.Done,
	})
}

// calculate runs the engine and records the outcome.
func (s *Service) calculate(frontend string, in model.Inputs, days int) (model.Results, error) {
	if err := input.Validate(in, days); err != nil {
		_, kind := classify(err)
		s.metrics.RecordCalculation(frontend, kind)
		return model.Results{}, err
	}

	res, err := pipeline.Compute(in, days)
	if err != nil {
		status, kind := classify(err)
		s.metrics.RecordCalculation(frontend, kind)
		if status >= http.StatusInternalServerError {
			s.logger.Error("calculation failed", zap.String("frontend", frontend), zap.Error(err))
		} else {
			s.logger.Debug("calculation rejected", zap.String("frontend", frontend), zap.Error(err))
		}
		return model.Results{}, err
	}

	s.metrics.RecordCalculation(frontend, outcomeOK)
	s.logger.Debug("calculation completed",
		zap.String("frontend", frontend),
		zap.Int("days_in_month", days),
		zap.Float64("adjustment_daily", res.AdjustmentDaily),
	)
	return res, nil
}

// classify maps an error to its HTTP status and kind label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, input.ErrMalformedNumber):
		return http.StatusUnprocessableEntity, kindMalformedNumber
	case errors.Is(err, input.ErrInvalidRange):
		return http.StatusUnprocessableEntity, kindInvalidRange
	case errors.Is(err, pipeline.ErrUndefinedAdjustment), errors.Is(err, pipeline.ErrNonFinite):
		return http.StatusUnprocessableEntity, string(pipeline.KindOf(err))
	case errors.Is(err, pipeline.ErrCalendarFault):
		return http.StatusInternalServerError, string(pipeline.KindCalendarFault)
	default:
		return http.StatusInternalServerError, kindInternal
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

// handleIndex serves the HTML form and its results.
func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	cfg := s.config()
	days := s.calendar.DaysInCurrentMonth()
	data := pageData{
		DaysInMonth: days,
		Notices:     report.OperationalNotices,
		Assumption:  report.Assumption,
		Form: formFields{
			BalanceAsOf: strconv.Itoa(s.calendar.DefaultBalanceAsOf()),
			Buffer:      strconv.FormatFloat(cfg.DefaultBuffer, 'f', -1, 64),
		},
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, data)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			data.Error = err.Error()
			s.render(w, http.StatusBadRequest, data)
			return
		}
		data.Form = formFields{
			AvailableBalance:       r.PostFormValue("available_balance"),
			CurrentMonthADB:        r.PostFormValue("current_month_adb"),
			ADBIncreaseVsLastMonth: r.PostFormValue("adb_increase_vs_last_month"),
			BalanceAsOf:            r.PostFormValue("balance_as_of"),
			Buffer:                 r.PostFormValue("buffer"),
		}

		in, err := input.Parse(data.Form.raw(), days, cfg.DefaultBuffer)
		if err != nil {
			_, kind := classify(err)
			s.metrics.RecordCalculation(frontendWeb, kind)
			data.Error = err.Error()
			s.render(w, http.StatusUnprocessableEntity, data)
			return
		}
		res, err := s.calculate(frontendWeb, in, days)
		if err != nil {
			status, _ := classify(err)
			data.Error = err.Error()
			s.render(w, status, data)
			return
		}
		data.Report = report.Format(res)
		data.Chart = newChartData(pipeline.BuildSeries(res))
		s.render(w, http.StatusOK, data)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// render executes the page template.
func (s *Service) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.Execute(w, data); err != nil {
		s.logger.Error("template error", zap.Error(err))
	}
}

// Package conversation collects calculator inputs one message at a time,
// the way a chat bot does, and computes once every field is in.
package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/savebonus/internal/calendar"
	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/model"
	"github.com/theirongolddev/savebonus/internal/pipeline"
	"github.com/theirongolddev/savebonus/internal/report"
)

// State is a step of the input-collection machine.
type State int

const (
	Idle State = iota
	AwaitingBalance
	AwaitingADB
	AwaitingIncrease
	AwaitingAsOf
	AwaitingBuffer
	Ready
)

var stateNames = map[State]string{
	Idle:             "idle",
	AwaitingBalance:  "awaiting_balance",
	AwaitingADB:      "awaiting_adb",
	AwaitingIncrease: "awaiting_increase",
	AwaitingAsOf:     "awaiting_as_of",
	AwaitingBuffer:   "awaiting_buffer",
	Ready:            "ready",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Commands understood in any state. /start only greets; it leaves a
// calculation in progress untouched.
const (
	CmdStart     = "/start"
	CmdCalculate = "/calculate"
	CmdCancel    = "/cancel"
)

const (
	welcomeText   = "Welcome to the Save Bonus Calculator.\nUse /calculate to begin."
	cancelledText = "Calculation cancelled."
	idleHintText  = "Use /calculate to begin, or /cancel to stop."
)

// Reply is the bot's answer to one message.
type Reply struct {
	Text  string
	State State
	// Done is set when a calculation attempt has finished, with or without a result.
	Done    bool
	Results *model.Results
	Err     error
}

// Session is one user's conversation. It is not safe for concurrent use.
type Session struct {
	calendar      calendar.Provider
	defaultBuffer float64

	state State
	acc   model.Inputs
	days  int
}

// NewSession returns an idle session. Days in month are read from cal
// when a calculation starts.
func NewSession(cal calendar.Provider, defaultBuffer float64) *Session {
	return &Session{calendar: cal, defaultBuffer: defaultBuffer}
}

// State returns the current step.
func (s *Session) State() State {
	return s.state
}

// SetDefaultBuffer changes the buffer used when the user skips it.
func (s *Session) SetDefaultBuffer(v float64) {
	s.defaultBuffer = v
}

// Handle advances the machine by one message.
func (s *Session) Handle(text string) Reply {
	msg := strings.TrimSpace(text)

	switch strings.ToLower(msg) {
	case CmdStart:
		if s.collecting() {
			return s.reply(welcomeText + "\n\n" + s.prompt())
		}
		return s.reply(welcomeText)
	case CmdCalculate:
		s.reset()
		s.days = s.calendar.DaysInCurrentMonth()
		s.state = AwaitingBalance
		return s.reply(s.prompt())
	case CmdCancel:
		s.reset()
		return s.reply(cancelledText)
	}

	var err error
	switch s.state {
	case Idle, Ready:
		return s.reply(idleHintText)
	case AwaitingBalance:
		var v float64
		if v, err = input.ParseAmount(input.FieldAvailableBalance, msg); err == nil {
			if err = input.CheckNonNegative(input.FieldAvailableBalance, v); err == nil {
				s.acc.AvailableBalance = v
			}
		}
	case AwaitingADB:
		s.acc.CurrentMonthADB, err = input.ParseAmount(input.FieldCurrentMonthADB, msg)
	case AwaitingIncrease:
		s.acc.ADBIncreaseVsLastMonth, err = input.ParseAmount(input.FieldADBIncrease, msg)
	case AwaitingAsOf:
		var day int
		if day, err = input.ParseDay(input.FieldBalanceAsOf, msg); err == nil {
			if err = input.CheckBalanceAsOf(day, s.days); err == nil {
				s.acc.BalanceAsOf = day
			}
		}
	case AwaitingBuffer:
		var v float64
		if v, err = input.ParseBuffer(msg, s.defaultBuffer); err == nil {
			if err = input.CheckNonNegative(input.FieldBuffer, v); err == nil {
				s.acc.Buffer = v
			}
		}
	}
	if err != nil {
		return Reply{Text: err.Error() + "\n" + s.prompt(), State: s.state, Err: err}
	}

	s.state++
	if s.state == Ready {
		return s.finish()
	}
	return s.reply(s.prompt())
}

func (s *Session) finish() Reply {
	in := s.acc
	days := s.days
	s.reset()

	r, err := pipeline.Compute(in, days)
	if err != nil {
		text := "Cannot compute a transfer: " + err.Error()
		if errors.Is(err, pipeline.ErrUndefinedAdjustment) {
			text += "\nUse /calculate to start again with an earlier balance date."
		}
		return Reply{Text: text, State: s.state, Done: true, Err: err}
	}

	text := "Calculation completed.\n\n" + report.Notices() + "\n" + report.Format(r)
	return Reply{Text: text, State: s.state, Done: true, Results: &r}
}

func (s *Session) prompt() string {
	switch s.state {
	case AwaitingBalance:
		return "Enter Available Balance:"
	case AwaitingADB:
		return "Enter Current Month Average Daily Balance:"
	case AwaitingIncrease:
		return "Enter Average Daily Balance Increase vs Last Month:"
	case AwaitingAsOf:
		return fmt.Sprintf("Enter Balance As Of (day 1-%d):", s.days)
	case AwaitingBuffer:
		return fmt.Sprintf("Enter Safety Buffer (optional, blank = %s):", strings.TrimSuffix(fmt.Sprintf("%.2f", s.defaultBuffer), ".00"))
	default:
		return idleHintText
	}
}

// collecting reports whether a calculation is waiting for more input.
func (s *Session) collecting() bool {
	return s.state >= AwaitingBalance && s.state < Ready
}

func (s *Session) reply(text string) Reply {
	return Reply{Text: text, State: s.state}
}

func (s *Session) reset() {
	s.state = Idle
	s.acc = model.Inputs{}
	s.days = 0
}

// Package submit implements the submission lifecycle of a study guide
// request: Idle, Submitting, then Success or Failure until dismissed.
package submit

import (
	"errors"
	"strings"

	"github.com/five82/lectio/internal/guideapi"
)

// Phase is the pipeline state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "idle"
	}
}

// GenericFailure is shown when the backend gave no reason.
const GenericFailure = "An unexpected error occurred."

// NetworkPrefix starts every transport failure message.
const NetworkPrefix = "Network error: "

var (
	// ErrInFlight rejects a submission while another one is running.
	ErrInFlight = errors.New("a submission is already in progress")
	// ErrNotIdle rejects a submission while a result is still displayed.
	ErrNotIdle = errors.New("dismiss the previous result first")
)

// Outcome is what the terminal surface shows.
type Outcome struct {
	Phase    Phase
	FileURL  string
	Filename string
	Message  string
}

// Pipeline tracks one submission at a time. The zero value is Idle.
type Pipeline struct {
	phase   Phase
	outcome Outcome
}

// Phase returns the current state.
func (p *Pipeline) Phase() Phase { return p.phase }

// Busy reports whether the busy indicator should be visible.
func (p *Pipeline) Busy() bool { return p.phase == PhaseSubmitting }

// Outcome returns the current result. It is the zero Outcome while idle and
// carries only PhaseSubmitting while busy.
func (p *Pipeline) Outcome() Outcome { return p.outcome }

// Begin enters Submitting.
func (p *Pipeline) Begin() error {
	switch p.phase {
	case PhaseSubmitting:
		return ErrInFlight
	case PhaseSuccess, PhaseFailure:
		return ErrNotIdle
	}
	p.phase = PhaseSubmitting
	p.outcome = Outcome{Phase: PhaseSubmitting}
	return nil
}

// Complete routes the backend answer to Success or Failure. It is ignored
// unless a submission is in flight.
func (p *Pipeline) Complete(resp guideapi.GenerateResponse, err error) Outcome {
	if p.phase != PhaseSubmitting {
		return p.outcome
	}
	if err == nil && resp.Success {
		p.phase = PhaseSuccess
		p.outcome = Outcome{
			Phase:    PhaseSuccess,
			FileURL:  resp.FileURL,
			Filename: resp.Filename,
			Message:  resp.Message,
		}
		return p.outcome
	}
	p.phase = PhaseFailure
	p.outcome = Outcome{Phase: PhaseFailure, Message: FailureMessage(resp, err)}
	return p.outcome
}

// Dismiss returns to Idle from a terminal state. It does nothing while a
// submission is in flight.
func (p *Pipeline) Dismiss() {
	if p.phase == PhaseSubmitting {
		return
	}
	p.phase = PhaseIdle
	p.outcome = Outcome{}
}

// FailureMessage picks the text for the error surface: the transport error
// for network failures, otherwise the server's detail, otherwise a generic
// fallback.
func FailureMessage(resp guideapi.GenerateResponse, err error) string {
	var netErr *guideapi.NetworkError
	if errors.As(err, &netErr) {
		return NetworkPrefix + netErr.Err.Error()
	}
	if detail := guideapi.Detail(err); detail != "" {
		return detail
	}
	if detail := strings.TrimSpace(resp.Detail); detail != "" {
		return detail
	}
	return GenericFailure
}

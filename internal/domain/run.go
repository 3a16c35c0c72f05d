package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// RunState is the position of one in-flight orchestration run. It only exists
// in memory for the duration of the request.
type RunState string

const (
	StateStart            RunState = "START"
	StateQuoteRequested   RunState = "QUOTE_REQUESTED"
	StateQuoteFailed      RunState = "QUOTE_FAILED"
	StateQuoteReceived    RunState = "QUOTE_RECEIVED"
	StateInitialized      RunState = "INITIALIZED"
	StateInitializeFailed RunState = "INITIALIZE_FAILED"
	StateFinalized        RunState = "FINALIZED"
	StateFinalizeFailed   RunState = "FINALIZE_FAILED"
)

// Run tracks a single quote -> initialize -> finalize sequence.
type Run struct {
	Reference string
	Kind      Kind
	State     RunState

	Quote       *Quote
	Initialized json.RawMessage
	Finalized   json.RawMessage
	FailedStep  string
	StartedAt   time.Time
	CompletedAt *time.Time
}

func NewRun(kind Kind, reference string) *Run {
	return &Run{
		Reference: reference,
		Kind:      kind,
		State:     StateStart,
		StartedAt: time.Now(),
	}
}

// ResumeRun rebuilds a run that already holds a quote, used by the two-phase
// trade API where finalize arrives in a separate request.
func ResumeRun(kind Kind, reference string, quote *Quote) *Run {
	return &Run{
		Reference: reference,
		Kind:      kind,
		State:     StateQuoteReceived,
		Quote:     quote,
		StartedAt: time.Now(),
	}
}

func (r *Run) MarkQuoteRequested() error {
	return r.transition(StateQuoteRequested)
}

func (r *Run) ReceiveQuote(q *Quote) error {
	if err := r.transition(StateQuoteReceived); err != nil {
		return err
	}
	r.Quote = q
	return nil
}

func (r *Run) FailQuote() error {
	r.FailedStep = "quote"
	return r.transition(StateQuoteFailed)
}

func (r *Run) MarkInitialized(payload json.RawMessage) error {
	if err := r.transition(StateInitialized); err != nil {
		return err
	}
	r.Initialized = payload
	return nil
}

func (r *Run) FailInitialize() error {
	r.FailedStep = "initialize"
	return r.transition(StateInitializeFailed)
}

func (r *Run) MarkFinalized(payload json.RawMessage) error {
	if err := r.transition(StateFinalized); err != nil {
		return err
	}
	r.Finalized = payload
	return nil
}

func (r *Run) FailFinalize() error {
	r.FailedStep = "finalize"
	return r.transition(StateFinalizeFailed)
}

// IsTerminal reports whether no further step may run.
func (r *Run) IsTerminal() bool {
	switch r.State {
	case StateQuoteFailed, StateInitializeFailed, StateFinalized, StateFinalizeFailed:
		return true
	}
	return false
}

func (r *Run) transition(target RunState) error {
	if err := r.canTransitionTo(target); err != nil {
		return err
	}
	r.State = target
	if r.IsTerminal() {
		now := time.Now()
		r.CompletedAt = &now
	}
	return nil
}

// QUOTE_RECEIVED may go straight to finalize for flows without an initialize step.
func (r *Run) canTransitionTo(target RunState) error {
	switch r.State {
	case StateStart:
		return r.allow(target, StateQuoteRequested)
	case StateQuoteRequested:
		return r.allow(target, StateQuoteReceived, StateQuoteFailed)
	case StateQuoteReceived:
		return r.allow(target, StateInitialized, StateInitializeFailed, StateFinalized, StateFinalizeFailed)
	case StateInitialized:
		return r.allow(target, StateFinalized, StateFinalizeFailed)
	default:
		return NewInvalidTransitionError(r.State, target)
	}
}

func (r *Run) allow(target RunState, allowed ...RunState) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(r.State, target)
}

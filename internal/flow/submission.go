// Package flow drives a single investment submission through amount entry,
// an explicit confirmation step, and the commit. It is the only mutating
// entry point into the investment recorder from the user-facing side.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"skillfund/internal/domain"
)

// State of a submission flow instance.
type State string

const (
	StateIdle        State = "idle"
	StateAmountEntry State = "amount_entry"
	StateConfirming  State = "confirming"
	StateCommitting  State = "committing"
	StateDone        State = "done"
	// StateFailed is terminal and entered only through Abandon. A failed
	// commit instead returns to StateAmountEntry with the entered amount
	// intact, so the user can correct and resubmit.
	StateFailed State = "failed"
)

var (
	ErrInvalidTransition = errors.New("invalid submission flow transition")
	ErrAbandoned         = errors.New("submission abandoned")
)

// Submitter is the recorder-side contract the flow commits through.
type Submitter interface {
	Submit(ctx context.Context, investorID, learnerID string, amount decimal.Decimal, model domain.ReturnModel) (*domain.Investment, error)
}

// Flow is one submission attempt by one user. Not safe for concurrent use;
// each session drives its own instance. The flow never retries on its own:
// an over-commitment result means the funding changed and the user must
// re-decide with fresh numbers.
type Flow struct {
	submitter Submitter

	state      State
	investorID string
	learnerID  string
	model      domain.ReturnModel
	remaining  decimal.Decimal
	amount     decimal.Decimal
	result     *domain.Investment
	lastErr    error
}

func New(submitter Submitter) *Flow {
	return &Flow{submitter: submitter, state: StateIdle}
}

func (f *Flow) State() State { return f.state }

// Amount returns the currently entered amount; preserved across a failed
// commit so the user can correct it.
func (f *Flow) Amount() decimal.Decimal { return f.amount }

// Result returns the recorded investment once the flow is done.
func (f *Flow) Result() *domain.Investment { return f.result }

// Err returns the error surfaced by the last failed transition.
func (f *Flow) Err() error { return f.lastErr }

// Begin selects a learner and moves Idle -> AmountEntry. The remaining
// amount is the last value the client read; it is advisory only, the
// authoritative check happens in the recorder.
func (f *Flow) Begin(investorID, learnerID string, model domain.ReturnModel, remaining decimal.Decimal) error {
	if f.state != StateIdle {
		return fmt.Errorf("%w: begin from %s", ErrInvalidTransition, f.state)
	}
	f.investorID = investorID
	f.learnerID = learnerID
	f.model = model
	f.remaining = remaining
	f.state = StateAmountEntry
	return nil
}

// EnterAmount parses and soft-checks the amount, then moves
// AmountEntry -> Confirming. A syntactically invalid, non-positive, or
// over-remaining amount keeps the flow in AmountEntry.
func (f *Flow) EnterAmount(raw string) error {
	if f.state != StateAmountEntry {
		return fmt.Errorf("%w: enter amount from %s", ErrInvalidTransition, f.state)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		f.lastErr = domain.ErrInvalidAmount
		return domain.ErrInvalidAmount
	}
	if !amount.IsPositive() {
		f.lastErr = domain.ErrInvalidAmount
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(f.remaining) {
		f.lastErr = domain.ErrOverCommitment
		return domain.ErrOverCommitment
	}
	f.amount = amount
	f.lastErr = nil
	f.state = StateConfirming
	return nil
}

// Back cancels the confirmation step, Confirming -> AmountEntry.
func (f *Flow) Back() error {
	if f.state != StateConfirming {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, f.state)
	}
	f.state = StateAmountEntry
	return nil
}

// Confirm is the second affirmative user action. It moves Confirming ->
// Committing and submits. On success the flow terminates in Done; on any
// recorder error it surfaces the error and returns to AmountEntry with the
// entered amount intact.
func (f *Flow) Confirm(ctx context.Context) (*domain.Investment, error) {
	if f.state != StateConfirming {
		return nil, fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, f.state)
	}
	f.state = StateCommitting

	inv, err := f.submitter.Submit(ctx, f.investorID, f.learnerID, f.amount, f.model)
	if err != nil {
		f.lastErr = err
		f.state = StateAmountEntry
		return nil, err
	}

	f.result = inv
	f.lastErr = nil
	f.state = StateDone
	return inv, nil
}

// Abandon terminates the flow from any non-terminal state.
func (f *Flow) Abandon() error {
	if f.state == StateDone || f.state == StateFailed {
		return fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, f.state)
	}
	f.lastErr = ErrAbandoned
	f.state = StateFailed
	return nil
}

package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/hellodex/daofin-dashboard/rpc"
	"github.com/hellodex/daofin-dashboard/util"
	"github.com/rs/zerolog/log"
)

type DepositState int

const (
	DepositIdle DepositState = iota
	DepositSubmitting
	DepositPending
	DepositConfirmed
	DepositFailed
)

func (s DepositState) String() string {
	switch s {
	case DepositIdle:
		return "idle"
	case DepositSubmitting:
		return "submitting"
	case DepositPending:
		return "pending"
	case DepositConfirmed:
		return "confirmed"
	case DepositFailed:
		return "failed"
	}
	return fmt.Sprintf("deposit state(%d)", int(s))
}

var (
	ErrInvalidAmount     = errors.New("deposit amount must be positive")
	ErrDepositInProgress = errors.New("a deposit is already in progress")
	ErrUnexpectedStep    = errors.New("unexpected deposit step")
	ErrDepositIncomplete = errors.New("deposit steps ended before completion")
)

// DepositError is the reason a deposit failed. State is where the workflow
// was when it happened.
type DepositError struct {
	State  DepositState
	TxHash string
	Err    error
}

func (e *DepositError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("deposit failed while %s (tx %s): %v", e.State, e.TxHash, e.Err)
	}
	return fmt.Sprintf("deposit failed while %s: %v", e.State, e.Err)
}

func (e *DepositError) Unwrap() error {
	return e.Err
}

type DepositStatus struct {
	State  DepositState
	TxHash string
	Err    *DepositError
}

// Confirmer waits for a mined transaction. *rpc.Client implements it.
type Confirmer interface {
	WaitForReceipt(ctx context.Context, txHash string) (*rpc.Receipt, error)
}

// DepositWorkflow sequences the steps of one deposit transaction:
// Idle, Submitting, Pending(txHash), then Confirmed or Failed(reason). The
// first error ends it. A finished workflow can be submitted again.
type DepositWorkflow struct {
	methods   client.Methods
	confirmer Confirmer

	mu     sync.Mutex
	status DepositStatus

	subMu  sync.Mutex
	subs   map[int]func(DepositStatus)
	nextID int
}

// NewDepositWorkflow drives deposits through methods. confirmer is optional;
// when set, the DONE step is only accepted once the receipt succeeded.
func NewDepositWorkflow(methods client.Methods, confirmer Confirmer) *DepositWorkflow {
	return &DepositWorkflow{
		methods:   methods,
		confirmer: confirmer,
		subs:      map[int]func(DepositStatus){},
	}
}

func (w *DepositWorkflow) Status() DepositStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Subscribe registers fn for every transition.
func (w *DepositWorkflow) Subscribe(fn func(DepositStatus)) func() {
	w.subMu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.subMu.Unlock()

	return func() {
		w.subMu.Lock()
		delete(w.subs, id)
		w.subMu.Unlock()
	}
}

// Submit deposits amount, given in whole native units, and blocks until the
// workflow is Confirmed or Failed. Failures are returned as *DepositError;
// submitting while another deposit runs returns ErrDepositInProgress.
func (w *DepositWorkflow) Submit(ctx context.Context, amount string) error {
	w.mu.Lock()
	if w.status.State == DepositSubmitting || w.status.State == DepositPending {
		w.mu.Unlock()
		return ErrDepositInProgress
	}
	w.status = DepositStatus{State: DepositSubmitting}
	w.mu.Unlock()
	w.transition(DepositStatus{State: DepositSubmitting})

	if w.methods == nil {
		return w.fail(client.ErrClientNotReady)
	}
	wei, err := util.ParseEther(amount)
	if err != nil {
		return w.fail(fmt.Errorf("%w: %v", ErrInvalidAmount, err))
	}
	if wei.Sign() <= 0 {
		return w.fail(ErrInvalidAmount)
	}
	logger.WithDepositCategory(log.Info()).Str("amount", util.FormatEtherBig(wei, 18)).Msg("deposit submitted")

	for step, err := range w.methods.Deposit(ctx, wei) {
		if err != nil {
			return w.fail(err)
		}
		if err := w.Handle(ctx, step); err != nil {
			return err
		}
		if w.Status().State == DepositConfirmed {
			return nil
		}
	}
	if err := ctx.Err(); err != nil {
		return w.fail(err)
	}
	return w.fail(ErrDepositIncomplete)
}

// Handle applies one step event. Steps that do not fit the current state fail
// the workflow.
func (w *DepositWorkflow) Handle(ctx context.Context, step client.DepositStepValue) error {
	current := w.Status()

	switch {
	case step.Key == client.DepositStepDepositing && current.State == DepositSubmitting:
		w.transition(DepositStatus{State: DepositPending, TxHash: step.TxHash})
		logger.WithDepositCategory(log.Info()).Str("tx", step.TxHash).Msg("deposit pending")
		return nil

	case step.Key == client.DepositStepDone && current.State == DepositPending:
		if w.confirmer != nil {
			if _, err := w.confirmer.WaitForReceipt(ctx, current.TxHash); err != nil {
				return w.fail(err)
			}
		}
		w.transition(DepositStatus{State: DepositConfirmed, TxHash: current.TxHash})
		logger.WithDepositCategory(log.Info()).Str("tx", current.TxHash).Msg("deposit confirmed")
		return nil
	}

	return w.fail(fmt.Errorf("%w %q while %s", ErrUnexpectedStep, step.Key, current.State))
}

func (w *DepositWorkflow) fail(err error) error {
	current := w.Status()
	depositErr := &DepositError{State: current.State, TxHash: current.TxHash, Err: err}
	logger.WithDepositCategory(log.Error()).Err(depositErr).Send()
	w.transition(DepositStatus{State: DepositFailed, TxHash: current.TxHash, Err: depositErr})
	return depositErr
}

func (w *DepositWorkflow) transition(status DepositStatus) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()

	w.subMu.Lock()
	defer w.subMu.Unlock()
	for _, fn := range w.subs {
		fn(status)
	}
}

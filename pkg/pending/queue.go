// Package pending holds transfers deferred until a security period has
// passed. Each record can be executed only inside a bounded window after its
// execute-after time; expired records stay until canceled.
package pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ErrDuplicateID is returned when enqueuing an id that is already queued.
var ErrDuplicateID = errors.New("duplicate pending transfer id")

// ErrNotFound is returned for an id that is not queued.
var ErrNotFound = errors.New("pending transfer not found")

// ErrOutsideExecutionWindow is returned when executing before or after the window.
var ErrOutsideExecutionWindow = errors.New("outside execution window")

// WindowError carries the window bounds of a failed execution.
type WindowError struct {
	ID    common.Hash
	Start time.Time
	End   time.Time
	Now   time.Time
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: %s may execute from %s until %s, now %s",
		ErrOutsideExecutionWindow, e.ID.Hex(), e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *WindowError) Unwrap() error {
	return ErrOutsideExecutionWindow
}

// Transfer is one deferred transfer.
type Transfer struct {
	ID           common.Hash
	Account      common.Address
	Token        common.Address
	Target       common.Address
	Amount       *uint256.Int
	Data         []byte
	CreationRef  uint64
	ExecuteAfter time.Time
}

// Window returns the first and last instants the transfer may execute.
func (t Transfer) Window(securityWindow time.Duration) (time.Time, time.Time) {
	return t.ExecuteAfter, t.ExecuteAfter.Add(securityWindow)
}

// State reports where the transfer is in its window at now.
func (t Transfer) State(now time.Time, securityWindow time.Duration) models.PendingStatus {
	start, end := t.Window(securityWindow)
	switch {
	case now.Before(start):
		return models.WAITING
	case now.After(end):
		return models.EXPIRED
	default:
		return models.EXECUTABLE
	}
}

// Request returns the tuple the transfer's id is derived from.
func (t Transfer) Request() Request {
	return Request{
		Kind:        KindTransfer,
		Token:       t.Token,
		Target:      t.Target,
		Amount:      t.Amount,
		Data:        t.Data,
		CreationRef: t.CreationRef,
	}
}

// Store persists pending transfers. Insert fails with storage.ErrAlreadyExists
// for a queued id; Get and Delete fail with storage.ErrNotFound for an unknown
// one. NextCreationRef returns a fresh, strictly increasing value per account.
type Store interface {
	GetPendingTransfer(ctx context.Context, account common.Address, id common.Hash) (*Transfer, error)
	InsertPendingTransfer(ctx context.Context, transfer *Transfer) error
	DeletePendingTransfer(ctx context.Context, account common.Address, id common.Hash) error
	ListPendingTransfers(ctx context.Context, account common.Address) ([]Transfer, error)
	NextCreationRef(ctx context.Context, account common.Address) (uint64, error)
}

// Scanner finds queued transfers across accounts whose execute-after time is
// at or before dueBy, expired ones included.
type Scanner interface {
	ScanPendingTransfers(ctx context.Context, dueBy time.Time) ([]Transfer, error)
}

// Queue applies the pending-transfer rules on top of a Store.
type Queue struct {
	store          Store
	securityPeriod time.Duration
	securityWindow time.Duration
}

// NewQueue creates a queue. Records become executable securityPeriod after
// creation and stay executable for securityWindow.
func NewQueue(store Store, securityPeriod, securityWindow time.Duration) *Queue {
	return &Queue{store: store, securityPeriod: securityPeriod, securityWindow: securityWindow}
}

// SecurityWindow is the length of the execution window.
func (q *Queue) SecurityWindow() time.Duration {
	return q.securityWindow
}

// Create derives a fresh id for the transfer and enqueues it with
// ExecuteAfter = now+securityPeriod.
func (q *Queue) Create(ctx context.Context, account, token, target common.Address, amount *uint256.Int, data []byte, now time.Time) (*Transfer, error) {
	ref, err := q.store.NextCreationRef(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate creation ref: %w", err)
	}
	t := &Transfer{
		Account:      account,
		Token:        token,
		Target:       target,
		Amount:       new(uint256.Int).Set(amount),
		Data:         append([]byte(nil), data...),
		CreationRef:  ref,
		ExecuteAfter: now.Add(q.securityPeriod),
	}
	t.ID = ID(t.Request())
	if err := q.Enqueue(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Enqueue stores t under its id.
func (q *Queue) Enqueue(ctx context.Context, t *Transfer) error {
	if err := q.store.InsertPendingTransfer(ctx, t); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID.Hex())
		}
		return fmt.Errorf("failed to enqueue pending transfer: %w", err)
	}
	return nil
}

// Restore puts back a transfer removed by Execute whose value movement then failed.
func (q *Queue) Restore(ctx context.Context, t *Transfer) error {
	return q.Enqueue(ctx, t)
}

// Execute removes the transfer when now is inside its window. Outside the
// window the record is left untouched. An unknown id fails with an error
// matching both ErrNotFound and ErrOutsideExecutionWindow.
func (q *Queue) Execute(ctx context.Context, account common.Address, id common.Hash, now time.Time) (*Transfer, error) {
	t, err := q.Get(ctx, account, id)
	if errors.Is(err, ErrNotFound) {
		return nil, unknownForExecute(id)
	}
	if err != nil {
		return nil, err
	}
	if t.State(now, q.securityWindow) != models.EXECUTABLE {
		start, end := t.Window(q.securityWindow)
		return nil, &WindowError{ID: id, Start: start, End: end, Now: now}
	}
	if err := q.store.DeletePendingTransfer(ctx, account, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, unknownForExecute(id)
		}
		return nil, fmt.Errorf("failed to delete pending transfer: %w", err)
	}
	return t, nil
}

// Cancel removes the transfer whatever its state.
func (q *Queue) Cancel(ctx context.Context, account common.Address, id common.Hash) (*Transfer, error) {
	t, err := q.Get(ctx, account, id)
	if err != nil {
		return nil, err
	}
	if err := q.store.DeletePendingTransfer(ctx, account, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("failed to delete pending transfer: %w", err)
	}
	return t, nil
}

// Get returns the queued transfer.
func (q *Queue) Get(ctx context.Context, account common.Address, id common.Hash) (*Transfer, error) {
	t, err := q.store.GetPendingTransfer(ctx, account, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transfer: %w", err)
	}
	return t, nil
}

// ExecuteAfter returns when the transfer becomes executable, or the zero time
// when the id is not queued.
func (q *Queue) ExecuteAfter(ctx context.Context, account common.Address, id common.Hash) (time.Time, error) {
	t, err := q.Get(ctx, account, id)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return t.ExecuteAfter, nil
}

// List returns every queued transfer of account, expired ones included.
func (q *Queue) List(ctx context.Context, account common.Address) ([]Transfer, error) {
	ts, err := q.store.ListPendingTransfers(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transfers: %w", err)
	}
	return ts, nil
}

func notFound(id common.Hash) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
}

// An id that is not queued has no window; executing it is reported as both.
func unknownForExecute(id common.Hash) error {
	return fmt.Errorf("%w (%w): %s", ErrNotFound, ErrOutsideExecutionWindow, id.Hex())
}

// Package keeper executes queued transfers once their security period has
// elapsed. It is woken by the scheduler queue and swept by reconciliation.
package keeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/scheduler"
)

// Executor runs a queued transfer. Implementations return errors wrapping
// pending.ErrNotFound for an id that is no longer queued and
// pending.ErrOutsideExecutionWindow when the window is not open.
type Executor interface {
	Execute(ctx context.Context, transfer *pending.Transfer) error
}

// Outcome is what Settle did with a message.
type Outcome string

const (
	Executed    Outcome = "executed"
	Rescheduled Outcome = "rescheduled"
	Expired     Outcome = "expired"
	Gone        Outcome = "gone"
)

// Keeper settles queued transfers.
type Keeper struct {
	Executor       Executor
	Scheduler      scheduler.CronScheduler
	SecurityWindow time.Duration
	Clock          clock.Clock
	Logger         *slog.Logger
}

// New creates a keeper using the wall clock and the default logger.
func New(executor Executor, sched scheduler.CronScheduler, securityWindow time.Duration) *Keeper {
	return &Keeper{
		Executor:       executor,
		Scheduler:      sched,
		SecurityWindow: securityWindow,
		Clock:          clock.New(),
		Logger:         slog.Default(),
	}
}

// Settle executes the transfer if its window is open, re-schedules it if the
// window has not opened yet, and drops it once expired or no longer queued.
// A returned error means the delivery should be retried.
func (k *Keeper) Settle(ctx context.Context, transfer *pending.Transfer) (Outcome, error) {
	now := k.Clock.Now()
	start, end := transfer.Window(k.SecurityWindow)
	log := k.Logger.With("account", transfer.Account.Hex(), "id", transfer.ID.Hex())

	if now.Before(start) {
		if k.Scheduler == nil {
			return Rescheduled, nil
		}
		if err := k.Scheduler.SchedulePendingTransfer(ctx, transfer, start.Sub(now)); err != nil {
			return "", fmt.Errorf("failed to re-schedule %s: %w", transfer.ID.Hex(), err)
		}
		log.Debug("pending transfer not yet executable, re-scheduled", "execute_after", start)
		return Rescheduled, nil
	}
	if now.After(end) {
		log.Warn("pending transfer expired before execution", "window_end", end)
		return Expired, nil
	}

	err := k.Executor.Execute(ctx, transfer)
	switch {
	case err == nil:
		log.Info("pending transfer executed")
		return Executed, nil
	case errors.Is(err, pending.ErrNotFound):
		log.Info("pending transfer no longer queued")
		return Gone, nil
	case errors.Is(err, pending.ErrOutsideExecutionWindow):
		log.Warn("pending transfer rejected outside its window", "error", err)
		return Expired, nil
	default:
		return "", fmt.Errorf("failed to execute %s: %w", transfer.ID.Hex(), err)
	}
}

// Reconcile re-enqueues transfers whose window is open but which are still
// queued, typically because a delivery was lost. It returns how many were
// enqueued.
func (k *Keeper) Reconcile(ctx context.Context, scanner pending.Scanner) (int, error) {
	due, err := k.executable(ctx, scanner)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range due {
		if err := k.Scheduler.SchedulePendingTransfer(ctx, &due[i], 0); err != nil {
			k.Logger.Error("failed to re-enqueue pending transfer", "id", due[i].ID.Hex(), "error", err)
			continue
		}
		n++
	}
	return n, nil
}

// Sweep settles every executable transfer in place. Used when no queue is
// configured.
func (k *Keeper) Sweep(ctx context.Context, scanner pending.Scanner) (int, error) {
	due, err := k.executable(ctx, scanner)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range due {
		outcome, err := k.Settle(ctx, &due[i])
		if err != nil {
			k.Logger.Error("failed to settle pending transfer", "id", due[i].ID.Hex(), "error", err)
			continue
		}
		if outcome == Executed {
			n++
		}
	}
	return n, nil
}

// Run sweeps every interval until ctx is done.
func (k *Keeper) Run(ctx context.Context, scanner pending.Scanner, interval time.Duration) {
	ticker := k.Clock.Ticker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := k.Sweep(ctx, scanner); err != nil {
				k.Logger.Error("pending transfer sweep failed", "error", err)
			}
		}
	}
}

func (k *Keeper) executable(ctx context.Context, scanner pending.Scanner) ([]pending.Transfer, error) {
	now := k.Clock.Now()
	due, err := scanner.ScanPendingTransfers(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending transfers: %w", err)
	}
	open := due[:0]
	for _, t := range due {
		if _, end := t.Window(k.SecurityWindow); !now.After(end) {
			open = append(open, t)
		}
	}
	return open, nil
}

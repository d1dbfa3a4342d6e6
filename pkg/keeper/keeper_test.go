package keeper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/keeper/mocks"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	schedmocks "github.com/chris/wallet-transfer-policy/pkg/scheduler/mocks"
	"github.com/chris/wallet-transfer-policy/pkg/storage/memory"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const securityWindow = time.Hour

var start = time.Unix(1_700_000_000, 0).UTC()

func testTransfer(ref uint64, executeAfter time.Time) *pending.Transfer {
	return &pending.Transfer{
		ID:           common.Hash{31: byte(ref)},
		Account:      common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		Token:        common.HexToAddress("0x00000000000000000000000000000000000000d4"),
		Target:       common.HexToAddress("0x00000000000000000000000000000000000000b2"),
		Amount:       uint256.NewInt(100),
		CreationRef:  ref,
		ExecuteAfter: executeAfter,
	}
}

func newKeeper(executor Executor, sched *schedmocks.CronScheduler) (*Keeper, *clock.Mock) {
	clk := clock.NewMock()
	clk.Set(start)
	k := &Keeper{
		Executor:       executor,
		SecurityWindow: securityWindow,
		Clock:          clk,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if sched != nil {
		k.Scheduler = sched
	}
	return k, clk
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	t.Run("Executes Inside Window", func(t *testing.T) {
		transfer := testTransfer(1, start.Add(-time.Minute))
		executor := new(mocks.Executor)
		executor.On("Execute", mock.Anything, transfer).Return(nil)

		k, _ := newKeeper(executor, nil)
		outcome, err := k.Settle(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, Executed, outcome)
		executor.AssertExpectations(t)
	})

	t.Run("Reschedules Before Window", func(t *testing.T) {
		transfer := testTransfer(1, start.Add(10*time.Minute))
		executor := new(mocks.Executor)
		sched := new(schedmocks.CronScheduler)
		sched.On("SchedulePendingTransfer", mock.Anything, transfer, 10*time.Minute).Return(nil)

		k, _ := newKeeper(executor, sched)
		outcome, err := k.Settle(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, Rescheduled, outcome)
		executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		sched.AssertExpectations(t)
	})

	t.Run("Reschedule Error", func(t *testing.T) {
		transfer := testTransfer(1, start.Add(time.Minute))
		sched := new(schedmocks.CronScheduler)
		sched.On("SchedulePendingTransfer", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("queue unavailable"))

		k, _ := newKeeper(new(mocks.Executor), sched)
		_, err := k.Settle(ctx, transfer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to re-schedule")
	})

	t.Run("Drops Expired", func(t *testing.T) {
		transfer := testTransfer(1, start.Add(-2*securityWindow))
		executor := new(mocks.Executor)

		k, _ := newKeeper(executor, nil)
		outcome, err := k.Settle(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, Expired, outcome)
		executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("Already Gone", func(t *testing.T) {
		transfer := testTransfer(1, start)
		executor := new(mocks.Executor)
		executor.On("Execute", mock.Anything, transfer).
			Return(fmt.Errorf("%w (%w): x", pending.ErrNotFound, pending.ErrOutsideExecutionWindow))

		k, _ := newKeeper(executor, nil)
		outcome, err := k.Settle(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, Gone, outcome)
	})

	t.Run("Rejected Outside Window", func(t *testing.T) {
		transfer := testTransfer(1, start)
		executor := new(mocks.Executor)
		executor.On("Execute", mock.Anything, transfer).Return(&pending.WindowError{ID: transfer.ID})

		k, _ := newKeeper(executor, nil)
		outcome, err := k.Settle(ctx, transfer)

		require.NoError(t, err)
		assert.Equal(t, Expired, outcome)
	})

	t.Run("Execute Error Is Retried", func(t *testing.T) {
		transfer := testTransfer(1, start)
		executor := new(mocks.Executor)
		executor.On("Execute", mock.Anything, transfer).Return(errors.New("connection refused"))

		k, _ := newKeeper(executor, nil)
		_, err := k.Settle(ctx, transfer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute")
	})
}

func seed(t *testing.T, transfers ...*pending.Transfer) *memory.Store {
	store := memory.New()
	for _, tr := range transfers {
		require.NoError(t, store.InsertPendingTransfer(context.Background(), tr))
	}
	return store
}

func TestReconcile(t *testing.T) {
	due := testTransfer(1, start.Add(-time.Minute))
	expired := testTransfer(2, start.Add(-2*securityWindow))
	future := testTransfer(3, start.Add(time.Minute))
	store := seed(t, due, expired, future)

	sched := new(schedmocks.CronScheduler)
	sched.On("SchedulePendingTransfer", mock.Anything, mock.MatchedBy(func(tr *pending.Transfer) bool {
		return tr.ID == due.ID
	}), time.Duration(0)).Return(nil).Once()

	k, _ := newKeeper(new(mocks.Executor), sched)
	n, err := k.Reconcile(context.Background(), store)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	sched.AssertExpectations(t)
}

func TestSweep(t *testing.T) {
	first := testTransfer(1, start.Add(-time.Minute))
	second := testTransfer(2, start)
	store := seed(t, first, second)

	executor := new(mocks.Executor)
	executor.On("Execute", mock.Anything, mock.MatchedBy(func(tr *pending.Transfer) bool {
		return tr.ID == first.ID
	})).Return(nil)
	executor.On("Execute", mock.Anything, mock.MatchedBy(func(tr *pending.Transfer) bool {
		return tr.ID == second.ID
	})).Return(errors.New("connection refused"))

	k, _ := newKeeper(executor, nil)
	n, err := k.Sweep(context.Background(), store)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	executor.AssertNumberOfCalls(t, "Execute", 2)
}

func TestRun(t *testing.T) {
	transfer := testTransfer(1, start)
	store := seed(t, transfer)

	executed := make(chan struct{})
	var once sync.Once
	executor := new(mocks.Executor)
	executor.On("Execute", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		once.Do(func() { close(executed) })
	}).Return(nil)

	k, clk := newKeeper(executor, nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		k.Run(ctx, store, time.Second)
		close(stopped)
	}()

	require.Eventually(t, func() bool {
		clk.Add(time.Second)
		select {
		case <-executed:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

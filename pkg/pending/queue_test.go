package pending_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/storage/memory"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	account = common.HexToAddress("0x1000000000000000000000000000000000000001")
	token   = common.HexToAddress("0x2000000000000000000000000000000000000002")
	target  = common.HexToAddress("0x3000000000000000000000000000000000000003")
	t0      = time.Unix(1_700_000_000, 0).UTC()
)

func newQueue() *pending.Queue {
	return pending.NewQueue(memory.New(), 2*time.Second, 2*time.Second)
}

func TestID(t *testing.T) {
	req := pending.Request{
		Kind:        pending.KindTransfer,
		Token:       token,
		Target:      target,
		Amount:      uint256.NewInt(10),
		Data:        []byte{0xde, 0xad},
		CreationRef: 7,
	}
	assert.Equal(t, pending.ID(req), pending.ID(req))

	other := req
	other.CreationRef = 8
	assert.NotEqual(t, pending.ID(req), pending.ID(other))

	other = req
	other.Data = nil
	assert.NotEqual(t, pending.ID(req), pending.ID(other))
}

func TestQueueLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Execution Window", func(t *testing.T) {
		q := newQueue()
		tr, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)
		assert.Equal(t, t0.Add(2*time.Second), tr.ExecuteAfter)
		assert.Equal(t, pending.ID(tr.Request()), tr.ID)

		_, err = q.Execute(ctx, account, tr.ID, t0.Add(time.Second))
		assert.True(t, errors.Is(err, pending.ErrOutsideExecutionWindow))
		var werr *pending.WindowError
		require.True(t, errors.As(err, &werr))
		assert.Equal(t, t0.Add(2*time.Second), werr.Start)
		assert.Equal(t, t0.Add(4*time.Second), werr.End)

		executeAfter, err := q.ExecuteAfter(ctx, account, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, tr.ExecuteAfter, executeAfter)

		executed, err := q.Execute(ctx, account, tr.ID, t0.Add(3*time.Second))
		require.NoError(t, err)
		assert.Equal(t, tr.ID, executed.ID)

		_, err = q.Execute(ctx, account, tr.ID, t0.Add(10*time.Second))
		assert.True(t, errors.Is(err, pending.ErrOutsideExecutionWindow))
		assert.True(t, errors.Is(err, pending.ErrNotFound))

		executeAfter, err = q.ExecuteAfter(ctx, account, tr.ID)
		require.NoError(t, err)
		assert.True(t, executeAfter.IsZero())
	})

	t.Run("Window Bounds Are Inclusive", func(t *testing.T) {
		q := newQueue()
		tr, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)

		_, err = q.Execute(ctx, account, tr.ID, t0.Add(4*time.Second+time.Nanosecond))
		assert.True(t, errors.Is(err, pending.ErrOutsideExecutionWindow))

		_, err = q.Execute(ctx, account, tr.ID, t0.Add(4*time.Second))
		assert.NoError(t, err)
	})

	t.Run("Expired Entries Stay", func(t *testing.T) {
		q := newQueue()
		tr, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)

		_, err = q.Execute(ctx, account, tr.ID, t0.Add(time.Hour))
		assert.True(t, errors.Is(err, pending.ErrOutsideExecutionWindow))

		got, err := q.Get(ctx, account, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, models.EXPIRED, got.State(t0.Add(time.Hour), q.SecurityWindow()))
	})

	t.Run("Cancel", func(t *testing.T) {
		q := newQueue()
		tr, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)

		_, err = q.Cancel(ctx, account, tr.ID)
		require.NoError(t, err)

		_, err = q.Cancel(ctx, account, tr.ID)
		assert.True(t, errors.Is(err, pending.ErrNotFound))

		_, err = q.Execute(ctx, account, tr.ID, t0.Add(3*time.Second))
		assert.True(t, errors.Is(err, pending.ErrOutsideExecutionWindow))
	})

	t.Run("Identical Requests Get Distinct Ids", func(t *testing.T) {
		q := newQueue()
		a, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)
		b, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Greater(t, b.CreationRef, a.CreationRef)

		list, err := q.List(ctx, account)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Duplicate Id", func(t *testing.T) {
		q := newQueue()
		tr, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)
		err = q.Enqueue(ctx, tr)
		assert.True(t, errors.Is(err, pending.ErrDuplicateID))
	})

	t.Run("Restore", func(t *testing.T) {
		q := newQueue()
		tr, err := q.Create(ctx, account, token, target, uint256.NewInt(10), nil, t0)
		require.NoError(t, err)
		executed, err := q.Execute(ctx, account, tr.ID, t0.Add(2*time.Second))
		require.NoError(t, err)
		require.NoError(t, q.Restore(ctx, executed))

		_, err = q.Get(ctx, account, tr.ID)
		assert.NoError(t, err)
	})
}

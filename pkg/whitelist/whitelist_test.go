package whitelist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/storage/memory"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	account = common.HexToAddress("0x1000000000000000000000000000000000000001")
	target  = common.HexToAddress("0x2000000000000000000000000000000000000002")
	t0      = time.Unix(1_700_000_000, 0).UTC()
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("Activation Delay", func(t *testing.T) {
		reg := whitelist.NewRegistry(memory.New(), 2*time.Second)
		entry, err := reg.Add(ctx, account, target, t0)
		require.NoError(t, err)
		assert.Equal(t, t0.Add(2*time.Second), entry.WhitelistAfter)

		active, err := reg.IsActive(ctx, account, target, t0.Add(time.Second))
		require.NoError(t, err)
		assert.False(t, active)

		active, err = reg.IsActive(ctx, account, target, t0.Add(3*time.Second))
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("Already Whitelisted", func(t *testing.T) {
		reg := whitelist.NewRegistry(memory.New(), 2*time.Second)
		_, err := reg.Add(ctx, account, target, t0)
		require.NoError(t, err)

		_, err = reg.Add(ctx, account, target, t0.Add(time.Second))
		assert.True(t, errors.Is(err, whitelist.ErrAlreadyWhitelisted))

		_, err = reg.Add(ctx, account, target, t0.Add(time.Hour))
		assert.True(t, errors.Is(err, whitelist.ErrAlreadyWhitelisted))
	})

	t.Run("Remove Is Immediate", func(t *testing.T) {
		reg := whitelist.NewRegistry(memory.New(), 2*time.Second)
		_, err := reg.Add(ctx, account, target, t0)
		require.NoError(t, err)

		require.NoError(t, reg.Remove(ctx, account, target))
		active, err := reg.IsActive(ctx, account, target, t0.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, active)

		err = reg.Remove(ctx, account, target)
		assert.True(t, errors.Is(err, whitelist.ErrNotWhitelisted))
	})

	t.Run("List", func(t *testing.T) {
		reg := whitelist.NewRegistry(memory.New(), 2*time.Second)
		other := common.HexToAddress("0x3000000000000000000000000000000000000003")
		_, err := reg.Add(ctx, account, target, t0)
		require.NoError(t, err)
		_, err = reg.Add(ctx, account, other, t0)
		require.NoError(t, err)
		_, err = reg.Add(ctx, other, target, t0)
		require.NoError(t, err)

		entries, err := reg.List(ctx, account)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, whitelist.StatePending, entries[0].State(t0))
		assert.Equal(t, whitelist.StateActive, entries[1].State(t0.Add(2*time.Second)))
	})
}

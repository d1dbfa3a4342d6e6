package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	account = common.HexToAddress("0x1000000000000000000000000000000000000001")
	target  = common.HexToAddress("0x2000000000000000000000000000000000000002")
	token   = common.HexToAddress("0x3000000000000000000000000000000000000003")
	weth    = common.HexToAddress("0x4000000000000000000000000000000000000004")
)

func TestMoveValue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		l := NewLedger()
		l.Mint(token, account, uint256.NewInt(100))

		require.NoError(t, l.MoveValue(ctx, account, token, target, uint256.NewInt(40)))

		bal, _ := l.BalanceOf(ctx, account, token)
		assert.Equal(t, uint64(60), bal.Uint64())
		bal, _ = l.BalanceOf(ctx, target, token)
		assert.Equal(t, uint64(40), bal.Uint64())

		entries, err := l.ListLedgerEntries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, entries[0].Reference, entries[1].Reference)
		assert.Equal(t, "40", entries[0].Credit)
		assert.Equal(t, "40", entries[1].Debit)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		l := NewLedger()
		err := l.MoveValue(ctx, account, token, target, uint256.NewInt(1))
		assert.True(t, errors.Is(err, custody.ErrInsufficientBalance))
	})
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Spends Allowance", func(t *testing.T) {
		l := NewLedger()
		l.Mint(token, account, uint256.NewInt(100))
		require.NoError(t, l.SetAllowance(ctx, account, token, target, uint256.NewInt(50)))
		l.Deploy(target, ContractFunc(func(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			return nil, env.TransferFrom(token, caller, env.Self(), uint256.NewInt(30))
		}))

		_, err := l.Invoke(ctx, account, target, nil, nil)
		require.NoError(t, err)

		a, _ := l.Allowance(ctx, account, token, target)
		assert.Equal(t, uint64(20), a.Uint64())
		bal, _ := l.BalanceOf(ctx, target, token)
		assert.Equal(t, uint64(30), bal.Uint64())
	})

	t.Run("Reverts On Error", func(t *testing.T) {
		l := NewLedger()
		l.Mint(custody.NativeAsset, account, uint256.NewInt(10))
		l.Mint(token, account, uint256.NewInt(100))
		require.NoError(t, l.SetAllowance(ctx, account, token, target, uint256.NewInt(50)))
		l.Deploy(target, ContractFunc(func(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			if err := env.TransferFrom(token, caller, env.Self(), uint256.NewInt(30)); err != nil {
				return nil, err
			}
			return nil, errors.New("boom")
		}))

		_, err := l.Invoke(ctx, account, target, uint256.NewInt(5), nil)
		assert.True(t, errors.Is(err, custody.ErrCallFailed))

		a, _ := l.Allowance(ctx, account, token, target)
		assert.Equal(t, uint64(50), a.Uint64())
		bal, _ := l.BalanceOf(ctx, account, custody.NativeAsset)
		assert.Equal(t, uint64(10), bal.Uint64())
		entries, _ := l.ListLedgerEntries(ctx, 0)
		assert.Empty(t, entries)
	})

	t.Run("Plain Value Transfer", func(t *testing.T) {
		l := NewLedger()
		l.Mint(custody.NativeAsset, account, uint256.NewInt(10))

		_, err := l.Invoke(ctx, account, target, uint256.NewInt(4), []byte{0x01})
		require.NoError(t, err)

		bal, _ := l.BalanceOf(ctx, target, custody.NativeAsset)
		assert.Equal(t, uint64(4), bal.Uint64())
	})

	t.Run("Wrapped Native Deposit", func(t *testing.T) {
		l := NewLedger()
		l.Deploy(weth, WrappedNative{})
		l.Mint(custody.NativeAsset, account, uint256.NewInt(10))

		_, err := l.Invoke(ctx, account, weth, uint256.NewInt(7), custody.DepositSelector)
		require.NoError(t, err)

		bal, _ := l.BalanceOf(ctx, account, weth)
		assert.Equal(t, uint64(7), bal.Uint64())
		bal, _ = l.BalanceOf(ctx, account, custody.NativeAsset)
		assert.Equal(t, uint64(3), bal.Uint64())
	})
}

func TestRevertIsolation(t *testing.T) {
	ctx := context.Background()
	other := common.HexToAddress("0x5000000000000000000000000000000000000005")
	recipient := common.HexToAddress("0x6000000000000000000000000000000000000006")

	// blocking deploys a contract at target that credits itself from the
	// caller, then waits for release before failing.
	blocking := func(l *Ledger) (entered, release chan struct{}) {
		entered, release = make(chan struct{}), make(chan struct{})
		l.Deploy(target, ContractFunc(func(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			if err := env.TransferFrom(token, caller, env.Self(), uint256.NewInt(30)); err != nil {
				return nil, err
			}
			close(entered)
			<-release
			return nil, errors.New("boom")
		}))
		return entered, release
	}

	t.Run("Other Account Transfer Survives", func(t *testing.T) {
		l := NewLedger()
		l.Mint(token, account, uint256.NewInt(100))
		l.Mint(token, other, uint256.NewInt(500))
		require.NoError(t, l.SetAllowance(ctx, account, token, target, uint256.NewInt(50)))
		entered, release := blocking(l)

		done := make(chan error)
		go func() {
			_, err := l.Invoke(ctx, account, target, nil, nil)
			done <- err
		}()
		<-entered
		require.NoError(t, l.MoveValue(ctx, other, token, recipient, uint256.NewInt(500)))
		close(release)
		assert.ErrorIs(t, <-done, custody.ErrCallFailed)

		bal, _ := l.BalanceOf(ctx, recipient, token)
		assert.Equal(t, uint64(500), bal.Uint64())
		bal, _ = l.BalanceOf(ctx, other, token)
		assert.Equal(t, uint64(0), bal.Uint64())
		bal, _ = l.BalanceOf(ctx, account, token)
		assert.Equal(t, uint64(100), bal.Uint64())
		a, _ := l.Allowance(ctx, account, token, target)
		assert.Equal(t, uint64(50), a.Uint64())
		entries, _ := l.ListLedgerEntries(ctx, 0)
		require.Len(t, entries, 2)
		assert.Equal(t, recipient.Hex(), entries[0].AccountID)
	})

	t.Run("Concurrent Credit To Same Holder Survives", func(t *testing.T) {
		l := NewLedger()
		l.Mint(token, account, uint256.NewInt(100))
		l.Mint(token, other, uint256.NewInt(7))
		require.NoError(t, l.SetAllowance(ctx, account, token, target, uint256.NewInt(50)))
		entered, release := blocking(l)

		done := make(chan error)
		go func() {
			_, err := l.Invoke(ctx, account, target, nil, nil)
			done <- err
		}()
		<-entered
		require.NoError(t, l.MoveValue(ctx, other, token, target, uint256.NewInt(7)))
		close(release)
		assert.Error(t, <-done)

		bal, _ := l.BalanceOf(ctx, target, token)
		assert.Equal(t, uint64(7), bal.Uint64())
	})

	t.Run("Nested Writes Revert With Outer Call", func(t *testing.T) {
		l := NewLedger()
		l.Mint(custody.NativeAsset, account, uint256.NewInt(10))
		l.Deploy(weth, WrappedNative{})
		l.Deploy(target, ContractFunc(func(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			if _, err := l.Invoke(ctx, caller, weth, uint256.NewInt(4), custody.DepositSelector); err != nil {
				return nil, err
			}
			if err := l.MoveValue(ctx, caller, custody.NativeAsset, env.Self(), uint256.NewInt(1)); err != nil {
				return nil, err
			}
			return nil, errors.New("boom")
		}))

		_, err := l.Invoke(ctx, account, target, nil, nil)
		require.Error(t, err)

		bal, _ := l.BalanceOf(ctx, account, custody.NativeAsset)
		assert.Equal(t, uint64(10), bal.Uint64())
		bal, _ = l.BalanceOf(ctx, account, weth)
		assert.Equal(t, uint64(0), bal.Uint64())
		entries, _ := l.ListLedgerEntries(ctx, 0)
		assert.Empty(t, entries)
	})

	t.Run("Failed Check Reverts", func(t *testing.T) {
		l := NewLedger()
		l.Mint(token, account, uint256.NewInt(100))
		require.NoError(t, l.SetAllowance(ctx, account, token, target, uint256.NewInt(50)))
		l.Deploy(target, ContractFunc(func(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			return nil, env.TransferFrom(token, caller, env.Self(), uint256.NewInt(30))
		}))

		_, err := l.InvokeChecked(ctx, account, target, nil, nil, func(context.Context) error {
			return errors.New("drew too much")
		})
		require.Error(t, err)

		a, _ := l.Allowance(ctx, account, token, target)
		assert.Equal(t, uint64(50), a.Uint64())
		bal, _ := l.BalanceOf(ctx, target, token)
		assert.Equal(t, uint64(0), bal.Uint64())
	})
}

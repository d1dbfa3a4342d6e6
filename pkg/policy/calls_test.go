package policy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/custody"
	custodymem "github.com/chris/wallet-transfer-policy/pkg/custody/memory"
	"github.com/chris/wallet-transfer-policy/pkg/events"
	"github.com/chris/wallet-transfer-policy/pkg/oracle"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contract = common.HexToAddress("0x000000000000000000000000000000000000C0DE")
	spender  = common.HexToAddress("0x0000000000000000000000000000000000005BE1")
)

// drawer pulls draw units of asset from the caller using spender's allowance.
func drawer(asset, spender common.Address, draw uint64) custodymem.Contract {
	return custodymem.ContractFunc(func(ctx context.Context, env *custodymem.Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
		if err := env.TransferFromAs(spender, asset, caller, env.Self(), uint256.NewInt(draw)); err != nil {
			return nil, err
		}
		return []byte{0x2a}, nil
	})
}

func (h *harness) allowance(t *testing.T, asset, spender common.Address) uint64 {
	t.Helper()
	v, err := h.ledger.Allowance(context.Background(), account, asset, spender)
	require.NoError(t, err)
	return v.Uint64()
}

// withToken gives the account a token priced one-to-one with the native unit.
func withToken(t *testing.T, h *harness, amount uint64) {
	t.Helper()
	h.ledger.Mint(token, account, uint256.NewInt(amount))
	require.NoError(t, h.prices.SetPrice(context.Background(), token, oracle.PriceScale))
}

func whitelisted(t *testing.T, h *harness, target common.Address) {
	t.Helper()
	_, err := h.engine.AddToWhitelist(h.ctx, account, target)
	require.NoError(t, err)
	h.clock.Add(3 * time.Second)
}

func TestApproveToken(t *testing.T) {
	t.Run("Within Limit", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 10*ethLimit)

		res, err := h.engine.ApproveToken(h.ctx, account, token, spender, uint256.NewInt(300))
		require.NoError(t, err)
		assert.Equal(t, uint64(300), res.Allowance.Uint64())
		assert.Equal(t, uint64(ethLimit-300), res.Unspent.Uint64())
		assert.Equal(t, uint64(300), h.allowance(t, token, spender))

		signals := h.events.OfType(events.ApprovalCompleted)
		require.Len(t, signals, 1)
		assert.Equal(t, spender.Hex(), signals[0].Attributes[events.AttrSpender])
	})

	t.Run("Only Increase Counts", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 10*ethLimit)

		_, err := h.engine.ApproveToken(h.ctx, account, token, spender, uint256.NewInt(10))
		require.NoError(t, err)
		_, err = h.engine.ApproveToken(h.ctx, account, token, spender, uint256.NewInt(15))
		require.NoError(t, err)
		assert.Equal(t, uint64(15), h.spent(t))

		_, err = h.engine.ApproveToken(h.ctx, account, token, spender, uint256.NewInt(4))
		require.NoError(t, err)
		assert.Equal(t, uint64(15), h.spent(t))
		assert.Equal(t, uint64(4), h.allowance(t, token, spender))
	})

	t.Run("Above Limit", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 10*ethLimit)

		_, err := h.engine.ApproveToken(h.ctx, account, token, spender, uint256.NewInt(ethLimit+1))
		assert.ErrorIs(t, err, policy.ErrAboveDailyLimit)

		var perr *policy.Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, uint64(ethLimit+1), perr.Requested.Uint64())
		assert.Equal(t, uint64(ethLimit), perr.Unspent.Uint64())
		assert.Equal(t, uint64(ethLimit), perr.Limit.Uint64())

		assert.Equal(t, uint64(0), h.allowance(t, token, spender))
		assert.Empty(t, h.events.OfType(events.ApprovalCompleted))
		transfers, err := h.engine.PendingTransfers(h.ctx, account)
		require.NoError(t, err)
		assert.Empty(t, transfers)
	})

	t.Run("Whitelisted Spender", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 10*ethLimit)
		whitelisted(t, h, spender)

		_, err := h.engine.ApproveToken(h.ctx, account, token, spender, uint256.NewInt(5*ethLimit))
		require.NoError(t, err)
		assert.Equal(t, uint64(5*ethLimit), h.allowance(t, token, spender))
		assert.Equal(t, uint64(0), h.spent(t))
	})
}

func TestCallContract(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h := newHarness(t)
		var got *uint256.Int
		h.ledger.Deploy(contract, custodymem.ContractFunc(func(ctx context.Context, env *custodymem.Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			got = value
			return []byte{0x01, 0x02}, nil
		}))

		res, err := h.engine.CallContract(h.ctx, account, contract, uint256.NewInt(400), []byte{0xab})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, res.Result)
		assert.Equal(t, uint64(ethLimit-400), res.Unspent.Uint64())
		require.NotNil(t, got)
		assert.Equal(t, uint64(400), got.Uint64())
		assert.Equal(t, uint64(400), h.balance(t, contract, custody.NativeAsset))

		signals := h.events.OfType(events.CallCompleted)
		require.Len(t, signals, 1)
		assert.Equal(t, "0x0102", signals[0].Attributes[events.AttrResult])
		assert.Equal(t, "999600", signals[0].Attributes[events.AttrUnspent])
	})

	t.Run("Above Limit", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.engine.CallContract(h.ctx, account, contract, uint256.NewInt(ethLimit+1), nil)
		assert.ErrorIs(t, err, policy.ErrAboveDailyLimit)
		assert.Equal(t, uint64(0), h.balance(t, contract, custody.NativeAsset))

		transfers, err := h.engine.PendingTransfers(h.ctx, account)
		require.NoError(t, err)
		assert.Empty(t, transfers)
	})

	t.Run("Whitelisted Target", func(t *testing.T) {
		h := newHarness(t)
		whitelisted(t, h, contract)

		_, err := h.engine.CallContract(h.ctx, account, contract, uint256.NewInt(2*ethLimit), nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*ethLimit), h.balance(t, contract, custody.NativeAsset))
		assert.Equal(t, uint64(0), h.spent(t))
	})

	t.Run("Reverted Call", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.Deploy(contract, custodymem.ContractFunc(func(ctx context.Context, env *custodymem.Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			return nil, errors.New("boom")
		}))

		_, err := h.engine.CallContract(h.ctx, account, contract, uint256.NewInt(400), nil)
		assert.ErrorIs(t, err, policy.ErrCallFailed)
		assert.Equal(t, uint64(0), h.spent(t))
		assert.Equal(t, uint64(0), h.balance(t, contract, custody.NativeAsset))
		assert.Empty(t, h.events.OfType(events.CallCompleted))
	})

	t.Run("Forbidden Targets", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 10)

		_, err := h.engine.CallContract(h.ctx, account, account, uint256.NewInt(0), nil)
		assert.ErrorIs(t, err, policy.ErrForbiddenTarget)
		assert.Contains(t, err.Error(), "is the account")

		_, err = h.engine.CallContract(h.ctx, account, module, uint256.NewInt(0), nil)
		assert.ErrorIs(t, err, policy.ErrForbiddenTarget)
		assert.Contains(t, err.Error(), "is a module")

		_, err = h.engine.CallContract(h.ctx, account, token, uint256.NewInt(0), nil)
		assert.ErrorIs(t, err, policy.ErrForbiddenTarget)
		assert.Contains(t, err.Error(), "is a token contract")

		whitelisted(t, h, token)
		_, err = h.engine.CallContract(h.ctx, account, token, uint256.NewInt(0), nil)
		require.NoError(t, err)
	})

	t.Run("Re-entrant Callee", func(t *testing.T) {
		h := newHarness(t)

		deferred := h.transfer(t, recipient, 2*ethLimit).Pending
		h.clock.Add(3 * time.Second)

		var transferErr, executeErr error
		h.ledger.Deploy(contract, custodymem.ContractFunc(func(ctx context.Context, env *custodymem.Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			_, transferErr = h.engine.TransferToken(ctx, account, custody.NativeAsset, contract, uint256.NewInt(1), nil)
			_, executeErr = h.engine.ExecutePendingTransfer(ctx, account, deferred.Token, deferred.Target, deferred.Amount, deferred.Data, deferred.CreationRef)
			return nil, nil
		}))

		_, err := h.engine.CallContract(h.ctx, account, contract, uint256.NewInt(0), nil)
		require.NoError(t, err)
		assert.ErrorIs(t, transferErr, policy.ErrUnauthorized)
		require.NoError(t, executeErr)
		assert.Equal(t, uint64(2*ethLimit), h.balance(t, recipient, custody.NativeAsset))
	})
}

func TestApproveTokenAndCallContract(t *testing.T) {
	approveAndCall := func(h *harness, amount uint64) (*policy.CallResult, error) {
		return h.engine.ApproveTokenAndCallContract(h.ctx, account, token, contract, uint256.NewInt(amount), contract, []byte{0x01})
	}
	withAllowance := func(t *testing.T, h *harness, amount uint64) {
		t.Helper()
		require.NoError(t, h.ledger.SetAllowance(context.Background(), account, token, contract, uint256.NewInt(amount)))
	}

	t.Run("Restores Prior Allowance", func(t *testing.T) {
		for _, draw := range []uint64{0, 4, 5} {
			h := newHarness(t)
			withToken(t, h, 100)
			withAllowance(t, h, 10)
			h.ledger.Deploy(contract, drawer(token, contract, draw))

			res, err := approveAndCall(h, 5)
			require.NoError(t, err)
			assert.Equal(t, draw, res.Consumed.Uint64())
			assert.Equal(t, []byte{0x2a}, res.Result)
			assert.Equal(t, uint64(10), h.allowance(t, token, contract))
			assert.Equal(t, draw, h.balance(t, contract, token))
			assert.Equal(t, uint64(5), h.spent(t))
		}
	})

	t.Run("Consumed More Than Granted", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 100)
		withAllowance(t, h, 10)
		h.ledger.Deploy(contract, drawer(token, contract, 6))

		_, err := approveAndCall(h, 5)
		assert.ErrorIs(t, err, policy.ErrInsufficientAmountForCall)
		assert.Equal(t, uint64(10), h.allowance(t, token, contract))
		assert.Equal(t, uint64(0), h.balance(t, contract, token))
		assert.Equal(t, uint64(100), h.balance(t, account, token))
		assert.Equal(t, uint64(0), h.spent(t))
		assert.Empty(t, h.events.OfType(events.ApproveAndCallComplete))
	})

	t.Run("Reverted Call", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 100)
		h.ledger.Deploy(contract, drawer(token, contract, 50))

		_, err := approveAndCall(h, 5)
		assert.ErrorIs(t, err, policy.ErrCallFailed)
		assert.Equal(t, uint64(0), h.allowance(t, token, contract))
		assert.Equal(t, uint64(0), h.spent(t))
	})

	t.Run("Spender Differs From Target", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 100)
		h.ledger.Deploy(contract, drawer(token, spender, 5))

		res, err := h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(5), contract, nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), res.Consumed.Uint64())
		assert.Equal(t, uint64(0), h.allowance(t, token, spender))
		assert.Equal(t, uint64(5), h.balance(t, contract, token))

		signals := h.events.OfType(events.ApproveAndCallComplete)
		require.Len(t, signals, 1)
		assert.Equal(t, "5", signals[0].Attributes[events.AttrConsumed])
		assert.Equal(t, spender.Hex(), signals[0].Attributes[events.AttrSpender])
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 4)
		h.ledger.Deploy(contract, drawer(token, contract, 5))

		_, err := approveAndCall(h, 5)
		assert.ErrorIs(t, err, policy.ErrInsufficientBalance)
		assert.Equal(t, uint64(0), h.spent(t))
	})

	t.Run("Above Limit", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 2*ethLimit)
		h.ledger.Deploy(contract, drawer(token, spender, 2*ethLimit))

		_, err := h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(2*ethLimit), contract, nil)
		assert.ErrorIs(t, err, policy.ErrAboveDailyLimit)

		whitelisted(t, h, contract)
		_, err = h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(2*ethLimit), contract, nil)
		assert.ErrorIs(t, err, policy.ErrAboveDailyLimit)

		whitelisted(t, h, spender)
		_, err = h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(2*ethLimit), contract, nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*ethLimit), h.balance(t, contract, token))
	})

	t.Run("Forbidden Target", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 100)

		_, err := h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(5), account, nil)
		assert.ErrorIs(t, err, policy.ErrForbiddenTarget)
		_, err = h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(5), module, nil)
		assert.ErrorIs(t, err, policy.ErrForbiddenTarget)
		_, err = h.engine.ApproveTokenAndCallContract(h.ctx, account, token, spender, uint256.NewInt(5), token, nil)
		assert.ErrorIs(t, err, policy.ErrForbiddenTarget)
	})

	t.Run("Re-entrant Callee Sees Raised Allowance Only", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 100)
		var approveErr error
		h.ledger.Deploy(contract, custodymem.ContractFunc(func(ctx context.Context, env *custodymem.Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			_, approveErr = h.engine.ApproveToken(ctx, account, token, contract, uint256.NewInt(100))
			return nil, env.TransferFrom(token, caller, env.Self(), uint256.NewInt(5))
		}))

		_, err := approveAndCall(h, 5)
		require.NoError(t, err)
		assert.ErrorIs(t, approveErr, policy.ErrUnauthorized)
		assert.Equal(t, uint64(0), h.allowance(t, token, contract))
	})

	t.Run("Concurrent Calls Restore Prior Allowance", func(t *testing.T) {
		h := newHarness(t)
		withToken(t, h, 100)
		withAllowance(t, h, 10)

		entered := make(chan struct{}, 2)
		release := make(chan struct{})
		h.ledger.Deploy(contract, custodymem.ContractFunc(func(ctx context.Context, env *custodymem.Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
			entered <- struct{}{}
			<-release
			return []byte{0x2a}, nil
		}))

		errs := make(chan error, 2)
		for range 2 {
			go func() {
				_, err := approveAndCall(h, 5)
				errs <- err
			}()
		}

		<-entered
		select {
		case <-entered:
			t.Fatal("second call entered its callee while the first was in flight")
		case <-time.After(50 * time.Millisecond):
		}
		close(release)

		require.NoError(t, <-errs)
		require.NoError(t, <-errs)
		assert.Equal(t, uint64(10), h.allowance(t, token, contract))
		assert.Equal(t, uint64(10), h.spent(t))
	})
}

func TestApproveWrappedAndCallContract(t *testing.T) {
	t.Run("Wraps Shortfall", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.Mint(weth, account, uint256.NewInt(30))
		h.ledger.Deploy(contract, drawer(weth, spender, 50))
		before := h.balance(t, account, custody.NativeAsset)

		res, err := h.engine.ApproveWrappedAndCallContract(h.ctx, account, spender, uint256.NewInt(50), contract, nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(50), res.Consumed.Uint64())
		assert.Equal(t, before-20, h.balance(t, account, custody.NativeAsset))
		assert.Equal(t, uint64(0), h.balance(t, account, weth))
		assert.Equal(t, uint64(50), h.balance(t, contract, weth))
		assert.Equal(t, uint64(0), h.allowance(t, weth, spender))
		assert.Equal(t, uint64(50), h.spent(t))
	})

	t.Run("No Wrap Needed", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.Mint(weth, account, uint256.NewInt(50))
		h.ledger.Deploy(contract, drawer(weth, spender, 50))
		before := h.balance(t, account, custody.NativeAsset)

		_, err := h.engine.ApproveWrappedAndCallContract(h.ctx, account, spender, uint256.NewInt(50), contract, nil)
		require.NoError(t, err)
		assert.Equal(t, before, h.balance(t, account, custody.NativeAsset))
		assert.Equal(t, uint64(50), h.balance(t, contract, weth))
	})

	t.Run("Insufficient Native Balance", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.Burn(custody.NativeAsset, account)
		h.ledger.Mint(custody.NativeAsset, account, uint256.NewInt(10))
		h.ledger.Deploy(contract, drawer(weth, spender, 50))

		_, err := h.engine.ApproveWrappedAndCallContract(h.ctx, account, spender, uint256.NewInt(50), contract, nil)
		assert.ErrorIs(t, err, policy.ErrInsufficientBalance)
		assert.Equal(t, uint64(0), h.spent(t))
	})

	t.Run("Above Limit", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.Deploy(contract, drawer(weth, spender, 2*ethLimit))

		_, err := h.engine.ApproveWrappedAndCallContract(h.ctx, account, spender, uint256.NewInt(2*ethLimit), contract, nil)
		assert.ErrorIs(t, err, policy.ErrAboveDailyLimit)
		assert.Equal(t, uint64(0), h.balance(t, account, weth))
	})
}

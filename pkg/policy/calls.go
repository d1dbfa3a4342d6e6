package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/chris/wallet-transfer-policy/pkg/events"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ApproveToken sets spender's allowance of token to exactly amount. Only the
// part above the current allowance counts against the daily limit, and not
// at all for a whitelisted spender. Approvals never queue.
func (e *Engine) ApproveToken(ctx context.Context, account, token, spender common.Address, amount *uint256.Int) (_ *ApprovalResult, err error) {
	ctx, o := e.start(ctx, "ApproveToken", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	amount = orZero(amount)
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	current, err := e.ledger.Allowance(ctx, account, token, spender)
	if err != nil {
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	var s spend
	if amount.Gt(current) {
		delta := new(uint256.Int).Sub(amount, current)
		if s, err = e.authorizeSpend(ctx, account, token, spender, delta, now); err != nil {
			return nil, err
		}
		if !s.direct {
			e.decided(ctx, o, decisionRejected)
			return nil, aboveLimit(o.name, account, s)
		}
	}
	if err := e.ledger.SetAllowance(ctx, account, token, spender, amount); err != nil {
		e.refund(ctx, account, s)
		return nil, fmt.Errorf("failed to set allowance: %w", err)
	}

	e.decided(ctx, o, decisionDirect)
	unspent := e.unspent(ctx, account, now)
	e.logger.InfoContext(ctx, "approval completed", "account", account.Hex(), "token", token.Hex(), "spender", spender.Hex(), "amount", amount.Dec())
	e.publish(ctx, events.New(events.ApprovalCompleted, account, now,
		events.AttrToken, token.Hex(),
		events.AttrSpender, spender.Hex(),
		events.AttrAmount, amount.Dec(),
		events.AttrUnspent, dec(unspent),
	))
	return &ApprovalResult{Allowance: new(uint256.Int).Set(amount), Unspent: unspent}, nil
}

// CallContract calls target with value and data from the account. The value
// counts against the daily limit unless target is whitelisted; calls never
// queue.
func (e *Engine) CallContract(ctx context.Context, account, target common.Address, value *uint256.Int, data []byte) (_ *CallResult, err error) {
	ctx, o := e.start(ctx, "CallContract", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	value = orZero(value)
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	if err := e.checkTarget(ctx, account, target, now); err != nil {
		return nil, err
	}
	s, err := e.authorizeSpend(ctx, account, custody.NativeAsset, target, value, now)
	if err != nil {
		return nil, err
	}
	if !s.direct {
		e.decided(ctx, o, decisionRejected)
		return nil, aboveLimit(o.name, account, s)
	}

	out, err := e.ledger.Invoke(auth.WithCaller(ctx, target), account, target, value, data)
	if err != nil {
		e.refund(ctx, account, s)
		return nil, fmt.Errorf("failed to call %s: %w", target.Hex(), err)
	}

	e.decided(ctx, o, decisionDirect)
	unspent := e.unspent(ctx, account, now)
	e.logger.InfoContext(ctx, "call completed", "account", account.Hex(), "target", target.Hex(), "value", value.Dec())
	e.publish(ctx, events.New(events.CallCompleted, account, now,
		events.AttrTarget, target.Hex(),
		events.AttrValue, value.Dec(),
		events.AttrData, hexutil.Encode(data),
		events.AttrResult, hexutil.Encode(out),
		events.AttrUnspent, dec(unspent),
	))
	return &CallResult{Result: out, Unspent: unspent}, nil
}

// ApproveTokenAndCallContract lets spender draw up to amount of token while
// target is called, then puts the prior allowance back.
func (e *Engine) ApproveTokenAndCallContract(ctx context.Context, account, token, spender common.Address, amount *uint256.Int, target common.Address, data []byte) (_ *CallResult, err error) {
	ctx, o := e.start(ctx, "ApproveTokenAndCallContract", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	amount = orZero(amount)
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	if err := e.checkTarget(ctx, account, target, now); err != nil {
		return nil, err
	}
	if err := e.requireBalance(ctx, account, token, amount); err != nil {
		return nil, err
	}
	s, err := e.authorizeSpend(ctx, account, token, spender, amount, now)
	if err != nil {
		return nil, err
	}
	if !s.direct {
		e.decided(ctx, o, decisionRejected)
		return nil, aboveLimit(o.name, account, s)
	}
	defer func() {
		if err != nil {
			e.refund(ctx, account, s)
		}
	}()

	out, consumed, err := e.approveAndCall(ctx, account, token, spender, amount, target, data)
	if err != nil {
		return nil, err
	}
	return e.approvedAndCalled(ctx, o, account, token, spender, amount, target, out, consumed, now), nil
}

// ApproveWrappedAndCallContract wraps whatever native value the account
// lacks in the wrapped-native token, then behaves like
// ApproveTokenAndCallContract on the wrapped token. Wrapping is not limited.
func (e *Engine) ApproveWrappedAndCallContract(ctx context.Context, account, spender common.Address, amount *uint256.Int, target common.Address, data []byte) (_ *CallResult, err error) {
	ctx, o := e.start(ctx, "ApproveWrappedAndCallContract", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	amount = orZero(amount)
	wrapped := e.cfg.WrappedNative
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	if err := e.checkTarget(ctx, account, target, now); err != nil {
		return nil, err
	}
	held, err := e.ledger.BalanceOf(ctx, account, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	shortfall := new(uint256.Int)
	if amount.Gt(held) {
		shortfall.Sub(amount, held)
		if err := e.requireBalance(ctx, account, custody.NativeAsset, shortfall); err != nil {
			return nil, err
		}
	}
	s, err := e.authorizeSpend(ctx, account, custody.NativeAsset, spender, amount, now)
	if err != nil {
		return nil, err
	}
	if !s.direct {
		e.decided(ctx, o, decisionRejected)
		return nil, aboveLimit(o.name, account, s)
	}
	defer func() {
		if err != nil {
			e.refund(ctx, account, s)
		}
	}()

	if !shortfall.IsZero() {
		_, err := e.ledger.Invoke(auth.WithCaller(ctx, wrapped), account, wrapped, shortfall, custody.DepositSelector)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap native value: %w", err)
		}
		e.logger.DebugContext(ctx, "wrapped native value", "account", account.Hex(), "amount", shortfall.Dec())
	}

	out, consumed, err := e.approveAndCall(ctx, account, wrapped, spender, amount, target, data)
	if err != nil {
		return nil, err
	}
	return e.approvedAndCalled(ctx, o, account, wrapped, spender, amount, target, out, consumed, now), nil
}

func (e *Engine) requireBalance(ctx context.Context, account, asset common.Address, amount *uint256.Int) error {
	balance, err := e.ledger.BalanceOf(ctx, account, asset)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	if balance.Lt(amount) {
		return fmt.Errorf("%w: holds %s of %s, needs %s", ErrInsufficientBalance, balance.Dec(), asset.Hex(), amount.Dec())
	}
	return nil
}

// approveAndCall raises spender's allowance by amount, calls target, and
// restores the prior allowance on every path. The call fails with
// ErrInsufficientAmountForCall when the callee drew more than amount. The
// account lock is held throughout.
func (e *Engine) approveAndCall(ctx context.Context, account, token, spender common.Address, amount *uint256.Int, target common.Address, data []byte) (out []byte, consumed *uint256.Int, err error) {
	prior, err := e.ledger.Allowance(ctx, account, token, spender)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	granted, overflow := new(uint256.Int).AddOverflow(prior, amount)
	if overflow {
		granted.SetAllOne()
	}
	if err := e.ledger.SetAllowance(ctx, account, token, spender, granted); err != nil {
		return nil, nil, fmt.Errorf("failed to set allowance: %w", err)
	}
	defer func() {
		if rerr := e.ledger.SetAllowance(ctx, account, token, spender, prior); rerr != nil {
			e.logger.ErrorContext(ctx, "failed to restore allowance", "account", account.Hex(), "token", token.Hex(), "spender", spender.Hex(), "error", rerr)
			if err == nil {
				out, consumed = nil, nil
				err = fmt.Errorf("failed to restore allowance: %w", rerr)
			}
		}
	}()

	check := func(ctx context.Context) error {
		remaining, err := e.ledger.Allowance(ctx, account, token, spender)
		if err != nil {
			return fmt.Errorf("failed to get allowance: %w", err)
		}
		consumed = new(uint256.Int)
		if granted.Gt(remaining) {
			consumed.Sub(granted, remaining)
		}
		if consumed.Gt(amount) {
			return fmt.Errorf("%w: %s drew %s of %s granted", ErrInsufficientAmountForCall, spender.Hex(), consumed.Dec(), amount.Dec())
		}
		return nil
	}

	callCtx := auth.WithCaller(ctx, target)
	if atomic, ok := e.ledger.(custody.Atomic); ok {
		out, err = atomic.InvokeChecked(callCtx, account, target, nil, data, check)
	} else {
		out, err = e.ledger.Invoke(callCtx, account, target, nil, data)
		if err == nil {
			err = check(ctx)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	return out, consumed, nil
}

func (e *Engine) approvedAndCalled(ctx context.Context, o *operation, account, token, spender common.Address, amount *uint256.Int, target common.Address, out []byte, consumed *uint256.Int, now time.Time) *CallResult {
	e.decided(ctx, o, decisionDirect)
	unspent := e.unspent(ctx, account, now)
	e.logger.InfoContext(ctx, "approve and call completed",
		"account", account.Hex(), "token", token.Hex(), "spender", spender.Hex(),
		"target", target.Hex(), "amount", amount.Dec(), "consumed", consumed.Dec())
	e.publish(ctx, events.New(events.ApproveAndCallComplete, account, now,
		events.AttrToken, token.Hex(),
		events.AttrSpender, spender.Hex(),
		events.AttrTarget, target.Hex(),
		events.AttrAmount, amount.Dec(),
		events.AttrConsumed, consumed.Dec(),
		events.AttrResult, hexutil.Encode(out),
		events.AttrUnspent, dec(unspent),
	))
	return &CallResult{Result: out, Unspent: unspent, Consumed: consumed}
}

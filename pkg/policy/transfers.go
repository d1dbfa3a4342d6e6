package policy

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/chris/wallet-transfer-policy/pkg/events"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// TransferToken sends amount of token to target, or queues the transfer for
// the security period when it does not fit in the daily limit and target is
// not whitelisted. Native value with call data is delivered as a call.
func (e *Engine) TransferToken(ctx context.Context, account, token, to common.Address, amount *uint256.Int, data []byte) (_ *TransferResult, err error) {
	ctx, o := e.start(ctx, "TransferToken", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	amount = orZero(amount)
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	if asCall(token, data) {
		if err := e.checkTarget(ctx, account, to, now); err != nil {
			return nil, err
		}
	}
	s, err := e.authorizeSpend(ctx, account, token, to, amount, now)
	if err != nil {
		return nil, err
	}

	if !s.direct {
		t, err := e.queue.Create(ctx, account, token, to, amount, data, now)
		if err != nil {
			return nil, err
		}
		e.decided(ctx, o, decisionDeferred)
		e.logger.InfoContext(ctx, "transfer deferred",
			"account", account.Hex(), "token", token.Hex(), "target", to.Hex(),
			"amount", amount.Dec(), "decision", decisionDeferred, "id", t.ID.Hex(), "execute_after", t.ExecuteAfter)
		e.publish(ctx, events.New(events.TransferPending, account, now,
			events.AttrID, t.ID.Hex(),
			events.AttrToken, token.Hex(),
			events.AttrTarget, to.Hex(),
			events.AttrAmount, amount.Dec(),
			events.AttrData, hexutil.Encode(data),
			events.AttrExecuteAfter, unix(t.ExecuteAfter),
			events.AttrCreationRef, strconv.FormatUint(t.CreationRef, 10),
		))
		return &TransferResult{Decision: DecisionDeferred, Pending: t, Unspent: s.check.Unspent}, nil
	}

	if err := e.deliver(ctx, account, token, to, amount, data); err != nil {
		e.refund(ctx, account, s)
		return nil, err
	}
	e.decided(ctx, o, decisionDirect)
	unspent := e.unspent(ctx, account, now)
	e.logger.InfoContext(ctx, "transfer completed",
		"account", account.Hex(), "token", token.Hex(), "target", to.Hex(),
		"amount", amount.Dec(), "decision", decisionDirect, "whitelisted", s.whitelisted)
	e.publish(ctx, events.New(events.TransferCompleted, account, now,
		events.AttrToken, token.Hex(),
		events.AttrTarget, to.Hex(),
		events.AttrAmount, amount.Dec(),
		events.AttrData, hexutil.Encode(data),
		events.AttrUnspent, dec(unspent),
	))
	return &TransferResult{Decision: DecisionDirect, Unspent: unspent}, nil
}

// ExecutePendingTransfer delivers a queued transfer inside its window. The
// id is recomputed from the arguments, so they must match the original
// request exactly. Anyone may call it.
func (e *Engine) ExecutePendingTransfer(ctx context.Context, account, token, to common.Address, amount *uint256.Int, data []byte, creationRef uint64) (_ *pending.Transfer, err error) {
	ctx, o := e.start(ctx, "ExecutePendingTransfer", account)
	defer e.finish(o, &err)

	amount = orZero(amount)
	id := pending.ID(pending.Request{
		Kind:        pending.KindTransfer,
		Token:       token,
		Target:      to,
		Amount:      amount,
		Data:        data,
		CreationRef: creationRef,
	})
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	t, err := e.queue.Execute(ctx, account, id, now)
	if err != nil {
		return nil, err
	}
	if err := e.deliver(ctx, account, token, to, amount, data); err != nil {
		if rerr := e.queue.Restore(ctx, t); rerr != nil {
			e.logger.ErrorContext(ctx, "failed to restore pending transfer", "account", account.Hex(), "id", id.Hex(), "error", rerr)
		}
		return nil, err
	}

	e.logger.InfoContext(ctx, "pending transfer executed", "account", account.Hex(), "id", id.Hex(), "amount", amount.Dec())
	e.publish(ctx, events.New(events.TransferExecuted, account, now,
		events.AttrID, id.Hex(),
		events.AttrToken, token.Hex(),
		events.AttrTarget, to.Hex(),
		events.AttrAmount, amount.Dec(),
	))
	return t, nil
}

// CancelPendingTransfer removes a queued transfer whatever its window state.
func (e *Engine) CancelPendingTransfer(ctx context.Context, account common.Address, id common.Hash) (err error) {
	ctx, o := e.start(ctx, "CancelPendingTransfer", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return err
	}
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	if _, err := e.queue.Cancel(ctx, account, id); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "pending transfer canceled", "account", account.Hex(), "id", id.Hex())
	e.publish(ctx, events.New(events.TransferCanceled, account, now,
		events.AttrID, id.Hex(),
	))
	return nil
}

// ExecutionWindow returns the first and last instants t may execute.
func (e *Engine) ExecutionWindow(t pending.Transfer) (time.Time, time.Time) {
	return t.Window(e.cfg.SecurityWindow)
}

// deliver moves value to target. A call carrying native value runs with the
// target as the caller seen by re-entrant requests.
func (e *Engine) deliver(ctx context.Context, account, token, target common.Address, amount *uint256.Int, data []byte) error {
	if asCall(token, data) {
		_, err := e.ledger.Invoke(auth.WithCaller(ctx, target), account, target, amount, data)
		if err != nil {
			return fmt.Errorf("failed to call %s: %w", target.Hex(), err)
		}
		return nil
	}
	if err := e.ledger.MoveValue(ctx, account, token, target, amount); err != nil {
		return fmt.Errorf("failed to move value: %w", err)
	}
	return nil
}

func asCall(token common.Address, data []byte) bool {
	return custody.IsNative(token) && len(data) > 0
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

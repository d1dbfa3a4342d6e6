package policy

import (
	"context"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/oracle"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CurrentLimit returns the daily limit in force.
func (e *Engine) CurrentLimit(ctx context.Context, account common.Address) (*uint256.Int, error) {
	return e.limits.EffectiveLimit(ctx, account, e.clock.Now())
}

// PendingLimit returns a scheduled limit and when it takes effect. Both are
// zero when nothing is scheduled.
func (e *Engine) PendingLimit(ctx context.Context, account common.Address) (*uint256.Int, time.Time, error) {
	return e.limits.PendingLimit(ctx, account, e.clock.Now())
}

// IsLimitDisabled reports whether the account has no daily limit.
func (e *Engine) IsLimitDisabled(ctx context.Context, account common.Address) (bool, error) {
	return e.limits.IsDisabled(ctx, account, e.clock.Now())
}

// DailyUnspent returns the headroom left today and when the period ends.
func (e *Engine) DailyUnspent(ctx context.Context, account common.Address) (*uint256.Int, time.Time, error) {
	return e.limits.Unspent(ctx, account, e.clock.Now())
}

// DailySpent returns what was spent in the open period and when it ends.
func (e *Engine) DailySpent(ctx context.Context, account common.Address) (*uint256.Int, time.Time, error) {
	return e.limits.DailySpent(ctx, account, e.clock.Now())
}

// IsWhitelisted reports whether target is an active whitelist entry.
func (e *Engine) IsWhitelisted(ctx context.Context, account, target common.Address) (bool, error) {
	return e.whitelist.IsActive(ctx, account, target, e.clock.Now())
}

// Whitelist lists the account's entries, including those not yet active.
func (e *Engine) Whitelist(ctx context.Context, account common.Address) ([]whitelist.Entry, error) {
	return e.whitelist.List(ctx, account)
}

// PendingTransfer returns a queued transfer.
func (e *Engine) PendingTransfer(ctx context.Context, account common.Address, id common.Hash) (*pending.Transfer, error) {
	return e.queue.Get(ctx, account, id)
}

// PendingTransfers lists the account's queued transfers, expired ones included.
func (e *Engine) PendingTransfers(ctx context.Context, account common.Address) ([]pending.Transfer, error) {
	return e.queue.List(ctx, account)
}

// EtherValue converts amount of token to the native unit at the cached price.
func (e *Engine) EtherValue(ctx context.Context, token common.Address, amount *uint256.Int) (*uint256.Int, error) {
	return oracle.EtherValue(ctx, e.oracle, token, orZero(amount))
}

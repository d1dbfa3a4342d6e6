package policy

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/events"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ChangeLimit lowers the daily limit at once or schedules an increase.
func (e *Engine) ChangeLimit(ctx context.Context, account common.Address, newLimit *uint256.Int) (_ *LimitChange, err error) {
	ctx, o := e.start(ctx, "ChangeLimit", account)
	defer e.finish(o, &err)

	if newLimit == nil {
		return nil, fmt.Errorf("%w: new limit is required", ErrInvalidArgument)
	}
	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	limit, err := e.limits.SetLimit(ctx, account, newLimit, now)
	if err != nil {
		return nil, err
	}
	change := &LimitChange{Limit: new(uint256.Int).Set(limit.Pending), StartAfter: limit.ChangeAfter}

	e.logger.InfoContext(ctx, "limit change scheduled", "account", account.Hex(), "limit", newLimit.Dec(), "start_after", change.StartAfter)
	e.publish(ctx, events.New(events.LimitChangeScheduled, account, now,
		events.AttrNewLimit, newLimit.Dec(),
		events.AttrStartAfter, unix(change.StartAfter),
	))
	return change, nil
}

// DisableLimit schedules the removal of the daily limit.
func (e *Engine) DisableLimit(ctx context.Context, account common.Address) (_ *LimitChange, err error) {
	ctx, o := e.start(ctx, "DisableLimit", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	limit, err := e.limits.Disable(ctx, account, now)
	if err != nil {
		return nil, err
	}
	change := &LimitChange{Limit: new(uint256.Int).Set(limit.Pending), StartAfter: limit.ChangeAfter}

	e.logger.InfoContext(ctx, "limit disable scheduled", "account", account.Hex(), "start_after", change.StartAfter)
	e.publish(ctx, events.New(events.LimitDisableScheduled, account, now,
		events.AttrStartAfter, unix(change.StartAfter),
	))
	return change, nil
}

// AddToWhitelist adds target; it becomes active after the security period.
func (e *Engine) AddToWhitelist(ctx context.Context, account, target common.Address) (_ *whitelist.Entry, err error) {
	ctx, o := e.start(ctx, "AddToWhitelist", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return nil, err
	}
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	entry, err := e.whitelist.Add(ctx, account, target, now)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "whitelist entry added", "account", account.Hex(), "target", target.Hex(), "whitelist_after", entry.WhitelistAfter)
	e.publish(ctx, events.New(events.WhitelistAdded, account, now,
		events.AttrTarget, target.Hex(),
		events.AttrWhitelistAt, unix(entry.WhitelistAfter),
	))
	return entry, nil
}

// RemoveFromWhitelist removes target immediately.
func (e *Engine) RemoveFromWhitelist(ctx context.Context, account, target common.Address) (err error) {
	ctx, o := e.start(ctx, "RemoveFromWhitelist", account)
	defer e.finish(o, &err)

	if _, err := e.auth.ActingOwner(ctx, account); err != nil {
		return err
	}
	ctx, g := e.lock(ctx, account)
	defer g.release()

	now := e.clock.Now()
	if err := e.whitelist.Remove(ctx, account, target); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "whitelist entry removed", "account", account.Hex(), "target", target.Hex())
	e.publish(ctx, events.New(events.WhitelistRemoved, account, now,
		events.AttrTarget, target.Hex(),
	))
	return nil
}

func unix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

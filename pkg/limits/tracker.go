package limits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// State is the persisted limit record of one account.
type State struct {
	Account common.Address
	Limit   Limit
	Spent   DailySpent
	Version int64
}

// Store persists limit state. GetLimitState returns storage.ErrNotFound for an
// account that was never written. SaveLimitState writes state only if the
// stored version still equals state.Version (absent counts as version zero)
// and fails with storage.ErrVersionConflict otherwise; on success the stored
// version is state.Version+1.
type Store interface {
	GetLimitState(ctx context.Context, account common.Address) (*State, error)
	SaveLimitState(ctx context.Context, state *State) error
}

// Check is the outcome of CheckAndRecord.
type Check struct {
	Accepted  bool
	Limit     *uint256.Int
	Unspent   *uint256.Int
	PeriodEnd time.Time
	// Recorded is true when the value was added to the daily counter.
	Recorded bool
}

// Tracker applies limit rules on top of a Store. It performs no access
// control and assumes its caller serializes operations per account.
type Tracker struct {
	store          Store
	securityPeriod time.Duration
	period         time.Duration
	defaultLimit   *uint256.Int
}

// NewTracker creates a tracker. Accounts without a stored limit use defaultLimit.
func NewTracker(store Store, securityPeriod, period time.Duration, defaultLimit *uint256.Int) *Tracker {
	return &Tracker{
		store:          store,
		securityPeriod: securityPeriod,
		period:         period,
		defaultLimit:   new(uint256.Int).Set(defaultLimit),
	}
}

func (t *Tracker) load(ctx context.Context, account common.Address) (*State, error) {
	st, err := t.store.GetLimitState(ctx, account)
	if errors.Is(err, storage.ErrNotFound) {
		return &State{
			Account: account,
			Limit:   Settled(t.defaultLimit),
			Spent:   DailySpent{Amount: new(uint256.Int)},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load limit state: %w", err)
	}
	if st.Limit.Current == nil {
		st.Limit = Settled(t.defaultLimit)
	}
	if st.Spent.Amount == nil {
		st.Spent.Amount = new(uint256.Int)
	}
	return st, nil
}

func (t *Tracker) save(ctx context.Context, st *State) error {
	if err := t.store.SaveLimitState(ctx, st); err != nil {
		return fmt.Errorf("failed to save limit state: %w", err)
	}
	st.Version++
	return nil
}

// SetLimit asks for newLimit and returns the resulting record.
func (t *Tracker) SetLimit(ctx context.Context, account common.Address, newLimit *uint256.Int, now time.Time) (Limit, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return Limit{}, err
	}
	st.Limit = st.Limit.Change(newLimit, now, t.securityPeriod)
	if err := t.save(ctx, st); err != nil {
		return Limit{}, err
	}
	return st.Limit, nil
}

// Disable schedules the unlimited sentinel.
func (t *Tracker) Disable(ctx context.Context, account common.Address, now time.Time) (Limit, error) {
	return t.SetLimit(ctx, account, Disabled(), now)
}

// EffectiveLimit returns the limit in force at now.
func (t *Tracker) EffectiveLimit(ctx context.Context, account common.Address, now time.Time) (*uint256.Int, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return nil, err
	}
	return st.Limit.Resolve(now), nil
}

// PendingLimit returns the scheduled value and when it takes effect, or zero
// values when nothing is scheduled at now.
func (t *Tracker) PendingLimit(ctx context.Context, account common.Address, now time.Time) (*uint256.Int, time.Time, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return nil, time.Time{}, err
	}
	if st.Limit.Phase(now) != PhaseScheduled {
		return new(uint256.Int), time.Time{}, nil
	}
	return new(uint256.Int).Set(st.Limit.Pending), st.Limit.ChangeAfter, nil
}

// IsDisabled reports whether the unlimited sentinel is in force at now.
func (t *Tracker) IsDisabled(ctx context.Context, account common.Address, now time.Time) (bool, error) {
	limit, err := t.EffectiveLimit(ctx, account, now)
	if err != nil {
		return false, err
	}
	return IsDisabledValue(limit), nil
}

// RecordSpend adds value to the daily counter unconditionally and returns the
// headroom left.
func (t *Tracker) RecordSpend(ctx context.Context, account common.Address, value *uint256.Int, now time.Time) (*uint256.Int, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return nil, err
	}
	st.Spent = st.Spent.Record(value, now, t.period)
	if err := t.save(ctx, st); err != nil {
		return nil, err
	}
	unspent, _ := Unspent(st.Limit.Resolve(now), st.Spent, now, t.period)
	return unspent, nil
}

// Unspent returns the headroom at now and the end of its period.
func (t *Tracker) Unspent(ctx context.Context, account common.Address, now time.Time) (*uint256.Int, time.Time, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return nil, time.Time{}, err
	}
	unspent, periodEnd := Unspent(st.Limit.Resolve(now), st.Spent, now, t.period)
	return unspent, periodEnd, nil
}

// DailySpent returns the amount spent in the current period and its end.
// Both are zero when no period is open at now.
func (t *Tracker) DailySpent(ctx context.Context, account common.Address, now time.Time) (*uint256.Int, time.Time, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return nil, time.Time{}, err
	}
	if st.Spent.Stale(now) {
		return new(uint256.Int), time.Time{}, nil
	}
	return st.Spent.SpentAt(now), st.Spent.PeriodEnd, nil
}

// CheckAndRecord accepts value when it fits in the headroom at now and
// records it. A zero value is always accepted and never recorded. A rejected
// value leaves the state untouched.
func (t *Tracker) CheckAndRecord(ctx context.Context, account common.Address, value *uint256.Int, now time.Time) (Check, error) {
	st, err := t.load(ctx, account)
	if err != nil {
		return Check{}, err
	}
	limit := st.Limit.Resolve(now)
	unspent, periodEnd := Unspent(limit, st.Spent, now, t.period)
	check := Check{Limit: limit, Unspent: unspent, PeriodEnd: periodEnd}
	if value.IsZero() {
		check.Accepted = true
		return check, nil
	}
	if value.Gt(unspent) {
		return check, nil
	}

	st.Spent = st.Spent.Record(value, now, t.period)
	if err := t.save(ctx, st); err != nil {
		return Check{}, err
	}
	check.Accepted = true
	check.Recorded = true
	check.Unspent, check.PeriodEnd = Unspent(limit, st.Spent, now, t.period)
	return check, nil
}

// Refund reverses a spend recorded by CheckAndRecord. It is a no-op once the
// period the spend belonged to has closed.
func (t *Tracker) Refund(ctx context.Context, account common.Address, value *uint256.Int, periodEnd time.Time) error {
	st, err := t.load(ctx, account)
	if err != nil {
		return err
	}
	if !st.Spent.PeriodEnd.Equal(periodEnd) {
		return nil
	}
	if st.Spent.Amount.Lt(value) {
		st.Spent.Amount.Clear()
	} else {
		st.Spent.Amount.Sub(st.Spent.Amount, value)
	}
	return t.save(ctx, st)
}

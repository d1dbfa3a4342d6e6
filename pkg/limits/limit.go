// Package limits tracks the daily spending cap of an account and what has been
// spent against it in the current period.
//
// A limit is a small two-phase record: decreases apply at once, increases are
// held as a pending value until a security period has passed. Resolution at a
// given instant is a pure function of the record, kept apart from mutation.
package limits

import (
	"time"

	"github.com/holiman/uint256"
)

// Phase is where a limit record is in its change cycle.
type Phase int

const (
	// PhaseSettled means the pending value is in force.
	PhaseSettled Phase = iota
	// PhaseScheduled means an increase is waiting for its change-after time.
	PhaseScheduled
)

func (p Phase) String() string {
	if p == PhaseScheduled {
		return "scheduled"
	}
	return "settled"
}

// Disabled returns the limit value meaning "unlimited".
func Disabled() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// IsDisabledValue reports whether v is the unlimited sentinel.
func IsDisabledValue(v *uint256.Int) bool {
	return v != nil && v.Eq(Disabled())
}

// Limit is the daily cap of one account.
type Limit struct {
	Current     *uint256.Int
	Pending     *uint256.Int
	ChangeAfter time.Time
}

// Settled returns a limit already in force.
func Settled(v *uint256.Int) Limit {
	return Limit{
		Current: new(uint256.Int).Set(v),
		Pending: new(uint256.Int).Set(v),
	}
}

// Resolve returns the limit in force at now.
func (l Limit) Resolve(now time.Time) *uint256.Int {
	if l.Pending != nil && !now.Before(l.ChangeAfter) {
		return new(uint256.Int).Set(l.Pending)
	}
	if l.Current == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(l.Current)
}

// Phase reports whether a change is still waiting at now.
func (l Limit) Phase(now time.Time) Phase {
	if now.Before(l.ChangeAfter) {
		return PhaseScheduled
	}
	return PhaseSettled
}

// Change returns the record after asking for target at now. A target at or
// below the limit in force applies at once; a larger one is scheduled for
// now+securityPeriod and replaces any increase already scheduled.
func (l Limit) Change(target *uint256.Int, now time.Time, securityPeriod time.Duration) Limit {
	resolved := l.Resolve(now)
	if !target.Gt(resolved) {
		return Limit{
			Current:     new(uint256.Int).Set(target),
			Pending:     new(uint256.Int).Set(target),
			ChangeAfter: now,
		}
	}
	return Limit{
		Current:     resolved,
		Pending:     new(uint256.Int).Set(target),
		ChangeAfter: now.Add(securityPeriod),
	}
}

// DailySpent is what an account spent in the period ending at PeriodEnd.
type DailySpent struct {
	Amount    *uint256.Int
	PeriodEnd time.Time
}

// Stale reports whether the period is over at now.
func (d DailySpent) Stale(now time.Time) bool {
	return !now.Before(d.PeriodEnd)
}

// SpentAt returns the amount counted against the limit at now.
func (d DailySpent) SpentAt(now time.Time) *uint256.Int {
	if d.Stale(now) || d.Amount == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(d.Amount)
}

// Record returns the counter after spending value at now, opening a new
// period first when the current one is over.
func (d DailySpent) Record(value *uint256.Int, now time.Time, period time.Duration) DailySpent {
	next := DailySpent{Amount: d.SpentAt(now), PeriodEnd: d.PeriodEnd}
	if d.Stale(now) {
		next.PeriodEnd = now.Add(period)
	}
	if _, overflow := next.Amount.AddOverflow(next.Amount, value); overflow {
		next.Amount.SetAllOne()
	}
	return next
}

// Unspent returns the headroom left under limit at now and the end of the
// period it applies to. A disabled limit reports Disabled.
func Unspent(limit *uint256.Int, spent DailySpent, now time.Time, period time.Duration) (*uint256.Int, time.Time) {
	periodEnd := spent.PeriodEnd
	if spent.Stale(now) {
		periodEnd = now.Add(period)
	}
	if IsDisabledValue(limit) {
		return Disabled(), periodEnd
	}
	used := spent.SpentAt(now)
	if !used.Lt(limit) {
		return new(uint256.Int), periodEnd
	}
	return new(uint256.Int).Sub(limit, used), periodEnd
}

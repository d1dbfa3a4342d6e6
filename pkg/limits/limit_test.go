package limits

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

const (
	securityPeriod = 2 * time.Second
	period         = 24 * time.Hour
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func TestLimitChange(t *testing.T) {
	l := Settled(u(1_000_000))

	t.Run("Decrease Applies Immediately", func(t *testing.T) {
		next := l.Change(u(500), t0, securityPeriod)
		assert.Equal(t, u(500), next.Resolve(t0))
		assert.Equal(t, PhaseSettled, next.Phase(t0))
	})

	t.Run("Increase Is Delayed", func(t *testing.T) {
		next := l.Change(u(4_000_000), t0, securityPeriod)
		assert.Equal(t, u(1_000_000), next.Resolve(t0))
		assert.Equal(t, u(1_000_000), next.Resolve(t0.Add(securityPeriod-time.Nanosecond)))
		assert.Equal(t, u(4_000_000), next.Resolve(t0.Add(securityPeriod)))
		assert.Equal(t, PhaseScheduled, next.Phase(t0))
		assert.Equal(t, PhaseSettled, next.Phase(t0.Add(securityPeriod)))
	})

	t.Run("Decrease Overrides Scheduled Increase", func(t *testing.T) {
		next := l.Change(u(4_000_000), t0, securityPeriod).Change(u(10), t0.Add(time.Second), securityPeriod)
		assert.Equal(t, u(10), next.Resolve(t0.Add(time.Second)))
		assert.Equal(t, u(10), next.Resolve(t0.Add(time.Hour)))
	})

	t.Run("Last Increase Wins", func(t *testing.T) {
		next := l.Change(u(4_000_000), t0, securityPeriod).Change(u(3_000_000), t0.Add(time.Second), securityPeriod)
		assert.Equal(t, u(1_000_000), next.Resolve(t0.Add(2*time.Second)))
		assert.Equal(t, u(3_000_000), next.Resolve(t0.Add(3*time.Second)))
	})

	t.Run("Disable Is An Increase", func(t *testing.T) {
		next := l.Change(Disabled(), t0, securityPeriod)
		assert.False(t, IsDisabledValue(next.Resolve(t0)))
		assert.True(t, IsDisabledValue(next.Resolve(t0.Add(securityPeriod))))
	})
}

func TestDailySpent(t *testing.T) {
	var d DailySpent

	d = d.Record(u(999_900), t0, period)
	assert.Equal(t, t0.Add(period), d.PeriodEnd)
	unspent, _ := Unspent(u(1_000_000), d, t0, period)
	assert.Equal(t, u(100), unspent)

	d = d.Record(u(100), t0.Add(time.Hour), period)
	unspent, end := Unspent(u(1_000_000), d, t0.Add(time.Hour), period)
	assert.True(t, unspent.IsZero())
	assert.Equal(t, t0.Add(period), end)

	rolled := t0.Add(period)
	unspent, end = Unspent(u(1_000_000), d, rolled, period)
	assert.Equal(t, u(1_000_000), unspent)
	assert.Equal(t, rolled.Add(period), end)

	d = d.Record(u(5), rolled, period)
	assert.Equal(t, u(5), d.SpentAt(rolled))
	assert.Equal(t, rolled.Add(period), d.PeriodEnd)
}

func TestUnspentDisabled(t *testing.T) {
	d := DailySpent{}.Record(u(5_000_000), t0, period)
	unspent, _ := Unspent(Disabled(), d, t0, period)
	assert.True(t, IsDisabledValue(unspent))
}

// op is one step of a generated limit history.
type op struct {
	Increase bool
	Value    uint64
	Advance  int64
}

func genOp() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.UInt64Range(1, 10_000_000),
		gen.Int64Range(0, 5),
	).Map(func(vals []interface{}) op {
		return op{Increase: vals[0].(bool), Value: vals[1].(uint64), Advance: vals[2].(int64)}
	})
}

func TestLimitProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decreases are immediate and increases wait out the security period", prop.ForAll(
		func(ops []op) bool {
			l := Settled(u(1_000_000))
			now := t0
			for _, o := range ops {
				now = now.Add(time.Duration(o.Advance) * time.Second)
				before := l.Resolve(now)
				target := u(o.Value)
				l = l.Change(target, now, securityPeriod)
				after := l.Resolve(now)
				if !target.Gt(before) {
					if !after.Eq(target) {
						return false
					}
				} else {
					if !after.Eq(before) {
						return false
					}
					if !l.Resolve(now.Add(securityPeriod)).Eq(target) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(genOp()),
	))

	properties.Property("unspent never exceeds the limit", prop.ForAll(
		func(limit uint64, spends []uint64, gaps []int64) bool {
			var d DailySpent
			now := t0
			for i, s := range spends {
				if i < len(gaps) {
					now = now.Add(time.Duration(gaps[i]) * time.Hour)
				}
				unspent, _ := Unspent(u(limit), d, now, period)
				if unspent.Gt(u(limit)) {
					return false
				}
				if d.Stale(now) && !unspent.Eq(u(limit)) {
					return false
				}
				if !u(s).Gt(unspent) {
					d = d.Record(u(s), now, period)
				}
			}
			return true
		},
		gen.UInt64Range(0, 1<<40),
		gen.SliceOf(gen.UInt64Range(0, 1<<40)),
		gen.SliceOf(gen.Int64Range(0, 30)),
	))

	properties.TestingRun(t)
}

// Package policy decides, for every outbound movement an account's owner
// initiates, whether it executes now, waits in the pending queue, or fails.
package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/chris/wallet-transfer-policy/pkg/events"
	"github.com/chris/wallet-transfer-policy/pkg/limits"
	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/oracle"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Store is the policy state the engine persists.
type Store interface {
	limits.Store
	whitelist.Store
	pending.Store
}

// Config holds the policy parameters.
type Config struct {
	// SecurityPeriod delays limit increases, whitelist additions and pending transfers.
	SecurityPeriod time.Duration
	// SecurityWindow is how long a pending transfer stays executable.
	SecurityWindow time.Duration
	// DailyPeriod is the length of a spending period.
	DailyPeriod time.Duration
	// DefaultLimit applies to accounts that never set a limit.
	DefaultLimit *uint256.Int
	// WrappedNative is the wrapped-native token used by ApproveWrappedAndCallContract.
	WrappedNative common.Address
}

// DefaultConfig returns production parameters.
func DefaultConfig() Config {
	return Config{
		SecurityPeriod: 24 * time.Hour,
		SecurityWindow: 12 * time.Hour,
		DailyPeriod:    24 * time.Hour,
		DefaultLimit:   new(uint256.Int).Mul(uint256.NewInt(10), oracle.PriceScale),
	}
}

// Engine is the transfer policy engine.
type Engine struct {
	cfg       Config
	limits    *limits.Tracker
	whitelist *whitelist.Registry
	queue     *pending.Queue
	oracle    oracle.PriceOracle
	ledger    custody.Ledger
	directory auth.Directory
	auth      auth.Authorizer
	publisher events.Publisher
	clock     clock.Clock
	logger    *slog.Logger
	locks     *accountLocks
	tel       telemetry
}

// Option configures an Engine.
type Option func(*Engine)

// WithAuthorizer replaces the default directory-backed authorizer.
func WithAuthorizer(a auth.Authorizer) Option {
	return func(e *Engine) { e.auth = a }
}

// WithPublisher sets where signals go. The default drops them.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine.
func New(cfg Config, store Store, prices oracle.PriceOracle, ledger custody.Ledger, directory auth.Directory, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		limits:    limits.NewTracker(store, cfg.SecurityPeriod, cfg.DailyPeriod, cfg.DefaultLimit),
		whitelist: whitelist.NewRegistry(store, cfg.SecurityPeriod),
		queue:     pending.NewQueue(store, cfg.SecurityPeriod, cfg.SecurityWindow),
		oracle:    prices,
		ledger:    ledger,
		directory: directory,
		auth:      auth.DirectoryAuthorizer{Directory: directory},
		publisher: events.NoOpPublisher{},
		clock:     clock.New(),
		logger:    slog.Default(),
		locks:     newAccountLocks(),
		tel:       newTelemetry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Make sure we conform to the interface
var _ API = (*Engine)(nil)

// Config returns the engine's parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) publish(ctx context.Context, event models.Event) {
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "failed to publish signal", "type", event.Type, "account", event.Account, "error", err)
	}
}

// guard is an account lock held for a whole operation. The context it
// returns marks the account as held, and that context is what the ledger
// hands to contract code. An engine call made from inside the contract with
// that context is re-entrant: it runs under the outer hold instead of
// deadlocking on it. Any other request for the account waits.
type guard struct {
	locks   *accountLocks
	account common.Address
	held    bool
}

type heldKey struct {
	locks   *accountLocks
	account common.Address
}

func (e *Engine) lock(ctx context.Context, account common.Address) (context.Context, *guard) {
	key := heldKey{e.locks, account}
	if ctx.Value(key) != nil {
		return ctx, &guard{}
	}
	e.locks.lock(account)
	return context.WithValue(ctx, key, struct{}{}), &guard{locks: e.locks, account: account, held: true}
}

func (g *guard) release() {
	if g.held {
		g.locks.unlock(g.account)
		g.held = false
	}
}

// spend is the outcome of the decision function.
type spend struct {
	direct      bool
	whitelisted bool
	ethValue    *uint256.Int
	check       limits.Check
}

// authorizeSpend decides whether amount of asset may leave for target now.
// An accepted non-whitelisted spend is recorded against the daily limit.
func (e *Engine) authorizeSpend(ctx context.Context, account, asset, target common.Address, amount *uint256.Int, now time.Time) (spend, error) {
	whitelisted, err := e.whitelist.IsActive(ctx, account, target, now)
	if err != nil {
		return spend{}, err
	}
	if whitelisted {
		return spend{direct: true, whitelisted: true}, nil
	}
	ethValue, err := oracle.EtherValue(ctx, e.oracle, asset, amount)
	if err != nil {
		return spend{}, err
	}
	check, err := e.limits.CheckAndRecord(ctx, account, ethValue, now)
	if err != nil {
		return spend{}, err
	}
	return spend{direct: check.Accepted, ethValue: ethValue, check: check}, nil
}

// refund reverses the limit effect of s.
func (e *Engine) refund(ctx context.Context, account common.Address, s spend) {
	if !s.check.Recorded {
		return
	}
	if err := e.limits.Refund(ctx, account, s.ethValue, s.check.PeriodEnd); err != nil {
		e.logger.ErrorContext(ctx, "failed to refund daily spend", "account", account.Hex(), "amount", s.ethValue.Dec(), "error", err)
	}
}

func aboveLimit(op string, account common.Address, s spend) error {
	return &Error{
		Op:        op,
		Account:   account,
		Err:       ErrAboveDailyLimit,
		Requested: s.ethValue,
		Limit:     s.check.Limit,
		Unspent:   s.check.Unspent,
	}
}

// checkTarget rejects calls into the account itself, its modules, and priced
// token contracts that are not whitelisted.
func (e *Engine) checkTarget(ctx context.Context, account, target common.Address, now time.Time) error {
	if target == account {
		return fmt.Errorf("%w: %s is the account", ErrForbiddenTarget, target.Hex())
	}
	module, err := e.directory.IsAuthorisedModule(ctx, account, target)
	if err != nil {
		return fmt.Errorf("failed to resolve modules: %w", err)
	}
	if module {
		return fmt.Errorf("%w: %s is a module of the account", ErrForbiddenTarget, target.Hex())
	}
	price, err := e.oracle.Price(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get price of %s: %w", target.Hex(), err)
	}
	if price.IsZero() {
		return nil
	}
	whitelisted, err := e.whitelist.IsActive(ctx, account, target, now)
	if err != nil {
		return err
	}
	if !whitelisted {
		return fmt.Errorf("%w: %s is a token contract", ErrForbiddenTarget, target.Hex())
	}
	return nil
}

// unspent reads the headroom for signals and results.
func (e *Engine) unspent(ctx context.Context, account common.Address, now time.Time) *uint256.Int {
	v, _, err := e.limits.Unspent(ctx, account, now)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to read unspent limit", "account", account.Hex(), "error", err)
		return nil
	}
	return v
}

func dec(v *uint256.Int) string {
	if v == nil {
		return ""
	}
	return v.Dec()
}

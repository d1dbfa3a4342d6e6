// Package memory is an in-process custody ledger. It keeps balances and
// allowances in maps, executes registered Go contracts for Invoke, and reverts
// the writes made by a call that returns an error. Writes by other callers
// that land while the call runs are kept.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// Contract is code reachable through Invoke.
type Contract interface {
	Call(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error)
}

// ContractFunc adapts a function to the Contract interface.
type ContractFunc func(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error)

// Call implements Contract.
func (f ContractFunc) Call(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	return f(ctx, env, caller, value, data)
}

type state struct {
	balances   map[common.Address]map[common.Address]*uint256.Int
	allowances map[common.Address]map[common.Address]map[common.Address]*uint256.Int
	entries    []models.LedgerEntry
}

func newState() *state {
	return &state{
		balances:   make(map[common.Address]map[common.Address]*uint256.Int),
		allowances: make(map[common.Address]map[common.Address]map[common.Address]*uint256.Int),
	}
}

// change is one write made during a call, kept so a revert can take back
// exactly that write and nothing else.
type change struct {
	allowance bool
	asset     common.Address
	holder    common.Address
	spender   common.Address
	prev      *uint256.Int
	next      *uint256.Int
}

// frame journals the writes of one call, including writes made through a
// context derived from the call's context. Guarded by Ledger.mu.
type frame struct {
	changes []change
	entries map[string]struct{}
}

func newFrame() *frame {
	return &frame{entries: make(map[string]struct{})}
}

func (f *frame) absorb(child *frame) {
	f.changes = append(f.changes, child.changes...)
	for id := range child.entries {
		f.entries[id] = struct{}{}
	}
}

type frameKey struct {
	ledger *Ledger
}

func (l *Ledger) frameFrom(ctx context.Context) *frame {
	f, _ := ctx.Value(frameKey{l}).(*frame)
	return f
}

// Ledger implements custody.Ledger in memory.
// Thread-safe via Mutex; the lock is never held while contract code runs.
type Ledger struct {
	mu        sync.Mutex
	st        *state
	contracts map[common.Address]Contract
	now       func() time.Time
}

// Make sure we conform to the interface
var (
	_ custody.Ledger = (*Ledger)(nil)
	_ custody.Atomic = (*Ledger)(nil)
)

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		st:        newState(),
		contracts: make(map[common.Address]Contract),
		now:       time.Now,
	}
}

// Deploy registers contract code at addr.
func (l *Ledger) Deploy(addr common.Address, c Contract) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.contracts[addr] = c
}

// Mint credits amount of asset to holder without a matching debit.
func (l *Ledger) Mint(asset, holder common.Address, amount *uint256.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mintLocked(nil, asset, holder, amount)
}

// Burn removes holder's whole balance of asset.
func (l *Ledger) Burn(asset, holder common.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(nil, false, asset, holder, common.Address{}, new(uint256.Int))
}

// MoveValue implements custody.Ledger.
func (l *Ledger) MoveValue(ctx context.Context, account, asset, target common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transferLocked(l.frameFrom(ctx), asset, account, target, amount)
}

// BalanceOf implements custody.Ledger.
func (l *Ledger) BalanceOf(ctx context.Context, account, asset common.Address) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(uint256.Int).Set(l.balanceLocked(asset, account)), nil
}

// SetAllowance implements custody.Ledger.
func (l *Ledger) SetAllowance(ctx context.Context, account, asset, spender common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(l.frameFrom(ctx), true, asset, account, spender, amount)
	return nil
}

// Allowance implements custody.Ledger.
func (l *Ledger) Allowance(ctx context.Context, account, asset, spender common.Address) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(uint256.Int).Set(l.allowanceLocked(asset, account, spender)), nil
}

// Invoke implements custody.Ledger. Value is moved before the contract runs;
// a failing contract takes back the value and every write it made.
func (l *Ledger) Invoke(ctx context.Context, account, target common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	return l.InvokeChecked(ctx, account, target, value, data, nil)
}

// InvokeChecked implements custody.Atomic. check runs after a successful call
// with the ledger unlocked; its failure rolls the call back like a revert.
// Ledger writes made with the context handed to the contract or to check
// belong to the call. A call nested in another call folds its writes into the
// outer one on success.
func (l *Ledger) InvokeChecked(ctx context.Context, account, target common.Address, value *uint256.Int, data []byte, check func(context.Context) error) ([]byte, error) {
	parent := l.frameFrom(ctx)
	f := newFrame()
	callCtx := context.WithValue(ctx, frameKey{l}, f)

	l.mu.Lock()
	contract := l.contracts[target]
	if value != nil && !value.IsZero() {
		if err := l.transferLocked(f, custody.NativeAsset, account, target, value); err != nil {
			l.mu.Unlock()
			return nil, err
		}
	}
	l.mu.Unlock()

	if value == nil {
		value = new(uint256.Int)
	}
	var out []byte
	if contract != nil {
		var err error
		out, err = contract.Call(callCtx, &Env{ledger: l, self: target, frame: f}, account, value, data)
		if err != nil {
			l.revert(f)
			return nil, fmt.Errorf("%w: %v", custody.ErrCallFailed, err)
		}
	}
	if check != nil {
		if err := check(callCtx); err != nil {
			l.revert(f)
			return nil, err
		}
	}
	if parent != nil {
		l.mu.Lock()
		parent.absorb(f)
		l.mu.Unlock()
	}
	return out, nil
}

// revert takes back the journaled writes of f, newest first. Each write is
// undone as a delta, so a concurrent write to the same key survives. A
// balance that was spent elsewhere in the meantime bottoms out at zero.
func (l *Ledger) revert(f *frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(f.changes) - 1; i >= 0; i-- {
		c := f.changes[i]
		cur := l.slotLocked(c.allowance, c.asset, c.holder, c.spender)
		restored, overflow := new(uint256.Int).AddOverflow(cur, c.prev)
		if overflow || restored.Lt(c.next) {
			restored.Clear()
		} else {
			restored.Sub(restored, c.next)
		}
		cur.Set(restored)
	}
	if len(f.entries) > 0 {
		kept := l.st.entries[:0]
		for _, e := range l.st.entries {
			if _, ok := f.entries[e.EntryID]; !ok {
				kept = append(kept, e)
			}
		}
		l.st.entries = kept
	}
	f.changes = nil
	f.entries = make(map[string]struct{})
}

// ListLedgerEntries retrieves the most recent ledger entries, newest first.
func (l *Ledger) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.st.entries)
	if limit > 0 && int(limit) < n {
		n = int(limit)
	}
	out := make([]models.LedgerEntry, 0, n)
	for i := len(l.st.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.st.entries[i])
	}
	return out, nil
}

func (l *Ledger) balanceLocked(asset, holder common.Address) *uint256.Int {
	holders, ok := l.st.balances[asset]
	if !ok {
		holders = make(map[common.Address]*uint256.Int)
		l.st.balances[asset] = holders
	}
	bal, ok := holders[holder]
	if !ok {
		bal = new(uint256.Int)
		holders[holder] = bal
	}
	return bal
}

func (l *Ledger) allowanceLocked(asset, owner, spender common.Address) *uint256.Int {
	owners, ok := l.st.allowances[asset]
	if !ok {
		owners = make(map[common.Address]map[common.Address]*uint256.Int)
		l.st.allowances[asset] = owners
	}
	spenders, ok := owners[owner]
	if !ok {
		spenders = make(map[common.Address]*uint256.Int)
		owners[owner] = spenders
	}
	a, ok := spenders[spender]
	if !ok {
		a = new(uint256.Int)
		spenders[spender] = a
	}
	return a
}

func (l *Ledger) slotLocked(allowance bool, asset, holder, spender common.Address) *uint256.Int {
	if allowance {
		return l.allowanceLocked(asset, holder, spender)
	}
	return l.balanceLocked(asset, holder)
}

// setLocked writes a balance or allowance slot, journaling it in f if set.
func (l *Ledger) setLocked(f *frame, allowance bool, asset, holder, spender common.Address, next *uint256.Int) {
	slot := l.slotLocked(allowance, asset, holder, spender)
	if f != nil {
		f.changes = append(f.changes, change{
			allowance: allowance,
			asset:     asset,
			holder:    holder,
			spender:   spender,
			prev:      new(uint256.Int).Set(slot),
			next:      new(uint256.Int).Set(next),
		})
	}
	slot.Set(next)
}

func (l *Ledger) mintLocked(f *frame, asset, holder common.Address, amount *uint256.Int) {
	bal := l.balanceLocked(asset, holder)
	l.setLocked(f, false, asset, holder, common.Address{}, new(uint256.Int).Add(bal, amount))
}

func (l *Ledger) transferLocked(f *frame, asset, from, to common.Address, amount *uint256.Int) error {
	src := l.balanceLocked(asset, from)
	if src.Lt(amount) {
		return fmt.Errorf("%w: %s holds %s of %s, needs %s", custody.ErrInsufficientBalance, from.Hex(), src.Dec(), asset.Hex(), amount.Dec())
	}
	l.setLocked(f, false, asset, from, common.Address{}, new(uint256.Int).Sub(src, amount))
	dst := l.balanceLocked(asset, to)
	l.setLocked(f, false, asset, to, common.Address{}, new(uint256.Int).Add(dst, amount))

	ref := uuid.New().String()
	debitID, creditID := uuid.New().String(), uuid.New().String()
	if f != nil {
		f.entries[debitID] = struct{}{}
		f.entries[creditID] = struct{}{}
	}
	now := l.now()
	l.st.entries = append(l.st.entries,
		models.LedgerEntry{
			EntryID:     debitID,
			Reference:   ref,
			AccountID:   from.Hex(),
			Asset:       asset.Hex(),
			Debit:       amount.Dec(),
			Description: fmt.Sprintf("Transfer to %s", to.Hex()),
			Timestamp:   now,
		},
		models.LedgerEntry{
			EntryID:     creditID,
			Reference:   ref,
			AccountID:   to.Hex(),
			Asset:       asset.Hex(),
			Credit:      amount.Dec(),
			Description: fmt.Sprintf("Transfer from %s", from.Hex()),
			Timestamp:   now,
		},
	)
	return nil
}

// Env is what contract code sees of the ledger while it runs.
type Env struct {
	ledger *Ledger
	self   common.Address
	frame  *frame
}

// Self is the address of the running contract.
func (e *Env) Self() common.Address {
	return e.self
}

// Transfer moves amount of asset from the running contract to another holder.
func (e *Env) Transfer(asset, to common.Address, amount *uint256.Int) error {
	e.ledger.mu.Lock()
	defer e.ledger.mu.Unlock()
	return e.ledger.transferLocked(e.frame, asset, e.self, to, amount)
}

// TransferFrom draws on owner's allowance to the running contract and moves
// amount of asset from owner to to.
func (e *Env) TransferFrom(asset, owner, to common.Address, amount *uint256.Int) error {
	return e.TransferFromAs(e.self, asset, owner, to, amount)
}

// TransferFromAs draws on owner's allowance to spender, for contracts that
// hand spending off to a helper address.
func (e *Env) TransferFromAs(spender, asset, owner, to common.Address, amount *uint256.Int) error {
	e.ledger.mu.Lock()
	defer e.ledger.mu.Unlock()
	a := e.ledger.allowanceLocked(asset, owner, spender)
	if a.Lt(amount) {
		return fmt.Errorf("%w: %s may draw %s, needs %s", custody.ErrInsufficientAllowance, spender.Hex(), a.Dec(), amount.Dec())
	}
	if err := e.ledger.transferLocked(e.frame, asset, owner, to, amount); err != nil {
		return err
	}
	e.ledger.setLocked(e.frame, true, asset, owner, spender, new(uint256.Int).Sub(a, amount))
	return nil
}

// Mint credits amount of asset to holder.
func (e *Env) Mint(asset, holder common.Address, amount *uint256.Int) {
	e.ledger.mu.Lock()
	defer e.ledger.mu.Unlock()
	e.ledger.mintLocked(e.frame, asset, holder, amount)
}

// BalanceOf reads a balance.
func (e *Env) BalanceOf(asset, holder common.Address) *uint256.Int {
	e.ledger.mu.Lock()
	defer e.ledger.mu.Unlock()
	return new(uint256.Int).Set(e.ledger.balanceLocked(asset, holder))
}

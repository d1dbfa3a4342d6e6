// Package auth resolves who may act on an account. The caller identity is
// established upstream (relay middleware) and carried in the context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
)

// ErrUnauthorized is returned when the caller is neither the owner nor an authorised module.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnknownAccount is returned by a Directory for an account it has no record of.
var ErrUnknownAccount = errors.New("unknown account")

type callerKey struct{}

// WithCaller returns a context carrying the authenticated caller.
func WithCaller(ctx context.Context, caller common.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the authenticated caller, if any.
func CallerFrom(ctx context.Context) (common.Address, bool) {
	caller, ok := ctx.Value(callerKey{}).(common.Address)
	return caller, ok
}

// Directory answers ownership questions about accounts.
type Directory interface {
	OwnerOf(ctx context.Context, account common.Address) (common.Address, error)
	IsAuthorisedModule(ctx context.Context, account, module common.Address) (bool, error)
}

// Authorizer decides whether the caller in ctx may act as account's owner.
type Authorizer interface {
	ActingOwner(ctx context.Context, account common.Address) (common.Address, error)
}

// DirectoryAuthorizer admits the owner and the account's authorised modules.
type DirectoryAuthorizer struct {
	Directory Directory
}

// ActingOwner implements Authorizer.
func (a DirectoryAuthorizer) ActingOwner(ctx context.Context, account common.Address) (common.Address, error) {
	caller, ok := CallerFrom(ctx)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: no caller", ErrUnauthorized)
	}
	owner, err := a.Directory.OwnerOf(ctx, account)
	if errors.Is(err, ErrUnknownAccount) {
		return common.Address{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to resolve owner: %w", err)
	}
	if caller == owner {
		return owner, nil
	}
	module, err := a.Directory.IsAuthorisedModule(ctx, account, caller)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to resolve modules: %w", err)
	}
	if module {
		return owner, nil
	}
	return common.Address{}, fmt.Errorf("%w: %s may not act for %s", ErrUnauthorized, caller.Hex(), account.Hex())
}

// MemoryDirectory is a Directory kept in memory.
type MemoryDirectory struct {
	mu      sync.RWMutex
	owners  map[common.Address]common.Address
	modules map[common.Address]map[common.Address]bool
}

// NewMemoryDirectory creates an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		owners:  make(map[common.Address]common.Address),
		modules: make(map[common.Address]map[common.Address]bool),
	}
}

// Register records account with its owner and modules.
func (d *MemoryDirectory) Register(account, owner common.Address, modules ...common.Address) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.owners[account] = owner
	m := make(map[common.Address]bool, len(modules))
	for _, mod := range modules {
		m[mod] = true
	}
	d.modules[account] = m
}

// OwnerOf implements Directory.
func (d *MemoryDirectory) OwnerOf(ctx context.Context, account common.Address) (common.Address, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	owner, ok := d.owners[account]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", ErrUnknownAccount, account.Hex())
	}
	return owner, nil
}

// IsAuthorisedModule implements Directory.
func (d *MemoryDirectory) IsAuthorisedModule(ctx context.Context, account, module common.Address) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modules[account][module], nil
}

// StoreDirectory reads accounts from an AccountStore.
type StoreDirectory struct {
	Store storage.AccountStore
}

// OwnerOf implements Directory.
func (d StoreDirectory) OwnerOf(ctx context.Context, account common.Address) (common.Address, error) {
	a, err := d.Store.GetAccount(ctx, account.Hex())
	if errors.Is(err, storage.ErrNotFound) {
		return common.Address{}, fmt.Errorf("%w: %s", ErrUnknownAccount, account.Hex())
	}
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(a.Owner), nil
}

// IsAuthorisedModule implements Directory.
func (d StoreDirectory) IsAuthorisedModule(ctx context.Context, account, module common.Address) (bool, error) {
	a, err := d.Store.GetAccount(ctx, account.Hex())
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, m := range a.Modules {
		if strings.EqualFold(m, module.Hex()) {
			return true, nil
		}
	}
	return false, nil
}

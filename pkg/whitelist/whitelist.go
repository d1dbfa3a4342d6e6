// Package whitelist keeps the trusted destinations of each account. New
// entries become active only after a security period; removal is immediate.
package whitelist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
)

// ErrAlreadyWhitelisted is returned when adding a target that has an entry, pending or active.
var ErrAlreadyWhitelisted = errors.New("target already whitelisted")

// ErrNotWhitelisted is returned when removing a target that has no entry.
var ErrNotWhitelisted = errors.New("target not whitelisted")

// State of an entry at a given instant.
type State string

const (
	StatePending State = "PENDING"
	StateActive  State = "ACTIVE"
)

// Entry is one trusted destination.
type Entry struct {
	Account        common.Address
	Target         common.Address
	WhitelistAfter time.Time
}

// State reports whether the entry is in force at now.
func (e Entry) State(now time.Time) State {
	if now.Before(e.WhitelistAfter) {
		return StatePending
	}
	return StateActive
}

// Store persists whitelist entries. Insert fails with storage.ErrAlreadyExists
// when an entry for the pair exists; Get and Delete fail with
// storage.ErrNotFound when it does not.
type Store interface {
	GetWhitelistEntry(ctx context.Context, account, target common.Address) (*Entry, error)
	InsertWhitelistEntry(ctx context.Context, entry *Entry) error
	DeleteWhitelistEntry(ctx context.Context, account, target common.Address) error
	ListWhitelistEntries(ctx context.Context, account common.Address) ([]Entry, error)
}

// Registry applies the whitelist rules on top of a Store.
type Registry struct {
	store          Store
	securityPeriod time.Duration
}

// NewRegistry creates a registry whose entries mature after securityPeriod.
func NewRegistry(store Store, securityPeriod time.Duration) *Registry {
	return &Registry{store: store, securityPeriod: securityPeriod}
}

// Add inserts target with an activation time of now+securityPeriod.
func (r *Registry) Add(ctx context.Context, account, target common.Address, now time.Time) (*Entry, error) {
	entry := &Entry{
		Account:        account,
		Target:         target,
		WhitelistAfter: now.Add(r.securityPeriod),
	}
	if err := r.store.InsertWhitelistEntry(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrAlreadyWhitelisted
		}
		return nil, fmt.Errorf("failed to add whitelist entry: %w", err)
	}
	return entry, nil
}

// Remove deletes target.
func (r *Registry) Remove(ctx context.Context, account, target common.Address) error {
	if err := r.store.DeleteWhitelistEntry(ctx, account, target); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotWhitelisted
		}
		return fmt.Errorf("failed to remove whitelist entry: %w", err)
	}
	return nil
}

// Get returns the entry for target, or ErrNotWhitelisted.
func (r *Registry) Get(ctx context.Context, account, target common.Address) (*Entry, error) {
	entry, err := r.store.GetWhitelistEntry(ctx, account, target)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotWhitelisted
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get whitelist entry: %w", err)
	}
	return entry, nil
}

// IsActive reports whether target has an entry in force at now.
func (r *Registry) IsActive(ctx context.Context, account, target common.Address, now time.Time) (bool, error) {
	entry, err := r.Get(ctx, account, target)
	if errors.Is(err, ErrNotWhitelisted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entry.State(now) == StateActive, nil
}

// List returns all entries of account, pending ones included.
func (r *Registry) List(ctx context.Context, account common.Address) ([]Entry, error) {
	entries, err := r.store.ListWhitelistEntries(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to list whitelist entries: %w", err)
	}
	return entries, nil
}

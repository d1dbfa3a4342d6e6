// Package memory is an in-process storage backend for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/limits"
	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type pairKey struct {
	account common.Address
	target  common.Address
}

type pendingKey struct {
	account common.Address
	id      common.Hash
}

// Store implements every storage interface in memory.
// Thread-safe via RWMutex. Records are copied in and out.
type Store struct {
	mu           sync.RWMutex
	limits       map[common.Address]*limits.State
	whitelist    map[pairKey]whitelist.Entry
	pending      map[pendingKey]*pending.Transfer
	creationRefs map[common.Address]uint64
	accounts     map[string]models.Account
	events       []models.Event
}

// Make sure we conform to the interfaces
var (
	_ limits.Store    = (*Store)(nil)
	_ whitelist.Store = (*Store)(nil)
	_ pending.Store   = (*Store)(nil)
	_ pending.Scanner = (*Store)(nil)
	_ storage.Storage = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{
		limits:       make(map[common.Address]*limits.State),
		whitelist:    make(map[pairKey]whitelist.Entry),
		pending:      make(map[pendingKey]*pending.Transfer),
		creationRefs: make(map[common.Address]uint64),
		accounts:     make(map[string]models.Account),
	}
}

func copyInt(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v)
}

func copyLimitState(st *limits.State) *limits.State {
	return &limits.State{
		Account: st.Account,
		Limit: limits.Limit{
			Current:     copyInt(st.Limit.Current),
			Pending:     copyInt(st.Limit.Pending),
			ChangeAfter: st.Limit.ChangeAfter,
		},
		Spent: limits.DailySpent{
			Amount:    copyInt(st.Spent.Amount),
			PeriodEnd: st.Spent.PeriodEnd,
		},
		Version: st.Version,
	}
}

func copyTransfer(t *pending.Transfer) *pending.Transfer {
	c := *t
	c.Amount = copyInt(t.Amount)
	c.Data = append([]byte(nil), t.Data...)
	return &c
}

// GetLimitState implements limits.Store.
func (s *Store) GetLimitState(ctx context.Context, account common.Address) (*limits.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.limits[account]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyLimitState(st), nil
}

// SaveLimitState implements limits.Store.
func (s *Store) SaveLimitState(ctx context.Context, state *limits.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stored int64
	if cur, ok := s.limits[state.Account]; ok {
		stored = cur.Version
	}
	if stored != state.Version {
		return fmt.Errorf("%w: limit state of %s is at version %d, not %d", storage.ErrVersionConflict, state.Account.Hex(), stored, state.Version)
	}
	next := copyLimitState(state)
	next.Version = state.Version + 1
	s.limits[state.Account] = next
	return nil
}

// GetWhitelistEntry implements whitelist.Store.
func (s *Store) GetWhitelistEntry(ctx context.Context, account, target common.Address) (*whitelist.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.whitelist[pairKey{account, target}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &e, nil
}

// InsertWhitelistEntry implements whitelist.Store.
func (s *Store) InsertWhitelistEntry(ctx context.Context, entry *whitelist.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{entry.Account, entry.Target}
	if _, ok := s.whitelist[k]; ok {
		return storage.ErrAlreadyExists
	}
	s.whitelist[k] = *entry
	return nil
}

// DeleteWhitelistEntry implements whitelist.Store.
func (s *Store) DeleteWhitelistEntry(ctx context.Context, account, target common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{account, target}
	if _, ok := s.whitelist[k]; !ok {
		return storage.ErrNotFound
	}
	delete(s.whitelist, k)
	return nil
}

// ListWhitelistEntries implements whitelist.Store.
func (s *Store) ListWhitelistEntries(ctx context.Context, account common.Address) ([]whitelist.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []whitelist.Entry
	for k, e := range s.whitelist {
		if k.account == account {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Target.Hex(), out[j].Target.Hex()) < 0
	})
	return out, nil
}

// GetPendingTransfer implements pending.Store.
func (s *Store) GetPendingTransfer(ctx context.Context, account common.Address, id common.Hash) (*pending.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.pending[pendingKey{account, id}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyTransfer(t), nil
}

// InsertPendingTransfer implements pending.Store.
func (s *Store) InsertPendingTransfer(ctx context.Context, transfer *pending.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pendingKey{transfer.Account, transfer.ID}
	if _, ok := s.pending[k]; ok {
		return storage.ErrAlreadyExists
	}
	s.pending[k] = copyTransfer(transfer)
	return nil
}

// DeletePendingTransfer implements pending.Store.
func (s *Store) DeletePendingTransfer(ctx context.Context, account common.Address, id common.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pendingKey{account, id}
	if _, ok := s.pending[k]; !ok {
		return storage.ErrNotFound
	}
	delete(s.pending, k)
	return nil
}

// ListPendingTransfers implements pending.Store.
func (s *Store) ListPendingTransfers(ctx context.Context, account common.Address) ([]pending.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pending.Transfer
	for k, t := range s.pending {
		if k.account == account {
			out = append(out, *copyTransfer(t))
		}
	}
	sortTransfers(out)
	return out, nil
}

// NextCreationRef implements pending.Store.
func (s *Store) NextCreationRef(ctx context.Context, account common.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creationRefs[account]++
	return s.creationRefs[account], nil
}

// ScanPendingTransfers implements pending.Scanner.
func (s *Store) ScanPendingTransfers(ctx context.Context, dueBy time.Time) ([]pending.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pending.Transfer
	for _, t := range s.pending {
		if !t.ExecuteAfter.After(dueBy) {
			out = append(out, *copyTransfer(t))
		}
	}
	sortTransfers(out)
	return out, nil
}

func sortTransfers(ts []pending.Transfer) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].ExecuteAfter.Equal(ts[j].ExecuteAfter) {
			return ts[i].ExecuteAfter.Before(ts[j].ExecuteAfter)
		}
		return ts[i].CreationRef < ts[j].CreationRef
	})
}

// GetAccount implements storage.AccountStore.
func (s *Store) GetAccount(ctx context.Context, address string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[address]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", storage.ErrNotFound, address)
	}
	a.Modules = append([]string(nil), a.Modules...)
	return &a, nil
}

// CreateAccount implements storage.AccountStore.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Address]; ok {
		return nil, fmt.Errorf("%w: account %s", storage.ErrAlreadyExists, account.Address)
	}
	a := *account
	a.Modules = append([]string(nil), account.Modules...)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.accounts[a.Address] = a
	return &a, nil
}

// UpdateAccount implements storage.AccountStore.
func (s *Store) UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.accounts[account.Address]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", storage.ErrNotFound, account.Address)
	}
	if cur.Version != account.Version {
		return nil, fmt.Errorf("%w: account %s", storage.ErrVersionConflict, account.Address)
	}
	cur.Owner = account.Owner
	cur.Modules = append([]string(nil), account.Modules...)
	cur.Version++
	s.accounts[cur.Address] = cur
	return &cur, nil
}

// DeleteAccount implements storage.AccountStore.
func (s *Store) DeleteAccount(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[address]; !ok {
		return fmt.Errorf("%w: account %s", storage.ErrNotFound, address)
	}
	delete(s.accounts, address)
	return nil
}

// ListAccounts implements storage.AccountStore.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out, nil
}

// AppendEvent implements storage.EventStore.
func (s *Store) AppendEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

// ListEventsByAccount implements storage.EventStore.
func (s *Store) ListEventsByAccount(ctx context.Context, account string, limit int32) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for i := len(s.events) - 1; i >= 0; i-- {
		if !strings.EqualFold(s.events[i].Account, account) {
			continue
		}
		out = append(out, s.events[i])
		if limit > 0 && int32(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// Package events defines the signals emitted on every successful policy
// mutation and the publishers that deliver them.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Type names a signal.
type Type string

const (
	WhitelistAdded         Type = "whitelist_added"
	WhitelistRemoved       Type = "whitelist_removed"
	LimitChangeScheduled   Type = "limit_change_scheduled"
	LimitDisableScheduled  Type = "limit_disable_scheduled"
	TransferCompleted      Type = "transfer_completed"
	TransferPending        Type = "transfer_pending"
	TransferExecuted       Type = "transfer_executed"
	TransferCanceled       Type = "transfer_canceled"
	ApprovalCompleted      Type = "approval_completed"
	CallCompleted          Type = "call_completed"
	ApproveAndCallComplete Type = "approve_and_call_completed"
)

// Attribute keys.
const (
	AttrToken        = "token"
	AttrTarget       = "target"
	AttrSpender      = "spender"
	AttrAmount       = "amount"
	AttrValue        = "value"
	AttrData         = "data"
	AttrID           = "id"
	AttrExecuteAfter = "execute_after"
	AttrCreationRef  = "creation_ref"
	AttrNewLimit     = "new_limit"
	AttrStartAfter   = "start_after"
	AttrWhitelistAt  = "whitelist_after"
	AttrUnspent      = "unspent"
	AttrConsumed     = "consumed"
	AttrResult       = "result"
)

// New builds a signal with a fresh id. kv alternates keys and values.
func New(typ Type, account common.Address, at time.Time, kv ...string) models.Event {
	attrs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return models.Event{
		EventID:    uuid.New().String(),
		Account:    account.Hex(),
		Type:       string(typ),
		Attributes: attrs,
		Timestamp:  at,
	}
}

// Publisher delivers signals.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// NoOpPublisher drops every signal.
type NoOpPublisher struct{}

// Publish does nothing.
func (NoOpPublisher) Publish(ctx context.Context, event models.Event) error {
	return nil
}

// Recorder keeps published signals in memory.
type Recorder struct {
	mu     sync.Mutex
	events []models.Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(ctx context.Context, event models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Event(nil), r.events...)
}

// OfType returns the recorded signals of typ.
func (r *Recorder) OfType(typ Type) []models.Event {
	var out []models.Event
	for _, e := range r.Events() {
		if e.Type == string(typ) {
			out = append(out, e)
		}
	}
	return out
}

// Journal publishes by appending to an EventStore.
type Journal struct {
	Store storage.EventStore
}

// Publish implements Publisher.
func (j Journal) Publish(ctx context.Context, event models.Event) error {
	if err := j.Store.AppendEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to journal event: %w", err)
	}
	return nil
}

// Multi fans a signal out to several publishers. Every publisher is tried;
// failures are logged and joined.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, event models.Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			slog.Error("failed to publish event", "type", event.Type, "account", event.Account, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// CronScheduler defines the interface for a component that wakes a keeper when
// a queued transfer becomes executable.
type CronScheduler interface {
	// SchedulePendingTransfer enqueues the transfer for delivery after delay.
	SchedulePendingTransfer(ctx context.Context, transfer *pending.Transfer, delay time.Duration) error
}

// Message is the queued form of a pending transfer. It carries the full tuple
// so the keeper can execute without reading the pending store.
type Message struct {
	ID           string    `json:"id"`
	Account      string    `json:"account"`
	Token        string    `json:"token"`
	To           string    `json:"to"`
	Amount       string    `json:"amount"`
	Data         string    `json:"data,omitempty"`
	CreationRef  uint64    `json:"creation_ref"`
	ExecuteAfter time.Time `json:"execute_after"`
}

// NewMessage converts a pending transfer to its queued form.
func NewMessage(t *pending.Transfer) Message {
	m := Message{
		ID:           t.ID.Hex(),
		Account:      t.Account.Hex(),
		Token:        t.Token.Hex(),
		To:           t.Target.Hex(),
		Amount:       "0",
		CreationRef:  t.CreationRef,
		ExecuteAfter: t.ExecuteAfter,
	}
	if t.Amount != nil {
		m.Amount = t.Amount.Dec()
	}
	if len(t.Data) > 0 {
		m.Data = hexutil.Encode(t.Data)
	}
	return m
}

// Transfer parses the message back into a pending transfer.
func (m Message) Transfer() (*pending.Transfer, error) {
	for _, a := range []string{m.Account, m.Token, m.To} {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("invalid address %q in message %s", a, m.ID)
		}
	}
	amount, err := uint256.FromDecimal(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount in message %s: %w", m.ID, err)
	}
	var data []byte
	if m.Data != "" {
		if data, err = hexutil.Decode(m.Data); err != nil {
			return nil, fmt.Errorf("invalid data in message %s: %w", m.ID, err)
		}
	}
	return &pending.Transfer{
		ID:           common.HexToHash(m.ID),
		Account:      common.HexToAddress(m.Account),
		Token:        common.HexToAddress(m.Token),
		Target:       common.HexToAddress(m.To),
		Amount:       amount,
		Data:         data,
		CreationRef:  m.CreationRef,
		ExecuteAfter: m.ExecuteAfter,
	}, nil
}

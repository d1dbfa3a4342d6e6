package models

import (
	"time"
)

// PendingStatus describes where a pending transfer is in its execution window.
type PendingStatus string

const (
	WAITING    PendingStatus = "WAITING"
	EXECUTABLE PendingStatus = "EXECUTABLE"
	EXPIRED    PendingStatus = "EXPIRED"
)

// Account is the directory record for a custodying account.
// Accounts are provisioned outside the policy engine; the engine only reads
// the owner and the set of authorised modules.
type Account struct {
	Address   string    `json:"address" dynamodbav:"account"`
	Owner     string    `json:"owner" dynamodbav:"owner"`
	Modules   []string  `json:"modules,omitempty" dynamodbav:"modules,omitempty"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// LedgerEntry represents a single entry in the double-entry ledger.
// Amounts are decimal strings of base units.
type LedgerEntry struct {
	EntryID     string    `json:"entry_id" dynamodbav:"entry_id"`
	Reference   string    `json:"reference" dynamodbav:"reference"`
	AccountID   string    `json:"account_id" dynamodbav:"account_id"`
	Asset       string    `json:"asset" dynamodbav:"asset"`
	Debit       string    `json:"debit,omitempty" dynamodbav:"debit,omitempty"`
	Credit      string    `json:"credit,omitempty" dynamodbav:"credit,omitempty"`
	Description string    `json:"description" dynamodbav:"description"`
	Timestamp   time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// Event is a journaled policy signal. Attributes hold the signal-specific
// fields (amounts as decimal strings, addresses and ids as hex).
type Event struct {
	EventID    string            `json:"event_id" dynamodbav:"event_id"`
	Account    string            `json:"account" dynamodbav:"account"`
	Type       string            `json:"type" dynamodbav:"type"`
	Attributes map[string]string `json:"attributes,omitempty" dynamodbav:"attributes,omitempty"`
	Timestamp  time.Time         `json:"timestamp" dynamodbav:"timestamp"`
}

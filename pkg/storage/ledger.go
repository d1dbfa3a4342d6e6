package storage

import (
	"context"

	"github.com/chris/wallet-transfer-policy/pkg/models"
)

// LedgerReader defines the interface for reading custody ledger data.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}

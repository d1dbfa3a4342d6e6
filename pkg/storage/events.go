package storage

import (
	"context"

	"github.com/chris/wallet-transfer-policy/pkg/models"
)

// EventStore defines the interface for the policy signal journal.
type EventStore interface {
	// AppendEvent journals a signal.
	AppendEvent(ctx context.Context, event *models.Event) error

	// ListEventsByAccount retrieves the most recent signals of an account, newest first.
	ListEventsByAccount(ctx context.Context, account string, limit int32) ([]models.Event, error)
}

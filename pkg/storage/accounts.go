package storage

import (
	"context"

	"github.com/chris/wallet-transfer-policy/pkg/models"
)

// AccountStore defines the interface for the account directory.
type AccountStore interface {
	// GetAccount retrieves an account by its address.
	GetAccount(ctx context.Context, address string) (*models.Account, error)

	// CreateAccount registers a new account.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// UpdateAccount replaces the owner and modules of an account if its version is unchanged.
	UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, address string) error

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

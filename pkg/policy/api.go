package policy

import (
	"context"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Decision is how a transfer was handled.
type Decision string

const (
	// DecisionDirect means value moved immediately.
	DecisionDirect Decision = "direct"
	// DecisionDeferred means the transfer was queued.
	DecisionDeferred Decision = "deferred"
)

// TransferResult is the outcome of TransferToken.
type TransferResult struct {
	Decision Decision
	// Pending is set for a deferred transfer.
	Pending *pending.Transfer
	// Unspent is the headroom left after the operation.
	Unspent *uint256.Int
}

// CallResult is the outcome of the contract-call operations.
type CallResult struct {
	Result  []byte
	Unspent *uint256.Int
	// Consumed is the allowance the callee drew, for approve-and-call.
	Consumed *uint256.Int
}

// ApprovalResult is the outcome of ApproveToken.
type ApprovalResult struct {
	Allowance *uint256.Int
	Unspent   *uint256.Int
}

// LimitChange describes a requested limit and when it takes effect. StartAfter
// is the request time for a limit that applied immediately.
type LimitChange struct {
	Limit      *uint256.Int
	StartAfter time.Time
}

// API is the policy engine surface used by handlers and workers.
type API interface {
	ChangeLimit(ctx context.Context, account common.Address, newLimit *uint256.Int) (*LimitChange, error)
	DisableLimit(ctx context.Context, account common.Address) (*LimitChange, error)
	AddToWhitelist(ctx context.Context, account, target common.Address) (*whitelist.Entry, error)
	RemoveFromWhitelist(ctx context.Context, account, target common.Address) error

	TransferToken(ctx context.Context, account, token, to common.Address, amount *uint256.Int, data []byte) (*TransferResult, error)
	ExecutePendingTransfer(ctx context.Context, account, token, to common.Address, amount *uint256.Int, data []byte, creationRef uint64) (*pending.Transfer, error)
	CancelPendingTransfer(ctx context.Context, account common.Address, id common.Hash) error

	ApproveToken(ctx context.Context, account, token, spender common.Address, amount *uint256.Int) (*ApprovalResult, error)
	CallContract(ctx context.Context, account, target common.Address, value *uint256.Int, data []byte) (*CallResult, error)
	ApproveTokenAndCallContract(ctx context.Context, account, token, spender common.Address, amount *uint256.Int, target common.Address, data []byte) (*CallResult, error)
	ApproveWrappedAndCallContract(ctx context.Context, account, spender common.Address, amount *uint256.Int, target common.Address, data []byte) (*CallResult, error)

	CurrentLimit(ctx context.Context, account common.Address) (*uint256.Int, error)
	PendingLimit(ctx context.Context, account common.Address) (*uint256.Int, time.Time, error)
	IsLimitDisabled(ctx context.Context, account common.Address) (bool, error)
	DailyUnspent(ctx context.Context, account common.Address) (*uint256.Int, time.Time, error)
	DailySpent(ctx context.Context, account common.Address) (*uint256.Int, time.Time, error)
	IsWhitelisted(ctx context.Context, account, target common.Address) (bool, error)
	Whitelist(ctx context.Context, account common.Address) ([]whitelist.Entry, error)
	PendingTransfer(ctx context.Context, account common.Address, id common.Hash) (*pending.Transfer, error)
	PendingTransfers(ctx context.Context, account common.Address) ([]pending.Transfer, error)
	EtherValue(ctx context.Context, token common.Address, amount *uint256.Int) (*uint256.Int, error)
}

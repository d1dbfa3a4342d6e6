// Package custody defines the value-movement primitives the policy engine
// consumes from the wallet that holds an account's assets.
package custody

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// NativeAsset identifies the chain's base unit (ether) wherever an asset address is expected.
var NativeAsset = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// DepositSelector is the 4-byte selector of the wrapped-native token's deposit() method.
var DepositSelector = crypto.Keccak256([]byte("deposit()"))[:4]

// ErrInsufficientBalance is returned when an account cannot cover a value movement.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInsufficientAllowance is returned when a spender draws more than its allowance.
var ErrInsufficientAllowance = errors.New("insufficient allowance")

// ErrCallFailed is returned when an invoked contract reverts.
var ErrCallFailed = errors.New("contract call failed")

// Ledger is the custody surface of an account: balances, allowances and arbitrary calls
// executed with the account as the caller.
type Ledger interface {
	// MoveValue transfers amount of asset from account to target.
	MoveValue(ctx context.Context, account, asset, target common.Address, amount *uint256.Int) error

	// BalanceOf returns the account's balance of asset.
	BalanceOf(ctx context.Context, account, asset common.Address) (*uint256.Int, error)

	// SetAllowance sets the amount spender may draw from account's balance of asset.
	SetAllowance(ctx context.Context, account, asset, spender common.Address, amount *uint256.Int) error

	// Allowance returns the amount spender may still draw from account's balance of asset.
	Allowance(ctx context.Context, account, asset, spender common.Address) (*uint256.Int, error)

	// Invoke calls target with value and data on behalf of account.
	Invoke(ctx context.Context, account, target common.Address, value *uint256.Int, data []byte) ([]byte, error)
}

// Atomic is implemented by ledgers that can run a call and a follow-up check
// as one unit. When check fails, everything the call changed is undone and the
// check's error is returned.
type Atomic interface {
	InvokeChecked(ctx context.Context, account, target common.Address, value *uint256.Int, data []byte, check func(context.Context) error) ([]byte, error)
}

// IsNative reports whether asset is the chain's base unit.
func IsNative(asset common.Address) bool {
	return asset == NativeAsset
}

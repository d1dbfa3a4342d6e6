package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ErrUnknownSelector is returned by built-in contracts for call data they do not understand.
var ErrUnknownSelector = errors.New("unknown selector")

// WrappedNative is a wrapped-native token contract. deposit() credits the
// caller with one wrapped unit per native unit received.
type WrappedNative struct{}

// Call implements Contract.
func (WrappedNative) Call(ctx context.Context, env *Env, caller common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	if len(data) == 0 || bytes.HasPrefix(data, custody.DepositSelector) {
		env.Mint(env.Self(), caller, value)
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, data)
}

// Package oracle converts asset amounts into the native unit of account used
// for daily-limit comparisons.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PriceScale is the fixed-point base prices are quoted in.
var PriceScale = uint256.NewInt(1_000_000_000_000_000_000)

// ErrLengthMismatch is returned when a batch write is given unaligned slices.
var ErrLengthMismatch = errors.New("tokens and prices differ in length")

// PriceOracle is a read-only view of cached token prices. A token without a
// price has price zero.
type PriceOracle interface {
	Price(ctx context.Context, token common.Address) (*uint256.Int, error)
	PriceBatch(ctx context.Context, tokens []common.Address) ([]*uint256.Int, error)
}

// PriceManager is the write side of a price cache.
type PriceManager interface {
	SetPrice(ctx context.Context, token common.Address, price *uint256.Int) error
	SetPrices(ctx context.Context, tokens []common.Address, prices []*uint256.Int) error
}

// Cache is a price cache that can be both read and written.
type Cache interface {
	PriceOracle
	PriceManager
}

// EtherValue converts amount of asset into native units: amount*price/1e18,
// truncated. The native asset is its own unit.
func EtherValue(ctx context.Context, o PriceOracle, asset common.Address, amount *uint256.Int) (*uint256.Int, error) {
	if custody.IsNative(asset) {
		return new(uint256.Int).Set(amount), nil
	}
	price, err := o.Price(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get price of %s: %w", asset.Hex(), err)
	}
	return Convert(amount, price), nil
}

// Convert computes amount*price/1e18 with a 512-bit intermediate. A quotient
// that does not fit in 256 bits saturates at the maximum value.
func Convert(amount, price *uint256.Int) *uint256.Int {
	if amount.IsZero() || price == nil || price.IsZero() {
		return new(uint256.Int)
	}
	v, overflow := new(uint256.Int).MulDivOverflow(amount, price, PriceScale)
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return v
}

package oracle

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// MemoryCache is an in-process price cache.
type MemoryCache struct {
	mu     sync.RWMutex
	prices map[common.Address]*uint256.Int
}

// Make sure we conform to the interface
var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{prices: make(map[common.Address]*uint256.Int)}
}

// Price implements PriceOracle.
func (c *MemoryCache) Price(ctx context.Context, token common.Address) (*uint256.Int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.prices[token]; ok {
		return new(uint256.Int).Set(p), nil
	}
	return new(uint256.Int), nil
}

// PriceBatch implements PriceOracle.
func (c *MemoryCache) PriceBatch(ctx context.Context, tokens []common.Address) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(tokens))
	for i, t := range tokens {
		out[i], _ = c.Price(ctx, t)
	}
	return out, nil
}

// SetPrice implements PriceManager.
func (c *MemoryCache) SetPrice(ctx context.Context, token common.Address, price *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[token] = new(uint256.Int).Set(price)
	return nil
}

// SetPrices implements PriceManager.
func (c *MemoryCache) SetPrices(ctx context.Context, tokens []common.Address, prices []*uint256.Int) error {
	if len(tokens) != len(prices) {
		return ErrLengthMismatch
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range tokens {
		c.prices[t] = new(uint256.Int).Set(prices[i])
	}
	return nil
}

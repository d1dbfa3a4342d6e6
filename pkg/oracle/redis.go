package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/redis/go-redis/v9"
)

// DefaultPricesKey is the Redis hash holding token prices.
const DefaultPricesKey = "policy:token_prices"

// RedisClient is the subset of the go-redis client used by RedisCache.
type RedisClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisCache keeps prices as decimal strings in a single Redis hash keyed by
// checksummed token address.
type RedisCache struct {
	client RedisClient
	key    string
}

// Make sure we conform to the interface
var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a cache over an existing client.
func NewRedisCache(client RedisClient, key string) *RedisCache {
	if key == "" {
		key = DefaultPricesKey
	}
	return &RedisCache{client: client, key: key}
}

// NewRedisClient opens a go-redis client.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Price implements PriceOracle.
func (c *RedisCache) Price(ctx context.Context, token common.Address) (*uint256.Int, error) {
	s, err := c.client.HGet(ctx, c.key, token.Hex()).Result()
	if errors.Is(err, redis.Nil) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read price from redis: %w", err)
	}
	return parsePrice(s)
}

// PriceBatch implements PriceOracle.
func (c *RedisCache) PriceBatch(ctx context.Context, tokens []common.Address) ([]*uint256.Int, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	fields := make([]string, len(tokens))
	for i, t := range tokens {
		fields[i] = t.Hex()
	}
	vals, err := c.client.HMGet(ctx, c.key, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read prices from redis: %w", err)
	}
	out := make([]*uint256.Int, len(tokens))
	for i := range tokens {
		out[i] = new(uint256.Int)
		if i >= len(vals) || vals[i] == nil {
			continue
		}
		s, ok := vals[i].(string)
		if !ok {
			return nil, fmt.Errorf("unexpected price type %T for %s", vals[i], fields[i])
		}
		p, err := parsePrice(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// SetPrice implements PriceManager.
func (c *RedisCache) SetPrice(ctx context.Context, token common.Address, price *uint256.Int) error {
	if err := c.client.HSet(ctx, c.key, token.Hex(), price.Dec()).Err(); err != nil {
		return fmt.Errorf("failed to write price to redis: %w", err)
	}
	return nil
}

// SetPrices implements PriceManager.
func (c *RedisCache) SetPrices(ctx context.Context, tokens []common.Address, prices []*uint256.Int) error {
	if len(tokens) != len(prices) {
		return ErrLengthMismatch
	}
	if len(tokens) == 0 {
		return nil
	}
	values := make([]interface{}, 0, 2*len(tokens))
	for i, t := range tokens {
		values = append(values, t.Hex(), prices[i].Dec())
	}
	if err := c.client.HSet(ctx, c.key, values...).Err(); err != nil {
		return fmt.Errorf("failed to write prices to redis: %w", err)
	}
	return nil
}

func parsePrice(s string) (*uint256.Int, error) {
	p, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cached price %q: %w", s, err)
	}
	return p, nil
}

package shop

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StockReserver handles atomic Redis operations for stock reservation.
// Redis holds a live counter per product seeded from the database, so
// concurrent orders for the last units resolve in Redis instead of racing
// on the products table.
type StockReserver struct {
	redis *redis.Client
}

func NewStockReserver(redisClient *redis.Client) *StockReserver {
	return &StockReserver{redis: redisClient}
}

func stockKey(productID uuid.UUID) string {
	return "fittrack:shop:stock:" + productID.String()
}

// Lua script for atomic multi-product stock reservation.
// All quantities are checked before any counter is decremented, so a
// partially available order reserves nothing.
const luaReserveStock = `
-- KEYS[1..N] = stock counter keys
-- ARGV[1..N] = quantities to reserve

for i = 1, #KEYS do
    if redis.call("EXISTS", KEYS[i]) == 0 then
        return {0, KEYS[i], "missing"}
    end
    local available = tonumber(redis.call("GET", KEYS[i]))
    local wanted = tonumber(ARGV[i])
    if available < wanted then
        return {0, KEYS[i], "insufficient"}
    end
end

for i = 1, #KEYS do
    redis.call("DECRBY", KEYS[i], tonumber(ARGV[i]))
end

return {1, "ok", "ok"}
`

// Lua script for atomic stock restore on cancellation.
const luaRestoreStock = `
-- KEYS[1..N] = stock counter keys
-- ARGV[1..N] = quantities to restore

for i = 1, #KEYS do
    if redis.call("EXISTS", KEYS[i]) == 1 then
        redis.call("INCRBY", KEYS[i], tonumber(ARGV[i]))
    end
end

return 1
`

var (
	ErrInsufficientStock = fmt.Errorf("insufficient stock")
	ErrStockNotSeeded    = fmt.Errorf("stock counter not seeded")
)

// SeedStock initializes the Redis counter for a product if it is absent.
// SETNX keeps a concurrent seed from clobbering reservations in flight.
func (s *StockReserver) SeedStock(ctx context.Context, productID uuid.UUID, stock int) error {
	if s.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return s.redis.SetNX(ctx, stockKey(productID), stock, 0).Err()
}

// Reserve atomically decrements stock counters for all items, or none.
func (s *StockReserver) Reserve(ctx context.Context, items []OrderItemRequest) error {
	if s.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items))
	for _, item := range items {
		keys = append(keys, stockKey(item.ProductID))
		args = append(args, strconv.Itoa(item.Quantity))
	}

	result, err := s.redis.EvalSha(ctx, luaReserveStock, keys, args...).Result()
	if err != nil {
		result, err = s.redis.Eval(ctx, luaReserveStock, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic stock reserve: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 3 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		reason, _ := resultArray[2].(string)
		if reason == "missing" {
			return ErrStockNotSeeded
		}
		return ErrInsufficientStock
	}

	return nil
}

// Restore atomically returns reserved quantities to the stock counters.
func (s *StockReserver) Restore(ctx context.Context, items []OrderItem) error {
	if s.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items))
	for _, item := range items {
		keys = append(keys, stockKey(item.ProductID))
		args = append(args, strconv.Itoa(item.Quantity))
	}

	if _, err := s.redis.EvalSha(ctx, luaRestoreStock, keys, args...).Result(); err != nil {
		if _, err := s.redis.Eval(ctx, luaRestoreStock, keys, args...).Result(); err != nil {
			return fmt.Errorf("failed to execute atomic stock restore: %w", err)
		}
	}

	return nil
}

// PreloadScripts loads the Lua scripts into Redis so later calls can use EVALSHA.
func (s *StockReserver) PreloadScripts(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := s.redis.ScriptLoad(ctx, luaReserveStock).Result(); err != nil {
		return fmt.Errorf("failed to load stock reserve script: %w", err)
	}
	if _, err := s.redis.ScriptLoad(ctx, luaRestoreStock).Result(); err != nil {
		return fmt.Errorf("failed to load stock restore script: %w", err)
	}

	return nil
}

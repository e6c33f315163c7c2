package rdb

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetCachedData gets the value from cache if present,
// otherwise calls the callable and caches its result.
// Redis failures are logged and never fail the call.
// The callable's errors are returned and nothing is cached.
func GetCachedData[T any](
	ctx context.Context,
	rdb *Service,
	cacheKey string,
	cacheTimeout time.Duration,
	callable func() (T, error), // Function to call if cache miss
) (T, error) {

	var zero, data T

	// The callable alone decides on a cancelled context
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	// Try to get value from Redis cache.
	// The underlying data type needs to implement
	// the encoding.BinaryUnmarshaler interface if needed.
	err := rdb.Client.Get(ctx, cacheKey).Scan(&data)
	if err == nil {
		return data, nil
	}

	if !errors.Is(err, redis.Nil) {
		log.Printf("Error getting data from Redis for key '%s': %v", cacheKey, err)
	}

	// If not in cache or error, execute the function
	data, err = callable()
	if err != nil {
		return zero, err
	}

	// Cache the data for later use.
	// The underlying data type needs to implement
	// the encoding.BinaryMarshaler interface if needed.
	if err = rdb.Client.Set(ctx, cacheKey, data, cacheTimeout).Err(); err != nil {
		// Don't return an error if unable to set redis cache
		log.Printf("Error setting cache in Redis for key '%s': %v", cacheKey, err)
	}

	return data, nil
}

// Delete the cached keys, logging failures
func (rs *Service) Forget(ctx context.Context, keys ...string) {
	if err := rs.Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Error deleting keys %v from Redis: %v", keys, err)
	}
}

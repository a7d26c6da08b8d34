package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	// generationTTL outlives every entry so a fill never sees a counter reset.
	generationTTL = 2 * ItemCacheTTL

	itemCacheKeyPrefix = "item"
)

// CachedItem is the read model of an inventory item stored as a Redis hash.
type CachedItem struct {
	ID          int64
	Code        string
	Description string
	Quantity    int64
	Location    string
}

// IsMiss reports whether err from Get means the entry is absent or expired.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// ItemCache reads and writes item entries. Key format: "item:{id}", with a
// generation counter at "item:{id}:gen" bumped on every Delete.
//
// A fill reads the generation before loading the item and writes only if the
// counter is unchanged, so a value loaded before a concurrent update or delete
// is never stored after it.
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get returns redis.Nil (see IsMiss) when the key does not exist.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	qty, err := strconv.ParseInt(vals["quantity"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}

	return &CachedItem{
		ID:          id,
		Code:        vals["code"],
		Description: vals["description"],
		Quantity:    qty,
		Location:    vals["location"],
	}, nil
}

// Generation returns the current invalidation counter of itemID. Read it
// before loading the item that will be passed to SetIfCurrent.
func (c *ItemCache) Generation(ctx context.Context, itemID int64) (int64, error) {
	gen, err := readGeneration(ctx, c.client.Client(), generationKey(itemID))
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// SetIfCurrent writes item only while its generation still equals gen.
// It reports false, without error, when a Delete happened in between.
func (c *ItemCache) SetIfCurrent(ctx context.Context, item *CachedItem, gen int64) (bool, error) {
	gk := generationKey(item.ID)
	stored := false
	err := c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGeneration(ctx, tx, gk)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			writeItem(ctx, pipe, item)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, gk)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return stored, nil
}

// Delete removes a cached item and bumps its generation so in-flight fills
// are discarded. Deleting an absent key is not an error.
func (c *ItemCache) Delete(ctx context.Context, itemID int64) error {
	gk := generationKey(itemID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key(itemID))
	pipe.Incr(ctx, gk)
	pipe.Expire(ctx, gk, generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// writeItem queues all fields and the TTL on pipe.
func writeItem(ctx context.Context, pipe redis.Pipeliner, item *CachedItem) {
	k := key(item.ID)
	pipe.HSet(ctx, k,
		"id", strconv.FormatInt(item.ID, 10),
		"code", item.Code,
		"description", item.Description,
		"quantity", strconv.FormatInt(item.Quantity, 10),
		"location", item.Location,
	)
	pipe.Expire(ctx, k, ItemCacheTTL)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, r stringGetter, gk string) (int64, error) {
	gen, err := r.Get(ctx, gk).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func key(itemID int64) string {
	return itemCacheKeyPrefix + ":" + strconv.FormatInt(itemID, 10)
}

func generationKey(itemID int64) string {
	return key(itemID) + ":gen"
}

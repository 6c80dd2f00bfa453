package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"etalase/internal/models"

	"github.com/redis/go-redis/v9"

	logx "etalase/pkg/logger"
)

const (
	// Cache key patterns
	ProductListKey       = "products:all"
	ProductDetailPattern = "product:%s"
)

// ProductCache is a read-through Redis cache for product list and
// detail lookups. A nil *ProductCache (or one built from a nil client)
// is valid and behaves as a permanent miss, so callers never need to
// branch on whether caching is configured.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a ProductCache over the given client. The
// client may be nil when caching is disabled.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProductCache) disabled() bool {
	return c == nil || c.client == nil
}

// GetList returns the cached product list, reporting whether the cache
// held a value.
func (c *ProductCache) GetList(ctx context.Context) ([]models.Product, bool) {
	if c.disabled() {
		return nil, false
	}
	val, err := c.client.Get(ctx, ProductListKey).Result()
	if err != nil {
		if err != redis.Nil {
			logx.Warn().Err(err).Msg("product list cache read failed")
		}
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		logx.Warn().Err(err).Msg("product list cache entry is corrupt")
		return nil, false
	}
	return products, true
}

// SetList stores the product list.
func (c *ProductCache) SetList(ctx context.Context, products []models.Product) {
	if c.disabled() {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		logx.Warn().Err(err).Msg("failed to marshal product list for cache")
		return
	}
	if err := c.client.Set(ctx, ProductListKey, data, c.ttl).Err(); err != nil {
		logx.Warn().Err(err).Msg("product list cache write failed")
	}
}

// GetProduct returns a cached product by id, reporting whether the
// cache held a value.
func (c *ProductCache) GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	if c.disabled() {
		return nil, false
	}
	val, err := c.client.Get(ctx, fmt.Sprintf(ProductDetailPattern, id)).Result()
	if err != nil {
		if err != redis.Nil {
			logx.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		}
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		logx.Warn().Err(err).Str("product_id", id).Msg("product cache entry is corrupt")
		return nil, false
	}
	return &product, true
}

// SetProduct stores a single product.
func (c *ProductCache) SetProduct(ctx context.Context, product *models.Product) {
	if c.disabled() || product == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		logx.Warn().Err(err).Str("product_id", product.ID).Msg("failed to marshal product for cache")
		return
	}
	key := fmt.Sprintf(ProductDetailPattern, product.ID)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logx.Warn().Err(err).Str("product_id", product.ID).Msg("product cache write failed")
	}
}

// Invalidate drops the list entry and the detail entry for id after a
// successful write, so the next read goes back to the store.
func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if c.disabled() {
		return
	}
	keys := []string{ProductListKey}
	if id != "" {
		keys = append(keys, fmt.Sprintf(ProductDetailPattern, id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logx.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	productCachePrefix     = "product:detail:"
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"

	defaultCacheTTL = 5 * time.Minute
)

// ProductCache handles Redis caching for product reads. List entries are
// keyed by a version counter; bumping the counter invalidates every cached
// list at once.
type ProductCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{redis: rdb, ttl: defaultCacheTTL}
}

// GetProduct retrieves a cached product detail.
func (pc *ProductCache) GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	if pc == nil || pc.redis == nil {
		return nil, false
	}
	cached, err := pc.redis.Get(ctx, productCachePrefix+productID).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a product detail without blocking the request.
func (pc *ProductCache) SetProductAsync(productID string, product *models.Product) {
	if pc == nil || pc.redis == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err))
			return
		}
		if err := pc.redis.Set(bgCtx, productCachePrefix+productID, data, pc.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err))
		}
	}()
}

// GetProductList retrieves a cached product listing for the given query key.
func (pc *ProductCache) GetProductList(ctx context.Context, queryKey string) (map[string]interface{}, bool) {
	if pc == nil || pc.redis == nil {
		return nil, false
	}
	version, err := pc.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := pc.redis.Get(ctx, pc.listKey(version, queryKey)).Result()
	if err != nil {
		return nil, false
	}
	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return response, true
}

// SetProductListAsync caches a product listing without blocking the request.
func (pc *ProductCache) SetProductListAsync(queryKey string, response map[string]interface{}) {
	if pc == nil || pc.redis == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := pc.redis.Get(bgCtx, cacheVersionKey).Int64()
		if err != nil && err != redis.Nil {
			return
		}
		if version == 0 {
			version = 1
			pc.redis.Set(bgCtx, cacheVersionKey, version, 0)
		}

		data, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := pc.redis.Set(bgCtx, pc.listKey(version, queryKey), data, pc.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// InvalidateAsync drops a product detail entry and bumps the list version
// after any product write.
func (pc *ProductCache) InvalidateAsync(productID string) {
	if pc == nil || pc.redis == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if productID != "" {
			if err := pc.redis.Del(bgCtx, productCachePrefix+productID).Err(); err != nil {
				zap.L().Warn("Failed to drop cached product", zap.Error(err))
			}
		}
		if err := pc.redis.Incr(bgCtx, cacheVersionKey).Err(); err != nil {
			zap.L().Warn("Failed to bump product cache version", zap.Error(err))
		}
	}()
}

func (pc *ProductCache) listKey(version int64, queryKey string) string {
	return fmt.Sprintf("%s%d:%s", productListCachePrefix, version, queryKey)
}

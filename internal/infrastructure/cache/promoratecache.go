package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/shared/logger"
)

const (
	promoRateKeyPrefix = "promo:rate:"
	promoRateTTL       = 5 * time.Minute
)

// PromoRateCache decorates a pricing.PromoTable with a Redis read-through
// cache. Checkout re-quotes on every selection change, so promo lookups
// are by far the hottest read. Cache failures degrade to the database,
// never to a pricing error.
type PromoRateCache struct {
	client *redis.Client
	next   pricing.PromoTable
	logger logger.Interface
}

func NewPromoRateCache(client *redis.Client, next pricing.PromoTable, logger logger.Interface) *PromoRateCache {
	return &PromoRateCache{client: client, next: next, logger: logger}
}

var _ pricing.PromoTable = (*PromoRateCache)(nil)

func (c *PromoRateCache) key(code string) string {
	return promoRateKeyPrefix + code
}

func (c *PromoRateCache) ActiveRate(ctx context.Context, code string, at time.Time) (float64, error) {
	if c.client == nil {
		return c.next.ActiveRate(ctx, code, at)
	}

	key := c.key(code)
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		rate, parseErr := strconv.ParseFloat(cached, 64)
		if parseErr == nil {
			return rate, nil
		}
		c.logger.Warnw("invalid cached promo rate, falling through", "code", code, "value", cached)
	} else if err != redis.Nil {
		c.logger.Warnw("promo cache read failed, falling through", "code", code, "error", err)
	}

	rate, err := c.next.ActiveRate(ctx, code, at)
	if err != nil {
		return 0, err
	}

	// The rate may flip at a validity-window edge, hence the short TTL.
	if setErr := c.client.Set(ctx, key, fmt.Sprintf("%g", rate), promoRateTTL).Err(); setErr != nil {
		c.logger.Warnw("promo cache write failed", "code", code, "error", setErr)
	}

	return rate, nil
}

package cache

import (
	"fmt"
	"time"

	"tradeledger/internal/domain"

	"github.com/dgraph-io/ristretto"
)

type RistrettoMarketInfoCache struct {
	cache *ristretto.Cache
}

func NewMarketInfoCache(maxItems int64) (*RistrettoMarketInfoCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create market info cache failed: %w", err)
	}
	return &RistrettoMarketInfoCache{cache: c}, nil
}

func (c *RistrettoMarketInfoCache) Get(pairing domain.CoinPairing) (domain.MarketInfo, bool) {
	if v, ok := c.cache.Get(pairing.Code()); ok {
		info, ok := v.(domain.MarketInfo)
		return info, ok
	}
	return domain.MarketInfo{}, false
}

// Set stores info for ttl. A non-positive ttl keeps the entry until it is evicted.
func (c *RistrettoMarketInfoCache) Set(pairing domain.CoinPairing, info domain.MarketInfo, ttl time.Duration) {
	if ttl > 0 {
		c.cache.SetWithTTL(pairing.Code(), info, 1, ttl)
		return
	}
	c.cache.Set(pairing.Code(), info, 1)
}

// Wait blocks until buffered writes are visible to Get.
func (c *RistrettoMarketInfoCache) Wait() { c.cache.Wait() }

func (c *RistrettoMarketInfoCache) Close() { c.cache.Close() }

package providers

import "sidebard/internal/structures"

// MetricsCacheProvider counts statistics cache hits and misses. Writes and
// deletes pass straight through.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *MetricsCacheProvider) Set(key string, value []byte) { c.inner.Set(key, value) }

func (c *MetricsCacheProvider) Del(key string) { c.inner.Del(key) }

// NewInstrumentedCacheProvider wraps the statistics cache with hit/miss
// counters. A disabled cache is returned bare: it would only report misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{inner: inner, metrics: metrics}
}

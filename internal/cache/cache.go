package cache

import (
	"encoding/json"
	"math"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// PageCache keeps rendered pages for a short time. A zero TTL disables it.
type PageCache struct {
	cache         *freecache.Cache
	expireSeconds int
}

func NewPageCache(sizeMB int, ttl time.Duration) *PageCache {
	if sizeMB <= 0 {
		sizeMB = 8
	}
	c := &PageCache{
		expireSeconds: int(math.Ceil(ttl.Seconds())),
	}
	if c.expireSeconds > 0 {
		c.cache = freecache.NewCache(sizeMB * megabyte)
	}
	return c
}

func (c *PageCache) Enabled() bool {
	return c != nil && c.cache != nil
}

// GetJSON unmarshals the cached value into v and reports whether it was found.
func (c *PageCache) GetJSON(key string, v any) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Errorf("unmarshal cached page %s: %s", key, err)
		c.cache.Del([]byte(key))
		return false
	}
	return true
}

func (c *PageCache) SetJSON(key string, v any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal page %s for cache: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), data, c.expireSeconds); err != nil {
		log.Warnf("cache page %s: %s", key, err)
	}
}

func (c *PageCache) Clear() {
	if c.Enabled() {
		c.cache.Clear()
	}
}

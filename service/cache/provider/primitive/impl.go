package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive is an in-process layer of sizeMb megabytes
func NewPrimitive(name string, sizeMb int) provider.Provider {
	return &impl{name: name, cache: freecache.NewCache(sizeMb * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, ttl, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).WithField("layer", im.name).Error("freecache.GetWithExpiration failed")
		return nil, 0, err
	}
	// freecache reports the absolute expiry in unix seconds, zero when it never expires
	if ttl == 0 {
		return val, 0, nil
	}
	remaining := time.Until(time.Unix(int64(ttl), 0))
	if remaining <= 0 {
		return nil, 0, provider.ErrNotFound
	}
	return val, remaining, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithField("err", err).WithField("key", key).WithField("layer", im.name).Error("freecache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

package redisclient

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/mazad/goapi/base/backoff"
	"github.com/mazad/goapi/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	dialRetries = 3
)

// Config of one redis endpoint. URI is either host:port or a redis:// url.
type Config struct {
	URI            string
	Password       string
	PoolMultiplier float64
	// Retry redials with exponential backoff when the first dial fails
	Retry bool
}

// MustConnectRedis panics if the connection fails
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(context.Background(), cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

func dialFunc(cfg Config) func() (redis.Conn, error) {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	if strings.Contains(cfg.URI, "://") {
		return func() (redis.Conn, error) {
			return redis.DialURL(cfg.URI, opts...)
		}
	}
	return func() (redis.Conn, error) {
		return redis.Dial("tcp", cfg.URI, opts...)
	}
}

// ConnectRedis builds a pool and makes sure one connection can be borrowed from it
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Pool, error) {
	maxIdle := 200
	maxActive := 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	p := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial:        dialFunc(cfg),
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	retries := 0
	if cfg.Retry {
		retries = dialRetries
	}
	attempt := 0
	err := backoff.Retry(ctx, backoff.NewExponential(time.Second, 4*time.Second), retries,
		func(error) bool { return true },
		func() error {
			attempt++
			c, err := p.Dial()
			if err != nil {
				log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err, "attempt": attempt}).Warn("fail to dial Redis")
				return err
			}
			defer c.Close()
			if _, err := c.Do("PING"); err != nil {
				log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err, "attempt": attempt}).Warn("fail to PING Redis")
				return err
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "maxActive": maxActive}).Info("redis connected")
	return p, nil
}

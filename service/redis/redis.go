package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/mazad/goapi/base/ctx"
)

const (
	// Forever is used as ttl to keep a key without expiration
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL when the key exists without an expiration
	ErrNoTTL = errors.New("redis: key has no ttl")
	// ErrGapTime is returned when no pool can serve the command
	ErrGapTime = errors.New("redis: no pool available")
	// ErrExpireNotExistOrTimeout is returned when EXPIRE did not apply
	ErrExpireNotExistOrTimeout = errors.New("redis: key does not exist or the timeout could not be set")
	// ErrLockNotHeld is returned by Release when the lock expired or belongs to another owner
	ErrLockNotHeld = errors.New("redis: lock not held")
)

// Service is the redis facade used by caches, healthcheck and the sweeper lock
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX returns false without error when the key already exists
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(context ctx.Ctx, ks ...string) (int, error)
	// DelIfEqual deletes key only if it still holds val
	DelIfEqual(context ctx.Ctx, key string, val []byte) (bool, error)
	Expire(context ctx.Ctx, key string, ttl time.Duration) error
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	TTL(context ctx.Ctx, key string) (int, error)
	Ping(context ctx.Ctx) error
	ScriptDo(context ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error)
	GetConn() (redis.Conn, error)
	Name() string
}

package redis

import (
	"github.com/gomodule/redigo/redis"

	"github.com/mazad/goapi/domain/keys"
)

// ScriptHdl wraps a lua script together with its key count
type ScriptHdl struct {
	name   string
	script *redis.Script
}

func NewScriptHdl(name string, keyCount int, src string) *ScriptHdl {
	return &ScriptHdl{
		name:   name,
		script: redis.NewScript(keyCount, src),
	}
}

func (h *ScriptHdl) Name() string {
	return h.name
}

// Do runs EVALSHA and falls back to EVAL when the script is not loaded yet
func (h *ScriptHdl) Do(conn redis.Conn, keysAndArgs ...interface{}) (interface{}, error) {
	reply, err := h.script.Do(conn, keysAndArgs...)
	if err == redis.ErrNil {
		return nil, ErrNotFound
	}
	return reply, err
}

func (h *ScriptHdl) prefix(keysAndArgs ...interface{}) string {
	if len(keysAndArgs) == 0 {
		return h.name
	}
	if k, ok := keysAndArgs[0].(string); ok {
		return keys.GetPrefix(k)
	}
	return h.name
}

var delIfEqualScript = NewScriptHdl("delIfEqual", 1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

package healthcheck

import (
	"github.com/mazad/goapi/base/ctx"
)

type State string

const (
	StateUp   State = "up"
	StateDown State = "down"
)

// Component names used in Report
const (
	ComponentMongo = "mongo"
	ComponentRedis = "redis"
)

type Component struct {
	State     State   `json:"state"`
	Error     string  `json:"error,omitempty"`
	LatencyMs float64 `json:"latencyMs"`
}

// Report is the /health payload, Healthy only when every component is up
type Report struct {
	Healthy    bool                 `json:"healthy"`
	Components map[string]Component `json:"components"`
}

type HealthCheckUsecase interface {
	// Check probes every component, the error wraps the first failure
	Check(context ctx.Ctx) (*Report, error)
}

// HealthCheckRepo pings the stores the marketplace cannot serve without
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
	PingCache(context ctx.Ctx) error
}

package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/metrics"
	hcdomain "github.com/mazad/goapi/domain/healthcheck"
)

var (
	timeNow = time.Now
	met     = metrics.New("healthcheck")
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) (*hcdomain.Report, error) {
	probes := []struct {
		name string
		ping func(ctx.Ctx) error
	}{
		{hcdomain.ComponentMongo, im.repo.PingDB},
		{hcdomain.ComponentRedis, im.repo.PingCache},
	}

	report := &hcdomain.Report{
		Healthy:    true,
		Components: make(map[string]hcdomain.Component, len(probes)),
	}
	var firstErr error
	for _, p := range probes {
		start := timeNow()
		err := p.ping(context)
		comp := hcdomain.Component{
			State:     hcdomain.StateUp,
			LatencyMs: float64(timeNow().Sub(start)) / float64(time.Millisecond),
		}
		if err != nil {
			comp.State = hcdomain.StateDown
			comp.Error = err.Error()
			report.Healthy = false
			met.BumpSum("down", 1, "component", p.name)
			if firstErr == nil {
				firstErr = xerrors.Errorf("%s: %w", p.name, err)
			}
		}
		report.Components[p.name] = comp
	}
	return report, firstErr
}

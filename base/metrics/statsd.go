package metrics

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/mazad/goapi/base/env"
	"github.com/mazad/goapi/base/log"
)

const (
	ddPort = 8125
	// flush after this many buffered metrics
	ddMaxMessages = 10
)

var (
	sinkOnce sync.Once
	shared   sink
)

type sink interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// globalTags are attached by the statsd client to every metric
func globalTags() []string {
	tags := []string{
		// an empty host tag stops the agent from adding its host tags
		"host:",
		"env:" + env.EnvName(),
		"app:" + env.AppName(),
	}
	if pod := env.PodName(); pod != "" {
		tags = append(tags, "pod:"+pod)
	}
	return tags
}

func newSink() sink {
	host := viper.GetString("datadog_host")
	if host == "" {
		log.Log().Info("datadog_host not set, metrics go to the debug log")
		return &LogClient{}
	}

	addr := fmt.Sprintf("%s:%d", host, ddPort)
	cli, err := statsd.New(addr,
		statsd.WithTags(globalTags()),
		statsd.WithMaxMessagesPerPayload(ddMaxMessages),
	)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	log.Log().WithField("addr", addr).Info("connected to datadog agent")
	return cli
}

// defaultSink builds the process-wide client on first use so config is loaded by then
func defaultSink() sink {
	sinkOnce.Do(func() { shared = newSink() })
	return shared
}

/*Package metrics records counters and timings to the datadog agent.

Key naming:
- internal process time: *.time
- error: *.err
- domain outcome: plain noun, e.g. bid.placed, sweeper.expired
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mazad/goapi/base/log"
)

// Ender stops a timer started by BumpTime
type Ender interface {
	End()
}

// Service is what stores and services record metrics through
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New returns a Service whose keys are prefixed with pkgName
func New(pkgName string) Service {
	return &Metrics{pkgName: pkgName, sink: defaultSink}
}

// Metrics prefixes keys and converts key/value tag pairs before handing them to a sink
type Metrics struct {
	pkgName string
	sink    func() sink
}

func (mt *Metrics) key(k string) string {
	return mt.pkgName + "." + k
}

// rate reads metrics.sampleRate, anything outside (0, 1] means always send
func rate() float64 {
	if r := viper.GetFloat64("metrics.sampleRate"); r > 0 && r <= 1 {
		return r
	}
	return 1
}

// guard keeps a malformed tag list from taking the caller down
func (mt *Metrics) guard(key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{
			"key":  mt.key(key),
			"tags": strings.Join(tags, ","),
			"err":  err,
		}).Error("metrics bump panicked")
	}
}

func (mt *Metrics) report(fn string, key string, val interface{}, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
	}
}

// BumpAvg records a gauge, datadog averages gauges within a flush interval
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.guard(key, tags)
	mt.report("BumpAvg", mt.key(key), val, mt.sink().Gauge(mt.key(key), val, pairs(tags), rate()))
}

// BumpSum adds val to a counter
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.guard(key, tags)
	mt.report("BumpSum", mt.key(key), val, mt.sink().Count(mt.key(key), int64(val), pairs(tags), rate()))
}

// BumpHistogram records one sample
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.guard(key, tags)
	mt.report("BumpHistogram", mt.key(key), val, mt.sink().Histogram(mt.key(key), val, pairs(tags), rate()))
}

// BumpTime starts a timer, typically used as
//
//     defer met.BumpTime("place.time").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timer{mt: mt, key: key, tags: tags, start: time.Now()}
}

type timer struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timer) End() {
	defer t.mt.guard(t.key, t.tags)
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	k := t.mt.key(t.key)
	t.mt.report("BumpTime", k, ms, t.mt.sink().TimeInMilliseconds(k, ms, pairs(t.tags), rate()))
}

// pairs turns "k1", "v1", "k2", "v2" into "k1:v1", "k2:v2"
func pairs(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	out := make([]string, 0, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		out = append(out, tags[i]+":"+tags[i+1])
	}
	return out
}

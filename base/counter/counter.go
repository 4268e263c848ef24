package counter

import "sync/atomic"

// Counter is a goroutine safe tally, the sweeper keeps one per outcome
type Counter struct {
	n int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Add(val int) {
	atomic.AddInt64(&c.n, int64(val))
}

func (c *Counter) Count() int {
	return int(atomic.LoadInt64(&c.n))
}

package counter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterConcurrentAdd(t *testing.T) {
	c := NewCounter()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(2)
		}()
	}
	wg.Wait()

	require.Equal(t, 100, c.Count())
}

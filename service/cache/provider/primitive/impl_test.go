package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("local", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetGet() {
	k := "category:slug:sedan"
	v := []byte(`{"id":"c-1"}`)

	_, _, err := ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	res, ttl, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, res)
	ts.True(ttl > 58*time.Second && ttl <= time.Minute, "ttl %s", ttl)
}

func (ts *testsuite) TestNoExpiry() {
	k := "category:tree"
	ts.NoError(ts.im.Set(mockCtx, k, []byte("[]"), 0))
	_, ttl, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(time.Duration(0), ttl)
}

func (ts *testsuite) TestExpire() {
	k := "category:id:c-1"
	ts.NoError(ts.im.Set(mockCtx, k, []byte("x"), time.Second))
	time.Sleep(2 * time.Second)
	_, _, err := ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	k := "category:id:c-2"
	ts.NoError(ts.im.Set(mockCtx, k, []byte("x"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, k))
	_, _, err := ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
}

package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/service/cache/provider"
	"github.com/mazad/goapi/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	local  provider.Provider
	shared provider.Provider
	im     *impl
}

func (ts *testsuite) SetupTest() {
	ts.local = primitive.NewPrimitive("local", 1)
	ts.shared = primitive.NewPrimitive("shared", 1)
	ts.im = NewCompound(ts.local, ts.shared).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetWritesEveryLayer() {
	k := "category:slug:suv"
	v := []byte("suv")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	for _, lyr := range []provider.Provider{ts.local, ts.shared} {
		res, _, err := lyr.Get(mockCtx, k)
		ts.NoError(err)
		ts.Equal(v, res)
	}
}

func (ts *testsuite) TestGetBackfills() {
	k := "category:slug:pickup"
	v := []byte("pickup")

	ts.NoError(ts.shared.Set(mockCtx, k, v, time.Minute))
	_, _, err := ts.local.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)

	res, _, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, res)

	res, ttl, err := ts.local.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, res)
	ts.True(ttl > 0)
}

func (ts *testsuite) TestMiss() {
	_, _, err := ts.im.Get(mockCtx, "category:slug:none")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	k := "category:tree"
	ts.NoError(ts.im.Set(mockCtx, k, []byte("[]"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, k))
	_, _, err := ts.local.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
	_, _, err = ts.shared.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
}

package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ctxSuite struct {
	suite.Suite
}

func TestCtxSuite(t *testing.T) {
	suite.Run(t, new(ctxSuite))
}

func (s *ctxSuite) TestWithValue() {
	c := WithValue(Background(), "listingId", "l-1")
	s.Equal("l-1", c.Value("listingId"))
	s.Nil(Background().Value("listingId"))
}

func (s *ctxSuite) TestWithValues() {
	c := WithValues(Background(), map[string]interface{}{
		"listingId": "l-1",
		"bidderId":  "u-2",
	})
	s.Equal("l-1", c.Value("listingId"))
	s.Equal("u-2", c.Value("bidderId"))
}

func (s *ctxSuite) TestWithCancelKeepsValues() {
	c, cancel := WithCancel(WithValue(Background(), "requestID", "r-1"))
	cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		s.Fail("cancel did not close Done")
	}
	s.Equal(context.Canceled, c.Err())
	s.Equal("r-1", c.Value("requestID"))
}

func (s *ctxSuite) TestWithTimeout() {
	c, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		s.Fail("deadline not reached")
	}
	s.Equal(context.DeadlineExceeded, c.Err())
}

func (s *ctxSuite) TestWithLogFieldsLeavesContextAlone() {
	bg := WithValue(Background(), "requestID", "r-1")
	c := WithLogFields(bg, map[string]interface{}{"listingId": "l-1"})
	s.Equal("r-1", c.Value("requestID"))
	s.Nil(c.Value("listingId"))
}

package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/bid"
	"github.com/mazad/goapi/service/query"
	queryMocks "github.com/mazad/goapi/service/query/mocks"
)

var (
	mockCtx = ctx.Background()
	now     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

type bidRepoSuite struct {
	suite.Suite
	q  *queryMocks.Mongo
	im bid.Repo
}

func TestBidRepoSuite(t *testing.T) {
	suite.Run(t, new(bidRepoSuite))
}

func (s *bidRepoSuite) SetupTest() {
	s.q = &queryMocks.Mongo{}
	s.im = NewBidRepo(s.q)
}

func (s *bidRepoSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func (s *bidRepoSuite) TestFindHighest() {
	qry := bson.M{"listingId": "l1", "status": liveStatuses}
	s.q.On("Find", mockCtx, domain.TableBids, 0, 1, []string{"-amount", "-placedAt"}, qry, mock.Anything).
		Run(func(args mock.Arguments) {
			res := args.Get(6).(*[]*bid.Bid)
			*res = []*bid.Bid{{Id: "b2", Amount: decimal.NewFromInt(1200), Status: bid.StatusWinning}}
		}).
		Return(nil).Once()

	res, err := s.im.FindHighest(mockCtx, "l1")
	s.Require().NoError(err)
	s.Equal("b2", res.Id)
}

func (s *bidRepoSuite) TestFindHighestNone() {
	s.q.On("Find", mockCtx, domain.TableBids, 0, 1, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	res, err := s.im.FindHighest(mockCtx, "l1")
	s.Require().NoError(err)
	s.Nil(res)
}

func (s *bidRepoSuite) TestFindByListingExcludesInvalid() {
	qry := bson.M{"listingId": "l1", "status": bson.M{"$ne": bid.StatusInvalid}}
	s.q.On("Find", mockCtx, domain.TableBids, 20, 20, []string{"-placedAt", "-_id"}, qry, mock.Anything).Return(nil).Once()
	s.q.On("Count", mockCtx, domain.TableBids, qry).Return(3, nil).Once()

	_, err := s.im.FindByListing(mockCtx, "l1", 20, 20)
	s.Require().NoError(err)
	cnt, err := s.im.CountByListing(mockCtx, "l1")
	s.Require().NoError(err)
	s.Equal(3, cnt)
}

func (s *bidRepoSuite) TestFindOneNotFound() {
	s.q.On("FindOne", mockCtx, domain.TableBids, bson.M{"_id": "nope"}, mock.Anything).Return(query.ErrNotFound).Once()

	_, err := s.im.FindOne(mockCtx, "nope")
	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal("Bid (nope) was not found.", err.Error())
}

func (s *bidRepoSuite) TestMarkOutbid() {
	selector := bson.M{"_id": "b1", "status": liveStatuses}
	update := bson.M{"$set": bson.M{
		"status":      bid.StatusOutbid,
		"updatedAt":   now,
		"updatedById": domain.UserId("u2"),
	}}
	s.q.On("Update", mockCtx, domain.TableBids, selector, update, false).Return(nil).Once()
	s.Require().NoError(s.im.MarkOutbid(mockCtx, "b1", "u2", now))

	s.q.On("Update", mockCtx, domain.TableBids, selector, update, false).Return(query.ErrNotFound).Once()
	s.ErrorIs(s.im.MarkOutbid(mockCtx, "b1", "u2", now), domain.ErrVersionConflict)
}

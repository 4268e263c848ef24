package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/validator"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/bid"
	mBid "github.com/mazad/goapi/domain/bid/mocks"
	mDomain "github.com/mazad/goapi/domain/mocks"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

var alice = domain.Actor{Id: "alice"}

type bidHandlerSuite struct {
	suite.Suite
	bid *mBid.Usecase
	e   *echo.Echo
}

func TestBidHandlerSuite(t *testing.T) {
	suite.Run(t, new(bidHandlerSuite))
}

func (s *bidHandlerSuite) SetupTest() {
	s.bid = &mBid.Usecase{}
	auth := &mDomain.AuthUsecase{}
	auth.On("ParseToken", mock.Anything, "alice-token").Return(alice, nil)

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.bid, authMiddleware.New(auth))
}

func (s *bidHandlerSuite) TearDownTest() {
	s.bid.AssertExpectations(s.T())
}

func (s *bidHandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer alice-token")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *bidHandlerSuite) TestPlaceBid() {
	amount := decimal.NewFromInt(1000)
	s.bid.On("PlaceBid", mock.Anything, alice, "l1", mock.MatchedBy(amount.Equal)).
		Return(&bid.Bid{Id: "b1", ListingId: "l1", BidderId: alice.Id, Amount: amount, Status: bid.StatusWinning}, nil).Once()

	rec := s.post("/listings/l1/bids", `{"amount":"1000"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"status":"winning"`)
}

func (s *bidHandlerSuite) TestPlaceBidRejected() {
	s.bid.On("PlaceBid", mock.Anything, alice, "l1", mock.Anything).
		Return(nil, domain.NewBusinessRule("Bid amount must be at least %s.", "1050.00")).Once()

	rec := s.post("/listings/l1/bids", `{"amount":1040}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Bid amount must be at least 1050.00.")
}

func (s *bidHandlerSuite) TestPlaceBidInvalidAmount() {
	rec := s.post("/listings/l1/bids", `{"amount":"0"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "amount failed on decgt0")
}

func (s *bidHandlerSuite) TestPlaceBidAmountBeyondStoredPrecision() {
	rec := s.post("/listings/l1/bids", `{"amount":"1000.00000000000000000000000000000000001"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "amount failed on decgt0")
}

func (s *bidHandlerSuite) TestPlaceBidTransient() {
	s.bid.On("PlaceBid", mock.Anything, alice, "l1", mock.Anything).Return(nil, domain.ErrTransient).Once()

	rec := s.post("/listings/l1/bids", `{"amount":"1000"}`)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *bidHandlerSuite) TestGetListingBidsAnonymous() {
	s.bid.On("GetListingBids", mock.Anything, domain.Actor{}, "l1", 2, 10).
		Return(&domain.Page{Items: []*bid.View{}, Page: 2, PageSize: 10}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/listings/l1/bids?page=2&pageSize=10", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *bidHandlerSuite) TestGetBidNotFound() {
	s.bid.On("GetBidById", mock.Anything, domain.Actor{}, "nope").Return(nil, domain.NewNotFound("Bid", "nope")).Once()

	req := httptest.NewRequest(http.MethodGet, "/bids/nope", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "Bid (nope) was not found.")
}

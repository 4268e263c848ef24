package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/validator"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	mListing "github.com/mazad/goapi/domain/listing/mocks"
	mDomain "github.com/mazad/goapi/domain/mocks"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

var seller = domain.Actor{Id: "seller"}

type listingHandlerSuite struct {
	suite.Suite
	listing *mListing.Usecase
	e       *echo.Echo
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(listingHandlerSuite))
}

func (s *listingHandlerSuite) SetupTest() {
	s.listing = &mListing.Usecase{}
	auth := &mDomain.AuthUsecase{}
	auth.On("ParseToken", mock.Anything, "seller-token").Return(seller, nil)

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.listing, authMiddleware.New(auth))
}

func (s *listingHandlerSuite) TearDownTest() {
	s.listing.AssertExpectations(s.T())
}

func (s *listingHandlerSuite) do(method, path, body string, signedIn bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signedIn {
		req.Header.Set(echo.HeaderAuthorization, "Bearer seller-token")
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *listingHandlerSuite) TestCreate() {
	s.listing.On("Create", mock.Anything, seller, mock.MatchedBy(func(p listing.CreateParams) bool {
		return p.Title == "Audi A4" && p.Type == listing.SaleTypeAuction && len(p.Media) == 1 && p.StartPrice.String() == "5000"
	})).Return(&listing.Listing{Id: "l1", Status: listing.StatusDraft}, nil).Once()

	rec := s.do(http.MethodPost, "/listings", `{
		"categoryId": "sedan",
		"title": "Audi A4",
		"description": "Service history",
		"type": "auction",
		"startPrice": "5000",
		"media": [{"url": "https://cdn/a4.jpg", "type": "image/jpeg"}]
	}`, true)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"status":"draft"`)
}

func (s *listingHandlerSuite) TestCreateValidation() {
	rec := s.do(http.MethodPost, "/listings", `{"categoryId":"sedan","title":"Audi A4","description":"x","type":"lease"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "type failed on oneof")

	rec = s.do(http.MethodPost, "/listings", `{"categoryId":"sedan","title":"Audi A4","description":"x","type":"auction","bidIncrement":"0"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bidIncrement failed on decgt0")

	rec = s.do(http.MethodPost, "/listings", `{"categoryId":"sedan","title":"Audi A4","description":"x","type":"auction","media":[{"url":"https://cdn/a.bin","type":"vehicle/unknown"}]}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/listings", `{}`, false)
	s.Equal(http.StatusBadRequest, rec.Code, "missing token")
}

func (s *listingHandlerSuite) TestAddMediaCarriesCoverAndSortOrder() {
	s.listing.On("AddMedia", mock.Anything, seller, "l1", mock.MatchedBy(func(m []listing.MediaParams) bool {
		return len(m) == 2 &&
			m[0].IsCover && m[0].SortOrder != nil && *m[0].SortOrder == 5 &&
			!m[1].IsCover && m[1].SortOrder == nil
	})).Return(&listing.Listing{Id: "l1"}, nil).Once()

	rec := s.do(http.MethodPost, "/listings/l1/media", `{"media":[
		{"url":"https://cdn/front.jpg","type":"image/jpeg","isCover":true,"sortOrder":5},
		{"url":"https://cdn/rear.jpg","type":"image/jpeg"}
	]}`, true)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/listings/l1/media", `{"media":[{"url":"https://cdn/a.jpg","type":"image/jpeg","sortOrder":-1}]}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "sortOrder failed on gte")
}

func (s *listingHandlerSuite) TestGetNotFound() {
	s.listing.On("FindOne", mock.Anything, "nope").Return(nil, domain.NewNotFound("Listing", "nope")).Once()

	rec := s.do(http.MethodGet, "/listings/nope", "", false)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "Listing (nope) was not found.")
}

func (s *listingHandlerSuite) TestSearch() {
	s.listing.On("Search", mock.Anything, listing.SearchParams{Search: "golf", Type: listing.SaleTypeBoth, Sort: "-price", Page: 2, PageSize: 10}).
		Return(&listing.SearchResult{Items: []*listing.Listing{}, Page: 2, PageSize: 10, Total: 11}, nil).Once()

	rec := s.do(http.MethodGet, "/listings?search=golf&type=both&sort=-price&page=2&pageSize=10", "", false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"total":11`)

	rec = s.do(http.MethodGet, "/listings?sort=views", "", false)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *listingHandlerSuite) TestCommands() {
	s.listing.On("Submit", mock.Anything, seller, "l1").Return(&listing.Listing{Id: "l1", Status: listing.StatusPendingReview}, nil).Once()
	rec := s.do(http.MethodPost, "/listings/l1/submit", "", true)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"pendingReview"`)

	s.listing.On("Publish", mock.Anything, seller, "l1").
		Return(nil, domain.NewBusinessRule("Listing must be approved before it can be published.")).Once()
	rec = s.do(http.MethodPost, "/listings/l1/publish", "", true)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.listing.On("SetStatus", mock.Anything, seller, "l1", listing.StatusCancelled, "sold elsewhere").
		Return(nil, domain.NewForbidden("You do not have permission to modify this listing.")).Once()
	rec = s.do(http.MethodPost, "/listings/l1/status", `{"status":"cancelled","reason":"sold elsewhere"}`, true)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *listingHandlerSuite) TestWatchlist() {
	s.listing.On("Watch", mock.Anything, seller, "l1").Return(nil).Once()
	rec := s.do(http.MethodPost, "/listings/l1/watch", "", true)
	s.Equal(http.StatusOK, rec.Code)

	s.listing.On("MyWatchlist", mock.Anything, seller, 0, 0).Return(&listing.SearchResult{Items: []*listing.Listing{}}, nil).Once()
	rec = s.do(http.MethodGet, "/me/watchlist", "", true)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *listingHandlerSuite) TestHistoryAnonymous() {
	s.listing.On("History", mock.Anything, domain.Actor{}, "l1").Return([]*listing.HistoryEvent{{Type: listing.HistoryCreated}}, nil).Once()

	rec := s.do(http.MethodGet, "/listings/l1/history", "", false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"type":"created"`)
}

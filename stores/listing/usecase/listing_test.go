package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/ptr"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/audit"
	mAudit "github.com/mazad/goapi/domain/audit/mocks"
	"github.com/mazad/goapi/domain/bid"
	mBid "github.com/mazad/goapi/domain/bid/mocks"
	"github.com/mazad/goapi/domain/category"
	mCategory "github.com/mazad/goapi/domain/category/mocks"
	"github.com/mazad/goapi/domain/listing"
	mListing "github.com/mazad/goapi/domain/listing/mocks"
	queryMocks "github.com/mazad/goapi/service/query/mocks"
)

var (
	mockCtx = ctx.Background()
	now     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seller   = domain.Actor{Id: "seller"}
	stranger = domain.Actor{Id: "stranger"}
	admin    = domain.Actor{Id: "root", IsAdmin: true}
)

type listingUsecaseSuite struct {
	suite.Suite
	q             *queryMocks.Mongo
	listingRepo   *mListing.Repo
	watchlistRepo *mListing.WatchlistRepo
	bidRepo       *mBid.Repo
	auditRepo     *mAudit.Repo
	category      *mCategory.Usecase
	im            listing.Usecase
}

func TestListingUsecaseSuite(t *testing.T) {
	suite.Run(t, new(listingUsecaseSuite))
}

func (s *listingUsecaseSuite) SetupTest() {
	timeNow = func() time.Time { return now }
	s.q = &queryMocks.Mongo{}
	s.listingRepo = &mListing.Repo{}
	s.watchlistRepo = &mListing.WatchlistRepo{}
	s.bidRepo = &mBid.Repo{}
	s.auditRepo = &mAudit.Repo{}
	s.category = &mCategory.Usecase{}
	s.im = New(&ListingUseCaseCfg{
		Q:             s.q,
		ListingRepo:   s.listingRepo,
		WatchlistRepo: s.watchlistRepo,
		BidRepo:       s.bidRepo,
		AuditRepo:     s.auditRepo,
		Category:      s.category,
		RetryBackoff:  time.Millisecond,
	})
	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).Return(func(c ctx.Ctx, run func(ctx.Ctx) error) error {
		return run(c)
	}).Maybe()
}

func (s *listingUsecaseSuite) TearDownTest() {
	timeNow = time.Now
	s.listingRepo.AssertExpectations(s.T())
	s.watchlistRepo.AssertExpectations(s.T())
	s.bidRepo.AssertExpectations(s.T())
	s.auditRepo.AssertExpectations(s.T())
	s.category.AssertExpectations(s.T())
}

func draftListing() listing.Listing {
	return listing.Listing{
		Id:          "l1",
		SellerId:    seller.Id,
		CategoryId:  "sedan",
		Title:       "Toyota Camry 2018",
		Slug:        "toyota-camry-2018",
		Description: "Clean title",
		Type:        listing.SaleTypeAuction,
		Status:      listing.StatusDraft,
		StartPrice:  ptr.Decimal("1000"),
		Version:     1,
		Auditable:   domain.NewAuditable(seller.Id, now.Add(-48*time.Hour)),
	}
}

func serve(l listing.Listing) func(ctx.Ctx, string) *listing.Listing {
	return func(ctx.Ctx, string) *listing.Listing {
		cp := l
		return &cp
	}
}

func (s *listingUsecaseSuite) expectAudit(action string) {
	s.auditRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action == action && e.Area == audit.AreaAuctions && e.EntityId == "l1"
	})).Return(nil).Once()
}

func (s *listingUsecaseSuite) TestCreate() {
	p := listing.CreateParams{
		CategoryId:  "sedan",
		Title:       "BMW X5 2019",
		Description: "One owner",
		Type:        listing.SaleTypeBoth,
		StartPrice:  ptr.Decimal("20000"),
		BuyNowPrice: ptr.Decimal("35000"),
		Media:       []listing.MediaParams{{Url: "https://cdn/x5.jpg", Type: "image/jpeg"}},
	}

	_, err := s.im.Create(mockCtx, domain.Actor{}, p)
	s.ErrorIs(err, domain.ErrForbidden)

	invalid := p
	invalid.BuyNowPrice = nil
	_, err = s.im.Create(mockCtx, seller, invalid)
	s.ErrorIs(err, domain.ErrBusinessRule)
	s.Equal("Buy Now price is required for Buy Now listings.", err.Error())

	s.category.On("FindOne", mockCtx, "sedan").Return(&category.Category{Id: "sedan"}, nil).Once()
	s.listingRepo.On("Create", mockCtx, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Slug == "bmw-x5-2019" && l.Status == listing.StatusDraft && l.SellerId == seller.Id && len(l.Media) == 1
	})).Return(nil).Once()
	s.auditRepo.On("Insert", mockCtx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action == ActionCreate && e.ActorId == seller.Id
	})).Return(nil).Once()

	res, err := s.im.Create(mockCtx, seller, p)
	s.Require().NoError(err)
	s.Equal(now, res.CreatedAt)
}

func (s *listingUsecaseSuite) TestCreateUnknownCategory() {
	s.category.On("FindOne", mockCtx, "boats").Return(nil, domain.NewNotFound("Category", "boats")).Once()

	_, err := s.im.Create(mockCtx, seller, listing.CreateParams{
		CategoryId:  "boats",
		Title:       "Speed boat",
		Description: "Fast",
		Type:        listing.SaleTypeAuction,
	})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *listingUsecaseSuite) TestCreateSlugTaken() {
	s.category.On("FindOne", mockCtx, "sedan").Return(&category.Category{Id: "sedan"}, nil).Once()
	s.listingRepo.On("Create", mockCtx, mock.Anything).Return(domain.NewConflict("Listing", "toyota-camry")).Once()

	_, err := s.im.Create(mockCtx, seller, listing.CreateParams{
		CategoryId:  "sedan",
		Title:       "Toyota Camry",
		Description: "Fast",
		Type:        listing.SaleTypeAuction,
	})
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *listingUsecaseSuite) TestUpdateLockedOnceBidsExist() {
	l := draftListing()
	l.Status = listing.StatusActive
	l.BidCount = 2
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil).Once()
	s.listingRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Title == "Toyota Camry 2018" && l.StartPrice.Equal(decimal.NewFromInt(1000)) &&
			l.Description == "Now with winter tyres" && l.UpdatedById == seller.Id
	})).Return(nil).Once()
	s.expectAudit(ActionUpdate)

	res, err := s.im.Update(mockCtx, seller, "l1", listing.UpdateParams{
		Title:       ptr.String("Something else"),
		StartPrice:  ptr.Decimal("1"),
		Description: ptr.String("Now with winter tyres"),
	})
	s.Require().NoError(err)
	s.Equal("toyota-camry-2018", res.Slug)
}

func (s *listingUsecaseSuite) TestUpdateRegeneratesSlug() {
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(draftListing()), nil).Once()
	s.bidRepo.On("CountByListing", mock.Anything, "l1").Return(0, nil).Once()
	s.category.On("FindOne", mock.Anything, "suv").Return(&category.Category{Id: "suv"}, nil).Once()
	s.listingRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Slug == "toyota-rav4-2020" && l.CategoryId == "suv"
	})).Return(nil).Once()
	s.expectAudit(ActionUpdate)

	_, err := s.im.Update(mockCtx, admin, "l1", listing.UpdateParams{
		Title:      ptr.String("Toyota RAV4 2020"),
		CategoryId: ptr.String("suv"),
	})
	s.Require().NoError(err)
}

func (s *listingUsecaseSuite) TestUpdateForbidden() {
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(draftListing()), nil).Once()

	_, err := s.im.Update(mockCtx, stranger, "l1", listing.UpdateParams{Description: ptr.String("mine now")})
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *listingUsecaseSuite) TestDelete() {
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(draftListing()), nil).Twice()
	s.bidRepo.On("CountByListing", mock.Anything, "l1").Return(1, nil).Once()

	err := s.im.Delete(mockCtx, seller, "l1")
	s.ErrorIs(err, domain.ErrBusinessRule)
	s.Equal("Listings with bids cannot be deleted.", err.Error())

	s.bidRepo.On("CountByListing", mock.Anything, "l1").Return(0, nil).Once()
	s.listingRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.IsDeleted && l.DeletedById == seller.Id && *l.DeletedAt == now
	})).Return(nil).Once()
	s.expectAudit(ActionDelete)
	s.Require().NoError(s.im.Delete(mockCtx, seller, "l1"))
}

func (s *listingUsecaseSuite) TestFindOneCountsView() {
	l := draftListing()
	l.Views = 4
	s.listingRepo.On("FindOne", mockCtx, "l1").Return(&l, nil).Once()
	s.listingRepo.On("IncrementViews", mockCtx, "l1").Return(nil).Once()

	res, err := s.im.FindOne(mockCtx, "l1")
	s.Require().NoError(err)
	s.Equal(int64(5), res.Views)
}

func (s *listingUsecaseSuite) TestSubmitAndPublishFlow() {
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(draftListing()), nil).Once()
	s.listingRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Status == listing.StatusPendingReview
	})).Return(nil).Once()
	s.expectAudit(string(listing.CommandSubmit))

	res, err := s.im.Submit(mockCtx, seller, "l1")
	s.Require().NoError(err)
	s.Equal(listing.StatusPendingReview, res.Status)

	pending := draftListing()
	pending.Status = listing.StatusPendingReview
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(pending), nil).Once()
	_, err = s.im.Publish(mockCtx, seller, "l1")
	s.ErrorIs(err, domain.ErrBusinessRule)
	s.Equal("Listing must be approved before it can be published.", err.Error())
}

func (s *listingUsecaseSuite) TestPublishActiveIsNoop() {
	l := draftListing()
	l.Status = listing.StatusActive
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil).Once()

	res, err := s.im.Publish(mockCtx, seller, "l1")
	s.Require().NoError(err)
	s.Equal(listing.StatusActive, res.Status)
	s.listingRepo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *listingUsecaseSuite) TestSellerCommandsRequireOwnership() {
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(draftListing()), nil)

	_, err := s.im.Submit(mockCtx, stranger, "l1")
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.im.SetStatus(mockCtx, stranger, "l1", listing.StatusCancelled, "")
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *listingUsecaseSuite) TestSetStatusPlatformManaged() {
	l := draftListing()
	l.Status = listing.StatusActive
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil).Once()

	_, err := s.im.SetStatus(mockCtx, seller, "l1", listing.StatusSold, "")
	s.ErrorIs(err, domain.ErrBusinessRule)
	s.Equal("The requested status change is managed by the platform.", err.Error())
}

func (s *listingUsecaseSuite) TestExtend() {
	l := draftListing()
	l.Status = listing.StatusActive
	end := now.Add(time.Hour)
	l.EndAt = &end
	newEnd := now.Add(48 * time.Hour)

	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil).Once()
	s.listingRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.EndAt.Equal(newEnd)
	})).Return(nil).Once()
	s.auditRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action == string(listing.CommandExtend) && e.Description == "End time extended to 2024-05-03T12:00:00Z"
	})).Return(nil).Once()

	_, err := s.im.Extend(mockCtx, seller, "l1", newEnd)
	s.Require().NoError(err)
}

func (s *listingUsecaseSuite) TestConflictRetriedThenSurfaced() {
	l := draftListing()
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil).Twice()
	s.listingRepo.On("Save", mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Twice()

	_, err := s.im.Submit(mockCtx, seller, "l1")
	s.ErrorIs(err, domain.ErrBusinessRule)
	s.Equal(msgListingChanged, err.Error())
}

func (s *listingUsecaseSuite) TestCancelledDuringConflictRetryIsTransient() {
	c, cancel := ctx.WithCancel(mockCtx)
	cancel()
	l := draftListing()
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil).Once()
	s.listingRepo.On("Save", mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Once()

	_, err := s.im.Submit(c, seller, "l1")
	s.ErrorIs(err, domain.ErrTransient)
	s.Contains(err.Error(), context.Canceled.Error())
}

func (s *listingUsecaseSuite) TestMediaCommands() {
	l := draftListing()
	l.Media = []listing.Media{{Id: "m1", Url: "https://cdn/a.jpg", Type: "image/jpeg", SortOrder: 3}}

	_, err := s.im.AddMedia(mockCtx, seller, "l1", nil)
	s.ErrorIs(err, domain.ErrBusinessRule)

	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(l), nil)
	s.listingRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return len(l.Media) == 2 && l.Media[1].SortOrder == 4
	})).Return(nil).Once()
	s.expectAudit(ActionAddMedia)
	res, err := s.im.AddMedia(mockCtx, seller, "l1", []listing.MediaParams{{Url: "https://cdn/b.mp4", Type: "video/mp4"}})
	s.Require().NoError(err)
	s.Len(res.Media, 2)

	_, err = s.im.RemoveMedia(mockCtx, seller, "l1", "m9")
	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal("ListingMedia (m9) was not found.", err.Error())
}

func (s *listingUsecaseSuite) TestSearch() {
	s.listingRepo.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{{Id: "l1"}}, nil).Once()
	s.listingRepo.On("Count", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(41, nil).Once()

	res, err := s.im.Search(mockCtx, listing.SearchParams{Search: "camry", Type: listing.SaleTypeAuction, Sort: "-price", Page: 3})
	s.Require().NoError(err)
	s.Equal(3, res.Page)
	s.Equal(domain.DefaultPageSize, res.PageSize)
	s.Equal(41, res.Total)

	_, err = s.im.Search(mockCtx, listing.SearchParams{Sort: "bogus"})
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingUsecaseSuite) TestWatch() {
	s.listingRepo.On("FindOne", mock.Anything, "l1").Return(serve(draftListing()), nil).Twice()
	s.watchlistRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	s.listingRepo.On("IncrementWatchCount", mock.Anything, "l1", 1).Return(nil).Once()
	s.Require().NoError(s.im.Watch(mockCtx, stranger, "l1"))

	s.watchlistRepo.On("Add", mock.Anything, mock.Anything).Return(domain.NewConflict("WatchlistItem", "l1")).Once()
	s.Require().NoError(s.im.Watch(mockCtx, stranger, "l1"), "watching twice is fine and counts once")

	s.watchlistRepo.On("Remove", mock.Anything, stranger.Id, "l1").Return(nil).Once()
	s.listingRepo.On("IncrementWatchCount", mock.Anything, "l1", -1).Return(nil).Once()
	s.Require().NoError(s.im.Unwatch(mockCtx, stranger, "l1"))

	s.watchlistRepo.On("Remove", mock.Anything, stranger.Id, "l1").Return(domain.NewNotFound("WatchlistItem", "l1")).Once()
	s.Require().NoError(s.im.Unwatch(mockCtx, stranger, "l1"))

	s.ErrorIs(s.im.Watch(mockCtx, domain.Actor{}, "l1"), domain.ErrForbidden)
}

func (s *listingUsecaseSuite) TestMyWatchlistKeepsOrder() {
	entries := []*listing.WatchlistEntry{{ListingId: "l2"}, {ListingId: "gone"}, {ListingId: "l1"}}
	s.watchlistRepo.On("FindByUser", mockCtx, stranger.Id, 0, 20).Return(entries, nil).Once()
	s.watchlistRepo.On("CountByUser", mockCtx, stranger.Id).Return(3, nil).Once()
	s.listingRepo.On("FindAll", mockCtx, mock.Anything).Return([]*listing.Listing{{Id: "l1"}, {Id: "l2"}}, nil).Once()

	res, err := s.im.MyWatchlist(mockCtx, stranger, 1, 20)
	s.Require().NoError(err)
	s.Require().Len(res.Items, 2)
	s.Equal("l2", res.Items[0].Id)
	s.Equal("l1", res.Items[1].Id)
	s.Equal(3, res.Total)
}

func (s *listingUsecaseSuite) TestHistory() {
	l := draftListing()
	s.listingRepo.On("FindOne", mockCtx, "l1").Return(&l, nil)
	s.auditRepo.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).Return([]*audit.Entry{
		{Action: string(listing.CommandApprove), ActorId: admin.Id, Description: "Status changed from pendingReview to active", CreatedAt: now.Add(-24 * time.Hour)},
		{Action: ActionUpdate, ActorId: seller.Id, Description: "Listing details updated", CreatedAt: now.Add(-36 * time.Hour)},
		{Action: ActionCreate, ActorId: seller.Id, CreatedAt: l.CreatedAt},
	}, nil)
	s.bidRepo.On("FindByListing", mockCtx, "l1", 0, historyLimit).Return([]*bid.Bid{
		{Id: "b2", BidderId: "bob", Amount: decimal.NewFromInt(1050), PlacedAt: now.Add(-time.Hour)},
		{Id: "b1", BidderId: "alice", Amount: decimal.NewFromInt(1000), PlacedAt: now.Add(-2 * time.Hour)},
	}, nil)

	res, err := s.im.History(mockCtx, domain.Actor{Id: "alice"}, "l1")
	s.Require().NoError(err)
	s.Require().Len(res, 5)
	types := []listing.HistoryEventType{}
	for _, e := range res {
		types = append(types, e.Type)
	}
	s.Equal([]listing.HistoryEventType{
		listing.HistoryCreated, listing.HistoryUpdated, listing.HistoryStatus, listing.HistoryBid, listing.HistoryBid,
	}, types)
	s.Equal(domain.UserId("alice"), *res[3].ActorId)
	s.Nil(res[4].ActorId)
	s.Nil(res[2].ActorId)

	res, err = s.im.History(mockCtx, seller, "l1")
	s.Require().NoError(err)
	for _, e := range res {
		s.NotNil(e.ActorId)
	}
}

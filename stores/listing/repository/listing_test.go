package repository

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/database/mongoclient"
	"github.com/mazad/goapi/base/ptr"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/service/query"
	queryMocks "github.com/mazad/goapi/service/query/mocks"
)

var (
	mockCtx = ctx.Background()
	now     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

type listingRepoSuite struct {
	suite.Suite
	q  *queryMocks.Mongo
	im *listingRepoImpl
}

func TestListingRepoSuite(t *testing.T) {
	suite.Run(t, new(listingRepoSuite))
}

func (s *listingRepoSuite) SetupTest() {
	s.q = &queryMocks.Mongo{}
	s.im = NewListingRepo(s.q).(*listingRepoImpl)
}

func (s *listingRepoSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func (s *listingRepoSuite) TestMakeQuery() {
	options, err := listing.GetFindAllOptions(
		listing.WithStatuses(listing.StatusActive, listing.StatusApproved),
		listing.WithCategoryId("cars"),
		listing.WithType(listing.SaleTypeBoth),
		listing.WithSearch("bmw x5 (2019)"),
	)
	s.Require().NoError(err)

	qry := makeQuery(options)
	s.Equal(false, qry["isDeleted"])
	s.Equal(bson.M{"$in": []listing.Status{listing.StatusActive, listing.StatusApproved}}, qry["status"])
	s.Equal("cars", qry["categoryId"])
	s.Equal(listing.SaleTypeBoth, qry["type"])
	pattern := bson.M{"$regex": `bmw x5 \(2019\)`, "$options": "i"}
	s.Equal(bson.A{bson.M{"title": pattern}, bson.M{"description": pattern}}, qry["$or"])

	options, err = listing.GetFindAllOptions(
		listing.WithSellerId("seller-1"),
		listing.WithStatuses(listing.StatusActive),
		listing.WithEndAtBefore(now),
	)
	s.Require().NoError(err)
	qry = makeQuery(options)
	s.Equal(domain.UserId("seller-1"), qry["sellerId"])
	s.Equal(listing.StatusActive, qry["status"])
	s.Equal(bson.M{"$lt": now}, qry["endAt"])
	s.NotContains(qry, "$or")
}

func (s *listingRepoSuite) TestMakeSort() {
	cases := map[string]string{
		"":                    "-createdAt",
		listing.SortPriceAsc:  "sortPrice",
		listing.SortPriceDesc: "-sortPrice",
		listing.SortEndAsc:    "endAt",
		listing.SortEndDesc:   "-endAt",
	}
	for in, want := range cases {
		options, err := listing.GetFindAllOptions(listing.WithSort(in))
		s.Require().NoError(err)
		s.Equal([]string{want, "_id"}, makeSort(options), in)
	}

	_, err := listing.GetFindAllOptions(listing.WithSort("views"))
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *listingRepoSuite) TestStateDocExcludesCounters() {
	doc := stateDoc(&listing.Listing{Id: "l-1", Views: 10, WatchCount: 3, Version: 4})
	for _, k := range []string{"_id", "views", "watchCount", "version", "createdAt", "createdById"} {
		s.NotContains(doc, k)
	}
	s.Contains(doc, "status")
	s.Contains(doc, "sortPrice")
}

func (s *listingRepoSuite) TestSave() {
	l := &listing.Listing{
		Id:          "l-1",
		Status:      listing.StatusActive,
		StartPrice:  ptr.Decimal("1000"),
		BuyNowPrice: ptr.Decimal("5000"),
		Version:     3,
	}

	s.q.On("Update", mockCtx, domain.TableListings,
		bson.M{"_id": "l-1", "version": int64(3)},
		mock.MatchedBy(func(update bson.M) bool {
			set := update["$set"].(bson.M)
			return set["sortPrice"].(*decimal.Decimal).Equal(decimal.NewFromInt(5000)) &&
				update["$inc"].(bson.M)["version"] == 1
		}),
		false,
	).Return(nil).Once()

	s.NoError(s.im.Save(mockCtx, l))
	s.Equal(int64(4), l.Version)
}

func (s *listingRepoSuite) TestSaveVersionConflict() {
	l := &listing.Listing{Id: "l-1", Version: 3}
	s.q.On("Update", mockCtx, domain.TableListings, bson.M{"_id": "l-1", "version": int64(3)}, mock.Anything, false).
		Return(query.ErrNotFound).Once()

	s.Equal(domain.ErrVersionConflict, s.im.Save(mockCtx, l))
	s.Equal(int64(3), l.Version)
}

func (s *listingRepoSuite) TestSaveSlugTaken() {
	l := &listing.Listing{Id: "l-1", Slug: "bmw-x5"}
	s.q.On("Update", mockCtx, domain.TableListings, mock.Anything, mock.Anything, false).
		Return(query.ErrDuplicateKey).Once()

	err := s.im.Save(mockCtx, l)
	s.True(errors.Is(err, domain.ErrConflict))
	s.EqualError(err, "Listing (bmw-x5) already exists.")
}

func (s *listingRepoSuite) TestCreate() {
	l := &listing.Listing{Id: "l-1", Slug: "bmw-x5", StartPrice: ptr.Decimal("100")}
	s.q.On("Insert", mockCtx, domain.TableListings, l).Return(nil).Once()
	s.NoError(s.im.Create(mockCtx, l))
	s.True(l.SortPrice.Equal(decimal.NewFromInt(100)))

	s.q.On("Insert", mockCtx, domain.TableListings, l).Return(query.ErrDuplicateKey).Once()
	s.True(errors.Is(s.im.Create(mockCtx, l), domain.ErrConflict))
}

func (s *listingRepoSuite) TestFindOne() {
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": "missing", "isDeleted": false}, mock.Anything).
		Return(query.ErrNotFound).Once()

	_, err := s.im.FindOne(mockCtx, "missing")
	s.True(errors.Is(err, domain.ErrNotFound))
	s.EqualError(err, "Listing (missing) was not found.")
}

func (s *listingRepoSuite) TestIncrementWatchCount() {
	s.q.On("Update", mockCtx, domain.TableListings,
		bson.M{"_id": "l-1", "watchCount": bson.M{"$gte": 1}},
		bson.M{"$inc": bson.M{"watchCount": -1}}, false,
	).Return(query.ErrNotFound).Once()
	s.NoError(s.im.IncrementWatchCount(mockCtx, "l-1", -1))

	s.q.On("Update", mockCtx, domain.TableListings,
		bson.M{"_id": "l-1"},
		bson.M{"$inc": bson.M{"watchCount": 1}}, false,
	).Return(nil).Once()
	s.NoError(s.im.IncrementWatchCount(mockCtx, "l-1", 1))
}

// liveListingSuite runs against a replica set, e.g. MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
type liveListingSuite struct {
	suite.Suite
	uri string
	q   query.Mongo
	im  listing.Repo
}

func TestLiveListingSuite(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	suite.Run(t, &liveListingSuite{uri: uri})
}

func (s *liveListingSuite) SetupTest() {
	client := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:               s.uri,
		AuthDBName:        "admin",
		DBName:            "listing_repo_test",
		RequireReplicaSet: true,
	})
	s.Require().NoError(client.Database(client.DbName).Drop(mockCtx))
	s.Require().NoError(mongoclient.EnsureIndexes(mockCtx, client, mongoclient.Indexes))
	s.q = query.New(client, false)
	s.im = NewListingRepo(s.q)
}

func (s *liveListingSuite) newListing(id, slug string, price string) *listing.Listing {
	return &listing.Listing{
		Id:         id,
		SellerId:   "seller-1",
		Title:      slug,
		Slug:       slug,
		Type:       listing.SaleTypeAuction,
		Status:     listing.StatusActive,
		StartPrice: ptr.Decimal(price),
		Media:      []listing.Media{},
		Auditable:  domain.NewAuditable("seller-1", now),
	}
}

func (s *liveListingSuite) TestSaveBumpsVersion() {
	l := s.newListing("l-1", "audi-a4", "100")
	s.Require().NoError(s.im.Create(mockCtx, l))

	stale := *l
	l.Title = "Audi A4 Avant"
	s.Require().NoError(s.im.Save(mockCtx, l))
	s.Equal(int64(1), l.Version)

	stale.Title = "lost update"
	s.Equal(domain.ErrVersionConflict, s.im.Save(mockCtx, &stale))

	got, err := s.im.FindOne(mockCtx, "l-1")
	s.Require().NoError(err)
	s.Equal("Audi A4 Avant", got.Title)
	s.Equal(int64(1), got.Version)
	s.True(got.StartPrice.Equal(decimal.NewFromInt(100)))
}

func (s *liveListingSuite) TestSlugUnique() {
	s.Require().NoError(s.im.Create(mockCtx, s.newListing("l-1", "audi-a4", "100")))
	err := s.im.Create(mockCtx, s.newListing("l-2", "audi-a4", "100"))
	s.True(errors.Is(err, domain.ErrConflict))
}

func (s *liveListingSuite) TestSearchSortsByPrice() {
	s.Require().NoError(s.im.Create(mockCtx, s.newListing("l-1", "cheap-golf", "900")))
	s.Require().NoError(s.im.Create(mockCtx, s.newListing("l-2", "pricey-golf", "12000")))
	s.Require().NoError(s.im.Create(mockCtx, s.newListing("l-3", "mid-golf", "5000")))

	res, err := s.im.FindAll(mockCtx, listing.WithSearch("GOLF"), listing.WithSort(listing.SortPriceDesc))
	s.Require().NoError(err)
	s.Require().Len(res, 3)
	s.Equal([]string{"l-2", "l-3", "l-1"}, []string{res[0].Id, res[1].Id, res[2].Id})

	cnt, err := s.im.Count(mockCtx, listing.WithSearch("golf"))
	s.Require().NoError(err)
	s.Equal(3, cnt)
}

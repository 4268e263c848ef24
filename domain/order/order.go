package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

type Order struct {
	Id        string          `json:"id" bson:"_id"`
	ListingId string          `json:"listingId" bson:"listingId"`
	BuyerId   domain.UserId   `json:"buyerId" bson:"buyerId"`
	SellerId  domain.UserId   `json:"sellerId" bson:"sellerId"`
	Price     decimal.Decimal `json:"price" bson:"price"`
	Status    Status          `json:"status" bson:"status"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

// CanView is true for the buyer, the seller and admins
func (o *Order) CanView(actor domain.Actor) bool {
	return actor.IsAdmin || o.BuyerId == actor.Id || o.SellerId == actor.Id
}

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleSeller
}

type FindAllOptions struct {
	BuyerId  *domain.UserId `bson:"buyerId,omitempty"`
	SellerId *domain.UserId `bson:"sellerId,omitempty"`
	Offset   *int           `bson:"-"`
	Limit    *int           `bson:"-"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithBuyerId(id domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.BuyerId = &id
		return nil
	}
}

func WithSellerId(id domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SellerId = &id
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Order, error)
	// FindActiveByListing returns the non-cancelled order of the listing, nil when there is none
	FindActiveByListing(c ctx.Ctx, listingId string) (*Order, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Order, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// Insert does not check for an existing order, callers serialize on the listing version
	Insert(c ctx.Ctx, o *Order) error
}

type Usecase interface {
	BuyNow(c ctx.Ctx, actor domain.Actor, listingId string) (*listing.Listing, error)
	GetOrder(c ctx.Ctx, actor domain.Actor, id string) (*Order, error)
	MyOrders(c ctx.Ctx, actor domain.Actor, role Role, page, pageSize int) (*domain.Page, error)
}

// CheckPurchasable validates the buy now preconditions, existing is the listing's active order if any
func CheckPurchasable(l *listing.Listing, existing *Order) error {
	if l.Status != listing.StatusActive {
		return domain.NewBusinessRule("Only active listings can be purchased immediately.")
	}
	if !l.Type.AllowsBuyNow() {
		return domain.NewBusinessRule("This listing does not support Buy Now purchases.")
	}
	if l.BuyNowPrice == nil {
		return domain.NewBusinessRule("No Buy Now price has been configured for this listing.")
	}
	if existing != nil {
		return domain.NewBusinessRule("A pending order already exists for this listing.")
	}
	return nil
}

// New builds the pending order created by a buy now purchase
func New(l *listing.Listing, buyer domain.UserId, now time.Time) *Order {
	return &Order{
		Id:        domain.NewId(),
		ListingId: l.Id,
		BuyerId:   buyer,
		SellerId:  l.SellerId,
		Price:     *l.BuyNowPrice,
		Status:    StatusPending,
		CreatedAt: now,
	}
}

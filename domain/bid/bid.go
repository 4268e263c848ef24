package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusWinning   Status = "winning"
	StatusOutbid    Status = "outbid"
	StatusRetracted Status = "retracted"
	StatusInvalid   Status = "invalid"
)

// IsLive reports whether the bid competes for the highest amount
func (s Status) IsLive() bool {
	return s == StatusPlaced || s == StatusWinning
}

type Bid struct {
	Id        string          `json:"id" bson:"_id"`
	ListingId string          `json:"listingId" bson:"listingId"`
	BidderId  domain.UserId   `json:"bidderId" bson:"bidderId"`
	Amount    decimal.Decimal `json:"amount" bson:"amount"`
	PlacedAt  time.Time       `json:"placedAt" bson:"placedAt"`
	Status    Status          `json:"status" bson:"status"`

	domain.Auditable `bson:",inline"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Bid, error)
	// FindHighest returns the live bid with the greatest amount, nil when the listing has none
	FindHighest(c ctx.Ctx, listingId string) (*Bid, error)
	// FindByListing excludes invalid bids, newest first
	FindByListing(c ctx.Ctx, listingId string, offset, limit int) ([]*Bid, error)
	CountByListing(c ctx.Ctx, listingId string) (int, error)
	// FindByBidder is newest first
	FindByBidder(c ctx.Ctx, bidderId domain.UserId, offset, limit int) ([]*Bid, error)
	CountByBidder(c ctx.Ctx, bidderId domain.UserId) (int, error)
	Insert(c ctx.Ctx, b *Bid) error
	// MarkOutbid flips a live bid to outbid, domain.ErrVersionConflict if it is no longer live
	MarkOutbid(c ctx.Ctx, id string, actor domain.UserId, now time.Time) error
}

type Usecase interface {
	PlaceBid(c ctx.Ctx, actor domain.Actor, listingId string, amount decimal.Decimal) (*Bid, error)
	GetListingBids(c ctx.Ctx, viewer domain.Actor, listingId string, page, pageSize int) (*domain.Page, error)
	GetBidById(c ctx.Ctx, viewer domain.Actor, id string) (*View, error)
	GetMyBids(c ctx.Ctx, actor domain.Actor, page, pageSize int) (*domain.Page, error)
}

var one = decimal.NewFromInt(1)

// MinimumBid is the smallest amount the next bid may carry
func MinimumBid(l *listing.Listing, highest *Bid) decimal.Decimal {
	if highest != nil {
		inc := one
		if l.BidIncrement != nil {
			inc = *l.BidIncrement
		}
		return highest.Amount.Add(inc)
	}
	if l.StartPrice != nil {
		return *l.StartPrice
	}
	return one
}

// CheckBiddable validates the listing side preconditions of a bid, in order
func CheckBiddable(l *listing.Listing, now time.Time) error {
	if l.Type == listing.SaleTypeBuyNow && l.StartPrice == nil {
		return domain.NewBusinessRule("Bidding is not enabled for this listing.")
	}
	if l.Status != listing.StatusActive {
		return domain.NewBusinessRule("Only active listings accept bids.")
	}
	if l.HasEnded(now) {
		return domain.NewBusinessRule("The auction has already ended.")
	}
	return nil
}

func CheckAmount(amount, minimum decimal.Decimal) error {
	if amount.LessThan(minimum) {
		return domain.NewBusinessRule("Bid amount must be at least %s.", minimum.StringFixed(2))
	}
	return nil
}

package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/domain"
)

// View is the read projection of a bid. BidderId is nil when the viewer may not see it.
type View struct {
	Id        string          `json:"id"`
	ListingId string          `json:"listingId"`
	Amount    decimal.Decimal `json:"amount"`
	PlacedAt  time.Time       `json:"placedAt"`
	Status    Status          `json:"status"`
	BidderId  *domain.UserId  `json:"bidderId"`
	IsMine    bool            `json:"isMine"`
}

// CanSeeBidder is true for admins, the listing seller and the bidder
func CanSeeBidder(viewer domain.Actor, sellerId, bidderId domain.UserId) bool {
	if viewer.IsAdmin {
		return true
	}
	if viewer.Id.IsEmpty() {
		return false
	}
	return viewer.Id == sellerId || viewer.Id == bidderId
}

// MaskBidder returns the bidder id as the viewer is allowed to see it
func MaskBidder(viewer domain.Actor, sellerId, bidderId domain.UserId) *domain.UserId {
	if !CanSeeBidder(viewer, sellerId, bidderId) {
		return nil
	}
	id := bidderId
	return &id
}

func Project(b *Bid, viewer domain.Actor, sellerId domain.UserId) *View {
	return &View{
		Id:        b.Id,
		ListingId: b.ListingId,
		Amount:    b.Amount,
		PlacedAt:  b.PlacedAt,
		Status:    b.Status,
		BidderId:  MaskBidder(viewer, sellerId, b.BidderId),
		IsMine:    !viewer.Id.IsEmpty() && viewer.Id == b.BidderId,
	}
}

func ProjectAll(bids []*Bid, viewer domain.Actor, sellerId domain.UserId) []*View {
	res := make([]*View, 0, len(bids))
	for _, b := range bids {
		res = append(res, Project(b, viewer, sellerId))
	}
	return res
}

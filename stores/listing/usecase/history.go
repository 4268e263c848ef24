package usecase

import (
	"sort"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/audit"
	"github.com/mazad/goapi/domain/bid"
	"github.com/mazad/goapi/domain/listing"
)

// historyLimit caps each source of the timeline
const historyLimit = 500

func historyType(action string) (listing.HistoryEventType, bool) {
	switch action {
	case ActionCreate, ActionDelete:
		return "", false
	case ActionUpdate, ActionAddMedia, ActionRemoveMedia:
		return listing.HistoryUpdated, true
	default:
		return listing.HistoryStatus, true
	}
}

// History merges the listing's audit trail and its bids, oldest first
func (im *impl) History(c ctx.Ctx, viewer domain.Actor, id string) ([]*listing.HistoryEvent, error) {
	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	entries, err := im.auditRepo.FindAll(c,
		audit.WithArea(audit.AreaAuctions),
		audit.WithEntityId(id),
		audit.WithPagination(0, historyLimit),
	)
	if err != nil {
		return nil, err
	}
	bids, err := im.bidRepo.FindByListing(c, id, 0, historyLimit)
	if err != nil {
		return nil, err
	}

	res := make([]*listing.HistoryEvent, 0, len(entries)+len(bids)+1)
	res = append(res, &listing.HistoryEvent{
		Type:        listing.HistoryCreated,
		OccurredAt:  l.CreatedAt,
		Description: "Listing created",
		ActorId:     bid.MaskBidder(viewer, l.SellerId, l.CreatedById),
	})
	for _, e := range entries {
		typ, ok := historyType(e.Action)
		if !ok {
			continue
		}
		res = append(res, &listing.HistoryEvent{
			Type:        typ,
			OccurredAt:  e.CreatedAt,
			Description: e.Description,
			ActorId:     bid.MaskBidder(viewer, l.SellerId, e.ActorId),
		})
	}
	for _, b := range bids {
		amount := b.Amount
		res = append(res, &listing.HistoryEvent{
			Type:        listing.HistoryBid,
			OccurredAt:  b.PlacedAt,
			Description: "Bid placed",
			Amount:      &amount,
			ActorId:     bid.MaskBidder(viewer, l.SellerId, b.BidderId),
		})
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].OccurredAt.Before(res[j].OccurredAt)
	})
	return res, nil
}

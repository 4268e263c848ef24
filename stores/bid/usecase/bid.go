package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/mazad/goapi/base/backoff"
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/metrics"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/bid"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/service/query"
)

const (
	maxConflictRetries = 1
	msgListingChanged  = "The listing changed while your bid was being placed. Please try again."
)

var (
	timeNow = time.Now
	met     = metrics.New("bid")
)

type BidUseCaseCfg struct {
	Q            query.Mongo
	ListingRepo  listing.Repo
	BidRepo      bid.Repo
	RetryBackoff time.Duration
}

type impl struct {
	q            query.Mongo
	listingRepo  listing.Repo
	bidRepo      bid.Repo
	retryBackoff time.Duration
}

func New(cfg *BidUseCaseCfg) bid.Usecase {
	return &impl{
		q:            cfg.Q,
		listingRepo:  cfg.ListingRepo,
		bidRepo:      cfg.BidRepo,
		retryBackoff: cfg.RetryBackoff,
	}
}

func (im *impl) PlaceBid(c ctx.Ctx, actor domain.Actor, listingId string, amount decimal.Decimal) (*bid.Bid, error) {
	defer met.BumpTime("place.time").End()

	var res *bid.Bid
	isConflict := func(err error) bool {
		if errors.Is(err, domain.ErrVersionConflict) {
			met.BumpSum("conflict", 1)
			return true
		}
		return false
	}
	err := backoff.Retry(c, backoff.NewConstant(im.retryBackoff), maxConflictRetries, isConflict, func() error {
		var err error
		res, err = im.placeOnce(c, actor, listingId, amount)
		return err
	})
	switch {
	case err == nil:
		met.BumpSum("placed", 1)
		return res, nil
	case errors.Is(err, domain.ErrVersionConflict):
		c.WithField("listingId", listingId).Warn("bid placement kept conflicting")
		return nil, domain.NewBusinessRule(msgListingChanged)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, xerrors.Errorf("placing bid: %v: %w", err, domain.ErrTransient)
	case errors.Is(err, domain.ErrBusinessRule):
		met.BumpSum("rejected", 1)
	}
	return nil, err
}

// placeOnce validates against the freshest listing state and commits the bid in one transaction
func (im *impl) placeOnce(c ctx.Ctx, actor domain.Actor, listingId string, amount decimal.Decimal) (*bid.Bid, error) {
	var placed *bid.Bid
	err := im.q.RunWithTransaction(c, func(tc ctx.Ctx) error {
		l, err := im.listingRepo.FindOne(tc, listingId)
		if err != nil {
			return err
		}

		now := timeNow()
		if err := bid.CheckBiddable(l, now); err != nil {
			return err
		}

		highest, err := im.bidRepo.FindHighest(tc, listingId)
		if err != nil {
			return err
		}
		if err := bid.CheckAmount(amount, bid.MinimumBid(l, highest)); err != nil {
			return err
		}

		if highest != nil {
			if err := im.bidRepo.MarkOutbid(tc, highest.Id, actor.Id, now); err != nil {
				return err
			}
		}

		b := &bid.Bid{
			Id:        domain.NewId(),
			ListingId: listingId,
			BidderId:  actor.Id,
			Amount:    amount,
			PlacedAt:  now,
			Status:    bid.StatusWinning,
			Auditable: domain.NewAuditable(actor.Id, now),
		}
		if err := im.bidRepo.Insert(tc, b); err != nil {
			return err
		}

		current := amount
		l.CurrentBid = &current
		l.BidCount++
		if err := im.listingRepo.Save(tc, l); err != nil {
			return err
		}
		placed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (im *impl) GetListingBids(c ctx.Ctx, viewer domain.Actor, listingId string, page, pageSize int) (*domain.Page, error) {
	l, err := im.listingRepo.FindOne(c, listingId)
	if err != nil {
		return nil, err
	}

	page, pageSize, offset := domain.Paging(page, pageSize)
	bids, err := im.bidRepo.FindByListing(c, listingId, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := im.bidRepo.CountByListing(c, listingId)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Items:    bid.ProjectAll(bids, viewer, l.SellerId),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (im *impl) GetBidById(c ctx.Ctx, viewer domain.Actor, id string) (*bid.View, error) {
	b, err := im.bidRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	l, err := im.listingRepo.FindOne(c, b.ListingId)
	if err != nil {
		return nil, err
	}
	return bid.Project(b, viewer, l.SellerId), nil
}

func (im *impl) GetMyBids(c ctx.Ctx, actor domain.Actor, page, pageSize int) (*domain.Page, error) {
	if actor.Id.IsEmpty() {
		return nil, domain.NewForbidden("Sign in to see your bids.")
	}

	page, pageSize, offset := domain.Paging(page, pageSize)
	bids, err := im.bidRepo.FindByBidder(c, actor.Id, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := im.bidRepo.CountByBidder(c, actor.Id)
	if err != nil {
		return nil, err
	}

	// the caller is the bidder of every row
	return &domain.Page{
		Items:    bid.ProjectAll(bids, actor, ""),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

package usecase

import (
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/metrics"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/domain/moderation"
)

var met = metrics.New("moderation")

type ModerationUseCaseCfg struct {
	ListingRepo listing.Repo
	ListingUC   listing.Usecase
}

type impl struct {
	listingRepo listing.Repo
	listingUC   listing.Usecase
}

func New(cfg *ModerationUseCaseCfg) moderation.Usecase {
	return &impl{
		listingRepo: cfg.ListingRepo,
		listingUC:   cfg.ListingUC,
	}
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin {
		return domain.NewForbidden("Only administrators can moderate listings.")
	}
	return nil
}

func (im *impl) apply(c ctx.Ctx, actor domain.Actor, listingId string, fn listing.TransitionFunc) (*listing.Listing, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	res, err := im.listingUC.Transition(c, actor, listingId, fn)
	if err != nil {
		c.WithField("err", err).WithField("listingId", listingId).Warn("listingUC.Transition failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Approve(c ctx.Ctx, actor domain.Actor, listingId, notes string) (*listing.Listing, error) {
	return im.apply(c, actor, listingId, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Approve(l, actor.Id, notes, now)
	})
}

func (im *impl) Reject(c ctx.Ctx, actor domain.Actor, listingId, reason string) (*listing.Listing, error) {
	return im.apply(c, actor, listingId, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Reject(l, actor.Id, reason, now)
	})
}

func (im *impl) SetFinalStatus(c ctx.Ctx, actor domain.Actor, listingId string, target listing.Status, notes string) (*listing.Listing, error) {
	res, err := im.apply(c, actor, listingId, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Finalize(l, actor.Id, target, notes, now)
	})
	if err != nil {
		return nil, err
	}
	met.BumpSum("final", 1, "status", string(target))
	return res, nil
}

func (im *impl) Queue(c ctx.Ctx, actor domain.Actor, status *listing.Status, page, pageSize int) (*listing.SearchResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	st := listing.StatusPendingReview
	if status != nil {
		st = *status
	}
	filters := []listing.FindAllOptionsFunc{
		listing.WithStatuses(st),
		listing.WithSort(listing.SortNewest),
	}
	if _, err := listing.GetFindAllOptions(filters...); err != nil {
		return nil, err
	}

	page, pageSize, offset := domain.Paging(page, pageSize)
	items, err := im.listingRepo.FindAll(c, append(filters, listing.WithPagination(offset, pageSize))...)
	if err != nil {
		return nil, err
	}
	total, err := im.listingRepo.Count(c, filters...)
	if err != nil {
		return nil, err
	}
	return &listing.SearchResult{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

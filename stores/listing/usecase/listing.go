package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mazad/goapi/base/backoff"
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/metrics"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/audit"
	"github.com/mazad/goapi/domain/bid"
	"github.com/mazad/goapi/domain/category"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/service/query"
	"golang.org/x/xerrors"
)

const (
	maxConflictRetries = 1
	msgListingChanged  = "The listing changed while your request was being processed. Please try again."
)

// audit actions recorded for listing writes, lifecycle commands use their listing.Command name
const (
	ActionCreate      = "create"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionAddMedia    = "addMedia"
	ActionRemoveMedia = "removeMedia"
)

var (
	timeNow = time.Now
	met     = metrics.New("listing")
)

type ListingUseCaseCfg struct {
	Q             query.Mongo
	ListingRepo   listing.Repo
	WatchlistRepo listing.WatchlistRepo
	BidRepo       bid.Repo
	AuditRepo     audit.Repo
	Category      category.Usecase
	RetryBackoff  time.Duration
}

type impl struct {
	q             query.Mongo
	listingRepo   listing.Repo
	watchlistRepo listing.WatchlistRepo
	bidRepo       bid.Repo
	auditRepo     audit.Repo
	category      category.Usecase
	retryBackoff  time.Duration
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	return &impl{
		q:             cfg.Q,
		listingRepo:   cfg.ListingRepo,
		watchlistRepo: cfg.WatchlistRepo,
		bidRepo:       cfg.BidRepo,
		auditRepo:     cfg.AuditRepo,
		category:      cfg.Category,
		retryBackoff:  cfg.RetryBackoff,
	}
}

// change is what a mutation did to a listing, a nil change leaves the listing untouched
type change struct {
	action      string
	description string
}

type mutation func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, *change, error)

// mutate loads the listing, applies fn and persists the result together with an audit entry
// in one transaction. A version conflict is retried once against the fresh state.
func (im *impl) mutate(c ctx.Ctx, actor domain.Actor, id string, fn mutation) (*listing.Listing, error) {
	var res *listing.Listing
	isConflict := func(err error) bool {
		return errors.Is(err, domain.ErrVersionConflict)
	}
	err := backoff.Retry(c, backoff.NewConstant(im.retryBackoff), maxConflictRetries, isConflict, func() error {
		return im.q.RunWithTransaction(c, func(tc ctx.Ctx) error {
			l, err := im.listingRepo.FindOne(tc, id)
			if err != nil {
				return err
			}

			now := timeNow()
			next, ch, err := fn(tc, *l, now)
			if err != nil {
				return err
			}
			if ch == nil {
				res = l
				return nil
			}

			if err := im.listingRepo.Save(tc, &next); err != nil {
				return err
			}
			if err := im.auditRepo.Insert(tc, audit.NewEntry(actor.Id, audit.AreaAuctions, ch.action, next.Id, ch.description, now)); err != nil {
				return err
			}
			met.BumpSum("write", 1, "action", ch.action)
			res = &next
			return nil
		})
	})
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, domain.ErrVersionConflict):
		c.WithField("listingId", id).Warn("listing write kept conflicting")
		return nil, domain.NewBusinessRule(msgListingChanged)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, xerrors.Errorf("writing listing: %v: %w", err, domain.ErrTransient)
	}
	return nil, err
}

func requireManager(l *listing.Listing, actor domain.Actor) error {
	if !l.CanManage(actor) {
		return domain.NewForbidden("You do not have permission to modify this listing.")
	}
	return nil
}

// hasBids checks the ledger as well as the denormalized counter
func (im *impl) hasBids(c ctx.Ctx, l *listing.Listing) (bool, error) {
	if l.HasBids() {
		return true, nil
	}
	cnt, err := im.bidRepo.CountByListing(c, l.Id)
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (im *impl) Create(c ctx.Ctx, actor domain.Actor, p listing.CreateParams) (*listing.Listing, error) {
	if actor.Id.IsEmpty() {
		return nil, domain.NewForbidden("Sign in to create listings.")
	}
	if err := listing.ValidateCreate(p); err != nil {
		return nil, err
	}
	if _, err := im.category.FindOne(c, p.CategoryId); err != nil {
		return nil, err
	}

	now := timeNow()
	l := listing.New(p, actor.Id, now)
	if err := im.q.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if err := im.listingRepo.Create(tc, l); err != nil {
			return err
		}
		return im.auditRepo.Insert(tc, audit.NewEntry(actor.Id, audit.AreaAuctions, ActionCreate, l.Id, "Listing created", now))
	}); err != nil {
		return nil, err
	}
	met.BumpSum("write", 1, "action", ActionCreate)
	return l, nil
}

func (im *impl) Update(c ctx.Ctx, actor domain.Actor, id string, p listing.UpdateParams) (*listing.Listing, error) {
	return im.mutate(c, actor, id, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, *change, error) {
		if err := requireManager(&l, actor); err != nil {
			return l, nil, err
		}
		locked, err := im.hasBids(tc, &l)
		if err != nil {
			return l, nil, err
		}
		if !locked && p.CategoryId != nil && *p.CategoryId != l.CategoryId {
			if _, err := im.category.FindOne(tc, *p.CategoryId); err != nil {
				return l, nil, err
			}
		}
		if err := l.ApplyUpdate(p, locked); err != nil {
			return l, nil, err
		}
		l.Touch(actor.Id, now)
		return l, &change{ActionUpdate, "Listing details updated"}, nil
	})
}

func (im *impl) Delete(c ctx.Ctx, actor domain.Actor, id string) error {
	_, err := im.mutate(c, actor, id, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, *change, error) {
		if !l.CanManage(actor) {
			return l, nil, domain.NewForbidden("You do not have permission to delete this listing.")
		}
		locked, err := im.hasBids(tc, &l)
		if err != nil {
			return l, nil, err
		}
		if locked {
			return l, nil, domain.NewBusinessRule("Listings with bids cannot be deleted.")
		}
		l.MarkDeleted(actor.Id, now)
		return l, &change{ActionDelete, "Listing deleted"}, nil
	})
	return err
}

// FindOne is the public read, it counts a view
func (im *impl) FindOne(c ctx.Ctx, id string) (*listing.Listing, error) {
	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	im.countView(c, l)
	return l, nil
}

func (im *impl) FindBySlug(c ctx.Ctx, slug string) (*listing.Listing, error) {
	l, err := im.listingRepo.FindBySlug(c, slug)
	if err != nil {
		return nil, err
	}
	im.countView(c, l)
	return l, nil
}

// countView does not fail the read, the counter is advisory
func (im *impl) countView(c ctx.Ctx, l *listing.Listing) {
	if err := im.listingRepo.IncrementViews(c, l.Id); err != nil {
		c.WithField("err", err).WithField("listingId", l.Id).Warn("listingRepo.IncrementViews failed")
		return
	}
	l.Views++
}

func (im *impl) page(c ctx.Ctx, page, pageSize int, filters ...listing.FindAllOptionsFunc) (*listing.SearchResult, error) {
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

func (im *impl) Search(c ctx.Ctx, p listing.SearchParams) (*listing.SearchResult, error) {
	filters := []listing.FindAllOptionsFunc{
		listing.WithStatuses(listing.StatusActive, listing.StatusApproved),
		listing.WithSort(p.Sort),
	}
	if p.Search != "" {
		filters = append(filters, listing.WithSearch(p.Search))
	}
	if p.CategoryId != "" {
		filters = append(filters, listing.WithCategoryId(p.CategoryId))
	}
	if p.Type != "" {
		filters = append(filters, listing.WithType(p.Type))
	}
	if _, err := listing.GetFindAllOptions(filters...); err != nil {
		return nil, fmt.Errorf("%w: unsupported search filter", err)
	}
	return im.page(c, p.Page, p.PageSize, filters...)
}

func (im *impl) FindMine(c ctx.Ctx, actor domain.Actor, status *listing.Status, page, pageSize int) (*listing.SearchResult, error) {
	if actor.Id.IsEmpty() {
		return nil, domain.NewForbidden("Sign in to see your listings.")
	}
	filters := []listing.FindAllOptionsFunc{
		listing.WithSellerId(actor.Id),
		listing.WithSort(listing.SortNewest),
	}
	if status != nil {
		filters = append(filters, listing.WithStatuses(*status))
	}
	if _, err := listing.GetFindAllOptions(filters...); err != nil {
		return nil, fmt.Errorf("%w: unsupported status", err)
	}
	return im.page(c, page, pageSize, filters...)
}

func (im *impl) AddMedia(c ctx.Ctx, actor domain.Actor, id string, media []listing.MediaParams) (*listing.Listing, error) {
	if err := listing.ValidateMedia(media); err != nil {
		return nil, err
	}
	return im.mutate(c, actor, id, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, *change, error) {
		if err := requireManager(&l, actor); err != nil {
			return l, nil, err
		}
		l.Media = append([]listing.Media{}, l.Media...)
		l.AppendMedia(media)
		l.Touch(actor.Id, now)
		return l, &change{ActionAddMedia, fmt.Sprintf("%d media item(s) added", len(media))}, nil
	})
}

func (im *impl) RemoveMedia(c ctx.Ctx, actor domain.Actor, id, mediaId string) (*listing.Listing, error) {
	return im.mutate(c, actor, id, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, *change, error) {
		if err := requireManager(&l, actor); err != nil {
			return l, nil, err
		}
		if !l.RemoveMedia(mediaId) {
			return l, nil, domain.NewNotFound("ListingMedia", mediaId)
		}
		l.Touch(actor.Id, now)
		return l, &change{ActionRemoveMedia, "Media item removed"}, nil
	})
}

package usecase

import (
	"errors"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

func requireUser(actor domain.Actor) error {
	if actor.Id.IsEmpty() {
		return domain.NewForbidden("Sign in to use the watchlist.")
	}
	return nil
}

// Watch is idempotent, the watch counter moves only when an entry is added
func (im *impl) Watch(c ctx.Ctx, actor domain.Actor, id string) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	return im.q.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if _, err := im.listingRepo.FindOne(tc, id); err != nil {
			return err
		}
		err := im.watchlistRepo.Add(tc, &listing.WatchlistEntry{
			Id:        domain.NewId(),
			UserId:    actor.Id,
			ListingId: id,
			CreatedAt: timeNow(),
		})
		if errors.Is(err, domain.ErrConflict) {
			return nil
		} else if err != nil {
			return err
		}
		return im.listingRepo.IncrementWatchCount(tc, id, 1)
	})
}

func (im *impl) Unwatch(c ctx.Ctx, actor domain.Actor, id string) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	return im.q.RunWithTransaction(c, func(tc ctx.Ctx) error {
		err := im.watchlistRepo.Remove(tc, actor.Id, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		return im.listingRepo.IncrementWatchCount(tc, id, -1)
	})
}

// MyWatchlist keeps the watchlist order, most recently watched first. Deleted listings are left out.
func (im *impl) MyWatchlist(c ctx.Ctx, actor domain.Actor, page, pageSize int) (*listing.SearchResult, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	page, pageSize, offset := domain.Paging(page, pageSize)
	entries, err := im.watchlistRepo.FindByUser(c, actor.Id, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := im.watchlistRepo.CountByUser(c, actor.Id)
	if err != nil {
		return nil, err
	}

	items := []*listing.Listing{}
	if len(entries) > 0 {
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ListingId)
		}
		found, err := im.listingRepo.FindAll(c, listing.WithIds(ids...))
		if err != nil {
			return nil, err
		}
		byId := make(map[string]*listing.Listing, len(found))
		for _, l := range found {
			byId[l.Id] = l
		}
		for _, id := range ids {
			if l, ok := byId[id]; ok {
				items = append(items, l)
			}
		}
	}

	return &listing.SearchResult{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

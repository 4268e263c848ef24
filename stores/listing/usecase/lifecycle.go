package usecase

import (
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

func (im *impl) Transition(c ctx.Ctx, actor domain.Actor, id string, fn listing.TransitionFunc) (*listing.Listing, error) {
	return im.mutate(c, actor, id, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, *change, error) {
		next, ev, err := fn(tc, l, now)
		if err != nil {
			return l, nil, err
		}
		if ev.IsNoop() {
			return l, nil, nil
		}
		met.BumpSum("transition", 1, "command", string(ev.Command), "to", string(ev.To))
		return next, &change{string(ev.Command), ev.Describe()}, nil
	})
}

// bySeller guards a seller command, admins pass as well
func bySeller(actor domain.Actor, apply func(l listing.Listing, now time.Time) (listing.Listing, listing.Event, error)) listing.TransitionFunc {
	return func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		if err := requireManager(&l, actor); err != nil {
			return l, listing.Event{}, err
		}
		return apply(l, now)
	}
}

func (im *impl) Submit(c ctx.Ctx, actor domain.Actor, id string) (*listing.Listing, error) {
	return im.Transition(c, actor, id, bySeller(actor, func(l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Submit(l, actor.Id, now)
	}))
}

func (im *impl) Publish(c ctx.Ctx, actor domain.Actor, id string) (*listing.Listing, error) {
	return im.Transition(c, actor, id, bySeller(actor, func(l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Publish(l, actor.Id, now)
	}))
}

func (im *impl) Unpublish(c ctx.Ctx, actor domain.Actor, id string) (*listing.Listing, error) {
	return im.Transition(c, actor, id, bySeller(actor, func(l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Unpublish(l, actor.Id, now)
	}))
}

func (im *impl) Extend(c ctx.Ctx, actor domain.Actor, id string, newEndAt time.Time) (*listing.Listing, error) {
	return im.Transition(c, actor, id, bySeller(actor, func(l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.Extend(l, actor.Id, newEndAt, now)
	}))
}

func (im *impl) SetStatus(c ctx.Ctx, actor domain.Actor, id string, target listing.Status, reason string) (*listing.Listing, error) {
	return im.Transition(c, actor, id, bySeller(actor, func(l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		return listing.SetStatus(l, actor.Id, target, reason, now)
	}))
}

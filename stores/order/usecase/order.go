package usecase

import (
	"errors"
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/metrics"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/domain/order"
)

var met = metrics.New("order")

type OrderUseCaseCfg struct {
	OrderRepo order.Repo
	ListingUC listing.Usecase
}

type impl struct {
	orderRepo order.Repo
	listingUC listing.Usecase
}

func New(cfg *OrderUseCaseCfg) order.Usecase {
	return &impl{
		orderRepo: cfg.OrderRepo,
		listingUC: cfg.ListingUC,
	}
}

// BuyNow sells the listing to actor at its Buy Now price. The order insert commits in the
// same transaction as the Sold status, so of two racing buyers only one gets an order.
func (im *impl) BuyNow(c ctx.Ctx, actor domain.Actor, listingId string) (*listing.Listing, error) {
	if actor.Id.IsEmpty() {
		return nil, domain.NewForbidden("Sign in to buy listings.")
	}

	res, err := im.listingUC.Transition(c, actor, listingId, func(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
		existing, err := im.orderRepo.FindActiveByListing(tc, l.Id)
		if err != nil {
			return l, listing.Event{}, err
		}
		if err := order.CheckPurchasable(&l, existing); err != nil {
			return l, listing.Event{}, err
		}
		sold, ev, err := listing.MarkSold(l, actor.Id, now)
		if err != nil {
			return l, listing.Event{}, err
		}
		if err := im.orderRepo.Insert(tc, order.New(&sold, actor.Id, now)); err != nil {
			return l, listing.Event{}, err
		}
		return sold, ev, nil
	})
	if errors.Is(err, domain.ErrBusinessRule) {
		met.BumpSum("buynow.rejected", 1)
		return nil, err
	} else if err != nil {
		c.WithField("err", err).WithField("listingId", listingId).Error("listingUC.Transition failed")
		return nil, err
	}

	met.BumpSum("buynow", 1)
	return res, nil
}

func (im *impl) GetOrder(c ctx.Ctx, actor domain.Actor, id string) (*order.Order, error) {
	o, err := im.orderRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !o.CanView(actor) {
		return nil, domain.NewForbidden("You do not have permission to view this order.")
	}
	return o, nil
}

func (im *impl) MyOrders(c ctx.Ctx, actor domain.Actor, role order.Role, page, pageSize int) (*domain.Page, error) {
	if actor.Id.IsEmpty() {
		return nil, domain.NewForbidden("Sign in to see your orders.")
	}

	if role == "" {
		role = order.RoleBuyer
	}
	if !role.IsValid() {
		return nil, domain.NewBusinessRule("Unknown order role %q.", role)
	}
	filter := order.WithBuyerId(actor.Id)
	if role == order.RoleSeller {
		filter = order.WithSellerId(actor.Id)
	}

	page, pageSize, offset := domain.Paging(page, pageSize)
	items, err := im.orderRepo.FindAll(c, filter, order.WithPagination(offset, pageSize))
	if err != nil {
		return nil, err
	}
	total, err := im.orderRepo.Count(c, filter)
	if err != nil {
		return nil, err
	}
	return &domain.Page{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

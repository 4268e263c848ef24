package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/service/query"
)

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

var sortFields = map[string]string{
	listing.SortNewest:    "-createdAt",
	listing.SortPriceAsc:  "sortPrice",
	listing.SortPriceDesc: "-sortPrice",
	listing.SortEndAsc:    "endAt",
	listing.SortEndDesc:   "-endAt",
}

func makeQuery(options listing.FindAllOptions) bson.M {
	qry := bson.M{"isDeleted": false}

	if len(options.Ids) > 0 {
		qry["_id"] = bson.M{"$in": options.Ids}
	}

	if options.SellerId != nil {
		qry["sellerId"] = *options.SellerId
	}

	if options.CategoryId != nil {
		qry["categoryId"] = *options.CategoryId
	}

	if options.Type != nil {
		qry["type"] = *options.Type
	}

	if len(options.Statuses) == 1 {
		qry["status"] = options.Statuses[0]
	} else if len(options.Statuses) > 1 {
		qry["status"] = bson.M{"$in": options.Statuses}
	}

	if options.Search != nil && *options.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(*options.Search), "$options": "i"}
		qry["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	if options.EndAtBefore != nil {
		qry["endAt"] = bson.M{"$lt": *options.EndAtBefore}
	}

	return qry
}

// makeSort always ends with _id so pages are stable
func makeSort(options listing.FindAllOptions) []string {
	sort := sortFields[listing.SortNewest]
	if options.Sort != nil {
		if s, ok := sortFields[*options.Sort]; ok {
			sort = s
		}
	}
	return []string{sort, "_id"}
}

func pagination(options listing.FindAllOptions) (offset, limit int) {
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	return offset, limit
}

func (im *listingRepoImpl) FindOne(c ctx.Ctx, id string) (*listing.Listing, error) {
	return im.findOne(c, bson.M{"_id": id, "isDeleted": false}, id)
}

func (im *listingRepoImpl) FindBySlug(c ctx.Ctx, slug string) (*listing.Listing, error) {
	return im.findOne(c, bson.M{"slug": slug, "isDeleted": false}, slug)
}

func (im *listingRepoImpl) findOne(c ctx.Ctx, qry bson.M, key string) (*listing.Listing, error) {
	res := listing.Listing{}
	if err := im.q.FindOne(c, domain.TableListings, qry, &res); err == query.ErrNotFound {
		return nil, domain.NewNotFound("Listing", key)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *listingRepoImpl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	qry := makeQuery(options)
	offset, limit := pagination(options)
	res := []*listing.Listing{}
	if err := im.q.Find(c, domain.TableListings, offset, limit, makeSort(options), qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Find failed")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) Count(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return 0, err
	}

	qry := makeQuery(options)
	cnt, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *listingRepoImpl) Create(c ctx.Ctx, l *listing.Listing) error {
	l.RefreshSortPrice()
	if err := im.q.Insert(c, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.NewConflict("Listing", l.Slug)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  l.Id,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

// stateDoc is every field a versioned write may change. Counters and creation stamps are excluded.
func stateDoc(l *listing.Listing) bson.M {
	return bson.M{
		"sellerId":        l.SellerId,
		"categoryId":      l.CategoryId,
		"title":           l.Title,
		"slug":            l.Slug,
		"description":     l.Description,
		"location":        l.Location,
		"attributes":      l.Attributes,
		"type":            l.Type,
		"status":          l.Status,
		"startAt":         l.StartAt,
		"endAt":           l.EndAt,
		"startPrice":      l.StartPrice,
		"reservePrice":    l.ReservePrice,
		"bidIncrement":    l.BidIncrement,
		"buyNowPrice":     l.BuyNowPrice,
		"sortPrice":       l.SortPrice,
		"currentBid":      l.CurrentBid,
		"bidCount":        l.BidCount,
		"moderationNotes": l.ModerationNotes,
		"rejectionReason": l.RejectionReason,
		"media":           l.Media,
		"updatedAt":       l.UpdatedAt,
		"updatedById":     l.UpdatedById,
		"isDeleted":       l.IsDeleted,
		"deletedAt":       l.DeletedAt,
		"deletedById":     l.DeletedById,
	}
}

func (im *listingRepoImpl) Save(c ctx.Ctx, l *listing.Listing) error {
	l.RefreshSortPrice()
	selector := bson.M{"_id": l.Id, "version": l.Version}
	update := bson.M{
		"$set": stateDoc(l),
		"$inc": bson.M{"version": 1},
	}

	err := im.q.Update(c, domain.TableListings, selector, update, false)
	if err == query.ErrNotFound {
		c.WithFields(log.Fields{
			"id":      l.Id,
			"version": l.Version,
		}).Info("listing version conflict")
		return domain.ErrVersionConflict
	} else if err == query.ErrDuplicateKey {
		return domain.NewConflict("Listing", l.Slug)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Update failed")
		return err
	}

	l.Version++
	return nil
}

func (im *listingRepoImpl) IncrementViews(c ctx.Ctx, id string) error {
	selector := bson.M{"_id": id}
	if err := im.q.Update(c, domain.TableListings, selector, bson.M{"$inc": bson.M{"views": 1}}, false); err == query.ErrNotFound {
		return domain.NewNotFound("Listing", id)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.Update failed")
		return err
	}
	return nil
}

// IncrementWatchCount never takes the counter below zero
func (im *listingRepoImpl) IncrementWatchCount(c ctx.Ctx, id string, delta int) error {
	selector := bson.M{"_id": id}
	if delta < 0 {
		selector["watchCount"] = bson.M{"$gte": -delta}
	}
	err := im.q.Update(c, domain.TableListings, selector, bson.M{"$inc": bson.M{"watchCount": delta}}, false)
	if err == query.ErrNotFound && delta < 0 {
		return nil
	} else if err == query.ErrNotFound {
		return domain.NewNotFound("Listing", id)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"id":    id,
			"delta": delta,
		}).Error("q.Update failed")
		return err
	}
	return nil
}

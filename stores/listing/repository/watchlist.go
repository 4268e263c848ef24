package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/service/query"
)

type watchlistRepoImpl struct {
	q query.Mongo
}

func NewWatchlistRepo(q query.Mongo) listing.WatchlistRepo {
	return &watchlistRepoImpl{q}
}

func (im *watchlistRepoImpl) Add(c ctx.Ctx, e *listing.WatchlistEntry) error {
	if err := im.q.Insert(c, domain.TableWatchlists, e); err == query.ErrDuplicateKey {
		return domain.NewConflict("WatchlistItem", e.ListingId)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"userId":    e.UserId,
			"listingId": e.ListingId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *watchlistRepoImpl) Remove(c ctx.Ctx, userId domain.UserId, listingId string) error {
	selector := bson.M{"userId": userId, "listingId": listingId}
	if err := im.q.Remove(c, domain.TableWatchlists, selector); err == query.ErrNotFound {
		return domain.NewNotFound("WatchlistItem", listingId)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *watchlistRepoImpl) FindByUser(c ctx.Ctx, userId domain.UserId, offset, limit int) ([]*listing.WatchlistEntry, error) {
	qry := bson.M{"userId": userId}
	res := []*listing.WatchlistEntry{}
	if err := im.q.Search(c, domain.TableWatchlists, offset, limit, "-createdAt", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *watchlistRepoImpl) CountByUser(c ctx.Ctx, userId domain.UserId) (int, error) {
	qry := bson.M{"userId": userId}
	cnt, err := im.q.Count(c, domain.TableWatchlists, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

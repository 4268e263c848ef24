package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/bid"
	"github.com/mazad/goapi/service/query"
)

type bidRepoImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) bid.Repo {
	return &bidRepoImpl{q}
}

var liveStatuses = bson.M{"$in": bson.A{bid.StatusPlaced, bid.StatusWinning}}

func (im *bidRepoImpl) FindOne(c ctx.Ctx, id string) (*bid.Bid, error) {
	res := bid.Bid{}
	if err := im.q.FindOne(c, domain.TableBids, bson.M{"_id": id}, &res); err == query.ErrNotFound {
		return nil, domain.NewNotFound("Bid", id)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *bidRepoImpl) FindHighest(c ctx.Ctx, listingId string) (*bid.Bid, error) {
	qry := bson.M{"listingId": listingId, "status": liveStatuses}
	res := []*bid.Bid{}
	if err := im.q.Find(c, domain.TableBids, 0, 1, []string{"-amount", "-placedAt"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Find failed")
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res[0], nil
}

func (im *bidRepoImpl) find(c ctx.Ctx, qry bson.M, offset, limit int) ([]*bid.Bid, error) {
	res := []*bid.Bid{}
	if err := im.q.Find(c, domain.TableBids, offset, limit, []string{"-placedAt", "-_id"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Find failed")
		return nil, err
	}
	return res, nil
}

func (im *bidRepoImpl) count(c ctx.Ctx, qry bson.M) (int, error) {
	cnt, err := im.q.Count(c, domain.TableBids, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func listingQuery(listingId string) bson.M {
	return bson.M{"listingId": listingId, "status": bson.M{"$ne": bid.StatusInvalid}}
}

func (im *bidRepoImpl) FindByListing(c ctx.Ctx, listingId string, offset, limit int) ([]*bid.Bid, error) {
	return im.find(c, listingQuery(listingId), offset, limit)
}

func (im *bidRepoImpl) CountByListing(c ctx.Ctx, listingId string) (int, error) {
	return im.count(c, listingQuery(listingId))
}

func (im *bidRepoImpl) FindByBidder(c ctx.Ctx, bidderId domain.UserId, offset, limit int) ([]*bid.Bid, error) {
	return im.find(c, bson.M{"bidderId": bidderId}, offset, limit)
}

func (im *bidRepoImpl) CountByBidder(c ctx.Ctx, bidderId domain.UserId) (int, error) {
	return im.count(c, bson.M{"bidderId": bidderId})
}

func (im *bidRepoImpl) Insert(c ctx.Ctx, b *bid.Bid) error {
	if err := im.q.Insert(c, domain.TableBids, b); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": b.ListingId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *bidRepoImpl) MarkOutbid(c ctx.Ctx, id string, actor domain.UserId, now time.Time) error {
	selector := bson.M{"_id": id, "status": liveStatuses}
	update := bson.M{"$set": bson.M{
		"status":      bid.StatusOutbid,
		"updatedAt":   now,
		"updatedById": actor,
	}}
	if err := im.q.Update(c, domain.TableBids, selector, update, false); err == query.ErrNotFound {
		return domain.ErrVersionConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.Update failed")
		return err
	}
	return nil
}

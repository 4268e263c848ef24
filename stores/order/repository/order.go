package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/database/mongoclient"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/order"
	"github.com/mazad/goapi/service/query"
)

type orderRepoImpl struct {
	q query.Mongo
}

func NewOrderRepo(q query.Mongo) order.Repo {
	return &orderRepoImpl{q}
}

func (im *orderRepoImpl) FindOne(c ctx.Ctx, id string) (*order.Order, error) {
	qry := bson.M{"_id": id}
	res := order.Order{}
	if err := im.q.FindOne(c, domain.TableOrders, qry, &res); err == query.ErrNotFound {
		return nil, domain.NewNotFound("Order", id)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *orderRepoImpl) FindActiveByListing(c ctx.Ctx, listingId string) (*order.Order, error) {
	qry := bson.M{
		"listingId": listingId,
		"status":    bson.M{"$ne": order.StatusCancelled},
	}
	res := order.Order{}
	if err := im.q.FindOne(c, domain.TableOrders, qry, &res); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *orderRepoImpl) makeQuery(c ctx.Ctx, opts ...order.FindAllOptionsFunc) (order.FindAllOptions, bson.M, error) {
	options, err := order.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("order.GetFindAllOptions failed")
		return options, nil, err
	}
	qry, err := mongoclient.MakeBsonM(options)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return options, nil, err
	}
	return options, qry, nil
}

func (im *orderRepoImpl) FindAll(c ctx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error) {
	options, qry, err := im.makeQuery(c, opts...)
	if err != nil {
		return nil, err
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}

	res := []*order.Order{}
	if err := im.q.Find(c, domain.TableOrders, offset, limit, []string{"-createdAt", "-_id"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Find failed")
		return nil, err
	}
	return res, nil
}

func (im *orderRepoImpl) Count(c ctx.Ctx, opts ...order.FindAllOptionsFunc) (int, error) {
	_, qry, err := im.makeQuery(c, opts...)
	if err != nil {
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableOrders, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *orderRepoImpl) Insert(c ctx.Ctx, o *order.Order) error {
	if err := im.q.Insert(c, domain.TableOrders, o); err == query.ErrDuplicateKey {
		return domain.NewConflict("Order", o.ListingId)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": o.ListingId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

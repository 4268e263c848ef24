package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/category"
	"github.com/mazad/goapi/service/query"
)

type categoryRepoImpl struct {
	q query.Mongo
}

func NewCategoryRepo(q query.Mongo) category.Repo {
	return &categoryRepoImpl{q}
}

func (im *categoryRepoImpl) FindAll(c ctx.Ctx) ([]*category.Category, error) {
	res := []*category.Category{}
	if err := im.q.Search(c, domain.TableCategories, 0, 0, "name", bson.M{}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *categoryRepoImpl) findOne(c ctx.Ctx, qry bson.M, key string) (*category.Category, error) {
	res := category.Category{}
	if err := im.q.FindOne(c, domain.TableCategories, qry, &res); err == query.ErrNotFound {
		return nil, domain.NewNotFound("Category", key)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *categoryRepoImpl) FindOne(c ctx.Ctx, id string) (*category.Category, error) {
	return im.findOne(c, bson.M{"_id": id}, id)
}

func (im *categoryRepoImpl) FindBySlug(c ctx.Ctx, slug string) (*category.Category, error) {
	return im.findOne(c, bson.M{"slug": slug}, slug)
}

func (im *categoryRepoImpl) Create(c ctx.Ctx, cat *category.Category) error {
	if err := im.q.Insert(c, domain.TableCategories, cat); err == query.ErrDuplicateKey {
		return domain.NewConflict("Category", cat.Slug)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"slug": cat.Slug,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

package repository

import (
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/database/mongoclient"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/audit"
	"github.com/mazad/goapi/service/query"
)

type auditRepoImpl struct {
	q query.Mongo
}

func NewAuditRepo(q query.Mongo) audit.Repo {
	return &auditRepoImpl{q}
}

func (im *auditRepoImpl) Insert(c ctx.Ctx, e *audit.Entry) error {
	if err := im.q.Insert(c, domain.TableAuditLogs, e); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"action":   e.Action,
			"entityId": e.EntityId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *auditRepoImpl) FindAll(c ctx.Ctx, opts ...audit.FindAllOptionsFunc) ([]*audit.Entry, error) {
	options, err := audit.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("audit.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := mongoclient.MakeBsonM(options)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}

	res := []*audit.Entry{}
	if err := im.q.Find(c, domain.TableAuditLogs, offset, limit, []string{"-createdAt", "-_id"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Find failed")
		return nil, err
	}
	return res, nil
}

func (im *auditRepoImpl) Count(c ctx.Ctx, opts ...audit.FindAllOptionsFunc) (int, error) {
	options, err := audit.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("audit.GetFindAllOptions failed")
		return 0, err
	}

	qry, err := mongoclient.MakeBsonM(options)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableAuditLogs, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

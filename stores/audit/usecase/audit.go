package usecase

import (
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/audit"
)

type impl struct {
	repo audit.Repo
}

func New(repo audit.Repo) audit.Usecase {
	return &impl{repo}
}

func (im *impl) List(c ctx.Ctx, actor domain.Actor, p audit.ListParams) (*domain.Page, error) {
	if !actor.IsAdmin {
		return nil, domain.NewForbidden("Only administrators can read the audit log.")
	}

	page, pageSize, offset := domain.Paging(p.Page, p.PageSize)
	filters := []audit.FindAllOptionsFunc{}
	if p.Area != "" {
		filters = append(filters, audit.WithArea(audit.Area(p.Area)))
	}
	if p.ActorId != "" {
		filters = append(filters, audit.WithActorId(domain.UserId(p.ActorId)))
	}
	if p.EntityId != "" {
		filters = append(filters, audit.WithEntityId(p.EntityId))
	}

	entries, err := im.repo.FindAll(c, append(filters, audit.WithPagination(offset, pageSize))...)
	if err != nil {
		return nil, err
	}
	total, err := im.repo.Count(c, filters...)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Items:    entries,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

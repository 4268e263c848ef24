package usecase

import (
	"strings"
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/audit"
	"github.com/mazad/goapi/domain/category"
	"github.com/mazad/goapi/domain/keys"
	"github.com/mazad/goapi/service/cache"
	"github.com/mazad/goapi/service/query"
)

const treeKey = "tree"

var timeNow = time.Now

type CategoryUseCaseCfg struct {
	Q         query.Mongo
	Repo      category.Repo
	AuditRepo audit.Repo
	Cache     cache.Service
}

type impl struct {
	q         query.Mongo
	repo      category.Repo
	auditRepo audit.Repo
	cache     cache.Service
}

func New(cfg *CategoryUseCaseCfg) category.Usecase {
	return &impl{
		q:         cfg.Q,
		repo:      cfg.Repo,
		auditRepo: cfg.AuditRepo,
		cache:     cfg.Cache,
	}
}

func (im *impl) Tree(c ctx.Ctx) ([]*category.Category, error) {
	all := []*category.Category{}
	if err := im.cache.GetByFunc(c, treeKey, &all, func() (interface{}, error) {
		res, err := im.repo.FindAll(c)
		if err != nil {
			return nil, err
		}
		return &res, nil
	}); err != nil {
		return nil, err
	}
	return category.BuildTree(all), nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*category.Category, error) {
	res := &category.Category{}
	if err := im.cache.GetByFunc(c, keys.RedisKey("id", id), res, func() (interface{}, error) {
		return im.repo.FindOne(c, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) FindBySlug(c ctx.Ctx, slug string) (*category.Category, error) {
	slug = strings.ToLower(slug)
	res := &category.Category{}
	if err := im.cache.GetByFunc(c, keys.RedisKey("slug", slug), res, func() (interface{}, error) {
		return im.repo.FindBySlug(c, slug)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Create(c ctx.Ctx, actor domain.Actor, p category.CreateParams) (*category.Category, error) {
	if !actor.IsAdmin {
		return nil, domain.NewForbidden("Only administrators can manage categories.")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, domain.NewBusinessRule("Category name is required.")
	}
	slug := p.SlugFor()
	if slug == "" {
		return nil, domain.NewBusinessRule("Category slug must contain letters or digits.")
	}
	if p.ParentId != nil {
		if _, err := im.repo.FindOne(c, *p.ParentId); err != nil {
			return nil, err
		}
	}

	now := timeNow()
	cat := &category.Category{
		Id:               domain.NewId(),
		ParentId:         p.ParentId,
		Slug:             slug,
		Name:             name,
		AttributesSchema: p.AttributesSchema,
		CreatedAt:        now,
	}
	if err := im.q.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if err := im.repo.Create(tc, cat); err != nil {
			return err
		}
		return im.auditRepo.Insert(tc, audit.NewEntry(actor.Id, audit.AreaCatalog, "createCategory", cat.Id, "Category "+slug+" created", now))
	}); err != nil {
		return nil, err
	}

	if err := im.cache.Del(c, treeKey); err != nil {
		c.WithField("err", err).Warn("cache.Del failed")
	}
	return cat, nil
}

package category

import (
	"strings"
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

type Category struct {
	Id               string      `json:"id" bson:"_id"`
	ParentId         *string     `json:"parentId" bson:"parentId"`
	Slug             string      `json:"slug" bson:"slug"`
	Name             string      `json:"name" bson:"name"`
	AttributesSchema string      `json:"attributesSchema,omitempty" bson:"attributesSchema,omitempty"`
	Children         []*Category `json:"children,omitempty" bson:"-"`
	CreatedAt        time.Time   `json:"createdAt" bson:"createdAt"`
}

type CreateParams struct {
	ParentId         *string
	Name             string
	Slug             string
	AttributesSchema string
}

// SlugFor returns the explicit slug lowercased or one generated from the name
func (p CreateParams) SlugFor() string {
	if s := strings.TrimSpace(p.Slug); s != "" {
		return strings.ToLower(s)
	}
	return listing.Slugify(p.Name)
}

// BuildTree links children to their parents and returns the roots
func BuildTree(all []*Category) []*Category {
	byId := make(map[string]*Category, len(all))
	for _, c := range all {
		c.Children = nil
		byId[c.Id] = c
	}
	roots := []*Category{}
	for _, c := range all {
		if c.ParentId == nil {
			roots = append(roots, c)
			continue
		}
		if p, ok := byId[*c.ParentId]; ok {
			p.Children = append(p.Children, c)
		} else {
			roots = append(roots, c)
		}
	}
	return roots
}

type Repo interface {
	FindAll(c ctx.Ctx) ([]*Category, error)
	FindOne(c ctx.Ctx, id string) (*Category, error)
	FindBySlug(c ctx.Ctx, slug string) (*Category, error)
	// Create returns domain.ConflictError when the slug is taken
	Create(c ctx.Ctx, cat *Category) error
}

type Usecase interface {
	Tree(c ctx.Ctx) ([]*Category, error)
	FindOne(c ctx.Ctx, id string) (*Category, error)
	FindBySlug(c ctx.Ctx, slug string) (*Category, error)
	Create(c ctx.Ctx, actor domain.Actor, p CreateParams) (*Category, error)
}

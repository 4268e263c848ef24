package audit

import (
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
)

type Area string

const (
	AreaAuctions Area = "Auctions"
	AreaCatalog  Area = "Catalog"
)

// Entry is an append-only record of a privileged action
type Entry struct {
	Id          string        `json:"id" bson:"_id"`
	ActorId     domain.UserId `json:"actorId" bson:"actorId"`
	Area        Area          `json:"area" bson:"area"`
	Action      string        `json:"action" bson:"action"`
	EntityId    string        `json:"entityId" bson:"entityId"`
	Description string        `json:"description" bson:"description"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

func NewEntry(actor domain.UserId, area Area, action, entityId, description string, now time.Time) *Entry {
	return &Entry{
		Id:          domain.NewId(),
		ActorId:     actor,
		Area:        area,
		Action:      action,
		EntityId:    entityId,
		Description: description,
		CreatedAt:   now,
	}
}

type FindAllOptions struct {
	Area     *Area          `bson:"area,omitempty"`
	ActorId  *domain.UserId `bson:"actorId,omitempty"`
	EntityId *string        `bson:"entityId,omitempty"`
	Offset   *int           `bson:"-"`
	Limit    *int           `bson:"-"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithArea(area Area) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Area = &area
		return nil
	}
}

func WithActorId(id domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ActorId = &id
		return nil
	}
}

func WithEntityId(id string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EntityId = &id
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	Insert(c ctx.Ctx, e *Entry) error
	// FindAll is newest first
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Entry, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
}

type ListParams struct {
	Area     string
	ActorId  string
	EntityId string
	Page     int
	PageSize int
}

type Usecase interface {
	List(c ctx.Ctx, actor domain.Actor, p ListParams) (*domain.Page, error)
}

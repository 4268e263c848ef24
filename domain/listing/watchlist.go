package listing

import (
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
)

type WatchlistEntry struct {
	Id        string        `json:"id" bson:"_id"`
	UserId    domain.UserId `json:"userId" bson:"userId"`
	ListingId string        `json:"listingId" bson:"listingId"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

type WatchlistRepo interface {
	// Add returns domain.ErrConflict when the entry already exists
	Add(c ctx.Ctx, e *WatchlistEntry) error
	// Remove returns domain.NotFoundError when there is nothing to remove
	Remove(c ctx.Ctx, userId domain.UserId, listingId string) error
	FindByUser(c ctx.Ctx, userId domain.UserId, offset, limit int) ([]*WatchlistEntry, error)
	CountByUser(c ctx.Ctx, userId domain.UserId) (int, error)
}

package moderation

import (
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

// Usecase is the admin side of the listing lifecycle. Every successful call appends an audit entry.
type Usecase interface {
	Approve(c ctx.Ctx, actor domain.Actor, listingId, notes string) (*listing.Listing, error)
	Reject(c ctx.Ctx, actor domain.Actor, listingId, reason string) (*listing.Listing, error)
	// SetFinalStatus forces Cancelled, Sold or Expired from any state
	SetFinalStatus(c ctx.Ctx, actor domain.Actor, listingId string, target listing.Status, notes string) (*listing.Listing, error)
	// Queue lists listings for admins, pending review first when status is nil
	Queue(c ctx.Ctx, actor domain.Actor, status *listing.Status, page, pageSize int) (*listing.SearchResult, error)
}

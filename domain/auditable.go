package domain

import "time"

// Auditable holds who/when stamps shared by listings, bids and orders
type Auditable struct {
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	CreatedById UserId     `json:"createdById" bson:"createdById"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	UpdatedById UserId     `json:"updatedById,omitempty" bson:"updatedById,omitempty"`
	IsDeleted   bool       `json:"-" bson:"isDeleted"`
	DeletedAt   *time.Time `json:"-" bson:"deletedAt,omitempty"`
	DeletedById UserId     `json:"-" bson:"deletedById,omitempty"`
}

func NewAuditable(actor UserId, now time.Time) Auditable {
	return Auditable{CreatedAt: now, CreatedById: actor}
}

func (a *Auditable) Touch(actor UserId, now time.Time) {
	a.UpdatedAt = &now
	a.UpdatedById = actor
}

func (a *Auditable) MarkDeleted(actor UserId, now time.Time) {
	a.IsDeleted = true
	a.DeletedAt = &now
	a.DeletedById = actor
	a.Touch(actor, now)
}

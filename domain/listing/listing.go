package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pendingReview"
	StatusRejected      Status = "rejected"
	StatusApproved      Status = "approved"
	StatusActive        Status = "active"
	StatusPaused        Status = "paused"
	StatusSold          Status = "sold"
	StatusExpired       Status = "expired"
	StatusCancelled     Status = "cancelled"
)

var AllStatuses = []Status{
	StatusDraft,
	StatusPendingReview,
	StatusRejected,
	StatusApproved,
	StatusActive,
	StatusPaused,
	StatusSold,
	StatusExpired,
	StatusCancelled,
}

func (s Status) IsValid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusSold || s == StatusExpired || s == StatusCancelled
}

type SaleType string

const (
	SaleTypeAuction SaleType = "auction"
	SaleTypeBuyNow  SaleType = "buyNow"
	SaleTypeBoth    SaleType = "both"
)

func (t SaleType) IsValid() bool {
	return t == SaleTypeAuction || t == SaleTypeBuyNow || t == SaleTypeBoth
}

func (t SaleType) AllowsBuyNow() bool {
	return t == SaleTypeBuyNow || t == SaleTypeBoth
}

// DefaultAuctionDuration is applied on publish when no end time was given
const DefaultAuctionDuration = 7 * 24 * time.Hour

type Media struct {
	Id        string `json:"id" bson:"id"`
	Url       string `json:"url" bson:"url"`
	Type      string `json:"type" bson:"type"`
	SortOrder int    `json:"sortOrder" bson:"sortOrder"`
	IsCover   bool   `json:"isCover" bson:"isCover"`
}

type Listing struct {
	Id          string                 `json:"id" bson:"_id"`
	SellerId    domain.UserId          `json:"sellerId" bson:"sellerId"`
	CategoryId  string                 `json:"categoryId" bson:"categoryId"`
	Title       string                 `json:"title" bson:"title"`
	Slug        string                 `json:"slug" bson:"slug"`
	Description string                 `json:"description" bson:"description"`
	Location    string                 `json:"location" bson:"location"`
	Attributes  map[string]interface{} `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Type        SaleType               `json:"type" bson:"type"`
	Status      Status                 `json:"status" bson:"status"`

	StartAt *time.Time `json:"startAt,omitempty" bson:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty" bson:"endAt,omitempty"`

	StartPrice   *decimal.Decimal `json:"startPrice,omitempty" bson:"startPrice,omitempty"`
	ReservePrice *decimal.Decimal `json:"reservePrice,omitempty" bson:"reservePrice,omitempty"`
	BidIncrement *decimal.Decimal `json:"bidIncrement,omitempty" bson:"bidIncrement,omitempty"`
	BuyNowPrice  *decimal.Decimal `json:"buyNowPrice,omitempty" bson:"buyNowPrice,omitempty"`
	// SortPrice backs the price sort: BuyNowPrice, else StartPrice
	SortPrice *decimal.Decimal `json:"-" bson:"sortPrice,omitempty"`

	// maintained in the same transaction as the bid insert
	CurrentBid *decimal.Decimal `json:"currentBid,omitempty" bson:"currentBid,omitempty"`
	BidCount   int              `json:"bidCount" bson:"bidCount"`

	Views      int64 `json:"views" bson:"views"`
	WatchCount int64 `json:"watchCount" bson:"watchCount"`

	ModerationNotes string `json:"moderationNotes,omitempty" bson:"moderationNotes"`
	RejectionReason string `json:"rejectionReason,omitempty" bson:"rejectionReason"`

	Media []Media `json:"media" bson:"media"`

	// optimistic concurrency token, bumped by every versioned write
	Version int64 `json:"version" bson:"version"`

	domain.Auditable `bson:",inline"`
}

func (l *Listing) IsSeller(id domain.UserId) bool {
	return l.SellerId == id
}

// CanManage reports whether actor may run seller commands on the listing
func (l *Listing) CanManage(actor domain.Actor) bool {
	return actor.IsAdmin || l.IsSeller(actor.Id)
}

func (l *Listing) RefreshSortPrice() {
	switch {
	case l.BuyNowPrice != nil:
		l.SortPrice = l.BuyNowPrice
	case l.StartPrice != nil:
		l.SortPrice = l.StartPrice
	default:
		l.SortPrice = nil
	}
}

// HasBids locks the commercial fields
func (l *Listing) HasBids() bool {
	return l.BidCount > 0
}

func (l *Listing) HasEnded(now time.Time) bool {
	return l.EndAt != nil && !l.EndAt.After(now)
}

func (l *Listing) NextMediaSortOrder() int {
	next := 0
	for _, m := range l.Media {
		if m.SortOrder >= next {
			next = m.SortOrder + 1
		}
	}
	return next
}

type FindAllOptions struct {
	Ids         []string
	SellerId    *domain.UserId
	CategoryId  *string
	Type        *SaleType
	Statuses    []Status
	Search      *string
	EndAtBefore *time.Time
	Sort        *string
	Offset      *int
	Limit       *int
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

func WithIds(ids ...string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Ids = ids
		return nil
	}
}

func WithSellerId(id domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SellerId = &id
		return nil
	}
}

func WithCategoryId(id string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CategoryId = &id
		return nil
	}
}

func WithType(t SaleType) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if !t.IsValid() {
			return domain.ErrBadParamInput
		}
		options.Type = &t
		return nil
	}
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		for _, s := range statuses {
			if !s.IsValid() {
				return domain.ErrBadParamInput
			}
		}
		options.Statuses = statuses
		return nil
	}
}

func WithSearch(text string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Search = &text
		return nil
	}
}

func WithEndAtBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndAtBefore = &t
		return nil
	}
}

// public sort keys
const (
	SortNewest    = "-createdAt"
	SortPriceAsc  = "price"
	SortPriceDesc = "-price"
	SortEndAsc    = "endAt"
	SortEndDesc   = "-endAt"
)

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		switch sort {
		case "":
			sort = SortNewest
		case SortNewest, SortPriceAsc, SortPriceDesc, SortEndAsc, SortEndDesc:
		default:
			return domain.ErrBadParamInput
		}
		options.Sort = &sort
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
	// FindOne returns domain.NotFoundError for missing or soft-deleted listings
	FindOne(c ctx.Ctx, id string) (*Listing, error)
	FindBySlug(c ctx.Ctx, slug string) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// Create returns domain.ConflictError when the slug is taken
	Create(c ctx.Ctx, l *Listing) error
	// Save writes l only if the stored version still equals l.Version and bumps it,
	// otherwise domain.ErrVersionConflict is returned and l is left untouched
	Save(c ctx.Ctx, l *Listing) error
	IncrementViews(c ctx.Ctx, id string) error
	IncrementWatchCount(c ctx.Ctx, id string, delta int) error
}

type CreateParams struct {
	CategoryId   string
	Title        string
	Description  string
	Location     string
	Attributes   map[string]interface{}
	Type         SaleType
	StartAt      *time.Time
	EndAt        *time.Time
	StartPrice   *decimal.Decimal
	ReservePrice *decimal.Decimal
	BidIncrement *decimal.Decimal
	BuyNowPrice  *decimal.Decimal
	Media        []MediaParams
}

// UpdateParams only carries the fields to change, nil means unchanged
type UpdateParams struct {
	CategoryId   *string
	Title        *string
	Description  *string
	Location     *string
	Attributes   map[string]interface{}
	Type         *SaleType
	StartAt      *time.Time
	EndAt        *time.Time
	StartPrice   *decimal.Decimal
	ReservePrice *decimal.Decimal
	BidIncrement *decimal.Decimal
	BuyNowPrice  *decimal.Decimal
}

func (p UpdateParams) TouchesCommercialFields() bool {
	return p.CategoryId != nil || p.Title != nil || p.Type != nil ||
		p.StartAt != nil || p.EndAt != nil ||
		p.StartPrice != nil || p.ReservePrice != nil || p.BidIncrement != nil || p.BuyNowPrice != nil
}

type MediaParams struct {
	Url     string
	Type    string
	IsCover bool
	// SortOrder nil appends after the current last item
	SortOrder *int
}

type SearchParams struct {
	Search     string
	CategoryId string
	Type       SaleType
	Sort       string
	Page       int
	PageSize   int
}

type SearchResult struct {
	Items    []*Listing `json:"items"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Total    int        `json:"total"`
}

type Usecase interface {
	Create(c ctx.Ctx, actor domain.Actor, p CreateParams) (*Listing, error)
	Update(c ctx.Ctx, actor domain.Actor, id string, p UpdateParams) (*Listing, error)
	Delete(c ctx.Ctx, actor domain.Actor, id string) error
	FindOne(c ctx.Ctx, id string) (*Listing, error)
	FindBySlug(c ctx.Ctx, slug string) (*Listing, error)
	Search(c ctx.Ctx, p SearchParams) (*SearchResult, error)
	FindMine(c ctx.Ctx, actor domain.Actor, status *Status, page, pageSize int) (*SearchResult, error)

	AddMedia(c ctx.Ctx, actor domain.Actor, id string, media []MediaParams) (*Listing, error)
	RemoveMedia(c ctx.Ctx, actor domain.Actor, id, mediaId string) (*Listing, error)

	Submit(c ctx.Ctx, actor domain.Actor, id string) (*Listing, error)
	Publish(c ctx.Ctx, actor domain.Actor, id string) (*Listing, error)
	Unpublish(c ctx.Ctx, actor domain.Actor, id string) (*Listing, error)
	Extend(c ctx.Ctx, actor domain.Actor, id string, newEndAt time.Time) (*Listing, error)
	SetStatus(c ctx.Ctx, actor domain.Actor, id string, target Status, reason string) (*Listing, error)

	// Transition runs fn against the freshest listing in one transaction and stores the result
	// with an audit entry. A no-op event writes nothing.
	Transition(c ctx.Ctx, actor domain.Actor, id string, fn TransitionFunc) (*Listing, error)

	History(c ctx.Ctx, viewer domain.Actor, id string) ([]*HistoryEvent, error)

	Watch(c ctx.Ctx, actor domain.Actor, id string) error
	Unwatch(c ctx.Ctx, actor domain.Actor, id string) error
	MyWatchlist(c ctx.Ctx, actor domain.Actor, page, pageSize int) (*SearchResult, error)
}

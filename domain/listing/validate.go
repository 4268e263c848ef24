package listing

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/domain"
)

const (
	MaxTitleLength    = 200
	MaxMediaUrlLength = 2048
)

// Slugify lowercases the title, keeps letters, digits, spaces and dashes, and joins words with a single dash
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			b.WriteRune('-')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

// IsMediaType accepts mime types known to mimetype, e.g. image/jpeg or video/mp4
func IsMediaType(t string) bool {
	if t == "" {
		return false
	}
	return mimetype.Lookup(strings.ToLower(t)) != nil
}

func validateMedia(media []MediaParams) error {
	for _, m := range media {
		if strings.TrimSpace(m.Url) == "" {
			return domain.NewBusinessRule("Media url is required.")
		}
		if len(m.Url) > MaxMediaUrlLength {
			return domain.NewBusinessRule("Media url must not exceed %d characters.", MaxMediaUrlLength)
		}
		if !IsMediaType(m.Type) {
			return domain.NewBusinessRule("Media type %q is not supported.", m.Type)
		}
		if m.SortOrder != nil && *m.SortOrder < 0 {
			return domain.NewBusinessRule("Media sort order must not be negative.")
		}
	}
	return nil
}

func negative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func notPositive(d *decimal.Decimal) bool {
	return d != nil && !d.IsPositive()
}

// ValidateCommercial checks the pricing and schedule rules shared by create and update
func ValidateCommercial(t SaleType, startAt, endAt *time.Time, startPrice, reservePrice, bidIncrement, buyNowPrice *decimal.Decimal) error {
	if !t.IsValid() {
		return domain.NewBusinessRule("Unknown listing type %q.", t)
	}
	if negative(startPrice) {
		return domain.NewBusinessRule("Start price must not be negative.")
	}
	if negative(reservePrice) {
		return domain.NewBusinessRule("Reserve price must not be negative.")
	}
	if notPositive(bidIncrement) {
		return domain.NewBusinessRule("Bid increment must be greater than zero.")
	}
	if t != SaleTypeAuction {
		if buyNowPrice == nil {
			return domain.NewBusinessRule("Buy Now price is required for Buy Now listings.")
		}
		if !buyNowPrice.IsPositive() {
			return domain.NewBusinessRule("Buy Now price must be greater than zero.")
		}
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		return domain.NewBusinessRule("End time must be after the start time.")
	}
	return nil
}

func ValidateCreate(p CreateParams) error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return domain.NewBusinessRule("Title is required.")
	}
	if len([]rune(title)) > MaxTitleLength {
		return domain.NewBusinessRule("Title must not exceed %d characters.", MaxTitleLength)
	}
	if Slugify(title) == "" {
		return domain.NewBusinessRule("Title must contain letters or digits.")
	}
	if strings.TrimSpace(p.Description) == "" {
		return domain.NewBusinessRule("Description is required.")
	}
	if p.CategoryId == "" {
		return domain.NewBusinessRule("Category is required.")
	}
	if err := ValidateCommercial(p.Type, p.StartAt, p.EndAt, p.StartPrice, p.ReservePrice, p.BidIncrement, p.BuyNowPrice); err != nil {
		return err
	}
	return validateMedia(p.Media)
}

func ValidateMedia(media []MediaParams) error {
	if len(media) == 0 {
		return domain.NewBusinessRule("At least one media item is required.")
	}
	return validateMedia(media)
}

// New builds a draft listing from validated params
func New(p CreateParams, seller domain.UserId, now time.Time) *Listing {
	l := &Listing{
		Id:           domain.NewId(),
		SellerId:     seller,
		CategoryId:   p.CategoryId,
		Title:        strings.TrimSpace(p.Title),
		Slug:         Slugify(p.Title),
		Description:  p.Description,
		Location:     p.Location,
		Attributes:   p.Attributes,
		Type:         p.Type,
		Status:       StatusDraft,
		StartAt:      p.StartAt,
		EndAt:        p.EndAt,
		StartPrice:   p.StartPrice,
		ReservePrice: p.ReservePrice,
		BidIncrement: p.BidIncrement,
		BuyNowPrice:  p.BuyNowPrice,
		Media:        []Media{},
		Auditable:    domain.NewAuditable(seller, now),
	}
	l.AppendMedia(p.Media)
	return l
}

// AppendMedia keeps a given sort order, the rest continue after the current last item.
// Media stays ordered by SortOrder.
func (l *Listing) AppendMedia(media []MediaParams) {
	next := l.NextMediaSortOrder()
	for _, m := range media {
		order := next
		if m.SortOrder != nil {
			order = *m.SortOrder
		} else {
			next++
		}
		l.Media = append(l.Media, Media{
			Id:        domain.NewId(),
			Url:       m.Url,
			Type:      strings.ToLower(m.Type),
			SortOrder: order,
			IsCover:   m.IsCover,
		})
	}
	sort.SliceStable(l.Media, func(i, j int) bool {
		return l.Media[i].SortOrder < l.Media[j].SortOrder
	})
}

// RemoveMedia returns false when no media item has the id
func (l *Listing) RemoveMedia(mediaId string) bool {
	for i, m := range l.Media {
		if m.Id == mediaId {
			l.Media = append(l.Media[:i:i], l.Media[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyUpdate copies the requested changes onto l. Commercial fields are skipped when
// locked, which is the case once the listing has received a bid.
func (l *Listing) ApplyUpdate(p UpdateParams, locked bool) error {
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return domain.NewBusinessRule("Description is required.")
		}
		l.Description = *p.Description
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Attributes != nil {
		l.Attributes = p.Attributes
	}
	if locked {
		return nil
	}

	next := *l
	if p.CategoryId != nil {
		next.CategoryId = *p.CategoryId
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return domain.NewBusinessRule("Title is required.")
		}
		if len([]rune(title)) > MaxTitleLength {
			return domain.NewBusinessRule("Title must not exceed %d characters.", MaxTitleLength)
		}
		if Slugify(title) == "" {
			return domain.NewBusinessRule("Title must contain letters or digits.")
		}
		next.Title = title
		next.Slug = Slugify(title)
	}
	if p.Type != nil {
		next.Type = *p.Type
	}
	if p.StartAt != nil {
		next.StartAt = p.StartAt
	}
	if p.EndAt != nil {
		next.EndAt = p.EndAt
	}
	if p.StartPrice != nil {
		next.StartPrice = p.StartPrice
	}
	if p.ReservePrice != nil {
		next.ReservePrice = p.ReservePrice
	}
	if p.BidIncrement != nil {
		next.BidIncrement = p.BidIncrement
	}
	if p.BuyNowPrice != nil {
		next.BuyNowPrice = p.BuyNowPrice
	}
	if err := ValidateCommercial(next.Type, next.StartAt, next.EndAt, next.StartPrice, next.ReservePrice, next.BidIncrement, next.BuyNowPrice); err != nil {
		return err
	}
	*l = next
	return nil
}

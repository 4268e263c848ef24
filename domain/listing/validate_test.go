package listing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mazad/goapi/base/ptr"
	"github.com/mazad/goapi/domain"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Toyota Land Cruiser 2018", "toyota-land-cruiser-2018"},
		{"  BMW   M3 -- Competition!! ", "bmw-m3-competition"},
		{"Nissan Patrol (V8) / GCC", "nissan-patrol-v8-gcc"},
		{"تويوتا كامري 2020", "تويوتا-كامري-2020"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Slugify(tt.title), tt.title)
	}
}

func validCreate() CreateParams {
	return CreateParams{
		CategoryId:   "cars",
		Title:        "Lexus LX 570",
		Description:  "Full option, single owner.",
		Type:         SaleTypeBoth,
		StartPrice:   dec("10000"),
		BidIncrement: dec("250"),
		BuyNowPrice:  dec("45000"),
		Media:        []MediaParams{{Url: "https://cdn.example.com/a.jpg", Type: "image/jpeg"}},
	}
}

func TestValidateCreate(t *testing.T) {
	req := require.New(t)
	req.NoError(ValidateCreate(validCreate()))

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		mutate func(p *CreateParams)
		msg    string
	}{
		{"title", func(p *CreateParams) { p.Title = " " }, "Title is required."},
		{"long title", func(p *CreateParams) { p.Title = strings.Repeat("a", MaxTitleLength+1) }, "Title must not exceed 200 characters."},
		{"description", func(p *CreateParams) { p.Description = "" }, "Description is required."},
		{"category", func(p *CreateParams) { p.CategoryId = "" }, "Category is required."},
		{"negative start", func(p *CreateParams) { p.StartPrice = dec("-1") }, "Start price must not be negative."},
		{"negative reserve", func(p *CreateParams) { p.ReservePrice = dec("-0.01") }, "Reserve price must not be negative."},
		{"zero increment", func(p *CreateParams) { p.BidIncrement = dec("0") }, "Bid increment must be greater than zero."},
		{"missing buy now", func(p *CreateParams) { p.BuyNowPrice = nil }, "Buy Now price is required for Buy Now listings."},
		{"zero buy now", func(p *CreateParams) { p.BuyNowPrice = dec("0") }, "Buy Now price must be greater than zero."},
		{"dates", func(p *CreateParams) {
			p.StartAt = &start
			p.EndAt = &start
		}, "End time must be after the start time."},
		{"media url", func(p *CreateParams) { p.Media[0].Url = "" }, "Media url is required."},
		{"media type", func(p *CreateParams) { p.Media[0].Type = "application/x-nope" }, `Media type "application/x-nope" is not supported.`},
	}
	for _, tt := range tests {
		p := validCreate()
		tt.mutate(&p)
		err := ValidateCreate(p)
		req.EqualError(err, tt.msg, tt.name)
		req.True(errors.Is(err, domain.ErrBusinessRule), tt.name)
	}

	p := validCreate()
	p.Type = SaleTypeAuction
	p.BuyNowPrice = nil
	req.NoError(ValidateCreate(p))
}

func TestNewListing(t *testing.T) {
	req := require.New(t)
	p := validCreate()
	p.Media = append(p.Media, MediaParams{Url: "https://cdn.example.com/b.mp4", Type: "VIDEO/MP4"})

	l := New(p, seller, now)
	req.Equal(StatusDraft, l.Status)
	req.Equal("lexus-lx-570", l.Slug)
	req.Equal(seller, l.CreatedById)
	req.Len(l.Media, 2)
	req.Equal(0, l.Media[0].SortOrder)
	req.Equal(1, l.Media[1].SortOrder)
	req.Equal("video/mp4", l.Media[1].Type)

	l.AppendMedia([]MediaParams{{Url: "https://cdn.example.com/c.png", Type: "image/png"}})
	req.Equal(2, l.Media[2].SortOrder)

	req.True(l.RemoveMedia(l.Media[1].Id))
	req.False(l.RemoveMedia("missing"))
	req.Len(l.Media, 2)
	req.Equal(3, l.NextMediaSortOrder())
}

func TestAppendMediaKeepsGivenOrderAndCover(t *testing.T) {
	req := require.New(t)
	l := New(validCreate(), seller, now)

	l.AppendMedia([]MediaParams{
		{Url: "https://cdn.example.com/front.jpg", Type: "image/jpeg", IsCover: true, SortOrder: ptr.Int(0)},
		{Url: "https://cdn.example.com/rear.jpg", Type: "image/jpeg"},
		{Url: "https://cdn.example.com/engine.jpg", Type: "image/jpeg"},
	})
	req.Len(l.Media, 4)
	// ties keep insertion order
	req.Equal("https://cdn.example.com/a.jpg", l.Media[0].Url)
	req.False(l.Media[0].IsCover)
	req.Equal("https://cdn.example.com/front.jpg", l.Media[1].Url)
	req.True(l.Media[1].IsCover)
	req.Equal([]int{0, 0, 1, 2}, []int{l.Media[0].SortOrder, l.Media[1].SortOrder, l.Media[2].SortOrder, l.Media[3].SortOrder})
	req.Equal("https://cdn.example.com/engine.jpg", l.Media[3].Url)

	err := ValidateMedia([]MediaParams{{Url: "https://cdn.example.com/x.jpg", Type: "image/jpeg", SortOrder: ptr.Int(-1)}})
	req.ErrorIs(err, domain.ErrBusinessRule)
}

func TestApplyUpdate(t *testing.T) {
	req := require.New(t)
	l := New(validCreate(), seller, now)

	desc := "Updated description"
	title := "Lexus LX 600"
	req.NoError(l.ApplyUpdate(UpdateParams{Description: &desc, Title: &title, StartPrice: dec("12000")}, false))
	req.Equal("lexus-lx-600", l.Slug)
	req.True(l.StartPrice.Equal(decimal.NewFromInt(12000)))

	// locked listings keep commercial fields but accept descriptive edits
	desc = "Locked edit"
	title = "Something else"
	req.NoError(l.ApplyUpdate(UpdateParams{Description: &desc, Title: &title, StartPrice: dec("1")}, true))
	req.Equal("Locked edit", l.Description)
	req.Equal("Lexus LX 600", l.Title)
	req.True(l.StartPrice.Equal(decimal.NewFromInt(12000)))

	buyNow := SaleTypeBuyNow
	before := *l
	l.BuyNowPrice = nil
	before.BuyNowPrice = nil
	err := l.ApplyUpdate(UpdateParams{Type: &buyNow}, false)
	req.EqualError(err, "Buy Now price is required for Buy Now listings.")
	req.Equal(before.Type, l.Type)
}

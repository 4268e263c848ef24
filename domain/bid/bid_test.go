package bid

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMinimumBid(t *testing.T) {
	req := require.New(t)

	l := &listing.Listing{StartPrice: dec("1000"), BidIncrement: dec("50")}
	req.Equal("1000.00", MinimumBid(l, nil).StringFixed(2))

	// accepted amounts drive the next minimum
	amounts := []string{"1000", "1050", "1200.5", "1250.5"}
	for _, a := range amounts {
		highest := &Bid{Amount: decimal.RequireFromString(a), Status: StatusWinning}
		want := decimal.RequireFromString(a).Add(decimal.NewFromInt(50))
		req.True(MinimumBid(l, highest).Equal(want), a)
	}

	bare := &listing.Listing{}
	req.Equal("1.00", MinimumBid(bare, nil).StringFixed(2))
	req.Equal("11.00", MinimumBid(bare, &Bid{Amount: decimal.NewFromInt(10)}).StringFixed(2))
}

func TestCheckAmount(t *testing.T) {
	req := require.New(t)
	min := decimal.RequireFromString("1050")

	err := CheckAmount(decimal.RequireFromString("1040"), min)
	req.EqualError(err, "Bid amount must be at least 1050.00.")
	req.True(errors.Is(err, domain.ErrBusinessRule))

	req.NoError(CheckAmount(min, min))
	req.NoError(CheckAmount(decimal.RequireFromString("1050.01"), min))
}

func TestCheckBiddable(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		l    listing.Listing
		msg  string
	}{
		{"buy now only", listing.Listing{Type: listing.SaleTypeBuyNow, Status: listing.StatusActive}, "Bidding is not enabled for this listing."},
		{"draft", listing.Listing{Type: listing.SaleTypeAuction, Status: listing.StatusDraft}, "Only active listings accept bids."},
		{"paused", listing.Listing{Type: listing.SaleTypeBoth, Status: listing.StatusPaused}, "Only active listings accept bids."},
		{"ended", listing.Listing{Type: listing.SaleTypeAuction, Status: listing.StatusActive, EndAt: &past}, "The auction has already ended."},
		{"ok", listing.Listing{Type: listing.SaleTypeAuction, Status: listing.StatusActive, EndAt: &future}, ""},
		{"buy now with start price", listing.Listing{Type: listing.SaleTypeBuyNow, Status: listing.StatusActive, StartPrice: dec("10")}, ""},
	}
	for _, tt := range tests {
		err := CheckBiddable(&tt.l, now)
		if tt.msg == "" {
			require.NoError(t, err, tt.name)
			continue
		}
		require.EqualError(t, err, tt.msg, tt.name)
	}
}

func TestProjectMasksBidder(t *testing.T) {
	req := require.New(t)
	seller := domain.UserId("seller")
	bids := []*Bid{
		{Id: "b1", BidderId: "alice", Amount: decimal.NewFromInt(1000), Status: StatusOutbid},
		{Id: "b2", BidderId: "bob", Amount: decimal.NewFromInt(1050), Status: StatusWinning},
	}

	stranger := ProjectAll(bids, domain.Actor{Id: "carol"}, seller)
	for _, v := range stranger {
		req.Nil(v.BidderId)
		req.False(v.IsMine)
	}

	anonymous := ProjectAll(bids, domain.Actor{}, seller)
	for _, v := range anonymous {
		req.Nil(v.BidderId)
	}

	own := ProjectAll(bids, domain.Actor{Id: "alice"}, seller)
	req.Equal(domain.UserId("alice"), *own[0].BidderId)
	req.True(own[0].IsMine)
	req.Nil(own[1].BidderId)

	for _, viewer := range []domain.Actor{{Id: seller}, {Id: "admin", IsAdmin: true}} {
		for _, v := range ProjectAll(bids, viewer, seller) {
			req.NotNil(v.BidderId)
		}
	}
}

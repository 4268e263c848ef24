package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/domain"
)

type HistoryEventType string

const (
	HistoryCreated HistoryEventType = "created"
	HistoryUpdated HistoryEventType = "updated"
	HistoryStatus  HistoryEventType = "status"
	HistoryBid     HistoryEventType = "bid"
)

// HistoryEvent is one row of the public listing timeline.
// ActorId is nil when the viewer is not allowed to see who acted.
type HistoryEvent struct {
	Type        HistoryEventType `json:"type"`
	OccurredAt  time.Time        `json:"occurredAt"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	ActorId     *domain.UserId   `json:"actorId"`
}

package listing

import (
	"time"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/ptr"
	"github.com/mazad/goapi/domain"
)

type Command string

const (
	CommandSubmit    Command = "submit"
	CommandPublish   Command = "publish"
	CommandUnpublish Command = "unpublish"
	CommandExtend    Command = "extend"
	CommandSetStatus Command = "setStatus"
	CommandApprove   Command = "approve"
	CommandReject    Command = "reject"
	CommandFinalize  Command = "finalize"
)

// Event describes an applied transition
type Event struct {
	Command Command       `json:"command"`
	From    Status        `json:"from"`
	To      Status        `json:"to"`
	ActorId domain.UserId `json:"actorId"`
	At      time.Time     `json:"at"`
	Note    string        `json:"note,omitempty"`
}

func (e Event) Changed() bool {
	return e.From != e.To
}

// IsNoop reports whether the transition left the listing as it was. Extend and finalize
// always record, finalizing into the current status still stores notes and an audit entry.
// The zero Event is a no-op.
func (e Event) IsNoop() bool {
	switch e.Command {
	case CommandExtend, CommandFinalize:
		return false
	}
	return !e.Changed()
}

// Describe is the human readable line stored in the audit log
func (e Event) Describe() string {
	if e.Command == CommandExtend {
		return "End time extended to " + e.Note
	}
	var line string
	switch {
	case e.To == StatusSold:
		line = "Listing sold"
	default:
		line = "Status changed from " + string(e.From) + " to " + string(e.To)
	}
	if e.Note != "" {
		line += ": " + e.Note
	}
	return line
}

// TransitionFunc applies a command to a loaded listing. It runs inside the write transaction,
// so tc may be used for further writes that must commit together with the listing.
type TransitionFunc func(tc ctx.Ctx, l Listing, now time.Time) (Listing, Event, error)

type statusSet map[Status]struct{}

func newStatusSet(statuses ...Status) statusSet {
	s := statusSet{}
	for _, st := range statuses {
		s[st] = struct{}{}
	}
	return s
}

func (s statusSet) has(st Status) bool {
	_, ok := s[st]
	return ok
}

// commandSources lists the statuses each lifecycle command may start from
var commandSources = map[Command]statusSet{
	CommandSubmit:    newStatusSet(StatusDraft, StatusRejected),
	CommandPublish:   newStatusSet(StatusApproved, StatusPaused, StatusActive),
	CommandUnpublish: newStatusSet(StatusActive, StatusApproved),
	CommandExtend:    newStatusSet(StatusActive, StatusApproved),
	CommandApprove:   newStatusSet(StatusPendingReview),
	CommandReject:    newStatusSet(StatusPendingReview),
}

// sellerTargets maps a seller requested status to the statuses it may be reached from
var sellerTargets = map[Status]statusSet{
	StatusPaused:    newStatusSet(StatusActive),
	StatusActive:    newStatusSet(StatusPaused, StatusApproved),
	StatusCancelled: newStatusSet(StatusDraft, StatusPendingReview, StatusActive),
}

var (
	platformManaged   = newStatusSet(StatusSold, StatusExpired)
	moderationManaged = newStatusSet(StatusPendingReview, StatusApproved, StatusRejected)
)

// Allowed reports whether cmd may run against a listing in status from.
// CommandSetStatus and CommandFinalize depend on the target, use CanSetStatus and IsFinalStatus.
func Allowed(cmd Command, from Status) bool {
	sources, ok := commandSources[cmd]
	return ok && sources.has(from)
}

func IsFinalStatus(s Status) bool {
	return s.IsTerminal()
}

// CanSetStatus applies the seller facing status table, nil means allowed
func CanSetStatus(from, target Status) error {
	if from == target {
		return nil
	}
	if platformManaged.has(target) {
		return domain.NewBusinessRule("The requested status change is managed by the platform.")
	}
	if moderationManaged.has(target) {
		return domain.NewBusinessRule("The requested status is managed by moderation.")
	}
	sources, ok := sellerTargets[target]
	if !ok {
		return domain.NewBusinessRule("Listings cannot be moved back to %s.", target)
	}
	if sources.has(from) {
		return nil
	}
	switch target {
	case StatusPaused:
		return domain.NewBusinessRule("Only active listings can be paused.")
	case StatusActive:
		return domain.NewBusinessRule("Only paused or approved listings can be activated by the seller.")
	default:
		return domain.NewBusinessRule("Only draft, pending review or active listings can be cancelled.")
	}
}

func newEvent(cmd Command, from, to Status, actor domain.UserId, now time.Time, note string) Event {
	return Event{Command: cmd, From: from, To: to, ActorId: actor, At: now, Note: note}
}

// Submit moves a draft or rejected listing into the review queue
func Submit(l Listing, actor domain.UserId, now time.Time) (Listing, Event, error) {
	if !Allowed(CommandSubmit, l.Status) {
		return l, Event{}, domain.NewBusinessRule("Only draft or rejected listings can be submitted for review.")
	}
	from := l.Status
	l.Status = StatusPendingReview
	l.RejectionReason = ""
	l.Touch(actor, now)
	return l, newEvent(CommandSubmit, from, l.Status, actor, now, ""), nil
}

func activate(l *Listing, now time.Time) error {
	if l.HasEnded(now) {
		return domain.NewBusinessRule("Listing end time has already passed.")
	}
	if l.StartAt == nil {
		l.StartAt = ptr.Time(now)
	}
	if l.EndAt == nil {
		l.EndAt = ptr.Time(now.Add(DefaultAuctionDuration))
	}
	l.Status = StatusActive
	return nil
}

// Publish makes an approved or paused listing live, it is a no-op on active listings
func Publish(l Listing, actor domain.UserId, now time.Time) (Listing, Event, error) {
	from := l.Status
	if from == StatusActive {
		return l, newEvent(CommandPublish, from, from, actor, now, ""), nil
	}
	if from == StatusPendingReview || from == StatusRejected {
		return l, Event{}, domain.NewBusinessRule("Listing must be approved before it can be published.")
	}
	if !Allowed(CommandPublish, from) {
		return l, Event{}, domain.NewBusinessRule("Only approved or paused listings can be published.")
	}
	if err := activate(&l, now); err != nil {
		return l, Event{}, err
	}
	l.Touch(actor, now)
	return l, newEvent(CommandPublish, from, l.Status, actor, now, ""), nil
}

func Unpublish(l Listing, actor domain.UserId, now time.Time) (Listing, Event, error) {
	if !Allowed(CommandUnpublish, l.Status) {
		return l, Event{}, domain.NewBusinessRule("Only active or approved listings can be unpublished.")
	}
	from := l.Status
	l.Status = StatusPaused
	l.Touch(actor, now)
	return l, newEvent(CommandUnpublish, from, l.Status, actor, now, ""), nil
}

func Extend(l Listing, actor domain.UserId, newEndAt, now time.Time) (Listing, Event, error) {
	if !Allowed(CommandExtend, l.Status) {
		return l, Event{}, domain.NewBusinessRule("Only active or approved listings can be extended.")
	}
	if l.EndAt != nil && !newEndAt.After(*l.EndAt) {
		return l, Event{}, domain.NewBusinessRule("New end time must be later than the current end time.")
	}
	if !newEndAt.After(now) {
		return l, Event{}, domain.NewBusinessRule("New end time must be in the future.")
	}
	if l.StartAt != nil && !newEndAt.After(*l.StartAt) {
		return l, Event{}, domain.NewBusinessRule("New end time must be later than the start time.")
	}
	end := newEndAt
	l.EndAt = &end
	l.Touch(actor, now)
	return l, newEvent(CommandExtend, l.Status, l.Status, actor, now, end.UTC().Format(time.RFC3339)), nil
}

// SetStatus is the seller facing generic status change
func SetStatus(l Listing, actor domain.UserId, target Status, reason string, now time.Time) (Listing, Event, error) {
	from := l.Status
	if !target.IsValid() {
		return l, Event{}, domain.NewBusinessRule("Unknown listing status %q.", target)
	}
	if err := CanSetStatus(from, target); err != nil {
		return l, Event{}, err
	}
	if from == target {
		return l, newEvent(CommandSetStatus, from, from, actor, now, ""), nil
	}
	switch target {
	case StatusActive:
		if err := activate(&l, now); err != nil {
			return l, Event{}, err
		}
	case StatusCancelled:
		l.Status = target
		l.ModerationNotes = reason
	default:
		l.Status = target
	}
	l.Touch(actor, now)
	return l, newEvent(CommandSetStatus, from, l.Status, actor, now, reason), nil
}

// Approve goes live immediately unless the start time is still ahead
func Approve(l Listing, actor domain.UserId, notes string, now time.Time) (Listing, Event, error) {
	if !Allowed(CommandApprove, l.Status) {
		return l, Event{}, domain.NewBusinessRule("Only listings pending review can be approved.")
	}
	from := l.Status
	if l.StartAt != nil && l.StartAt.After(now) {
		l.Status = StatusApproved
	} else {
		l.Status = StatusActive
	}
	l.ModerationNotes = notes
	l.RejectionReason = ""
	l.Touch(actor, now)
	return l, newEvent(CommandApprove, from, l.Status, actor, now, notes), nil
}

func Reject(l Listing, actor domain.UserId, reason string, now time.Time) (Listing, Event, error) {
	if !Allowed(CommandReject, l.Status) {
		return l, Event{}, domain.NewBusinessRule("Only listings pending review can be rejected.")
	}
	if reason == "" {
		return l, Event{}, domain.NewBusinessRule("A rejection reason is required.")
	}
	from := l.Status
	l.Status = StatusRejected
	l.RejectionReason = reason
	l.Touch(actor, now)
	return l, newEvent(CommandReject, from, l.Status, actor, now, reason), nil
}

// Finalize forces a terminal status from any state
func Finalize(l Listing, actor domain.UserId, target Status, notes string, now time.Time) (Listing, Event, error) {
	if !IsFinalStatus(target) {
		return l, Event{}, domain.NewBusinessRule("Only finalization statuses can be set via this endpoint.")
	}
	from := l.Status
	l.Status = target
	l.ModerationNotes = notes
	l.Touch(actor, now)
	return l, newEvent(CommandFinalize, from, target, actor, now, notes), nil
}

// MarkSold is used by the purchase finalizer
func MarkSold(l Listing, actor domain.UserId, now time.Time) (Listing, Event, error) {
	if l.Status != StatusActive {
		return l, Event{}, domain.NewBusinessRule("Only active listings can be purchased immediately.")
	}
	from := l.Status
	l.Status = StatusSold
	l.Touch(actor, now)
	return l, newEvent(CommandFinalize, from, l.Status, actor, now, "buy now"), nil
}

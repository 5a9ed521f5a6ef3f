package announcements

import (
	"time"

	"swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/validation"
)

const msgAvailabilityNeedsApproval = "Availability can only be changed for approved announcements"

// Transition is a requested change of the moderation or availability
// status. Nil fields keep the current value.
type Transition struct {
	ModerStatus     *string
	AvailableStatus *string
}

func (t Transition) Empty() bool {
	return t.ModerStatus == nil && t.AvailableStatus == nil
}

// against drops requested values that already match the announcement.
func (t Transition) against(a Announcement) Transition {
	if t.ModerStatus != nil && *t.ModerStatus == a.ModerStatus {
		t.ModerStatus = nil
	}
	if t.AvailableStatus != nil && *t.AvailableStatus == a.AvailableStatus {
		t.AvailableStatus = nil
	}
	return t
}

// ApplyTransition moves an announcement between moderation states. Only
// admins transition, and any state is reachable from any other. Values equal
// to the current ones are ignored for every actor.
// Availability is orthogonal but may only change when the resulting
// moderation state is approved. It reports whether either status changed.
func ApplyTransition(a *Announcement, actor identity.Principal, t Transition) (bool, error) {
	t = t.against(*a)
	if t.Empty() {
		return false, nil
	}
	if !actor.IsAdmin() {
		return false, ErrForbidden
	}

	var v validation.Error
	if t.ModerStatus != nil {
		v.Choice("moder_status", *t.ModerStatus, ModerationPending, ModerationApproved, ModerationRejected)
	}
	if t.AvailableStatus != nil {
		v.Choice("available_status", *t.AvailableStatus, Available, Unavailable)
	}
	if err := v.Err(); err != nil {
		return false, err
	}

	next := a.ModerStatus
	if t.ModerStatus != nil {
		next = *t.ModerStatus
	}
	if t.AvailableStatus != nil && next != ModerationApproved {
		return false, validation.New("available_status", msgAvailabilityNeedsApproval)
	}

	a.ModerStatus = next
	if t.AvailableStatus != nil {
		a.AvailableStatus = *t.AvailableStatus
	}
	return true, nil
}

// ModeratedEvent describes a moderation change.
type ModeratedEvent struct {
	AnnouncementID  int64     `json:"announcement_id"`
	AdvertiserID    int64     `json:"advertiser_id"`
	PreviousStatus  string    `json:"previous_status"`
	ModerStatus     string    `json:"moder_status"`
	AvailableStatus string    `json:"available_status"`
	ModeratorID     int64     `json:"moderator_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

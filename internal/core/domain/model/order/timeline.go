package order

import (
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"

	"hyperlocal/internal/pkg/errs"
)

// TimelineEntry is one immutable record in an order's audit history.
// Exactly one entry is appended per committed status change, in the same
// conditional write as the change itself, so the timeline read in commit
// order is the authoritative transition sequence of the order.
//
// Fields are exported for JSON persistence; entries are never mutated
// after construction.
type TimelineEntry struct {
	Status      Status         `json:"status"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	ActorRole   kernel.Role    `json:"actor_role"`
	ActorID     string         `json:"actor_id"`
	ActorName   string         `json:"actor_name"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// timelineCaption holds the deterministic action label and description
// derived from a target status.
type timelineCaption struct {
	action      string
	description string
}

// timelineCaptions is the derivation table from target status to the
// action/description recorded in the appended entry. It is exhaustive over
// every reachable status; NewTimelineEntry fails on anything outside it.
var timelineCaptions = map[Status]timelineCaption{
	StatusPending:   {"Order Placed", "Order has been placed and is awaiting confirmation"},
	StatusAccepted:  {"Order Accepted", "Order has been accepted by the shop"},
	StatusAssigned:  {"Courier Assigned", "A courier has been assigned to the order"},
	StatusReady:     {"Order Ready", "Order is ready for pickup"},
	StatusPickedUp:  {"Order Picked Up", "Courier has picked up the order"},
	StatusDelivered: {"Order Delivered", "Order has been delivered to the buyer"},
	StatusRejected:  {"Order Rejected", "Order has been rejected by the shop"},
}

// NewTimelineEntry builds the audit entry for a transition into the given
// status, recording who acted and when. The action and description are
// derived deterministically from the target status.
func NewTimelineEntry(status Status, actor kernel.Actor, metadata map[string]any) (TimelineEntry, error) {
	if err := actor.Validate(); err != nil {
		return TimelineEntry{}, err
	}

	caption, ok := timelineCaptions[status]
	if !ok {
		return TimelineEntry{}, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("no timeline caption defined for status %q", string(status)))
	}

	return TimelineEntry{
		Status:      status,
		Action:      caption.action,
		Description: caption.description,
		Timestamp:   time.Now().UTC(),
		ActorRole:   actor.Role(),
		ActorID:     actor.ID().String(),
		ActorName:   actor.Name(),
		Metadata:    metadata,
	}, nil
}

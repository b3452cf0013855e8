// Package delivery is the per-message status state machine. States advance
// only along sending -> sent -> delivered -> read; the single permitted skip
// is sent -> read, for clients that render without a delivered hop.
package delivery

import (
	"intrachat/internal/common"
)

// Initial returns the status a freshly appended message starts in. Callers
// that want an optimistic client echo start in sending and promote to sent
// themselves.
func Initial(optimistic bool) common.DeliveryStatus {
	if optimistic {
		return common.StatusSending
	}
	return common.StatusSent
}

// Validate checks a requested transition. isSender tells whether the caller
// authored the message. Re-asserting the current status is a valid no-op;
// callers may skip the write when current == next.
func Validate(current, next common.DeliveryStatus, isSender bool) error {
	if !next.IsValid() {
		return common.Ef(common.KindInvalidArgument, "status", "unknown delivery status")
	}
	if !current.IsValid() {
		return common.Ef(common.KindInvariantViolation, "status", "message has an unknown delivery status")
	}

	if next == current {
		return nil // idempotent re-assertion
	}

	if next.Rank() < current.Rank() {
		return common.Ef(common.KindInvalidTransition, "status",
			"cannot move status backwards from "+string(current)+" to "+string(next))
	}

	switch {
	case current == common.StatusSending && next == common.StatusSent:
		if !isSender {
			return common.Ef(common.KindForbidden, "status", "only the sender can promote a sending message")
		}
	case current == common.StatusSent && next == common.StatusDelivered,
		current == common.StatusDelivered && next == common.StatusRead,
		current == common.StatusSent && next == common.StatusRead: // skip permitted
		if isSender {
			return common.Ef(common.KindForbidden, "status", "the sender cannot mark its own message "+string(next))
		}
	default:
		// any other skip, e.g. sending -> delivered
		return common.Ef(common.KindInvalidTransition, "status",
			"cannot skip from "+string(current)+" to "+string(next))
	}

	return nil
}

package common

import (
	"context"
)

// Broadcaster delivers envelopes to every live session in a user's mailbox.
// The in-process registry implements it; a cross-process pub-sub fabric can
// substitute behind the same interface.
type Broadcaster interface {
	Broadcast(userID string, env Envelope)
	BroadcastMany(userIDs []string, env Envelope)
}

// ChatEventPublisher is the facade's view of the notification dispatcher.
type ChatEventPublisher interface {
	PublishChatEvent(ctx context.Context, participants []string, event ChatEvent)
}

// AttachListener is invoked by the session registry when a user's session
// attaches; the dispatcher uses it for notification catch-up delivery.
type AttachListener interface {
	OnAttach(userID string)
}

// UserDirectory resolves display names. The profile component owns the data;
// the core only snapshots a name at send time.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Authority answers staff/superuser checks. Role data is owned by the
// profile component.
type Authority interface {
	IsStaff(ctx context.Context, userID string) (bool, error)
}

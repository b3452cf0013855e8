package notif

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"intrachat/internal/common"
	"intrachat/internal/dbmysql"
)

// SystemNotification is the inbound payload for publish-system.
type SystemNotification struct {
	Title    string          `json:"title,omitempty"`
	Body     string          `json:"body"`
	Severity common.Severity `json:"severity,omitempty"`
	Link     string          `json:"link,omitempty"`
}

// Dispatcher persists system notifications and fans envelopes out to live
// mailboxes. Persistence comes first: a recipient with no live session gets
// the notification replayed on the next attach.
type Dispatcher struct {
	repo        dbmysql.NotificationRepository
	broadcaster common.Broadcaster

	catchUpJobs chan string
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewDispatcher(repo dbmysql.NotificationRepository, broadcaster common.Broadcaster, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		repo:        repo,
		broadcaster: broadcaster,
		catchUpJobs: make(chan string, 256),
		ctx:         ctx,
		cancel:      cancel,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.processCatchUps()
	}

	return d
}

// PublishSystem persists the notification, then broadcasts it. Broadcast is
// best-effort; the durable record carries the delivery guarantee.
func (d *Dispatcher) PublishSystem(ctx context.Context, recipient string, payload SystemNotification) (*dbmysql.Notification, error) {
	if recipient == "" {
		return nil, common.Ef(common.KindInvalidArgument, "user_id", "recipient is required")
	}
	if payload.Body == "" {
		return nil, common.Ef(common.KindInvalidArgument, "body", "notification body is required")
	}
	severity := payload.Severity
	if severity == "" {
		severity = common.SeverityInfo
	}
	if !severity.IsValid() {
		return nil, common.Ef(common.KindInvalidArgument, "severity", "unknown severity")
	}

	notification := &dbmysql.Notification{
		ID:        uuid.New().String(),
		UserID:    recipient,
		Title:     payload.Title,
		Body:      payload.Body,
		Severity:  severity,
		Link:      payload.Link,
		CreatedAt: time.Now().UTC(),
	}

	if err := d.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	d.broadcaster.Broadcast(recipient, common.NewEnvelope(common.EnvelopeSystemMessage, notification.AsSystemMessage()))

	return notification, nil
}

// PublishChatEvent pushes a chat-event envelope to every listed participant.
// The facade has already excluded the actor.
func (d *Dispatcher) PublishChatEvent(ctx context.Context, participants []string, event common.ChatEvent) {
	if len(participants) == 0 {
		return
	}
	d.broadcaster.BroadcastMany(participants, common.NewEnvelope(common.EnvelopeChatEvent, event))
}

// OnAttach queues catch-up delivery for a freshly attached mailbox.
func (d *Dispatcher) OnAttach(userID string) {
	select {
	case d.catchUpJobs <- userID:
	case <-d.ctx.Done():
	default:
		log.Printf("catch-up queue full, dropping catch-up for user %s", userID)
	}
}

func (d *Dispatcher) processCatchUps() {
	defer d.wg.Done()

	for {
		select {
		case userID := <-d.catchUpJobs:
			d.catchUp(userID)
		case <-d.ctx.Done():
			return
		}
	}
}

// catchUp replays unread notifications oldest-first on the recipient's
// mailbox.
func (d *Dispatcher) catchUp(userID string) {
	notifications, err := d.repo.Unread(d.ctx, userID)
	if err != nil {
		log.Printf("catch-up read failed for user %s: %v", userID, err)
		return
	}

	for _, n := range notifications {
		d.broadcaster.Broadcast(userID, common.NewEnvelope(common.EnvelopeSystemMessage, n.AsSystemMessage()))
	}
}

func (d *Dispatcher) Shutdown() {
	d.cancel()
	d.wg.Wait()
	log.Println("notification dispatcher shutdown complete")
}

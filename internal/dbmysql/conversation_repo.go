package dbmysql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"intrachat/internal/common"
)

// ConversationRepository is the durable mapping of conversation records and
// their membership.
type ConversationRepository interface {
	OpenDirect(ctx context.Context, a, b string) (*Conversation, error)
	OpenGroup(ctx context.Context, creator string, members []string, name, description string) (*Conversation, error)
	ByID(ctx context.Context, id string) (*Conversation, error)
	ListForUser(ctx context.Context, userID string, includeArchived bool) ([]*Conversation, error)
	AddMember(ctx context.Context, conversationID, userID string) error
	RemoveMember(ctx context.Context, conversationID, userID string) error
	SetArchived(ctx context.Context, conversationID, userID string, archived bool) error
	Touch(ctx context.Context, conversationID string, messageID uint, at time.Time) error
}

type conversationRepo struct {
	db    *gorm.DB
	locks *ConvLocks
}

func NewConversationRepository(db *gorm.DB, locks *ConvLocks) ConversationRepository {
	return &conversationRepo{db: db, locks: locks}
}

// DirectConversationID derives the unordered-pair-unique id of a direct
// conversation.
func DirectConversationID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("direct:%s_%s", a, b)
}

func (r *conversationRepo) OpenDirect(ctx context.Context, a, b string) (*Conversation, error) {
	if a == b {
		return nil, common.Ef(common.KindInvalidArgument, "participants", "a direct conversation needs two distinct users")
	}

	id := DirectConversationID(a, b)

	l := r.locks.Get(id)
	l.Lock()
	defer l.Unlock()

	conv, err := r.fetch(ctx, id)
	if err == nil {
		return conv, nil
	}
	if common.KindOf(err) != common.KindNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	conv = &Conversation{
		ID:           id,
		Kind:         common.DirectConversation,
		Active:       true,
		LastActivity: now,
		CreatedAt:    now,
		Participants: []Participant{
			{ConversationID: id, UserID: a},
			{ConversationID: id, UserID: b},
		},
	}

	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		// concurrent creation from another process converges on the
		// existing record
		if existing, ferr := r.fetch(ctx, id); ferr == nil {
			return existing, nil
		}
		return nil, common.Wrap(common.KindUnavailable, err, "failed to create direct conversation")
	}

	return conv, nil
}

func (r *conversationRepo) OpenGroup(ctx context.Context, creator string, members []string, name, description string) (*Conversation, error) {
	roster := dedupe(append([]string{creator}, members...))
	if len(roster) < 2 {
		return nil, common.Ef(common.KindInvalidArgument, "members", "a group needs at least 2 members")
	}

	id := "group:" + uuid.New().String()
	now := time.Now().UTC()

	conv := &Conversation{
		ID:           id,
		Kind:         common.GroupConversation,
		Name:         name,
		Description:  description,
		CreatedBy:    creator,
		Active:       true,
		LastActivity: now,
		CreatedAt:    now,
	}
	for _, userID := range roster {
		conv.Participants = append(conv.Participants, Participant{ConversationID: id, UserID: userID})
	}

	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to create group conversation")
	}

	return conv, nil
}

func (r *conversationRepo) ByID(ctx context.Context, id string) (*Conversation, error) {
	return r.fetch(ctx, id)
}

func (r *conversationRepo) fetch(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).Preload("Participants").Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.Ef(common.KindNotFound, "conversation", "conversation not found: "+id)
		}
		return nil, common.Wrap(common.KindUnavailable, err, "failed to get conversation")
	}
	return &conv, nil
}

func (r *conversationRepo) ListForUser(ctx context.Context, userID string, includeArchived bool) ([]*Conversation, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN participants ON participants.conversation_id = conversations.id").
		Where("participants.user_id = ?", userID)
	if !includeArchived {
		q = q.Where("participants.archived = ?", false)
	}

	var convs []*Conversation
	err := q.Preload("Participants").
		Order("conversations.last_activity DESC").
		Find(&convs).Error
	if err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to list conversations")
	}
	return convs, nil
}

func (r *conversationRepo) AddMember(ctx context.Context, conversationID, userID string) error {
	l := r.locks.Get(conversationID)
	l.Lock()
	defer l.Unlock()

	conv, err := r.fetch(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv.Kind != common.GroupConversation {
		return common.Ef(common.KindInvariantViolation, "kind", "membership of a direct conversation is immutable")
	}
	if conv.HasParticipant(userID) {
		return nil // idempotent
	}

	p := &Participant{ConversationID: conversationID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return common.Wrap(common.KindUnavailable, err, "failed to add member")
	}
	return nil
}

func (r *conversationRepo) RemoveMember(ctx context.Context, conversationID, userID string) error {
	l := r.locks.Get(conversationID)
	l.Lock()
	defer l.Unlock()

	conv, err := r.fetch(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv.Kind != common.GroupConversation {
		return common.Ef(common.KindInvariantViolation, "kind", "membership of a direct conversation is immutable")
	}
	if !conv.HasParticipant(userID) {
		return nil // idempotent
	}
	if len(conv.Participants) <= 2 {
		return common.Ef(common.KindInvariantViolation, "members", "a group cannot shrink below 2 members")
	}

	err = r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Delete(&Participant{}).Error
	if err != nil {
		return common.Wrap(common.KindUnavailable, err, "failed to remove member")
	}
	return nil
}

func (r *conversationRepo) SetArchived(ctx context.Context, conversationID, userID string, archived bool) error {
	l := r.locks.Get(conversationID)
	l.Lock()
	defer l.Unlock()

	updates := map[string]interface{}{"archived": archived}
	if archived {
		now := time.Now().UTC()
		updates["archived_at"] = &now
	} else {
		updates["archived_at"] = nil
	}

	result := r.db.WithContext(ctx).
		Model(&Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Updates(updates)
	if result.Error != nil {
		return common.Wrap(common.KindUnavailable, result.Error, "failed to update archive flag")
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 affected rows for a same-values UPDATE, so
		// re-asserting the current flag looks identical to a missing row.
		var count int64
		r.db.WithContext(ctx).
			Model(&Participant{}).
			Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			Count(&count)
		if count == 0 {
			return common.Ef(common.KindNotFound, "conversation", "no such conversation for user")
		}
		return nil // idempotent
	}
	return nil
}

// Touch advances the last-message / last-activity projection. The projection
// is monotonic: a message older than the current last-activity is refused.
func (r *conversationRepo) Touch(ctx context.Context, conversationID string, messageID uint, at time.Time) error {
	l := r.locks.Get(conversationID)
	l.Lock()
	defer l.Unlock()

	return touchLocked(r.db.WithContext(ctx), conversationID, messageID, at)
}

// touchLocked commits the projection in a single durable write; callers hold
// the conversation writer lock.
func touchLocked(tx *gorm.DB, conversationID string, messageID uint, at time.Time) error {
	result := tx.Model(&Conversation{}).
		Where("id = ? AND last_activity <= ?", conversationID, at).
		Updates(map[string]interface{}{
			"last_message_id": messageID,
			"last_activity":   at,
		})
	if result.Error != nil {
		return common.Wrap(common.KindUnavailable, result.Error, "failed to touch conversation")
	}
	if result.RowsAffected == 0 {
		var count int64
		tx.Model(&Conversation{}).Where("id = ?", conversationID).Count(&count)
		if count == 0 {
			return common.Ef(common.KindNotFound, "conversation", "conversation not found: "+conversationID)
		}
		return common.Ef(common.KindInvariantViolation, "last_activity", "message is older than the current last activity")
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

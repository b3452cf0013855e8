package dbmysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"intrachat/internal/common"
)

// MessageRepository is the append-mostly ordered message log.
type MessageRepository interface {
	// Append assigns Seq and a per-conversation monotonic CreatedAt, persists
	// the message and commits the conversation projection in the same
	// transaction.
	Append(ctx context.Context, msg *Message) (*Message, error)
	// Page returns messages descending by (created_at, seq). A beforeSeq of 0
	// starts from the newest; a fixed cursor is stable under concurrent
	// appends.
	Page(ctx context.Context, conversationID string, beforeSeq int64, limit int) ([]*Message, error)
	// PageOffset serves the numbered-page HTTP contract.
	PageOffset(ctx context.Context, conversationID string, offset, limit int) ([]*Message, error)
	ByID(ctx context.Context, id uint) (*Message, error)
	ByIDs(ctx context.Context, ids []uint) ([]*Message, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, conversationID, query string, limit int) ([]*Message, error)
	UpdateStatus(ctx context.Context, id uint, status common.DeliveryStatus) error
	// MarkDelivered advances every sent message not authored by userID to
	// delivered. Returns the number of rows touched.
	MarkDelivered(ctx context.Context, conversationID, userID string) (int64, error)
	UnreadCount(ctx context.Context, conversationID, userID string) (int64, error)
}

type messageRepo struct {
	db    *gorm.DB
	locks *ConvLocks
}

func NewMessageRepository(db *gorm.DB, locks *ConvLocks) MessageRepository {
	return &messageRepo{db: db, locks: locks}
}

func (r *messageRepo) Append(ctx context.Context, msg *Message) (*Message, error) {
	l := r.locks.Get(msg.ConversationID)
	l.Lock()
	defer l.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv Conversation
		if err := tx.Select("id", "last_activity").Where("id = ?", msg.ConversationID).First(&conv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.Ef(common.KindNotFound, "conversation", "conversation not found: "+msg.ConversationID)
			}
			return common.Wrap(common.KindUnavailable, err, "failed to read conversation")
		}

		var lastSeq int64
		if err := tx.Model(&Message{}).
			Where("conversation_id = ?", msg.ConversationID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&lastSeq).Error; err != nil {
			return common.Wrap(common.KindUnavailable, err, "failed to read message sequence")
		}

		// monotonic clock scoped to the conversation: never behind the
		// projection, ties broken by Seq
		now := time.Now().UTC()
		if now.Before(conv.LastActivity) {
			now = conv.LastActivity
		}

		msg.Seq = lastSeq + 1
		msg.CreatedAt = now
		msg.UpdatedAt = now

		if err := tx.Create(msg).Error; err != nil {
			return common.Wrap(common.KindUnavailable, err, "failed to append message")
		}

		return touchLocked(tx, msg.ConversationID, msg.ID, msg.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (r *messageRepo) Page(ctx context.Context, conversationID string, beforeSeq int64, limit int) ([]*Message, error) {
	q := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if beforeSeq > 0 {
		q = q.Where("seq < ?", beforeSeq)
	}

	var messages []*Message
	err := q.Order("seq DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to page messages")
	}
	return messages, nil
}

func (r *messageRepo) PageOffset(ctx context.Context, conversationID string, offset, limit int) ([]*Message, error) {
	var messages []*Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("seq DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to page messages")
	}
	return messages, nil
}

func (r *messageRepo) ByID(ctx context.Context, id uint) (*Message, error) {
	var msg Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.Ef(common.KindNotFound, "message", "message not found")
		}
		return nil, common.Wrap(common.KindUnavailable, err, "failed to get message")
	}
	return &msg, nil
}

func (r *messageRepo) ByIDs(ctx context.Context, ids []uint) ([]*Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var messages []*Message
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&messages).Error
	if err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to get messages")
	}
	return messages, nil
}

func (r *messageRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Message{})
	if result.Error != nil {
		return common.Wrap(common.KindUnavailable, result.Error, "failed to delete message")
	}
	if result.RowsAffected == 0 {
		return common.Ef(common.KindNotFound, "message", "message not found")
	}
	return nil
}

func (r *messageRepo) Search(ctx context.Context, conversationID, query string, limit int) ([]*Message, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var messages []*Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND LOWER(content) LIKE ?", conversationID, pattern).
		Order("seq DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, common.Wrap(common.KindUnavailable, err, "failed to search messages")
	}
	return messages, nil
}

func (r *messageRepo) UpdateStatus(ctx context.Context, id uint, status common.DeliveryStatus) error {
	result := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return common.Wrap(common.KindUnavailable, result.Error, "failed to update message status")
	}
	if result.RowsAffected == 0 {
		return common.Ef(common.KindNotFound, "message", "message not found")
	}
	return nil
}

func (r *messageRepo) MarkDelivered(ctx context.Context, conversationID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND status = ?",
			conversationID, userID, common.StatusSent).
		Update("status", common.StatusDelivered)
	if result.Error != nil {
		return 0, common.Wrap(common.KindUnavailable, result.Error, "failed to mark messages delivered")
	}
	return result.RowsAffected, nil
}

func (r *messageRepo) UnreadCount(ctx context.Context, conversationID, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND status IN ?",
			conversationID, userID, []common.DeliveryStatus{common.StatusSent, common.StatusDelivered}).
		Count(&count).Error
	if err != nil {
		return 0, common.Wrap(common.KindUnavailable, err, "failed to count unread messages")
	}
	return count, nil
}

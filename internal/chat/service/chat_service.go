package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"intrachat/internal/chat/delivery"
	"intrachat/internal/common"
	"intrachat/internal/config"
	"intrachat/internal/dbmysql"
)

// ConversationSummary is one entry of a conversation listing.
type ConversationSummary struct {
	ID           string                  `json:"id"`
	Kind         common.ConversationKind `json:"kind"`
	Name         string                  `json:"name"`
	Description  string                  `json:"description,omitempty"`
	Participants []string                `json:"participants"`
	LastMessage  *MessageView            `json:"last_message,omitempty"`
	LastActivity time.Time               `json:"last_activity"`
	UnreadCount  int64                   `json:"unread_count"`
	Archived     bool                    `json:"archived"`
	CreatedAt    time.Time               `json:"created_at"`
}

// ReplyPreview is the snapshot of a replied-to message shown inline.
type ReplyPreview struct {
	ID         uint   `json:"id"`
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	Content    string `json:"content,omitempty"`
	Deleted    bool   `json:"deleted"`
}

// MessageView is the outbound shape of a message.
type MessageView struct {
	ID             uint                    `json:"id"`
	ConversationID string                  `json:"conversation_id"`
	SenderID       string                  `json:"sender_id"`
	SenderName     string                  `json:"sender_name"`
	Kind           common.MessageKind      `json:"kind"`
	Content        string                  `json:"content"`
	Status         common.DeliveryStatus   `json:"status"`
	ReplyTo        *ReplyPreview           `json:"reply_to,omitempty"`
	Forwarded      bool                    `json:"forwarded,omitempty"`
	ForwardedFrom  string                  `json:"forwarded_from,omitempty"`
	Edited         bool                    `json:"edited,omitempty"`
	EditedAt       *time.Time              `json:"edited_at,omitempty"`
	Metadata       *common.MessageMetadata `json:"metadata,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ChatService is the synchronous facade over the messaging core.
type ChatService interface {
	ListConversations(ctx context.Context, caller string, includeArchived bool) ([]*ConversationSummary, error)
	CreateConversation(ctx context.Context, caller string, kind common.ConversationKind, participantIDs []string, name, description string) (*ConversationSummary, error)
	GetMessages(ctx context.Context, caller, conversationID string, page, pageSize int) ([]*MessageView, error)
	PostMessage(ctx context.Context, caller, conversationID string, payload *common.MessagePayload) (*MessageView, error)
	UpdateMessageStatus(ctx context.Context, caller string, messageID uint, status common.DeliveryStatus) error
	DeleteMessage(ctx context.Context, caller string, messageID uint) error
	SearchMessages(ctx context.Context, caller, conversationID, query string) ([]*MessageView, error)
	AddMember(ctx context.Context, caller, conversationID, userID string) error
	RemoveMember(ctx context.Context, caller, conversationID, userID string) error
	ArchiveChat(ctx context.Context, caller, otherUser string) error
	UnarchiveChat(ctx context.Context, caller, otherUser string) error
}

type chatService struct {
	convRepo  dbmysql.ConversationRepository
	msgRepo   dbmysql.MessageRepository
	publisher common.ChatEventPublisher
	directory common.UserDirectory
	authority common.Authority
	cfg       *config.Config
}

// Constructor used in DI/wire
func NewChatService(
	convRepo dbmysql.ConversationRepository,
	msgRepo dbmysql.MessageRepository,
	publisher common.ChatEventPublisher,
	directory common.UserDirectory,
	authority common.Authority,
	cfg *config.Config,
) ChatService {
	return &chatService{
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		publisher: publisher,
		directory: directory,
		authority: authority,
		cfg:       cfg,
	}
}

func (s *chatService) ListConversations(ctx context.Context, caller string, includeArchived bool) ([]*ConversationSummary, error) {
	if caller == common.Anonymous {
		return nil, common.E(common.KindUnauthorized, "authentication required")
	}

	convs, err := s.convRepo.ListForUser(ctx, caller, includeArchived)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary, err := s.summarize(ctx, conv, caller)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *chatService) summarize(ctx context.Context, conv *dbmysql.Conversation, caller string) (*ConversationSummary, error) {
	summary := &ConversationSummary{
		ID:           conv.ID,
		Kind:         conv.Kind,
		Name:         conv.Name,
		Description:  conv.Description,
		Participants: conv.ParticipantIDs(),
		LastActivity: conv.LastActivity,
		CreatedAt:    conv.CreatedAt,
	}
	sort.Strings(summary.Participants)

	// a direct conversation is displayed under the other participant's name
	if conv.Kind == common.DirectConversation {
		for _, p := range conv.Participants {
			if p.UserID != caller {
				summary.Name = s.displayName(ctx, p.UserID)
			}
		}
	}

	for _, p := range conv.Participants {
		if p.UserID == caller {
			summary.Archived = p.Archived
		}
	}

	unread, err := s.msgRepo.UnreadCount(ctx, conv.ID, caller)
	if err != nil {
		return nil, err
	}
	summary.UnreadCount = unread

	if conv.LastMessageID != nil {
		last, err := s.msgRepo.ByID(ctx, *conv.LastMessageID)
		if err == nil {
			summary.LastMessage = s.view(last, nil)
		} else if common.KindOf(err) != common.KindNotFound {
			return nil, err
		}
	}

	return summary, nil
}

func (s *chatService) CreateConversation(ctx context.Context, caller string, kind common.ConversationKind, participantIDs []string, name, description string) (*ConversationSummary, error) {
	if caller == common.Anonymous {
		return nil, common.E(common.KindUnauthorized, "authentication required")
	}

	others := make([]string, 0, len(participantIDs))
	for _, id := range participantIDs {
		if id != caller && id != "" {
			others = append(others, id)
		}
	}

	var conv *dbmysql.Conversation
	var err error

	switch kind {
	case common.DirectConversation:
		if len(others) != 1 {
			return nil, common.Ef(common.KindInvalidArgument, "participant_ids", "a direct conversation needs exactly one other participant")
		}
		conv, err = s.convRepo.OpenDirect(ctx, caller, others[0])
	case common.GroupConversation:
		if len(others) < 2 {
			return nil, common.Ef(common.KindInvalidArgument, "participant_ids", "a group conversation needs at least two other participants")
		}
		conv, err = s.convRepo.OpenGroup(ctx, caller, others, name, description)
	default:
		return nil, common.Ef(common.KindInvalidArgument, "type", "unknown conversation type")
	}
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, conv, caller)
}

func (s *chatService) GetMessages(ctx context.Context, caller, conversationID string, page, pageSize int) ([]*MessageView, error) {
	conv, err := s.authorize(ctx, caller, conversationID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	pageSize = s.clampPageSize(pageSize)

	// fetching a page is the reader's acknowledgement: everything still in
	// sent from other senders moves to delivered
	if _, err := s.msgRepo.MarkDelivered(ctx, conv.ID, caller); err != nil {
		return nil, err
	}

	messages, err := s.msgRepo.PageOffset(ctx, conv.ID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, messages)
	if err != nil {
		return nil, err
	}

	// reversed for display, oldest first
	for i, j := 0, len(views)-1; i < j; i, j = i+1, j-1 {
		views[i], views[j] = views[j], views[i]
	}
	return views, nil
}

func (s *chatService) PostMessage(ctx context.Context, caller, conversationID string, payload *common.MessagePayload) (*MessageView, error) {
	conv, err := s.authorize(ctx, caller, conversationID)
	if err != nil {
		return nil, err
	}

	if err := common.ValidatePayload(payload); err != nil {
		return nil, err
	}

	msg := &dbmysql.Message{
		ConversationID: conv.ID,
		SenderID:       caller,
		SenderName:     s.displayName(ctx, caller),
		Kind:           payload.Kind,
		Content:        payload.Content,
		Status:         delivery.Initial(payload.Sending),
		Forwarded:      payload.Forwarded,
		ForwardedFrom:  payload.ForwardedFrom,
	}

	if meta := common.NormalizeMetadata(payload.Kind, payload.Metadata); meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, common.Wrap(common.KindInternal, err, "failed to encode metadata")
		}
		msg.Metadata = datatypes.JSON(raw)
	}

	// an unresolvable reply-to id is dropped silently, the message still goes out
	if payload.ReplyToID != nil {
		if parent, err := s.msgRepo.ByID(ctx, *payload.ReplyToID); err == nil && parent.ConversationID == conv.ID {
			msg.ReplyToID = payload.ReplyToID
		}
	}

	saved, err := s.msgRepo.Append(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishChatEvent(ctx, rosterExcept(conv, caller), common.ChatEvent{
		ConversationID: conv.ID,
		Event:          common.MessagePostedEvent,
		ActorID:        caller,
		MessageID:      saved.ID,
	})

	views, err := s.views(ctx, []*dbmysql.Message{saved})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *chatService) UpdateMessageStatus(ctx context.Context, caller string, messageID uint, status common.DeliveryStatus) error {
	msg, err := s.msgRepo.ByID(ctx, messageID)
	if err != nil {
		return err
	}
	conv, err := s.authorize(ctx, caller, msg.ConversationID)
	if err != nil {
		return err
	}

	isSender := msg.SenderID == caller
	if err := delivery.Validate(msg.Status, status, isSender); err != nil {
		return err
	}
	if msg.Status == status {
		return nil // idempotent no-op
	}

	if err := s.msgRepo.UpdateStatus(ctx, messageID, status); err != nil {
		return err
	}

	s.publisher.PublishChatEvent(ctx, rosterExcept(conv, caller), common.ChatEvent{
		ConversationID: conv.ID,
		Event:          common.MessageStatusChangedEvent,
		ActorID:        caller,
		MessageID:      messageID,
		Status:         status,
	})
	return nil
}

func (s *chatService) DeleteMessage(ctx context.Context, caller string, messageID uint) error {
	msg, err := s.msgRepo.ByID(ctx, messageID)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, caller, msg.ConversationID); err != nil {
		return err
	}

	if msg.SenderID != caller {
		staff, err := s.authority.IsStaff(ctx, caller)
		if err != nil {
			log.Printf("staff check failed for %s: %v", caller, err)
		}
		if !staff {
			return common.E(common.KindForbidden, "only the sender or staff can delete a message")
		}
	}

	return s.msgRepo.Delete(ctx, messageID)
}

func (s *chatService) SearchMessages(ctx context.Context, caller, conversationID, query string) ([]*MessageView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, common.Ef(common.KindInvalidArgument, "q", "search query cannot be empty")
	}
	conv, err := s.authorize(ctx, caller, conversationID)
	if err != nil {
		return nil, err
	}

	limit := s.cfg.Chat.SearchLimit
	if limit <= 0 {
		limit = 50
	}

	messages, err := s.msgRepo.Search(ctx, conv.ID, query, limit)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, messages)
}

func (s *chatService) AddMember(ctx context.Context, caller, conversationID, userID string) error {
	conv, err := s.authorize(ctx, caller, conversationID)
	if err != nil {
		return err
	}
	if conv.HasParticipant(userID) {
		return nil // idempotent
	}

	if err := s.convRepo.AddMember(ctx, conversationID, userID); err != nil {
		return err
	}

	s.publisher.PublishChatEvent(ctx, append(rosterExcept(conv, caller), userID), common.ChatEvent{
		ConversationID: conv.ID,
		Event:          common.MemberAddedEvent,
		ActorID:        caller,
		UserID:         userID,
	})
	return nil
}

func (s *chatService) RemoveMember(ctx context.Context, caller, conversationID, userID string) error {
	conv, err := s.authorize(ctx, caller, conversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(userID) {
		return nil // idempotent
	}

	if err := s.convRepo.RemoveMember(ctx, conversationID, userID); err != nil {
		return err
	}

	s.publisher.PublishChatEvent(ctx, rosterExcept(conv, caller), common.ChatEvent{
		ConversationID: conv.ID,
		Event:          common.MemberRemovedEvent,
		ActorID:        caller,
		UserID:         userID,
	})
	return nil
}

func (s *chatService) ArchiveChat(ctx context.Context, caller, otherUser string) error {
	return s.setArchived(ctx, caller, otherUser, true)
}

func (s *chatService) UnarchiveChat(ctx context.Context, caller, otherUser string) error {
	return s.setArchived(ctx, caller, otherUser, false)
}

func (s *chatService) setArchived(ctx context.Context, caller, otherUser string, archived bool) error {
	if caller == common.Anonymous {
		return common.E(common.KindUnauthorized, "authentication required")
	}
	if otherUser == "" {
		return common.Ef(common.KindInvalidArgument, "user_id", "user id is required")
	}

	id := dbmysql.DirectConversationID(caller, otherUser)
	return s.convRepo.SetArchived(ctx, id, caller, archived)
}

// authorize loads the conversation and checks the caller's membership.
func (s *chatService) authorize(ctx context.Context, caller, conversationID string) (*dbmysql.Conversation, error) {
	if caller == common.Anonymous {
		return nil, common.E(common.KindUnauthorized, "authentication required")
	}
	if conversationID == "" {
		return nil, common.Ef(common.KindInvalidArgument, "conversation_id", "conversation id is required")
	}

	conv, err := s.convRepo.ByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(caller) {
		return nil, common.E(common.KindForbidden, "caller is not a participant of this conversation")
	}
	return conv, nil
}

func (s *chatService) clampPageSize(pageSize int) int {
	def := s.cfg.Chat.DefaultPageSize
	if def <= 0 {
		def = 50
	}
	max := s.cfg.Chat.MaxPageSize
	if max <= 0 {
		max = 200
	}

	if pageSize <= 0 {
		return def
	}
	if pageSize > max {
		return max
	}
	return pageSize
}

func (s *chatService) displayName(ctx context.Context, userID string) string {
	name, err := s.directory.DisplayName(ctx, userID)
	if err != nil || name == "" {
		return userID
	}
	return name
}

// views converts log records, resolving reply previews in one batch. A
// dangling reply-to shows up as "reply to deleted message".
func (s *chatService) views(ctx context.Context, messages []*dbmysql.Message) ([]*MessageView, error) {
	var replyIDs []uint
	for _, m := range messages {
		if m.ReplyToID != nil {
			replyIDs = append(replyIDs, *m.ReplyToID)
		}
	}

	parents := make(map[uint]*dbmysql.Message, len(replyIDs))
	if len(replyIDs) > 0 {
		found, err := s.msgRepo.ByIDs(ctx, replyIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			parents[p.ID] = p
		}
	}

	views := make([]*MessageView, 0, len(messages))
	for _, m := range messages {
		var preview *ReplyPreview
		if m.ReplyToID != nil {
			if parent, ok := parents[*m.ReplyToID]; ok {
				preview = &ReplyPreview{
					ID:         parent.ID,
					SenderID:   parent.SenderID,
					SenderName: parent.SenderName,
					Content:    parent.Content,
				}
			} else {
				preview = &ReplyPreview{
					ID:      *m.ReplyToID,
					Content: "reply to deleted message",
					Deleted: true,
				}
			}
		}
		views = append(views, s.view(m, preview))
	}
	return views, nil
}

func (s *chatService) view(m *dbmysql.Message, reply *ReplyPreview) *MessageView {
	v := &MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		SenderName:     m.SenderName,
		Kind:           m.Kind,
		Content:        m.Content,
		Status:         m.Status,
		ReplyTo:        reply,
		Forwarded:      m.Forwarded,
		ForwardedFrom:  m.ForwardedFrom,
		Edited:         m.Edited,
		EditedAt:       m.EditedAt,
		CreatedAt:      m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		var meta common.MessageMetadata
		if err := json.Unmarshal(m.Metadata, &meta); err == nil {
			v.Metadata = &meta
		}
	}
	return v
}

func rosterExcept(conv *dbmysql.Conversation, userID string) []string {
	out := make([]string, 0, len(conv.Participants))
	for _, p := range conv.Participants {
		if p.UserID != userID {
			out = append(out, p.UserID)
		}
	}
	return out
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"intrachat/internal/chat/service"
	"intrachat/internal/chat/service/mocks"
	"intrachat/internal/common"
	"intrachat/internal/config"
	"intrachat/internal/dbmysql"
)

type serviceFixture struct {
	convRepo  *mocks.MockConversationRepository
	msgRepo   *mocks.MockMessageRepository
	publisher *mocks.MockChatEventPublisher
	directory *mocks.MockUserDirectory
	authority *mocks.MockAuthority
	service   service.ChatService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		convRepo:  mocks.NewMockConversationRepository(ctrl),
		msgRepo:   mocks.NewMockMessageRepository(ctrl),
		publisher: mocks.NewMockChatEventPublisher(ctrl),
		directory: mocks.NewMockUserDirectory(ctrl),
		authority: mocks.NewMockAuthority(ctrl),
	}
	f.service = service.NewChatService(f.convRepo, f.msgRepo, f.publisher, f.directory, f.authority, &config.Config{
		Chat: config.ChatConfig{
			DefaultPageSize: 50,
			MaxPageSize:     200,
			SearchLimit:     50,
		},
	})
	return f
}

func directConv(a, b string) *dbmysql.Conversation {
	id := dbmysql.DirectConversationID(a, b)
	return &dbmysql.Conversation{
		ID:   id,
		Kind: common.DirectConversation,
		Participants: []dbmysql.Participant{
			{ConversationID: id, UserID: a},
			{ConversationID: id, UserID: b},
		},
	}
}

func groupConv(id string, members ...string) *dbmysql.Conversation {
	conv := &dbmysql.Conversation{
		ID:   id,
		Kind: common.GroupConversation,
		Name: "ops",
	}
	for _, m := range members {
		conv.Participants = append(conv.Participants, dbmysql.Participant{ConversationID: id, UserID: m})
	}
	return conv
}

func TestCreateConversation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		caller       string
		kind         common.ConversationKind
		participants []string
		mockSetup    func(f *serviceFixture)
		wantKind     common.Kind
		wantID       string
	}{
		{
			name:         "direct conversation",
			caller:       "alice",
			kind:         common.DirectConversation,
			participants: []string{"bob"},
			mockSetup: func(f *serviceFixture) {
				conv := directConv("alice", "bob")
				f.convRepo.EXPECT().OpenDirect(gomock.Any(), "alice", "bob").Return(conv, nil)
				f.directory.EXPECT().DisplayName(gomock.Any(), "bob").Return("Bob B", nil)
				f.msgRepo.EXPECT().UnreadCount(gomock.Any(), conv.ID, "alice").Return(int64(0), nil)
			},
			wantID: "direct:alice_bob",
		},
		{
			name:         "direct conversation ignores duplicate self id",
			caller:       "alice",
			kind:         common.DirectConversation,
			participants: []string{"alice", "bob"},
			mockSetup: func(f *serviceFixture) {
				conv := directConv("alice", "bob")
				f.convRepo.EXPECT().OpenDirect(gomock.Any(), "alice", "bob").Return(conv, nil)
				f.directory.EXPECT().DisplayName(gomock.Any(), "bob").Return("Bob B", nil)
				f.msgRepo.EXPECT().UnreadCount(gomock.Any(), conv.ID, "alice").Return(int64(0), nil)
			},
			wantID: "direct:alice_bob",
		},
		{
			name:         "direct conversation needs exactly one other",
			caller:       "alice",
			kind:         common.DirectConversation,
			participants: []string{"bob", "carol"},
			mockSetup:    func(f *serviceFixture) {},
			wantKind:     common.KindInvalidArgument,
		},
		{
			name:         "group conversation",
			caller:       "alice",
			kind:         common.GroupConversation,
			participants: []string{"bob", "carol"},
			mockSetup: func(f *serviceFixture) {
				conv := groupConv("group:g1", "alice", "bob", "carol")
				f.convRepo.EXPECT().
					OpenGroup(gomock.Any(), "alice", []string{"bob", "carol"}, "ops", "").
					Return(conv, nil)
				f.msgRepo.EXPECT().UnreadCount(gomock.Any(), "group:g1", "alice").Return(int64(0), nil)
			},
			wantID: "group:g1",
		},
		{
			name:         "group conversation needs at least two others",
			caller:       "alice",
			kind:         common.GroupConversation,
			participants: []string{"bob"},
			mockSetup:    func(f *serviceFixture) {},
			wantKind:     common.KindInvalidArgument,
		},
		{
			name:         "unknown conversation type",
			caller:       "alice",
			kind:         common.ConversationKind("broadcast"),
			participants: []string{"bob"},
			mockSetup:    func(f *serviceFixture) {},
			wantKind:     common.KindInvalidArgument,
		},
		{
			name:         "anonymous caller",
			caller:       common.Anonymous,
			kind:         common.DirectConversation,
			participants: []string{"bob"},
			mockSetup:    func(f *serviceFixture) {},
			wantKind:     common.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			tt.mockSetup(f)

			summary, err := f.service.CreateConversation(ctx, tt.caller, tt.kind, tt.participants, "ops", "")

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, common.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, summary.ID)
		})
	}
}

func TestCreateConversation_DirectNamedAfterOtherParticipant(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")

	f.convRepo.EXPECT().OpenDirect(gomock.Any(), "alice", "bob").Return(conv, nil)
	f.directory.EXPECT().DisplayName(gomock.Any(), "bob").Return("Bob Billingsley", nil)
	f.msgRepo.EXPECT().UnreadCount(gomock.Any(), conv.ID, "alice").Return(int64(3), nil)

	summary, err := f.service.CreateConversation(context.Background(), "alice", common.DirectConversation, []string{"bob"}, "", "")

	require.NoError(t, err)
	assert.Equal(t, "Bob Billingsley", summary.Name)
	assert.Equal(t, int64(3), summary.UnreadCount)
	assert.Equal(t, []string{"alice", "bob"}, summary.Participants)
}

func TestListConversations_ReportsCallerArchiveFlag(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")
	conv.Participants[0].Archived = true // alice archived her copy

	f.convRepo.EXPECT().ListForUser(gomock.Any(), "alice", true).Return([]*dbmysql.Conversation{conv}, nil)
	f.directory.EXPECT().DisplayName(gomock.Any(), "bob").Return("bob", nil)
	f.msgRepo.EXPECT().UnreadCount(gomock.Any(), conv.ID, "alice").Return(int64(0), nil)

	summaries, err := f.service.ListConversations(context.Background(), "alice", true)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].Archived)
}

func TestGetMessages(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")

	newest := &dbmysql.Message{ID: 2, ConversationID: conv.ID, SenderID: "bob", Content: "second", Status: common.StatusDelivered, CreatedAt: time.Now()}
	oldest := &dbmysql.Message{ID: 1, ConversationID: conv.ID, SenderID: "bob", Content: "first", Status: common.StatusDelivered, CreatedAt: time.Now().Add(-time.Minute)}

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
	// fetching a page acknowledges delivery first
	f.msgRepo.EXPECT().MarkDelivered(gomock.Any(), conv.ID, "alice").Return(int64(2), nil)
	f.msgRepo.EXPECT().PageOffset(gomock.Any(), conv.ID, 0, 50).Return([]*dbmysql.Message{newest, oldest}, nil)

	views, err := f.service.GetMessages(context.Background(), "alice", conv.ID, 1, 0)

	require.NoError(t, err)
	require.Len(t, views, 2)
	// oldest first for display
	assert.Equal(t, uint(1), views[0].ID)
	assert.Equal(t, uint(2), views[1].ID)
}

func TestGetMessages_ClampsPageSize(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
	f.msgRepo.EXPECT().MarkDelivered(gomock.Any(), conv.ID, "alice").Return(int64(0), nil)
	f.msgRepo.EXPECT().PageOffset(gomock.Any(), conv.ID, 200, 200).Return(nil, nil)

	_, err := f.service.GetMessages(context.Background(), "alice", conv.ID, 2, 5000)

	assert.NoError(t, err)
}

func TestGetMessages_NonParticipant(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)

	_, err := f.service.GetMessages(context.Background(), "mallory", conv.ID, 1, 50)

	assert.Error(t, err)
	assert.Equal(t, common.KindForbidden, common.KindOf(err))
}

func TestPostMessage(t *testing.T) {
	f := newServiceFixture(t)
	conv := groupConv("group:g1", "alice", "bob", "carol")

	f.convRepo.EXPECT().ByID(gomock.Any(), "group:g1").Return(conv, nil)
	f.directory.EXPECT().DisplayName(gomock.Any(), "alice").Return("Alice A", nil)
	f.msgRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *dbmysql.Message) (*dbmysql.Message, error) {
			assert.Equal(t, "group:g1", msg.ConversationID)
			assert.Equal(t, "alice", msg.SenderID)
			assert.Equal(t, "Alice A", msg.SenderName)
			assert.Equal(t, common.StatusSent, msg.Status)
			saved := *msg
			saved.ID = 7
			saved.Seq = 1
			return &saved, nil
		})
	// fan-out excludes the actor
	f.publisher.EXPECT().
		PublishChatEvent(gomock.Any(), []string{"bob", "carol"}, gomock.Any()).
		Do(func(_ context.Context, _ []string, event common.ChatEvent) {
			assert.Equal(t, common.MessagePostedEvent, event.Event)
			assert.Equal(t, "alice", event.ActorID)
			assert.Equal(t, uint(7), event.MessageID)
		})

	view, err := f.service.PostMessage(context.Background(), "alice", "group:g1", &common.MessagePayload{
		Kind:    common.TextMessage,
		Content: "standup in 5",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), view.ID)
	assert.Equal(t, "standup in 5", view.Content)
}

func TestPostMessage_InvalidPayload(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)

	_, err := f.service.PostMessage(context.Background(), "alice", conv.ID, &common.MessagePayload{
		Kind:    common.TextMessage,
		Content: "   ",
	})

	assert.Error(t, err)
	assert.Equal(t, common.KindInvalidArgument, common.KindOf(err))
}

func TestPostMessage_DropsUnresolvableReplyTo(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")
	replyTo := uint(99)

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
	f.directory.EXPECT().DisplayName(gomock.Any(), "alice").Return("alice", nil)
	f.msgRepo.EXPECT().ByID(gomock.Any(), replyTo).Return(nil, common.E(common.KindNotFound, "message not found"))
	f.msgRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *dbmysql.Message) (*dbmysql.Message, error) {
			assert.Nil(t, msg.ReplyToID) // dropped, message still goes out
			saved := *msg
			saved.ID = 8
			return &saved, nil
		})
	f.publisher.EXPECT().PublishChatEvent(gomock.Any(), gomock.Any(), gomock.Any())

	view, err := f.service.PostMessage(context.Background(), "alice", conv.ID, &common.MessagePayload{
		Kind:      common.TextMessage,
		Content:   "still sent",
		ReplyToID: &replyTo,
	})

	require.NoError(t, err)
	assert.Nil(t, view.ReplyTo)
}

func TestPostMessage_ReplyToDeletedMessagePreview(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")
	parentID := uint(4)

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
	f.directory.EXPECT().DisplayName(gomock.Any(), "alice").Return("alice", nil)
	// the parent is alive at post time
	f.msgRepo.EXPECT().ByID(gomock.Any(), parentID).
		Return(&dbmysql.Message{ID: parentID, ConversationID: conv.ID, SenderID: "bob", Content: "original"}, nil)
	f.msgRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *dbmysql.Message) (*dbmysql.Message, error) {
			require.NotNil(t, msg.ReplyToID)
			saved := *msg
			saved.ID = 9
			return &saved, nil
		})
	f.publisher.EXPECT().PublishChatEvent(gomock.Any(), gomock.Any(), gomock.Any())
	// but deleted by the time views resolve the preview batch
	f.msgRepo.EXPECT().ByIDs(gomock.Any(), []uint{parentID}).Return(nil, nil)

	view, err := f.service.PostMessage(context.Background(), "alice", conv.ID, &common.MessagePayload{
		Kind:      common.TextMessage,
		Content:   "replying",
		ReplyToID: &parentID,
	})

	require.NoError(t, err)
	require.NotNil(t, view.ReplyTo)
	assert.True(t, view.ReplyTo.Deleted)
	assert.Equal(t, "reply to deleted message", view.ReplyTo.Content)
}

func TestUpdateMessageStatus(t *testing.T) {
	ctx := context.Background()
	conv := directConv("alice", "bob")

	tests := []struct {
		name      string
		caller    string
		next      common.DeliveryStatus
		mockSetup func(f *serviceFixture)
		wantKind  common.Kind
	}{
		{
			name:   "recipient marks read",
			caller: "bob",
			next:   common.StatusRead,
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(5)).
					Return(&dbmysql.Message{ID: 5, ConversationID: conv.ID, SenderID: "alice", Status: common.StatusDelivered}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
				f.msgRepo.EXPECT().UpdateStatus(gomock.Any(), uint(5), common.StatusRead).Return(nil)
				f.publisher.EXPECT().
					PublishChatEvent(gomock.Any(), []string{"alice"}, gomock.Any()).
					Do(func(_ context.Context, _ []string, event common.ChatEvent) {
						assert.Equal(t, common.MessageStatusChangedEvent, event.Event)
						assert.Equal(t, common.StatusRead, event.Status)
					})
			},
		},
		{
			name:   "idempotent re-assertion skips the write",
			caller: "bob",
			next:   common.StatusRead,
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(5)).
					Return(&dbmysql.Message{ID: 5, ConversationID: conv.ID, SenderID: "alice", Status: common.StatusRead}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
			},
		},
		{
			name:   "backwards transition rejected",
			caller: "bob",
			next:   common.StatusDelivered,
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(5)).
					Return(&dbmysql.Message{ID: 5, ConversationID: conv.ID, SenderID: "alice", Status: common.StatusRead}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
			},
			wantKind: common.KindInvalidTransition,
		},
		{
			name:   "sender cannot read its own message",
			caller: "alice",
			next:   common.StatusRead,
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(5)).
					Return(&dbmysql.Message{ID: 5, ConversationID: conv.ID, SenderID: "alice", Status: common.StatusDelivered}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
			},
			wantKind: common.KindForbidden,
		},
		{
			name:   "unknown message",
			caller: "bob",
			next:   common.StatusRead,
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(5)).
					Return(nil, common.E(common.KindNotFound, "message not found"))
			},
			wantKind: common.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			tt.mockSetup(f)

			err := f.service.UpdateMessageStatus(ctx, tt.caller, 5, tt.next)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, common.KindOf(err))
			}
		})
	}
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	conv := directConv("alice", "bob")

	tests := []struct {
		name      string
		caller    string
		mockSetup func(f *serviceFixture)
		wantKind  common.Kind
	}{
		{
			name:   "sender deletes own message",
			caller: "alice",
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(3)).
					Return(&dbmysql.Message{ID: 3, ConversationID: conv.ID, SenderID: "alice"}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
				f.msgRepo.EXPECT().Delete(gomock.Any(), uint(3)).Return(nil)
			},
		},
		{
			name:   "staff deletes someone else's message",
			caller: "bob",
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(3)).
					Return(&dbmysql.Message{ID: 3, ConversationID: conv.ID, SenderID: "alice"}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
				f.authority.EXPECT().IsStaff(gomock.Any(), "bob").Return(true, nil)
				f.msgRepo.EXPECT().Delete(gomock.Any(), uint(3)).Return(nil)
			},
		},
		{
			name:   "non-sender non-staff forbidden",
			caller: "bob",
			mockSetup: func(f *serviceFixture) {
				f.msgRepo.EXPECT().ByID(gomock.Any(), uint(3)).
					Return(&dbmysql.Message{ID: 3, ConversationID: conv.ID, SenderID: "alice"}, nil)
				f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
				f.authority.EXPECT().IsStaff(gomock.Any(), "bob").Return(false, nil)
			},
			wantKind: common.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			tt.mockSetup(f)

			err := f.service.DeleteMessage(ctx, tt.caller, 3)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, common.KindOf(err))
			}
		})
	}
}

func TestSearchMessages(t *testing.T) {
	f := newServiceFixture(t)
	conv := directConv("alice", "bob")

	f.convRepo.EXPECT().ByID(gomock.Any(), conv.ID).Return(conv, nil)
	f.msgRepo.EXPECT().Search(gomock.Any(), conv.ID, "deploy", 50).
		Return([]*dbmysql.Message{{ID: 1, ConversationID: conv.ID, SenderID: "bob", Content: "Deploy at noon"}}, nil)

	views, err := f.service.SearchMessages(context.Background(), "alice", conv.ID, "deploy")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Deploy at noon", views[0].Content)
}

func TestSearchMessages_EmptyQuery(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.SearchMessages(context.Background(), "alice", "direct:alice_bob", "   ")

	assert.Error(t, err)
	assert.Equal(t, common.KindInvalidArgument, common.KindOf(err))
}

func TestAddMember(t *testing.T) {
	f := newServiceFixture(t)
	conv := groupConv("group:g1", "alice", "bob")

	f.convRepo.EXPECT().ByID(gomock.Any(), "group:g1").Return(conv, nil)
	f.convRepo.EXPECT().AddMember(gomock.Any(), "group:g1", "carol").Return(nil)
	// the new member is told too
	f.publisher.EXPECT().
		PublishChatEvent(gomock.Any(), []string{"bob", "carol"}, gomock.Any()).
		Do(func(_ context.Context, _ []string, event common.ChatEvent) {
			assert.Equal(t, common.MemberAddedEvent, event.Event)
			assert.Equal(t, "carol", event.UserID)
		})

	err := f.service.AddMember(context.Background(), "alice", "group:g1", "carol")

	assert.NoError(t, err)
}

func TestAddMember_AlreadyPresentIsNoOp(t *testing.T) {
	f := newServiceFixture(t)
	conv := groupConv("group:g1", "alice", "bob")

	f.convRepo.EXPECT().ByID(gomock.Any(), "group:g1").Return(conv, nil)

	err := f.service.AddMember(context.Background(), "alice", "group:g1", "bob")

	assert.NoError(t, err)
}

func TestRemoveMember(t *testing.T) {
	f := newServiceFixture(t)
	conv := groupConv("group:g1", "alice", "bob", "carol")

	f.convRepo.EXPECT().ByID(gomock.Any(), "group:g1").Return(conv, nil)
	f.convRepo.EXPECT().RemoveMember(gomock.Any(), "group:g1", "carol").Return(nil)
	f.publisher.EXPECT().PublishChatEvent(gomock.Any(), []string{"bob", "carol"}, gomock.Any())

	err := f.service.RemoveMember(context.Background(), "alice", "group:g1", "carol")

	assert.NoError(t, err)
}

func TestArchiveChat(t *testing.T) {
	f := newServiceFixture(t)

	f.convRepo.EXPECT().
		SetArchived(gomock.Any(), "direct:alice_bob", "alice", true).
		Return(nil)

	err := f.service.ArchiveChat(context.Background(), "alice", "bob")

	assert.NoError(t, err)
}

func TestUnarchiveChat(t *testing.T) {
	f := newServiceFixture(t)

	f.convRepo.EXPECT().
		SetArchived(gomock.Any(), "direct:alice_bob", "alice", false).
		Return(nil)

	err := f.service.UnarchiveChat(context.Background(), "alice", "bob")

	assert.NoError(t, err)
}

func TestArchiveChat_MissingUser(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.ArchiveChat(context.Background(), "alice", "")

	assert.Error(t, err)
	assert.Equal(t, common.KindInvalidArgument, common.KindOf(err))
}

//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	chathandler "intrachat/internal/chat/handler"
	chatservice "intrachat/internal/chat/service"
	"intrachat/internal/common"
	"intrachat/internal/dbmysql"
	"intrachat/internal/notif"
	"intrachat/internal/ws"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		ProvideDatabaseConnection, // receives config as parameter
		dbmysql.NewConvLocks,
		dbmysql.NewConversationRepository,
		dbmysql.NewMessageRepository,
		dbmysql.NewNotificationRepository,
		ws.NewRegistry,
		ProvideBroadcaster,
		ProvideDispatcher,
		ProvideUserDirectory,
		ProvideAuthority,
		chatservice.NewChatService,
		chathandler.NewChatHandler,
		notif.NewNotificationHandler,
		ws.NewHandler,
		wire.Bind(new(common.ChatEventPublisher), new(*notif.Dispatcher)),
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

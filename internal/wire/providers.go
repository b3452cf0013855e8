package wire

import (
	"context"
	"os"
	"strings"

	"gorm.io/gorm"

	chathandler "intrachat/internal/chat/handler"
	"intrachat/internal/common"
	"intrachat/internal/config"
	"intrachat/internal/dbmysql"
	"intrachat/internal/notif"
	"intrachat/internal/pubsub"
	"intrachat/internal/ws"
)

type Application struct {
	Config              *config.Config
	DB                  *gorm.DB
	Registry            *ws.Registry
	Dispatcher          *notif.Dispatcher
	ChatHandler         *chathandler.ChatHandler
	NotificationHandler *notif.NotificationHandler
	WSHandler           *ws.Handler
}

func ProvideConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			ReadTimeout:  30,
			WriteTimeout: 30,
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: config.DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "intrachat"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "intrachat"),
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Chat: config.ChatConfig{
			DefaultPageSize: 50,
			MaxPageSize:     200,
			SearchLimit:     50,
			IdleTimeout:     120,
			SendBufferSize:  16,
		},
		Redis: config.RedisConfig{
			Addr:    getEnvOrDefault("REDIS_ADDR", ""),
			Enabled: getEnvOrDefault("REDIS_ENABLED", "false") == "true",
		},
		Logging: config.LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		common.SetSecret([]byte(secret))
	}

	return cfg
}

func ProvideDatabaseConnection(cfg *config.Config) (*gorm.DB, error) {
	return dbmysql.NewMySQL(cfg)
}

// ProvideBroadcaster picks the fan-out fabric: the process-local registry by
// default, the redis pub/sub fabric when configured.
func ProvideBroadcaster(cfg *config.Config, registry *ws.Registry) common.Broadcaster {
	if cfg.Redis.Enabled && cfg.Redis.Addr != "" {
		fabric := pubsub.NewRedisFabric(cfg.Redis.Addr, registry)
		go fabric.Run(context.Background())
		return fabric
	}
	return registry
}

func ProvideDispatcher(repo dbmysql.NotificationRepository, broadcaster common.Broadcaster, registry *ws.Registry) *notif.Dispatcher {
	dispatcher := notif.NewDispatcher(repo, broadcaster, 4)
	registry.AddAttachListener(dispatcher)
	return dispatcher
}

// ProvideUserDirectory returns the fallback directory; the profile component
// owns real display names and substitutes here at deployment.
func ProvideUserDirectory() common.UserDirectory {
	return selfDirectory{}
}

type selfDirectory struct{}

func (selfDirectory) DisplayName(_ context.Context, userID string) (string, error) {
	return userID, nil
}

// ProvideAuthority reads the staff roster from STAFF_USER_IDS; the profile
// component substitutes a real role lookup at deployment.
func ProvideAuthority() common.Authority {
	staff := make(map[string]bool)
	for _, id := range strings.Split(os.Getenv("STAFF_USER_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			staff[id] = true
		}
	}
	return staticAuthority{staff: staff}
}

type staticAuthority struct {
	staff map[string]bool
}

func (a staticAuthority) IsStaff(_ context.Context, userID string) (bool, error) {
	return a.staff[userID], nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

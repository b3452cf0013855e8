package dbmysql

import (
	"time"

	"gorm.io/datatypes"

	"intrachat/internal/common"
)

type Message struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID string `gorm:"not null;size:80;index:idx_messages_page,priority:1"`
	// Seq is assigned under the conversation writer lock; it breaks
	// created-at ties so append order equals page order.
	Seq           int64                 `gorm:"not null;index:idx_messages_page,priority:2,sort:desc"`
	SenderID      string                `gorm:"not null;size:36;index"`
	SenderName    string                `gorm:"size:100"`
	Kind          common.MessageKind    `gorm:"not null;size:16;default:'text'"`
	Content       string                `gorm:"type:text"`
	Status        common.DeliveryStatus `gorm:"not null;size:16;default:'sent';index"`
	ReplyToID     *uint
	Forwarded     bool   `gorm:"default:false"`
	ForwardedFrom string `gorm:"size:100"`
	Edited        bool   `gorm:"default:false"`
	EditedAt      *time.Time
	Metadata      datatypes.JSON `gorm:"type:json"`
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

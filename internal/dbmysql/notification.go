package dbmysql

import (
	"time"

	"intrachat/internal/common"
)

type Notification struct { // system notification addressed to a single recipient
	ID        string          `gorm:"primaryKey;size:36"`
	UserID    string          `gorm:"not null;index;size:36"`
	Title     string          `gorm:"size:255"`
	Body      string          `gorm:"not null;type:text"`
	Severity  common.Severity `gorm:"not null;size:16;default:'info'"`
	Link      string          `gorm:"size:512"`
	Read      bool            `gorm:"default:false;index"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

// AsSystemMessage converts to the websocket payload shape.
func (n *Notification) AsSystemMessage() common.SystemMessage {
	return common.SystemMessage{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Severity:  n.Severity,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

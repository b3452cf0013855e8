package dbmysql

import (
	"time"

	"intrachat/internal/common"
)

type Conversation struct {
	ID            string                  `gorm:"primaryKey;size:80"`
	Kind          common.ConversationKind `gorm:"not null;size:10;index"`
	Name          string                  `gorm:"size:255"`
	Description   string                  `gorm:"type:text"`
	CreatedBy     string                  `gorm:"size:36"`
	Active        bool                    `gorm:"default:true"`
	Archived      bool                    `gorm:"default:false"` // administrative flag, not the per-user one
	ArchivedAt    *time.Time
	LastMessageID *uint     `gorm:"index"`
	LastActivity  time.Time `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Participants []Participant `gorm:"foreignKey:ConversationID"`
}

// Participant joins a user to a conversation and carries the user-scoped
// archive flag.
type Participant struct {
	ConversationID string `gorm:"primaryKey;size:80"`
	UserID         string `gorm:"primaryKey;size:36;index"`
	Archived       bool   `gorm:"default:false"`
	ArchivedAt     *time.Time
	JoinedAt       time.Time `gorm:"autoCreateTime"`
}

// ParticipantIDs returns the roster as a plain slice.
func (c *Conversation) ParticipantIDs() []string {
	ids := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		ids = append(ids, p.UserID)
	}
	return ids
}

// HasParticipant reports roster membership.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

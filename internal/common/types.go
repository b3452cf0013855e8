package common

import (
	"time"
)

type ConversationKind string

const (
	DirectConversation ConversationKind = "direct"
	GroupConversation  ConversationKind = "group"
)

func (ck ConversationKind) IsValid() bool {
	return ck == DirectConversation || ck == GroupConversation
}

func (ck ConversationKind) String() string {
	return string(ck)
}

type MessageKind string

const (
	TextMessage     MessageKind = "text"
	ImageMessage    MessageKind = "image"
	AudioMessage    MessageKind = "audio"
	VideoMessage    MessageKind = "video"
	DocumentMessage MessageKind = "document"
	LocationMessage MessageKind = "location"
	ContactMessage  MessageKind = "contact"
)

func (mk MessageKind) IsValid() bool {
	switch mk {
	case TextMessage, ImageMessage, AudioMessage, VideoMessage,
		DocumentMessage, LocationMessage, ContactMessage:
		return true
	}
	return false
}

func (mk MessageKind) String() string {
	return string(mk)
}

// DeliveryStatus is the per-message monotonic state.
type DeliveryStatus string

const (
	StatusSending   DeliveryStatus = "sending"
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusRead      DeliveryStatus = "read"
)

func (ds DeliveryStatus) IsValid() bool {
	switch ds {
	case StatusSending, StatusSent, StatusDelivered, StatusRead:
		return true
	}
	return false
}

// Rank orders statuses along sending -> sent -> delivered -> read.
func (ds DeliveryStatus) Rank() int {
	switch ds {
	case StatusSending:
		return 0
	case StatusSent:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	}
	return -1
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// ChatEventKind names the reconcile events pushed to participants.
type ChatEventKind string

const (
	MessagePostedEvent        ChatEventKind = "message-posted"
	MessageStatusChangedEvent ChatEventKind = "message-status-changed"
	MemberAddedEvent          ChatEventKind = "member-added"
	MemberRemovedEvent        ChatEventKind = "member-removed"
)

// Envelope frame types on the websocket.
const (
	EnvelopeSystemMessage = "system_message"
	EnvelopeChatEvent     = "chat_event"
	EnvelopeEcho          = "echo"
	EnvelopeError         = "error"
)

// Envelope is the self-describing frame sent over a websocket session.
type Envelope struct {
	Type    string      `json:"type"`
	Version int         `json:"version"`
	Message interface{} `json:"message"`
}

func NewEnvelope(frameType string, message interface{}) Envelope {
	return Envelope{Type: frameType, Version: 1, Message: message}
}

// ChatEvent carries the minimal state a client needs to reconcile its view.
type ChatEvent struct {
	ConversationID string         `json:"conversation_id"`
	Event          ChatEventKind  `json:"event"`
	ActorID        string         `json:"actor_id,omitempty"`
	MessageID      uint           `json:"message_id,omitempty"`
	Status         DeliveryStatus `json:"status,omitempty"`
	UserID         string         `json:"user_id,omitempty"`
}

// SystemMessage is the payload of a system_message envelope.
type SystemMessage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	Severity  Severity  `json:"severity"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageMetadata is the per-kind variant; only the fields relevant to the
// message kind are kept (see Normalize in validation.go).
type MessageMetadata struct {
	FileName     string    `json:"file_name,omitempty"`
	FileSize     int64     `json:"file_size,omitempty"`
	FileURL      string    `json:"file_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	Waveform     []float64 `json:"waveform,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
}

// MessagePayload is the inbound shape of a message to post.
type MessagePayload struct {
	Kind          MessageKind      `json:"kind"`
	Content       string           `json:"content"`
	ReplyToID     *uint            `json:"reply_to_id,omitempty"`
	Forwarded     bool             `json:"forwarded,omitempty"`
	ForwardedFrom string           `json:"forwarded_from,omitempty"`
	Sending       bool             `json:"sending,omitempty"` // optimistic echo: start in status=sending
	Metadata      *MessageMetadata `json:"metadata,omitempty"`
}

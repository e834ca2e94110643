package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("chat not found")

// Sender identifies which side of the conversation wrote a message.
type Sender string

const (
	SenderClient Sender = "client"
	SenderAdmin  Sender = "admin"
)

// Chat is one conversation thread per client. UnreadCount counts client
// messages not yet read by an admin.
type Chat struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	UnreadCount   int
	LastMessageAt *time.Time
	Messages      []*Message
	CreatedAt     time.Time
}

type Message struct {
	ID      uuid.UUID
	ChatID  uuid.UUID
	Sender  Sender
	Content string
	SentAt  time.Time
}

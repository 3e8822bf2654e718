package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultChatTitle is the title of a chat before the first user message names it.
const DefaultChatTitle = "New Chat"

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in a chat's append-ordered log. Messages are
// immutable once appended; position is the append order.
type Message struct {
	Role    MessageRole `json:"role" bson:"role"`
	Content string      `json:"content" bson:"content"`
}

// Chat represents a conversation thread owned by a single user
type Chat struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Title     string             `json:"title" bson:"title"`
	Messages  []Message          `json:"messages" bson:"messages"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ChatSummary is the list-view projection of a chat
type ChatSummary struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// NewChat creates an empty chat owned by the given user
func NewChat(userID primitive.ObjectID) *Chat {
	now := time.Now()
	return &Chat{
		UserID:    userID,
		Title:     DefaultChatTitle,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChatRepository defines the interface for chat storage. All lookups filter
// by both chat id and owner id; a chat that exists but belongs to another
// user is indistinguishable from one that does not exist.
type ChatRepository interface {
	Create(ctx context.Context, chat *Chat) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]ChatSummary, error)
	Get(ctx context.Context, userID, chatID primitive.ObjectID) (*Chat, error)
	Update(ctx context.Context, chat *Chat) error
	Delete(ctx context.Context, userID, chatID primitive.ObjectID) error
}

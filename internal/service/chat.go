package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const titleLimit = 30

// Gateway produces an assistant reply for a message log. Implementations
// degrade to a fallback string instead of failing.
type Gateway interface {
	Reply(ctx context.Context, history []domain.Message) string
}

// SendResult is the outcome of a send operation
type SendResult struct {
	ChatID primitive.ObjectID `json:"chatId"`
	Reply  string             `json:"reply"`
}

// ChatService orchestrates thread creation, message exchange and titling
type ChatService struct {
	chatRepo domain.ChatRepository
	gateway  Gateway
}

// NewChatService creates a new chat service
func NewChatService(chatRepo domain.ChatRepository, gateway Gateway) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		gateway:  gateway,
	}
}

// NewChat creates an empty chat for the user
func (s *ChatService) NewChat(ctx context.Context, userID primitive.ObjectID) (*domain.Chat, error) {
	chat := domain.NewChat(userID)
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// ListChats returns the user's chats, most recently updated first
func (s *ChatService) ListChats(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatSummary, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

// GetChat returns the full chat, or domain.ErrNotFound when it is absent
// or owned by someone else.
func (s *ChatService) GetChat(ctx context.Context, userID primitive.ObjectID, chatID string) (*domain.Chat, error) {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return s.chatRepo.Get(ctx, userID, id)
}

// DeleteChat removes the chat under the same ownership rule as GetChat
func (s *ChatService) DeleteChat(ctx context.Context, userID primitive.ObjectID, chatID string) error {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return domain.ErrNotFound
	}
	return s.chatRepo.Delete(ctx, userID, id)
}

// Send appends the user message, obtains an assistant reply, titles the
// chat on its first message and persists everything in one write.
//
// A missing, invalid or foreign chatID is not an error: the send creates a
// new chat and proceeds. The message pair is composed in memory and written
// with a single update, so a failed write retains no partial append.
func (s *ChatService) Send(ctx context.Context, userID primitive.ObjectID, chatID string, message string) (*SendResult, error) {
	chat, err := s.resolveChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	chat.Messages = append(chat.Messages, domain.Message{
		Role:    domain.RoleUser,
		Content: message,
	})

	reply := s.gateway.Reply(ctx, chat.Messages)

	chat.Messages = append(chat.Messages, domain.Message{
		Role:    domain.RoleAssistant,
		Content: reply,
	})

	if chat.Title == domain.DefaultChatTitle {
		chat.Title = truncateTitle(message)
	}
	chat.UpdatedAt = time.Now()

	if err := s.chatRepo.Update(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to persist chat: %w", err)
	}

	return &SendResult{ChatID: chat.ID, Reply: reply}, nil
}

// resolveChat reuses an owned chat or creates a new one. The create branch
// is explicit rather than an upsert so the ownership check stays visible.
func (s *ChatService) resolveChat(ctx context.Context, userID primitive.ObjectID, chatID string) (*domain.Chat, error) {
	if chatID != "" {
		id, err := primitive.ObjectIDFromHex(chatID)
		if err == nil {
			chat, err := s.chatRepo.Get(ctx, userID, id)
			if err == nil {
				return chat, nil
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
	}

	chat := domain.NewChat(userID)
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func truncateTitle(message string) string {
	runes := []rune(message)
	if len(runes) > titleLimit {
		runes = runes[:titleLimit]
	}
	return string(runes)
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/mfieldsdev/chatwire/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChatService_Send_NewChat(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	gateway := new(MockGateway)
	svc := NewChatService(chatRepo, gateway)

	newID := primitive.NewObjectID()
	chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Chat).ID = newID
	}).Return(nil).Once()

	gateway.On("Reply", ctx, mock.Anything).Return("Hello! How can I help?")

	var persisted *domain.Chat
	chatRepo.On("Update", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*domain.Chat)
	}).Return(nil).Once()

	result, err := svc.Send(ctx, userID, "", "Hello there")
	assert.NoError(t, err)
	assert.Equal(t, newID, result.ChatID)
	assert.Equal(t, "Hello! How can I help?", result.Reply)

	// exactly two messages appended, user first
	assert.Len(t, persisted.Messages, 2)
	assert.Equal(t, domain.RoleUser, persisted.Messages[0].Role)
	assert.Equal(t, "Hello there", persisted.Messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, persisted.Messages[1].Role)
	assert.Equal(t, "Hello! How can I help?", persisted.Messages[1].Content)

	// first send titles the chat
	assert.Equal(t, "Hello there", persisted.Title)

	chatRepo.AssertExpectations(t)
}

func TestChatService_Send_ExistingChat(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	chatID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	gateway := new(MockGateway)
	svc := NewChatService(chatRepo, gateway)

	existing := &domain.Chat{
		ID:     chatID,
		UserID: userID,
		Title:  "Custom title",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "earlier"},
			{Role: domain.RoleAssistant, Content: "reply"},
		},
	}

	chatRepo.On("Get", ctx, userID, chatID).Return(existing, nil)
	gateway.On("Reply", ctx, mock.Anything).Return("sure")

	var persisted *domain.Chat
	chatRepo.On("Update", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*domain.Chat)
	}).Return(nil)

	result, err := svc.Send(ctx, userID, chatID.Hex(), "follow up")
	assert.NoError(t, err)
	assert.Equal(t, chatID, result.ChatID)

	assert.Len(t, persisted.Messages, 4)
	// a customized title is never overwritten
	assert.Equal(t, "Custom title", persisted.Title)

	chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChatService_Send_ForeignChatStartsNew(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	foreignID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	gateway := new(MockGateway)
	svc := NewChatService(chatRepo, gateway)

	// chat exists but belongs to someone else: the repo reports not found
	chatRepo.On("Get", ctx, userID, foreignID).Return(nil, domain.ErrNotFound)
	chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Chat).ID = primitive.NewObjectID()
	}).Return(nil)
	gateway.On("Reply", ctx, mock.Anything).Return("ok")
	chatRepo.On("Update", ctx, mock.AnythingOfType("*domain.Chat")).Return(nil)

	result, err := svc.Send(ctx, userID, foreignID.Hex(), "hi")
	assert.NoError(t, err)
	assert.NotEqual(t, foreignID, result.ChatID)

	chatRepo.AssertExpectations(t)
}

func TestChatService_Send_TitleTruncation(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	gateway := new(MockGateway)
	svc := NewChatService(chatRepo, gateway)

	chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Chat).ID = primitive.NewObjectID()
	}).Return(nil)
	gateway.On("Reply", ctx, mock.Anything).Return("ok")

	var persisted *domain.Chat
	chatRepo.On("Update", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*domain.Chat)
	}).Return(nil)

	long := strings.Repeat("abcde", 10) // 50 chars
	_, err := svc.Send(ctx, userID, "", long)
	assert.NoError(t, err)
	assert.Equal(t, long[:30], persisted.Title)
	assert.Len(t, []rune(persisted.Title), 30)
}

func TestChatService_Send_FallbackRecorded(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	gateway := new(MockGateway)
	svc := NewChatService(chatRepo, gateway)

	chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Chat).ID = primitive.NewObjectID()
	}).Return(nil)

	// gateway degrades instead of failing; the send still succeeds
	gateway.On("Reply", ctx, mock.Anything).Return(llm.FallbackReply)

	var persisted *domain.Chat
	chatRepo.On("Update", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*domain.Chat)
	}).Return(nil)

	result, err := svc.Send(ctx, userID, "", "hi")
	assert.NoError(t, err)
	assert.Equal(t, llm.FallbackReply, result.Reply)
	assert.Len(t, persisted.Messages, 2)
	assert.Equal(t, llm.FallbackReply, persisted.Messages[1].Content)
}

func TestChatService_Send_PersistFailure(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	gateway := new(MockGateway)
	svc := NewChatService(chatRepo, gateway)

	chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Chat).ID = primitive.NewObjectID()
	}).Return(nil)
	gateway.On("Reply", ctx, mock.Anything).Return("ok")
	chatRepo.On("Update", ctx, mock.AnythingOfType("*domain.Chat")).Return(errors.New("write failed"))

	_, err := svc.Send(ctx, userID, "", "hi")
	assert.Error(t, err)
}

func TestChatService_NewChat(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	svc := NewChatService(chatRepo, new(MockGateway))

	chatRepo.On("Create", ctx, mock.AnythingOfType("*domain.Chat")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Chat).ID = primitive.NewObjectID()
	}).Return(nil)

	chat, err := svc.NewChat(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultChatTitle, chat.Title)
	assert.Equal(t, userID, chat.UserID)
	assert.Empty(t, chat.Messages)
}

func TestChatService_GetChat_InvalidID(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(new(MockChatRepository), new(MockGateway))

	_, err := svc.GetChat(ctx, primitive.NewObjectID(), "not-a-hex-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatService_DeleteChat_InvalidID(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(new(MockChatRepository), new(MockGateway))

	err := svc.DeleteChat(ctx, primitive.NewObjectID(), "not-a-hex-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatService_ListChats(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	chatRepo := new(MockChatRepository)
	svc := NewChatService(chatRepo, new(MockGateway))

	expected := []domain.ChatSummary{
		{ID: primitive.NewObjectID(), Title: "latest"},
		{ID: primitive.NewObjectID(), Title: "older"},
	}
	chatRepo.On("ListByUser", ctx, userID).Return(expected, nil)

	got, err := svc.ListChats(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}

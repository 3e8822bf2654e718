package service

import (
	"context"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository mocks domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockChatRepository mocks domain.ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ChatSummary), args.Error(1)
}

func (m *MockChatRepository) Get(ctx context.Context, userID, chatID primitive.ObjectID) (*domain.Chat, error) {
	args := m.Called(ctx, userID, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) Update(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) Delete(ctx context.Context, userID, chatID primitive.ObjectID) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

// MockGateway mocks the completion gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Reply(ctx context.Context, history []domain.Message) string {
	args := m.Called(ctx, history)
	return args.String(0)
}

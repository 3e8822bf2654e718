package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatCollection = "chats"

// ChatRepository implements domain.ChatRepository
type ChatRepository struct {
	coll *mongo.Collection
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{coll: db.Collection(chatCollection)}
}

func (r *ChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	res, err := r.coll.InsertOne(ctx, chat)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		chat.ID = id
	}
	return nil
}

// ListByUser returns summaries of the user's chats, most recently updated first.
func (r *ChatRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "title": 1, "createdAt": 1}).
		SetSort(bson.M{"updatedAt": -1})

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer cursor.Close(ctx)

	chats := []domain.ChatSummary{}
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %w", err)
	}
	return chats, nil
}

// Get returns the full chat. The filter includes the owner id, so a chat
// belonging to another user reports domain.ErrNotFound rather than the chat.
func (r *ChatRepository) Get(ctx context.Context, userID, chatID primitive.ObjectID) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.coll.FindOne(ctx, bson.M{"_id": chatID, "userId": userID}).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

// Update persists the chat's message log, title and updatedAt in a single
// write. Callers compose the full message sequence in memory first, so a
// failed update leaves no partial append behind.
func (r *ChatRepository) Update(ctx context.Context, chat *domain.Chat) error {
	update := bson.M{"$set": bson.M{
		"messages":  chat.Messages,
		"title":     chat.Title,
		"updatedAt": chat.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": chat.ID, "userId": chat.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ChatRepository) Delete(ctx context.Context, userID, chatID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": chatID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/mfieldsdev/chatwire/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration and authentication
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *security.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo domain.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup creates a new account and issues a session token.
// Returns domain.ErrEmailTaken when the email is already registered.
func (s *AuthService) Signup(ctx context.Context, input domain.UserSignup) (*domain.User, string, error) {
	exists, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", domain.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	// Create may still report ErrEmailTaken if a concurrent signup won the
	// race; the unique index is the source of truth.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a fresh session token. Unknown
// email and wrong password produce the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetUser retrieves a user's profile by ID
func (s *AuthService) GetUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

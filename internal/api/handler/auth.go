package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mfieldsdev/chatwire/internal/api/middleware"
	"github.com/mfieldsdev/chatwire/internal/api/response"
	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/mfieldsdev/chatwire/internal/service"
)

var validate = validator.New()

// userProfile is the public view of an account; the password hash never
// leaves the server.
type userProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userProfile `json:"user"`
}

func profileOf(u *domain.User) userProfile {
	return userProfile{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input domain.UserSignup
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	user, token, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.BadRequest(w, "User already exists")
			return
		}
		response.InternalError(w, "Signup failed")
		return
	}

	response.Created(w, authResponse{Token: token, User: profileOf(user)})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	user, token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.BadRequest(w, "Invalid credentials")
			return
		}
		response.InternalError(w, "Login failed")
		return
	}

	response.OK(w, authResponse{Token: token, User: profileOf(user)})
}

// Me returns the current authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Unauthorized(w, "user not found")
			return
		}
		response.InternalError(w, "Failed to fetch user")
		return
	}

	response.OK(w, profileOf(user))
}

// validationMessage flattens validator errors into one readable message
func validationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, field+" must be a valid email")
		case "min":
			parts = append(parts, field+" must be at least "+e.Param()+" characters")
		case "max":
			parts = append(parts, field+" must be at most "+e.Param()+" characters")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

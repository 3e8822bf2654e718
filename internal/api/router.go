package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mfieldsdev/chatwire/internal/api/handler"
	custommiddleware "github.com/mfieldsdev/chatwire/internal/api/middleware"
	"github.com/mfieldsdev/chatwire/internal/config"
	"github.com/mfieldsdev/chatwire/internal/llm"
	"github.com/mfieldsdev/chatwire/internal/llm/gemini"
	"github.com/mfieldsdev/chatwire/internal/llm/ollama"
	"github.com/mfieldsdev/chatwire/internal/llm/openai"
	"github.com/mfieldsdev/chatwire/internal/repository/mongo"
	"github.com/mfieldsdev/chatwire/internal/security"
	"github.com/mfieldsdev/chatwire/internal/service"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongo.DB) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Repositories
	userRepo := mongo.NewUserRepository(db)
	chatRepo := mongo.NewChatRepository(db)

	// Completion providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)

	log.Info().Msgf("Initializing completion providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.OpenAI.APIKey != "" {
		log.Info().Str("base_url", cfg.LLM.OpenAI.BaseURL).Msg("Registering OpenAI-compatible provider")
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.BaseURL, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		log.Info().Msg("Registering Gemini provider")
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model))
	}

	if len(llmRouter.ListProviders()) == 0 {
		log.Warn().Msg("No completion provider configured; replies will degrade to the fallback")
	}

	gateway := llm.NewGateway(llmRouter, cfg.LLM.Timeout)

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	chatService := service.NewChatService(chatRepo, gateway)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)

	authMiddleware := custommiddleware.NewAuthMiddleware(tokens)

	// Health
	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(db))

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", authHandler.Me)
		})
	})

	// Chat routes (all protected)
	r.Route("/chat", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/new", chatHandler.New)
		r.Post("/send", chatHandler.Send)
		r.Get("/all", chatHandler.List)
		r.Get("/{chatID}", chatHandler.Get)
		r.Delete("/{chatID}", chatHandler.Delete)
	})

	return r
}

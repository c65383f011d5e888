// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avasilyev/geminichat/internal/config"
	"github.com/avasilyev/geminichat/internal/handlers"
	"github.com/avasilyev/geminichat/internal/middleware"
	"github.com/avasilyev/geminichat/internal/services"
	"github.com/avasilyev/geminichat/internal/services/ai"
	chatsvc "github.com/avasilyev/geminichat/internal/services/chat"
	"github.com/avasilyev/geminichat/internal/services/identity"
	"github.com/avasilyev/geminichat/internal/store"
)

func main() {
	cfg := config.Load()

	// --- Store ---
	// Everything lives in process memory; a restart starts from scratch.
	memory := store.NewMemory()

	// --- Services ---
	var provider ai.CompletionProvider
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set! The app will start, but AI features will not work until it is configured.")
	} else {
		aiCfg := ai.DefaultConfig()
		aiCfg.APIKey = cfg.GeminiAPIKey
		aiCfg.Model = cfg.GeminiModel
		aiCfg.Timeout = cfg.AITimeout

		gemini, err := ai.NewGeminiProvider(context.Background(), aiCfg, services.NewLogger("ai"))
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize Gemini provider: %v", err)
		}
		defer gemini.Close()
		provider = gemini
		log.Printf("Gemini configured (model %s)", cfg.GeminiModel)
	}

	identityService := identity.NewService(memory, cfg.SessionSecret, services.NewLogger("identity"))
	chatService := chatsvc.NewService(memory, provider, services.NewLogger("chat"))

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(identityService)
	chatHandler := handlers.NewChatHandler(chatService)
	pageHandler := handlers.NewPageHandler()

	// --- Router Setup ---
	r := mux.NewRouter()
	secret := []byte(cfg.SessionSecret)

	r.Use(middleware.Metrics)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.OptionalAuth(secret))
	pages.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	pages.HandleFunc("/login", pageHandler.ShowLoginPage).Methods("GET")

	// --- Protected Routes ---
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuthPage(secret))
	protected.HandleFunc("/chat", pageHandler.ShowChatPage).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuthJSON(secret))
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats/create", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/{id}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chats/{id}/rename", chatHandler.RenameChat).Methods("POST")
	api.HandleFunc("/chats/{id}/delete", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chat", chatHandler.SendMessage).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("==================================================")
	log.Printf("Gemini Chat - multi-user AI chat service")
	log.Printf("==================================================")
	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("Chat interface: http://localhost:%s/chat", cfg.ServerPort)
	log.Printf("==================================================")

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

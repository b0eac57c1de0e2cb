package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoclerk-backend/internal/config"
	"autoclerk-backend/internal/handlers"
	"autoclerk-backend/internal/router"
	"autoclerk-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Autoclerk Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ Configuration invalid: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Upstream LLM Client ────
	completer, closeCompleter, err := services.NewCompleter(context.Background(), cfg)
	if err != nil {
		log.Fatalf("✗ %s client initialization failed: %v", cfg.Provider, err)
	}
	defer closeCompleter()
	log.Printf("✓ %s client initialized (model %s)", cfg.Provider, cfg.Model)

	// ──── Step 3: Initialize Services & Handlers ────
	chatService := services.NewChatService(completer, cfg.SystemPrompt, cfg.Model, cfg.UpstreamTimeout)
	chatHandler := handlers.NewChatHandler(chatService, cfg.MaxBodyBytes)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idleClosed := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		close(idleClosed)
	}()

	log.Printf("✓ Autoclerk Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: POST http://localhost:%s/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-idleClosed
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nudj-platform/challenge-console/internal/config"
	"github.com/nudj-platform/challenge-console/internal/models"
	"github.com/nudj-platform/challenge-console/internal/stub"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := stub.NewStore()
	seed(store)

	server := stub.NewServer(store)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Stub.Host, cfg.Stub.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("stub admin API starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("stub admin API stopped")
}

// seed loads a small data set so the console has something to browse
func seed(store *stub.Store) {
	community := store.AddCommunity(models.Community{
		OrganisationID: "org-local",
		Name:           "Local Community",
		Slug:           "local",
		Description:    "Seeded community for local development",
		Verified:       true,
		CreatedAt:      time.Now().UTC(),
	})

	challenge := store.CreateChallenge(models.ChallengeInput{
		CommunityID: community.ID,
		Details: models.ChallengeDetails{
			Title:       "Welcome challenge",
			Description: "Answer a few questions to get started",
			BannerURL:   "https://example.com/banner.png",
		},
		Status: models.StatusDraft,
	})

	store.AddReward(models.Reward{
		CommunityID: community.ID,
		Details: models.RewardDetails{
			Title:     "Sticker pack",
			BannerURL: "https://example.com/stickers.png",
		},
		Supply: 100,
		Allocations: []models.Allocation{
			{AllocationType: "standard", Supply: 80},
			{AllocationType: "vip", Supply: 20},
		},
	})

	store.CreateAction(models.ActionRequest{
		CommunityID:  community.ID,
		AllocationID: challenge.ID,
		AllocatedTo:  models.ActionAllocatedToChallenge,
		Category:     models.ActionCategoryQuestion,
		Key:          models.ActionKeyMultipleChoice,
		Attributes: models.ActionAttributes{
			Key:      models.ActionKeyMultipleChoice,
			Question: "What color is the sky?",
			Options: []models.ActionOption{
				{ID: "Blue_0", Label: "Blue"},
				{ID: "Green_1", Label: "Green"},
			},
			NumberOfAnswersRequired: 1,
			CorrectAnswers:          []string{"Blue"},
		},
		Config: models.ActionConfig{
			SocialValidation: models.SocialValidationUserChoice,
		},
	})

	slog.Info("seeded stub data", "community_id", community.ID, "challenge_id", challenge.ID)
}

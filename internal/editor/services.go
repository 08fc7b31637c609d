package editor

import (
	"context"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// ChallengeService is the slice of the admin API the settings form and
// edit session depend on
type ChallengeService interface {
	GetChallenge(ctx context.Context, id string) (*models.Challenge, error)
	CreateChallenge(ctx context.Context, input models.ChallengeInput) (*models.Challenge, error)
	UpdateChallenge(ctx context.Context, id string, input models.ChallengeInput) (*models.Challenge, error)
}

// ActionService is the slice of the admin API the question editor
// depends on
type ActionService interface {
	ListActions(ctx context.Context, opts models.ActionListOptions) (*models.ActionPage, error)
	CreateAction(ctx context.Context, req models.ActionRequest) (*models.Action, error)
	UpdateAction(ctx context.Context, id string, req models.ActionRequest) (*models.Action, error)
}

// RewardService is the slice of the admin API the reward composer
// depends on
type RewardService interface {
	ListRewards(ctx context.Context, opts models.RewardListOptions) (*models.RewardPage, error)
	GetDistribution(ctx context.Context, challengeID string) (*models.Distribution, error)
	AssignDistribution(ctx context.Context, challengeID string, req models.DistributionRequest) (*models.Distribution, error)
}

// API combines everything an edit session needs. *client.Client
// satisfies it; tests inject fakes.
type API interface {
	ChallengeService
	ActionService
	RewardService
}

// EditorState tracks where an editor is in its lifecycle
type EditorState string

const (
	StateLoading EditorState = "loading"
	StateReady   EditorState = "ready"
	StateSaving  EditorState = "saving"
)

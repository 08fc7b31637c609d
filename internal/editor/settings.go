package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/nudj-platform/challenge-console/internal/models"
)

var validate = validator.New()

// SettingsForm edits the basic attributes of a challenge. In create mode
// (no challenge id) Save posts a new challenge; in edit mode it updates
// the existing one. Only basic form checks run here; everything beyond
// that is enforced server-side.
type SettingsForm struct {
	api ChallengeService

	mu          sync.Mutex
	challengeID string
	input       models.ChallengeInput
}

// NewSettingsForm creates a form in create mode for a community
func NewSettingsForm(api ChallengeService, communityID string) *SettingsForm {
	return &SettingsForm{
		api: api,
		input: models.ChallengeInput{
			CommunityID: communityID,
			Status:      models.StatusDraft,
		},
	}
}

// EditSettings creates a form pre-filled from an existing challenge
func EditSettings(api ChallengeService, challenge *models.Challenge) *SettingsForm {
	return &SettingsForm{
		api:         api,
		challengeID: challenge.ID,
		input: models.ChallengeInput{
			CommunityID: challenge.CommunityID,
			Details:     challenge.Details,
			Status:      challenge.Status,
			Featured:    challenge.Featured,
		},
	}
}

// Input returns the current form values
func (f *SettingsForm) Input() models.ChallengeInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// SetTitle sets the challenge title
func (f *SettingsForm) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Details.Title = title
}

// SetSubtitle sets the challenge subtitle
func (f *SettingsForm) SetSubtitle(subtitle string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Details.Subtitle = subtitle
}

// SetDescription sets the challenge description
func (f *SettingsForm) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Details.Description = description
}

// SetBannerURL sets the challenge banner image URL
func (f *SettingsForm) SetBannerURL(bannerURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Details.BannerURL = bannerURL
}

// SetStatus sets the challenge status
func (f *SettingsForm) SetStatus(status models.ChallengeStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid challenge status: %q", status)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Status = status
	return nil
}

// SetFeatured marks the challenge as featured
func (f *SettingsForm) SetFeatured(featured bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Featured = featured
}

// Validate runs the basic form checks and returns field-level errors
func (f *SettingsForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validate.Struct(f.input)
}

// Save validates and persists the form, creating or updating depending
// on whether the form is bound to an existing challenge
func (f *SettingsForm) Save(ctx context.Context) (*models.Challenge, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	f.mu.Lock()
	id := f.challengeID
	input := f.input
	f.mu.Unlock()

	var challenge *models.Challenge
	var err error
	if id == "" {
		challenge, err = f.api.CreateChallenge(ctx, input)
	} else {
		challenge, err = f.api.UpdateChallenge(ctx, id, input)
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.challengeID = challenge.ID
	f.mu.Unlock()
	return challenge, nil
}

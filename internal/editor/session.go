package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nudj-platform/challenge-console/internal/models"
)

// Common errors
var (
	ErrNoActiveCommunity = errors.New("no active community selected")
	ErrStaleScope        = errors.New("scope changed while the fetch was in flight")
	ErrNotLoaded         = errors.New("challenge not loaded")
	ErrSaveInProgress    = errors.New("a save is already in progress")
)

// Scope is the explicit community context every fetch is issued under.
// It replaces ambient global state: a response is only committed when the
// scope it was requested for is still the current one.
type Scope struct {
	OrganisationID string
	CommunityID    string
}

// Active returns true if a community is selected
func (s Scope) Active() bool {
	return s.CommunityID != ""
}

// EditSession coordinates one challenge identity across the settings
// form, the question editor and the reward composer. Each sub-editor is
// independently responsible for its own backend round trip; the session
// never merges their state.
type EditSession struct {
	api API

	mu        sync.Mutex
	scope     Scope
	gen       uint64
	challenge *models.Challenge
	questions *QuestionEditor
	rewards   *RewardComposer
	settings  *SettingsForm
}

// NewEditSession creates a session bound to a community scope
func NewEditSession(api API, scope Scope) *EditSession {
	return &EditSession{api: api, scope: scope}
}

// Scope returns the current scope
func (s *EditSession) Scope() Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// SetScope switches the active community. Any fetch still in flight for
// the previous scope will be discarded when it completes.
func (s *EditSession) SetScope(scope Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scope == s.scope {
		return
	}
	s.scope = scope
	s.gen++
	s.challenge = nil
	s.questions = nil
	s.rewards = nil
	s.settings = nil
}

// Load fetches the challenge and derives the sub-editors from the
// snapshot. The result is discarded with ErrStaleScope if the scope
// changed while the request was in flight.
func (s *EditSession) Load(ctx context.Context, challengeID string) error {
	s.mu.Lock()
	scope := s.scope
	gen := s.gen
	s.mu.Unlock()

	if !scope.Active() {
		return ErrNoActiveCommunity
	}

	challenge, err := s.api.GetChallenge(ctx, challengeID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		slog.Info("discarding stale challenge fetch",
			"challenge_id", challengeID,
			"community_id", scope.CommunityID,
		)
		return ErrStaleScope
	}

	s.challenge = challenge
	s.questions = NewQuestionEditor(s.api, challenge, scope.CommunityID)
	s.rewards = NewRewardComposer(s.api, challenge)
	s.settings = EditSettings(s.api, challenge)
	return nil
}

// Challenge returns the loaded snapshot, or nil
func (s *EditSession) Challenge() *models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge
}

// Questions returns the question editor for the loaded challenge
func (s *EditSession) Questions() (*QuestionEditor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questions == nil {
		return nil, ErrNotLoaded
	}
	return s.questions, nil
}

// Rewards returns the reward composer for the loaded challenge
func (s *EditSession) Rewards() (*RewardComposer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rewards == nil {
		return nil, ErrNotLoaded
	}
	return s.rewards, nil
}

// Settings returns the settings form for the loaded challenge
func (s *EditSession) Settings() (*SettingsForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil, ErrNotLoaded
	}
	return s.settings, nil
}

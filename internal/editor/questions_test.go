package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nudj-platform/challenge-console/internal/catalog"
	"github.com/nudj-platform/challenge-console/internal/models"
)

type fakeActionService struct {
	mu      sync.Mutex
	actions []models.Action
	creates []models.ActionRequest
	updates map[string]models.ActionRequest

	failCreate bool
	failUpdate map[string]bool
	nextID     int
}

func newFakeActionService() *fakeActionService {
	return &fakeActionService{
		updates:    make(map[string]models.ActionRequest),
		failUpdate: make(map[string]bool),
	}
}

func (f *fakeActionService) ListActions(ctx context.Context, opts models.ActionListOptions) (*models.ActionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.ActionPage{Edges: f.actions, TotalCount: len(f.actions)}, nil
}

func (f *fakeActionService) CreateAction(ctx context.Context, req models.ActionRequest) (*models.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return nil, errors.New("create rejected")
	}
	f.creates = append(f.creates, req)
	f.nextID++
	return &models.Action{ID: fmt.Sprintf("action-%d", f.nextID), Key: req.Key, Attributes: req.Attributes}, nil
}

func (f *fakeActionService) UpdateAction(ctx context.Context, id string, req models.ActionRequest) (*models.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate[id] {
		return nil, errors.New("update rejected")
	}
	f.updates[id] = req
	return &models.Action{ID: id, Key: req.Key, Attributes: req.Attributes}, nil
}

func testChallenge() *models.Challenge {
	return &models.Challenge{
		ID:          "ch-1",
		CommunityID: "com-1",
		Details:     models.ChallengeDetails{Title: "Test challenge"},
		Status:      models.StatusDraft,
	}
}

func multipleChoiceTemplate() catalog.Template {
	return catalog.Template{Icon: "📝", Title: "Multiple Choice", Type: catalog.TypeMultipleChoice}
}

func wireAction(id, question string, labels []string, correct []string, optional bool) models.Action {
	options := make([]models.ActionOption, len(labels))
	for i, l := range labels {
		options[i] = models.ActionOption{ID: fmt.Sprintf("%s_%d", l, i), Label: l}
	}
	return models.Action{
		ID:           id,
		CommunityID:  "com-1",
		AllocationID: "ch-1",
		AllocatedTo:  models.ActionAllocatedToChallenge,
		Category:     models.ActionCategoryQuestion,
		Key:          models.ActionKeyMultipleChoice,
		Attributes: models.ActionAttributes{
			Question:       question,
			Options:        options,
			CorrectAnswers: correct,
		},
		Config: models.ActionConfig{IsOptional: optional},
	}
}

func TestQuestionEditor_AddRemoveBookkeeping(t *testing.T) {
	e := NewQuestionEditor(newFakeActionService(), testChallenge(), "com-1")

	seen := make(map[int]bool)
	var ids []int
	for i := 0; i < 5; i++ {
		id := e.Add(multipleChoiceTemplate())
		require.False(t, seen[id], "local id %d assigned twice", id)
		seen[id] = true
		ids = append(ids, id)
	}
	assert.Equal(t, 5, e.Len())

	require.True(t, e.Remove(ids[1]))
	require.True(t, e.Remove(ids[3]))
	assert.Equal(t, 3, e.Len())

	// Removing an unknown id is a no-op
	assert.False(t, e.Remove(999))
	assert.Equal(t, 3, e.Len())

	// Ids stay unique even after interleaved adds and removes
	for i := 0; i < 3; i++ {
		id := e.Add(multipleChoiceTemplate())
		require.False(t, seen[id], "local id %d assigned twice", id)
		seen[id] = true
	}
	assert.Equal(t, 6, e.Len())
}

func TestQuestionEditor_AddSeedsCorrectAnswer(t *testing.T) {
	e := NewQuestionEditor(newFakeActionService(), testChallenge(), "com-1")

	id := e.Add(multipleChoiceTemplate())
	questions := e.Questions()
	require.Len(t, questions, 1)
	assert.Equal(t, id, questions[0].LocalID)
	require.Len(t, questions[0].Answers, 1)
	assert.True(t, questions[0].Answers[0].Correct)
	assert.False(t, questions[0].Persisted)

	// Non-question templates start with no answers
	e.Add(catalog.Template{Icon: "🔗", Title: "Visit an external link", Type: catalog.TypeExternalLink})
	questions = e.Questions()
	require.Len(t, questions, 2)
	assert.Empty(t, questions[1].Answers)
}

func TestQuestionEditor_ReorderMovesElement(t *testing.T) {
	e := NewQuestionEditor(newFakeActionService(), testChallenge(), "com-1")
	var ids []int
	for i := 0; i < 5; i++ {
		ids = append(ids, e.Add(multipleChoiceTemplate()))
	}

	order := func() []int {
		var out []int
		for _, q := range e.Questions() {
			out = append(out, q.LocalID)
		}
		return out
	}

	// Move first to the middle: remove-then-insert semantics
	require.True(t, e.Reorder(ids[0], ids[2]))
	assert.Equal(t, []int{ids[1], ids[2], ids[0], ids[3], ids[4]}, order())

	// Move last to the front
	require.True(t, e.Reorder(ids[4], ids[1]))
	assert.Equal(t, []int{ids[4], ids[1], ids[2], ids[0], ids[3]}, order())

	// Self-drop and unknown ids are no-ops
	assert.False(t, e.Reorder(ids[1], ids[1]))
	assert.False(t, e.Reorder(999, ids[1]))
	assert.Equal(t, []int{ids[4], ids[1], ids[2], ids[0], ids[3]}, order())

	// The multiset of elements is preserved
	assert.ElementsMatch(t, ids, order())
}

func TestQuestionEditor_ToggleCorrectUnsetsSiblings(t *testing.T) {
	e := NewQuestionEditor(newFakeActionService(), testChallenge(), "com-1")
	first := e.Add(multipleChoiceTemplate())
	second := e.Add(multipleChoiceTemplate())

	for i := 0; i < 2; i++ {
		require.NoError(t, e.AddOption(first))
		require.NoError(t, e.AddOption(second))
	}

	require.NoError(t, e.ToggleCorrect(first, 2))

	questions := e.Questions()
	require.Len(t, questions[0].Answers, 3)
	assert.Equal(t, []bool{false, false, true}, correctness(questions[0]))

	// The sibling question keeps its seeded correct answer untouched
	assert.Equal(t, []bool{true, false, false}, correctness(questions[1]))
}

func correctness(q Question) []bool {
	out := make([]bool, len(q.Answers))
	for i, a := range q.Answers {
		out[i] = a.Correct
	}
	return out
}

func TestQuestionEditor_LoadTransformsActions(t *testing.T) {
	svc := newFakeActionService()
	svc.actions = []models.Action{
		wireAction("a-1", "What color is the sky?", []string{"Blue", "Green"}, []string{"Blue"}, false),
		// Unrecognized subtypes are skipped
		{ID: "a-2", Key: "interaction-external-link"},
		// Partially populated records still transform
		{ID: "a-3", Key: models.ActionKeyMultipleChoice},
	}

	e := NewQuestionEditor(svc, testChallenge(), "com-1")
	assert.Equal(t, StateLoading, e.State())
	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, StateReady, e.State())

	questions := e.Questions()
	require.Len(t, questions, 2)

	q := questions[0]
	assert.Equal(t, "a-1", q.ActionID)
	assert.True(t, q.Persisted)
	assert.Equal(t, "What color is the sky?", q.Text)
	assert.True(t, q.Required)
	require.Len(t, q.Answers, 2)
	assert.Equal(t, Answer{Text: "Blue", Correct: true}, q.Answers[0])
	assert.Equal(t, Answer{Text: "Green", Correct: false}, q.Answers[1])

	empty := questions[1]
	assert.Equal(t, "a-3", empty.ActionID)
	assert.Empty(t, empty.Text)
	assert.Empty(t, empty.Answers)
}

func TestQuestionEditor_SaveDispatchesCreatesAndUpdates(t *testing.T) {
	svc := newFakeActionService()
	svc.actions = []models.Action{
		wireAction("a-1", "Existing one", []string{"A"}, []string{"A"}, true),
		wireAction("a-2", "Existing two", []string{"B"}, []string{"B"}, true),
	}

	e := NewQuestionEditor(svc, testChallenge(), "com-1")
	require.NoError(t, e.Load(context.Background()))

	for i := 0; i < 3; i++ {
		id := e.Add(multipleChoiceTemplate())
		require.NoError(t, e.SetText(id, fmt.Sprintf("New question %d", i+1)))
		require.NoError(t, e.SetAnswerText(id, 0, "Yes"))
	}

	report, err := e.Save(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 5)
	assert.NoError(t, report.Err())

	assert.Len(t, svc.creates, 3)
	assert.Len(t, svc.updates, 2)
	assert.Contains(t, svc.updates, "a-1")
	assert.Contains(t, svc.updates, "a-2")

	// Created questions are now persisted with their server ids
	for _, q := range e.Questions() {
		assert.True(t, q.Persisted)
		assert.NotEmpty(t, q.ActionID)
	}

	// A second save dispatches five updates and no creates
	report, err = e.Save(context.Background())
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Len(t, svc.creates, 3)
	assert.Len(t, svc.updates, 5)
}

func TestQuestionEditor_SavePayloadShape(t *testing.T) {
	svc := newFakeActionService()
	e := NewQuestionEditor(svc, testChallenge(), "com-1")
	require.NoError(t, e.Load(context.Background()))

	id := e.Add(multipleChoiceTemplate())
	require.NoError(t, e.SetText(id, "Pick one"))
	require.NoError(t, e.SetAnswerText(id, 0, "First"))
	require.NoError(t, e.AddOption(id))
	require.NoError(t, e.SetAnswerText(id, 1, "Second"))
	require.NoError(t, e.ToggleCorrect(id, 1))
	require.NoError(t, e.SetRequired(id, true))

	report, err := e.Save(context.Background())
	require.NoError(t, err)
	require.NoError(t, report.Err())

	require.Len(t, svc.creates, 1)
	req := svc.creates[0]
	assert.Equal(t, "com-1", req.CommunityID)
	assert.Equal(t, "ch-1", req.AllocationID)
	assert.Equal(t, models.ActionAllocatedToChallenge, req.AllocatedTo)
	assert.Equal(t, models.ActionCategoryQuestion, req.Category)
	assert.Equal(t, models.ActionKeyMultipleChoice, req.Key)
	require.NotNil(t, req.Details)
	assert.Equal(t, "Test challenge", req.Details.Title)

	assert.Equal(t, "Pick one", req.Attributes.Question)
	assert.Equal(t, 1, req.Attributes.NumberOfAnswersRequired)
	assert.Equal(t, []models.ActionOption{
		{ID: "First_0", Label: "First"},
		{ID: "Second_1", Label: "Second"},
	}, req.Attributes.Options)
	assert.Equal(t, []string{"Second"}, req.Attributes.CorrectAnswers)

	assert.False(t, req.Config.IsOptional)
	assert.Equal(t, models.SocialValidationUserChoice, req.Config.SocialValidation)
}

func TestQuestionEditor_SaveReportsPartialFailures(t *testing.T) {
	svc := newFakeActionService()
	svc.actions = []models.Action{
		wireAction("a-1", "Keeps working", []string{"A"}, []string{"A"}, true),
		wireAction("a-2", "Will fail", []string{"B"}, []string{"B"}, true),
	}
	svc.failUpdate["a-2"] = true

	e := NewQuestionEditor(svc, testChallenge(), "com-1")
	require.NoError(t, e.Load(context.Background()))
	newID := e.Add(multipleChoiceTemplate())
	require.NoError(t, e.SetAnswerText(newID, 0, "Yes"))

	report, err := e.Save(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 3)

	// Siblings are isolated: one failure, two successes
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Error(t, report.Err())

	// The sibling update and the create both landed
	assert.Contains(t, svc.updates, "a-1")
	assert.Len(t, svc.creates, 1)

	// The failed question stays persisted under its old id and can be
	// retried on the next save
	for _, q := range e.Questions() {
		if q.ActionID == "a-2" {
			assert.True(t, q.Persisted)
		}
	}
}

package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nudj-platform/challenge-console/internal/catalog"
	"github.com/nudj-platform/challenge-console/internal/models"
)

// saveConcurrency bounds the parallel create/update batch on save
const saveConcurrency = 8

// QuestionEditor owns the ordered collection of questions attached to
// one challenge. All mutation is session-local; nothing reaches the
// backend until Save.
type QuestionEditor struct {
	api         ActionService
	challenge   *models.Challenge
	communityID string

	mu        sync.Mutex
	state     EditorState
	questions []Question
	nextID    int
}

// NewQuestionEditor creates an empty editor for a challenge
func NewQuestionEditor(api ActionService, challenge *models.Challenge, communityID string) *QuestionEditor {
	return &QuestionEditor{
		api:         api,
		challenge:   challenge,
		communityID: communityID,
		state:       StateLoading,
	}
}

// State reports the editor lifecycle state
func (e *QuestionEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Load fetches the existing actions for the challenge and maps the
// recognized multiple-choice question actions into editable questions.
// Other action subtypes are left untouched on the backend.
func (e *QuestionEditor) Load(ctx context.Context) error {
	page, err := e.api.ListActions(ctx, models.ActionListOptions{
		ChallengeID: e.challenge.ID,
		CommunityID: e.communityID,
		Limit:       100,
	})
	if err != nil {
		e.mu.Lock()
		e.state = StateReady
		e.mu.Unlock()
		return fmt.Errorf("failed to fetch actions: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.questions = e.questions[:0]
	e.nextID = 0
	for _, action := range page.Edges {
		if action.Key != models.ActionKeyMultipleChoice {
			continue
		}
		e.nextID++
		e.questions = append(e.questions, questionFromAction(action, e.nextID))
	}
	e.state = StateReady
	return nil
}

// Questions returns a deep copy of the current list in display order
func (e *QuestionEditor) Questions() []Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Question, len(e.questions))
	for i, q := range e.questions {
		out[i] = q.clone()
	}
	return out
}

// Len returns the number of questions
func (e *QuestionEditor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.questions)
}

// Add appends a new question built from a picker template and returns
// its local id. Multiple-choice questions start with one empty answer
// flagged correct.
func (e *QuestionEditor) Add(tmpl catalog.Template) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	q := Question{
		LocalID: e.nextID,
		Type:    tmpl.Type,
		Icon:    tmpl.Icon,
	}
	if tmpl.Type.SeedsAnswer() {
		q.Answers = []Answer{{Correct: true}}
	}
	e.questions = append(e.questions, q)
	return q.LocalID
}

// Remove deletes a question by local id
func (e *QuestionEditor) Remove(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, q := range e.questions {
		if q.LocalID == id {
			e.questions = slices.Delete(e.questions, i, i+1)
			return true
		}
	}
	return false
}

// Reorder moves the dragged question to the target question's position,
// shifting the elements in between. Dropping a question onto itself, or
// referencing an unknown id, is a no-op.
func (e *QuestionEditor) Reorder(draggedID, targetID int) bool {
	if draggedID == targetID {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	oldIndex := e.indexOf(draggedID)
	newIndex := e.indexOf(targetID)
	if oldIndex < 0 || newIndex < 0 {
		return false
	}

	q := e.questions[oldIndex]
	e.questions = slices.Delete(e.questions, oldIndex, oldIndex+1)
	e.questions = slices.Insert(e.questions, newIndex, q)
	return true
}

// SetText sets the question text
func (e *QuestionEditor) SetText(id int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.find(id)
	if q == nil {
		return fmt.Errorf("question %d not found", id)
	}
	q.Text = text
	return nil
}

// SetRequired marks whether answering the question is mandatory
func (e *QuestionEditor) SetRequired(id int, required bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.find(id)
	if q == nil {
		return fmt.Errorf("question %d not found", id)
	}
	q.Required = required
	return nil
}

// AddOption appends an empty answer to a question
func (e *QuestionEditor) AddOption(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.find(id)
	if q == nil {
		return fmt.Errorf("question %d not found", id)
	}
	q.Answers = append(q.Answers, Answer{})
	return nil
}

// RemoveOption removes the answer at index from a question
func (e *QuestionEditor) RemoveOption(id, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.find(id)
	if q == nil {
		return fmt.Errorf("question %d not found", id)
	}
	if index < 0 || index >= len(q.Answers) {
		return fmt.Errorf("answer index %d out of range", index)
	}
	q.Answers = slices.Delete(q.Answers, index, index+1)
	return nil
}

// SetAnswerText sets the text of one answer
func (e *QuestionEditor) SetAnswerText(id, index int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.find(id)
	if q == nil {
		return fmt.Errorf("question %d not found", id)
	}
	if index < 0 || index >= len(q.Answers) {
		return fmt.Errorf("answer index %d out of range", index)
	}
	q.Answers[index].Text = text
	return nil
}

// ToggleCorrect marks the answer at index as the correct one, unsetting
// every sibling. Exactly one answer of a question is correct at a time.
func (e *QuestionEditor) ToggleCorrect(id, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.find(id)
	if q == nil {
		return fmt.Errorf("question %d not found", id)
	}
	if index < 0 || index >= len(q.Answers) {
		return fmt.Errorf("answer index %d out of range", index)
	}
	for i := range q.Answers {
		q.Answers[i].Correct = i == index
	}
	return nil
}

// SaveOutcome is the result of persisting one question
type SaveOutcome struct {
	LocalID  int
	ActionID string
	Created  bool
	Err      error
}

// SaveReport collects the per-question outcomes of one save batch.
// Callers must consult it instead of assuming an all-or-nothing result:
// sibling requests are isolated, so some questions can persist while
// others fail.
type SaveReport struct {
	Outcomes []SaveOutcome
}

// Failed returns the outcomes that did not persist
func (r *SaveReport) Failed() []SaveOutcome {
	var failed []SaveOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err returns nil if every question persisted, otherwise a single error
// summarizing the failures
func (r *SaveReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, len(failed))
	for i, o := range failed {
		parts[i] = fmt.Sprintf("question %d: %v", o.LocalID, o.Err)
	}
	return fmt.Errorf("%d of %d questions failed to save: %s", len(failed), len(r.Outcomes), strings.Join(parts, "; "))
}

// Save persists every question, creating the new ones and updating the
// already persisted ones. Requests are dispatched concurrently with a
// bounded limit; a failing request never aborts its siblings. Save
// returns only after all requests settle. Questions created successfully
// are marked persisted with their server-assigned id.
func (e *QuestionEditor) Save(ctx context.Context) (*SaveReport, error) {
	e.mu.Lock()
	if e.state == StateSaving {
		e.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	e.state = StateSaving
	snapshot := make([]Question, len(e.questions))
	for i, q := range e.questions {
		snapshot[i] = q.clone()
	}
	e.mu.Unlock()

	outcomes := make([]SaveOutcome, len(snapshot))

	var g errgroup.Group
	g.SetLimit(saveConcurrency)
	for i, q := range snapshot {
		i, q := i, q
		g.Go(func() error {
			req := actionRequest(q, e.challenge, e.communityID)
			outcome := SaveOutcome{LocalID: q.LocalID}

			if q.Persisted {
				action, err := e.api.UpdateAction(ctx, q.ActionID, req)
				if err != nil {
					slog.Error("failed to update action",
						"error", err,
						"action_id", q.ActionID,
						"challenge_id", e.challenge.ID,
					)
					outcome.Err = err
				} else {
					outcome.ActionID = action.ID
				}
			} else {
				action, err := e.api.CreateAction(ctx, req)
				if err != nil {
					slog.Error("failed to create action",
						"error", err,
						"challenge_id", e.challenge.ID,
					)
					outcome.Err = err
				} else {
					outcome.ActionID = action.ID
					outcome.Created = true
				}
			}

			outcomes[i] = outcome
			return nil
		})
	}
	// Errors are carried in the outcomes, never returned from the group.
	_ = g.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range outcomes {
		if o.Created {
			if q := e.find(o.LocalID); q != nil {
				q.Persisted = true
				q.ActionID = o.ActionID
			}
		}
	}
	e.state = StateReady

	return &SaveReport{Outcomes: outcomes}, nil
}

func (e *QuestionEditor) find(id int) *Question {
	for i := range e.questions {
		if e.questions[i].LocalID == id {
			return &e.questions[i]
		}
	}
	return nil
}

func (e *QuestionEditor) indexOf(id int) int {
	for i := range e.questions {
		if e.questions[i].LocalID == id {
			return i
		}
	}
	return -1
}

package editor

import (
	"fmt"
	"slices"

	"github.com/nudj-platform/challenge-console/internal/catalog"
	"github.com/nudj-platform/challenge-console/internal/models"
)

// Answer is one option of a question as the user edits it
type Answer struct {
	Text    string
	Correct bool
}

// Question is a challenge action as the user composes it. Identity
// inside the editor is always LocalID, a session-scoped sequential
// integer; ActionID is the server identifier and is only set once the
// question has been persisted.
type Question struct {
	LocalID   int
	ActionID  string
	Persisted bool
	Text      string
	Type      catalog.ActionType
	Icon      string
	Answers   []Answer
	Required  bool
}

// clone returns a deep copy so callers can never alias editor state
func (q Question) clone() Question {
	out := q
	out.Answers = slices.Clone(q.Answers)
	return out
}

// questionFromAction maps a wire-level action into an editable question.
// The transform is total: missing optional fields map to zero values, so
// a well-formed but partially populated record never fails to load.
func questionFromAction(a models.Action, localID int) Question {
	answers := make([]Answer, 0, len(a.Attributes.Options))
	for _, opt := range a.Attributes.Options {
		answers = append(answers, Answer{
			Text:    opt.Label,
			Correct: slices.Contains(a.Attributes.CorrectAnswers, opt.Label),
		})
	}

	return Question{
		LocalID:   localID,
		ActionID:  a.ID,
		Persisted: true,
		Text:      a.Attributes.Question,
		Type:      catalog.TypeMultipleChoice,
		Answers:   answers,
		Required:  !a.Config.IsOptional,
	}
}

// actionRequest builds the create/update envelope for one question
func actionRequest(q Question, challenge *models.Challenge, communityID string) models.ActionRequest {
	options := make([]models.ActionOption, len(q.Answers))
	correct := make([]string, 0, len(q.Answers))
	for i, a := range q.Answers {
		options[i] = models.ActionOption{
			ID:    fmt.Sprintf("%s_%d", a.Text, i),
			Label: a.Text,
		}
		if a.Correct {
			correct = append(correct, a.Text)
		}
	}

	key := q.Type.Key()
	category := models.ActionCategoryQuestion
	if q.Type.Section() == catalog.SectionInteraction {
		category = models.ActionCategoryInteraction
	}

	return models.ActionRequest{
		CommunityID:  communityID,
		AllocationID: challenge.ID,
		AllocatedTo:  models.ActionAllocatedToChallenge,
		Category:     category,
		Key:          key,
		Details:      &challenge.Details,
		Attributes: models.ActionAttributes{
			Key:                     key,
			Question:                q.Text,
			Options:                 options,
			NumberOfAnswersRequired: 1,
			CorrectAnswers:          correct,
		},
		Config: models.ActionConfig{
			IsOptional:       !q.Required,
			SocialValidation: models.SocialValidationUserChoice,
		},
	}
}

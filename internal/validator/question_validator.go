package validator

import (
	apperrors "github.com/spenzaga/cbt-exam-service/internal/errors"
	"github.com/spenzaga/cbt-exam-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion checks a question for structural problems that
// would make it ungradable.
func (v *QuestionValidator) ValidateQuestion(q *models.Question) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if q.QuestionID == "" {
		errs = append(errs, *apperrors.NewValidationError("question_id", "is required", nil))
	}
	if q.QuestionText == "" {
		errs = append(errs, *apperrors.NewValidationError("question_text", "is required", nil))
	}
	if !q.QuestionType.IsValid() {
		errs = append(errs, *apperrors.NewValidationError("question_type", "is not a known question type", q.QuestionType))
		return errs
	}
	if q.Points != "" && q.PointValue() == 0 {
		// Zero-weight questions are legal, unparsable weights are not.
		if q.Points != "0" {
			errs = append(errs, *apperrors.NewValidationError("points", "must be a non-negative number", q.Points))
		}
	}

	errs = append(errs, v.validateOptions(q)...)
	return errs
}

func (v *QuestionValidator) validateOptions(q *models.Question) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	options := q.Options()
	correct := q.CorrectAnswers()

	switch q.QuestionType {
	case models.TrueFalse, models.MultipleChoice, models.MultipleCorrect:
		if len(options) < 2 {
			errs = append(errs, *apperrors.NewValidationError("answer_1", "needs at least two options", len(options)))
		}
		if len(correct) == 0 {
			errs = append(errs, *apperrors.NewValidationError("answer_1", "needs at least one option marked correct", nil))
		}
	case models.TextInput, models.NumberGuess:
		if len(correct) == 0 {
			errs = append(errs, *apperrors.NewValidationError("answer_1", "needs at least one accepted answer marked correct", nil))
		}
	case models.Matching, models.Sequence:
		if len(options) < 2 {
			errs = append(errs, *apperrors.NewValidationError("answer_1", "needs at least two options", len(options)))
		}
	}
	return errs
}

// ValidateSet validates a whole question upload and rejects duplicate
// question ids.
func (v *QuestionValidator) ValidateSet(questions []models.Question) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	seen := make(map[string]bool, len(questions))
	for i := range questions {
		errs = append(errs, v.ValidateQuestion(&questions[i])...)
		id := questions[i].QuestionID
		if id == "" {
			continue
		}
		if seen[id] {
			errs = append(errs, *apperrors.NewValidationError("question_id", "is duplicated in the set", id))
		}
		seen[id] = true
	}
	return errs
}

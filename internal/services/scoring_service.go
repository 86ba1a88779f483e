package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/spenzaga/cbt-exam-service/internal/models"
)

// ScoringService grades a submission against the question set. All
// methods are pure: malformed input never errors, it grades as wrong.
type ScoringService interface {
	CheckAnswer(question *models.Question, response models.Response) bool
	BuildScoreRecord(questions []models.Question, responses map[string]models.Response, studentID, duration string) models.ScoreRecord
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// CheckAnswer reports whether the response is correct for the question.
// Empty responses, shape mismatches and unknown question types all
// grade as wrong.
func (s *scoringService) CheckAnswer(question *models.Question, response models.Response) bool {
	if question == nil || response.IsEmpty() {
		return false
	}

	switch question.QuestionType {
	case models.TrueFalse, models.MultipleChoice:
		return s.checkExact(question, response)
	case models.MultipleCorrect:
		return s.checkMultipleCorrect(question, response)
	case models.TextInput:
		return s.checkTextInput(question, response)
	case models.NumberGuess:
		return s.checkNumberGuess(question, response)
	case models.Matching:
		return s.checkMatching(question, response)
	case models.Sequence:
		return s.checkSequence(question, response)
	}
	return false
}

// checkExact matches a single selection against the marked options,
// case-sensitively.
func (s *scoringService) checkExact(q *models.Question, r models.Response) bool {
	if r.IsList {
		return false
	}
	for _, correct := range q.CorrectAnswers() {
		if r.Scalar == correct {
			return true
		}
	}
	return false
}

// checkMultipleCorrect requires the selection to cover every marked
// option exactly, in any order.
func (s *scoringService) checkMultipleCorrect(q *models.Question, r models.Response) bool {
	if !r.IsList {
		return false
	}
	correct := q.CorrectAnswers()
	if len(correct) == 0 || len(r.List) != len(correct) {
		return false
	}
	correctSet := make(map[string]bool, len(correct))
	for _, c := range correct {
		correctSet[c] = true
	}
	for _, sel := range r.List {
		if !correctSet[sel] {
			return false
		}
	}
	return true
}

// checkTextInput compares case-insensitively with surrounding
// whitespace ignored.
func (s *scoringService) checkTextInput(q *models.Question, r models.Response) bool {
	if r.IsList {
		return false
	}
	given := strings.ToLower(strings.TrimSpace(r.Scalar))
	for _, correct := range q.CorrectAnswers() {
		if given == strings.ToLower(strings.TrimSpace(correct)) {
			return true
		}
	}
	return false
}

// checkNumberGuess compares the trimmed literal, so "07" does not
// match "7".
func (s *scoringService) checkNumberGuess(q *models.Question, r models.Response) bool {
	if r.IsList {
		return false
	}
	given := strings.TrimSpace(r.Scalar)
	for _, correct := range q.CorrectAnswers() {
		if given == strings.TrimSpace(correct) {
			return true
		}
	}
	return false
}

// checkMatching requires every stated pair, in any order. Pairs are
// the sanitized option strings.
func (s *scoringService) checkMatching(q *models.Question, r models.Response) bool {
	if !r.IsList {
		return false
	}
	pairs := make([]string, 0, 4)
	for _, opt := range q.Options() {
		pairs = append(pairs, strings.TrimPrefix(opt, models.CorrectMarker))
	}
	if len(pairs) == 0 || len(r.List) != len(pairs) {
		return false
	}
	want := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		want[p] = true
	}
	for _, sel := range r.List {
		if !want[sel] {
			return false
		}
	}
	return true
}

// checkSequence compares position by position against the option
// order. A shorter response fails, trailing extras are ignored.
func (s *scoringService) checkSequence(q *models.Question, r models.Response) bool {
	if !r.IsList {
		return false
	}
	order := make([]string, 0, 4)
	for _, opt := range q.Options() {
		order = append(order, strings.TrimPrefix(opt, models.CorrectMarker))
	}
	if len(order) == 0 || len(r.List) < len(order) {
		return false
	}
	for i, want := range order {
		if r.List[i] != want {
			return false
		}
	}
	return true
}

// BuildScoreRecord grades every question, awarding the question's full
// point value or zero, and normalizes the total to a 0-100 percentage.
// The pass decision uses the unrounded percentage; the stored score is
// the rounded integer.
func (s *scoringService) BuildScoreRecord(questions []models.Question, responses map[string]models.Response, studentID, duration string) models.ScoreRecord {
	answers := make([]models.AnswerRecord, 0, len(questions))
	var earned, max float64

	for i := range questions {
		q := &questions[i]
		response := responses[q.QuestionID]
		correct := s.CheckAnswer(q, response)

		points := q.PointValue()
		max += points
		awarded := 0.0
		if correct {
			awarded = points
			earned += points
		}

		answers = append(answers, models.AnswerRecord{
			QuestionID: q.QuestionID,
			Response:   response,
			Correct:    correct,
			Points:     formatPoints(awarded),
		})
	}

	record := models.ScoreRecord{
		StudentID: studentID,
		Answers:   answers,
		Duration:  duration,
		Status:    FailLabel,
	}
	if max <= 0 {
		record.TotalScore = "0"
		return record
	}

	percent := earned / max * 100
	if percent >= PassThreshold {
		record.Status = PassLabel
	}
	record.TotalScore = strconv.Itoa(int(math.Round(percent)))
	return record
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package models

import (
	"strconv"
	"strings"
)

type QuestionType string

// Wire values as stored in exported snapshots.
const (
	TrueFalse       QuestionType = "TF"
	MultipleChoice  QuestionType = "MC"
	MultipleCorrect QuestionType = "MR"
	TextInput       QuestionType = "TI"
	Matching        QuestionType = "MG"
	Sequence        QuestionType = "SEQ"
	NumberGuess     QuestionType = "NUMG"
)

// CorrectMarker prefixes an answer option that counts as correct.
const CorrectMarker = "*"

func (qt QuestionType) IsValid() bool {
	switch qt {
	case TrueFalse, MultipleChoice, MultipleCorrect, TextInput, Matching, Sequence, NumberGuess:
		return true
	}
	return false
}

type Question struct {
	QuestionID        string       `json:"question_id"`
	QuestionType      QuestionType `json:"question_type"`
	Image             string       `json:"image,omitempty"`
	Video             string       `json:"video,omitempty"`
	Audio             string       `json:"audio,omitempty"`
	QuestionParagraph string       `json:"question_paragraph,omitempty"`
	QuestionText      string       `json:"question_text"`
	Answer1           string       `json:"answer_1,omitempty"`
	Answer2           string       `json:"answer_2,omitempty"`
	Answer3           string       `json:"answer_3,omitempty"`
	Answer4           string       `json:"answer_4,omitempty"`
	CorrectFeedback   string       `json:"correct_feedback,omitempty"`
	IncorrectFeedback string       `json:"incorrect_feedback,omitempty"`
	Points            string       `json:"points"`
}

// Options returns the non-empty answer slots in declaration order,
// marker prefixes included.
func (q *Question) Options() []string {
	opts := make([]string, 0, 4)
	for _, a := range []string{q.Answer1, q.Answer2, q.Answer3, q.Answer4} {
		if a != "" {
			opts = append(opts, a)
		}
	}
	return opts
}

// CorrectAnswers returns the marked options with the marker stripped.
func (q *Question) CorrectAnswers() []string {
	var correct []string
	for _, opt := range q.Options() {
		if strings.HasPrefix(opt, CorrectMarker) {
			correct = append(correct, strings.TrimPrefix(opt, CorrectMarker))
		}
	}
	return correct
}

// Distractors returns the unmarked options.
func (q *Question) Distractors() []string {
	var wrong []string
	for _, opt := range q.Options() {
		if !strings.HasPrefix(opt, CorrectMarker) {
			wrong = append(wrong, opt)
		}
	}
	return wrong
}

// PointValue parses the points field, treating anything unparsable as 0.
func (q *Question) PointValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(q.Points), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Sanitized returns a copy safe to serve to examinees: correctness
// markers removed from every option.
func (q *Question) Sanitized() Question {
	s := *q
	s.Answer1 = strings.TrimPrefix(s.Answer1, CorrectMarker)
	s.Answer2 = strings.TrimPrefix(s.Answer2, CorrectMarker)
	s.Answer3 = strings.TrimPrefix(s.Answer3, CorrectMarker)
	s.Answer4 = strings.TrimPrefix(s.Answer4, CorrectMarker)
	return s
}

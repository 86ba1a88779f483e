package models

import (
	"strconv"
	"strings"
)

type AnswerRecord struct {
	QuestionID string   `json:"question_id"`
	Response   Response `json:"response"`
	Correct    bool     `json:"correct"`
	Points     string   `json:"points"`
}

type ScoreRecord struct {
	StudentID  string         `json:"student_id"`
	Answers    []AnswerRecord `json:"answers"`
	TotalScore string         `json:"total_score"`
	Duration   string         `json:"duration"`
	Status     string         `json:"status"`
}

// ScorePercent parses the stored percentage score, returning 0 for
// records written with a malformed value.
func (s *ScoreRecord) ScorePercent() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s.TotalScore), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// AnswerFor returns the recorded answer for a question, if any.
func (s *ScoreRecord) AnswerFor(questionID string) (AnswerRecord, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return AnswerRecord{}, false
}

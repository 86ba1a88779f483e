package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spenzaga/cbt-exam-service/internal/models"
)

func mcQuestion(id, correct string, distractors ...string) models.Question {
	q := models.Question{
		QuestionID:   id,
		QuestionType: models.MultipleChoice,
		QuestionText: "q " + id,
		Points:       "10",
		Answer1:      models.CorrectMarker + correct,
	}
	slots := []*string{&q.Answer2, &q.Answer3, &q.Answer4}
	for i, d := range distractors {
		if i < len(slots) {
			*slots[i] = d
		}
	}
	return q
}

func TestCheckAnswer(t *testing.T) {
	s := NewScoringService()

	t.Run("MultipleChoice", func(t *testing.T) {
		q := mcQuestion("q1", "Paris", "London", "Berlin")

		assert.True(t, s.CheckAnswer(&q, models.ScalarResponse("Paris")))
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("paris")), "comparison is case sensitive")
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("London")))
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("")))
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("Paris")), "list response to a single-select question")
	})

	t.Run("TrueFalse", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q2",
			QuestionType: models.TrueFalse,
			Answer1:      "*Benar",
			Answer2:      "Salah",
			Points:       "5",
		}
		assert.True(t, s.CheckAnswer(&q, models.ScalarResponse("Benar")))
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("Salah")))
	})

	t.Run("MultipleCorrect", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q3",
			QuestionType: models.MultipleCorrect,
			Answer1:      "*2",
			Answer2:      "*3",
			Answer3:      "4",
			Answer4:      "9",
			Points:       "10",
		}
		assert.True(t, s.CheckAnswer(&q, models.ListResponse("2", "3")))
		assert.True(t, s.CheckAnswer(&q, models.ListResponse("3", "2")), "order does not matter")
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("2")), "partial selection")
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("2", "3", "4")), "extra selection")
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("2")))
	})

	t.Run("TextInput", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q4",
			QuestionType: models.TextInput,
			Answer1:      "*Jakarta",
			Points:       "10",
		}
		assert.True(t, s.CheckAnswer(&q, models.ScalarResponse("jakarta")))
		assert.True(t, s.CheckAnswer(&q, models.ScalarResponse("  JAKARTA  ")))
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("Bandung")))
	})

	t.Run("NumberGuess", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q5",
			QuestionType: models.NumberGuess,
			Answer1:      "*7",
			Points:       "10",
		}
		assert.True(t, s.CheckAnswer(&q, models.ScalarResponse("7")))
		assert.True(t, s.CheckAnswer(&q, models.ScalarResponse(" 7 ")))
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("07")), "literal comparison")
	})

	t.Run("Matching", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q6",
			QuestionType: models.Matching,
			Answer1:      "kucing=cat",
			Answer2:      "anjing=dog",
			Points:       "10",
		}
		assert.True(t, s.CheckAnswer(&q, models.ListResponse("anjing=dog", "kucing=cat")))
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("kucing=dog", "anjing=cat")))
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("kucing=cat")))
	})

	t.Run("Sequence", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q7",
			QuestionType: models.Sequence,
			Answer1:      "satu",
			Answer2:      "dua",
			Answer3:      "tiga",
			Points:       "10",
		}
		assert.True(t, s.CheckAnswer(&q, models.ListResponse("satu", "dua", "tiga")))
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("dua", "satu", "tiga")), "position matters")
		assert.False(t, s.CheckAnswer(&q, models.ListResponse("satu", "dua")), "shorter response fails")
		assert.True(t, s.CheckAnswer(&q, models.ListResponse("satu", "dua", "tiga", "empat")), "entries past the option list are ignored")
	})

	t.Run("UnknownType", func(t *testing.T) {
		q := models.Question{
			QuestionID:   "q8",
			QuestionType: "essay",
			Answer1:      "*anything",
			Points:       "10",
		}
		assert.False(t, s.CheckAnswer(&q, models.ScalarResponse("anything")))
	})

	t.Run("NilQuestion", func(t *testing.T) {
		assert.False(t, s.CheckAnswer(nil, models.ScalarResponse("x")))
	})
}

func TestBuildScoreRecord(t *testing.T) {
	s := NewScoringService()

	questions := []models.Question{
		mcQuestion("q1", "A", "B"),
		mcQuestion("q2", "C", "D"),
		mcQuestion("q3", "E", "F"),
		mcQuestion("q4", "G", "H"),
	}

	t.Run("PerfectScore", func(t *testing.T) {
		responses := map[string]models.Response{
			"q1": models.ScalarResponse("A"),
			"q2": models.ScalarResponse("C"),
			"q3": models.ScalarResponse("E"),
			"q4": models.ScalarResponse("G"),
		}
		record := s.BuildScoreRecord(questions, responses, "s1", "00:12:30")

		assert.Equal(t, "100", record.TotalScore)
		assert.Equal(t, PassLabel, record.Status)
		assert.Equal(t, "00:12:30", record.Duration)
		require.Len(t, record.Answers, 4)
		for _, a := range record.Answers {
			assert.True(t, a.Correct)
			assert.Equal(t, "10", a.Points)
		}
	})

	t.Run("PassBoundary", func(t *testing.T) {
		responses := map[string]models.Response{
			"q1": models.ScalarResponse("A"),
			"q2": models.ScalarResponse("C"),
			"q3": models.ScalarResponse("E"),
			"q4": models.ScalarResponse("wrong"),
		}
		record := s.BuildScoreRecord(questions, responses, "s2", "00:10:00")

		assert.Equal(t, "75", record.TotalScore)
		assert.Equal(t, PassLabel, record.Status, "exactly 75 passes")
	})

	t.Run("FailBelowThreshold", func(t *testing.T) {
		responses := map[string]models.Response{
			"q1": models.ScalarResponse("A"),
			"q2": models.ScalarResponse("C"),
		}
		record := s.BuildScoreRecord(questions, responses, "s3", "00:05:00")

		assert.Equal(t, "50", record.TotalScore)
		assert.Equal(t, FailLabel, record.Status)
	})

	t.Run("WrongAnswersAwardZero", func(t *testing.T) {
		record := s.BuildScoreRecord(questions, nil, "s4", "00:01:00")

		assert.Equal(t, "0", record.TotalScore)
		assert.Equal(t, FailLabel, record.Status)
		require.Len(t, record.Answers, 4)
		for _, a := range record.Answers {
			assert.False(t, a.Correct)
			assert.Equal(t, "0", a.Points)
			assert.True(t, a.Response.IsEmpty())
		}
	})

	t.Run("EmptyQuestionSet", func(t *testing.T) {
		record := s.BuildScoreRecord(nil, nil, "s5", "00:00:10")

		assert.Equal(t, "0", record.TotalScore)
		assert.Equal(t, FailLabel, record.Status)
		assert.Empty(t, record.Answers)
	})

	t.Run("Deterministic", func(t *testing.T) {
		responses := map[string]models.Response{
			"q1": models.ScalarResponse("A"),
			"q3": models.ScalarResponse("E"),
		}
		first := s.BuildScoreRecord(questions, responses, "s6", "00:07:00")
		second := s.BuildScoreRecord(questions, responses, "s6", "00:07:00")
		assert.Equal(t, first, second)
	})

	t.Run("ZeroWeightQuestionSet", func(t *testing.T) {
		zeroWeight := []models.Question{
			{QuestionID: "z1", QuestionType: models.MultipleChoice, Answer1: "*A", Answer2: "B", Points: "0"},
		}
		record := s.BuildScoreRecord(zeroWeight, map[string]models.Response{
			"z1": models.ScalarResponse("A"),
		}, "s7", "00:00:30")

		assert.Equal(t, "0", record.TotalScore)
		assert.Equal(t, FailLabel, record.Status)
		assert.True(t, record.Answers[0].Correct)
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3725, "01:02:05"},
		{36000, "10:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

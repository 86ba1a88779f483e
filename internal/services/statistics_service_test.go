package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

func plainScore(studentID, total, status string) models.ScoreRecord {
	return models.ScoreRecord{
		StudentID:  studentID,
		TotalScore: total,
		Duration:   "00:20:00",
		Status:     status,
	}
}

func TestCohortStatistics(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewStatisticsService(repo, utils.NewDevelopmentLogger())
	ctx := context.Background()

	students := []models.Student{
		{StudentID: "s1", Name: "Andi", Class: "9A", NIS: "100"},
		{StudentID: "s2", Name: "Budi", Class: "9A", NIS: "101"},
		{StudentID: "s3", Name: "Citra", Class: "9B", NIS: "102"},
		{StudentID: "s4", Name: "Dewi", Class: "9B", NIS: "103"},
	}
	for i := range students {
		require.NoError(t, repo.Student.Save(ctx, &students[i]))
	}

	scores := []models.ScoreRecord{
		plainScore("s1", "90", PassLabel),
		plainScore("s2", "75", PassLabel),
		plainScore("s3", "40", FailLabel),
	}
	for i := range scores {
		require.NoError(t, repo.Score.Save(ctx, &scores[i]))
	}

	stats, err := svc.CohortStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Participants)
	assert.InDelta(t, 68.33, stats.Average, 0.001)
	assert.Equal(t, 90.0, stats.Highest)
	assert.Equal(t, 40.0, stats.Lowest)
	assert.Equal(t, 2, stats.PassCount)
	assert.Equal(t, 1, stats.FailCount)

	require.Len(t, stats.Bands, 5)
	assert.Equal(t, 0, stats.Bands[0].Count)
	assert.Equal(t, 1, stats.Bands[1].Count, "40 lands in 21-40")
	assert.Equal(t, 0, stats.Bands[2].Count)
	assert.Equal(t, 1, stats.Bands[3].Count, "75 lands in 61-80")
	assert.Equal(t, 1, stats.Bands[4].Count, "90 lands in 81-100")

	require.Len(t, stats.Classes, 2)
	assert.Equal(t, "9A", stats.Classes[0].Class)
	assert.Equal(t, 2, stats.Classes[0].Total)
	assert.Equal(t, 2, stats.Classes[0].Completed)
	assert.InDelta(t, 82.5, stats.Classes[0].Average, 0.001)

	assert.Equal(t, "9B", stats.Classes[1].Class)
	assert.Equal(t, 2, stats.Classes[1].Total)
	assert.Equal(t, 1, stats.Classes[1].Completed)
	assert.Equal(t, 40.0, stats.Classes[1].Average)
}

func TestCohortStatistics_BandBoundaries(t *testing.T) {
	tests := []struct {
		score string
		band  int
	}{
		{"0", 0},
		{"20", 0},
		{"21", 1},
		{"40", 1},
		{"41", 2},
		{"60", 2},
		{"61", 3},
		{"80", 3},
		{"81", 4},
		{"100", 4},
	}
	for _, tt := range tests {
		stats := aggregateCohort([]models.ScoreRecord{plainScore("s", tt.score, FailLabel)}, nil)
		assert.Equal(t, 1, stats.Bands[tt.band].Count, "score %s should land in band %d", tt.score, tt.band)
	}
}

func TestCohortStatistics_EmptyCohort(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewStatisticsService(repo, utils.NewDevelopmentLogger())

	stats, err := svc.CohortStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Participants)
	assert.Equal(t, 0.0, stats.Average)
	assert.Equal(t, 0.0, stats.Highest)
	assert.Equal(t, 0.0, stats.Lowest)
	assert.Equal(t, 0, stats.PassCount)
	assert.Empty(t, stats.Classes)
	for _, band := range stats.Bands {
		assert.Equal(t, 0, band.Count)
	}
}

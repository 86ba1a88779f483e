package services

import (
	"context"
	"sort"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// StatisticsService aggregates the cohort's recorded scores: averages,
// pass rate, a fixed five-band distribution and per-class progress.
type StatisticsService interface {
	CohortStatistics(ctx context.Context) (*models.CohortStatistics, error)
}

type statisticsService struct {
	repo   *repositories.Repository
	logger utils.Logger
}

func NewStatisticsService(repo *repositories.Repository, logger utils.Logger) StatisticsService {
	return &statisticsService{repo: repo, logger: logger}
}

func (s *statisticsService) CohortStatistics(ctx context.Context) (*models.CohortStatistics, error) {
	scores, err := s.repo.Score.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.Student.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregateCohort(scores, students), nil
}

// aggregateCohort works on the stored normalized score throughout so
// every figure lives on the same 0-100 scale.
func aggregateCohort(scores []models.ScoreRecord, students []models.Student) *models.CohortStatistics {
	stats := &models.CohortStatistics{
		Participants: len(scores),
		Bands:        make([]models.ScoreBand, len(ScoreBandLabels)),
	}
	for i, label := range ScoreBandLabels {
		stats.Bands[i] = models.ScoreBand{Label: label}
	}

	var sum float64
	for i := range scores {
		percent := scores[i].ScorePercent()
		sum += percent

		if i == 0 {
			stats.Highest = percent
			stats.Lowest = percent
		} else {
			if percent > stats.Highest {
				stats.Highest = percent
			}
			if percent < stats.Lowest {
				stats.Lowest = percent
			}
		}

		if scores[i].Status == PassLabel {
			stats.PassCount++
		} else {
			stats.FailCount++
		}
		stats.Bands[bandIndex(percent)].Count++
	}
	if len(scores) > 0 {
		stats.Average = round2(sum / float64(len(scores)))
	}

	stats.Classes = classSummaries(scores, students)
	return stats
}

// bandIndex places a score into 0-20, 21-40, 41-60, 61-80 or 81-100.
func bandIndex(percent float64) int {
	switch {
	case percent <= 20:
		return 0
	case percent <= 40:
		return 1
	case percent <= 60:
		return 2
	case percent <= 80:
		return 3
	default:
		return 4
	}
}

func classSummaries(scores []models.ScoreRecord, students []models.Student) []models.ClassSummary {
	classOf := make(map[string]string, len(students))
	totals := make(map[string]int)
	for _, student := range students {
		classOf[student.StudentID] = student.Class
		totals[student.Class]++
	}

	done := make(map[string]int)
	sums := make(map[string]float64)
	for i := range scores {
		class, ok := classOf[scores[i].StudentID]
		if !ok {
			continue
		}
		done[class]++
		sums[class] += scores[i].ScorePercent()
	}

	names := make([]string, 0, len(totals))
	for class := range totals {
		names = append(names, class)
	}
	sort.Strings(names)

	summaries := make([]models.ClassSummary, 0, len(names))
	for _, class := range names {
		summary := models.ClassSummary{
			Class:     class,
			Total:     totals[class],
			Completed: done[class],
		}
		if done[class] > 0 {
			summary.Average = round2(sums[class] / float64(done[class]))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

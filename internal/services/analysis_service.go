package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// AnalysisService computes classical test theory item statistics over
// the recorded scores: difficulty, discrimination, distractor
// effectiveness, point-biserial validity and KR-20 reliability, plus
// the per-student answer matrix.
type AnalysisService interface {
	AnalyzeItems(ctx context.Context) (*models.ItemAnalysisReport, error)
	BuildAnswerMatrix(ctx context.Context) (*models.AnswerMatrix, error)
}

type analysisService struct {
	repo   *repositories.Repository
	logger utils.Logger
}

func NewAnalysisService(repo *repositories.Repository, logger utils.Logger) AnalysisService {
	return &analysisService{repo: repo, logger: logger}
}

func (s *analysisService) AnalyzeItems(ctx context.Context) (*models.ItemAnalysisReport, error) {
	questions, err := s.repo.Question.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := s.repo.Score.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return analyzeItems(questions, scores), nil
}

// analyzeItems is the pure core. A cohort of zero yields a report of
// zeros rather than NaN.
func analyzeItems(questions []models.Question, scores []models.ScoreRecord) *models.ItemAnalysisReport {
	n := len(scores)
	report := &models.ItemAnalysisReport{
		Participants: n,
		Items:        make([]models.ItemAnalysis, 0, len(questions)),
	}

	// Rank the cohort by total score, best first. Stable so equal
	// scores keep submission order and the 27% groups stay
	// deterministic.
	ranked := make([]models.ScoreRecord, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScorePercent() > ranked[j].ScorePercent()
	})

	groupSize := 0
	if n > 0 {
		groupSize = int(math.Ceil(float64(n) * GroupFraction))
		if groupSize < 1 {
			groupSize = 1
		}
	}
	upper := ranked[:min(groupSize, n)]
	lower := ranked[max(n-groupSize, 0):]

	totals := make([]float64, n)
	for i := range scores {
		totals[i] = scores[i].ScorePercent()
	}
	totalSD := populationSD(totals)

	// Item-level 0/1 data for KR-20.
	rawCorrect := make([]int, n)
	var sumPQ float64

	for qi := range questions {
		q := &questions[qi]

		correctCount := 0
		var sumRight, sumWrong float64
		var nRight, nWrong int
		for i := range scores {
			right := answeredCorrectly(&scores[i], q.QuestionID)
			if right {
				correctCount++
				rawCorrect[i]++
				sumRight += totals[i]
				nRight++
			} else {
				sumWrong += totals[i]
				nWrong++
			}
		}

		item := models.ItemAnalysis{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
		}

		var p float64
		if n > 0 {
			p = float64(correctCount) / float64(n)
		}
		sumPQ += p * (1 - p)

		item.Difficulty = round2(p)
		item.DifficultyLabel = difficultyLabel(p)

		item.Discrimination, item.DiscriminationLabel = discrimination(upper, lower, groupSize, q.QuestionID)
		item.Distractors = distractorStats(q, scores)
		item.DistractorEffectiveness = distractorEffectiveness(item.Distractors)
		item.Validity, item.ValidityLabel = pointBiserial(p, totalSD, sumRight, nRight, sumWrong, nWrong)

		report.Items = append(report.Items, item)
	}

	report.Reliability = kr20(rawCorrect, len(questions), sumPQ)
	return report
}

func (s *analysisService) BuildAnswerMatrix(ctx context.Context) (*models.AnswerMatrix, error) {
	questions, err := s.repo.Question.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.Student.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := s.repo.Score.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matrix := &models.AnswerMatrix{
		QuestionIDs: make([]string, 0, len(questions)),
		Rows:        make([]models.AnswerMatrixRow, 0, len(students)),
	}
	for i := range questions {
		matrix.QuestionIDs = append(matrix.QuestionIDs, questions[i].QuestionID)
	}

	byStudent := make(map[string]*models.ScoreRecord, len(scores))
	for i := range scores {
		byStudent[scores[i].StudentID] = &scores[i]
	}

	for _, student := range students {
		row := models.AnswerMatrixRow{
			StudentID: student.StudentID,
			Name:      student.Name,
			Class:     student.Class,
			Cells:     make([]string, 0, len(questions)),
		}
		record := byStudent[student.StudentID]
		if record != nil {
			row.Score = record.TotalScore
		}
		for i := range questions {
			row.Cells = append(row.Cells, matrixCell(record, questions[i].QuestionID))
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix, nil
}

// matrixCell: "1" correct, "-" answered wrong, "" never answered.
func matrixCell(record *models.ScoreRecord, questionID string) string {
	if record == nil {
		return ""
	}
	answer, ok := record.AnswerFor(questionID)
	if !ok || answer.Response.IsEmpty() {
		return ""
	}
	if answer.Correct {
		return "1"
	}
	return "-"
}

func answeredCorrectly(record *models.ScoreRecord, questionID string) bool {
	answer, ok := record.AnswerFor(questionID)
	return ok && answer.Correct
}

// difficultyLabel: easy only strictly above the threshold, so exactly
// 0.70 is still medium.
func difficultyLabel(p float64) string {
	switch {
	case p < DifficultyHardMax:
		return DifficultyHardLabel
	case p > DifficultyEasyMin:
		return DifficultyEasyLabel
	default:
		return DifficultyMediumLabel
	}
}

func discrimination(upper, lower []models.ScoreRecord, groupSize int, questionID string) (float64, string) {
	if groupSize == 0 {
		return 0, DiscriminationPoorLabel
	}
	var upperCorrect, lowerCorrect int
	for i := range upper {
		if answeredCorrectly(&upper[i], questionID) {
			upperCorrect++
		}
	}
	for i := range lower {
		if answeredCorrectly(&lower[i], questionID) {
			lowerCorrect++
		}
	}
	d := float64(upperCorrect-lowerCorrect) / float64(groupSize)
	return round2(d), discriminationLabel(d)
}

func discriminationLabel(d float64) string {
	switch {
	case d >= DiscriminationGoodMin:
		return DiscriminationGoodLabel
	case d >= DiscriminationFairMin:
		return DiscriminationFairLabel
	default:
		return DiscriminationPoorLabel
	}
}

// distractorStats counts how often each unmarked option was chosen. A
// distractor pulling at least 5% of the cohort is doing its job.
func distractorStats(q *models.Question, scores []models.ScoreRecord) []models.DistractorStat {
	distractors := q.Distractors()
	if len(distractors) == 0 {
		return nil
	}
	n := len(scores)
	stats := make([]models.DistractorStat, 0, len(distractors))
	for _, option := range distractors {
		count := 0
		for i := range scores {
			answer, ok := scores[i].AnswerFor(q.QuestionID)
			if !ok {
				continue
			}
			for _, v := range answer.Response.Values() {
				if v == option {
					count++
					break
				}
			}
		}
		var percent float64
		if n > 0 {
			percent = math.Round(float64(count) / float64(n) * 100)
		}
		rating := DistractorIneffectiveLabel
		if percent >= DistractorMinPercent {
			rating = DistractorEffectiveLabel
		}
		stats = append(stats, models.DistractorStat{
			Option:  option,
			Count:   count,
			Percent: percent,
			Rating:  rating,
		})
	}
	return stats
}

// distractorEffectiveness renders the "effective/total" summary for an
// item, "-" when there is nothing to rate.
func distractorEffectiveness(stats []models.DistractorStat) string {
	if len(stats) == 0 {
		return NoDistractors
	}
	effective := 0
	for _, d := range stats {
		if d.Rating == DistractorEffectiveLabel {
			effective++
		}
	}
	return fmt.Sprintf("%d/%d", effective, len(stats))
}

// pointBiserial correlates item correctness with the total score.
// Degenerate cohorts (everyone right, everyone wrong, no spread)
// yield 0.
func pointBiserial(p, sd, sumRight float64, nRight int, sumWrong float64, nWrong int) (float64, string) {
	if sd <= 0 || p <= 0 || p >= 1 || nRight == 0 || nWrong == 0 {
		return 0, ValidityLowLabel
	}
	meanRight := sumRight / float64(nRight)
	meanWrong := sumWrong / float64(nWrong)
	r := (meanRight - meanWrong) / sd * math.Sqrt(p*(1-p))
	return round2(r), validityLabel(r)
}

// validityLabel grades by magnitude; a strongly negative correlation is
// just as diagnostic as a strongly positive one.
func validityLabel(r float64) string {
	switch {
	case math.Abs(r) >= ValidityHighMin:
		return ValidityHighLabel
	case math.Abs(r) >= ValidityMediumMin:
		return ValidityMediumLabel
	default:
		return ValidityLowLabel
	}
}

// kr20 computes Kuder-Richardson formula 20 from the per-student raw
// correct counts. Undefined cases (fewer than two students or items,
// zero variance) report 0.
func kr20(rawCorrect []int, items int, sumPQ float64) float64 {
	n := len(rawCorrect)
	if n < 2 || items < 2 {
		return 0
	}
	totals := make([]float64, n)
	for i, c := range rawCorrect {
		totals[i] = float64(c)
	}
	variance := populationVariance(totals)
	if variance == 0 {
		return 0
	}
	k := float64(items)
	return round2(k / (k - 1) * (1 - sumPQ/variance))
}

func populationVariance(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n)
}

func populationSD(values []float64) float64 {
	return math.Sqrt(populationVariance(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

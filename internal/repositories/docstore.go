package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/store"
)

const (
	questionsPath      = "questions"
	studentsPrefix     = "students/"
	scoresPrefix       = "scores/"
	examBlockedPath    = "config/exam_blocked"
	reviewDurationPath = "config/review_duration"
)

// ===== QUESTIONS =====

type questionRepository struct {
	store store.DocumentStore
}

func NewQuestionRepository(ds store.DocumentStore) QuestionRepository {
	return &questionRepository{store: ds}
}

func (r *questionRepository) GetAll(ctx context.Context) ([]models.Question, error) {
	raw, err := r.store.Get(ctx, questionsPath)
	if err != nil {
		return nil, err
	}
	questions, err := store.DecodeList[models.Question](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode question snapshot: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) Replace(ctx context.Context, questions []models.Question) error {
	if questions == nil {
		questions = []models.Question{}
	}
	return r.store.Set(ctx, questionsPath, questions)
}

// ===== STUDENTS =====

type studentRepository struct {
	store store.DocumentStore
}

func NewStudentRepository(ds store.DocumentStore) StudentRepository {
	return &studentRepository{store: ds}
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	docs, err := r.store.List(ctx, studentsPrefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	students := make([]models.Student, 0, len(keys))
	for _, k := range keys {
		var s models.Student
		ok, err := store.Decode(docs[k], &s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode student %s: %w", k, err)
		}
		if ok {
			students = append(students, s)
		}
	}
	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	raw, err := r.store.Get(ctx, studentsPrefix+studentID)
	if err != nil {
		return nil, err
	}
	var s models.Student
	ok, err := store.Decode(raw, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode student %s: %w", studentID, err)
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *studentRepository) GetByNIS(ctx context.Context, nis string) (*models.Student, error) {
	students, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].NIS == nis {
			return &students[i], nil
		}
	}
	return nil, nil
}

func (r *studentRepository) Save(ctx context.Context, student *models.Student) error {
	return r.store.Set(ctx, studentsPrefix+student.StudentID, student)
}

func (r *studentRepository) Delete(ctx context.Context, studentID string) error {
	return r.store.Delete(ctx, studentsPrefix+studentID)
}

// ===== SCORES =====

type scoreRepository struct {
	store store.DocumentStore
}

func NewScoreRepository(ds store.DocumentStore) ScoreRepository {
	return &scoreRepository{store: ds}
}

func (r *scoreRepository) Get(ctx context.Context, studentID string) (*models.ScoreRecord, error) {
	raw, err := r.store.Get(ctx, scoresPrefix+studentID)
	if err != nil {
		return nil, err
	}
	var rec models.ScoreRecord
	ok, err := store.Decode(raw, &rec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode score %s: %w", studentID, err)
	}
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *scoreRepository) GetAll(ctx context.Context) ([]models.ScoreRecord, error) {
	docs, err := r.store.List(ctx, scoresPrefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	records := make([]models.ScoreRecord, 0, len(keys))
	for _, k := range keys {
		var rec models.ScoreRecord
		ok, err := store.Decode(docs[k], &rec)
		if err != nil {
			return nil, fmt.Errorf("failed to decode score %s: %w", k, err)
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *scoreRepository) Save(ctx context.Context, score *models.ScoreRecord) error {
	return r.store.Set(ctx, scoresPrefix+score.StudentID, score)
}

func (r *scoreRepository) Delete(ctx context.Context, studentID string) error {
	return r.store.Delete(ctx, scoresPrefix+studentID)
}

func (r *scoreRepository) DeleteAll(ctx context.Context) error {
	return r.store.DeletePrefix(ctx, scoresPrefix)
}

// ===== CONFIG =====

type configRepository struct {
	store store.DocumentStore
}

func NewConfigRepository(ds store.DocumentStore) ConfigRepository {
	return &configRepository{store: ds}
}

func (r *configRepository) GetExamBlocked(ctx context.Context) (bool, error) {
	raw, err := r.store.Get(ctx, examBlockedPath)
	if err != nil {
		return false, err
	}
	var blocked bool
	if _, err := store.Decode(raw, &blocked); err != nil {
		return false, fmt.Errorf("failed to decode exam_blocked flag: %w", err)
	}
	return blocked, nil
}

func (r *configRepository) SetExamBlocked(ctx context.Context, blocked bool) error {
	return r.store.Set(ctx, examBlockedPath, blocked)
}

func (r *configRepository) GetReviewDuration(ctx context.Context) (int, error) {
	raw, err := r.store.Get(ctx, reviewDurationPath)
	if err != nil {
		return 0, err
	}
	var seconds int
	if _, err := store.Decode(raw, &seconds); err != nil {
		return 0, fmt.Errorf("failed to decode review_duration: %w", err)
	}
	return seconds, nil
}

func (r *configRepository) SetReviewDuration(ctx context.Context, seconds int) error {
	return r.store.Set(ctx, reviewDurationPath, seconds)
}

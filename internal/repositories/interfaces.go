package repositories

import (
	"context"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/store"
)

// QuestionRepository manages the exam's question set. The set is stored
// as one snapshot document and replaced wholesale on upload.
type QuestionRepository interface {
	GetAll(ctx context.Context) ([]models.Question, error)
	Replace(ctx context.Context, questions []models.Question) error
}

type StudentRepository interface {
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, studentID string) (*models.Student, error)
	GetByNIS(ctx context.Context, nis string) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studentID string) error
}

type ScoreRepository interface {
	Get(ctx context.Context, studentID string) (*models.ScoreRecord, error)
	GetAll(ctx context.Context) ([]models.ScoreRecord, error)
	Save(ctx context.Context, score *models.ScoreRecord) error
	Delete(ctx context.Context, studentID string) error
	DeleteAll(ctx context.Context) error
}

type ConfigRepository interface {
	GetExamBlocked(ctx context.Context) (bool, error)
	SetExamBlocked(ctx context.Context, blocked bool) error
	GetReviewDuration(ctx context.Context) (int, error)
	SetReviewDuration(ctx context.Context, seconds int) error
}

// Repository bundles the typed repositories over one document store.
type Repository struct {
	Question QuestionRepository
	Student  StudentRepository
	Score    ScoreRepository
	Config   ConfigRepository
}

func NewRepository(ds store.DocumentStore) *Repository {
	return &Repository{
		Question: NewQuestionRepository(ds),
		Student:  NewStudentRepository(ds),
		Score:    NewScoreRepository(ds),
		Config:   NewConfigRepository(ds),
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/spenzaga/cbt-exam-service/internal/errors"
	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
	"github.com/spenzaga/cbt-exam-service/internal/validator"
)

// RosterService manages the student roster and the question set.
// Students log in by NIS, so it must stay unique across the roster.
type RosterService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, studentID string) (*models.Student, error)
	FindByNIS(ctx context.Context, nis string) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, studentID string) error

	ListQuestions(ctx context.Context) ([]models.Question, error)
	ReplaceQuestions(ctx context.Context, questions []models.Question) error
}

type rosterService struct {
	repo      *repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewRosterService(repo *repositories.Repository, v *validator.Validator, logger utils.Logger) RosterService {
	return &rosterService{repo: repo, validator: v, logger: logger}
}

func (s *rosterService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.repo.Student.GetAll(ctx)
}

func (s *rosterService) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

func (s *rosterService) FindByNIS(ctx context.Context, nis string) (*models.Student, error) {
	if nis == "" {
		return nil, NewValidationError("nis", "is required", nil)
	}
	student, err := s.repo.Student.GetByNIS(ctx, nis)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

func (s *rosterService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validator.ValidateStruct(student); err != nil {
		return apperrors.ToValidationErrors(err)
	}
	if student.StudentID == "" {
		student.StudentID = uuid.NewString()
	}

	existing, err := s.repo.Student.GetByID(ctx, student.StudentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrStudentExists
	}
	if err := s.checkNISFree(ctx, student.NIS, student.StudentID); err != nil {
		return err
	}

	if err := s.repo.Student.Save(ctx, student); err != nil {
		return fmt.Errorf("failed to create student %s: %w", student.StudentID, err)
	}
	s.logger.InfoContext(ctx, "student created", "student_id", student.StudentID, "class", student.Class)
	return nil
}

func (s *rosterService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validator.ValidateStruct(student); err != nil {
		return apperrors.ToValidationErrors(err)
	}
	existing, err := s.repo.Student.GetByID(ctx, student.StudentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStudentNotFound
	}
	if err := s.checkNISFree(ctx, student.NIS, student.StudentID); err != nil {
		return err
	}

	if err := s.repo.Student.Save(ctx, student); err != nil {
		return fmt.Errorf("failed to update student %s: %w", student.StudentID, err)
	}
	s.logger.InfoContext(ctx, "student updated", "student_id", student.StudentID)
	return nil
}

func (s *rosterService) DeleteStudent(ctx context.Context, studentID string) error {
	existing, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStudentNotFound
	}
	if err := s.repo.Student.Delete(ctx, studentID); err != nil {
		return fmt.Errorf("failed to delete student %s: %w", studentID, err)
	}
	s.logger.InfoContext(ctx, "student deleted", "student_id", studentID)
	return nil
}

func (s *rosterService) checkNISFree(ctx context.Context, nis, selfID string) error {
	if nis == "" {
		return nil
	}
	other, err := s.repo.Student.GetByNIS(ctx, nis)
	if err != nil {
		return err
	}
	if other != nil && other.StudentID != selfID {
		return ErrDuplicateNIS
	}
	return nil
}

// ListQuestions returns the question set with markers intact, for
// operator screens only.
func (s *rosterService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.repo.Question.GetAll(ctx)
}

// ReplaceQuestions swaps in a new question set wholesale after
// validating every item.
func (s *rosterService) ReplaceQuestions(ctx context.Context, questions []models.Question) error {
	if errs := s.validator.Question().ValidateSet(questions); len(errs) > 0 {
		return errs
	}
	if err := s.repo.Question.Replace(ctx, questions); err != nil {
		return fmt.Errorf("failed to replace question set: %w", err)
	}
	s.logger.InfoContext(ctx, "question set replaced", "count", len(questions))
	return nil
}

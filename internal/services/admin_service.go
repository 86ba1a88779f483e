package services

import (
	"context"
	"fmt"
	"time"

	"github.com/spenzaga/cbt-exam-service/internal/events"
	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// AdminService covers the operator controls: clearing scores, the
// global block flag and the post-exam review window.
type AdminService interface {
	ResetScore(ctx context.Context, studentID string) error
	ResetAllScores(ctx context.Context) error
	SetExamBlocked(ctx context.Context, blocked bool) error
	GetExamConfig(ctx context.Context) (*models.ExamConfig, error)
	SetReviewDuration(ctx context.Context, seconds int) error
}

type adminService struct {
	repo      *repositories.Repository
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewAdminService(repo *repositories.Repository, publisher events.EventPublisher, logger utils.Logger) AdminService {
	return &adminService{repo: repo, publisher: publisher, logger: logger}
}

// ResetScore removes one student's score so they can retake the exam.
func (s *adminService) ResetScore(ctx context.Context, studentID string) error {
	if studentID == "" {
		return NewValidationError("student_id", "is required", nil)
	}
	existing, err := s.repo.Score.Get(ctx, studentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrScoreNotFound
	}
	if err := s.repo.Score.Delete(ctx, studentID); err != nil {
		return fmt.Errorf("failed to reset score for %s: %w", studentID, err)
	}

	s.logger.InfoContext(ctx, "score reset", "student_id", studentID)
	s.publishReset(ctx, events.ScoresResetEvent{
		StudentID: studentID,
		ResetAt:   time.Now(),
	})
	return nil
}

func (s *adminService) ResetAllScores(ctx context.Context) error {
	if err := s.repo.Score.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset all scores: %w", err)
	}

	s.logger.InfoContext(ctx, "all scores reset")
	s.publishReset(ctx, events.ScoresResetEvent{
		All:     true,
		ResetAt: time.Now(),
	})
	return nil
}

func (s *adminService) SetExamBlocked(ctx context.Context, blocked bool) error {
	if err := s.repo.Config.SetExamBlocked(ctx, blocked); err != nil {
		return fmt.Errorf("failed to update exam block flag: %w", err)
	}

	s.logger.InfoContext(ctx, "exam block flag updated", "blocked", blocked)
	event := events.NewExamBlockChangedEvent(events.ExamBlockChangedEvent{
		Blocked:   blocked,
		ChangedAt: time.Now(),
	})
	if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "exam.block_changed event publish failed", "error", err)
	}
	return nil
}

func (s *adminService) GetExamConfig(ctx context.Context) (*models.ExamConfig, error) {
	blocked, err := s.repo.Config.GetExamBlocked(ctx)
	if err != nil {
		return nil, err
	}
	review, err := s.repo.Config.GetReviewDuration(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ExamConfig{ExamBlocked: blocked, ReviewDuration: review}, nil
}

func (s *adminService) SetReviewDuration(ctx context.Context, seconds int) error {
	if seconds < 0 {
		return NewValidationError("review_duration", "must not be negative", seconds)
	}
	if err := s.repo.Config.SetReviewDuration(ctx, seconds); err != nil {
		return fmt.Errorf("failed to update review duration: %w", err)
	}
	s.logger.InfoContext(ctx, "review duration updated", "seconds", seconds)
	return nil
}

func (s *adminService) publishReset(ctx context.Context, payload events.ScoresResetEvent) {
	if err := s.publisher.PublishNotificationEvent(ctx, events.NewScoresResetEvent(payload)); err != nil {
		s.logger.WarnContext(ctx, "scores.reset event publish failed", "error", err)
	}
}

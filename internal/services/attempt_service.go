package services

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/spenzaga/cbt-exam-service/internal/errors"
	"github.com/spenzaga/cbt-exam-service/internal/events"
	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
	"github.com/spenzaga/cbt-exam-service/internal/validator"
)

// SubmitRequest carries one examinee's completed attempt. Violations
// is the proctoring counter accumulated by the client.
type SubmitRequest struct {
	StudentID      string                     `json:"student_id" validate:"required"`
	Responses      map[string]models.Response `json:"responses"`
	ElapsedSeconds int                        `json:"elapsed_seconds" validate:"min=0"`
	Violations     int                        `json:"violations" validate:"min=0"`
}

// StartCheck reports whether an examinee may begin.
type StartCheck struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"`
	Blocked  bool   `json:"blocked"`
	HasScore bool   `json:"has_score"`
}

// AttemptService orchestrates the exam flow: serving sanitized
// questions, gating entry and turning a submission into a stored
// score.
type AttemptService interface {
	GetQuestions(ctx context.Context) ([]models.Question, error)
	CanStart(ctx context.Context, studentID string) (*StartCheck, error)
	Submit(ctx context.Context, req *SubmitRequest) (*models.ScoreRecord, error)
	ShouldForceSubmit(violations int) bool
}

type attemptService struct {
	repo      *repositories.Repository
	scoring   ScoringService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewAttemptService(
	repo *repositories.Repository,
	scoring ScoringService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
) AttemptService {
	return &attemptService{
		repo:      repo,
		scoring:   scoring,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

// GetQuestions returns the question set with correctness markers
// stripped, safe to serve to examinees.
func (s *attemptService) GetQuestions(ctx context.Context) ([]models.Question, error) {
	questions, err := s.repo.Question.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]models.Question, 0, len(questions))
	for i := range questions {
		sanitized = append(sanitized, questions[i].Sanitized())
	}
	return sanitized, nil
}

// CanStart checks the entry gates: the global block flag and the
// at-most-one-score rule.
func (s *attemptService) CanStart(ctx context.Context, studentID string) (*StartCheck, error) {
	if studentID == "" {
		return nil, NewValidationError("student_id", "is required", nil)
	}

	blocked, err := s.repo.Config.GetExamBlocked(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.Score.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	check := &StartCheck{
		Blocked:  blocked,
		HasScore: existing != nil,
	}
	switch {
	case blocked:
		check.Reason = "exam_blocked"
	case existing != nil:
		check.Reason = "already_submitted"
	default:
		check.Allowed = true
	}
	return check, nil
}

// Submit grades and persists an attempt. The write is all or nothing:
// a persistence failure leaves no score behind, so the examinee can
// retry.
func (s *attemptService) Submit(ctx context.Context, req *SubmitRequest) (*models.ScoreRecord, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	blocked, err := s.repo.Config.GetExamBlocked(ctx)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrExamBlocked
	}

	existing, err := s.repo.Score.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	questions, err := s.repo.Question.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	duration := FormatDuration(req.ElapsedSeconds)
	record := s.scoring.BuildScoreRecord(questions, req.Responses, req.StudentID, duration)

	if err := s.repo.Score.Save(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to save score for %s: %w", req.StudentID, err)
	}

	s.logger.InfoContext(ctx, "attempt submitted",
		"student_id", req.StudentID,
		"total_score", record.TotalScore,
		"status", record.Status,
		"duration", duration)

	forced := s.ShouldForceSubmit(req.Violations)
	payload := events.AttemptSubmittedEvent{
		StudentID:   req.StudentID,
		TotalScore:  record.TotalScore,
		Status:      record.Status,
		Duration:    duration,
		Forced:      forced,
		SubmittedAt: time.Now(),
	}
	if forced {
		payload.Reason = "violation_limit_reached"
	}
	if err := s.publisher.PublishNotificationEvent(ctx, events.NewAttemptSubmittedEvent(payload)); err != nil {
		// The score is already safe; the event is best effort.
		s.logger.WarnContext(ctx, "attempt.submitted event publish failed",
			"student_id", req.StudentID,
			"error", err)
	}

	return &record, nil
}

// ShouldForceSubmit reports whether the violation counter has reached
// the forced-submit threshold.
func (s *attemptService) ShouldForceSubmit(violations int) bool {
	return violations >= ViolationLimit
}

// FormatDuration renders elapsed seconds as HH:MM:SS. Hours do not
// wrap. Negative input clamps to zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	sec := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

package services

import (
	"github.com/spenzaga/cbt-exam-service/internal/events"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
	"github.com/spenzaga/cbt-exam-service/internal/validator"
)

// Services bundles every service the handlers need.
type Services struct {
	Scoring    ScoringService
	Attempt    AttemptService
	Analysis   AnalysisService
	Statistics StatisticsService
	Admin      AdminService
	Roster     RosterService
	Export     ExportService
}

func NewServices(
	repo *repositories.Repository,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
) *Services {
	scoring := NewScoringService()
	analysis := NewAnalysisService(repo, logger)
	statistics := NewStatisticsService(repo, logger)
	roster := NewRosterService(repo, v, logger)

	return &Services{
		Scoring:    scoring,
		Attempt:    NewAttemptService(repo, scoring, publisher, v, logger),
		Analysis:   analysis,
		Statistics: statistics,
		Admin:      NewAdminService(repo, publisher, logger),
		Roster:     roster,
		Export:     NewExportService(analysis, statistics, roster, logger),
	}
}

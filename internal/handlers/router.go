package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spenzaga/cbt-exam-service/internal/services"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

type HandlerManager struct {
	examHandler     *ExamHandler
	analysisHandler *AnalysisHandler
	adminHandler    *AdminHandler
	rosterHandler   *RosterHandler
}

func NewHandlerManager(svc *services.Services, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		examHandler:     NewExamHandler(svc.Attempt, svc.Roster, logger),
		analysisHandler: NewAnalysisHandler(svc.Analysis, svc.Statistics, svc.Export, logger),
		adminHandler:    NewAdminHandler(svc.Admin, logger),
		rosterHandler:   NewRosterHandler(svc.Roster, svc.Export, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	{
		exam := v1.Group("/exam")
		{
			exam.POST("/login", hm.examHandler.Login)
			exam.GET("/questions", hm.examHandler.GetQuestions)
			exam.GET("/can-start/:student_id", hm.examHandler.CanStart)
			exam.POST("/submit", hm.examHandler.Submit)
		}

		analysis := v1.Group("/analysis")
		{
			analysis.GET("/items", hm.analysisHandler.GetItemAnalysis)
			analysis.GET("/statistics", hm.analysisHandler.GetStatistics)
			analysis.GET("/answer-matrix", hm.analysisHandler.GetAnswerMatrix)
			analysis.GET("/export/items", hm.analysisHandler.ExportItemAnalysis)
			analysis.GET("/export/statistics", hm.analysisHandler.ExportStatistics)
			analysis.GET("/export/answer-matrix", hm.analysisHandler.ExportAnswerMatrix)
		}

		students := v1.Group("/students")
		{
			students.GET("", hm.rosterHandler.ListStudents)
			students.POST("", hm.rosterHandler.CreateStudent)
			students.POST("/import", hm.rosterHandler.ImportStudents)
			students.GET("/:student_id", hm.rosterHandler.GetStudent)
			students.PUT("/:student_id", hm.rosterHandler.UpdateStudent)
			students.DELETE("/:student_id", hm.rosterHandler.DeleteStudent)
		}

		questions := v1.Group("/questions")
		{
			questions.GET("", hm.rosterHandler.ListQuestions)
			questions.PUT("", hm.rosterHandler.ReplaceQuestions)
			questions.POST("/import", hm.rosterHandler.ImportQuestions)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/config", hm.adminHandler.GetConfig)
			admin.POST("/reset", hm.adminHandler.ResetAllScores)
			admin.DELETE("/scores/:student_id", hm.adminHandler.ResetScore)
			admin.PUT("/exam-blocked", hm.adminHandler.SetExamBlocked)
			admin.PUT("/review-duration", hm.adminHandler.SetReviewDuration)
		}
	}
}

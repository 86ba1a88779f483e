package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spenzaga/cbt-exam-service/internal/services"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// ExamHandler serves the examinee-facing flow: login, question
// delivery, the entry gate and submission.
type ExamHandler struct {
	BaseHandler
	attempt services.AttemptService
	roster  services.RosterService
}

func NewExamHandler(attempt services.AttemptService, roster services.RosterService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		attempt:     attempt,
		roster:      roster,
	}
}

type LoginRequest struct {
	NIS string `json:"nis" binding:"required"`
}

// Login resolves a student by NIS and reports whether they may start.
func (h *ExamHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	student, err := h.roster.FindByNIS(c.Request.Context(), req.NIS)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	check, err := h.attempt.CanStart(c.Request.Context(), student.StudentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Login successful", gin.H{
		"student": student,
		"start":   check,
	})
}

// GetQuestions returns the sanitized question set.
func (h *ExamHandler) GetQuestions(c *gin.Context) {
	questions, err := h.attempt.GetQuestions(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Questions retrieved", questions)
}

// CanStart reports the entry gates for one student.
func (h *ExamHandler) CanStart(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	check, err := h.attempt.CanStart(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Start check completed", check)
}

// Submit grades and stores an attempt.
func (h *ExamHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := h.attempt.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Attempt submitted", "student_id", req.StudentID, "total_score", record.TotalScore)
	h.RespondWithSuccess(c, http.StatusCreated, "Attempt submitted", record)
}

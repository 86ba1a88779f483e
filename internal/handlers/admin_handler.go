package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spenzaga/cbt-exam-service/internal/services"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// AdminHandler exposes the operator controls.
type AdminHandler struct {
	BaseHandler
	admin services.AdminService
}

func NewAdminHandler(admin services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		admin:       admin,
	}
}

// ResetAllScores clears every score record.
func (h *AdminHandler) ResetAllScores(c *gin.Context) {
	if err := h.admin.ResetAllScores(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "All scores reset", nil)
}

// ResetScore clears one student's score.
func (h *AdminHandler) ResetScore(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	if err := h.admin.ResetScore(c.Request.Context(), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Score reset", gin.H{"student_id": studentID})
}

type SetExamBlockedRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// SetExamBlocked toggles the global entry gate.
func (h *AdminHandler) SetExamBlocked(c *gin.Context) {
	var req SetExamBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.admin.SetExamBlocked(c.Request.Context(), *req.Blocked); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Exam block flag updated", gin.H{"blocked": *req.Blocked})
}

type SetReviewDurationRequest struct {
	Seconds *int `json:"seconds" binding:"required"`
}

// SetReviewDuration sets the post-exam review window.
func (h *AdminHandler) SetReviewDuration(c *gin.Context) {
	var req SetReviewDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.admin.SetReviewDuration(c.Request.Context(), *req.Seconds); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Review duration updated", gin.H{"seconds": *req.Seconds})
}

// GetConfig returns the current exam configuration.
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.admin.GetExamConfig(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Configuration retrieved", cfg)
}

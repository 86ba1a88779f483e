package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/services"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// RosterHandler manages students and the question set.
type RosterHandler struct {
	BaseHandler
	roster services.RosterService
	export services.ExportService
}

func NewRosterHandler(roster services.RosterService, export services.ExportService, logger utils.Logger) *RosterHandler {
	return &RosterHandler{
		BaseHandler: NewBaseHandler(logger),
		roster:      roster,
		export:      export,
	}
}

// ===== STUDENTS =====

func (h *RosterHandler) ListStudents(c *gin.Context) {
	students, err := h.roster.ListStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Students retrieved", students)
}

func (h *RosterHandler) GetStudent(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	student, err := h.roster.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Student retrieved", student)
}

func (h *RosterHandler) CreateStudent(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.roster.CreateStudent(c.Request.Context(), &student); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Student created", student)
}

func (h *RosterHandler) UpdateStudent(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	student.StudentID = studentID
	if err := h.roster.UpdateStudent(c.Request.Context(), &student); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Student updated", student)
}

func (h *RosterHandler) DeleteStudent(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	if err := h.roster.DeleteStudent(c.Request.Context(), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Student deleted", gin.H{"student_id": studentID})
}

// ImportStudents ingests a CSV or XLSX roster upload.
func (h *RosterHandler) ImportStudents(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing file upload", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot open uploaded file", err)
		return
	}
	defer file.Close()

	result, err := h.export.ImportStudentsFromFile(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Import completed", result)
}

// ===== QUESTIONS =====

// ListQuestions returns the raw question set with correctness markers.
// Operator use only.
func (h *RosterHandler) ListQuestions(c *gin.Context) {
	questions, err := h.roster.ListQuestions(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Questions retrieved", questions)
}

// ReplaceQuestions swaps in a new question set.
func (h *RosterHandler) ReplaceQuestions(c *gin.Context) {
	var questions []models.Question
	if err := c.ShouldBindJSON(&questions); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.roster.ReplaceQuestions(c.Request.Context(), questions); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Question set replaced", gin.H{"count": len(questions)})
}

// ImportQuestions appends questions from a CSV or XLSX upload to the
// existing set.
func (h *RosterHandler) ImportQuestions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing file upload", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot open uploaded file", err)
		return
	}
	defer file.Close()

	result, err := h.export.ImportQuestionsFromFile(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Import completed", result)
}

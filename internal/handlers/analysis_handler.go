package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/services"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalysisHandler exposes the psychometric reports.
type AnalysisHandler struct {
	BaseHandler
	analysis   services.AnalysisService
	statistics services.StatisticsService
	export     services.ExportService
}

func NewAnalysisHandler(
	analysis services.AnalysisService,
	statistics services.StatisticsService,
	export services.ExportService,
	logger utils.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler: NewBaseHandler(logger),
		analysis:    analysis,
		statistics:  statistics,
		export:      export,
	}
}

// GetItemAnalysis returns the per-item statistics and KR-20.
func (h *AnalysisHandler) GetItemAnalysis(c *gin.Context) {
	report, err := h.analysis.AnalyzeItems(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Item analysis completed", report)
}

// GetStatistics returns the cohort aggregates.
func (h *AnalysisHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statistics.CohortStatistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Statistics computed", stats)
}

// GetAnswerMatrix returns the per-student correctness grid. Rows can
// be narrowed by class or a name search.
func (h *AnalysisHandler) GetAnswerMatrix(c *gin.Context) {
	matrix, err := h.analysis.BuildAnswerMatrix(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	class := c.Query("class")
	search := strings.ToLower(c.Query("search"))
	if class != "" || search != "" {
		filtered := make([]models.AnswerMatrixRow, 0, len(matrix.Rows))
		for _, row := range matrix.Rows {
			if class != "" && row.Class != class {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(row.Name), search) {
				continue
			}
			filtered = append(filtered, row)
		}
		matrix.Rows = filtered
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer matrix built", matrix)
}

// ExportItemAnalysis streams the item analysis workbook.
func (h *AnalysisHandler) ExportItemAnalysis(c *gin.Context) {
	data, err := h.export.ExportItemAnalysis(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, "analisis-butir-soal", data)
}

// ExportStatistics streams the statistics workbook.
func (h *AnalysisHandler) ExportStatistics(c *gin.Context) {
	data, err := h.export.ExportStatistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, "statistik-nilai", data)
}

// ExportAnswerMatrix streams the answer matrix workbook.
func (h *AnalysisHandler) ExportAnswerMatrix(c *gin.Context) {
	data, err := h.export.ExportAnswerMatrix(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, "analisis-jawaban", data)
}

func (h *AnalysisHandler) sendWorkbook(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
)

// ExportService renders the analysis reports as spreadsheets and
// imports student rosters and question banks from uploaded files.
type ExportService interface {
	ExportItemAnalysis(ctx context.Context) ([]byte, error)
	ExportStatistics(ctx context.Context) ([]byte, error)
	ExportAnswerMatrix(ctx context.Context) ([]byte, error)

	ImportStudentsFromFile(ctx context.Context, reader io.Reader, filename string) (*ImportResult, error)
	ImportStudentsFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error)
	ImportStudentsFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error)

	ImportQuestionsFromFile(ctx context.Context, reader io.Reader, filename string) (*QuestionImportResult, error)
	ImportQuestionsFromCSV(ctx context.Context, reader io.Reader) (*QuestionImportResult, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) (*QuestionImportResult, error)
}

type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ImportResult struct {
	TotalRows    int              `json:"total_rows"`
	SuccessCount int              `json:"success_count"`
	ErrorCount   int              `json:"error_count"`
	Errors       []ImportError    `json:"errors,omitempty"`
	Students     []models.Student `json:"students,omitempty"`
}

// QuestionImportResult reports an all-or-nothing question import: the
// mapped rows are appended to the existing set and the merged set is
// validated as a whole before it replaces the snapshot.
type QuestionImportResult struct {
	TotalRows int               `json:"total_rows"`
	Imported  int               `json:"imported"`
	Questions []models.Question `json:"questions,omitempty"`
}

type exportService struct {
	analysis   AnalysisService
	statistics StatisticsService
	roster     RosterService
	logger     utils.Logger
}

func NewExportService(
	analysis AnalysisService,
	statistics StatisticsService,
	roster RosterService,
	logger utils.Logger,
) ExportService {
	return &exportService{
		analysis:   analysis,
		statistics: statistics,
		roster:     roster,
		logger:     logger,
	}
}

// ===== EXPORT OPERATIONS =====

func (s *exportService) ExportItemAnalysis(ctx context.Context) ([]byte, error) {
	report, err := s.analysis.AnalyzeItems(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Analisis Butir Soal"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{
		"No", "ID Soal", "Soal",
		"Tingkat Kesukaran", "Kategori Kesukaran",
		"Daya Pembeda", "Kategori Daya Pembeda",
		"Validitas", "Kategori Validitas",
		"Pengecoh",
	}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, item := range report.Items {
		row := i + 2
		values := []interface{}{
			i + 1,
			item.QuestionID,
			item.QuestionText,
			item.Difficulty,
			item.DifficultyLabel,
			item.Discrimination,
			item.DiscriminationLabel,
			item.Validity,
			item.ValidityLabel,
			item.DistractorEffectiveness,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return nil, err
		}
	}

	summaryRow := len(report.Items) + 3
	if err := writeRow(f, sheet, summaryRow, []interface{}{"Jumlah Peserta", report.Participants}); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, summaryRow+1, []interface{}{"Reliabilitas (KR-20)", report.Reliability}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write item analysis workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportStatistics(ctx context.Context) ([]byte, error) {
	stats, err := s.statistics.CohortStatistics(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Statistik Nilai"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Jumlah Peserta", stats.Participants},
		{"Rata-rata", stats.Average},
		{"Nilai Tertinggi", stats.Highest},
		{"Nilai Terendah", stats.Lowest},
		{"Tuntas", stats.PassCount},
		{"Belum Tuntas", stats.FailCount},
	}
	for i, values := range rows {
		if err := writeRow(f, sheet, i+1, values); err != nil {
			return nil, err
		}
	}

	bandStart := len(rows) + 2
	if err := writeRow(f, sheet, bandStart, []interface{}{"Rentang Nilai", "Jumlah"}); err != nil {
		return nil, err
	}
	for i, band := range stats.Bands {
		if err := writeRow(f, sheet, bandStart+1+i, []interface{}{band.Label, band.Count}); err != nil {
			return nil, err
		}
	}

	classStart := bandStart + len(stats.Bands) + 2
	if err := writeRow(f, sheet, classStart, []interface{}{"Kelas", "Jumlah Siswa", "Sudah Mengerjakan", "Rata-rata"}); err != nil {
		return nil, err
	}
	for i, class := range stats.Classes {
		values := []interface{}{class.Class, class.Total, class.Completed, class.Average}
		if err := writeRow(f, sheet, classStart+1+i, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write statistics workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportAnswerMatrix(ctx context.Context) ([]byte, error) {
	matrix, err := s.analysis.BuildAnswerMatrix(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Analisis Jawaban"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Nama", "Kelas", "Nilai"}
	headers = append(headers, matrix.QuestionIDs...)
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, row := range matrix.Rows {
		values := []interface{}{row.Name, row.Class, row.Score}
		for _, cell := range row.Cells {
			values = append(values, cell)
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write answer matrix workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return writeRow(f, sheet, 1, values)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// ===== IMPORT OPERATIONS =====

func (s *exportService) ImportStudentsFromFile(ctx context.Context, reader io.Reader, filename string) (*ImportResult, error) {
	s.logger.InfoContext(ctx, "starting student import", "filename", filename)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return s.ImportStudentsFromCSV(ctx, reader)
	case ".xlsx", ".xls":
		return s.ImportStudentsFromExcel(ctx, reader)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *exportService) ImportStudentsFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return s.importStudentRows(ctx, records)
}

func (s *exportService) ImportStudentsFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.importStudentRows(ctx, rows)
}

func (s *exportService) importStudentRows(ctx context.Context, records [][]string) (*ImportResult, error) {
	if len(records) < 2 {
		return nil, NewValidationError("file", "needs a header row and at least one data row", len(records))
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{"name", "class"} {
		if _, ok := headerMap[col]; !ok {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	result := &ImportResult{TotalRows: len(records) - 1}

	for rowIndex, record := range records[1:] {
		rowNum := rowIndex + 2
		student := models.Student{
			StudentID: cellAt(record, headerMap, "student_id"),
			Absen:     cellAt(record, headerMap, "absen"),
			NIS:       cellAt(record, headerMap, "nis"),
			Name:      cellAt(record, headerMap, "name"),
			Class:     cellAt(record, headerMap, "class"),
		}
		if student.Name == "" || student.Class == "" {
			result.ErrorCount++
			result.Errors = append(result.Errors, ImportError{
				Row:     rowNum,
				Field:   "name",
				Message: "name and class are required",
			})
			continue
		}
		if student.StudentID == "" {
			student.StudentID = uuid.NewString()
		}

		if err := s.roster.CreateStudent(ctx, &student); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, ImportError{
				Row:     rowNum,
				Field:   "student_id",
				Message: err.Error(),
			})
			continue
		}
		result.SuccessCount++
		result.Students = append(result.Students, student)
	}

	s.logger.InfoContext(ctx, "student import completed",
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)
	return result, nil
}

func (s *exportService) ImportQuestionsFromFile(ctx context.Context, reader io.Reader, filename string) (*QuestionImportResult, error) {
	s.logger.InfoContext(ctx, "starting question import", "filename", filename)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, reader)
	case ".xlsx", ".xls":
		return s.ImportQuestionsFromExcel(ctx, reader)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *exportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader) (*QuestionImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return s.importQuestionRows(ctx, records)
}

func (s *exportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) (*QuestionImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.importQuestionRows(ctx, rows)
}

func (s *exportService) importQuestionRows(ctx context.Context, records [][]string) (*QuestionImportResult, error) {
	if len(records) < 2 {
		return nil, NewValidationError("file", "needs a header row and at least one data row", len(records))
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	if _, ok := headerMap["question_text"]; !ok {
		return nil, NewValidationError("headers", "missing required column: question_text", "question_text")
	}

	existing, err := s.roster.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	mapped := make([]models.Question, 0, len(records)-1)
	for rowIndex, record := range records[1:] {
		q := models.Question{
			QuestionID:        cellAt(record, headerMap, "question_id"),
			QuestionType:      models.QuestionType(cellAt(record, headerMap, "question_type")),
			Image:             cellAt(record, headerMap, "image"),
			Video:             cellAt(record, headerMap, "video"),
			Audio:             cellAt(record, headerMap, "audio"),
			QuestionParagraph: cellAt(record, headerMap, "question_paragraph"),
			QuestionText:      cellAt(record, headerMap, "question_text"),
			Answer1:           cellAt(record, headerMap, "answer_1"),
			Answer2:           cellAt(record, headerMap, "answer_2"),
			Answer3:           cellAt(record, headerMap, "answer_3"),
			Answer4:           cellAt(record, headerMap, "answer_4"),
			CorrectFeedback:   cellAt(record, headerMap, "correct_feedback"),
			IncorrectFeedback: cellAt(record, headerMap, "incorrect_feedback"),
			Points:            cellAt(record, headerMap, "points"),
		}
		if q.QuestionID == "" {
			q.QuestionID = fmt.Sprintf("Q%d", len(existing)+rowIndex+1)
		}
		if q.QuestionType == "" {
			q.QuestionType = models.MultipleChoice
		}
		if q.CorrectFeedback == "" {
			q.CorrectFeedback = DefaultCorrectFeedback
		}
		if q.IncorrectFeedback == "" {
			q.IncorrectFeedback = DefaultIncorrectFeedback
		}
		if q.Points == "" {
			q.Points = DefaultPoints
		}
		mapped = append(mapped, q)
	}

	merged := append(existing, mapped...)
	if err := s.roster.ReplaceQuestions(ctx, merged); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "question import completed",
		"total_rows", len(mapped),
		"set_size", len(merged))
	return &QuestionImportResult{
		TotalRows: len(mapped),
		Imported:  len(mapped),
		Questions: mapped,
	}, nil
}

func cellAt(record []string, headerMap map[string]int, column string) string {
	idx, ok := headerMap[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

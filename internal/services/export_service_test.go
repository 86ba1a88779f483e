package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spenzaga/cbt-exam-service/internal/models"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
	"github.com/spenzaga/cbt-exam-service/internal/validator"
)

func newExportFixture() (ExportService, *repositories.Repository) {
	repo, _ := newTestRepo()
	logger := utils.NewDevelopmentLogger()
	analysis := NewAnalysisService(repo, logger)
	statistics := NewStatisticsService(repo, logger)
	roster := NewRosterService(repo, validator.New(), logger)
	return NewExportService(analysis, statistics, roster, logger), repo
}

func sheetRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExportItemAnalysis(t *testing.T) {
	ctx := context.Background()
	svc, repo := newExportFixture()

	questions := []models.Question{
		mcQuestion("q1", "A", "B"),
		mcQuestion("q2", "C", "D"),
	}
	seedAnalysis(t, repo, questions, []models.ScoreRecord{
		scoreWith("s1", questions, map[string]bool{"q1": true, "q2": true}),
		scoreWith("s2", questions, map[string]bool{"q1": true, "q2": false}),
		scoreWith("s3", questions, map[string]bool{"q1": false, "q2": false}),
	})

	data, err := svc.ExportItemAnalysis(ctx)
	require.NoError(t, err)

	rows := sheetRows(t, data, "Analisis Butir Soal")
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "No", rows[0][0])
	assert.Equal(t, "ID Soal", rows[0][1])
	assert.Equal(t, "q1", rows[1][1])
	assert.Equal(t, "q2", rows[2][1])
	assert.Equal(t, "Pengecoh", rows[0][9])
	assert.Equal(t, "0/1", rows[1][9], "effective over total distractors")

	var foundParticipants bool
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "Jumlah Peserta" {
			foundParticipants = true
			assert.Equal(t, "3", row[1])
		}
	}
	assert.True(t, foundParticipants, "summary rows present")
}

func TestExportStatistics(t *testing.T) {
	ctx := context.Background()
	svc, repo := newExportFixture()

	for _, rec := range []models.ScoreRecord{
		plainScore("s1", "90", PassLabel),
		plainScore("s2", "50", FailLabel),
	} {
		record := rec
		require.NoError(t, repo.Score.Save(ctx, &record))
	}

	data, err := svc.ExportStatistics(ctx)
	require.NoError(t, err)

	rows := sheetRows(t, data, "Statistik Nilai")
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Jumlah Peserta", "2"}, rows[0][:2])

	var bandHeader bool
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "Rentang Nilai" {
			bandHeader = true
		}
	}
	assert.True(t, bandHeader)
}

func TestExportAnswerMatrix(t *testing.T) {
	ctx := context.Background()
	svc, repo := newExportFixture()

	questions := []models.Question{mcQuestion("q1", "A", "B")}
	require.NoError(t, repo.Student.Save(ctx, &models.Student{
		StudentID: "s1", Name: "Budi", Class: "9A",
	}))
	seedAnalysis(t, repo, questions, []models.ScoreRecord{
		scoreWith("s1", questions, map[string]bool{"q1": true}),
	})

	data, err := svc.ExportAnswerMatrix(ctx)
	require.NoError(t, err)

	rows := sheetRows(t, data, "Analisis Jawaban")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Nama", "Kelas", "Nilai", "q1"}, rows[0])
	assert.Equal(t, "Budi", rows[1][0])
	assert.Equal(t, "1", rows[1][3])
}

func TestImportStudents(t *testing.T) {
	ctx := context.Background()

	t.Run("CSV", func(t *testing.T) {
		svc, repo := newExportFixture()
		csvData := strings.Join([]string{
			"name,class,nis,absen",
			"Budi,9A,1001,1",
			"Siti,9B,1002,2",
		}, "\n")

		result, err := svc.ImportStudentsFromCSV(ctx, strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Zero(t, result.ErrorCount)

		students, err := repo.Student.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, students, 2)
		for _, s := range result.Students {
			assert.NotEmpty(t, s.StudentID, "generated when absent")
		}
	})

	t.Run("MissingRequiredColumn", func(t *testing.T) {
		svc, _ := newExportFixture()
		csvData := "name,nis\nBudi,1001\n"

		_, err := svc.ImportStudentsFromCSV(ctx, strings.NewReader(csvData))
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("RowErrorsDoNotAbort", func(t *testing.T) {
		svc, _ := newExportFixture()
		csvData := strings.Join([]string{
			"name,class,nis",
			"Budi,9A,1001",
			",9A,1002",
			"Rina,,1003",
		}, "\n")

		result, err := svc.ImportStudentsFromCSV(ctx, strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 2, result.ErrorCount)
		assert.Len(t, result.Errors, 2)
		assert.Equal(t, 3, result.Errors[0].Row)
	})

	t.Run("DuplicateNIS", func(t *testing.T) {
		svc, _ := newExportFixture()
		csvData := strings.Join([]string{
			"name,class,nis",
			"Budi,9A,1001",
			"Siti,9B,1001",
		}, "\n")

		result, err := svc.ImportStudentsFromCSV(ctx, strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 1, result.ErrorCount)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		svc, _ := newExportFixture()
		_, err := svc.ImportStudentsFromFile(ctx, strings.NewReader(""), "roster.pdf")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestImportQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("CSV", func(t *testing.T) {
		svc, repo := newExportFixture()
		csvData := strings.Join([]string{
			"question_id,question_type,question_text,answer_1,answer_2,points",
			"q1,MC,Ibu kota Indonesia?,*Jakarta,Bandung,10",
			",TF,Bumi itu bulat,*Benar,Salah,",
		}, "\n")

		result, err := svc.ImportQuestionsFromCSV(ctx, strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.Imported)

		questions, err := repo.Question.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "q1", questions[0].QuestionID)
		assert.Equal(t, models.MultipleChoice, questions[0].QuestionType)
		assert.Equal(t, "Q2", questions[1].QuestionID, "generated when absent")
		assert.Equal(t, DefaultPoints, questions[1].Points)
		assert.Equal(t, DefaultCorrectFeedback, questions[1].CorrectFeedback)
	})

	t.Run("AppendsToExistingSet", func(t *testing.T) {
		svc, repo := newExportFixture()
		require.NoError(t, repo.Question.Replace(ctx, []models.Question{mcQuestion("q1", "A", "B")}))

		csvData := "question_text,question_type,answer_1,answer_2\nBaru?,MC,*Ya,Tidak\n"
		result, err := svc.ImportQuestionsFromCSV(ctx, strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)

		questions, err := repo.Question.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "q1", questions[0].QuestionID)
		assert.Equal(t, "Q2", questions[1].QuestionID)
	})

	t.Run("MissingQuestionTextColumn", func(t *testing.T) {
		svc, _ := newExportFixture()
		csvData := "question_id,answer_1\nq1,*A\n"

		_, err := svc.ImportQuestionsFromCSV(ctx, strings.NewReader(csvData))
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("InvalidRowRejectsWholeImport", func(t *testing.T) {
		svc, repo := newExportFixture()
		csvData := strings.Join([]string{
			"question_text,question_type,answer_1,answer_2",
			"Valid?,MC,*Ya,Tidak",
			"Rusak?,essay,*Ya,Tidak",
		}, "\n")

		_, err := svc.ImportQuestionsFromCSV(ctx, strings.NewReader(csvData))
		require.Error(t, err)

		questions, err := repo.Question.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, questions, "failed import leaves the set untouched")
	})
}

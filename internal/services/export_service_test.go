package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportProgress(t *testing.T) {
	ctx := context.Background()
	dateFrom := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	dateTo := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("writes one sheet per dataset", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewExportService(repo, readiness.DefaultCatalog(), testLogger())

		repo.studyLogRepo.On("GetByDateRange", mock.Anything, mock.Anything, "user-1", from, to).Return([]*models.StudyLog{
			{TopicID: "arrays", Category: models.CategoryDSA, DurationMinutes: 45, ConfidenceRating: 4, Notes: stringPtr("sliding window"), StudiedAt: time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC)},
			{TopicID: "grammar", Category: models.CategoryEnglish, DurationMinutes: 20, ConfidenceRating: 2, StudiedAt: time.Date(2025, 3, 9, 19, 0, 0, 0, time.UTC)},
		}, nil)
		repo.mockAttemptRepo.On("GetAllByUser", mock.Anything, mock.Anything, "user-1").Return([]*models.MockAttempt{
			{MockTestID: "tcs-nqt-1", CompanyTag: "TCS", QuestionsTotal: 50, QuestionsCorrect: 30, DurationMinutes: 80, AttemptedAt: time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)},
			{MockTestID: "infosys-aptitude", CompanyTag: "Infosys", QuestionsTotal: 40, QuestionsCorrect: 30, DurationMinutes: 55, AttemptedAt: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)},
			{MockTestID: "tcs-digital", CompanyTag: "TCS", QuestionsTotal: 45, QuestionsCorrect: 40, DurationMinutes: 70, AttemptedAt: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)},
		}, nil)

		inRange, err := models.NewReadinessSnapshot("user-1", &readiness.ReadinessResult{
			OverallScore: 52,
			WeakAreas: []readiness.WeakArea{
				{TopicID: "dbms", Category: "Core", Unstarted: true},
				{TopicID: "arrays", Category: "DSA", Score: 48},
			},
			ComputedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		}, 2)
		require.NoError(t, err)
		tooLate, err := models.NewReadinessSnapshot("user-1", &readiness.ReadinessResult{
			OverallScore: 60,
			ComputedAt:   time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		}, 2)
		require.NoError(t, err)
		repo.snapshotRepo.On("GetHistory", mock.Anything, mock.Anything, "user-1", from).Return([]*models.ReadinessSnapshot{inRange, tooLate}, nil)

		data, err := svc.ExportProgress(ctx, "user-1", &models.ExportRequest{Format: "xlsx", DateFrom: &dateFrom, DateTo: &dateTo})
		require.NoError(t, err)
		require.NotEmpty(t, data)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{SheetStudyLog, SheetMockAttempts, SheetReadiness}, f.GetSheetList())

		studyRows, err := f.GetRows(SheetStudyLog)
		require.NoError(t, err)
		require.Len(t, studyRows, 3)
		assert.Equal(t, []string{"Studied At", "Topic", "Category", "Minutes", "Confidence", "Notes"}, studyRows[0])
		assert.Equal(t, []string{"2025-03-02 08:30", "Arrays & Strings", "DSA", "45", "4", "sliding window"}, studyRows[1])
		assert.Equal(t, "Grammar", studyRows[2][1])

		attemptRows, err := f.GetRows(SheetMockAttempts)
		require.NoError(t, err)
		require.Len(t, attemptRows, 2)
		assert.Equal(t, []string{"2025-03-05 10:00", "Infosys Aptitude Test", "Infosys", "30", "40", "75", "55"}, attemptRows[1])

		readinessRows, err := f.GetRows(SheetReadiness)
		require.NoError(t, err)
		require.Len(t, readinessRows, 2)
		assert.Equal(t, []string{"2025-03-02 09:00", "52", "DBMS, Arrays & Strings"}, readinessRows[1])

		repo.AssertExpectations(t)
	})

	t.Run("empty export still has headers", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewExportService(repo, readiness.DefaultCatalog(), testLogger())
		repo.studyLogRepo.On("GetByDateRange", mock.Anything, mock.Anything, "user-1", mock.Anything, mock.Anything).Return([]*models.StudyLog{}, nil)
		repo.mockAttemptRepo.On("GetAllByUser", mock.Anything, mock.Anything, "user-1").Return([]*models.MockAttempt{}, nil)
		repo.snapshotRepo.On("GetHistory", mock.Anything, mock.Anything, "user-1", time.Unix(0, 0).UTC()).Return([]*models.ReadinessSnapshot{}, nil)

		data, err := svc.ExportProgress(ctx, "user-1", nil)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(SheetReadiness)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"Computed At", "Overall Score", "Weak Areas"}, rows[0])
	})

	t.Run("unsupported format", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewExportService(repo, readiness.DefaultCatalog(), testLogger())

		_, err := svc.ExportProgress(ctx, "user-1", &models.ExportRequest{Format: "csv"})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.True(t, IsValidation(err))
		repo.studyLogRepo.AssertNotCalled(t, "GetByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	SheetStudyLog     = "Study Log"
	SheetMockAttempts = "Mock Attempts"
	SheetReadiness    = "Readiness"

	exportTimeFormat = "2006-01-02 15:04"
)

type exportService struct {
	repo    repositories.Repository
	catalog *readiness.Catalog
	logger  *ServiceLogger
}

func NewExportService(repo repositories.Repository, catalog *readiness.Catalog, logger *slog.Logger) ExportService {
	return &exportService{
		repo:    repo,
		catalog: catalog,
		logger:  NewServiceLogger(logger, LogConfig{Service: "readiness-service", Component: "export"}),
	}
}

// ExportProgress writes the user's study logs, mock attempts and readiness
// snapshots into an xlsx workbook, one sheet each.
func (s *exportService) ExportProgress(ctx context.Context, userID string, req *models.ExportRequest) ([]byte, error) {
	op := s.logger.WithOperation(ctx, "export_progress", userID)

	data, err := s.export(ctx, userID, req)
	op.LogResult("", err)
	return data, err
}

func (s *exportService) export(ctx context.Context, userID string, req *models.ExportRequest) ([]byte, error) {
	if req == nil {
		req = &models.ExportRequest{}
	}
	if req.Format != "" && req.Format != "xlsx" {
		return nil, ErrUnsupportedFormat
	}
	from, to := exportRange(req)

	logs, err := s.repo.StudyLog().GetByDateRange(ctx, nil, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get study logs: %w", err)
	}
	attempts, err := s.repo.MockAttempt().GetAllByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mock attempts: %w", err)
	}
	snapshots, err := s.repo.Snapshot().GetHistory(ctx, nil, userID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get readiness history: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStudyLog); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	for _, name := range []string{SheetMockAttempts, SheetReadiness} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	studyRows := make([][]interface{}, 0, len(logs))
	for _, log := range logs {
		notes := ""
		if log.Notes != nil {
			notes = *log.Notes
		}
		studyRows = append(studyRows, []interface{}{
			log.StudiedAt.UTC().Format(exportTimeFormat),
			topicName(s.catalog, log.TopicID),
			string(log.Category),
			log.DurationMinutes,
			log.ConfidenceRating,
			notes,
		})
	}

	attemptRows := make([][]interface{}, 0, len(attempts))
	for _, attempt := range attempts {
		if attempt.AttemptedAt.Before(from) || !attempt.AttemptedAt.Before(to) {
			continue
		}
		attempt.CalculateComputedFields()
		name := attempt.MockTestID
		if test, ok := s.catalog.MockTest(attempt.MockTestID); ok {
			name = test.Name
		}
		attemptRows = append(attemptRows, []interface{}{
			attempt.AttemptedAt.UTC().Format(exportTimeFormat),
			name,
			attempt.CompanyTag,
			attempt.QuestionsCorrect,
			attempt.QuestionsTotal,
			attempt.Score,
			attempt.DurationMinutes,
		})
	}

	readinessRows := make([][]interface{}, 0, len(snapshots))
	for _, snap := range snapshots {
		if !snap.ComputedAt.Before(to) {
			continue
		}
		weak := ""
		for i, id := range snap.WeakTopicIDs() {
			if i > 0 {
				weak += ", "
			}
			weak += topicName(s.catalog, id)
		}
		readinessRows = append(readinessRows, []interface{}{
			snap.ComputedAt.UTC().Format(exportTimeFormat),
			snap.OverallScore,
			weak,
		})
	}

	sheets := []struct {
		name    string
		headers []interface{}
		rows    [][]interface{}
	}{
		{SheetStudyLog, []interface{}{"Studied At", "Topic", "Category", "Minutes", "Confidence", "Notes"}, studyRows},
		{SheetMockAttempts, []interface{}{"Attempted At", "Mock Test", "Company", "Correct", "Total", "Score (%)", "Minutes"}, attemptRows},
		{SheetReadiness, []interface{}{"Computed At", "Overall Score", "Weak Areas"}, readinessRows},
	}
	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// exportRange turns the optional request dates into a [from, to) window. DateTo
// is inclusive of the whole day.
func exportRange(req *models.ExportRequest) (time.Time, time.Time) {
	from := time.Unix(0, 0).UTC()
	to := time.Now().UTC().Add(day)
	if req.DateFrom != nil {
		from = startOfDay(*req.DateFrom)
	}
	if req.DateTo != nil {
		to = startOfDay(*req.DateTo).Add(day)
	}
	return from, to
}

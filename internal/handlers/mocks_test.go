package handlers

import (
	"context"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/stretchr/testify/mock"
)

type MockStudyLogService struct {
	mock.Mock
}

func (m *MockStudyLogService) Create(ctx context.Context, userID string, req *services.CreateStudyLogRequest) (*services.StudyLogResponse, error) {
	args := m.Called(ctx, userID, req)
	if v := args.Get(0); v != nil {
		return v.(*services.StudyLogResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudyLogService) List(ctx context.Context, userID string, filters repositories.StudyLogFilters) (*services.StudyLogListResponse, error) {
	args := m.Called(ctx, userID, filters)
	if v := args.Get(0); v != nil {
		return v.(*services.StudyLogListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudyLogService) Delete(ctx context.Context, userID string, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockMockTestService struct {
	mock.Mock
}

func (m *MockMockTestService) ListTests(ctx context.Context, userID string, company string) ([]*services.MockTestResponse, error) {
	args := m.Called(ctx, userID, company)
	return args.Get(0).([]*services.MockTestResponse), args.Error(1)
}

func (m *MockMockTestService) RecordAttempt(ctx context.Context, userID string, req *services.RecordAttemptRequest) (*services.MockAttemptResponse, error) {
	args := m.Called(ctx, userID, req)
	if v := args.Get(0); v != nil {
		return v.(*services.MockAttemptResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMockTestService) ListAttempts(ctx context.Context, userID string, filters repositories.MockAttemptFilters) (*services.MockAttemptListResponse, error) {
	args := m.Called(ctx, userID, filters)
	if v := args.Get(0); v != nil {
		return v.(*services.MockAttemptListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMockTestService) Summary(ctx context.Context, userID string) (*services.MockTestSummary, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.MockTestSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReadinessService struct {
	mock.Mock
}

func (m *MockReadinessService) Compute(ctx context.Context, userID string) (*services.ReadinessResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.ReadinessResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReadinessService) Get(ctx context.Context, userID string) (*services.ReadinessResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.ReadinessResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReadinessService) Breakdown(ctx context.Context, userID string) (*services.ReadinessBreakdown, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.ReadinessBreakdown), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReadinessService) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Dashboard(ctx context.Context, userID string) (*services.DashboardResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.DashboardResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressService) Progress(ctx context.Context, userID string) (*services.ProgressResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.ProgressResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Upsert(ctx context.Context, userID string, req *services.UpsertProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if v := args.Get(0); v != nil {
		return v.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) CompleteOnboarding(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportProgress(ctx context.Context, userID string, req *models.ExportRequest) ([]byte, error) {
	args := m.Called(ctx, userID, req)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeServiceManager hands out the mocks above.
type fakeServiceManager struct {
	readiness *MockReadinessService
	studyLog  *MockStudyLogService
	mockTest  *MockMockTestService
	progress  *MockProgressService
	profile   *MockProfileService
	export    *MockExportService
	catalog   *readiness.Catalog
}

func newFakeServiceManager() *fakeServiceManager {
	return &fakeServiceManager{
		readiness: &MockReadinessService{},
		studyLog:  &MockStudyLogService{},
		mockTest:  &MockMockTestService{},
		progress:  &MockProgressService{},
		profile:   &MockProfileService{},
		export:    &MockExportService{},
		catalog:   readiness.DefaultCatalog(),
	}
}

func (f *fakeServiceManager) Readiness() services.ReadinessService { return f.readiness }
func (f *fakeServiceManager) StudyLog() services.StudyLogService   { return f.studyLog }
func (f *fakeServiceManager) MockTest() services.MockTestService   { return f.mockTest }
func (f *fakeServiceManager) Progress() services.ProgressService   { return f.progress }
func (f *fakeServiceManager) Profile() services.ProfileService     { return f.profile }
func (f *fakeServiceManager) Export() services.ExportService       { return f.export }
func (f *fakeServiceManager) Catalog() *readiness.Catalog          { return f.catalog }

// stubParser accepts exactly one token.
type stubParser struct {
	token  string
	claims *casdoorsdk.Claims
	err    error
}

func (p *stubParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	if token != p.token {
		return nil, p.err
	}
	return p.claims, nil
}

package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/cache"
	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
)

// ServiceManager gives handlers access to every service.
type ServiceManager interface {
	Readiness() ReadinessService
	StudyLog() StudyLogService
	MockTest() MockTestService
	Progress() ProgressService
	Profile() ProfileService
	Export() ExportService
	Catalog() *readiness.Catalog
}

// ServiceDependencies are the shared collaborators the services are built from.
type ServiceDependencies struct {
	Repo              repositories.Repository
	Cache             cache.CacheService
	Publisher         events.EventPublisher
	Catalog           *readiness.Catalog
	Validator         *validator.Validator
	Logger            *slog.Logger
	Scoring           readiness.ScoringWeights
	WeakAreaLimit     int
	ReadinessCacheTTL time.Duration
	WeeklyGoalMinutes int
}

type serviceManager struct {
	catalog   *readiness.Catalog
	readiness ReadinessService
	studyLog  StudyLogService
	mockTest  MockTestService
	progress  ProgressService
	profile   ProfileService
	export    ExportService
}

func NewServiceManager(deps ServiceDependencies) ServiceManager {
	engine := readiness.NewEngine(deps.Catalog, deps.Logger, readiness.WithWeakAreaLimit(deps.WeakAreaLimit))
	readinessConfig := ReadinessConfig{Weights: deps.Scoring, CacheTTL: deps.ReadinessCacheTTL}

	readinessSvc := NewReadinessService(
		deps.Repo,
		repositories.NewEventSource(deps.Repo),
		engine,
		deps.Catalog,
		deps.Cache,
		deps.Publisher,
		readinessConfig,
		deps.Logger,
	)

	return &serviceManager{
		catalog:   deps.Catalog,
		readiness: readinessSvc,
		studyLog:  NewStudyLogService(deps.Repo, readinessSvc, deps.Publisher, deps.Catalog, deps.Validator, deps.Logger),
		mockTest:  NewMockTestService(deps.Repo, readinessSvc, deps.Publisher, deps.Catalog, deps.Validator, deps.Logger),
		progress:  NewProgressService(deps.Repo, readinessSvc, deps.Catalog, deps.WeeklyGoalMinutes, deps.Logger),
		profile:   NewProfileService(deps.Repo, deps.Publisher, deps.Validator, deps.WeeklyGoalMinutes, deps.Logger),
		export:    NewExportService(deps.Repo, deps.Catalog, deps.Logger),
	}
}

func (m *serviceManager) Readiness() ReadinessService { return m.readiness }
func (m *serviceManager) StudyLog() StudyLogService   { return m.studyLog }
func (m *serviceManager) MockTest() MockTestService   { return m.mockTest }
func (m *serviceManager) Progress() ProgressService   { return m.progress }
func (m *serviceManager) Profile() ProfileService     { return m.profile }
func (m *serviceManager) Export() ExportService       { return m.export }
func (m *serviceManager) Catalog() *readiness.Catalog { return m.catalog }

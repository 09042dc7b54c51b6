package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sjperalta/fintera-ledger/internal/jobs"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

// Scheduled job names
const (
	JobPortfolioEngine = "portfolio_engine"
	JobCollections     = "collections_refresh"
)

type JobService struct {
	worker      *jobs.Worker
	tenants     repository.TenantRepository
	portfolio   *PortfolioService
	collections *CollectionsService
}

func NewJobService(worker *jobs.Worker, tenants repository.TenantRepository, portfolio *PortfolioService, collections *CollectionsService) *JobService {
	return &JobService{
		worker:      worker,
		tenants:     tenants,
		portfolio:   portfolio,
		collections: collections,
	}
}

// RunPortfolioEngine processes every active tenant once
func (s *JobService) RunPortfolioEngine(ctx context.Context) error {
	results, err := s.portfolio.ProcessAllTenants(ctx)
	logger.Info(fmt.Sprintf("[Jobs] portfolio engine processed %d tenants", len(results)))
	return err
}

// RunCollections refreshes the collection cases of every active tenant
func (s *JobService) RunCollections(ctx context.Context) error {
	tenants, err := s.tenants.FindActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active tenants: %w", err)
	}

	var errs []error
	for _, tenant := range tenants {
		if ctx.Err() != nil {
			break
		}
		if _, err := s.collections.RefreshCollections(ctx, tenant.ID); err != nil {
			captureTenantError(tenant.ID, JobCollections, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Schedule registers the periodic jobs. The engine runs once at startup.
func (s *JobService) Schedule(engineEvery, collectionsEvery time.Duration) {
	s.worker.ScheduleEveryImmediate(JobPortfolioEngine, engineEvery, s.RunPortfolioEngine)
	s.worker.ScheduleEvery(JobCollections, collectionsEvery, s.RunCollections)
}

// Trigger queues an out-of-schedule run of a named job
func (s *JobService) Trigger(name string) error {
	var job jobs.Job
	switch name {
	case JobPortfolioEngine:
		job = s.RunPortfolioEngine
	case JobCollections:
		job = s.RunCollections
	default:
		return fmt.Errorf("%w: unknown job %q", ErrInvalidInput, name)
	}
	if err := s.worker.Enqueue(job); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	logger.Info("job triggered", "job", name)
	return nil
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	status := map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
		"max_concurrent": stats.MaxConcurrent,
		"schedules":      stats.Schedules,
	}
	if s.portfolio != nil {
		status[JobPortfolioEngine] = s.portfolio.Status()
	}
	return status
}

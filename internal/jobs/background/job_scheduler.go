package background

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"gigmarket/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const (
	CatalogEnsureJob  = "catalog-ensure"
	catalogJobTimeout = time.Minute
)

// JobScheduler runs the service's periodic jobs.
type JobScheduler struct {
	scheduler      gocron.Scheduler
	catalogService services.CatalogService
	ensureInterval time.Duration
	jobs           map[string]gocron.Job
	mu             sync.RWMutex
}

// JobStatus describes one registered job.
type JobStatus struct {
	Name    string    `json:"name"`
	LastRun time.Time `json:"lastRun"`
	NextRun time.Time `json:"nextRun"`
}

// NewJobScheduler registers the catalog ensure job. It runs once on Start and then every ensureInterval.
func NewJobScheduler(catalogService services.CatalogService, ensureInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:      scheduler,
		catalogService: catalogService,
		ensureInterval: ensureInterval,
		jobs:           make(map[string]gocron.Job),
	}
	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(js.ensureInterval),
		gocron.NewTask(js.ensureCatalog),
		gocron.WithName(CatalogEnsureJob),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(
			gocron.AfterJobRunsWithError(func(_ uuid.UUID, name string, err error) {
				log.Printf("ERROR: job %s failed: %v", name, err)
			}),
		),
	)
	if err != nil {
		return err
	}

	js.mu.Lock()
	js.jobs[CatalogEnsureJob] = job
	js.mu.Unlock()
	log.Printf("Registered %d background jobs", len(js.jobs))
	return nil
}

// ensureCatalog repopulates an empty category store.
func (js *JobScheduler) ensureCatalog() error {
	ctx, cancel := context.WithTimeout(context.Background(), catalogJobTimeout)
	defer cancel()

	seeded, err := js.catalogService.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if seeded {
		log.Printf("Catalog ensure job seeded an empty category store")
	}
	return nil
}

// RunNow triggers a job outside its schedule.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return gocron.ErrJobNotFound
	}
	return job.RunNow()
}

// GetJobStatus returns the registered jobs sorted by name.
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		status := JobStatus{Name: name}
		if last, err := job.LastRun(); err == nil {
			status.LastRun = last
		}
		if next, err := job.NextRun(); err == nil {
			status.NextRun = next
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

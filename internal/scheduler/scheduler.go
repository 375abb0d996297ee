// Package scheduler provides scheduled job execution for My World's Pokémon.
package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// DailyArticlesJob is the name of the rotation job registered by the server.
const DailyArticlesJob = "daily-articles"

const (
	defaultTick       = time.Minute
	defaultJobTimeout = 5 * time.Minute
)

var (
	// ErrJobNotFound is returned when no job has the requested name.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobRunning is returned when a job is triggered while it is still running.
	ErrJobRunning = errors.New("job already running")
)

// Job represents a scheduled job.
type Job struct {
	Name     string
	Schedule Schedule
	Handler  func(ctx context.Context) error
	LastRun  time.Time
	NextRun  time.Time
	LastErr  error

	running atomic.Bool
}

// Schedule defines when a job should run.
type Schedule struct {
	// For fixed-interval jobs
	Interval time.Duration

	// For time-of-day jobs, evaluated in Location (UTC when nil)
	Hours    []int
	Minute   int
	Location *time.Location

	// Type of schedule
	Type ScheduleType
}

// ScheduleType defines the type of schedule.
type ScheduleType string

const (
	ScheduleInterval ScheduleType = "interval"
	ScheduleDaily    ScheduleType = "daily"
)

// JobStatus is a snapshot of a registered job.
type JobStatus struct {
	Name      string    `json:"name"`
	Running   bool      `json:"running"`
	LastRun   time.Time `json:"last_run"`
	NextRun   time.Time `json:"next_run"`
	LastError string    `json:"last_error,omitempty"`
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithTick overrides how often due jobs are checked.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) { s.tick = d }
}

// WithJobTimeout overrides the per-run deadline.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.jobTimeout = d }
}

// Scheduler manages scheduled jobs.
type Scheduler struct {
	jobs    []*Job
	jobsMux sync.RWMutex
	stopped bool

	now        func() time.Time
	tick       time.Duration
	jobTimeout time.Duration

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new scheduler with no jobs.
func NewScheduler(opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		jobs:       make([]*Job, 0),
		now:        time.Now,
		tick:       defaultTick,
		jobTimeout: defaultJobTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddJob adds a job to the scheduler.
func (s *Scheduler) AddJob(job *Job) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	job.NextRun = calculateNextRun(job.Schedule, s.now())
	s.jobs = append(s.jobs, job)

	log.Info().
		Str("job", job.Name).
		Time("next_run", job.NextRun).
		Msg("Job registered")
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.jobsMux.RLock()
	count := len(s.jobs)
	s.jobsMux.RUnlock()

	log.Info().Int("jobs", count).Msg("Starting scheduler")

	s.wg.Add(1)
	go s.jobLoop()
}

// Stop stops the scheduler and waits for running jobs to return.
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler")

	s.jobsMux.Lock()
	s.stopped = true
	s.jobsMux.Unlock()

	s.cancel()
	s.wg.Wait()
}

// jobLoop checks and runs scheduled jobs.
func (s *Scheduler) jobLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRunJobs()
		}
	}
}

// checkAndRunJobs runs any jobs that are due.
func (s *Scheduler) checkAndRunJobs() {
	now := s.now()

	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	for _, job := range s.jobs {
		if now.Before(job.NextRun) {
			continue
		}

		job.NextRun = calculateNextRun(job.Schedule, now)
		if err := s.launch(job); err != nil {
			log.Warn().Err(err).Str("job", job.Name).Msg("Skipping scheduled run")
			continue
		}

		log.Debug().
			Str("job", job.Name).
			Time("next_run", job.NextRun).
			Msg("Job scheduled for next run")
	}
}

// launch starts job in its own goroutine unless it is still running.
// The caller must hold jobsMux.
func (s *Scheduler) launch(job *Job) error {
	if s.stopped {
		return context.Canceled
	}
	if !job.running.CompareAndSwap(false, true) {
		return ErrJobRunning
	}

	s.wg.Add(1)
	go s.runJob(job)
	return nil
}

// runJob executes a job.
func (s *Scheduler) runJob(job *Job) {
	defer s.wg.Done()
	defer job.running.Store(false)

	log.Info().Str("job", job.Name).Msg("Running job")

	ctx, cancel := context.WithTimeout(s.ctx, s.jobTimeout)
	defer cancel()

	started := s.now()
	err := job.Handler(ctx)

	s.jobsMux.Lock()
	job.LastRun = started
	job.LastErr = err
	s.jobsMux.Unlock()

	if err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("Job failed")
	} else {
		log.Info().Str("job", job.Name).Dur("took", s.now().Sub(started)).Msg("Job completed")
	}
}

// calculateNextRun returns the first run strictly after now.
func calculateNextRun(schedule Schedule, now time.Time) time.Time {
	switch schedule.Type {
	case ScheduleInterval:
		return now.Add(schedule.Interval)

	case ScheduleDaily:
		loc := schedule.Location
		if loc == nil {
			loc = time.UTC
		}
		local := now.In(loc)

		hours := append([]int(nil), schedule.Hours...)
		sort.Ints(hours)
		if len(hours) == 0 {
			hours = []int{0}
		}

		for day := 0; day < 2; day++ {
			for _, h := range hours {
				next := time.Date(local.Year(), local.Month(), local.Day()+day,
					h, schedule.Minute, 0, 0, loc)
				if next.After(local) {
					return next
				}
			}
		}
		return now.Add(24 * time.Hour)

	default:
		return now.Add(time.Hour)
	}
}

// RunJobNow runs a specific job immediately by name.
func (s *Scheduler) RunJobNow(name string) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	for _, job := range s.jobs {
		if job.Name == name {
			return s.launch(job)
		}
	}

	return ErrJobNotFound
}

// GetJobStatus returns the status of all jobs.
func (s *Scheduler) GetJobStatus() []JobStatus {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	status := make([]JobStatus, len(s.jobs))
	for i, job := range s.jobs {
		status[i] = JobStatus{
			Name:    job.Name,
			Running: job.running.Load(),
			LastRun: job.LastRun,
			NextRun: job.NextRun,
		}
		if job.LastErr != nil {
			status[i].LastError = job.LastErr.Error()
		}
	}
	return status
}

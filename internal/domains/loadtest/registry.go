package loadtest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrJobNotFound    = errors.New("load test not found")
	ErrJobFinished    = errors.New("load test already finished")
	ErrResultPending  = errors.New("load test has no results yet")
	ErrTooManyRunning = errors.New("too many load tests running")
	ErrShuttingDown   = errors.New("load test registry is shutting down")
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// RunFunc executes one scenario. *Runner.Run satisfies it.
type RunFunc func(ctx context.Context, sc Scenario) (*Result, error)

// Config is a request to start a job: a builtin scenario name plus optional overrides.
type Config struct {
	Name     string  `json:"name"`
	Scenario string  `json:"scenario"`
	VUs      int     `json:"vus"`
	Duration string  `json:"duration"`
	RPS      float64 `json:"rps"`
}

// Resolve turns c into a validated scenario. An empty scenario name means "smoke".
func (c Config) Resolve() (Scenario, error) {
	name := c.Scenario
	if name == "" {
		name = "smoke"
	}
	sc, err := Builtin(name)
	if err != nil {
		return Scenario{}, err
	}
	if c.VUs > 0 {
		sc.VUs = c.VUs
	}
	if c.Duration != "" {
		d, err := time.ParseDuration(c.Duration)
		if err != nil {
			return Scenario{}, fmt.Errorf("invalid duration: %w", err)
		}
		sc.Duration = d
	}
	if c.RPS > 0 {
		sc.RPS = c.RPS
	}
	return sc, sc.Validate()
}

// Job is a snapshot of a load test. Registry methods return copies.
type Job struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Scenario    Scenario   `json:"scenario"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
	Result      *Result    `json:"-"`
}

type entry struct {
	job       Job
	cancel    context.CancelFunc
	cancelled bool
}

// Registry owns every load test started by this process. Jobs run on
// goroutines bounded by the registry's lifetime; Shutdown cancels and waits
// for them.
type Registry struct {
	run        RunFunc
	maxRunning int
	now        func() time.Time

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
	jobs   map[string]*entry
	closed bool
}

func NewRegistry(run RunFunc, maxRunning int) *Registry {
	if maxRunning < 1 {
		maxRunning = 1
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Registry{
		run:        run,
		maxRunning: maxRunning,
		now:        func() time.Time { return time.Now().UTC() },
		ctx:        ctx,
		stop:       stop,
		jobs:       make(map[string]*entry),
	}
}

// Start validates cfg and launches the job in the background.
func (r *Registry) Start(cfg Config) (*Job, error) {
	sc, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrShuttingDown
	}
	if r.activeLocked() >= r.maxRunning {
		return nil, ErrTooManyRunning
	}

	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", sc.Name, r.now().Format(time.DateTime))
	}
	ctx, cancel := context.WithCancel(r.ctx)
	e := &entry{
		job: Job{
			ID:        uuid.NewString(),
			Name:      name,
			Scenario:  sc,
			Status:    StatusQueued,
			CreatedAt: r.now(),
		},
		cancel: cancel,
	}
	r.jobs[e.job.ID] = e

	r.wg.Add(1)
	go r.execute(ctx, e)

	job := e.job
	return &job, nil
}

func (r *Registry) execute(ctx context.Context, e *entry) {
	defer r.wg.Done()
	defer e.cancel()

	r.mu.Lock()
	started := r.now()
	e.job.Status = StatusRunning
	e.job.StartedAt = &started
	sc, id := e.job.Scenario, e.job.ID
	r.mu.Unlock()

	log.Info().Str("job_id", id).Str("scenario", sc.Name).Int("vus", sc.VUs).Dur("duration", sc.Duration).Msg("load test started")
	res, err := r.run(ctx, sc)

	r.mu.Lock()
	defer r.mu.Unlock()
	done := r.now()
	e.job.CompletedAt = &done
	e.job.Result = res
	switch {
	case e.cancelled || (err != nil && errors.Is(err, context.Canceled) && r.ctx.Err() != nil):
		e.job.Status = StatusCancelled
	case err != nil:
		e.job.Status = StatusFailed
		e.job.Error = err.Error()
	default:
		e.job.Status = StatusCompleted
	}
	log.Info().Str("job_id", id).Str("status", string(e.job.Status)).Msg("load test ended")
}

func (r *Registry) activeLocked() int {
	n := 0
	for _, e := range r.jobs {
		if !e.job.Status.Finished() {
			n++
		}
	}
	return n
}

func (r *Registry) Get(id string) (*Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	job := e.job
	return &job, nil
}

// Cancel stops a queued or running job. Its partial result is kept.
func (r *Registry) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	if e.job.Status.Finished() {
		return ErrJobFinished
	}
	e.cancelled = true
	e.cancel()
	return nil
}

// Running lists queued and running jobs.
func (r *Registry) Running() []Job {
	return r.filter(func(j Job) bool { return !j.Status.Finished() })
}

// List returns every job, oldest first.
func (r *Registry) List() []Job {
	return r.filter(func(Job) bool { return true })
}

func (r *Registry) filter(keep func(Job) bool) []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.jobs))
	for _, e := range r.jobs {
		if keep(e.job) {
			out = append(out, e.job)
		}
	}
	slices.SortFunc(out, func(a, b Job) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

func (r *Registry) Result(id string) (*Result, error) {
	job, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if job.Result == nil {
		return nil, ErrResultPending
	}
	return job.Result, nil
}

// Cleanup forgets finished jobs that completed more than olderThan ago and
// returns how many were removed.
func (r *Registry) Cleanup(olderThan time.Duration) int {
	cutoff := r.now().Add(-olderThan)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.jobs {
		if e.job.Status.Finished() && e.job.CompletedAt != nil && !e.job.CompletedAt.After(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}

// CleanupEvery runs Cleanup on an interval until the registry shuts down.
func (r *Registry) CleanupEvery(interval, olderThan time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				if n := r.Cleanup(olderThan); n > 0 {
					log.Debug().Int("removed", n).Msg("load test jobs cleaned up")
				}
			}
		}
	}()
}

// Shutdown cancels every job and waits for the goroutines to exit or ctx to end.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.stop()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

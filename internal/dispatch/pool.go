package dispatch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/runelabs/runekit/internal/errs"
)

// NewRequestID creates a unique identifier for one accepted execution.
func NewRequestID() string {
	return ulid.Make().String()
}

// job is one accepted execution bound to its completion work.
type job struct {
	id  string
	run func()
}

// Pool is a fixed-size worker pool with a bounded queue.
type Pool struct {
	log  *slog.Logger
	jobs chan job
	g    *errgroup.Group

	// closeMu serializes Submit sends against Close: Submit holds the
	// read side while enqueueing so Close cannot close the channel out
	// from under a blocked send.
	closeMu sync.RWMutex
	closed  bool

	inFlightMu sync.Mutex
	inFlight   map[string]time.Time
}

// NewPool starts workers goroutines draining a queue of the given depth.
func NewPool(log *slog.Logger, workers, queue int) *Pool {
	if workers < 1 {
		workers = 1
	}

	if queue < 0 {
		queue = 0
	}

	p := &Pool{
		log:      log.With("component", "dispatch"),
		jobs:     make(chan job, queue),
		g:        &errgroup.Group{},
		inFlight: make(map[string]time.Time, 16),
	}

	for range workers {
		p.g.Go(p.worker)
	}

	return p
}

func (p *Pool) worker() error {
	for jb := range p.jobs {
		start := time.Now()
		jb.run()
		p.log.Debug("Job completed", "request_id", jb.id, "duration", time.Since(start))

		p.inFlightMu.Lock()
		delete(p.inFlight, jb.id)
		p.inFlightMu.Unlock()
	}

	return nil
}

// Submit enqueues a job for execution. It blocks only while the queue is
// full and returns errs.ErrEngineClosed once Close has begun. An accepted
// job's run function is invoked exactly once, on a pool goroutine.
func (p *Pool) Submit(id string, run func()) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		return errs.ErrEngineClosed
	}

	p.inFlightMu.Lock()
	p.inFlight[id] = time.Now()
	p.inFlightMu.Unlock()

	p.jobs <- job{id: id, run: run}
	p.log.Debug("Job accepted", "request_id", id)

	return nil
}

// InFlight returns the number of accepted jobs that have not completed.
func (p *Pool) InFlight() int {
	p.inFlightMu.Lock()
	defer p.inFlightMu.Unlock()

	return len(p.inFlight)
}

// Close stops accepting new jobs and blocks until every accepted job has
// run. Safe to call more than once.
func (p *Pool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}

	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()

	// Workers never return errors; Wait is purely a drain barrier.
	_ = p.g.Wait()
	p.log.Debug("Pool drained")
}

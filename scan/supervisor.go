package scan

import (
	"context"
	"sync"

	"github.com/lawcorpus/lexscan"
)

// RunFunc executes one scan run.
type RunFunc func(ctx context.Context, q lexscan.Query) (*Result, error)

// PublishFunc receives the outcome of the most recent submission.
type PublishFunc func(q lexscan.Query, res *Result, err error)

// Supervisor serializes interactive scans: submitting a new query cancels
// the in-flight run, and only the most recent submission may publish its
// outcome. A superseded run's result is dropped even if it finishes after
// cancellation.
type Supervisor struct {
	run RunFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64

	wg sync.WaitGroup
}

// NewSupervisor creates a Supervisor dispatching to run.
func NewSupervisor(run RunFunc) *Supervisor {
	return &Supervisor{run: run}
}

// Submit starts a scan for q, canceling any in-flight run first. The
// publish callback fires only if this submission is still the most recent
// when the run returns.
func (s *Supervisor) Submit(ctx context.Context, q lexscan.Query, publish PublishFunc) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		res, err := s.run(runCtx, q)

		s.mu.Lock()
		current := s.gen == gen
		s.mu.Unlock()

		if current && publish != nil {
			publish(q, res, err)
		}
	}()
}

// Cancel stops the in-flight run, if any, and suppresses its outcome.
func (s *Supervisor) Cancel() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.mu.Unlock()
}

// Wait blocks until every submitted run has returned.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}

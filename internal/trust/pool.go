package trust

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const jobTimeout = 10 * time.Second

// Pool is the in-process Scheduler: a bounded queue drained by a fixed set
// of workers.
type Pool struct {
	recomputer *Recomputer
	queue      chan uuid.UUID
	log        *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(recomputer *Recomputer, workers, size int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		recomputer: recomputer,
		queue:      make(chan uuid.UUID, size),
		log:        log.With(zap.String("component", "trust.pool")),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	return p
}

func (p *Pool) Schedule(caregiverID uuid.UUID) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- caregiverID:
	default:
		p.log.Warn("Trust queue full, dropping recompute", zap.String("caregiver_id", caregiverID.String()))
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for id := range p.queue {
		p.recomputer.run(context.Background(), id, jobTimeout)
	}
}

// Close stops intake and waits for queued work or ctx.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package lightning

import (
	"context"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
Pool is a persistent set of workers that split a single gate application
into strips of partition groups. Strips touch disjoint amplitudes, so the
result is the same as running them one after another; the pool only changes
how long it takes.

Workers are started on first use and live until Close or until the context
passed to NewPool is cancelled. After that, Run executes strips on the
calling goroutine.
*/
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	jobs   chan Job
	size   int

	workerMu   sync.Mutex
	workerList []*Worker
}

// NewPool creates a pool of size workers.
func NewPool(ctx context.Context, size int) *Pool {
	ctx, cancel := context.WithCancel(ctx)
	if size < 1 {
		size = 1
	}

	return &Pool{
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(chan Job),
		size:   size,
	}
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) start() {
	p.workerMu.Lock()
	defer p.workerMu.Unlock()

	for i := 0; i < p.size; i++ {
		w := &Worker{id: i, pool: p}
		p.workerList = append(p.workerList, w)

		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run()
		}()
	}

	errnie.Info("lightning pool started - workers %d", p.size)
}

/*
Run splits [0, n) into strips of at most strip indices, runs fn over every
strip and returns once all of them have finished.

Parameters:
  - n: number of partition groups
  - strip: groups per job
  - fn: the per-strip work, called with a half-open range

Returns:
  - int: the number of strips that were scheduled
*/
func (p *Pool) Run(n, strip int, fn func(lo, hi int)) int {
	if strip < 1 {
		strip = 1
	}

	var done sync.WaitGroup
	strips := 0

	if p.ctx.Err() != nil {
		for lo := 0; lo < n; lo += strip {
			fn(lo, min(lo+strip, n))
			strips++
		}
		return strips
	}

	p.once.Do(p.start)

	for lo := 0; lo < n; lo += strip {
		job := Job{Lo: lo, Hi: min(lo+strip, n), Fn: fn, done: &done}
		done.Add(1)
		strips++

		select {
		case p.jobs <- job:
		case <-p.ctx.Done():
			job.run()
		}
	}

	done.Wait()
	return strips
}

// Close stops the workers and waits for them to exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.cancel()
	p.wg.Wait()

	p.workerMu.Lock()
	n := len(p.workerList)
	p.workerList = nil
	p.workerMu.Unlock()

	if n > 0 {
		errnie.Info("lightning pool closed - workers %d", n)
	}
}

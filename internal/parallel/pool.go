// Package parallel provides the worker pool used to colorize tiles and
// large buffers concurrently.
//
// Jobs are plain closures. Each worker owns a queue and steals from the
// others when its own runs dry, so a few slow tiles do not stall the batch.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines executing submitted jobs.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			run(job)
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			run(job)
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			run(job)
		}
	}
}

func run(job func()) {
	if job != nil {
		job()
	}
}

func drain(q chan func()) {
	for {
		select {
		case job := <-q:
			run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case job := <-p.queues[(self+i)%p.workers]:
			return job
		default:
		}
	}
	return nil
}

// take removes one job from any queue, scanning from start, or returns nil.
func (p *WorkerPool) take(start int) func() {
	for i := range p.workers {
		select {
		case job := <-p.queues[(start+i)%p.workers]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and waits for all of them to finish.
//
// Jobs are dealt round-robin to the worker queues; a job that finds its
// queue full runs on the calling goroutine. While waiting, the caller runs
// queued jobs itself, so ExecuteAll may be called from inside a job of the
// same pool and queued jobs still finish if the pool is closed meanwhile.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			run(job)
		}
		return
	}

	var remaining atomic.Int64
	remaining.Store(int64(len(jobs)))
	finished := make(chan struct{})

	for i, job := range jobs {
		wrapped := func() {
			defer func() {
				if remaining.Add(-1) == 0 {
					close(finished)
				}
			}()
			run(job)
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		default:
			wrapped()
		}
	}

	// Every job is now queued, running or done. A queued job stays visible
	// to take until someone runs it.
	for i := 0; ; i++ {
		select {
		case <-finished:
			return
		default:
		}
		if job := p.take(i); job != nil {
			run(job)
			continue
		}
		<-finished
		return
	}
}

// Submit queues a single job on the least loaded worker without waiting.
// It is a no-op on a closed pool. A job submitted while Close is running
// may be dropped; use ExecuteAll when completion matters.
func (p *WorkerPool) Submit(job func()) {
	if job == nil || !p.running.Load() {
		return
	}

	target := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[target]) {
			target = i
		}
	}

	select {
	case p.queues[target] <- job:
	case <-p.done:
	}
}

// Close stops the pool after queued jobs have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns an approximate count of jobs waiting in the queues.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}

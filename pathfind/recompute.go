package pathfind

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/milk9111/pathpaint/grid"
)

// Recomputer runs path computations off the caller's goroutine. Runs are
// serialized, and only the most recently requested job may deliver a result:
// older jobs are cancelled when superseded and their results dropped.
type Recomputer struct {
	client *Client
	sem    *semaphore.Weighted

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

func NewRecomputer(client *Client) *Recomputer {
	return &Recomputer{
		client: client,
		sem:    semaphore.NewWeighted(1),
	}
}

// Result is the outcome of one job.
type Result struct {
	Seq  uint64
	Path Path
	Err  error
}

// Job is one queued computation. Run it from any goroutine.
type Job struct {
	Seq  uint64
	ctx  context.Context
	done context.CancelFunc
	snap grid.Snapshot
	opts Options
	r    *Recomputer
}

// Request registers a new computation for snap and supersedes every earlier job.
func (r *Recomputer) Request(ctx context.Context, snap grid.Snapshot, opts Options) Job {
	jobCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.latest++
	seq := r.latest
	r.cancel = cancel
	r.mu.Unlock()

	return Job{Seq: seq, ctx: jobCtx, done: cancel, snap: snap, opts: opts, r: r}
}

// Current reports whether seq is still the newest job.
func (r *Recomputer) Current(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return seq == r.latest
}

// Run waits for any running job, computes, and returns the result. ok is false
// when the job was superseded before or during the computation; the result must
// then be discarded.
func (j Job) Run() (res Result, ok bool) {
	defer j.done()
	res.Seq = j.Seq

	if err := j.r.sem.Acquire(j.ctx, 1); err != nil {
		return res, false
	}
	defer j.r.sem.Release(1)

	if !j.r.Current(j.Seq) {
		return res, false
	}
	res.Path, res.Err = j.r.client.ComputePath(j.ctx, j.snap, j.opts)
	if !j.r.Current(j.Seq) {
		return res, false
	}
	return res, true
}

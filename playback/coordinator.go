// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ik5/audloop/audio"
)

// FailurePolicy decides what plays after a load fails.
type FailurePolicy int

const (
	// DiscardOnFailure publishes an empty buffer, so playback goes silent
	// and the previous clip is dropped.
	DiscardOnFailure FailurePolicy = iota
	// RetainOnFailure keeps playing the previous clip from where it was.
	RetainOnFailure
)

func (p FailurePolicy) String() string {
	if p == RetainOnFailure {
		return "retain"
	}
	return "discard"
}

// ParseFailurePolicy accepts "discard" or "retain", case-insensitively.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discard", "":
		return DiscardOnFailure, nil
	case "retain":
		return RetainOnFailure, nil
	}
	return DiscardOnFailure, fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
}

// Loader turns a path into a buffer at the given rate.
type Loader interface {
	Load(path string, deviceRate int) (*audio.Buffer, error)
}

type CoordinatorOptions struct {
	Policy   FailurePolicy
	Observer Observer
	Logger   *slog.Logger
}

type request struct {
	seq  uint64
	path string
}

// Coordinator loads files on a single worker goroutine and publishes each
// result to a Cursor.
//
// Requests coalesce: there is one pending slot and a newer request replaces
// whatever waits in it, so at most one load runs and at most one waits. A
// replaced request is logged and reported to Observer.Superseded. Publishes
// replace the cursor's Playhead in one atomic store; buffers are never
// modified or released after publication, the garbage collector reclaims
// them once the consumer's last snapshot is gone.
type Coordinator struct {
	cursor   *Cursor
	loader   Loader
	device   Device
	policy   FailurePolicy
	observer Observer
	log      *slog.Logger

	wake chan struct{}

	mu      sync.Mutex
	seq     uint64
	pending *request
	running bool
	settled uint64
	last    Result
	changed chan struct{}
	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewCoordinator(cursor *Cursor, loader Loader, device Device, opts CoordinatorOptions) *Coordinator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	observer := opts.Observer
	if observer == nil {
		observer = ObserverFuncs{}
	}

	return &Coordinator{
		cursor:   cursor,
		loader:   loader,
		device:   device,
		policy:   opts.Policy,
		observer: observer,
		log:      log,
		wake:     make(chan struct{}, 1),
		changed:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the worker. Requests made before Start wait for it.
// Cancelling ctx has the same effect as Close.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.closed {
		return
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	go c.run(ctx)
}

// RequestLoad queues path and returns its sequence number. It never blocks.
func (c *Coordinator) RequestLoad(path string) (uint64, error) {
	if !c.device.Active() {
		return 0, ErrDeviceInactive
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, ErrClosed
	}
	c.seq++
	req := &request{seq: c.seq, path: path}
	replaced := c.pending
	c.pending = req
	c.mu.Unlock()

	if replaced != nil {
		c.log.Debug("load request superseded", "path", replaced.path, "seq", replaced.seq, "by", req.seq)
		c.observer.Superseded(Result{Seq: replaced.seq, Path: replaced.path, Err: ErrSuperseded})
	}

	select {
	case c.wake <- struct{}{}:
	default:
	}

	return req.seq, nil
}

// Wait blocks until request seq has settled, along with every request
// before it, and returns the latest result. A superseded request settles
// when the request that replaced it does.
func (c *Coordinator) Wait(ctx context.Context, seq uint64) (Result, error) {
	for {
		c.mu.Lock()
		if c.settled >= seq {
			r := c.last
			c.mu.Unlock()
			return r, nil
		}
		if c.closed {
			c.mu.Unlock()
			return Result{}, ErrClosed
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-ch:
		}
	}
}

// Idle reports whether no load is running or waiting.
func (c *Coordinator) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending == nil && !c.running
}

// Close stops accepting requests and waits for the worker to finish the
// load it is running. That result is dropped; a request still waiting is
// reported as superseded with ErrClosed.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	started, cancel := c.started, c.cancel
	if !started {
		c.started = true
		close(c.done)
	}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-c.done
	c.shutdown()

	return nil
}

func (c *Coordinator) shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	dropped := c.pending
	c.pending = nil
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()

	if dropped != nil {
		c.log.Debug("load request dropped at shutdown", "path", dropped.path, "seq", dropped.seq)
		c.observer.Superseded(Result{Seq: dropped.seq, Path: dropped.path, Err: ErrClosed})
	}
}

func (c *Coordinator) run(ctx context.Context) {
	defer close(c.done)
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.wake:
		}

		for {
			req := c.take()
			if req == nil {
				break
			}
			c.process(ctx, req)
			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (c *Coordinator) take() *request {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := c.pending
	c.pending = nil
	c.running = req != nil

	return req
}

func (c *Coordinator) process(ctx context.Context, req *request) {
	prev := c.cursor.Acquire()
	loading := c.cursor.publish(prev.Buffer(), false, prev.Position())

	rate := c.device.SampleRate()
	buf, err := c.loader.Load(req.path, rate)

	if ctx.Err() != nil {
		c.log.Debug("load finished after shutdown", "path", req.path, "seq", req.seq)
		c.finish(req, Result{Seq: req.seq, Path: req.path, Err: ErrClosed}, false)
		return
	}

	res := Result{Seq: req.seq, Path: req.path, Err: err}
	if err == nil {
		pos := 0
		if c.cursor.Direction() == Backward {
			pos = buf.Frames()
		}
		c.cursor.publish(buf, true, pos)
		res.Buffer = buf

		c.log.Info("loaded",
			"path", req.path,
			"frames", buf.Frames(),
			"channels", buf.Channels(),
			"sample_rate", buf.SampleRate(),
		)
	} else {
		res.Buffer = c.publishFailure(loading, rate)
		c.log.Warn("load failed", "path", req.path, "policy", c.policy.String(), "error", err)
	}

	c.finish(req, res, true)
}

// publishFailure applies the failure policy and returns the buffer it
// published. prev is the not-ready state shown during the load; a seek made
// meanwhile is kept when the old clip is retained.
func (c *Coordinator) publishFailure(prev *Playhead, rate int) *audio.Buffer {
	if c.policy == RetainOnFailure && prev.Buffer() != nil {
		c.cursor.publish(prev.Buffer(), true, prev.Position())
		return prev.Buffer()
	}

	empty := audio.EmptyBuffer(rate)
	c.cursor.publish(empty, true, 0)

	return empty
}

func (c *Coordinator) finish(req *request, res Result, notify bool) {
	c.mu.Lock()
	c.running = false
	c.settled = req.seq
	c.last = res
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()

	if notify {
		c.observer.Published(res)
	}
}

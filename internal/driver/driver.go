// Package driver runs sorting procedures against a session and owns the
// run-state machine around them.
package driver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Result summarizes one finished run.
type Result struct {
	Algorithm session.Algorithm
	Initial   []int
	Final     []int
	Completed bool
	Steps     int
	Elapsed   time.Duration
	Metrics   map[string]float64
	Err       error
}

type Driver struct {
	sess     *session.Session
	pacer    *pacing.Pacer
	registry *sorting.Registry
	logger   *slog.Logger
	metrics  *metrics.Set

	mu     sync.Mutex
	done   chan struct{}
	result *Result
}

type Option func(*Driver)

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithMetrics attaches a metric set. The set only sees events when it also
// observes the session, as Setup arranges.
func WithMetrics(set *metrics.Set) Option {
	return func(d *Driver) { d.metrics = set }
}

func WithRegistry(r *sorting.Registry) Option {
	return func(d *Driver) { d.registry = r }
}

func New(sess *session.Session, pacer *pacing.Pacer, opts ...Option) *Driver {
	d := &Driver{
		sess:     sess,
		pacer:    pacer,
		registry: sorting.NewRegistry(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = metrics.NewSet()
	}
	return d
}

// Setup builds a session observed by the default metric set and obs, a
// pacer on curve and a driver over both. A nil clock uses real time.
func Setup(obs session.Observer, curve pacing.Curve, clock pacing.Clock, opts ...Option) (*Driver, error) {
	if err := curve.Validate(); err != nil {
		return nil, err
	}
	set := metrics.Default()
	sess := session.New(session.Tee(set, obs))

	var popts []pacing.Option
	if clock != nil {
		popts = append(popts, pacing.WithClock(clock))
	}
	pacer := pacing.New(sess, curve, popts...)

	return New(sess, pacer, append([]Option{WithMetrics(set)}, opts...)...), nil
}

func (d *Driver) Session() *session.Session { return d.sess }
func (d *Driver) Pacer() *pacing.Pacer { return d.pacer }
func (d *Driver) Metrics() *metrics.Set { return d.metrics }
func (d *Driver) Registry() *sorting.Registry { return d.registry }

func (d *Driver) AddMetric(m metrics.Metric) { d.metrics.Add(m) }

// Select changes the algorithm while Idle and announces it.
func (d *Driver) Select(a session.Algorithm) error {
	if err := d.sess.SetAlgorithm(a); err != nil {
		return err
	}
	d.sess.SetStatus(StatusSelected(a))
	return nil
}

// Start launches the selected procedure on its own goroutine. Cancelling
// ctx cancels the run.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := d.sess.Algorithm()
	if name == session.AlgorithmNone {
		d.sess.SetStatus(StatusNoAlgorithm)
		d.logger.Warn("start without algorithm")
		return ErrNoAlgorithm
	}
	algo, err := d.registry.Get(name)
	if err != nil {
		return err
	}

	// Only a successful Start may reset the live run's counters.
	if d.sess.RunState() != session.Idle {
		return session.ErrBusy
	}
	initial := d.sess.Sequence()
	d.metrics.Reset()
	if err := d.sess.Begin(); err != nil {
		return err
	}

	done := make(chan struct{})
	d.done = done
	d.result = nil

	d.logger.Info("run started", "algorithm", string(name), "len", len(initial), "speed", d.sess.Speed())
	go d.run(ctx, algo, initial, done)
	return nil
}

func (d *Driver) run(ctx context.Context, algo sorting.Algorithm, initial []int, done chan struct{}) {
	defer close(done)

	stop := context.AfterFunc(ctx, func() { d.sess.RequestCancel() })

	start := time.Now()
	b := &board{Session: d.sess, pacer: d.pacer}
	err := algo.Sort(ctx, b)
	stop()

	completed := err == nil
	res := &Result{
		Algorithm: algo.Name(),
		Initial:   initial,
		Final:     d.sess.Sequence(),
		Completed: completed,
		Steps:     b.steps,
		Elapsed:   time.Since(start),
		Metrics:   d.metrics.Values(),
		Err:       err,
	}

	// The result must be in place before Finish lets a new run begin.
	d.mu.Lock()
	d.result = res
	d.mu.Unlock()

	if completed {
		d.sess.Finish(session.Sorted, StatusComplete)
	} else {
		d.sess.Finish(session.Default, "")
	}

	attrs := []any{"algorithm", string(res.Algorithm), "steps", res.Steps, "elapsed", res.Elapsed}
	switch {
	case completed:
		d.logger.Info("run completed", attrs...)
	case errors.Is(err, session.ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		d.logger.Info("run canceled", attrs...)
	default:
		d.logger.Error("run failed", append(attrs, "err", err)...)
	}
}

// Run starts the selected procedure and blocks until it finishes.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if err := d.Start(ctx); err != nil {
		return nil, err
	}
	d.Wait()
	res := d.Result()
	return res, res.Err
}

// Pause is valid only while Running.
func (d *Driver) Pause() bool {
	if !d.sess.RequestPause() {
		return false
	}
	d.sess.SetStatusIf(session.Paused, StatusPaused)
	d.logger.Info("run paused")
	return true
}

// Resume is valid only while Paused.
func (d *Driver) Resume() bool {
	if !d.sess.RequestResume() {
		return false
	}
	d.sess.SetStatusIf(session.Running, StatusResumed)
	d.logger.Info("run resumed")
	return true
}

// Play is the single play control: it warns without an algorithm, resumes
// a paused run and starts an idle one.
func (d *Driver) Play(ctx context.Context) error {
	if d.sess.Algorithm() == session.AlgorithmNone {
		d.sess.SetStatus(StatusNoAlgorithm)
		return ErrNoAlgorithm
	}
	switch d.sess.RunState() {
	case session.Paused:
		d.Resume()
		return nil
	case session.Running:
		return session.ErrBusy
	}
	return d.Start(ctx)
}

// Cancel stops a Running or Paused run, waits for the procedure to return
// and reinstalls input when it is non-empty.
func (d *Driver) Cancel(input []int) bool {
	if !d.sess.RequestCancel() {
		return false
	}
	d.logger.Info("run cancel requested")
	d.Wait()
	if err := d.restore(input); err != nil {
		d.logger.Warn("restore after cancel", "err", err)
	}
	return true
}

// Reset is Cancel that is also valid while Idle.
func (d *Driver) Reset(input []int) error {
	if !d.sess.RequestCancel() && d.sess.RunState() == session.Idle {
		return d.restore(input)
	}
	d.Wait()
	return d.restore(input)
}

func (d *Driver) restore(input []int) error {
	if len(input) > 0 {
		if err := d.sess.SetSequence(input); err != nil {
			return err
		}
	}
	d.sess.SetStatus(StatusReady)
	return nil
}

// Wait blocks until the current run, if any, has finished.
func (d *Driver) Wait() {
	<-d.Done()
}

// Done is closed when the current run finishes. It is already closed when
// nothing has been started.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return d.done
}

// Result returns the last finished run, or nil.
func (d *Driver) Result() *Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

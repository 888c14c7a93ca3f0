package driver_test

import (
	"context"
	"slices"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/driver"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
)

// recorder keeps every change and flags swaps seen outside Running.
type recorder struct {
	mu           sync.Mutex
	changes      []session.Change
	pausedSwaps  int
	swapsInState map[session.RunState]int
}

func newRecorder() *recorder {
	return &recorder{swapsInState: make(map[session.RunState]int)}
}

func (r *recorder) OnChange(c session.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
	if c.Kind == session.ChangeSwap {
		r.swapsInState[c.Snapshot.State]++
		if c.Snapshot.State == session.Paused {
			r.pausedSwaps++
		}
	}
}

func (r *recorder) swaps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.changes {
		if c.Kind == session.ChangeSwap {
			n++
		}
	}
	return n
}

func (r *recorder) paused() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pausedSwaps
}

func allTags(tag session.Tag, n int) []session.Tag {
	out := make([]session.Tag, n)
	for i := range out {
		out[i] = tag
	}
	return out
}

func sorted(v []int) []int {
	out := slices.Clone(v)
	slices.Sort(out)
	return out
}

var _ = Describe("Driver", func() {
	var (
		rec *recorder
		d   *driver.Driver
		ctx context.Context
	)

	BeforeEach(func() {
		rec = newRecorder()
		ctx = context.Background()
	})

	Context("with instant pacing", func() {
		BeforeEach(func() {
			var err error
			d, err = driver.Setup(rec, pacing.Instant, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("sorts the bubble scenario and tags everything sorted", func() {
			sess := d.Session()
			Expect(sess.SetSequence([]int{5, 3, 8, 1})).To(Succeed())
			Expect(d.Select(session.AlgorithmBubble)).To(Succeed())
			Expect(sess.Status()).To(Equal("Selected: Bubble Sort"))

			res, err := d.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Completed).To(BeTrue())
			Expect(res.Initial).To(Equal([]int{5, 3, 8, 1}))
			Expect(res.Final).To(Equal([]int{1, 3, 5, 8}))
			Expect(res.Metrics).To(HaveKeyWithValue(metrics.NameComparisons, 6.0))
			Expect(res.Metrics).To(HaveKeyWithValue(metrics.NameInversions, 0.0))

			snap := sess.Snapshot()
			Expect(snap.State).To(Equal(session.Idle))
			Expect(snap.Tags).To(Equal(allTags(session.Sorted, 4)))
			Expect(snap.Status).To(Equal(driver.StatusComplete))
			Expect(snap.ControlsLocked()).To(BeFalse())
		})

		DescribeTable("equal values never exchange",
			func(a session.Algorithm) {
				sess := d.Session()
				Expect(sess.SetSequence([]int{2, 2, 2})).To(Succeed())
				Expect(sess.SetAlgorithm(a)).To(Succeed())

				res, err := d.Run(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(rec.swaps()).To(BeZero())
				Expect(res.Metrics).To(HaveKeyWithValue(metrics.NameExchanges, 0.0))
				Expect(sess.Tags()).To(Equal(allTags(session.Sorted, 3)))
			},
			Entry("bubble", session.AlgorithmBubble),
			Entry("selection", session.AlgorithmSelection),
			Entry("insertion", session.AlgorithmInsertion),
		)

		It("refuses to start without an algorithm", func() {
			sess := d.Session()
			Expect(sess.SetSequence([]int{3, 1})).To(Succeed())

			Expect(d.Start(ctx)).To(MatchError(driver.ErrNoAlgorithm))
			Expect(sess.RunState()).To(Equal(session.Idle))
			Expect(sess.Status()).To(Equal(driver.StatusNoAlgorithm))
			Expect(sess.Sequence()).To(Equal([]int{3, 1}))

			Expect(d.Play(ctx)).To(MatchError(driver.ErrNoAlgorithm))
		})

		It("refuses to start without a sequence", func() {
			Expect(d.Select(session.AlgorithmInsertion)).To(Succeed())
			Expect(d.Start(ctx)).To(MatchError(session.ErrEmptySequence))
		})

		It("treats pause and resume as no-ops while idle", func() {
			Expect(d.Pause()).To(BeFalse())
			Expect(d.Resume()).To(BeFalse())
			Expect(d.Cancel(nil)).To(BeFalse())
			Eventually(d.Done()).Should(BeClosed())
		})

		It("keeps the completion status when a pause arrives at the finish", func() {
			var (
				target    *driver.Driver
				latePause = true
				once      sync.Once
			)
			obs := session.ObserverFunc(func(c session.Change) {
				if c.Kind == session.ChangeStatus && c.Snapshot.Status == driver.StatusComplete {
					once.Do(func() { latePause = target.Pause() })
				}
			})
			var err error
			target, err = driver.Setup(obs, pacing.Instant, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(target.Session().SetSequence([]int{2, 1})).To(Succeed())
			Expect(target.Select(session.AlgorithmBubble)).To(Succeed())

			res, err := target.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Completed).To(BeTrue())
			Expect(latePause).To(BeFalse())

			snap := target.Session().Snapshot()
			Expect(snap.State).To(Equal(session.Idle))
			Expect(snap.Status).To(Equal(driver.StatusComplete))
		})

		It("reinstalls the input on reset while idle", func() {
			Expect(d.Reset([]int{9, 7})).To(Succeed())
			Expect(d.Session().Sequence()).To(Equal([]int{9, 7}))
			Expect(d.Session().Status()).To(Equal(driver.StatusReady))
		})
	})

	Context("with a manual clock", func() {
		var clock *pacing.ManualClock

		BeforeEach(func() {
			clock = pacing.NewManualClock()
			var err error
			d, err = driver.Setup(rec, pacing.DefaultCurve, clock)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Session().SetSequence([]int{9, 4, 7, 1, 8})).To(Succeed())
			Expect(d.Select(session.AlgorithmBubble)).To(Succeed())
		})

		drain := func() {
			Eventually(func() bool {
				clock.Release()
				select {
				case <-d.Done():
					return true
				default:
					return false
				}
			}).WithTimeout(5 * time.Second).WithPolling(time.Millisecond).Should(BeTrue())
		}

		It("locks controls for the whole run", func() {
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))

			sess := d.Session()
			Expect(sess.Snapshot().ControlsLocked()).To(BeTrue())
			Expect(sess.SetAlgorithm(session.AlgorithmSelection)).To(MatchError(session.ErrBusy))
			Expect(sess.SetSequence([]int{1})).To(MatchError(session.ErrBusy))
			Expect(d.Play(ctx)).To(MatchError(session.ErrBusy))

			for k := 1; k <= 4; k++ {
				Expect(clock.Release()).To(BeTrue())
				Eventually(func() int { return len(clock.Requested()) }).Should(Equal(k + 1))
			}
			set := d.Metrics()
			before := set.Values()
			history := set.History(metrics.NameInversions)
			Expect(before).To(HaveKeyWithValue(metrics.NameComparisons, 2.0))

			Expect(d.Start(ctx)).To(MatchError(session.ErrBusy))
			Expect(set.Values()).To(Equal(before))
			Expect(set.History(metrics.NameInversions)).To(Equal(history))

			drain()
			Expect(d.Result().Completed).To(BeTrue())
			Expect(sess.Snapshot().ControlsLocked()).To(BeFalse())
		})

		It("uses the delay for the current speed", func() {
			d.Session().SetSpeed(100)
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))
			Expect(clock.Requested()[0]).To(Equal(200 * time.Millisecond))
			drain()
		})

		It("cancels into an idle permutation with cleared tags", func() {
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))
			clock.Release()
			Eventually(clock.Pending).Should(Equal(1))

			Expect(d.Cancel(nil)).To(BeTrue())

			sess := d.Session()
			snap := sess.Snapshot()
			Expect(snap.State).To(Equal(session.Idle))
			Expect(sorted(snap.Values)).To(Equal([]int{1, 4, 7, 8, 9}))
			Expect(snap.Tags).To(Equal(allTags(session.Default, 5)))
			Expect(snap.Status).To(Equal(driver.StatusReady))

			res := d.Result()
			Expect(res.Completed).To(BeFalse())
			Expect(res.Err).To(MatchError(session.ErrCanceled))
		})

		It("reinstalls the input after cancel", func() {
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))
			Expect(d.Cancel([]int{3, 2, 1})).To(BeTrue())
			Expect(d.Session().Sequence()).To(Equal([]int{3, 2, 1}))
		})

		It("never swaps while paused", func() {
			Expect(d.Start(ctx)).To(Succeed())
			sess := d.Session()

			for i := 0; i < 6; i++ {
				Eventually(clock.Pending).Should(BeNumerically(">=", 1))
				Expect(d.Pause()).To(BeTrue())
				Expect(sess.Status()).To(Equal(driver.StatusPaused))
				before := rec.swaps()

				clock.Release()
				Consistently(rec.swaps, 50*time.Millisecond).Should(Equal(before))
				Expect(sess.RunState()).To(Equal(session.Paused))

				Expect(d.Resume()).To(BeTrue())
				Expect(sess.Status()).To(Equal(driver.StatusResumed))
			}

			drain()
			Expect(rec.paused()).To(BeZero())
			Expect(d.Result().Final).To(Equal([]int{1, 4, 7, 8, 9}))
		})

		It("resumes a paused run on play", func() {
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))
			Expect(d.Pause()).To(BeTrue())
			Expect(d.Pause()).To(BeFalse())

			Expect(d.Play(ctx)).To(Succeed())
			Expect(d.Session().RunState()).To(Equal(session.Running))
			drain()
		})

		It("cancels while paused", func() {
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))
			Expect(d.Pause()).To(BeTrue())

			Expect(d.Cancel(nil)).To(BeTrue())
			Expect(d.Session().RunState()).To(Equal(session.Idle))
			Expect(d.Resume()).To(BeFalse())
		})

		It("stops when the context is canceled", func() {
			runCtx, cancel := context.WithCancel(ctx)
			Expect(d.Start(runCtx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))

			cancel()
			Eventually(d.Done()).Should(BeClosed())
			Expect(d.Result().Completed).To(BeFalse())
			Expect(d.Session().RunState()).To(Equal(session.Idle))
			Expect(sorted(d.Session().Sequence())).To(Equal([]int{1, 4, 7, 8, 9}))
		})

		It("resets a running animation", func() {
			Expect(d.Start(ctx)).To(Succeed())
			Eventually(clock.Pending).Should(Equal(1))
			Expect(d.Reset([]int{4, 4})).To(Succeed())
			Expect(d.Session().Sequence()).To(Equal([]int{4, 4}))
			Expect(d.Session().RunState()).To(Equal(session.Idle))
		})
	})

	It("rejects an invalid curve", func() {
		_, err := driver.Setup(nil, pacing.Curve{Base: time.Second, Step: -time.Millisecond}, nil)
		Expect(err).To(MatchError(pacing.ErrNegativeStep))
	})
})

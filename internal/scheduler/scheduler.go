package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"grammarguide/internal/logger"
)

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Scheduler probes the store on a fixed interval and logs when it goes
// down or comes back.
type Scheduler struct {
	store    Pinger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	healthy  atomic.Bool
	probed   atomic.Bool
}

func New(store Pinger, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "probe", "resource", "store", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

// Stop waits for an in-flight probe to finish. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "probe", "resource", "store", "result", "ok")
	})
}

// Healthy reports the result of the most recent probe.
func (s *Scheduler) Healthy() bool {
	return s.healthy.Load()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.probe()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.probe()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	err := s.store.Ping(ctx)
	healthy := err == nil
	was := s.healthy.Swap(healthy)
	first := !s.probed.Swap(true)

	switch {
	case !healthy && (was || first):
		logger.Error("store unreachable", "module", "scheduler", "action", "probe", "resource", "store", "result", "failed", "error", err)
	case healthy && !was && !first:
		logger.Info("store recovered", "module", "scheduler", "action", "probe", "resource", "store", "result", "ok")
	default:
		logger.Debug("store probed", "module", "scheduler", "action", "probe", "resource", "store", "result", resultOf(healthy))
	}
}

func resultOf(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

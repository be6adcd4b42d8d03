package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/usecase"
)

// OrderSource loads the full order list, newest first.
type OrderSource interface {
	ListAll(ctx context.Context) ([]model.Order, error)
}

// Observer is notified about subscription activity.
type Observer interface {
	SubscribersChanged(n int)
	SnapshotPublished()
}

// Snapshot is the complete result of a subscriber's query at a point in time.
// Seq grows with every refresh.
type Snapshot struct {
	usecase.OrderListing
	At  time.Time
	Seq uint64
}

// Subscription receives snapshots for one filter. Only the latest snapshot is
// kept; a slow reader skips intermediate ones.
type Subscription struct {
	id     uint64
	filter usecase.OrderFilter

	mu     sync.Mutex
	closed bool
	last   uint64
	ch     chan Snapshot
}

// C is closed when the subscription ends.
func (s *Subscription) C() <-chan Snapshot {
	return s.ch
}

// Filter returns the query the subscription was opened with.
func (s *Subscription) Filter() usecase.OrderFilter {
	return s.filter
}

// offer replaces any unread snapshot with snapshot. Snapshots from a refresh
// older than the last one offered are dropped.
func (s *Subscription) offer(snapshot Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || snapshot.Seq <= s.last {
		return false
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- snapshot:
		s.last = snapshot.Seq
		return true
	default:
		return false
	}
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

type job struct {
	sub    *Subscription
	orders []model.Order
	at     time.Time
	seq    uint64
}

// ErrPublisherStopped is returned by Subscribe once the publisher has stopped.
var ErrPublisherStopped = fmt.Errorf("live feed stopped: %w", domainErrors.ErrUnavailable)

// SnapshotPublisher pushes fresh order snapshots to live subscribers after
// every change. Notifications that arrive while a refresh is pending are
// merged into it.
type SnapshotPublisher struct {
	source   OrderSource
	workers  int
	logger   *slog.Logger
	observer Observer
	now      func() time.Time

	subsMu  sync.Mutex
	subs    map[uint64]*Subscription
	nextID  uint64
	stopped bool

	seq uint64

	notify chan struct{}
	jobs   chan job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSnapshotPublisher constructs the publisher and its worker pool.
func NewSnapshotPublisher(source OrderSource, workers int, observer Observer, logger *slog.Logger) *SnapshotPublisher {
	if workers <= 0 {
		workers = 1
	}
	return &SnapshotPublisher{
		source:   source,
		workers:  workers,
		logger:   logger,
		observer: observer,
		now:      time.Now,
		subs:     make(map[uint64]*Subscription),
		notify:   make(chan struct{}, 1),
		jobs:     make(chan job, workers),
	}
}

// Subscribe opens a subscription for filter. The first snapshot follows
// shortly after.
func (p *SnapshotPublisher) Subscribe(filter usecase.OrderFilter) (*Subscription, error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	p.subsMu.Lock()
	if p.stopped {
		p.subsMu.Unlock()
		return nil, ErrPublisherStopped
	}
	p.nextID++
	sub := &Subscription{id: p.nextID, filter: filter, ch: make(chan Snapshot, 1)}
	p.subs[sub.id] = sub
	count := len(p.subs)
	p.subsMu.Unlock()

	p.observer.SubscribersChanged(count)
	p.Notify()
	return sub, nil
}

// Unsubscribe ends sub and closes its channel. It is safe to call twice.
func (p *SnapshotPublisher) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	p.subsMu.Lock()
	delete(p.subs, sub.id)
	count := len(p.subs)
	p.subsMu.Unlock()

	sub.close()
	p.observer.SubscribersChanged(count)
}

// Notify schedules a refresh for every subscriber. It never blocks.
func (p *SnapshotPublisher) Notify() {
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Start launches the dispatcher and workers.
func (p *SnapshotPublisher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for the workers and closes every open subscription. Later
// Subscribe calls fail with ErrPublisherStopped.
func (p *SnapshotPublisher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()

	p.subsMu.Lock()
	subs := p.subs
	p.subs = make(map[uint64]*Subscription)
	p.stopped = true
	p.subsMu.Unlock()
	for _, sub := range subs {
		sub.close()
	}
	p.observer.SubscribersChanged(0)
}

func (p *SnapshotPublisher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.notify:
			p.refresh(ctx)
		}
	}
}

func (p *SnapshotPublisher) refresh(ctx context.Context) {
	subs := p.subscribers()
	if len(subs) == 0 {
		return
	}

	orders, err := p.source.ListAll(ctx)
	if err != nil {
		p.logger.Error("load orders for live snapshot failed", slog.String("error", err.Error()))
		return
	}

	// Only the dispatcher refreshes, so seq needs no lock.
	p.seq++
	at, seq := p.now(), p.seq
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- job{sub: sub, orders: orders, at: at, seq: seq}:
		}
	}
}

func (p *SnapshotPublisher) subscribers() []*Subscription {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	subs := make([]*Subscription, 0, len(p.subs))
	for _, sub := range p.subs {
		subs = append(subs, sub)
	}
	return subs
}

func (p *SnapshotPublisher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-p.jobs:
			if !ok {
				return
			}
			p.deliver(j)
		}
	}
}

func (p *SnapshotPublisher) deliver(j job) {
	snapshot := Snapshot{OrderListing: usecase.NewOrderListing(j.orders, j.sub.filter), At: j.at, Seq: j.seq}
	if j.sub.offer(snapshot) {
		p.observer.SnapshotPublished()
	}
}

// Package emitter fans alert events out to publishers asynchronously.
//
// Every publisher gets its own FIFO queue and worker, so a slow or failing
// publisher never delays the others, and events handed to Publish in one call
// reach each publisher in that order. Delivery is best-effort: a full queue
// drops the batch for that publisher and failed sends are not retried.
package emitter

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

const (
	DefaultQueueSize    = 1024
	DefaultDedupeWindow = 4096
	publishTimeout      = 5 * time.Second
)

type Publisher interface {
	PublishAlert(ctx context.Context, alert *domain.AlertEvent) error
}

type Options struct {
	QueueSize    int
	DedupeWindow int
}

type sinkWorker struct {
	name  string
	pub   Publisher
	queue chan []domain.AlertEvent
}

type Emitter struct {
	opts Options

	mu     sync.RWMutex // guards sinks and closed against Publish
	sinks  []*sinkWorker
	closed bool
	wg     sync.WaitGroup

	seenMu sync.Mutex
	seen   *recentKeys
}

func New(opts Options) *Emitter {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.DedupeWindow <= 0 {
		opts.DedupeWindow = DefaultDedupeWindow
	}
	return &Emitter{opts: opts, seen: newRecentKeys(opts.DedupeWindow)}
}

// Register adds a publisher and starts its worker.
func (e *Emitter) Register(name string, pub Publisher) {
	w := &sinkWorker{name: name, pub: pub, queue: make(chan []domain.AlertEvent, e.opts.QueueSize)}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.sinks = append(e.sinks, w)
	e.wg.Add(1)
	go e.run(w)
}

// Publish queues events for every registered publisher without blocking.
// Events whose transition was already published are dropped.
func (e *Emitter) Publish(events []domain.AlertEvent) {
	if len(events) == 0 {
		return
	}

	batch := e.dedupe(events)
	if len(batch) == 0 {
		return
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}
	for _, w := range e.sinks {
		select {
		case w.queue <- batch:
		default:
			log.WithFields(log.Fields{"sink": w.name, "events": len(batch)}).Warn("alert queue full, dropping batch")
		}
	}
}

func (e *Emitter) dedupe(events []domain.AlertEvent) []domain.AlertEvent {
	e.seenMu.Lock()
	defer e.seenMu.Unlock()

	out := make([]domain.AlertEvent, 0, len(events))
	for _, ev := range events {
		if !e.seen.add(ev.Key()) {
			log.WithFields(log.Fields{"vehicle_id": ev.VehicleID, "zone_id": ev.ZoneID, "kind": ev.Kind}).Debug("duplicate alert dropped")
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (e *Emitter) run(w *sinkWorker) {
	defer e.wg.Done()
	for batch := range w.queue {
		for i := range batch {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			if err := w.pub.PublishAlert(ctx, &batch[i]); err != nil {
				log.WithFields(log.Fields{
					"sink":       w.name,
					"vehicle_id": batch[i].VehicleID,
					"kind":       batch[i].Kind,
				}).Errorf("publish alert: %v", err)
			}
			cancel()
		}
	}
}

// Close stops accepting events, drains queued batches and waits for the
// workers to exit.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for _, w := range e.sinks {
		close(w.queue)
	}
	e.mu.Unlock()
	e.wg.Wait()
}

// recentKeys remembers the last n keys in insertion order.
type recentKeys struct {
	ring []string
	next int
	set  map[string]struct{}
}

func newRecentKeys(n int) *recentKeys {
	return &recentKeys{ring: make([]string, n), set: make(map[string]struct{}, n)}
}

// add returns false if key is already remembered.
func (r *recentKeys) add(key string) bool {
	if _, ok := r.set[key]; ok {
		return false
	}
	if old := r.ring[r.next]; old != "" {
		delete(r.set, old)
	}
	r.ring[r.next] = key
	r.set[key] = struct{}{}
	r.next = (r.next + 1) % len(r.ring)
	return true
}

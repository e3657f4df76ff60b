// Package queue fans job events out to a fixed pool of workers that record
// them in the activity trail.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
	"github.com/revit/marketplace/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes job events to workers using consistent hashing on the job
// id, so events of one job are recorded in publish order.
//
// Publish never blocks the request path: when a worker channel is full the
// event is dropped and counted.
type Dispatcher struct {
	workers []chan domain.JobEvent
	service ports.ActivityService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.JobEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.JobEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and exit
// after Close; ctx is passed to the activity service for each event.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues an event for the worker responsible for its job.
func (d *Dispatcher) Publish(event domain.JobEvent) {
	countDomainEvent(event)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "dropped").Inc()
		return
	}

	idx := d.shardIndex(event.JobID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "dropped").Inc()
		d.log.Warn().
			Str("job_id", event.JobID).
			Str("type", string(event.Type)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// Close stops accepting events and waits for the workers to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a job id deterministically to a worker index.
func (d *Dispatcher) shardIndex(jobID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(jobID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.JobEvent) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for event := range ch {
		depth.Dec()
		start := time.Now()

		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		err := d.service.Record(recCtx, event)
		cancel()

		metrics.ActivityRecordDuration.WithLabelValues(string(event.Type)).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "failed").Inc()
			d.log.Error().Err(err).
				Str("job_id", event.JobID).
				Str("type", string(event.Type)).
				Int("worker_id", id).
				Msg("activity recording failed")
			continue
		}
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "recorded").Inc()
	}
}

// countDomainEvent feeds the business counters from the published events.
func countDomainEvent(e domain.JobEvent) {
	switch e.Type {
	case domain.EventJobCreated:
		metrics.JobsCreatedTotal.Inc()
	case domain.EventJobStatusChanged, domain.EventJobAssigned:
		metrics.JobTransitionsTotal.WithLabelValues(e.From, e.To).Inc()
	case domain.EventApplicationSubmitted:
		metrics.ApplicationsSubmittedTotal.Inc()
	case domain.EventApplicationAccepted:
		metrics.ApplicationDecisionsTotal.WithLabelValues(string(domain.DecisionAccept)).Inc()
	case domain.EventApplicationRejected:
		metrics.ApplicationDecisionsTotal.WithLabelValues(string(domain.DecisionReject)).Inc()
	}
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/api/metrics"
	"github.com/choralis/choir-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans notifications out to a fixed set of workers using
// consistent hashing on the recipient id, so one member's notifications are
// persisted in the order they were dispatched.
type Dispatcher struct {
	workers []chan ports.NotificationJob
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Dispatch enqueues one job per recipient. Best-effort: a full worker
// channel drops the job with a log line instead of blocking the caller.
func (d *Dispatcher) Dispatch(recipients []string, title, message, relatedID string) {
	for _, recipientID := range recipients {
		job := ports.NotificationJob{
			RecipientID: recipientID,
			Title:       title,
			Message:     message,
			RelatedID:   relatedID,
		}
		idx := d.shardIndex(recipientID)
		select {
		case d.workers[idx] <- job:
			metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		default:
			metrics.NotificationsFailedTotal.Inc()
			d.log.Error().
				Str("recipient_id", recipientID).
				Int("worker_id", idx).
				Msg("notification queue full, job dropped")
		}
	}
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if _, err := d.service.Create(ctx, job.RecipientID, job.Title, job.Message, job.RelatedID); err != nil {
				d.log.Error().Err(err).
					Str("recipient_id", job.RecipientID).
					Int("worker_id", id).
					Msg("notification persistence failed")
			}
		}
	}
}

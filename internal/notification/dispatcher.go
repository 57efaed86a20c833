package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Notification is one webhook delivery job.
type Notification struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

type Config struct {
	WebhookURL string
	MaxWorkers int
	QueueSize  int
	JobTimeout time.Duration
}

// Dispatcher posts notifications to the configured webhook with a bounded
// worker pool. Delivery is best-effort: a full queue drops the job, a
// failed POST is logged and dropped, and nothing retries.
type Dispatcher struct {
	webhookURL string
	jobTimeout time.Duration
	client     *http.Client
	logger     *slog.Logger

	jobs chan Notification
	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(cfg Config, logger *slog.Logger) *Dispatcher {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Second
	}

	d := &Dispatcher{
		webhookURL: cfg.WebhookURL,
		jobTimeout: jobTimeout,
		client:     &http.Client{Timeout: jobTimeout},
		logger:     logger,
		jobs:       make(chan Notification, queueSize),
	}

	for i := 0; i < maxWorkers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	logger.Info("notification dispatcher started",
		"max_workers", maxWorkers,
		"queue_size", queueSize,
		"webhook_configured", cfg.WebhookURL != "")

	return d
}

// Enabled reports whether deliveries will actually leave the process.
func (d *Dispatcher) Enabled() bool {
	return d.webhookURL != ""
}

// Enqueue hands a notification to the pool without blocking the caller.
// A full queue refuses the job; the issue write already succeeded and a
// dropped notification must not fail it.
func (d *Dispatcher) Enqueue(n Notification) bool {
	select {
	case d.jobs <- n:
		return true
	default:
		d.logger.Warn("notification queue full, dropping",
			"event_id", n.EventID,
			"event_type", n.EventType)
		return false
	}
}

// Shutdown stops accepting jobs and drains the queue before returning.
func (d *Dispatcher) Shutdown() {
	d.once.Do(func() {
		d.logger.Info("shutting down notification dispatcher")
		close(d.jobs)
		d.wg.Wait()
		d.logger.Info("notification dispatcher shutdown complete")
	})
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for n := range d.jobs {
		d.deliver(id, n)
	}
	d.logger.Debug("notification worker stopped", "worker_id", id)
}

func (d *Dispatcher) deliver(workerID int, n Notification) {
	if d.webhookURL == "" {
		d.logger.Info("notification (no webhook configured)",
			"event_id", n.EventID,
			"event_type", n.EventType,
			"data", n.Data)
		return
	}

	body, err := json.Marshal(n)
	if err != nil {
		d.logger.Error("failed to marshal notification", "error", err, "event_id", n.EventID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		d.logger.Error("failed to build webhook request", "error", err, "event_id", n.EventID)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error("webhook delivery failed",
			"error", err,
			"worker_id", workerID,
			"event_id", n.EventID)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d.logger.Error("webhook delivery rejected",
			"status", resp.StatusCode,
			"worker_id", workerID,
			"event_id", n.EventID)
		return
	}

	d.logger.Info("webhook delivered",
		"worker_id", workerID,
		"event_id", n.EventID,
		"event_type", n.EventType,
		"status", fmt.Sprintf("%d", resp.StatusCode))
}

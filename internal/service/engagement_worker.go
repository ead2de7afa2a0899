package service

import (
	"context"
	"log"
	"time"
)

// Engagement activity window: reviews untouched for longer than this are
// left alone, their decayed score is already effectively stable.
const engagementActivityWindow = 30 * 24 * time.Hour

// EngagementWorker is a periodic job that refreshes the staleness decay
// factor on recently-active reviews. Tracked events refresh scores on the
// write path; this worker keeps decay moving for reviews nobody touches.
type EngagementWorker struct {
	engagement *EngagementService
	interval   time.Duration
	stopCh     chan struct{}
}

// NewEngagementWorker creates a worker that ticks every interval.
func NewEngagementWorker(engagement *EngagementService, interval time.Duration) *EngagementWorker {
	return &EngagementWorker{
		engagement: engagement,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

// Start runs one tick immediately, then every interval.
func (w *EngagementWorker) Start(ctx context.Context) {
	log.Printf("engagement-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("engagement-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("engagement-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *EngagementWorker) Stop() {
	close(w.stopCh)
}

// tick refreshes scores for every review active inside the window.
func (w *EngagementWorker) tick(ctx context.Context) {
	start := time.Now()

	cutoff := time.Now().Add(-engagementActivityWindow)
	ids, err := w.engagement.repo.ListActiveSince(ctx, cutoff)
	if err != nil {
		log.Printf("engagement-worker: list error: %v", err)
		return
	}

	refreshed := 0
	for _, reviewID := range ids {
		if _, err := w.engagement.Refresh(ctx, reviewID); err != nil {
			log.Printf("engagement-worker: refresh error for %s: %v", reviewID, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		log.Printf("engagement-worker: tick complete: %d reviews refreshed (%s)",
			refreshed, time.Since(start).Round(time.Millisecond))
	}
}

package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// RankWorker listens for PostgreSQL NOTIFY on the 'review_vote_changes'
// channel and batches ranking maintenance. The synchronous per-review
// recompute already happened on the write path; this worker only re-sorts
// the global and per-hostel rankings, which is too expensive to run on
// every vote.
type RankWorker struct {
	pool        *pgxpool.Pool
	helpfulness *HelpfulnessService
	cache       *CacheService
	batchWindow time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // review IDs seen since the last flush
}

// NewRankWorker creates a ranking maintenance worker.
func NewRankWorker(pool *pgxpool.Pool, helpfulness *HelpfulnessService, cache *CacheService, batchWindow time.Duration) *RankWorker {
	return &RankWorker{
		pool:        pool,
		helpfulness: helpfulness,
		cache:       cache,
		batchWindow: batchWindow,
		pending:     make(map[string]struct{}),
	}
}

// Start begins listening for vote-change notifications and processing
// batches until the context is cancelled.
func (w *RankWorker) Start(ctx context.Context) {
	log.Printf("rank-worker: starting (batch window=%s)", w.batchWindow)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("rank-worker: stopping (context cancelled)")
				return
			}
			log.Printf("rank-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("rank-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on
// review_vote_changes, and accumulates notified review IDs.
func (w *RankWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN review_vote_changes")
	if err != nil {
		return err
	}
	log.Println("rank-worker: listening on review_vote_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		reviewID := notification.Payload
		if reviewID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[reviewID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *RankWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchWindow)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush invalidates caches for every touched review and re-ranks once for
// the whole batch.
func (w *RankWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if w.cache != nil {
		for reviewID := range batch {
			if err := w.cache.InvalidateReview(ctx, reviewID); err != nil {
				log.Printf("rank-worker: cache invalidate error for %s: %v", reviewID, err)
			}
		}
	}

	globalRanked, err := w.helpfulness.UpdateRankings(ctx, model.RankScopeGlobal)
	if err != nil {
		log.Printf("rank-worker: global ranking error: %v", err)
		return
	}
	hostelRanked, err := w.helpfulness.UpdateRankings(ctx, model.RankScopeHostel)
	if err != nil {
		log.Printf("rank-worker: hostel ranking error: %v", err)
		return
	}

	log.Printf("rank-worker: batch complete: %d reviews touched, %d global / %d hostel ranks rewritten",
		len(batch), globalRanked, hostelRanked)
}

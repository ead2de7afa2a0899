package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// testPool connects to the database named by TEST_DATABASE_URL, skipping
// the test when none is configured. The schema from migrations/ must be
// applied beforehand.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func seedReview(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()
	reviewID := "rev-" + uuid.NewString()
	_, err := pool.Exec(ctx, `
		INSERT INTO reviews (review_id, hostel_id, rating, is_published)
		VALUES ($1, $2, 4.0, TRUE)`,
		reviewID, "hostel-"+uuid.NewString())
	if err != nil {
		t.Fatalf("seed review: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM review_votes WHERE review_id = $1`, reviewID)
		pool.Exec(ctx, `DELETE FROM reviews WHERE review_id = $1`, reviewID)
	})
	return reviewID
}

func TestVoteRepo_Cast_RevoteMarksChanged(t *testing.T) {
	pool := testPool(t)
	repo := NewVoteRepo(pool)
	ctx := context.Background()

	reviewID := seedReview(t, pool)
	voterID := "voter-" + uuid.NewString()

	first, err := repo.Cast(ctx, reviewID, voterID, model.VoteHelpful, 1.0, false, "")
	if err != nil {
		t.Fatalf("first cast: %v", err)
	}
	if first.IsChanged {
		t.Errorf("fresh vote has is_changed = true")
	}
	if first.PreviousKind != nil {
		t.Errorf("fresh vote has previous_kind = %v", *first.PreviousKind)
	}

	second, err := repo.Cast(ctx, reviewID, voterID, model.VoteNotHelpful, 1.0, false, "")
	if err != nil {
		t.Fatalf("re-vote: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-vote created a new row: id %d vs %d", second.ID, first.ID)
	}
	if second.Kind != model.VoteNotHelpful {
		t.Errorf("re-vote kind = %s, want %s", second.Kind, model.VoteNotHelpful)
	}
	if !second.IsChanged {
		t.Errorf("re-vote did not set is_changed")
	}
	if second.PreviousKind == nil || *second.PreviousKind != model.VoteHelpful {
		t.Errorf("re-vote previous_kind = %v, want %s", second.PreviousKind, model.VoteHelpful)
	}

	tally, err := repo.Tally(ctx, reviewID)
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if tally.Total != 1 || tally.Helpful != 0 || tally.NotHelpful != 1 {
		t.Errorf("tally after re-vote = %+v, want one not_helpful vote", tally)
	}
}

func TestVoteRepo_Cast_SameKindRevoteStillTracked(t *testing.T) {
	pool := testPool(t)
	repo := NewVoteRepo(pool)
	ctx := context.Background()

	reviewID := seedReview(t, pool)
	voterID := "voter-" + uuid.NewString()

	if _, err := repo.Cast(ctx, reviewID, voterID, model.VoteHelpful, 1.0, false, ""); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	v, err := repo.Cast(ctx, reviewID, voterID, model.VoteHelpful, 2.0, true, "")
	if err != nil {
		t.Fatalf("re-cast: %v", err)
	}
	if !v.IsChanged {
		t.Errorf("same-kind re-cast did not set is_changed")
	}
	if v.PreviousKind == nil || *v.PreviousKind != model.VoteHelpful {
		t.Errorf("previous_kind = %v, want %s", v.PreviousKind, model.VoteHelpful)
	}
	if v.Weight != 2.0 || !v.IsVerifiedVoter {
		t.Errorf("re-cast did not update weight/verification: %+v", v)
	}
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// ModerationRepo owns the auto_moderation_results table. Results are
// append-only per model version: re-analysis inserts a new row with
// model_version+1 rather than overwriting.
type ModerationRepo struct {
	pool *pgxpool.Pool
}

func NewModerationRepo(pool *pgxpool.Pool) *ModerationRepo {
	return &ModerationRepo{pool: pool}
}

// InsertResult stores an analyzer outcome, assigning the next model version
// for the review atomically.
func (r *ModerationRepo) InsertResult(ctx context.Context, res *model.AutoModerationResult) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO auto_moderation_results (
			review_id, model_version,
			spam_score, sentiment_score, toxicity_score, profanity_score,
			contains_personal_info, contains_hate_speech,
			detected_language, language_confidence,
			is_spam, is_toxic, has_profanity, is_authentic,
			auto_decision, decision_confidence)
		VALUES (
			$1,
			COALESCE((SELECT MAX(model_version) FROM auto_moderation_results WHERE review_id = $1), 0) + 1,
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, model_version, analyzed_at`,
		res.ReviewID,
		res.SpamScore, res.SentimentScore, res.ToxicityScore, res.ProfanityScore,
		res.ContainsPersonalInfo, res.ContainsHateSpeech,
		res.DetectedLanguage, res.LanguageConfidence,
		res.IsSpam, res.IsToxic, res.HasProfanity, res.IsAuthentic,
		res.AutoDecision, res.DecisionConfidence).
		Scan(&res.ID, &res.ModelVersion, &res.AnalyzedAt)
}

// LatestResult returns the highest-version result for a review.
func (r *ModerationRepo) LatestResult(ctx context.Context, reviewID string) (*model.AutoModerationResult, error) {
	var res model.AutoModerationResult
	err := r.pool.QueryRow(ctx, `
		SELECT id, review_id, model_version,
		       spam_score, sentiment_score, toxicity_score, profanity_score,
		       contains_personal_info, contains_hate_speech,
		       detected_language, language_confidence,
		       is_spam, is_toxic, has_profanity, is_authentic,
		       auto_decision, decision_confidence, analyzed_at
		FROM auto_moderation_results
		WHERE review_id = $1
		ORDER BY model_version DESC
		LIMIT 1`,
		reviewID).Scan(
		&res.ID, &res.ReviewID, &res.ModelVersion,
		&res.SpamScore, &res.SentimentScore, &res.ToxicityScore, &res.ProfanityScore,
		&res.ContainsPersonalInfo, &res.ContainsHateSpeech,
		&res.DetectedLanguage, &res.LanguageConfidence,
		&res.IsSpam, &res.IsToxic, &res.HasProfanity, &res.IsAuthentic,
		&res.AutoDecision, &res.DecisionConfidence, &res.AnalyzedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("no moderation result for review %s", reviewID)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

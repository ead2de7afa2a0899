package service

import (
	"testing"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/config"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/oracle"
)

var testPolicy = config.ModerationPolicy{
	SpamThreshold:        0.5,
	ToxicityThreshold:    0.5,
	ProfanityThreshold:   0.5,
	AutoConfidence:       0.9,
	ManualConfidenceGate: 0.7,
}

func testModerationService() *ModerationService {
	return &ModerationService{policy: testPolicy}
}

func cleanSignals() *oracle.Signals {
	return &oracle.Signals{
		SpamScore:          0.05,
		SentimentScore:     0.8,
		ToxicityScore:      0.02,
		ProfanityScore:     0.01,
		DetectedLanguage:   "en",
		LanguageConfidence: 0.98,
	}
}

func TestClassify_CleanReviewAutoApproves(t *testing.T) {
	res := Classify(cleanSignals(), testPolicy)

	if res.AutoDecision != model.DecisionAutoApprove {
		t.Errorf("decision = %s, want %s", res.AutoDecision, model.DecisionAutoApprove)
	}
	if res.IsSpam || res.IsToxic || res.HasProfanity {
		t.Errorf("clean signals flagged: spam=%v toxic=%v profanity=%v", res.IsSpam, res.IsToxic, res.HasProfanity)
	}
	if !res.IsAuthentic {
		t.Error("clean review should be authentic")
	}
	// confidence = 1 - max(0.05, 0.02, 0.01) = 0.95
	if !almostEqual(res.DecisionConfidence, 0.95, 0.001) {
		t.Errorf("confidence = %.2f, want 0.95", res.DecisionConfidence)
	}
}

func TestClassify_SpamAutoRejects(t *testing.T) {
	sig := cleanSignals()
	sig.SpamScore = 0.95

	res := Classify(sig, testPolicy)

	if !res.IsSpam {
		t.Error("spam_score 0.95 should set is_spam")
	}
	if res.IsAuthentic {
		t.Error("spam review cannot be authentic")
	}
	if res.AutoDecision != model.DecisionAutoReject {
		t.Errorf("decision = %s, want %s", res.AutoDecision, model.DecisionAutoReject)
	}
	if !almostEqual(res.DecisionConfidence, 0.95, 0.001) {
		t.Errorf("confidence = %.2f, want 0.95", res.DecisionConfidence)
	}
}

func TestClassify_HateSpeechAlwaysFlags(t *testing.T) {
	sig := cleanSignals()
	sig.ContainsHateSpeech = true

	res := Classify(sig, testPolicy)

	if res.AutoDecision != model.DecisionAutoFlag {
		t.Errorf("decision = %s, want %s", res.AutoDecision, model.DecisionAutoFlag)
	}
	if res.DecisionConfidence != 1.0 {
		t.Errorf("confidence = %.2f, want 1.00", res.DecisionConfidence)
	}
}

func TestClassify_PersonalInfoAlwaysFlags(t *testing.T) {
	sig := cleanSignals()
	sig.ContainsPersonalInfo = true

	res := Classify(sig, testPolicy)

	if res.AutoDecision != model.DecisionAutoFlag {
		t.Errorf("decision = %s, want %s", res.AutoDecision, model.DecisionAutoFlag)
	}
}

func TestClassify_LowLanguageConfidenceRejectsAsInauthentic(t *testing.T) {
	sig := cleanSignals()
	sig.LanguageConfidence = 0.3

	res := Classify(sig, testPolicy)

	if res.IsAuthentic {
		t.Error("language confidence 0.3 should not read as authentic")
	}
	if res.AutoDecision != model.DecisionAutoReject {
		t.Errorf("decision = %s, want %s", res.AutoDecision, model.DecisionAutoReject)
	}
}

func TestClassify_GrayZoneGoesToManualReview(t *testing.T) {
	// Under every violation threshold but outside the clean band.
	sig := cleanSignals()
	sig.ToxicityScore = 0.35

	res := Classify(sig, testPolicy)

	if res.IsToxic {
		t.Error("toxicity 0.35 is under the 0.5 threshold")
	}
	if res.AutoDecision != model.DecisionManualReview {
		t.Errorf("decision = %s, want %s", res.AutoDecision, model.DecisionManualReview)
	}
}

func TestClassify_ThresholdBoundaryIsInclusive(t *testing.T) {
	sig := cleanSignals()
	sig.SpamScore = 0.5

	res := Classify(sig, testPolicy)

	if !res.IsSpam {
		t.Error("spam_score exactly at threshold 0.5 should set is_spam")
	}
}

func TestShouldAutoApprove_RequiresHighConfidence(t *testing.T) {
	svc := testModerationService()

	tests := []struct {
		name string
		res  model.AutoModerationResult
		want bool
	}{
		{
			"confident clean approve",
			model.AutoModerationResult{AutoDecision: model.DecisionAutoApprove, DecisionConfidence: 0.95, IsAuthentic: true},
			true,
		},
		{
			"confidence just under the bar",
			model.AutoModerationResult{AutoDecision: model.DecisionAutoApprove, DecisionConfidence: 0.89, IsAuthentic: true},
			false,
		},
		{
			"approve decision but spam flagged",
			model.AutoModerationResult{AutoDecision: model.DecisionAutoApprove, DecisionConfidence: 0.95, IsSpam: true, IsAuthentic: true},
			false,
		},
		{
			"manual review decision never auto-approves",
			model.AutoModerationResult{AutoDecision: model.DecisionManualReview, DecisionConfidence: 0.99, IsAuthentic: true},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.ShouldAutoApprove(&tt.res); got != tt.want {
				t.Errorf("ShouldAutoApprove() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldAutoReject_SpamScenario(t *testing.T) {
	svc := testModerationService()

	// spam_score=0.95 classified to auto_reject with confidence 0.95.
	res := model.AutoModerationResult{
		AutoDecision:       model.DecisionAutoReject,
		DecisionConfidence: 0.95,
		IsSpam:             true,
	}
	if !svc.ShouldAutoReject(&res) {
		t.Error("confident spam rejection should auto-reject")
	}
}

func TestApproveAndRejectAreMutuallyExclusive(t *testing.T) {
	svc := testModerationService()

	// Sweep a grid of signal combinations; no classified result may satisfy
	// both unattended predicates at once.
	scores := []float64{0.0, 0.1, 0.3, 0.5, 0.7, 0.95}
	for _, spam := range scores {
		for _, tox := range scores {
			for _, prof := range scores {
				sig := cleanSignals()
				sig.SpamScore = spam
				sig.ToxicityScore = tox
				sig.ProfanityScore = prof

				res := Classify(sig, testPolicy)
				if svc.ShouldAutoApprove(res) && svc.ShouldAutoReject(res) {
					t.Fatalf("spam=%.2f tox=%.2f prof=%.2f satisfies both approve and reject", spam, tox, prof)
				}
			}
		}
	}
}

func TestTerminalAction_RejectWinsOverApprove(t *testing.T) {
	svc := testModerationService()

	res := model.AutoModerationResult{
		AutoDecision:       model.DecisionAutoReject,
		DecisionConfidence: 0.95,
		IsSpam:             true,
	}
	if got := svc.TerminalAction(&res); got != TerminalRejected {
		t.Errorf("TerminalAction() = %s, want %s", got, TerminalRejected)
	}
}

func TestTerminalAction_AmbiguousFallsToManual(t *testing.T) {
	svc := testModerationService()

	tests := []struct {
		name string
		res  model.AutoModerationResult
	}{
		{"zero confidence", model.AutoModerationResult{AutoDecision: model.DecisionManualReview}},
		{"flagged content", model.AutoModerationResult{AutoDecision: model.DecisionAutoFlag, DecisionConfidence: 1.0, ContainsHateSpeech: true}},
		{
			"approve decision under confidence bar",
			model.AutoModerationResult{AutoDecision: model.DecisionAutoApprove, DecisionConfidence: 0.8, IsAuthentic: true},
		},
		{
			// An external analyzer can pair an approve verdict with a PII
			// flag; the flag must win and route the review to a human.
			"confident approve carrying personal info",
			model.AutoModerationResult{AutoDecision: model.DecisionAutoApprove, DecisionConfidence: 0.95, IsAuthentic: true, ContainsPersonalInfo: true},
		},
		{
			"confident approve carrying hate speech",
			model.AutoModerationResult{AutoDecision: model.DecisionAutoApprove, DecisionConfidence: 0.95, IsAuthentic: true, ContainsHateSpeech: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.TerminalAction(&tt.res); got != TerminalEnqueued {
				t.Errorf("TerminalAction() = %s, want %s", got, TerminalEnqueued)
			}
		})
	}
}

func TestFailSafeResult_NeverAutoApproves(t *testing.T) {
	svc := testModerationService()

	res := failSafeResult("rev-1")
	if res.AutoDecision != model.DecisionManualReview {
		t.Errorf("fail-safe decision = %s, want %s", res.AutoDecision, model.DecisionManualReview)
	}
	if res.DecisionConfidence != 0 {
		t.Errorf("fail-safe confidence = %.2f, want 0", res.DecisionConfidence)
	}
	if got := svc.TerminalAction(res); got != TerminalEnqueued {
		t.Errorf("fail-safe terminal action = %s, want %s", got, TerminalEnqueued)
	}
}

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name    string
		res     model.AutoModerationResult
		wantMin float64
		wantMax float64
	}{
		{"neutral result", model.AutoModerationResult{}, 50, 50},
		{
			"confident manual review sits below baseline",
			model.AutoModerationResult{DecisionConfidence: 0.8},
			41.9, 42.1,
		},
		{
			"toxic content rises",
			model.AutoModerationResult{ToxicityScore: 0.8},
			69.9, 70.1,
		},
		{
			"everything maxed clamps at 100",
			model.AutoModerationResult{ToxicityScore: 1, SpamScore: 1, ProfanityScore: 1, ContainsPersonalInfo: true, ContainsHateSpeech: true},
			100, 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityScore(&tt.res)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("PriorityScore() = %.2f, want [%.2f, %.2f]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestPriorityScore_StaysInRange(t *testing.T) {
	scores := []float64{0, 0.5, 1}
	for _, tox := range scores {
		for _, spam := range scores {
			for _, conf := range scores {
				res := model.AutoModerationResult{ToxicityScore: tox, SpamScore: spam, DecisionConfidence: conf}
				got := PriorityScore(&res)
				if got < model.MinPriorityScore || got > model.MaxPriorityScore {
					t.Errorf("PriorityScore(tox=%.1f spam=%.1f conf=%.1f) = %.2f, out of range", tox, spam, conf, got)
				}
			}
		}
	}
}

func TestUrgent(t *testing.T) {
	tests := []struct {
		name string
		res  model.AutoModerationResult
		want bool
	}{
		{"clean", model.AutoModerationResult{}, false},
		{"high toxicity alone is not urgent", model.AutoModerationResult{ToxicityScore: 0.99}, false},
		{"hate speech", model.AutoModerationResult{ContainsHateSpeech: true}, true},
		{"personal info", model.AutoModerationResult{ContainsPersonalInfo: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Urgent(&tt.res); got != tt.want {
				t.Errorf("Urgent() = %v, want %v", got, tt.want)
			}
		})
	}
}

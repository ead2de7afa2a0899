package service

import "math"

const (
	// Base vote weights before the credibility multiplier.
	baseWeightRegular  = 1.0
	baseWeightVerified = 2.0

	// Full volume factor at 50 lifetime votes.
	volumeVotesMax = 50.0

	// Verified-stay share below this sample size uses a neutral default.
	minVotesForHistory = 5
	defaultHistory     = 0.5

	historyWeight = 0.6
	volumeWeight  = 0.4
)

// CredibilityService derives a default vote weight from a voter's history
// when the caller does not supply one. The result always stays inside the
// ledger's [0,10] weight bounds.
type CredibilityService struct{}

func NewCredibilityService() *CredibilityService {
	return &CredibilityService{}
}

// HistoryFactor is the voter's share of verified-stay votes, or a neutral
// default for voters with a thin history.
func (s *CredibilityService) HistoryFactor(totalVotes, verifiedVotes int) float64 {
	if totalVotes < minVotesForHistory {
		return defaultHistory
	}
	return float64(verifiedVotes) / float64(totalVotes)
}

// VolumeFactor rises linearly with lifetime votes, saturating at
// volumeVotesMax.
func (s *CredibilityService) VolumeFactor(totalVotes int) float64 {
	return math.Min(float64(totalVotes)/volumeVotesMax, 1.0)
}

// EffectiveWeight combines history and volume into a credibility score and
// applies the base weight for the voter class:
//
//	credibility = history*0.6 + volume*0.4
//	weight = base * (0.5 + credibility)
//
// A brand-new unverified voter lands at 0.8; an established verified voter
// approaches 3.0. Well inside [0,10].
func (s *CredibilityService) EffectiveWeight(totalVotes, verifiedVotes int, isVerified bool) float64 {
	base := baseWeightRegular
	if isVerified {
		base = baseWeightVerified
	}

	credibility := s.HistoryFactor(totalVotes, verifiedVotes)*historyWeight +
		s.VolumeFactor(totalVotes)*volumeWeight

	return base * (0.5 + credibility)
}

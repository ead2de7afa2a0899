package service

import (
	"testing"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

func TestValidateVoteRequest(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		req     model.VoteRequest
		wantErr bool
	}{
		{"helpful", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "helpful"}, false},
		{"not_helpful", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "not_helpful"}, false},
		{"unknown kind", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "upvote"}, true},
		{"empty kind", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1"}, true},
		{"weight above range", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "helpful", Weight: ptr(10.5)}, true},
		{"negative weight", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "helpful", Weight: ptr(-0.1)}, true},
		{"max weight", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "helpful", Weight: ptr(10.0)}, false},
		// An explicit zero is a legal weight, distinct from an omitted one.
		{"explicit zero weight", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "helpful", Weight: ptr(0.0)}, false},
		{"omitted weight", model.VoteRequest{ReviewID: "rev-1", VoterID: "v-1", Kind: "helpful"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVoteRequest(tt.req)
			if tt.wantErr && !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("validateVoteRequest(%s) error = %v, want validation error", tt.name, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateVoteRequest(%s) error = %v, want nil", tt.name, err)
			}
		})
	}
}

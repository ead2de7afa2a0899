package middleware

import (
	"strings"
	"testing"
)

func TestValidateReviewID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid", "rev-2024-0001", "rev-2024-0001", false},
		{"valid with underscore", "rev_abc_123", "rev_abc_123", false},
		{"trims whitespace", "  rev1  ", "rev1", false},
		{"empty", "", "", true},
		{"exactly 64", strings.Repeat("a", 64), strings.Repeat("a", 64), false},
		{"too long 65", strings.Repeat("a", 65), "", true},
		{"invalid chars", "rev 1", "", true},
		{"sql injection", "r'; DROP--", "", true},
		{"unicode", "revé", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateReviewID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateVoterID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "user-42", "user-42", false},
		{"empty", "", "", true},
		{"too long", strings.Repeat("u", 65), "", true},
		{"invalid chars", "user!42", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVoterID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateStaffID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "mod-alice", "mod-alice", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"invalid chars", "mod alice", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateStaffID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateEntryID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid uuid", "6f1c9e6a-1b2c-4d5e-8f90-a1b2c3d4e5f6", "6f1c9e6a-1b2c-4d5e-8f90-a1b2c3d4e5f6", false},
		{"uppercase normalized", "6F1C9E6A-1B2C-4D5E-8F90-A1B2C3D4E5F6", "6f1c9e6a-1b2c-4d5e-8f90-a1b2c3d4e5f6", false},
		{"empty", "", "", true},
		{"not a uuid", "abc123", "", true},
		{"missing dashes", "6f1c9e6a1b2c4d5e8f90a1b2c3d4e5f6", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateEntryID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateReason(t *testing.T) {
	if got := ValidateReason("  needs a second look  "); got != "needs a second look" {
		t.Errorf("trim failed: got %q", got)
	}
	long := strings.Repeat("x", 600)
	if got := ValidateReason(long); len(got) != MaxReasonLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxReasonLen)
	}
}

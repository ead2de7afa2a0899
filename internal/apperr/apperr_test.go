package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validationf("bad input"), KindValidation},
		{"not found", NotFoundf("no such review"), KindNotFound},
		{"invalid transition", InvalidTransitionf("cannot complete"), KindInvalidTransition},
		{"conflict", Conflictf("version raced"), KindConflict},
		{"untyped error", errors.New("boom"), KindInternal},
		{"wrapped once", fmt.Errorf("context: %w", NotFoundf("gone")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := NotFoundf("review %s not found", "rev-1")

	if !Is(err, KindNotFound) {
		t.Error("Is(NotFound, KindNotFound) = false")
	}
	if Is(err, KindConflict) {
		t.Error("Is(NotFound, KindConflict) = true")
	}
	if Is(errors.New("plain"), KindInternal) {
		t.Error("untyped errors carry no kind, Is must be false even for KindInternal")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindOracleUnavailable, "oracle call failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	if KindOf(err) != KindOracleUnavailable {
		t.Errorf("KindOf() = %s, want oracle_unavailable", KindOf(err))
	}
}

package handler

import (
	"context"
	"errors"
	"testing"
)

func TestTimedCheck(t *testing.T) {
	up := timedCheck(context.Background(), func(context.Context) error { return nil })
	if up.Status != depUp || up.Error != "" {
		t.Errorf("healthy ping = %+v, want status %q", up, depUp)
	}

	down := timedCheck(context.Background(), func(context.Context) error {
		return errors.New("refused")
	})
	if down.Status != depDown {
		t.Errorf("failed ping status = %q, want %q", down.Status, depDown)
	}
	if down.Error == "" {
		t.Error("failed ping should carry an error field")
	}
}

func TestCheckRedis_NilClientIsDisabled(t *testing.T) {
	h := &HealthHandler{}
	got := h.checkRedis(context.Background())
	if got.Status != depDisabled {
		t.Errorf("nil client status = %q, want %q", got.Status, depDisabled)
	}
}

package service

import "testing"

func TestAutomationRate(t *testing.T) {
	tests := []struct {
		name      string
		automated int
		total     int
		want      float64
	}{
		{"empty ledger", 0, 0, 0},
		{"fully automated", 10, 10, 1.0},
		{"fully manual", 0, 10, 0},
		{"three quarters", 75, 100, 0.75},
		{"rounds to 2 decimals", 1, 3, 0.33},
		{"rounds up", 2, 3, 0.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutomationRate(tt.automated, tt.total); got != tt.want {
				t.Errorf("AutomationRate(%d, %d) = %.2f, want %.2f", tt.automated, tt.total, got, tt.want)
			}
		})
	}
}

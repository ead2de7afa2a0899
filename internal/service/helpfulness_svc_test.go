package service

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestCalculateWilsonScore_ZeroVotes(t *testing.T) {
	if got := CalculateWilsonScore(0, 0, 0.95); got != 0 {
		t.Errorf("CalculateWilsonScore(0, 0) = %.6f, want 0", got)
	}
}

func TestCalculateWilsonScore_KnownValues(t *testing.T) {
	tests := []struct {
		name    string
		helpful int
		total   int
		want    float64
	}{
		// phat=1.0, n=1: (1 + 1.9208 - 1.96*sqrt(0.9604)) / (1 + 3.8416)
		{"1 of 1", 1, 1, 0.206543},
		// phat=0.5, n=2
		{"1 of 2", 1, 2, 0.094531},
		{"all helpful small sample", 3, 3, 0.438502},
		{"zero helpful", 0, 10, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWilsonScore(tt.helpful, tt.total, 0.95)
			if !almostEqual(got, tt.want, 0.001) {
				t.Errorf("CalculateWilsonScore(%d, %d) = %.6f, want ~%.6f", tt.helpful, tt.total, got, tt.want)
			}
		})
	}
}

func TestCalculateWilsonScore_SmallSampleRanksBelowLargeSample(t *testing.T) {
	// 3/3 (100%) must rank below 600/650 (92%): three votes say almost
	// nothing about the true proportion.
	small := CalculateWilsonScore(3, 3, 0.95)
	large := CalculateWilsonScore(600, 650, 0.95)
	if small >= large {
		t.Errorf("3/3 = %.6f should rank below 600/650 = %.6f", small, large)
	}
}

func TestCalculateWilsonScore_Bounds(t *testing.T) {
	cases := []struct{ helpful, total int }{
		{0, 1}, {1, 1}, {5, 10}, {999, 1000}, {0, 1000}, {1000, 1000},
	}
	for _, c := range cases {
		got := CalculateWilsonScore(c.helpful, c.total, 0.95)
		if got < 0 || got > 1 {
			t.Errorf("CalculateWilsonScore(%d, %d) = %.6f, out of [0,1]", c.helpful, c.total, got)
		}
	}
}

func TestCalculateWilsonScore_MonotonicInSampleSize(t *testing.T) {
	// Fixed 80% helpful proportion: more votes means more certainty, so the
	// lower bound rises toward 0.8.
	prev := 0.0
	for _, n := range []int{5, 10, 50, 100, 500, 1000} {
		got := CalculateWilsonScore(n*4/5, n, 0.95)
		if got <= prev {
			t.Errorf("score at n=%d is %.6f, not greater than previous %.6f", n, got, prev)
		}
		if got >= 0.8 {
			t.Errorf("score at n=%d is %.6f, should stay below phat 0.8", n, got)
		}
		prev = got
	}
}

func TestCalculateWilsonScore_ConfidenceLevels(t *testing.T) {
	// A 90% interval is narrower than a 95% one, so its lower bound is higher.
	at95 := CalculateWilsonScore(80, 100, 0.95)
	at90 := CalculateWilsonScore(80, 100, 0.90)
	if at90 <= at95 {
		t.Errorf("90%% bound %.6f should exceed 95%% bound %.6f", at90, at95)
	}
}

func TestCalculateWilsonScore_Rounding(t *testing.T) {
	got := CalculateWilsonScore(7, 13, 0.95)
	if got != math.Round(got*1e6)/1e6 {
		t.Errorf("score %.10f not rounded to 6 decimals", got)
	}
}

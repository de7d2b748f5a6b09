package domain

import "testing"

func TestDistanceScore(t *testing.T) {
	s := DistanceScorer{RowChangePenalty: 25}

	if got := s.Score("13-01-01-01", "15-01-01-01"); got != 50 {
		t.Fatalf("score = %d, want 50", got)
	}
	if got := s.Score("13-04-01-01", "13-01-01-01"); got != 3 {
		t.Fatalf("same-row score = %d, want 3", got)
	}
	if got := s.Score("13-01-01-01", "13010101"); got != 0 {
		t.Fatalf("same bin score = %d, want 0", got)
	}
	if got := s.Score("13-01-01-01", "???"); got != UnknownDistance {
		t.Fatalf("unknown previous score = %d, want %d", got, UnknownDistance)
	}
	if got := s.Score("", "13-01-01-01"); got != UnknownDistance {
		t.Fatalf("unknown current score = %d, want %d", got, UnknownDistance)
	}
}

func TestDistanceScoreSymmetric(t *testing.T) {
	s := DistanceScorer{RowChangePenalty: 20}
	bins := []string{"13-01-01-01", "15-07-01-01", "42990101", "10-00"}

	for _, a := range bins {
		if got := s.Score(a, a); got != 0 {
			t.Fatalf("Score(%q, %q) = %d, want 0", a, a, got)
		}
		for _, b := range bins {
			if s.Score(a, b) != s.Score(b, a) {
				t.Fatalf("Score not symmetric for %q, %q", a, b)
			}
		}
	}
}

package domain

import (
	"testing"
)

func TestComputeTrustScore(t *testing.T) {
	tests := []struct {
		name string
		in   TrustInput
		want float64
	}{
		{"verified good", TrustInput{Verified: true, RatingAverage: 4.0, CompletedJobs: 5}, 70.28},
		{"veteran with complaint", TrustInput{Verified: true, RatingAverage: 4.8, CompletedJobs: 100, Complaints: 1}, 83.5},
		{"unverified with penalties", TrustInput{RatingAverage: 3.0, CompletedJobs: 10, Complaints: 3, AnomalyFlags: 2}, 4.41},
		{"new unverified", TrustInput{}, 0},
		{"new verified", TrustInput{Verified: true}, 40},
		{"perfect", TrustInput{Verified: true, RatingAverage: 5, CompletedJobs: 1000}, 90},
		{"penalties floor at zero", TrustInput{Complaints: 50, AnomalyFlags: 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeTrustScore(tt.in); got != tt.want {
				t.Fatalf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExplainTrustPenaltiesCapped(t *testing.T) {
	b := ExplainTrust(TrustInput{Verified: true, RatingAverage: 5, CompletedJobs: 9, Complaints: 100, AnomalyFlags: 100})
	if b.ComplaintPenalty != ComplaintCap {
		t.Fatalf("complaint penalty = %v, want %v", b.ComplaintPenalty, ComplaintCap)
	}
	if b.AnomalyPenalty != AnomalyCap {
		t.Fatalf("anomaly penalty = %v, want %v", b.AnomalyPenalty, AnomalyCap)
	}
	if b.Level != TrustLevel(b.Total) {
		t.Fatalf("level %q does not match total %v", b.Level, b.Total)
	}
}

func TestExplainTrustWithoutRatings(t *testing.T) {
	// An average of 0 means no ratings yet; it must not push the score down.
	b := ExplainTrust(TrustInput{Verified: true, RatingAverage: 0, CompletedJobs: 9})
	if b.Rating != 0 {
		t.Fatalf("rating component = %v, want 0", b.Rating)
	}
	if b.Total != 50 {
		t.Fatalf("total = %v, want 50", b.Total)
	}
}

func TestTrustLevel(t *testing.T) {
	tests := map[float64]string{
		95:    "Excellent",
		80:    "Excellent",
		79.99: "Good",
		60:    "Good",
		40:    "Fair",
		20:    "Low",
		19.99: "Very Low",
		0:     "Very Low",
	}
	for score, want := range tests {
		if got := TrustLevel(score); got != want {
			t.Errorf("TrustLevel(%v) = %q, want %q", score, got, want)
		}
	}
}

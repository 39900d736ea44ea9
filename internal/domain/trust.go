package domain

import (
	"math"
)

// Weights and caps of the trust formula.
const (
	VerificationWeight = 40.0
	RatingWeight       = 30.0
	ExperienceCap      = 20.0
	ComplaintPenalty   = 5.0
	ComplaintCap       = 30.0
	AnomalyPenalty     = 3.0
	AnomalyCap         = 20.0
)

// TrustInput is everything the score depends on.
type TrustInput struct {
	Verified      bool
	RatingAverage float64
	CompletedJobs int
	Complaints    int
	AnomalyFlags  int
}

// TrustBreakdown is the per-component contribution to a trust score.
type TrustBreakdown struct {
	Verification     float64 `json:"verification"`
	Rating           float64 `json:"rating"`
	Experience       float64 `json:"experience"`
	ComplaintPenalty float64 `json:"complaint_penalty"`
	AnomalyPenalty   float64 `json:"anomaly_penalty"`
	Total            float64 `json:"total"`
	Level            string  `json:"level"`
}

// ExplainTrust computes the score together with its components.
func ExplainTrust(in TrustInput) TrustBreakdown {
	var b TrustBreakdown
	if in.Verified {
		b.Verification = VerificationWeight
	}

	// no ratings (average 0) contributes nothing rather than a negative amount
	normalized := clamp((in.RatingAverage-1)/4, 0, 1)
	b.Rating = normalized * RatingWeight

	jobs := in.CompletedJobs
	if jobs < 0 {
		jobs = 0
	}
	b.Experience = math.Min(ExperienceCap, math.Log10(float64(jobs)+1)*10)

	b.ComplaintPenalty = math.Min(ComplaintCap, float64(max(in.Complaints, 0))*ComplaintPenalty)
	b.AnomalyPenalty = math.Min(AnomalyCap, float64(max(in.AnomalyFlags, 0))*AnomalyPenalty)

	raw := b.Verification + b.Rating + b.Experience - b.ComplaintPenalty - b.AnomalyPenalty
	b.Total = round2(clamp(raw, 0, 100))
	b.Verification = round2(b.Verification)
	b.Rating = round2(b.Rating)
	b.Experience = round2(b.Experience)
	b.ComplaintPenalty = round2(b.ComplaintPenalty)
	b.AnomalyPenalty = round2(b.AnomalyPenalty)
	b.Level = TrustLevel(b.Total)
	return b
}

// ComputeTrustScore returns a score in [0,100] rounded to two decimals.
func ComputeTrustScore(in TrustInput) float64 {
	return ExplainTrust(in).Total
}

// TrustLevel maps a score to its human-readable band.
func TrustLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	case score >= 20:
		return "Low"
	default:
		return "Very Low"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

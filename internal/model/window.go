package model

import "time"

// ScoringPolicy configures window scoring. It is a plain value, not a
// strategy hierarchy: the scoring function is a single pure computation
// over these options.
type ScoringPolicy struct {
	TargetHumidityBelow float64 // %RH a step must stay under to count as favorable
	PreferDaytime       bool    // bonus for windows centered in 09:00-18:00
	ConfidencePenalty   float64 // weight subtracted per fraction of low-confidence steps
}

// CandidateWindow is a scored contiguous sub-interval of the simulated
// timeline. Windows may overlap; ranking is by (score desc, start asc).
type CandidateWindow struct {
	Start     time.Time
	End       time.Time // exclusive
	Score     float64
	Rationale string
}

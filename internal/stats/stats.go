// Package stats computes the descriptive talk-time and confidence snapshot
// shown at the top of the call dashboard.
package stats

import (
	"math"

	"hvac-call-insights/internal/stages"
	"hvac-call-insights/internal/types"
)

// DefaultLowConfidence is the threshold below which a sentence counts as a
// low-confidence transcription.
const DefaultLowConfidence = 0.7

// SpeakerStats is one speaker's share of the conversation.
type SpeakerStats struct {
	Sentences        int     `json:"sentences"`
	TalkTimeMs       int64   `json:"talk_time_ms"`
	TalkTimePct      float64 `json:"talk_time_pct"`
	AvgConfidencePct float64 `json:"avg_confidence_pct"`
}

// CallStats is a derived snapshot over the full sentence set. Percent shares
// are relative to total talk time, not wall-clock duration, so silence and
// overlap are ignored.
type CallStats struct {
	Bounds             types.CallBounds        `json:"bounds"`
	TotalSentences     int                     `json:"total_sentences"`
	TotalTalkTimeMs    int64                   `json:"total_talk_time_ms"`
	Speakers           map[string]SpeakerStats `json:"speakers"`
	AvgConfidencePct   float64                 `json:"avg_confidence_pct"`
	LowConfidenceCount int                     `json:"low_confidence_count"`
}

// Compute aggregates the transcript into a CallStats snapshot. Returns nil on
// an empty transcript so callers can tell "no data yet" from a silent call.
// A non-positive lowConfidence falls back to DefaultLowConfidence.
func Compute(sentences []types.Sentence, lowConfidence float64) *CallStats {
	if len(sentences) == 0 {
		return nil
	}
	if lowConfidence <= 0 {
		lowConfidence = DefaultLowConfidence
	}

	type accum struct {
		sentences int
		talkMs    int64
		confSum   float64
	}
	bySpeaker := map[string]*accum{}
	var totalTalk int64
	var confSum float64
	low := 0
	for _, s := range sentences {
		a := bySpeaker[s.Speaker]
		if a == nil {
			a = &accum{}
			bySpeaker[s.Speaker] = a
		}
		d := s.Duration()
		a.sentences++
		a.talkMs += d
		a.confSum += s.Confidence
		totalTalk += d
		confSum += s.Confidence
		if s.Confidence < lowConfidence {
			low++
		}
	}

	speakers := make(map[string]SpeakerStats, len(bySpeaker))
	for name, a := range bySpeaker {
		pct := 0.0
		if totalTalk > 0 {
			pct = round1(float64(a.talkMs) / float64(totalTalk) * 100)
		}
		speakers[name] = SpeakerStats{
			Sentences:        a.sentences,
			TalkTimeMs:       a.talkMs,
			TalkTimePct:      pct,
			AvgConfidencePct: round1(a.confSum / float64(a.sentences) * 100),
		}
	}

	return &CallStats{
		Bounds:             stages.Bounds(sentences),
		TotalSentences:     len(sentences),
		TotalTalkTimeMs:    totalTalk,
		Speakers:           speakers,
		AvgConfidencePct:   round1(confSum / float64(len(sentences)) * 100),
		LowConfidenceCount: low,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

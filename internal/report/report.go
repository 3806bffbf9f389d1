// Package report assembles the full dashboard payload from a transcript and
// the authored analysis config. Pure assembly: every field is recomputed from
// the inputs, nothing is cached or mutated.
package report

import (
	"fmt"
	"time"

	"hvac-call-insights/internal/citations"
	"hvac-call-insights/internal/keywords"
	"hvac-call-insights/internal/stageconfig"
	"hvac-call-insights/internal/stages"
	"hvac-call-insights/internal/stats"
	"hvac-call-insights/internal/types"
)

// Report is the complete output contract the dashboard consumes.
type Report struct {
	Bounds     types.CallBounds             `json:"bounds"`
	Stages     []stages.GeneratedStage      `json:"stages"`
	Groups     map[string]stages.StageGroup `json:"stage_groups"`
	Stats      *stats.CallStats             `json:"stats"`
	Keywords   map[string]keywords.Tally    `json:"keywords"`
	DurationMs int64                        `json:"duration_ms"`
}

// Build runs the whole analysis over one transcript. An empty transcript
// yields the defined empty shapes: zero bounds, untimed stages, no groups,
// nil stats.
func Build(sentences []types.Sentence, cfg *stageconfig.Config) Report {
	start := time.Now()
	generated := stages.Generate(cfg.Stages, sentences)
	rep := Report{
		Bounds:   stages.Bounds(sentences),
		Stages:   generated,
		Groups:   stages.Partition(generated, sentences),
		Stats:    stats.Compute(sentences, cfg.LowConfidence),
		Keywords: keywords.Count(sentences, cfg.Keywords),
	}
	rep.DurationMs = time.Since(start).Milliseconds()
	return rep
}

// Item kinds accepted by CitationsFor.
const (
	KindStrength = "strength"
	KindGap      = "gap"
)

// CitationsFor resolves one analysis item's citation patterns against its
// stage's sentence subset. An item with no citations, or citations with no
// supporting sentences, resolves to an empty match list.
func (r Report) CitationsFor(stageID, kind string, item int) ([]citations.Match, error) {
	group, ok := r.Groups[stageID]
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", stageID)
	}
	var items []types.AnalysisItem
	switch kind {
	case KindStrength:
		items = group.Stage.Analysis.Strengths
	case KindGap:
		items = group.Stage.Analysis.Gaps
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	if item < 0 || item >= len(items) {
		return nil, fmt.Errorf("stage %q has no %s item %d", stageID, kind, item)
	}
	return citations.Resolve(group.Sentences, items[item].Citations), nil
}

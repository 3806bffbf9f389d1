// internal/types/analysis_models.go
package types

// --------------------------------------------
// Authored analysis content (static configuration)
// --------------------------------------------

// AnalysisItem is one strength or gap observed in a stage. Citations are
// literal text patterns resolved against the transcript by substring search;
// the rest of the payload is display content for the dashboard.
type AnalysisItem struct {
	Title     string   `json:"title" yaml:"title"`
	Detail    string   `json:"detail,omitempty" yaml:"detail"`
	Citations []string `json:"citations,omitempty" yaml:"citations"`
	KeyQuote  string   `json:"key_quote,omitempty" yaml:"key_quote"`
}

// StageAnalysis groups the authored findings for one stage.
type StageAnalysis struct {
	Strengths []AnalysisItem `json:"strengths,omitempty" yaml:"strengths"`
	Gaps      []AnalysisItem `json:"gaps,omitempty" yaml:"gaps"`
}

// StageDefinition describes one segment of the call timeline by percentage
// boundaries. The ordered list of definitions must cover 0–100 contiguously.
type StageDefinition struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description"`
	Icon         string        `json:"icon,omitempty" yaml:"icon"`
	StartPercent float64       `json:"start_percent" yaml:"start_percent"`
	EndPercent   float64       `json:"end_percent" yaml:"end_percent"`
	Analysis     StageAnalysis `json:"analysis" yaml:"analysis"`
}

// KeywordDef maps a literal lowercase phrase to its dashboard category and
// display color.
type KeywordDef struct {
	Phrase   string `json:"phrase" yaml:"phrase"`
	Category string `json:"category" yaml:"category"`
	Color    string `json:"color,omitempty" yaml:"color"`
}

package transcript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"hvac-call-insights/internal/logger"
	"hvac-call-insights/internal/types"
)

// LoadXLSX reads sentences from a spreadsheet transcript export. Columns are
// auto-detected by header heuristics; rows without text are skipped quietly.
func LoadXLSX(path string) ([]types.Sentence, error) {
	log := logger.Component("transcript.xlsx").WithField("path", path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	startIdx, endIdx, speakerIdx, textIdx, confIdx := -1, -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case startIdx == -1 && strings.Contains(l, "start"):
			startIdx = i
		case endIdx == -1 && strings.Contains(l, "end"):
			endIdx = i
		case speakerIdx == -1 && (strings.Contains(l, "speaker") || strings.Contains(l, "role")):
			speakerIdx = i
		case textIdx == -1 && (strings.Contains(l, "text") || strings.Contains(l, "sentence") || strings.Contains(l, "utterance")):
			textIdx = i
		case confIdx == -1 && strings.Contains(l, "conf"):
			confIdx = i
		}
	}
	log.WithFields(map[string]interface{}{
		"startIdx":   startIdx,
		"endIdx":     endIdx,
		"speakerIdx": speakerIdx,
		"textIdx":    textIdx,
		"confIdx":    confIdx,
	}).Info("detected transcript column indices")
	if startIdx == -1 || endIdx == -1 || speakerIdx == -1 || textIdx == -1 {
		return nil, fmt.Errorf("missing required columns (start/end/speaker/text)")
	}

	var out []types.Sentence
	for i, r := range rows {
		if i == 0 {
			continue
		}
		s := types.Sentence{Confidence: 1}
		if startIdx < len(r) {
			s.Start, _ = strconv.ParseInt(strings.TrimSpace(r[startIdx]), 10, 64)
		}
		if endIdx < len(r) {
			s.End, _ = strconv.ParseInt(strings.TrimSpace(r[endIdx]), 10, 64)
		}
		if speakerIdx < len(r) {
			s.Speaker = strings.TrimSpace(r[speakerIdx])
		}
		if textIdx < len(r) {
			s.Text = strings.TrimSpace(r[textIdx])
		}
		if confIdx >= 0 && confIdx < len(r) {
			if c, err := strconv.ParseFloat(strings.TrimSpace(r[confIdx]), 64); err == nil {
				s.Confidence = c
			}
		}
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return Normalize(out), nil
}

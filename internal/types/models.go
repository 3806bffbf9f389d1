package types

// Sentence is one transcribed, speaker-attributed utterance. Times are
// call-relative milliseconds; the transcript is ordered by Start ascending.
type Sentence struct {
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Duration is the sentence's talk time in ms.
func (s Sentence) Duration() int64 {
	return s.End - s.Start
}

// IndexedSentence carries a sentence together with its position in the full
// transcript, so stage-scoped operations can still report global indices.
type IndexedSentence struct {
	Index int `json:"sentence_index"`
	Sentence
}

// Transcript is the input contract handed to the service by the loader.
type Transcript struct {
	Sentences []Sentence `json:"sentences"`
}

// CallBounds are derived from the first and last sentence of a transcript.
// The zero value doubles as the defined result for an empty transcript.
type CallBounds struct {
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
	Duration int64 `json:"duration"`
}

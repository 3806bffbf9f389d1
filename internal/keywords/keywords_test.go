package keywords

import (
	"reflect"
	"testing"

	"hvac-call-insights/internal/types"
)

func vocab() []types.KeywordDef {
	return []types.KeywordDef{
		{Phrase: "filter", Category: "maintenance"},
		{Phrase: "thermostat", Category: "equipment"},
		{Phrase: "maintenance plan", Category: "sales"},
	}
}

func TestCountSentenceHitsMultipleKeywords(t *testing.T) {
	sentences := []types.Sentence{
		{Start: 0, End: 1000, Speaker: "technician", Text: "Your Filter is clogged and the thermostat is fine", Confidence: 1},
	}
	tallies := Count(sentences, vocab())
	if tallies["filter"].Count != 1 {
		t.Errorf("filter count = %d, want 1", tallies["filter"].Count)
	}
	if tallies["thermostat"].Count != 1 {
		t.Errorf("thermostat count = %d, want 1", tallies["thermostat"].Count)
	}
	if tallies["maintenance plan"].Count != 0 {
		t.Errorf("maintenance plan count = %d, want 0", tallies["maintenance plan"].Count)
	}
}

func TestCountOncePerSentencePerKeyword(t *testing.T) {
	sentences := []types.Sentence{
		{Start: 0, End: 1000, Speaker: "technician", Text: "filter filter filter", Confidence: 1},
		{Start: 1000, End: 2000, Speaker: "customer", Text: "the filter again", Confidence: 1},
	}
	tally := Count(sentences, vocab())["filter"]
	if tally.Count != 2 {
		t.Errorf("count = %d, want 2 (one per sentence, not per occurrence)", tally.Count)
	}
	if len(tally.Mentions) != 2 {
		t.Fatalf("got %d mentions, want 2", len(tally.Mentions))
	}
	if tally.Mentions[0].SentenceIndex != 0 || tally.Mentions[1].SentenceIndex != 1 {
		t.Errorf("mention indices = %d,%d, want 0,1",
			tally.Mentions[0].SentenceIndex, tally.Mentions[1].SentenceIndex)
	}
	if tally.Mentions[1].TimeMs != 1000 || tally.Mentions[1].Speaker != "customer" {
		t.Errorf("mention = %+v, want time 1000 speaker customer", tally.Mentions[1])
	}
	// repeated phrase still yields one mention with every occurrence as a span
	if got := len(tally.Mentions[0].Spans); got != 3 {
		t.Errorf("first mention has %d spans, want 3", got)
	}
}

func TestCountEmptyTranscriptKeepsVocabulary(t *testing.T) {
	tallies := Count(nil, vocab())
	if len(tallies) != 3 {
		t.Fatalf("got %d tallies, want 3", len(tallies))
	}
	for phrase, tally := range tallies {
		if tally.Count != 0 {
			t.Errorf("%q count = %d, want 0", phrase, tally.Count)
		}
	}
}

func TestSpans(t *testing.T) {
	got := Spans("Check the FILTER, then the filter box", vocab())
	want := []Span{
		{Start: 10, End: 16, Keyword: "filter"},
		{Start: 27, End: 33, Keyword: "filter"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %+v, want %+v", got, want)
	}
}

func TestSpansOffsetsSurviveWidthChangingRunes(t *testing.T) {
	// U+212A KELVIN SIGN is three bytes but lowers to a one-byte "k";
	// spans after it must still index the original text.
	text := "Set to 30K and check the filter"
	got := Spans(text, vocab())
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1", len(got))
	}
	sp := got[0]
	if text[sp.Start:sp.End] != "filter" {
		t.Errorf("span [%d,%d) = %q in original text, want %q",
			sp.Start, sp.End, text[sp.Start:sp.End], "filter")
	}
}

func TestSpansSortedAcrossKeywords(t *testing.T) {
	got := Spans("thermostat near the filter", vocab())
	if len(got) != 2 {
		t.Fatalf("got %d spans, want 2", len(got))
	}
	if got[0].Keyword != "thermostat" || got[1].Keyword != "filter" {
		t.Errorf("span order = %q,%q, want thermostat,filter", got[0].Keyword, got[1].Keyword)
	}
	if got[0].Start > got[1].Start {
		t.Errorf("spans not sorted by start: %+v", got)
	}
}

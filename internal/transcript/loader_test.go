package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hvac-call-insights/internal/types"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "call.json")
	payload := `{"sentences":[
		{"start":0,"end":1000,"speaker":"technician","text":"Hey Luis","confidence":0.95},
		{"start":1000,"end":5000,"speaker":"customer","text":"Got you all done","confidence":0.9}
	]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2", len(got))
	}
	if got[0].Speaker != "technician" || got[0].End != 1000 {
		t.Errorf("first sentence = %+v", got[0])
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	payload := `{"sentences":[{"start":500,"end":100,"speaker":"technician","text":"backwards","confidence":0.9}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestNormalizeSortsUnorderedInput(t *testing.T) {
	unordered := []types.Sentence{
		{Start: 3000, End: 4000, Speaker: "customer", Text: "later", Confidence: 1},
		{Start: 0, End: 1000, Speaker: "technician", Text: "first", Confidence: 1},
	}
	got := Normalize(unordered)
	if got[0].Start != 0 || got[1].Start != 3000 {
		t.Errorf("normalize order = %d,%d, want 0,3000", got[0].Start, got[1].Start)
	}
	// original slice untouched
	if unordered[0].Start != 3000 {
		t.Errorf("normalize mutated its input: %+v", unordered)
	}
}

func TestNormalizeKeepsOrderedInput(t *testing.T) {
	ordered := []types.Sentence{
		{Start: 0, End: 1000, Speaker: "technician", Text: "a", Confidence: 1},
		{Start: 1000, End: 2000, Speaker: "customer", Text: "b", Confidence: 1},
	}
	got := Normalize(ordered)
	if &got[0] != &ordered[0] {
		t.Error("ordered input should be returned as-is")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       types.Sentence
		wantErr string
	}{
		{"end before start", types.Sentence{Start: 10, End: 5, Speaker: "technician", Text: "x", Confidence: 1}, "not after"},
		{"missing speaker", types.Sentence{Start: 0, End: 1, Text: "x", Confidence: 1}, "speaker"},
		{"missing text", types.Sentence{Start: 0, End: 1, Speaker: "customer", Confidence: 1}, "text"},
		{"confidence high", types.Sentence{Start: 0, End: 1, Speaker: "customer", Text: "x", Confidence: 1.5}, "confidence"},
		{"confidence negative", types.Sentence{Start: 0, End: 1, Speaker: "customer", Text: "x", Confidence: -0.1}, "confidence"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate([]types.Sentence{c.s})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error = %q, want mention of %q", err, c.wantErr)
			}
		})
	}
	if err := Validate(nil); err != nil {
		t.Errorf("empty transcript should validate: %v", err)
	}
}

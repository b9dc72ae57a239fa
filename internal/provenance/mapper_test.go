package provenance

import (
	"reflect"
	"testing"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "headache for 3 days", "headache for 3 days"},
		{"dash bullet", "- headache for 3 days", "headache for 3 days"},
		{"star bullet", "* headache for 3 days", "headache for 3 days"},
		{"glyph bullet", "• headache for 3 days", "headache for 3 days"},
		{"bullet without space", "-headache", "headache"},
		{"surrounding whitespace", "   - headache   ", "headache"},
		{"internal whitespace collapsed", "headache  for\t3 days", "headache for 3 days"},
		{"only one bullet stripped", "- - nested", "- nested"},
		{"case preserved", "- Headache", "Headache"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchLines_HeadacheScenario(t *testing.T) {
	fragments := []models.SourceFragment{{
		Section:       models.SectionSubjective,
		GeneratedText: "headache for 3 days",
		SourceText:    "Patient reports headache for 3 days.",
		StartIndex:    0,
		EndIndex:      37,
	}}

	lines := MatchLines(models.SectionSubjective, "- headache for 3 days", fragments)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Fragment == nil {
		t.Fatal("expected a matched fragment")
	}
	if lines[0].Fragment.SourceText != "Patient reports headache for 3 days." {
		t.Errorf("unexpected source text: %q", lines[0].Fragment.SourceText)
	}
	if lines[0].RawLine != "- headache for 3 days" {
		t.Errorf("raw line must be preserved verbatim, got %q", lines[0].RawLine)
	}
}

func TestMatchLines_BlankLinesDiscarded(t *testing.T) {
	lines := MatchLines(models.SectionPlan, "- rest\n\n   \n- fluids\n", nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].RawLine != "- rest" || lines[1].RawLine != "- fluids" {
		t.Errorf("unexpected lines: %q, %q", lines[0].RawLine, lines[1].RawLine)
	}
}

func TestMatchLines_SectionIsolation(t *testing.T) {
	fragments := []models.SourceFragment{{
		Section:       models.SectionObjective,
		GeneratedText: "BP 120/80",
		SourceText:    "blood pressure was 120 over 80",
	}}

	// Identical text rendered under Assessment must not match an
	// Objective fragment.
	lines := MatchLines(models.SectionAssessment, "- BP 120/80", fragments)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Fragment != nil {
		t.Error("cross-section match must never happen")
	}

	lines = MatchLines(models.SectionObjective, "- BP 120/80", fragments)
	if lines[0].Fragment == nil {
		t.Error("same-section match expected")
	}
}

func TestMatchLines_TieBreakFirstWins(t *testing.T) {
	fragments := []models.SourceFragment{
		{Section: models.SectionSubjective, GeneratedText: "dizzy", SourceText: "first", StartIndex: 0, EndIndex: 5},
		{Section: models.SectionSubjective, GeneratedText: "dizzy", SourceText: "second", StartIndex: 10, EndIndex: 16},
	}

	lines := MatchLines(models.SectionSubjective, "- dizzy", fragments)
	if lines[0].Fragment == nil {
		t.Fatal("expected a match")
	}
	if lines[0].Fragment.SourceText != "first" {
		t.Errorf("tie-break must select the earlier fragment, got %q", lines[0].Fragment.SourceText)
	}
}

func TestMatchLines_EditBreaksProvenance(t *testing.T) {
	fragments := []models.SourceFragment{{
		Section:       models.SectionSubjective,
		GeneratedText: "headache for 3 days",
		SourceText:    "Patient reports headache for 3 days.",
	}}

	lines := MatchLines(models.SectionSubjective, "- headache for 3 days", fragments)
	if lines[0].Fragment == nil {
		t.Fatal("expected initial match")
	}

	// Any character change loses the match.
	lines = MatchLines(models.SectionSubjective, "- headache for 4 days", fragments)
	if lines[0].Fragment != nil {
		t.Error("edited line must lose its fragment")
	}

	// Case-sensitive: changing case is an edit too.
	lines = MatchLines(models.SectionSubjective, "- Headache for 3 days", fragments)
	if lines[0].Fragment != nil {
		t.Error("case change must lose the fragment")
	}
}

func TestMatchLines_Idempotent(t *testing.T) {
	fragments := []models.SourceFragment{
		{Section: models.SectionPlan, GeneratedText: "follow up in two weeks", SourceText: "come back in two weeks"},
		{Section: models.SectionPlan, GeneratedText: "ibuprofen as needed", SourceText: "take ibuprofen when it hurts"},
	}
	text := "- follow up in two weeks\n- ibuprofen as needed\n- patient educated"

	first := MatchLines(models.SectionPlan, text, fragments)
	second := MatchLines(models.SectionPlan, text, fragments)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical review lines")
	}
	if first[2].Fragment != nil {
		t.Error("unmatched line must carry a nil fragment, silently")
	}
}

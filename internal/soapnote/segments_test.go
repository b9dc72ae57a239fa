package soapnote

import (
	"testing"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/provenance"
)

const sampleTranscript = "Patient reports headache for 3 days. Blood pressure was 120 over 80. We will start ibuprofen as needed."

func TestDeriveSegments_MatchesSentence(t *testing.T) {
	sections := map[models.SectionID]string{
		models.SectionSubjective: "- headache for 3 days",
		models.SectionObjective:  "",
		models.SectionAssessment: "",
		models.SectionPlan:       "",
	}

	fragments := DeriveSegments(sections, sampleTranscript)
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d: %+v", len(fragments), fragments)
	}

	f := fragments[0]
	if f.Section != models.SectionSubjective {
		t.Errorf("section = %q", f.Section)
	}
	if f.GeneratedText != "headache for 3 days" {
		t.Errorf("generated text must be the normalized line, got %q", f.GeneratedText)
	}
	if f.SourceText != "Patient reports headache for 3 days." {
		t.Errorf("source text = %q", f.SourceText)
	}
	if f.StartIndex != 0 || f.EndIndex != 37 {
		t.Errorf("span = [%d, %d), want [0, 37)", f.StartIndex, f.EndIndex)
	}
}

func TestDeriveSegments_SourceTextIsVerbatimSpan(t *testing.T) {
	sections := map[models.SectionID]string{
		models.SectionSubjective: "- headache for 3 days",
		models.SectionObjective:  "- blood pressure 120 over 80",
		models.SectionAssessment: "",
		models.SectionPlan:       "- start ibuprofen as needed",
	}

	for _, f := range DeriveSegments(sections, sampleTranscript) {
		if got := sampleTranscript[f.StartIndex:f.EndIndex]; got != f.SourceText {
			t.Errorf("transcript[%d:%d] = %q, want %q", f.StartIndex, f.EndIndex, got, f.SourceText)
		}
	}
}

func TestDeriveSegments_UnrelatedLineGetsNoFragment(t *testing.T) {
	sections := map[models.SectionID]string{
		models.SectionSubjective: "- completely unrelated spaceship telemetry",
		models.SectionObjective:  "",
		models.SectionAssessment: "",
		models.SectionPlan:       "",
	}

	if fragments := DeriveSegments(sections, sampleTranscript); len(fragments) != 0 {
		t.Errorf("low-overlap lines must stay unattributed, got %+v", fragments)
	}
}

func TestDeriveSegments_PlaceholderLineSkipped(t *testing.T) {
	sections := map[models.SectionID]string{
		models.SectionSubjective: emptySectionPlaceholder,
		models.SectionObjective:  "",
		models.SectionAssessment: "",
		models.SectionPlan:       "",
	}

	if fragments := DeriveSegments(sections, sampleTranscript); len(fragments) != 0 {
		t.Errorf("placeholder lines must not be attributed, got %+v", fragments)
	}
}

func TestDeriveSegments_SectionOrderIsDisplayOrder(t *testing.T) {
	sections := map[models.SectionID]string{
		models.SectionSubjective: "- headache for 3 days",
		models.SectionObjective:  "- blood pressure 120 over 80",
		models.SectionAssessment: "",
		models.SectionPlan:       "- start ibuprofen as needed",
	}

	fragments := DeriveSegments(sections, sampleTranscript)
	if len(fragments) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(fragments))
	}
	want := []models.SectionID{models.SectionSubjective, models.SectionObjective, models.SectionPlan}
	for i, id := range want {
		if fragments[i].Section != id {
			t.Errorf("fragment %d section = %q, want %q", i, fragments[i].Section, id)
		}
	}
}

// The fragments this package derives must round-trip through the review
// mapper: an unedited rendered line matches its own fragment.
func TestDeriveSegments_RoundTripWithMapper(t *testing.T) {
	text := "- headache for 3 days"
	sections := map[models.SectionID]string{
		models.SectionSubjective: text,
		models.SectionObjective:  "",
		models.SectionAssessment: "",
		models.SectionPlan:       "",
	}

	fragments := DeriveSegments(sections, sampleTranscript)
	lines := provenance.MatchLines(models.SectionSubjective, text, fragments)
	if len(lines) != 1 || lines[0].Fragment == nil {
		t.Fatalf("derived fragment must match its own line: %+v", lines)
	}
	if lines[0].Fragment.SourceText != "Patient reports headache for 3 days." {
		t.Errorf("unexpected source %q", lines[0].Fragment.SourceText)
	}
}

package soapnote

import (
	"math"
	"strings"
	"testing"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
)

const sampleGeneration = `Subjective: Patient reports headache for 3 days. Worse in the morning.
Objective: Afebrile. Blood pressure 120/80.
Assessment: Likely tension headache.
Plan: Ibuprofen as needed.
Follow up in two weeks if not improving.`

func TestParseSections(t *testing.T) {
	sections := ParseSections(sampleGeneration)

	if got := sections[models.SectionSubjective]; got != "Patient reports headache for 3 days. Worse in the morning." {
		t.Errorf("subjective = %q", got)
	}
	if got := sections[models.SectionObjective]; got != "Afebrile. Blood pressure 120/80." {
		t.Errorf("objective = %q", got)
	}
	if got := sections[models.SectionAssessment]; got != "Likely tension headache." {
		t.Errorf("assessment = %q", got)
	}
	// Continuation lines belong to the open section.
	if got := sections[models.SectionPlan]; got != "Ibuprofen as needed. Follow up in two weeks if not improving." {
		t.Errorf("plan = %q", got)
	}
}

func TestParseSections_MissingSectionStaysEmpty(t *testing.T) {
	sections := ParseSections("Subjective: headache\nObjective: afebrile")
	if sections[models.SectionPlan] != "" || sections[models.SectionAssessment] != "" {
		t.Errorf("absent sections must stay empty: %+v", sections)
	}
}

func TestFormatSectionMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty gets placeholder",
			in:   "   ",
			want: emptySectionPlaceholder,
		},
		{
			name: "existing bullets preserved",
			in:   "- headache\n- photophobia\n- nausea",
			want: "- headache\n- photophobia\n- nausea",
		},
		{
			name: "inline bullets split onto lines",
			in:   "Symptoms: - headache - photophobia",
			want: "Symptoms:\n- headache\n- photophobia",
		},
		{
			name: "short lines become a list",
			in:   "headache\nphotophobia\nnausea",
			want: "- headache\n- photophobia\n- nausea",
		},
		{
			name: "narrative joined as paragraph",
			in:   "The patient presents with a three day history of frontal headache that worsens in the morning.\nNo associated visual changes were reported during the course of the current illness episode.",
			want: "The patient presents with a three day history of frontal headache that worsens in the morning. No associated visual changes were reported during the course of the current illness episode.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSectionMarkdown(tt.in); got != tt.want {
				t.Errorf("FormatSectionMarkdown(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	if got := Confidence(""); got != 0.5 {
		t.Errorf("empty output confidence = %v, want 0.5", got)
	}
	if got := Confidence(strings.Repeat("x", 400)); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("400-char confidence = %v, want 0.7", got)
	}
	if got := Confidence(strings.Repeat("x", 10000)); got != 0.95 {
		t.Errorf("confidence must cap at 0.95, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	note := &models.ClinicalNote{
		Subjective: "s", Objective: "o", Assessment: "a", Plan: "p",
		ConfidenceScore: 0.8,
	}
	if !Validate(note) {
		t.Error("complete note must validate")
	}

	incomplete := *note
	incomplete.Plan = "  "
	if Validate(&incomplete) {
		t.Error("note with a blank section must not validate")
	}

	badScore := *note
	badScore.ConfidenceScore = 1.2
	if Validate(&badScore) {
		t.Error("confidence outside [0,1] must not validate")
	}
	if Validate(nil) {
		t.Error("nil note must not validate")
	}
}

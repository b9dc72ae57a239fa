package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type fakeGenerator struct {
	out string
	err error

	gotPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.out, f.err
}

func (f *fakeGenerator) Close() error { return nil }

const sampleGeneration = `Subjective: Patient reports headache for 3 days. Pain is dull and constant.
Objective: Blood pressure was 120 over 80. Alert and oriented.
Assessment: Likely tension headache.
Plan: Start ibuprofen as needed. Follow up in two weeks.`

func TestGenerateNoteBuildsCompleteNote(t *testing.T) {
	gen := &fakeGenerator{out: sampleGeneration}
	svc := NewSOAPService(gen)

	transcript := "Patient reports headache for 3 days. Blood pressure was 120 over 80."
	note, err := svc.GenerateNote(context.Background(), transcript)
	if err != nil {
		t.Fatalf("GenerateNote: %v", err)
	}

	if !strings.Contains(gen.gotPrompt, transcript) {
		t.Error("prompt does not include the transcript")
	}
	for _, sec := range models.Sections() {
		if strings.TrimSpace(note.Section(sec)) == "" {
			t.Errorf("section %s is empty", sec)
		}
	}
	if note.ConfidenceScore <= 0.5 || note.ConfidenceScore > 0.95 {
		t.Errorf("confidence = %v", note.ConfidenceScore)
	}
	if len(note.Fragments) == 0 {
		t.Fatal("no source segments derived")
	}
	for _, f := range note.Fragments {
		if transcript[f.StartIndex:f.EndIndex] != f.SourceText {
			t.Errorf("fragment span mismatch: %q vs %q", transcript[f.StartIndex:f.EndIndex], f.SourceText)
		}
	}
}

func TestGenerateNoteFillsMissingSections(t *testing.T) {
	// The model omitted Objective entirely; the section is rendered with
	// an explicit placeholder rather than silently dropped.
	gen := &fakeGenerator{out: `Subjective: Headache.
Assessment: Tension headache.
Plan: Ibuprofen.`}
	svc := NewSOAPService(gen)

	note, err := svc.GenerateNote(context.Background(), "some transcript text")
	if err != nil {
		t.Fatalf("GenerateNote: %v", err)
	}
	if !strings.Contains(note.Objective, "No information provided") {
		t.Errorf("objective = %q, want placeholder", note.Objective)
	}
}

func TestGenerateNoteErrors(t *testing.T) {
	tests := []struct {
		name       string
		gen        *fakeGenerator
		transcript string
		wantCode   utils.Code
	}{
		{
			name:       "blank transcript",
			gen:        &fakeGenerator{out: sampleGeneration},
			transcript: "",
			wantCode:   utils.CodeInvalidInput,
		},
		{
			name:       "provider failure",
			gen:        &fakeGenerator{err: errors.New("quota exceeded")},
			transcript: "something",
			wantCode:   utils.CodeServiceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSOAPService(tt.gen)
			_, err := svc.GenerateNote(context.Background(), tt.transcript)
			if !utils.IsCode(err, tt.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

package services

import (
	"context"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/providers/notegen"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/soapnote"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type SOAPService interface {
	GenerateNote(ctx context.Context, transcription string) (*models.ClinicalNote, error)
}

type soapService struct {
	gen notegen.Generator
}

func NewSOAPService(gen notegen.Generator) SOAPService {
	return &soapService{gen: gen}
}

// GenerateNote prompts the model, parses and formats the four SOAP
// sections and derives per-line source segments against the transcript.
// An incomplete generation is rejected wholesale.
func (s *soapService) GenerateNote(ctx context.Context, transcription string) (*models.ClinicalNote, error) {
	const op = "SOAPService.GenerateNote"

	if transcription == "" {
		return nil, utils.E(utils.CodeInvalidInput, op, "transcription text is required", nil)
	}

	generated, err := s.gen.Generate(ctx, soapnote.Prompt(transcription))
	if err != nil {
		return nil, utils.E(utils.CodeServiceError, op, "note generation failed", err)
	}

	sections := soapnote.ParseSections(generated)
	for id, text := range sections {
		sections[id] = soapnote.FormatSectionMarkdown(text)
	}

	note := &models.ClinicalNote{
		Subjective:      sections[models.SectionSubjective],
		Objective:       sections[models.SectionObjective],
		Assessment:      sections[models.SectionAssessment],
		Plan:            sections[models.SectionPlan],
		ConfidenceScore: soapnote.Confidence(generated),
		Fragments:       soapnote.DeriveSegments(sections, transcription),
	}

	if !soapnote.Validate(note) {
		return nil, utils.E(utils.CodeServiceError, op, "model response did not contain a complete SOAP note", nil)
	}
	return note, nil
}

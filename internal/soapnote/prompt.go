// Package soapnote turns raw model output into a structured, validated
// SOAP note with per-line source provenance.
package soapnote

import "fmt"

// Prompt builds the scribe instruction for the generation model. The
// response parser depends on the exact "Section:" line format requested
// here.
func Prompt(transcription string) string {
	return fmt.Sprintf(`You are a medical scribe assistant. Your task is to generate a detailed SOAP note from the following medical consultation transcript.

Format the response exactly as follows:
Subjective: [Patient's reported symptoms and history]
Objective: [Clinical observations and measurements]
Assessment: [Diagnosis and clinical reasoning]
Plan: [Treatment plan and follow-up]

Medical Consultation Transcript:
%s

Generate a SOAP note that captures all relevant medical information from the transcript. Ensure the response follows the exact format specified above.`, transcription)
}

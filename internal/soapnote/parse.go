package soapnote

import (
	"regexp"
	"strings"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
)

const emptySectionPlaceholder = "_No information provided in this section._"

var sectionHeaders = map[string]models.SectionID{
	"Subjective:": models.SectionSubjective,
	"Objective:":  models.SectionObjective,
	"Assessment:": models.SectionAssessment,
	"Plan:":       models.SectionPlan,
}

// ParseSections extracts the four SOAP sections from the model's output.
// A line starting with a section header opens that section; subsequent
// lines are appended to the open section until the next header.
func ParseSections(generated string) map[models.SectionID]string {
	sections := map[models.SectionID]string{
		models.SectionSubjective: "",
		models.SectionObjective:  "",
		models.SectionAssessment: "",
		models.SectionPlan:       "",
	}

	var current models.SectionID
	haveCurrent := false
	for _, line := range strings.Split(generated, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched := false
		for header, id := range sectionHeaders {
			if strings.HasPrefix(line, header) {
				current = id
				haveCurrent = true
				sections[id] = strings.TrimSpace(strings.TrimPrefix(line, header))
				matched = true
				break
			}
		}
		if !matched && haveCurrent {
			sections[current] += " " + line
		}
	}
	return sections
}

var inlineBullet = regexp.MustCompile(`\s*([*•-])\s+`)
var bulletOrNumbered = regexp.MustCompile(`^(-|\*|\d+\.|•)`)

// FormatSectionMarkdown renders a section for line-oriented review:
// list-like content becomes one bullet per line, narrative content a
// single paragraph. The provenance mapper operates on these lines, so the
// formatting here decides the match granularity.
func FormatSectionMarkdown(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return emptySectionPlaceholder
	}

	// Break inline bullet runs onto their own lines.
	text = inlineBullet.ReplaceAllString(text, "\n$1 ")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return emptySectionPlaceholder
	}

	bulletLike := 0
	for _, l := range lines {
		if bulletOrNumbered.MatchString(l) {
			bulletLike++
		}
	}
	if float64(bulletLike) >= float64(len(lines))/2 {
		return strings.Join(lines, "\n")
	}

	shortLines := 0
	for _, l := range lines {
		if len(l) < 60 {
			shortLines++
		}
	}
	if len(lines) > 1 && float64(shortLines) >= float64(len(lines))/2 {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = "- " + strings.TrimLeft(l, "-•* ")
		}
		return strings.Join(out, "\n")
	}

	return strings.Join(lines, " ")
}

// Confidence derives a coarse score from output length: longer, complete
// notes score higher, capped below certainty.
func Confidence(generated string) float64 {
	score := 0.5 + float64(len(generated))/2000
	if score > 0.95 {
		return 0.95
	}
	return score
}

// Validate checks a note is complete enough to show a clinician: all four
// sections present and a sane confidence score. An incomplete note is
// rejected wholesale rather than surfaced with gaps.
func Validate(note *models.ClinicalNote) bool {
	if note == nil {
		return false
	}
	for _, section := range models.Sections() {
		if strings.TrimSpace(note.Section(section)) == "" {
			return false
		}
	}
	return note.ConfidenceScore >= 0 && note.ConfidenceScore <= 1
}

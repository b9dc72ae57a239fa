// Package provenance maps generated note lines back to the transcript
// fragments that justify them.
package provenance

import (
	"strings"
	"unicode/utf8"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
)

// MatchLines splits the section's current text into non-empty lines and
// pairs each with the source fragment that backs it, if any. Matching is
// exact-equality over normalized text, case-sensitive, and restricted to
// fragments of the same section. When several fragments carry identical
// generated text, the one appearing first in the fragment sequence wins.
//
// A pure function of its inputs: nothing is cached or mutated, and a
// missing match is a valid outcome, not an error. Any user edit to a line
// deterministically drops its match — provenance is only ever claimed for
// unedited generated output.
func MatchLines(section models.SectionID, text string, fragments []models.SourceFragment) []models.ReviewLine {
	var lines []models.ReviewLine
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, models.ReviewLine{
			Section:  section,
			RawLine:  raw,
			Fragment: findFragment(section, Normalize(raw), fragments),
		})
	}
	return lines
}

func findFragment(section models.SectionID, normalized string, fragments []models.SourceFragment) *models.SourceFragment {
	for i := range fragments {
		if fragments[i].Section != section {
			continue
		}
		if Normalize(fragments[i].GeneratedText) == normalized {
			return &fragments[i]
		}
	}
	return nil
}

// Normalize strips a single leading bullet marker ("-", "*" or "•") plus
// surrounding whitespace and collapses internal runs of whitespace to a
// single space. Case is preserved.
func Normalize(line string) string {
	s := strings.TrimSpace(line)
	if r, size := utf8.DecodeRuneInString(s); r == '-' || r == '*' || r == '•' {
		s = strings.TrimSpace(s[size:])
	}
	return strings.Join(strings.Fields(s), " ")
}

package soapnote

import (
	"strings"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/provenance"
)

// overlapThreshold is the fraction of a note line's tokens that must
// appear in a transcript sentence before we claim it as the source.
// Favors false negatives over false positives: an unattributed line is
// honest, a wrong attribution is not.
const overlapThreshold = 0.5

// sentence is a verbatim transcript span, [start, end) byte offsets.
type sentence struct {
	text  string
	start int
	end   int
}

// DeriveSegments computes the source provenance the generation model does
// not provide: for every non-empty line of every section, the transcript
// sentence with the highest token overlap becomes that line's source
// fragment, provided the overlap clears the threshold. Deterministic:
// sentence order breaks ties, earlier wins.
func DeriveSegments(sections map[models.SectionID]string, transcript string) []models.SourceFragment {
	sentences := splitSentences(transcript)
	if len(sentences) == 0 {
		return nil
	}

	var fragments []models.SourceFragment
	for _, id := range models.Sections() {
		for _, raw := range strings.Split(sections[id], "\n") {
			line := provenance.Normalize(raw)
			if line == "" || line == provenance.Normalize(emptySectionPlaceholder) {
				continue
			}
			if src, ok := bestSentence(line, sentences); ok {
				fragments = append(fragments, models.SourceFragment{
					Section:       id,
					GeneratedText: line,
					SourceText:    src.text,
					StartIndex:    src.start,
					EndIndex:      src.end,
				})
			}
		}
	}
	return fragments
}

func bestSentence(line string, sentences []sentence) (sentence, bool) {
	lineTokens := tokenize(line)
	if len(lineTokens) == 0 {
		return sentence{}, false
	}

	best := -1
	var bestScore float64
	for i, s := range sentences {
		score := overlap(lineTokens, tokenize(s.text))
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 || bestScore < overlapThreshold {
		return sentence{}, false
	}
	return sentences[best], true
}

// overlap returns the fraction of line tokens present in the sentence.
func overlap(lineTokens []string, sentenceTokens []string) float64 {
	set := make(map[string]struct{}, len(sentenceTokens))
	for _, t := range sentenceTokens {
		set[t] = struct{}{}
	}
	hit := 0
	for _, t := range lineTokens {
		if _, ok := set[t]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(lineTokens))
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 1 { // drop single-letter noise
			out = append(out, f)
		}
	}
	return out
}

// splitSentences cuts the transcript on sentence terminators, keeping the
// verbatim text and byte offsets of each span.
func splitSentences(transcript string) []sentence {
	var out []sentence
	start := 0
	for i, r := range transcript {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			out = appendSpan(out, transcript, start, i+1)
			start = i + 1
		}
	}
	out = appendSpan(out, transcript, start, len(transcript))
	return out
}

func appendSpan(out []sentence, transcript string, start, end int) []sentence {
	// Advance past leading whitespace so SourceText stays a tight
	// verbatim substring.
	for start < end && (transcript[start] == ' ' || transcript[start] == '\t' || transcript[start] == '\n') {
		start++
	}
	if start >= end || strings.TrimSpace(transcript[start:end]) == "" {
		return out
	}
	trimmed := strings.TrimRight(transcript[start:end], " \t\n")
	return append(out, sentence{text: trimmed, start: start, end: start + len(trimmed)})
}

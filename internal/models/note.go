package models

// SectionID identifies one of the four SOAP note sections. The zero-based
// order of Sections() is the display order and is significant.
type SectionID string

const (
	SectionSubjective SectionID = "subjective"
	SectionObjective  SectionID = "objective"
	SectionAssessment SectionID = "assessment"
	SectionPlan       SectionID = "plan"
)

// Sections returns the four SOAP sections in display order (S, O, A, P).
func Sections() []SectionID {
	return []SectionID{SectionSubjective, SectionObjective, SectionAssessment, SectionPlan}
}

// Title returns the section header as rendered to the clinician.
func (s SectionID) Title() string {
	switch s {
	case SectionSubjective:
		return "Subjective"
	case SectionObjective:
		return "Objective"
	case SectionAssessment:
		return "Assessment"
	case SectionPlan:
		return "Plan"
	default:
		return string(s)
	}
}

// ParseSection maps a wire-level section name to a SectionID.
func ParseSection(v string) (SectionID, bool) {
	switch SectionID(v) {
	case SectionSubjective, SectionObjective, SectionAssessment, SectionPlan:
		return SectionID(v), true
	default:
		return "", false
	}
}

// SourceFragment ties one generated note line back to the verbatim
// transcript span that justifies it. SourceText is Transcript[StartIndex:EndIndex).
// Fragments are produced by the generation service and never mutated after
// receipt.
type SourceFragment struct {
	Section       SectionID `json:"section" bson:"section"`
	GeneratedText string    `json:"text" bson:"text"`
	SourceText    string    `json:"source_text" bson:"source_text"`
	StartIndex    int       `json:"start_index" bson:"start_index"`
	EndIndex      int       `json:"end_index" bson:"end_index"`
}

// ClinicalNote is a generated SOAP note. The four section texts are the
// only user-editable fields; Fragments stay read-only for the note's
// lifetime so provenance matching remains meaningful.
type ClinicalNote struct {
	Subjective      string           `json:"subjective" bson:"subjective"`
	Objective       string           `json:"objective" bson:"objective"`
	Assessment      string           `json:"assessment" bson:"assessment"`
	Plan            string           `json:"plan" bson:"plan"`
	ConfidenceScore float64          `json:"confidence_score" bson:"confidence_score"`
	Fragments       []SourceFragment `json:"source_segments,omitempty" bson:"source_segments,omitempty"`
}

// Section returns the text of the given section.
func (n *ClinicalNote) Section(id SectionID) string {
	switch id {
	case SectionSubjective:
		return n.Subjective
	case SectionObjective:
		return n.Objective
	case SectionAssessment:
		return n.Assessment
	case SectionPlan:
		return n.Plan
	default:
		return ""
	}
}

// SetSection replaces the text of the given section.
func (n *ClinicalNote) SetSection(id SectionID, text string) {
	switch id {
	case SectionSubjective:
		n.Subjective = text
	case SectionObjective:
		n.Objective = text
	case SectionAssessment:
		n.Assessment = text
	case SectionPlan:
		n.Plan = text
	}
}

// Clone returns a working copy of the note. Section texts are copied;
// the fragment slice is copied as well so appends on either side can
// never alias, even though fragments themselves are immutable.
func (n *ClinicalNote) Clone() *ClinicalNote {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Fragments != nil {
		cp.Fragments = make([]SourceFragment, len(n.Fragments))
		copy(cp.Fragments, n.Fragments)
	}
	return &cp
}

// ReviewLine is one non-empty line of a section's current text together
// with the fragment backing it, if any. Derived on read, never stored.
type ReviewLine struct {
	Section  SectionID
	RawLine  string
	Fragment *SourceFragment // nil when the line has no provenance
}

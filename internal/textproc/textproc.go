package textproc

// SectionType names a semantic region of a resume.
type SectionType string

const (
	SectionContact        SectionType = "contact"
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionCertifications SectionType = "certifications"
	SectionProjects       SectionType = "projects"
	SectionLanguages      SectionType = "languages"
	SectionReferences     SectionType = "references"
	SectionAwards         SectionType = "awards"
	SectionPublications   SectionType = "publications"
	SectionInterests      SectionType = "interests"
	SectionUnknown        SectionType = "unknown"
)

// TextSection is a detected region of the cleaned text. Spans are ordered
// by StartPos and never overlap.
type TextSection struct {
	SectionType SectionType `json:"section_type"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	StartPos    int         `json:"start_pos"`
	EndPos      int         `json:"end_pos"`
	Confidence  float64     `json:"confidence"`
}

// PreprocessedText is the cleaned and segmented form of extracted text.
type PreprocessedText struct {
	OriginalText     string        `json:"original_text"`
	CleanedText      string        `json:"cleaned_text"`
	Sections         []TextSection `json:"sections"`
	Lines            []string      `json:"lines"`
	DetectedLanguage string        `json:"detected_language"`
	WordCount        int           `json:"word_count"`
	Warnings         []string      `json:"warnings,omitempty"`
}

// SectionContent returns the content of the first section of the given
// type, or "" when absent.
func (p *PreprocessedText) SectionContent(t SectionType) string {
	for _, s := range p.Sections {
		if s.SectionType == t {
			return s.Content
		}
	}
	return ""
}

// SectionsByType returns every section of the given type in document order.
func (p *PreprocessedText) SectionsByType(t SectionType) []TextSection {
	var out []TextSection
	for _, s := range p.Sections {
		if s.SectionType == t {
			out = append(out, s)
		}
	}
	return out
}

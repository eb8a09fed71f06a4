package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// sectionHeaders maps each section type to its header synonyms as they
// appear in real resumes.
var sectionHeaders = map[SectionType][]string{
	SectionContact: {
		"contact", "contact information", "personal information",
		"personal details", "contact details",
	},
	SectionSummary: {
		"summary", "professional summary", "profile", "objective",
		"career objective", "about me", "about", "overview",
		"professional profile", "executive summary",
	},
	SectionExperience: {
		"experience", "work experience", "employment history",
		"professional experience", "work history", "employment",
		"career history", "professional background", "positions held",
	},
	SectionEducation: {
		"education", "educational background", "academic background",
		"qualifications", "academic qualifications", "schooling",
		"educational qualifications", "degrees",
	},
	SectionSkills: {
		"skills", "technical skills", "core competencies",
		"competencies", "areas of expertise", "expertise",
		"key skills", "professional skills", "abilities",
		"technologies", "tools", "programming languages",
	},
	SectionCertifications: {
		"certifications", "certificates", "licenses",
		"professional certifications", "credentials",
		"training", "professional development",
	},
	SectionProjects: {
		"projects", "key projects", "notable projects",
		"project experience", "personal projects",
	},
	SectionLanguages: {
		"languages", "language skills", "language proficiency",
	},
	SectionReferences: {
		"references", "referees",
	},
	SectionAwards: {
		"awards", "honors", "achievements", "accomplishments",
		"recognition",
	},
	SectionPublications: {
		"publications", "papers", "research",
	},
	SectionInterests: {
		"interests", "hobbies", "activities",
	},
}

// sectionOrder fixes the synonym lookup order so a header matching synonyms
// of two types ("EDUCATION & TRAINING") always resolves to the same type.
var sectionOrder = []SectionType{
	SectionContact, SectionSummary, SectionExperience, SectionEducation,
	SectionSkills, SectionCertifications, SectionProjects, SectionLanguages,
	SectionReferences, SectionAwards, SectionPublications, SectionInterests,
}

var (
	controlCharRe   = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe    = regexp.MustCompile(` {2,}`)
	headerPrefixRe  = regexp.MustCompile(`^[\d.\-*•:]+\s*`)
	trailingColonRe = regexp.MustCompile(`\s*:\s*$`)
)

var charReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	"\u00a0", " ", // non-breaking space
	"\u00ad", "", // soft hyphen
	"\ufeff", "", // byte order mark
	"\u200b", "", // zero-width space
	"\t", "    ",
)

// Preprocessor cleans extracted text and segments it into sections. It is
// stateless after construction and safe for concurrent use.
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Preprocess never fails: short or sectionless input produces warnings,
// not errors.
func (p *Preprocessor) Preprocess(text string) *PreprocessedText {
	var warnings []string

	cleaned := p.cleanText(text)

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	sections := p.detectSections(cleaned)
	wordCount := len(strings.Fields(cleaned))

	if wordCount < 50 {
		warnings = append(warnings, "very short text; extraction may be incomplete")
	}
	if len(sections) == 0 || (len(sections) == 1 && sections[0].SectionType == SectionUnknown) {
		warnings = append(warnings, "could not detect standard resume sections")
	}

	return &PreprocessedText{
		OriginalText:     text,
		CleanedText:      cleaned,
		Sections:         sections,
		Lines:            lines,
		DetectedLanguage: detectLanguage(cleaned),
		WordCount:        wordCount,
		Warnings:         warnings,
	}
}

func (p *Preprocessor) cleanText(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = charReplacer.Replace(text)
	text = controlCharRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

func (p *Preprocessor) detectSections(text string) []TextSection {
	var sections []TextSection
	lines := strings.Split(text, "\n")

	var current *TextSection
	var contentLines []string
	pos := 0

	closeCurrent := func(endPos int) {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(contentLines, "\n"))
		current.EndPos = endPos
		if current.Content != "" {
			sections = append(sections, *current)
		}
		current = nil
	}

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		sectionType, ok := identifySectionHeader(stripped)

		if ok {
			closeCurrent(pos - 1)
			current = &TextSection{
				SectionType: sectionType,
				Title:       stripped,
				StartPos:    pos,
				EndPos:      pos,
				Confidence:  1.0,
			}
			contentLines = contentLines[:0]
		} else if current != nil {
			contentLines = append(contentLines, line)
		}
		pos += len(line) + 1
	}
	closeCurrent(len(text))

	if len(sections) == 0 && strings.TrimSpace(text) != "" {
		sections = append(sections, TextSection{
			SectionType: SectionUnknown,
			Content:     text,
			StartPos:    0,
			EndPos:      len(text),
			Confidence:  0.5,
		})
	}

	return sections
}

// identifySectionHeader reports whether a line is a section header and of
// what type. A header either equals (or closely prefixes, within 5 chars)
// a known synonym after marker stripping, or is a short all-caps line
// containing a synonym.
func identifySectionHeader(line string) (SectionType, bool) {
	if line == "" {
		return "", false
	}

	clean := strings.ToLower(line)
	clean = headerPrefixRe.ReplaceAllString(clean, "")
	clean = trailingColonRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	for _, sectionType := range sectionOrder {
		for _, header := range sectionHeaders[sectionType] {
			if clean == header {
				return sectionType, true
			}
			if strings.HasPrefix(clean, header) && len(clean) < len(header)+5 {
				return sectionType, true
			}
		}
	}

	if isAllUpper(line) && len(strings.Fields(line)) <= 4 && len(line) <= 40 {
		lower := strings.ToLower(line)
		for _, sectionType := range sectionOrder {
			for _, header := range sectionHeaders[sectionType] {
				if strings.Contains(lower, header) {
					return sectionType, true
				}
			}
		}
	}

	return "", false
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// detectLanguage is a placeholder heuristic. Parsing is English-only for
// now; anything else still flows through the pipeline tagged as "en".
func detectLanguage(text string) string {
	return "en"
}

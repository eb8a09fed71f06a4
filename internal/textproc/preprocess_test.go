package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_Normalization(t *testing.T) {
	p := NewPreprocessor()

	raw := "John’s résumé – engineer\r\nLine two\r\n\r\n\r\n\r\nLine   three​"
	result := p.Preprocess(raw)

	assert.Contains(t, result.CleanedText, "John's")
	assert.Contains(t, result.CleanedText, "- engineer")
	assert.NotContains(t, result.CleanedText, "\r")
	assert.NotContains(t, result.CleanedText, "​")
	assert.NotContains(t, result.CleanedText, "\n\n\n")
	assert.Contains(t, result.CleanedText, "Line three")
}

func TestCleanText_InvisibleCharactersStripped(t *testing.T) {
	p := NewPreprocessor()

	result := p.Preprocess("\ufeffJane\u00ad Smith\u200b\nEngineer")

	assert.Equal(t, "Jane Smith\nEngineer", result.CleanedText)
}

func TestPreprocess_AmbiguousHeaderTypeIsStable(t *testing.T) {
	p := NewPreprocessor()

	// "EDUCATION & TRAINING" contains synonyms of two section types; the
	// resolved type must not vary between parses.
	for i := 0; i < 50; i++ {
		result := p.Preprocess("EDUCATION & TRAINING\nB.S. Computer Science")
		require.Len(t, result.Sections, 1)
		assert.Equal(t, SectionEducation, result.Sections[0].SectionType)
	}
}

func TestPreprocess_DetectsEducationHeader(t *testing.T) {
	p := NewPreprocessor()

	text := "Intro line\nEDUCATION\nBachelor of Science\nMIT\nEXPERIENCE\nEngineer at Acme"
	result := p.Preprocess(text)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, SectionEducation, result.Sections[0].SectionType)
	assert.Equal(t, "EDUCATION", result.Sections[0].Title)
	assert.Contains(t, result.Sections[0].Content, "Bachelor of Science")
	assert.Equal(t, SectionExperience, result.Sections[1].SectionType)
}

func TestPreprocess_HeaderVariants(t *testing.T) {
	p := NewPreprocessor()

	cases := []struct {
		line string
		want SectionType
	}{
		{"Work Experience:", SectionExperience},
		{"TECHNICAL SKILLS", SectionSkills},
		{"- Certifications", SectionCertifications},
		{"Professional Summary", SectionSummary},
		{"Key Projects", SectionProjects},
	}

	for _, tc := range cases {
		text := tc.line + "\nsome content here"
		result := p.Preprocess(text)
		require.NotEmpty(t, result.Sections, "line %q", tc.line)
		assert.Equal(t, tc.want, result.Sections[0].SectionType, "line %q", tc.line)
	}
}

func TestPreprocess_NoHeadersFallsBackToUnknown(t *testing.T) {
	p := NewPreprocessor()

	text := "just a blob of text without any recognizable headers at all"
	result := p.Preprocess(text)

	require.Len(t, result.Sections, 1)
	s := result.Sections[0]
	assert.Equal(t, SectionUnknown, s.SectionType)
	assert.Equal(t, 0.5, s.Confidence)
	assert.Equal(t, 0, s.StartPos)
	assert.Equal(t, len(result.CleanedText), s.EndPos)
	assert.Equal(t, result.CleanedText, s.Content)
}

func TestPreprocess_SectionsOrderedAndNonOverlapping(t *testing.T) {
	p := NewPreprocessor()

	text := "SUMMARY\nExperienced engineer.\n\nSKILLS\nGo, Python\n\nEDUCATION\nBS in CS"
	result := p.Preprocess(text)

	require.Len(t, result.Sections, 3)
	for i := 1; i < len(result.Sections); i++ {
		assert.Greater(t, result.Sections[i].StartPos, result.Sections[i-1].EndPos)
	}
}

func TestPreprocess_ShortTextWarning(t *testing.T) {
	p := NewPreprocessor()

	result := p.Preprocess("tiny input")

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, strings.Join(result.Warnings, " "), "short")
}

func TestPreprocess_LinesAndWordCount(t *testing.T) {
	p := NewPreprocessor()

	result := p.Preprocess("one two\n\nthree four five\n")

	assert.Equal(t, []string{"one two", "three four five"}, result.Lines)
	assert.Equal(t, 5, result.WordCount)
	assert.Equal(t, "en", result.DetectedLanguage)
}

func TestSectionContent(t *testing.T) {
	p := NewPreprocessor()

	result := p.Preprocess("SKILLS\nGo, Rust\n\nEDUCATION\nPhD")

	assert.Equal(t, "Go, Rust", result.SectionContent(SectionSkills))
	assert.Equal(t, "", result.SectionContent(SectionPublications))
	assert.Len(t, result.SectionsByType(SectionEducation), 1)
}

func TestPreprocess_EmptyInput(t *testing.T) {
	p := NewPreprocessor()

	result := p.Preprocess("")

	assert.Empty(t, result.Sections)
	assert.Empty(t, result.Lines)
	assert.Equal(t, 0, result.WordCount)
}

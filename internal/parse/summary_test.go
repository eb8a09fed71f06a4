package parse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSummaryParser_ShortTextLowConfidence(t *testing.T) {
	p := NewSummaryParser()

	result := p.Parse("Engineer with Go experience.")
	assert.Equal(t, 0.5, result.Confidence)
	assert.Equal(t, "Engineer with Go experience.", result.Text)
}

func TestSummaryParser_LongTextHighConfidence(t *testing.T) {
	p := NewSummaryParser()

	result := p.Parse("Seasoned backend engineer with a decade of experience building and operating distributed systems.")
	assert.Equal(t, 0.9, result.Confidence)
}

func TestSummaryParser_CapsAtOneThousandChars(t *testing.T) {
	p := NewSummaryParser()

	result := p.Parse(strings.Repeat("a", 2000))
	assert.LessOrEqual(t, len(result.Text), 1000)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestSummaryParser_CapKeepsValidUTF8(t *testing.T) {
	p := NewSummaryParser()

	// Odd byte offset so the 1000-byte cap lands inside a two-byte rune.
	result := p.Parse("x" + strings.Repeat("é", 600))
	assert.LessOrEqual(t, len(result.Text), 1000)
	assert.True(t, utf8.ValidString(result.Text))
}

func TestSummaryParser_CollapsesWhitespace(t *testing.T) {
	p := NewSummaryParser()

	result := p.Parse("Product   leader\nwith focus\n\non roadmap delivery.")
	assert.Equal(t, "Product leader with focus on roadmap delivery.", result.Text)
}

func TestSummaryParser_ThemeDetection(t *testing.T) {
	p := NewSummaryParser()

	result := p.Parse("Engineering director who designed and led machine learning teams for fintech products and owned the product roadmap.")

	assert.Contains(t, result.Themes, "leadership")
	assert.Contains(t, result.Themes, "technical")
	assert.Contains(t, result.Themes, "data_science")
	assert.Contains(t, result.Themes, "product")
	assert.Contains(t, result.Themes, "domain_finance")
	assert.NotContains(t, result.Themes, "domain_healthcare")
}

func TestSummaryParser_EmptyInput(t *testing.T) {
	p := NewSummaryParser()

	result := p.Parse("   ")
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Themes)
	assert.Equal(t, 0.0, result.Confidence)
}

package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SummaryParseResult is the output of the summary parser.
type SummaryParseResult struct {
	Text       string   `json:"text,omitempty"`
	Themes     []string `json:"themes,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Career themes in fixed order so detection output is stable.
var summaryThemes = []struct {
	theme    string
	keywords []string
}{
	{"leadership", []string{
		"led", "lead", "managed", "director", "head of", "team lead",
		"mentor", "coach", "supervised", "oversaw", "spearheaded",
	}},
	{"technical", []string{
		"engineer", "developer", "architect", "designed", "implemented",
		"built", "deployed", "optimized", "algorithm", "system",
	}},
	{"data_science", []string{
		"machine learning", "data science", "analytics", "model",
		"prediction", "deep learning", "nlp", "artificial intelligence",
	}},
	{"product", []string{
		"product", "roadmap", "strategy", "stakeholder", "requirements",
		"agile", "scrum", "sprint", "user stories",
	}},
	{"domain_finance", []string{
		"fintech", "banking", "trading", "financial", "investment",
		"capital markets", "risk management",
	}},
	{"domain_healthcare", []string{
		"healthcare", "medical", "clinical", "pharma", "biotech",
		"patient", "ehr", "hipaa",
	}},
}

var whitespaceRunRe = regexp.MustCompile(`\s+`)

const summaryMaxLen = 1000

// SummaryParser extracts the professional summary text and detects career
// themes mentioned in it.
type SummaryParser struct{}

func NewSummaryParser() *SummaryParser {
	return &SummaryParser{}
}

func (p *SummaryParser) Parse(sectionText string) SummaryParseResult {
	cleaned := whitespaceRunRe.ReplaceAllString(strings.TrimSpace(sectionText), " ")
	if cleaned == "" {
		return SummaryParseResult{}
	}
	cleaned = truncateRunes(cleaned, summaryMaxLen)

	confidence := 0.5
	if len(cleaned) > 50 {
		confidence = 0.9
	}

	return SummaryParseResult{
		Text:       cleaned,
		Themes:     detectThemes(cleaned),
		Confidence: confidence,
	}
}

// truncateRunes caps s at max bytes without splitting a multi-byte rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// detectThemes returns each theme with at least one whole-word keyword hit.
func detectThemes(text string) []string {
	lower := strings.ToLower(text)

	var detected []string
	for _, t := range summaryThemes {
		for _, kw := range t.keywords {
			if findWholeWord(lower, kw) >= 0 {
				detected = append(detected, t.theme)
				break
			}
		}
	}
	return detected
}

package audit

import (
	"regexp"
	"strings"
)

// Finding is one protected-attribute indicator located in text. Start/End
// are byte offsets so callers can redact the span.
type Finding struct {
	AttributeType string  `json:"attribute_type"`
	Indicator     string  `json:"indicator"`
	Confidence    float64 `json:"confidence"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
	Context       string  `json:"context,omitempty"`
}

// ScanResult is the outcome of scanning one document.
type ScanResult struct {
	HasProtectedAttributes bool      `json:"has_protected_attributes"`
	Findings               []Finding `json:"findings,omitempty"`
	RiskLevel              string    `json:"risk_level"` // "low", "medium", "high"
	Recommendations        []string  `json:"recommendations,omitempty"`
}

// AttributeTypes lists the distinct attribute types found, in first-seen
// order.
func (r *ScanResult) AttributeTypes() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range r.Findings {
		if !seen[f.AttributeType] {
			seen[f.AttributeType] = true
			out = append(out, f.AttributeType)
		}
	}
	return out
}

const (
	AttrGender        = "gender"
	AttrAge           = "age"
	AttrEthnicity     = "ethnicity"
	AttrReligion      = "religion"
	AttrDisability    = "disability"
	AttrMaritalStatus = "marital_status"
	AttrNationality   = "nationality"
)

type attributeCheck struct {
	attrType   string
	name       string
	confidence float64
	re         *regexp.Regexp
}

// Patterns run in a fixed order so findings are deterministic.
var attributeChecks = []attributeCheck{
	{AttrGender, "pronouns", 0.7, regexp.MustCompile(
		`(?i)\b(he|she|him|her|his|hers|himself|herself)\b`)},
	{AttrGender, "titles", 0.9, regexp.MustCompile(
		`(?i)\b(mr\.?|mrs\.?|ms\.?|miss|sir|madam)\b`)},
	{AttrGender, "gendered_terms", 0.9, regexp.MustCompile(
		`(?i)\b(wife|husband|mother|father|son|daughter|boyfriend|girlfriend|maternity|paternity)\b`)},

	{AttrAge, "birth_year", 0.8, regexp.MustCompile(
		`(?i)\b(born\s+(?:in\s+)?(?:19[4-9]\d|20[0-2]\d)|(?:19[4-9]\d|20[0-2]\d)\s*[-–]\s*(?:present|current|now))\b`)},
	{AttrAge, "graduation_year", 0.8, regexp.MustCompile(
		`(?i)\b(?:class\s+of|graduated?(?:\s+in)?)\s*['"]?(\d{2,4})\b`)},
	{AttrAge, "age_explicit", 0.95, regexp.MustCompile(
		`(?i)\b(\d{2})\s*(?:years?\s+old|y\.?o\.?|yrs?\s+old)\b`)},
	{AttrAge, "generational", 0.8, regexp.MustCompile(
		`(?i)\b(baby\s+boomer|gen\s*[xyz]|millennial|zoomer)\b`)},

	{AttrEthnicity, "explicit", 0.85, regexp.MustCompile(
		`(?i)\b(african|asian|caucasian|hispanic|latino|latina|latinx|native\s+american|pacific\s+islander|middle\s+eastern)\b`)},
	{AttrEthnicity, "national_origin", 0.85, regexp.MustCompile(
		`(?i)\b(native\s+of|originally\s+from|born\s+in)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)},

	{AttrReligion, "religious_terms", 0.8, regexp.MustCompile(
		`(?i)\b(christian|muslim|jewish|hindu|buddhist|sikh|catholic|protestant|orthodox|evangelical|church|mosque|synagogue|temple|pastor|rabbi|imam|priest|minister)\b`)},
	{AttrReligion, "religious_schools", 0.6, regexp.MustCompile(
		`(?i)\b(catholic\s+(?:university|college|school)|(?:university|college)\s+of\s+(?:notre\s+dame|brigham\s+young|liberty))\b`)},

	{AttrDisability, "explicit", 0.85, regexp.MustCompile(
		`(?i)\b(disabled?|disability|handicapped?|impaired?|wheelchair|blind|deaf|autism|adhd|dyslexia|chronic\s+(?:illness|condition|disease))\b`)},
	{AttrDisability, "accommodations", 0.85, regexp.MustCompile(
		`(?i)\b(reasonable\s+accommodation|ada\s+compliant|accessibility\s+needs)\b`)},

	{AttrMaritalStatus, "marital", 0.75, regexp.MustCompile(
		`(?i)\b(married|single|divorced|widowed|engaged|spouse|domestic\s+partner)\b`)},
	{AttrMaritalStatus, "children", 0.75, regexp.MustCompile(
		`(?i)\b(children|kids|parent|pregnant|expecting|parental\s+leave)\b`)},

	{AttrNationality, "citizenship", 0.8, regexp.MustCompile(
		`(?i)\b(citizen(?:ship)?|permanent\s+resident|green\s+card|visa\s+(?:status|holder|required)|work\s+authorization|h-?1b|opt|cpt)\b`)},
	{AttrNationality, "national_origin", 0.8, regexp.MustCompile(
		`(?i)\b(foreign|immigrant|expat|expatriate|international\s+(?:student|worker))\b`)},
}

var quoteIndicators = []string{`"`, `'`, "said", "stated", "according to"}

// Recommendations per attribute type, emitted once each.
var attributeRecommendations = map[string]string{
	AttrGender:        "Consider removing gender-specific pronouns or titles from evaluation",
	AttrAge:           "Age-related information detected. Focus on qualifications and experience rather than years since graduation",
	AttrEthnicity:     "Ethnicity/race indicators found. Ensure evaluation is based solely on job-relevant qualifications",
	AttrReligion:      "Religious affiliation indicators detected. This should not factor into hiring decisions",
	AttrDisability:    "Disability-related information found. Focus on candidate's ability to perform essential job functions",
	AttrMaritalStatus: "Family/marital status indicators detected. These should not influence hiring decisions",
	AttrNationality:   "Nationality/citizenship indicators found. Verify only legal work authorization requirements",
}

// ProtectedScanner locates protected-attribute indicators in resume text so
// reviewers can redact or discount them before evaluation.
type ProtectedScanner struct{}

func NewProtectedScanner() *ProtectedScanner {
	return &ProtectedScanner{}
}

// Scan runs every attribute pattern over the text.
func (s *ProtectedScanner) Scan(text string) *ScanResult {
	result := &ScanResult{RiskLevel: "low"}
	if text == "" {
		return result
	}

	for _, check := range attributeChecks {
		for _, loc := range check.re.FindAllStringIndex(text, -1) {
			// Pronouns inside quoted material (testimonials and the like)
			// are not about the candidate.
			if check.name == "pronouns" && inQuoteContext(text, loc[0], loc[1]) {
				continue
			}
			result.Findings = append(result.Findings, Finding{
				AttributeType: check.attrType,
				Indicator:     text[loc[0]:loc[1]],
				Confidence:    check.confidence,
				Start:         loc[0],
				End:           loc[1],
				Context:       surrounding(text, loc[0], loc[1], 30),
			})
		}
	}

	result.HasProtectedAttributes = len(result.Findings) > 0
	result.RiskLevel = riskLevel(result.Findings)
	result.Recommendations = recommendations(result.Findings)
	return result
}

func inQuoteContext(text string, start, end int) bool {
	context := strings.ToLower(surrounding(text, start, end, 50))
	for _, ind := range quoteIndicators {
		if strings.Contains(context, ind) {
			return true
		}
	}
	return false
}

func surrounding(text string, start, end, window int) string {
	from := start - window
	if from < 0 {
		from = 0
	}
	to := end + window
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}

var highRiskTypes = map[string]bool{
	AttrEthnicity:  true,
	AttrReligion:   true,
	AttrDisability: true,
}

func riskLevel(findings []Finding) string {
	if len(findings) == 0 {
		return "low"
	}

	highRisk := 0
	types := map[string]bool{}
	confSum := 0.0
	for _, f := range findings {
		if highRiskTypes[f.AttributeType] {
			highRisk++
		}
		types[f.AttributeType] = true
		confSum += f.Confidence
	}
	avgConf := confSum / float64(len(findings))

	switch {
	case highRisk >= 2 || len(types) >= 4 || avgConf > 0.9:
		return "high"
	case highRisk >= 1 || len(types) >= 2 || avgConf > 0.7:
		return "medium"
	default:
		return "low"
	}
}

func recommendations(findings []Finding) []string {
	if len(findings) == 0 {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	for _, f := range findings {
		if seen[f.AttributeType] {
			continue
		}
		seen[f.AttributeType] = true
		if rec, ok := attributeRecommendations[f.AttributeType]; ok {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		out = append(out, "Protected attributes detected. Review to ensure fair evaluation")
	}
	return out
}

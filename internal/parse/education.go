package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ExtractedEducation is one education entry.
type ExtractedEducation struct {
	Degree             string     `json:"degree,omitempty"`
	DegreeLevel        string     `json:"degree_level,omitempty"`
	FieldOfStudy       string     `json:"field_of_study,omitempty"`
	Institution        string     `json:"institution,omitempty"`
	Location           string     `json:"location,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	GraduationDate     *time.Time `json:"graduation_date,omitempty"`
	GPA                float64    `json:"gpa,omitempty"`
	Honors             string     `json:"honors,omitempty"`
	RelevantCoursework []string   `json:"relevant_coursework,omitempty"`
	Confidence         float64    `json:"confidence"`
}

// EducationParseResult is the output of the education parser. Entries are
// ordered most recent graduation first.
type EducationParseResult struct {
	Education    []ExtractedEducation `json:"education"`
	HighestLevel string               `json:"highest_level,omitempty"`
	Confidence   float64              `json:"confidence"`
}

// EducationLevelRank orders degree levels for highest-level selection and
// for minimum-education matching.
var EducationLevelRank = map[string]int{
	"high school": 1,
	"diploma":     2,
	"associate":   3,
	"bachelor":    4,
	"master":      5,
	"mba":         5,
	"phd":         6,
	"doctorate":   6,
}

type degreeLevel struct {
	level    string
	keyword  []*regexp.Regexp
	fullForm []*regexp.Regexp
}

// degreeLevels is checked in order so "phd" outranks the looser "master"
// and "bachelor" abbreviation patterns.
var degreeLevels = buildDegreeLevels()

func buildDegreeLevels() []degreeLevel {
	sources := []struct {
		level    string
		patterns []string
	}{
		{"phd", []string{
			`ph\.?d\.?`, `doctor(?:ate)?(?:\s+of)?\s+philosophy`,
			`d\.?phil\.?`, `doctorate`,
		}},
		{"master", []string{
			`master(?:'?s)?(?:\s+of)?`, `m\.?s\.?(?:\s|$)`, `m\.?a\.?(?:\s|$)`,
			`m\.?b\.?a\.?`, `m\.?eng\.?`, `m\.?sc\.?`, `m\.?ed\.?`,
			`mba`, `msc`, `ma(?:\s|$)`,
		}},
		{"bachelor", []string{
			`bachelor(?:'?s)?(?:\s+of)?`, `b\.?s\.?(?:\s|$)`, `b\.?a\.?(?:\s|$)`,
			`b\.?eng\.?`, `b\.?sc\.?`, `b\.?tech\.?`, `b\.?e\.?(?:\s|$)`,
			`bsc`, `ba(?:\s|$)`, `bs(?:\s|$)`,
		}},
		{"associate", []string{
			`associate(?:'?s)?(?:\s+of)?`, `a\.?s\.?(?:\s|$)`, `a\.?a\.?(?:\s|$)`,
		}},
		{"diploma", []string{`diploma`, `certificate`, `certification`}},
		{"high school", []string{`high\s*school`, `secondary\s*school`, `ged`}},
	}

	out := make([]degreeLevel, 0, len(sources))
	for _, src := range sources {
		dl := degreeLevel{level: src.level}
		for _, p := range src.patterns {
			dl.keyword = append(dl.keyword, regexp.MustCompile(`(?i)`+p))
			dl.fullForm = append(dl.fullForm, regexp.MustCompile(
				`(?i)(?:`+p+`)\s+(?:of\s+)?[A-Za-z\s]+?(?:\s+in\s+[A-Za-z\s]+)?(?:[,.\n]|$)`))
		}
		out = append(out, dl)
	}
	return out
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

var fieldsOfStudy = []string{
	"computer science", "software engineering", "information technology",
	"data science", "artificial intelligence", "machine learning",
	"electrical engineering", "mechanical engineering", "civil engineering",
	"chemical engineering", "biomedical engineering", "aerospace engineering",
	"business administration", "finance", "accounting", "economics",
	"marketing", "management", "human resources", "operations",
	"mathematics", "statistics", "physics", "chemistry", "biology",
	"psychology", "sociology", "political science", "communications",
	"english", "history", "philosophy", "art", "music",
	"medicine", "nursing", "pharmacy", "public health",
	"law", "education", "architecture", "design",
	"information systems", "cybersecurity", "network engineering",
}

var institutionIndicators = []string{
	"university", "college", "institute", "school", "academy",
	"polytechnic", "conservatory",
}

var (
	gpaRe = regexp.MustCompile(`(?i)(?:gpa|grade\s*point\s*average|cumulative)[:\s]*(\d+\.?\d*)\s*(?:/\s*(\d+\.?\d*))?`)

	honorsRes = compileAll(
		`summa\s*cum\s*laude`,
		`magna\s*cum\s*laude`,
		`cum\s*laude`,
		`with\s*(?:highest\s+)?honors?`,
		`dean'?s?\s*list`,
		`valedictorian`,
		`salutatorian`,
		`first\s*class\s*honors?`,
		`distinction`,
	)

	expectedGradRe  = regexp.MustCompile(`(?i)expected\s+(?:graduation\s+)?(\d{4})`)
	fieldInRe       = regexp.MustCompile(`(?:in|of)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3})`)
	courseworkRe    = regexp.MustCompile(`(?is)(?:relevant\s+)?coursework[:\s]+(.+?)(?:\n\n|\n[A-Z]|$)`)
	courseSplitRe   = regexp.MustCompile(`[,;|•\n]`)
	trailingOpenRe  = regexp.MustCompile(`(?i)\s*[-–—|,]\s*(?:present|current|expected).*$`)
	numericMonthRe2 = regexp.MustCompile(`^(\d{1,2})[/\-](\d{4})$`)
)

// EducationParser extracts degrees, institutions, graduation dates, GPA and
// honors from the education section, or the full text when absent.
type EducationParser struct{}

func NewEducationParser() *EducationParser {
	return &EducationParser{}
}

func (p *EducationParser) Parse(text, educationSection string) EducationParseResult {
	source := educationSection
	if strings.TrimSpace(source) == "" {
		source = text
	}

	var entries []ExtractedEducation
	for _, block := range splitEducationBlocks(source) {
		entry := parseEducationBlock(block)
		if entry.Degree == "" && entry.Institution == "" {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return gradDate(entries[i]).After(gradDate(entries[j]))
	})

	confidence := 0.0
	if len(entries) > 0 {
		sum := 0.0
		for _, e := range entries {
			sum += e.Confidence
		}
		confidence = round2(sum / float64(len(entries)))
	}

	return EducationParseResult{
		Education:    entries,
		HighestLevel: highestEducationLevel(entries),
		Confidence:   confidence,
	}
}

func gradDate(e ExtractedEducation) time.Time {
	if e.GraduationDate != nil {
		return *e.GraduationDate
	}
	return time.Time{}
}

func splitEducationBlocks(text string) []string {
	lines := strings.Split(text, "\n")

	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		if len(current) > 0 && isEducationHeader(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

func isEducationHeader(line string) bool {
	for _, dl := range degreeLevels {
		for _, re := range dl.keyword {
			if re.MatchString(line) {
				return true
			}
		}
	}
	return containsAnyFold(line, institutionIndicators)
}

func parseEducationBlock(block string) ExtractedEducation {
	entry := ExtractedEducation{}

	entry.Degree, entry.DegreeLevel = extractDegree(block)
	entry.FieldOfStudy = extractFieldOfStudy(block)
	entry.Institution = extractInstitution(block)

	extractEducationDates(block, &entry)
	entry.GPA = extractGPA(block)
	entry.Honors = extractHonors(block)

	if m := cityStateRe.FindStringSubmatch(block); m != nil {
		entry.Location = m[1] + ", " + m[2]
	}

	entry.RelevantCoursework = extractCoursework(block)
	entry.Confidence = educationConfidence(&entry)
	return entry
}

// extractDegree returns the degree text and its level, trying to capture
// the full phrase ("Bachelor of Science in ...") rather than just the
// matched keyword.
func extractDegree(block string) (degree, level string) {
	for _, dl := range degreeLevels {
		for i, re := range dl.keyword {
			m := re.FindString(block)
			if m == "" {
				continue
			}
			if fm := dl.fullForm[i].FindString(block); fm != "" {
				return strings.Trim(fm, " ,.\n"), dl.level
			}
			return strings.TrimSpace(m), dl.level
		}
	}
	return "", ""
}

func extractFieldOfStudy(block string) string {
	lower := strings.ToLower(block)
	for _, field := range fieldsOfStudy {
		idx := strings.Index(lower, field)
		if idx >= 0 {
			return block[idx : idx+len(field)]
		}
	}
	if m := fieldInRe.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return ""
}

func extractInstitution(block string) string {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !containsAnyFold(line, institutionIndicators) {
			continue
		}
		clean := dateRe.ReplaceAllString(line, "")
		clean = trailingOpenRe.ReplaceAllString(clean, "")
		clean = strings.Trim(clean, " ,.-–—|")
		if len(clean) > 3 {
			return clean
		}
	}
	return ""
}

// extractEducationDates treats a lone date as the graduation date; month
// defaults to May when only a year is given, the common graduation month.
func extractEducationDates(block string, entry *ExtractedEducation) {
	dates := dateRe.FindAllString(block, -1)
	switch {
	case len(dates) >= 2:
		entry.StartDate = parseGradDate(dates[0])
		entry.GraduationDate = parseGradDate(dates[1])
		return
	case len(dates) == 1:
		entry.GraduationDate = parseGradDate(dates[0])
		return
	}

	if m := expectedGradRe.FindStringSubmatch(block); m != nil {
		if t := parseGradDate(m[1]); t != nil {
			entry.GraduationDate = t
		}
	}
}

// parseGradDate is parseLooseDate with a May default month.
func parseGradDate(s string) *time.Time {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}

	month := time.May
	for i, name := range monthNames {
		if strings.Contains(s, name) {
			month = time.Month(i%12 + 1)
			break
		}
	}
	if m := numericMonthRe2.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 12 {
			month = time.Month(n)
		}
	}

	yearStr := yearRe.FindString(s)
	if yearStr == "" {
		return nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil
	}

	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// extractGPA rescales to a 4.0 scale when the resume states a larger one.
func extractGPA(block string) float64 {
	m := gpaRe.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	gpa, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	scale := 4.0
	if m[2] != "" {
		if scale, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0
		}
	}
	if scale > 4.0 {
		gpa = gpa / scale * 4.0
	}
	if gpa < 0 || gpa > 4.0 {
		return 0
	}
	return round2(gpa)
}

func extractHonors(block string) string {
	for _, re := range honorsRes {
		if m := re.FindString(block); m != "" {
			return m
		}
	}
	return ""
}

func extractCoursework(block string) []string {
	m := courseworkRe.FindStringSubmatch(block)
	if m == nil {
		return nil
	}

	var coursework []string
	for _, course := range courseSplitRe.Split(m[1], -1) {
		course = strings.TrimSpace(course)
		if len(course) > 3 && len(course) < 100 {
			coursework = append(coursework, course)
		}
		if len(coursework) == 10 {
			break
		}
	}
	return coursework
}

func highestEducationLevel(entries []ExtractedEducation) string {
	best := 0
	name := ""
	for _, e := range entries {
		if rank := EducationLevelRank[e.DegreeLevel]; rank > best {
			best = rank
			name = e.DegreeLevel
		}
	}
	return name
}

// educationConfidence: degree 0.3, institution 0.3, field 0.15, graduation
// date 0.15, GPA 0.05, honors 0.05.
func educationConfidence(entry *ExtractedEducation) float64 {
	score := 0.0
	if entry.Degree != "" || entry.DegreeLevel != "" {
		score += 0.3
	}
	if entry.Institution != "" {
		score += 0.3
	}
	if entry.FieldOfStudy != "" {
		score += 0.15
	}
	if entry.GraduationDate != nil {
		score += 0.15
	}
	if entry.GPA > 0 {
		score += 0.05
	}
	if entry.Honors != "" {
		score += 0.05
	}
	if score > 1.0 {
		score = 1.0
	}
	return round2(score)
}

package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// JDParseResult is the output of job-description parsing.
type JDParseResult struct {
	RawText string `json:"raw_text,omitempty"`

	Title            string   `json:"title,omitempty"`
	CompanyName      string   `json:"company_name,omitempty"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`

	RequiredSkills       []string `json:"required_skills,omitempty"`
	PreferredSkills      []string `json:"preferred_skills,omitempty"`
	ExperienceYearsMin   float64  `json:"experience_years_min,omitempty"`
	ExperienceYearsMax   float64  `json:"experience_years_max,omitempty"`
	HasExperienceMin     bool     `json:"has_experience_min"`
	HasExperienceMax     bool     `json:"has_experience_max"`
	EducationRequirement string   `json:"education_requirement,omitempty"`

	EmploymentType  string `json:"employment_type,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	Location        string `json:"location,omitempty"`

	Confidence float64  `json:"confidence"`
	Warnings   []string `json:"warnings,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Success reports whether the parse yielded anything usable: no errors and
// at least a title or some required skills.
func (r *JDParseResult) Success() bool {
	return len(r.Errors) == 0 && (r.Title != "" || len(r.RequiredSkills) > 0)
}

// AllSkills returns required and preferred skills as one deduplicated list.
func (r *JDParseResult) AllSkills() []string {
	seen := make(map[string]bool, len(r.RequiredSkills)+len(r.PreferredSkills))
	var out []string
	for _, s := range r.RequiredSkills {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range r.PreferredSkills {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

type jdSection string

const (
	jdResponsibilities jdSection = "responsibilities"
	jdRequirements     jdSection = "requirements"
	jdPreferred        jdSection = "preferred"
	jdBenefits         jdSection = "benefits"
)

// Section patterns are ordered so the preferred-section patterns are tried
// before the looser requirements ones can shadow them.
var jdSectionPatterns = []struct {
	section  jdSection
	patterns []*regexp.Regexp
}{
	{jdResponsibilities, compileAll(
		`responsibilities?\s*[:|-]?`,
		`what\s+you['’]?ll\s+do`,
		`duties?\s*[:|-]?`,
		`role\s+responsibilities`,
		`key\s+responsibilities`,
		`your\s+responsibilities`,
	)},
	{jdRequirements, compileAll(
		`requirements?\s*[:|-]?`,
		`qualifications?\s*[:|-]?`,
		`what\s+you['’]?ll\s+need`,
		`what\s+we['’]?re\s+looking\s+for`,
		`must\s+have`,
		`required\s+skills?`,
		`minimum\s+qualifications?`,
	)},
	{jdPreferred, compileAll(
		`preferred\s+qualifications?`,
		`nice\s+to\s+have`,
		`bonus\s+points?`,
		`preferred\s+skills?`,
		`desired\s+qualifications?`,
	)},
	{jdBenefits, compileAll(
		`benefits?\s*[:|-]?`,
		`what\s+we\s+offer`,
		`perks?\s*[:|-]?`,
		`compensation`,
	)},
}

// The range pattern goes first; a "3-5 years of experience" phrase also
// satisfies the single-year pattern via its upper bound.
var jdExperienceRes = compileAll(
	`(\d+)\s*[-–]\s*(\d+)\s*(?:years?|yrs?)\s*(?:of)?\s*experience`,
	`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of)?\s*(?:relevant|professional|industry|work)?\s*experience`,
	`minimum\s*(?:of)?\s*(\d+)\s*(?:years?|yrs?)`,
	`at\s+least\s+(\d+)\s*(?:years?|yrs?)`,
	`(\d+)\s*(?:years?|yrs?)\s*(?:or\s+more|minimum)`,
)

var employmentKeywords = []struct {
	empType  string
	keywords []string
}{
	{"full_time", []string{"full-time", "full time", "permanent", "regular"}},
	{"part_time", []string{"part-time", "part time"}},
	{"contract", []string{"contract", "contractor", "consulting"}},
	{"internship", []string{"intern", "internship", "trainee", "co-op", "coop"}},
	{"temporary", []string{"temporary", "temp"}},
	{"freelance", []string{"freelance", "freelancer"}},
}

var experienceLevelKeywords = []struct {
	level    string
	keywords []string
}{
	{"entry", []string{"entry level", "entry-level", "junior", "fresher", "graduate", "0-2 years"}},
	{"mid", []string{"mid level", "mid-level", "intermediate", "2-5 years", "3-5 years"}},
	{"senior", []string{"senior", "sr.", "experienced", "5+ years", "5-10 years"}},
	{"lead", []string{"lead", "principal", "staff", "10+ years"}},
	{"executive", []string{"executive", "director", "vp", "c-level", "cto", "cio"}},
}

var (
	jdTitleRes = compileAll(
		`job\s*title\s*[:|-]?\s*(.+)`,
		`position\s*[:|-]?\s*(.+)`,
		`role\s*[:|-]?\s*(.+)`,
		`hiring\s*[:|-]?\s*(.+)`,
	)
	jdCompanyRes = compileAll(
		`company\s*[:|-]?\s*(.+)`,
		`organization\s*[:|-]?\s*(.+)`,
		`employer\s*[:|-]?\s*(.+)`,
		`about\s+(.+?)(?:\n|$)`,
	)
	jdLocationRes = compileAll(
		`location\s*[:|-]?\s*(.+?)(?:\n|$)`,
		`based\s+(?:in|at)\s+(.+?)(?:\n|$|,)`,
		`work\s+(?:from|in)\s+(.+?)(?:\n|$|,)`,
	)
	jdRemoteRe      = regexp.MustCompile(`(?i)\b(remote|work\s+from\s+home|wfh)\b`)
	jdLeadingDateRe = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	jdBulletSplitRe = regexp.MustCompile(`[\n•●◦○▪▸►\-*]|\d+[.)]`)
	jdDegreeRe      = regexp.MustCompile(`(?i)(bachelor'?s?|master'?s?|phd|doctorate|mba|b\.?s\.?|m\.?s\.?|b\.?a\.?|m\.?a\.?)\s*(degree|in|of)?`)
)

// JDParser extracts structured requirements from job-description text.
type JDParser struct {
	skills *SkillsParser
}

func NewJDParser(skills *SkillsParser) *JDParser {
	if skills == nil {
		skills = NewSkillsParser()
	}
	return &JDParser{skills: skills}
}

// ParseText parses a job description. Empty input yields an empty result
// with zero confidence, never an error.
func (p *JDParser) ParseText(text string) JDParseResult {
	result := JDParseResult{RawText: text}
	if strings.TrimSpace(text) == "" {
		return result
	}

	result.Title = extractJDTitle(text)
	result.CompanyName = extractJDCompany(text)

	sections := detectJDSections(text)

	if s := sections[jdResponsibilities]; s != "" {
		result.Responsibilities = extractBulletPoints(s)
	}
	if s := sections[jdRequirements]; s != "" {
		result.Qualifications = extractBulletPoints(s)
	}

	result.RequiredSkills, result.PreferredSkills = p.extractJDSkills(
		text, sections[jdRequirements], sections[jdPreferred])

	extractJDExperience(text, &result)
	result.EducationRequirement = extractJDEducation(text)
	result.EmploymentType = detectEmploymentType(text)
	result.ExperienceLevel = detectExperienceLevel(text, &result)
	result.Location = extractJDLocation(text)
	result.Description = buildJDDescription(text, sections)
	result.Confidence = jdConfidence(&result)

	return result
}

func extractJDTitle(text string) string {
	for _, re := range jdTitleRes {
		if m := re.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[1])
			if len(title) < 100 {
				return title
			}
		}
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	limit := min(5, len(lines))
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) > 3 && len(line) < 100 && !strings.HasSuffix(line, ":") &&
			!jdLeadingDateRe.MatchString(line) {
			return line
		}
	}

	return "Unknown Position"
}

func extractJDCompany(text string) string {
	for _, re := range jdCompanyRes {
		if m := re.FindStringSubmatch(text); m != nil {
			company := strings.TrimSpace(m[1])
			if i := strings.IndexByte(company, '\n'); i >= 0 {
				company = company[:i]
			}
			if len(company) > 50 {
				company = company[:50]
			}
			if company != "" {
				return company
			}
		}
	}
	return "Unknown Company"
}

// detectJDSections slices the text between section headings. A section runs
// from its heading to the nearest following heading of another kind.
func detectJDSections(text string) map[jdSection]string {
	sections := make(map[jdSection]string)

	for _, sp := range jdSectionPatterns {
		for _, re := range sp.patterns {
			loc := re.FindStringIndex(text)
			if loc == nil {
				continue
			}
			start := loc[1]
			end := len(text)
			for _, other := range jdSectionPatterns {
				if other.section == sp.section {
					continue
				}
				for _, otherRe := range other.patterns {
					if otherLoc := otherRe.FindStringIndex(text[start:]); otherLoc != nil {
						if start+otherLoc[0] < end {
							end = start + otherLoc[0]
						}
					}
				}
			}
			sections[sp.section] = strings.TrimSpace(text[start:end])
			break
		}
	}

	return sections
}

func extractBulletPoints(text string) []string {
	var points []string
	for _, line := range jdBulletSplitRe.Split(text, -1) {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			points = append(points, line)
		}
		if len(points) == 20 {
			break
		}
	}
	return points
}

// extractJDSkills buckets skills: requirements section to required,
// preferred section to preferred, full-text extras to required. A skill
// found in both buckets is required.
func (p *JDParser) extractJDSkills(fullText, requirements, preferred string) (required, preferredOut []string) {
	requiredSet := map[string]bool{}
	preferredSet := map[string]bool{}

	if requirements != "" {
		for _, s := range p.skills.Parse(requirements, requirements).Skills {
			name := strings.ToLower(s.Name)
			if !requiredSet[name] {
				requiredSet[name] = true
				required = append(required, name)
			}
		}
	}

	if preferred != "" {
		for _, s := range p.skills.Parse(preferred, preferred).Skills {
			name := strings.ToLower(s.Name)
			if !preferredSet[name] {
				preferredSet[name] = true
			}
		}
	}

	for _, s := range p.skills.Parse(fullText, "").Skills {
		name := strings.ToLower(s.Name)
		if !requiredSet[name] && !preferredSet[name] {
			requiredSet[name] = true
			required = append(required, name)
		}
	}

	for name := range preferredSet {
		if !requiredSet[name] {
			preferredOut = append(preferredOut, name)
		}
	}
	// Stable output order for the preferred set.
	sort.Strings(preferredOut)

	return required, preferredOut
}

func extractJDExperience(text string, result *JDParseResult) {
	for _, re := range jdExperienceRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) == 3 && m[2] != "" {
			lo, _ := strconv.Atoi(m[1])
			hi, _ := strconv.Atoi(m[2])
			result.ExperienceYearsMin = float64(lo)
			result.ExperienceYearsMax = float64(hi)
			result.HasExperienceMin = true
			result.HasExperienceMax = true
			return
		}
		if m[1] != "" {
			lo, _ := strconv.Atoi(m[1])
			result.ExperienceYearsMin = float64(lo)
			result.HasExperienceMin = true
			return
		}
	}
}

// Highest level first so "PhD required" never reports "Bachelor's".
var jdEducationChecks = buildJDEducationChecks()

type jdEducationCheck struct {
	keyword    string
	level      string
	requiredRe *regexp.Regexp
}

func buildJDEducationChecks() []jdEducationCheck {
	pairs := []struct{ keyword, level string }{
		{"phd", "PhD"},
		{"doctorate", "Doctorate"},
		{"master", "Master's"},
		{"mba", "MBA"},
		{"bachelor", "Bachelor's"},
		{"associate", "Associate"},
		{"diploma", "Diploma"},
	}
	out := make([]jdEducationCheck, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, jdEducationCheck{
			keyword: p.keyword,
			level:   p.level,
			requiredRe: regexp.MustCompile(
				`(require|must\s+have|need|minimum).*` + p.keyword +
					`|` + p.keyword + `.*(required|needed|preferred)`),
		})
	}
	return out
}

func extractJDEducation(text string) string {
	lower := strings.ToLower(text)

	for _, check := range jdEducationChecks {
		if !strings.Contains(lower, check.keyword) {
			continue
		}
		if check.requiredRe.MatchString(lower) {
			return check.level
		}
	}

	if m := jdDegreeRe.FindStringSubmatch(lower); m != nil {
		degree := m[1]
		switch {
		case strings.Contains(degree, "bachelor") || strings.Contains(degree, "b."):
			return "Bachelor's"
		case strings.Contains(degree, "master") || strings.Contains(degree, "m."):
			return "Master's"
		case strings.Contains(degree, "phd") || strings.Contains(degree, "doctor"):
			return "PhD"
		case strings.Contains(degree, "mba"):
			return "MBA"
		}
	}

	return ""
}

func detectEmploymentType(text string) string {
	lower := strings.ToLower(text)
	for _, et := range employmentKeywords {
		for _, kw := range et.keywords {
			if strings.Contains(lower, kw) {
				return et.empType
			}
		}
	}
	return "full_time"
}

func detectExperienceLevel(text string, result *JDParseResult) string {
	lower := strings.ToLower(text)
	for _, lvl := range experienceLevelKeywords {
		for _, kw := range lvl.keywords {
			if strings.Contains(lower, kw) {
				return lvl.level
			}
		}
	}

	if result.HasExperienceMin {
		switch {
		case result.ExperienceYearsMin <= 2:
			return "entry"
		case result.ExperienceYearsMin <= 5:
			return "mid"
		case result.ExperienceYearsMin <= 10:
			return "senior"
		default:
			return "lead"
		}
	}

	return "mid"
}

func extractJDLocation(text string) string {
	for _, re := range jdLocationRes {
		if m := re.FindStringSubmatch(text); m != nil {
			location := strings.TrimSpace(m[1])
			if len(location) < 100 {
				return location
			}
		}
	}
	if jdRemoteRe.MatchString(text) {
		return "Remote"
	}
	return ""
}

// buildJDDescription takes the preamble text before the first detected
// section, dropping the title line.
func buildJDDescription(text string, sections map[jdSection]string) string {
	firstSectionStart := len(text)
	for _, content := range sections {
		if content == "" {
			continue
		}
		probe := content
		if len(probe) > 50 {
			probe = probe[:50]
		}
		if idx := strings.Index(text, probe); idx >= 0 && idx < firstSectionStart {
			firstSectionStart = idx
		}
	}

	description := strings.TrimSpace(text[:firstSectionStart])
	if lines := strings.SplitN(description, "\n", 2); len(lines) > 1 {
		description = strings.TrimSpace(lines[1])
	}

	if description == "" {
		if len(text) > 500 {
			return text[:500]
		}
		return text
	}
	if len(description) > 2000 {
		description = description[:2000]
	}
	return description
}

// jdConfidence: title 0.2, required skills up to 0.3 (full credit at 5),
// experience minimum 0.15, education 0.1, responsibilities 0.15,
// qualifications 0.1. Capped at 1.0.
func jdConfidence(result *JDParseResult) float64 {
	score := 0.0

	if result.Title != "" && result.Title != "Unknown Position" {
		score += 0.2
	}
	if n := len(result.RequiredSkills); n > 0 {
		frac := float64(n) / 5
		if frac > 1 {
			frac = 1
		}
		score += 0.3 * frac
	}
	if result.HasExperienceMin {
		score += 0.15
	}
	if result.EducationRequirement != "" {
		score += 0.1
	}
	if len(result.Responsibilities) > 0 {
		score += 0.15
	}
	if len(result.Qualifications) > 0 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return round2(score)
}

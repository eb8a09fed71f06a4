package parse

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// ExtractedExperience is one work history entry.
type ExtractedExperience struct {
	JobTitle         string     `json:"job_title,omitempty"`
	CompanyName      string     `json:"company_name,omitempty"`
	Location         string     `json:"location,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsCurrent        bool       `json:"is_current"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Achievements     []string   `json:"achievements,omitempty"`
	Confidence       float64    `json:"confidence"`
}

// ExperienceParseResult is the output of the experience parser. Entries are
// ordered most recent first.
type ExperienceParseResult struct {
	Experiences []ExtractedExperience `json:"experiences"`
	TotalYears  float64               `json:"total_years"`
	Confidence  float64               `json:"confidence"`
}

var jobTitleKeywords = []string{
	"engineer", "developer", "manager", "director", "analyst",
	"consultant", "architect", "designer", "specialist", "coordinator",
	"administrator", "lead", "head", "chief", "officer", "president",
	"vp", "vice president", "intern", "associate", "senior", "junior",
	"principal", "staff", "scientist", "researcher", "technician",
	"supervisor", "executive", "founder", "owner", "freelance",
	"contractor",
}

var companyIndicators = []string{
	"inc", "inc.", "llc", "ltd", "ltd.", "corp", "corp.", "corporation",
	"company", "co.", "group", "technologies", "solutions", "systems",
	"software", "labs", "consulting", "partners",
}

var achievementIndicators = []string{
	"achieved", "improved", "increased", "decreased", "reduced",
	"saved", "delivered", "launched", "led", "managed", "built",
	"created", "developed", "designed", "implemented", "optimized",
	"awarded", "won", "exceeded", "grew", "generated",
	"%", "$",
}

var (
	bulletRe       = regexp.MustCompile(`^\s*[•\-*‣◦⁃∙]\s*`)
	presentTokenRe = regexp.MustCompile(`(?i)\b(?:present|current|now|ongoing)\b`)
)

// ExperienceParser extracts the work history from the experience section,
// or from the whole text when no section was detected.
type ExperienceParser struct{}

func NewExperienceParser() *ExperienceParser {
	return &ExperienceParser{}
}

func (p *ExperienceParser) Parse(text, experienceSection string) ExperienceParseResult {
	source := experienceSection
	if strings.TrimSpace(source) == "" {
		source = text
	}

	var experiences []ExtractedExperience
	for _, block := range splitExperienceBlocks(source) {
		entry := parseExperienceBlock(block)
		if entry.JobTitle == "" && entry.CompanyName == "" && entry.StartDate == nil {
			continue
		}
		experiences = append(experiences, entry)
	}

	// Most recent first; undated entries sink to the bottom.
	sort.SliceStable(experiences, func(i, j int) bool {
		return entryStart(experiences[i]).After(entryStart(experiences[j]))
	})

	confidence := 0.0
	if len(experiences) > 0 {
		sum := 0.0
		for _, e := range experiences {
			sum += e.Confidence
		}
		confidence = round2(sum / float64(len(experiences)))
	}

	return ExperienceParseResult{
		Experiences: experiences,
		TotalYears:  totalYears(experiences),
		Confidence:  confidence,
	}
}

func entryStart(e ExtractedExperience) time.Time {
	if e.StartDate != nil {
		return *e.StartDate
	}
	return time.Time{}
}

// splitExperienceBlocks groups lines into entries. A new entry begins at a
// blank-line boundary or at a line that looks like an entry header.
func splitExperienceBlocks(text string) [][]string {
	lines := strings.Split(text, "\n")

	var blocks [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		if len(current) > 0 && isEntryHeader(line, nextNonEmpty(lines, i+1)) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

func nextNonEmpty(lines []string, from int) string {
	for _, raw := range lines[min(from, len(lines)):] {
		if line := strings.TrimSpace(raw); line != "" {
			return line
		}
	}
	return ""
}

// isEntryHeader marks the start of a new position: either the line carries a
// date range itself, or it is a short title line corroborated by a
// date or company on the next line.
func isEntryHeader(line, nextLine string) bool {
	if bulletRe.MatchString(line) {
		return false
	}
	if dateRangeRe.MatchString(line) {
		return true
	}
	if len(line) >= 100 {
		return false
	}
	if !containsAnyFold(line, jobTitleKeywords) {
		return false
	}
	return dateRe.MatchString(nextLine) || looksLikeCompany(nextLine)
}

func looksLikeCompany(line string) bool {
	return containsAnyFold(line, companyIndicators)
}

func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func parseExperienceBlock(block []string) ExtractedExperience {
	entry := ExtractedExperience{}
	blockText := strings.Join(block, "\n")

	extractEntryDates(blockText, &entry)
	extractTitleAndCompany(block, &entry)
	extractEntryLocation(block, &entry)
	extractBullets(block, &entry)

	entry.Confidence = experienceConfidence(&entry)
	return entry
}

// extractEntryDates prefers an explicit range, then two loose dates, then a
// single loose date which is treated as an ongoing position.
func extractEntryDates(blockText string, entry *ExtractedExperience) {
	if m := dateRangeRe.FindStringSubmatch(blockText); m != nil {
		entry.StartDate = parseLooseDate(m[1])
		if end := parseLooseDate(m[2]); end != nil {
			entry.EndDate = end
		} else {
			entry.IsCurrent = true
		}
		return
	}

	dates := dateRe.FindAllString(blockText, -1)
	switch {
	case len(dates) >= 2:
		first := parseLooseDate(dates[0])
		second := parseLooseDate(dates[1])
		if first != nil && second != nil && second.Before(*first) {
			first, second = second, first
		}
		entry.StartDate = first
		entry.EndDate = second
	case len(dates) == 1:
		entry.StartDate = parseLooseDate(dates[0])
		entry.IsCurrent = true
	}
}

// stripDateNoise removes whole range expressions before individual dates so
// "Engineer | Jan 2020 - Present" loses the range, not just its endpoints,
// then sweeps leftover present-style tokens.
func stripDateNoise(line string) string {
	cleaned := dateRangeRe.ReplaceAllString(line, "")
	cleaned = dateRe.ReplaceAllString(cleaned, "")
	cleaned = presentTokenRe.ReplaceAllString(cleaned, "")
	return strings.Trim(cleaned, " -–—|,")
}

// extractTitleAndCompany scans the first three lines. Titles carry a job
// keyword, companies a legal suffix; date fragments are stripped first.
func extractTitleAndCompany(block []string, entry *ExtractedExperience) {
	limit := min(3, len(block))
	for _, line := range block[:limit] {
		if bulletRe.MatchString(line) {
			continue
		}
		cleaned := stripDateNoise(line)
		if cleaned == "" {
			continue
		}

		if entry.JobTitle == "" && containsAnyFold(cleaned, jobTitleKeywords) {
			entry.JobTitle = cleaned
			continue
		}
		if entry.CompanyName == "" && looksLikeCompany(cleaned) {
			entry.CompanyName = cleaned
			continue
		}
		// A short second line after the title is almost always the employer.
		if entry.JobTitle != "" && entry.CompanyName == "" && len(strings.Fields(cleaned)) <= 6 {
			entry.CompanyName = cleaned
		}
	}

	if entry.JobTitle == "" {
		for _, line := range block[:limit] {
			if bulletRe.MatchString(line) {
				continue
			}
			cleaned := stripDateNoise(line)
			if cleaned != "" && len(strings.Fields(cleaned)) <= 6 {
				entry.JobTitle = cleaned
				break
			}
		}
	}
}

func extractEntryLocation(block []string, entry *ExtractedExperience) {
	limit := min(3, len(block))
	for _, line := range block[:limit] {
		if m := cityStateRe.FindStringSubmatch(line); m != nil {
			entry.Location = m[1] + ", " + m[2]
			return
		}
	}
}

// extractBullets splits bullet lines into achievements (lines with impact
// verbs or metrics) and plain responsibilities.
func extractBullets(block []string, entry *ExtractedExperience) {
	for _, line := range block {
		if !bulletRe.MatchString(line) {
			continue
		}
		content := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
		if len(content) <= 10 {
			continue
		}
		if containsAnyFold(content, achievementIndicators) {
			entry.Achievements = append(entry.Achievements, content)
		} else {
			entry.Responsibilities = append(entry.Responsibilities, content)
		}
	}
}

// experienceConfidence is a weighted presence score: title 0.3, company
// 0.25, start date 0.2, bullets 0.15, location 0.1.
func experienceConfidence(entry *ExtractedExperience) float64 {
	score := 0.0
	if entry.JobTitle != "" {
		score += 0.3
	}
	if entry.CompanyName != "" {
		score += 0.25
	}
	if entry.StartDate != nil {
		score += 0.2
	}
	if len(entry.Responsibilities) > 0 || len(entry.Achievements) > 0 {
		score += 0.15
	}
	if entry.Location != "" {
		score += 0.1
	}
	return round2(score)
}

// totalYears sums each dated entry's duration in whole months (one month
// minimum per entry) and converts to years with one decimal. Overlapping
// positions are counted in full.
func totalYears(experiences []ExtractedExperience) float64 {
	now := time.Now().UTC()
	totalMonths := 0

	for _, e := range experiences {
		if e.StartDate == nil {
			continue
		}
		end := now
		if e.EndDate != nil {
			end = *e.EndDate
		}
		if end.Before(*e.StartDate) {
			continue
		}
		days := int(end.Sub(*e.StartDate).Hours() / 24)
		months := days / 30
		if months < 1 {
			months = 1
		}
		totalMonths += months
	}

	return round1(float64(totalMonths) / 12)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

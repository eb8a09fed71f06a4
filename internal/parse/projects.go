package parse

import (
	"regexp"
	"strings"
)

// ExtractedProject is one project entry.
type ExtractedProject struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	Confidence   float64  `json:"confidence"`
}

// ProjectsParseResult is the output of the projects parser.
type ProjectsParseResult struct {
	Projects   []ExtractedProject `json:"projects"`
	Confidence float64            `json:"confidence"`
}

var (
	repoURLRe    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:github\.com|gitlab\.com|bitbucket\.org)/[\w\-./]+`)
	generalURLRe = regexp.MustCompile(`(?i)https?://[\w\-./?=#&%+]+`)

	techLabelRe = regexp.MustCompile(`(?i)(?:tech(?:nologies|nology|nical\s*stack)?|stack|tools?\s*used|built\s*with` +
		`|technologies\s*used|tech\s*stack)[:\s]+(.+?)(?:\n|$)`)

	numberedHeaderRe = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]\s*|[•\-*]\s*)([A-Z][^\n]{3,60})$`)

	projectSkipLineRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*(?:https?://|github|gitlab|bitbucket)`),
		regexp.MustCompile(`(?i)tech(?:nologies|nology|nical\s*stack)?[:\s]`),
		regexp.MustCompile(`(?i)built\s*with[:\s]`),
		regexp.MustCompile(`^\s*[\d.)\-•*]\s*$`),
	}
)

// ProjectsParser extracts project entries from a projects section, reusing
// the skills taxonomy scan for technology detection.
type ProjectsParser struct {
	skills *SkillsParser
}

func NewProjectsParser(skills *SkillsParser) *ProjectsParser {
	if skills == nil {
		skills = NewSkillsParser()
	}
	return &ProjectsParser{skills: skills}
}

func (p *ProjectsParser) Parse(sectionText string) ProjectsParseResult {
	if strings.TrimSpace(sectionText) == "" {
		return ProjectsParseResult{}
	}

	var projects []ExtractedProject
	for _, block := range splitProjectBlocks(sectionText) {
		project := p.parseProjectBlock(block)
		if project.Name == "" {
			continue
		}
		projects = append(projects, project)
	}

	confidence := 0.0
	if len(projects) > 0 {
		sum := 0.0
		for _, pr := range projects {
			sum += pr.Confidence
		}
		confidence = round2(sum / float64(len(projects)))
	}

	return ProjectsParseResult{Projects: projects, Confidence: confidence}
}

// splitProjectBlocks splits on blank lines, falling back to numbered or
// bulleted headers when everything runs together in one block.
func splitProjectBlocks(text string) []string {
	var blocks []string
	for _, b := range certBlockSplitRe.Split(strings.TrimSpace(text), -1) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}

	if len(blocks) == 1 {
		headers := numberedHeaderRe.FindAllStringIndex(text, -1)
		if len(headers) >= 2 {
			blocks = blocks[:0]
			for i, loc := range headers {
				end := len(text)
				if i+1 < len(headers) {
					end = headers[i+1][0]
				}
				if b := strings.TrimSpace(text[loc[0]:end]); b != "" {
					blocks = append(blocks, b)
				}
			}
		}
	}

	return blocks
}

func (p *ProjectsParser) parseProjectBlock(block string) ExtractedProject {
	project := ExtractedProject{}

	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return project
	}

	first := strings.TrimSpace(certBulletStripRe.ReplaceAllString(lines[0], ""))
	if first != "" && len(first) <= 80 {
		project.Name = first
	}

	if m := repoURLRe.FindString(block); m != "" {
		project.URL = m
	} else if m := generalURLRe.FindString(block); m != "" {
		project.URL = m
	}

	// An explicit "Tech stack:" label narrows the scan to its own line.
	techSource := block
	if m := techLabelRe.FindStringSubmatch(block); m != nil {
		techSource = m[1]
	}
	for _, skill := range p.skills.ScanKnownSkills(techSource) {
		project.Technologies = append(project.Technologies, skill.Name)
	}

	var descLines []string
	for _, line := range lines[1:] {
		if isProjectSkipLine(line) {
			continue
		}
		descLines = append(descLines, line)
		if len(descLines) == 2 {
			break
		}
	}
	if len(descLines) > 0 {
		project.Description = truncateRunes(strings.Join(descLines, " "), 300)
	}

	project.Confidence = projectConfidence(&project)
	return project
}

func isProjectSkipLine(line string) bool {
	for _, re := range projectSkipLineRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// projectConfidence: name 0.35, description over 20 chars 0.30,
// technologies 0.25, url 0.10.
func projectConfidence(project *ExtractedProject) float64 {
	score := 0.0
	if project.Name != "" {
		score += 0.35
	}
	if len(project.Description) > 20 {
		score += 0.30
	}
	if len(project.Technologies) > 0 {
		score += 0.25
	}
	if project.URL != "" {
		score += 0.10
	}
	return round2(score)
}

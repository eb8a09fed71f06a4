package parse

import (
	"regexp"
	"strings"
)

// SkillSource says where a skill was found: a dedicated skills section or
// a full-text mention.
type SkillSource string

const (
	SkillSourceSection SkillSource = "section"
	SkillSourceText    SkillSource = "text"
)

// ExtractedSkill is one skill found in a resume. Names are deduplicated
// case-insensitively within one parse, section sources winning over text
// sources for the same name.
type ExtractedSkill struct {
	Name        string      `json:"name"`
	Category    string      `json:"category,omitempty"`
	Proficiency string      `json:"proficiency,omitempty"`
	Confidence  float64     `json:"confidence"`
	Source      SkillSource `json:"source"`
}

// SkillsParseResult is the output of the skills parser.
type SkillsParseResult struct {
	Skills       []ExtractedSkill `json:"skills"`
	RawSkillText string           `json:"raw_skill_text,omitempty"`
	Confidence   float64          `json:"confidence"`
}

// Proficiency tiers in priority order; the first indicator found in a
// skill's surrounding context wins.
var proficiencyTiers = []struct {
	level      string
	indicators []string
}{
	{"expert", []string{
		"expert", "advanced", "proficient", "senior", "lead",
		"extensive experience", "deep knowledge", "mastery",
	}},
	{"advanced", []string{
		"strong", "solid", "significant", "substantial",
		"considerable", "thorough",
	}},
	{"intermediate", []string{
		"intermediate", "moderate", "good", "working knowledge",
		"familiar", "competent",
	}},
	{"beginner", []string{
		"beginner", "basic", "fundamental", "learning",
		"exposure", "some experience", "entry",
	}},
}

var (
	skillDelimiterRe = regexp.MustCompile(`[,;|•·\-\n]|\s{2,}`)
	edgePunctRe      = regexp.MustCompile(`^[\s\W]+|[\s\W]+$`)
	digitsOnlyRe     = regexp.MustCompile(`^\d+$`)
)

var skillSkipWords = map[string]bool{
	"and": true, "or": true, "the": true, "with": true, "using": true,
	"including": true, "etc": true, "years": true, "year": true,
	"experience": true, "knowledge": true, "understanding": true,
	"familiar": true, "proficient": true,
}

// SkillsParser extracts skills from a dedicated section and from full-text
// mentions of known skills. The taxonomy index is built once and read-only
// afterwards, so one parser is safe for concurrent parses.
type SkillsParser struct {
	orderedSkills []string
	categoryOf    map[string]string
}

func NewSkillsParser() *SkillsParser {
	p := &SkillsParser{categoryOf: make(map[string]string)}
	for _, group := range skillCategories {
		for _, skill := range group.skills {
			lower := strings.ToLower(skill)
			if _, exists := p.categoryOf[lower]; exists {
				continue
			}
			p.categoryOf[lower] = group.category
			p.orderedSkills = append(p.orderedSkills, lower)
		}
	}
	return p
}

// Parse extracts skills, section first (higher confidence) then full text.
func (p *SkillsParser) Parse(text, skillsSection string) SkillsParseResult {
	var skills []ExtractedSkill
	seen := map[string]bool{}

	if skillsSection != "" {
		for _, skill := range p.parseSkillsSection(skillsSection) {
			key := strings.ToLower(skill.Name)
			if seen[key] {
				continue
			}
			skill.Source = SkillSourceSection
			skills = append(skills, skill)
			seen[key] = true
		}
	}

	for _, skill := range p.ScanKnownSkills(text) {
		key := strings.ToLower(skill.Name)
		if seen[key] {
			continue
		}
		skill.Source = SkillSourceText
		skill.Confidence = round2(skill.Confidence * 0.8)
		skills = append(skills, skill)
		seen[key] = true
	}

	confidence := 0.0
	if len(skills) > 0 {
		sum := 0.0
		for _, s := range skills {
			sum += s.Confidence
		}
		confidence = round2(sum / float64(len(skills)))
	}

	return SkillsParseResult{
		Skills:       skills,
		RawSkillText: skillsSection,
		Confidence:   confidence,
	}
}

func (p *SkillsParser) parseSkillsSection(sectionText string) []ExtractedSkill {
	var skills []ExtractedSkill

	for _, candidate := range skillDelimiterRe.Split(sectionText, -1) {
		candidate = strings.TrimSpace(candidate)
		if len(candidate) < 2 {
			continue
		}

		// Too long for a single skill; scan it for embedded known skills.
		if len(candidate) > 50 {
			skills = append(skills, p.ScanKnownSkills(candidate)...)
			continue
		}

		name := cleanSkillName(candidate)
		if name == "" {
			continue
		}

		category := p.categoryOf[strings.ToLower(name)]
		confidence := 0.7
		if category != "" {
			confidence = 0.9
		}

		skills = append(skills, ExtractedSkill{
			Name:        name,
			Category:    category,
			Proficiency: detectProficiency(candidate),
			Confidence:  confidence,
		})
	}

	return skills
}

// ScanKnownSkills finds whole-word mentions of every known skill. It is a
// pure function over the index, reused by the projects parser for
// technology detection.
func (p *SkillsParser) ScanKnownSkills(text string) []ExtractedSkill {
	var skills []ExtractedSkill
	lower := strings.ToLower(text)

	for _, skillName := range p.orderedSkills {
		idx := findWholeWord(lower, skillName)
		if idx < 0 {
			continue
		}
		skills = append(skills, ExtractedSkill{
			Name:       text[idx : idx+len(skillName)],
			Category:   p.categoryOf[skillName],
			Confidence: 0.85,
		})
	}

	return skills
}

// findWholeWord locates needle in haystack such that neither neighbor is
// alphanumeric. Manual boundary checks keep names like "c++" and ".net"
// matchable where \b would fail.
func findWholeWord(haystack, needle string) int {
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from

		beforeOK := idx == 0 || !isWordByte(haystack[idx-1])
		afterOK := idx+len(needle) >= len(haystack) || !isWordByte(haystack[idx+len(needle)])
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func cleanSkillName(name string) string {
	name = edgePunctRe.ReplaceAllString(name, "")
	if len(name) < 2 {
		return ""
	}
	if digitsOnlyRe.MatchString(name) {
		return ""
	}
	if skillSkipWords[strings.ToLower(name)] {
		return ""
	}
	return name
}

func detectProficiency(context string) string {
	lower := strings.ToLower(context)
	for _, tier := range proficiencyTiers {
		for _, indicator := range tier.indicators {
			if strings.Contains(lower, indicator) {
				return tier.level
			}
		}
	}
	return ""
}

// CategorizeSkills groups skills by category, uncategorized ones under
// "other".
func CategorizeSkills(skills []ExtractedSkill) map[string][]ExtractedSkill {
	out := make(map[string][]ExtractedSkill)
	for _, s := range skills {
		category := s.Category
		if category == "" {
			category = "other"
		}
		out[category] = append(out[category], s)
	}
	return out
}

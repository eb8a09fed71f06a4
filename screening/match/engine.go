package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/hirelens/hirelens/internal/parse"
)

// Skills inside one group count as related: a candidate holding any of them
// earns partial credit for a required skill in the same group.
var relatedSkillGroups = [][]string{
	{"python", "django", "flask", "fastapi"},
	{"javascript", "typescript", "node.js", "react", "angular", "vue"},
	{"java", "spring", "hibernate", "kotlin"},
	{"c#", ".net", "asp.net"},
	{"sql", "mysql", "postgresql", "oracle"},
	{"aws", "gcp", "azure", "cloud"},
	{"docker", "kubernetes", "containerization"},
	{"machine learning", "deep learning", "tensorflow", "pytorch"},
}

// Generic JD filler words excluded from keyword matching.
var keywordStopwords = map[string]bool{
	"with": true, "have": true, "will": true, "that": true, "this": true,
	"from": true, "your": true, "they": true, "their": true, "what": true,
	"when": true, "where": true, "which": true, "would": true, "could": true,
	"should": true, "must": true, "able": true, "about": true,
	"experience": true, "work": true, "team": true,
}

// Engine scores resume parses against JD parses. It is stateless and safe
// for concurrent use.
type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Match scores one resume against one job description.
//
// The overall score is forced to 0 when the JD names required skills and
// the candidate matches none of them, fully or partially. Adjacent
// experience or keyword overlap should not rank a candidate who lacks every
// required skill above one who has some.
func (e *Engine) Match(resume *parse.ResumeParseResult, jd *parse.JDParseResult) *Result {
	result := &Result{
		CandidateName: candidateName(resume),
		JobTitle:      jd.Title,
	}
	if result.JobTitle == "" {
		result.JobTitle = "Unknown Position"
	}

	var requiredMatched float64
	result.SkillMatches, result.SkillsScore, requiredMatched = e.matchSkills(resume, jd)
	result.ExperienceMatch, result.ExperienceScore = e.matchExperience(resume, jd)
	result.EducationMatch, result.EducationScore = e.matchEducation(resume, jd)
	result.KeywordMatch, result.KeywordScore = e.matchKeywords(resume, jd)

	result.Breakdown = e.breakdown(result)
	result.OverallScore = result.Breakdown.TotalScore

	if len(jd.RequiredSkills) > 0 && requiredMatched == 0 {
		result.OverallScore = 0
		result.Breakdown.TotalScore = 0
	}

	result.ScoreLevel = LevelFromScore(result.OverallScore)
	result.Explanation = e.explain(result)
	return result
}

func candidateName(resume *parse.ResumeParseResult) string {
	if resume.Contact.FullName != "" {
		return resume.Contact.FullName
	}
	name := strings.TrimSpace(resume.Contact.FirstName + " " + resume.Contact.LastName)
	if name == "" {
		return "Unknown Candidate"
	}
	return name
}

// matchSkills scores required and preferred JD skills against the
// candidate's skill set. Required skills carry 70% of the weight, preferred
// 30%, renormalized when one bucket is absent. The returned requiredMatched
// is the credit earned on required skills (1 per full match, 0.5 per
// related-group partial).
func (e *Engine) matchSkills(resume *parse.ResumeParseResult, jd *parse.JDParseResult) ([]SkillMatch, float64, float64) {
	candidate := make(map[string]bool, len(resume.Skills))
	for _, s := range resume.Skills {
		candidate[strings.ToLower(s.Name)] = true
	}

	var matches []SkillMatch

	var requiredMatched float64
	for _, skill := range dedupLower(jd.RequiredSkills) {
		m := SkillMatch{SkillName: skill, Required: true}
		if candidate[skill] {
			m.CandidateHasSkill = true
			m.MatchScore = 1.0
			requiredMatched++
		} else if related := findRelatedSkill(skill, candidate); related != "" {
			m.PartialMatch = true
			m.RelatedSkill = related
			m.MatchScore = 0.5
			requiredMatched += 0.5
		}
		matches = append(matches, m)
	}

	var preferredMatched float64
	preferred := dedupLower(jd.PreferredSkills)
	for _, skill := range preferred {
		m := SkillMatch{SkillName: skill}
		if candidate[skill] {
			m.CandidateHasSkill = true
			m.MatchScore = 1.0
			preferredMatched++
		}
		matches = append(matches, m)
	}

	required := dedupLower(jd.RequiredSkills)

	score := 0.0
	totalWeight := 0.0
	if len(required) > 0 {
		score += 0.7 * (requiredMatched / float64(len(required)))
		totalWeight += 0.7
	}
	if len(preferred) > 0 {
		score += 0.3 * (preferredMatched / float64(len(preferred)))
		totalWeight += 0.3
	}

	switch {
	case totalWeight > 0:
		score /= totalWeight
	case len(candidate) > 0:
		// No requirements stated; having skills at all is a weak positive.
		score = 0.5
	}

	return matches, round3(score), requiredMatched
}

func findRelatedSkill(target string, candidate map[string]bool) string {
	for _, group := range relatedSkillGroups {
		inGroup := false
		for _, s := range group {
			if s == target {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, s := range group {
			if s != target && candidate[s] {
				return s
			}
		}
	}
	return ""
}

func (e *Engine) matchExperience(resume *parse.ResumeParseResult, jd *parse.JDParseResult) (*ExperienceMatch, float64) {
	candidateYears := resume.TotalExperienceYears

	if !jd.HasExperienceMin || jd.ExperienceYearsMin == 0 {
		if candidateYears > 0 {
			return nil, 1.0
		}
		return nil, 0.5
	}

	required := jd.ExperienceYearsMin
	m := &ExperienceMatch{
		RequiredYears:   required,
		CandidateYears:  candidateYears,
		YearsDifference: candidateYears - required,
		MeetsMinimum:    candidateYears >= required,
	}

	switch {
	case candidateYears >= required:
		m.Score = 1.0
	case candidateYears >= required*0.7:
		m.Score = 0.7 + 0.3*(candidateYears/required)
	case candidateYears > 0:
		m.Score = 0.5 * (candidateYears / required)
	}

	m.Score = round3(m.Score)
	return m, m.Score
}

func (e *Engine) matchEducation(resume *parse.ResumeParseResult, jd *parse.JDParseResult) (*EducationMatch, float64) {
	required := jd.EducationRequirement
	candidate := resume.HighestEducation

	if required == "" {
		if candidate != "" {
			return nil, 1.0
		}
		return nil, 0.7
	}

	m := &EducationMatch{
		RequiredDegree:  required,
		CandidateDegree: candidate,
	}

	if candidate == "" {
		m.Score = 0.3
		return m, m.Score
	}

	requiredLevel := degreeRank(required)
	candidateLevel := degreeRank(candidate)

	switch {
	case candidateLevel >= requiredLevel:
		m.MeetsRequirement = true
		m.Score = 1.0
	case candidateLevel == requiredLevel-1:
		m.Score = 0.7
	case requiredLevel > 0:
		m.Score = math.Max(0.3, float64(candidateLevel)/float64(requiredLevel))
	default:
		m.Score = 0.3
	}

	m.Score = round3(m.Score)
	return m, m.Score
}

// degreeRank maps degree labels like "Bachelor's" or "phd" onto the shared
// education level ranking.
func degreeRank(label string) int {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.TrimSuffix(key, "'s")
	key = strings.TrimSuffix(key, "’s")
	return parse.EducationLevelRank[key]
}

func (e *Engine) matchKeywords(resume *parse.ResumeParseResult, jd *parse.JDParseResult) (*KeywordMatch, float64) {
	resumeText := ""
	if resume.Extraction != nil && resume.Extraction.Text != "" {
		resumeText = strings.ToLower(resume.Extraction.Text)
	} else if resume.Preprocessed != nil {
		resumeText = strings.ToLower(resume.Preprocessed.CleanedText)
	}
	if resumeText == "" {
		return nil, 0.0
	}

	var keywords []string
	seen := map[string]bool{}
	collect := func(lines []string) {
		for _, line := range lines {
			for _, w := range strings.Fields(strings.ToLower(line)) {
				w = strings.Trim(w, ".,;:()!?\"'")
				if len(w) <= 3 || keywordStopwords[w] || seen[w] {
					continue
				}
				seen[w] = true
				keywords = append(keywords, w)
			}
		}
	}
	collect(jd.Responsibilities)
	collect(jd.Qualifications)

	if len(keywords) == 0 {
		return nil, 0.5
	}

	var matched, missing []string
	for _, kw := range keywords {
		if strings.Contains(resumeText, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	m := &KeywordMatch{
		TotalKeywords:   len(keywords),
		MatchedKeywords: len(matched),
		MatchPercentage: float64(len(matched)) / float64(len(keywords)),
		MatchedTerms:    head(matched, 20),
		MissingTerms:    head(missing, 10),
	}
	return m, round3(m.MatchPercentage)
}

func (e *Engine) breakdown(r *Result) *Breakdown {
	b := &Breakdown{
		SkillsScore:        r.SkillsScore,
		SkillsWeight:       e.weights.Skills,
		SkillsWeighted:     r.SkillsScore * e.weights.Skills,
		ExperienceScore:    r.ExperienceScore,
		ExperienceWeight:   e.weights.Experience,
		ExperienceWeighted: r.ExperienceScore * e.weights.Experience,
		EducationScore:     r.EducationScore,
		EducationWeight:    e.weights.Education,
		EducationWeighted:  r.EducationScore * e.weights.Education,
		KeywordScore:       r.KeywordScore,
		KeywordWeight:      e.weights.Keywords,
		KeywordWeighted:    r.KeywordScore * e.weights.Keywords,
	}
	b.TotalScore = round3(b.SkillsWeighted + b.ExperienceWeighted + b.EducationWeighted + b.KeywordWeighted)
	return b
}

func (e *Engine) explain(r *Result) *Explanation {
	var factors []Factor
	var strengths, gaps, recommendations []string

	matched := r.MatchedSkills()
	missing := r.MissingSkills()

	if len(matched) > 0 {
		strengths = append(strengths, fmt.Sprintf(
			"Matches %d required skills: %s", len(matched), strings.Join(head(matched, 5), ", ")))
		factorType := "neutral"
		if r.SkillsScore > 0.5 {
			factorType = "positive"
		}
		factors = append(factors, Factor{
			Name:        "Skills Match",
			Type:        factorType,
			Description: fmt.Sprintf("Candidate has %d of the required skills", len(matched)),
			ImpactScore: r.SkillsScore,
		})
	}

	if len(missing) > 0 {
		gaps = append(gaps, "Missing skills: "+strings.Join(head(missing, 5), ", "))
		recommendations = append(recommendations,
			"Consider candidates who also have: "+strings.Join(head(missing, 3), ", "))
	}

	if exp := r.ExperienceMatch; exp != nil {
		line := fmt.Sprintf("Has %.1f years experience (required: %.1f)",
			exp.CandidateYears, exp.RequiredYears)
		if exp.MeetsMinimum {
			strengths = append(strengths, line)
			factors = append(factors, Factor{
				Name:        "Experience",
				Type:        "positive",
				Description: fmt.Sprintf("Meets experience requirement with %.1f years", exp.CandidateYears),
				ImpactScore: r.ExperienceScore,
			})
		} else {
			gaps = append(gaps, line)
			factors = append(factors, Factor{
				Name:        "Experience",
				Type:        "negative",
				Description: fmt.Sprintf("Below required experience (%.1f years short)", -exp.YearsDifference),
				ImpactScore: r.ExperienceScore,
			})
		}
	}

	if edu := r.EducationMatch; edu != nil {
		if edu.MeetsRequirement {
			strengths = append(strengths, fmt.Sprintf(
				"Has %s degree (required: %s)", edu.CandidateDegree, edu.RequiredDegree))
		} else {
			degree := edu.CandidateDegree
			if degree == "" {
				degree = "no degree listed"
			}
			gaps = append(gaps, fmt.Sprintf("Has %s (required: %s)", degree, edu.RequiredDegree))
		}
	}

	var summary string
	switch r.ScoreLevel {
	case LevelExcellent:
		summary = fmt.Sprintf("%s is an excellent match for %s", r.CandidateName, r.JobTitle)
	case LevelGood:
		summary = fmt.Sprintf("%s is a good match for %s", r.CandidateName, r.JobTitle)
	case LevelFair:
		summary = fmt.Sprintf("%s is a fair match for %s", r.CandidateName, r.JobTitle)
	default:
		summary = fmt.Sprintf("%s may not be the best fit for %s", r.CandidateName, r.JobTitle)
	}

	return &Explanation{
		Summary:         summary,
		Factors:         factors,
		Strengths:       strengths,
		Gaps:            gaps,
		Recommendations: recommendations,
	}
}

func dedupLower(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

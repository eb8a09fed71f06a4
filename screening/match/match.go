package match

import (
	"sort"

	"github.com/hirelens/hirelens/internal/parse"
)

// Weights controls the blend of sub-scores into the overall match score.
type Weights struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Keywords   float64 `json:"keywords"`
}

// DefaultWeights favor skills and experience over formal education and
// keyword overlap.
func DefaultWeights() Weights {
	return Weights{
		Skills:     0.45,
		Experience: 0.30,
		Education:  0.15,
		Keywords:   0.10,
	}
}

// ScoreLevel is a coarse band for an overall match score.
type ScoreLevel string

const (
	LevelExcellent ScoreLevel = "excellent"
	LevelGood      ScoreLevel = "good"
	LevelFair      ScoreLevel = "fair"
	LevelPoor      ScoreLevel = "poor"
)

// LevelFromScore maps a score into its band.
func LevelFromScore(score float64) ScoreLevel {
	switch {
	case score >= 0.85:
		return LevelExcellent
	case score >= 0.70:
		return LevelGood
	case score >= 0.50:
		return LevelFair
	default:
		return LevelPoor
	}
}

// SkillMatch records how one JD skill fared against the candidate's skills.
type SkillMatch struct {
	SkillName         string  `json:"skill_name"`
	Required          bool    `json:"required"`
	CandidateHasSkill bool    `json:"candidate_has_skill"`
	PartialMatch      bool    `json:"partial_match,omitempty"`
	RelatedSkill      string  `json:"related_skill,omitempty"`
	MatchScore        float64 `json:"match_score"`
}

// ExperienceMatch compares candidate years against the JD minimum.
type ExperienceMatch struct {
	RequiredYears   float64 `json:"required_years"`
	CandidateYears  float64 `json:"candidate_years"`
	YearsDifference float64 `json:"years_difference"`
	MeetsMinimum    bool    `json:"meets_minimum"`
	Score           float64 `json:"score"`
}

// EducationMatch compares the candidate's highest degree level against the
// JD requirement.
type EducationMatch struct {
	RequiredDegree   string  `json:"required_degree"`
	CandidateDegree  string  `json:"candidate_degree"`
	MeetsRequirement bool    `json:"meets_requirement"`
	Score            float64 `json:"score"`
}

// KeywordMatch summarizes JD terminology coverage in the resume text.
type KeywordMatch struct {
	TotalKeywords   int      `json:"total_keywords"`
	MatchedKeywords int      `json:"matched_keywords"`
	MatchPercentage float64  `json:"match_percentage"`
	MatchedTerms    []string `json:"matched_terms,omitempty"`
	MissingTerms    []string `json:"missing_terms,omitempty"`
}

// Breakdown shows each sub-score with its weight and weighted contribution.
type Breakdown struct {
	SkillsScore        float64 `json:"skills_score"`
	SkillsWeight       float64 `json:"skills_weight"`
	SkillsWeighted     float64 `json:"skills_weighted"`
	ExperienceScore    float64 `json:"experience_score"`
	ExperienceWeight   float64 `json:"experience_weight"`
	ExperienceWeighted float64 `json:"experience_weighted"`
	EducationScore     float64 `json:"education_score"`
	EducationWeight    float64 `json:"education_weight"`
	EducationWeighted  float64 `json:"education_weighted"`
	KeywordScore       float64 `json:"keyword_score"`
	KeywordWeight      float64 `json:"keyword_weight"`
	KeywordWeighted    float64 `json:"keyword_weighted"`
	TotalScore         float64 `json:"total_score"`
}

// Factor is one explainable contributor to the match outcome.
type Factor struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"` // "positive", "negative", "neutral"
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
}

// Explanation is the human-readable account of a match result.
type Explanation struct {
	Summary         string   `json:"summary"`
	Factors         []Factor `json:"factors,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Result is the complete outcome of scoring one resume against one JD.
type Result struct {
	CandidateName string `json:"candidate_name"`
	JobTitle      string `json:"job_title"`

	OverallScore float64    `json:"overall_score"`
	ScoreLevel   ScoreLevel `json:"score_level"`

	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	KeywordScore    float64 `json:"keyword_score"`

	SkillMatches    []SkillMatch     `json:"skill_matches,omitempty"`
	ExperienceMatch *ExperienceMatch `json:"experience_match,omitempty"`
	EducationMatch  *EducationMatch  `json:"education_match,omitempty"`
	KeywordMatch    *KeywordMatch    `json:"keyword_match,omitempty"`

	Breakdown   *Breakdown   `json:"breakdown,omitempty"`
	Explanation *Explanation `json:"explanation,omitempty"`
}

// MatchedSkills lists the JD skills the candidate has.
func (r *Result) MatchedSkills() []string {
	var out []string
	for _, s := range r.SkillMatches {
		if s.CandidateHasSkill {
			out = append(out, s.SkillName)
		}
	}
	return out
}

// MissingSkills lists the required JD skills the candidate lacks.
func (r *Result) MissingSkills() []string {
	var out []string
	for _, s := range r.SkillMatches {
		if s.Required && !s.CandidateHasSkill {
			out = append(out, s.SkillName)
		}
	}
	return out
}

// Rank sorts match results by overall score, highest first. The sort is
// stable so equal scores keep their input order.
func Rank(results []*Result) []*Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	return results
}

// MatchRequest pairs the two parse results to score. Inline texts are
// accepted by the API layer and parsed before reaching the engine.
type MatchRequest struct {
	Resume *parse.ResumeParseResult
	JD     *parse.JDParseResult
}

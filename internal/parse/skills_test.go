package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillsParser_SectionParsing(t *testing.T) {
	p := NewSkillsParser()

	result := p.Parse("", "Python, Django, PostgreSQL, Interpretive Dance")

	require.Len(t, result.Skills, 4)
	byName := map[string]ExtractedSkill{}
	for _, s := range result.Skills {
		byName[s.Name] = s
	}

	assert.Equal(t, 0.9, byName["Python"].Confidence)
	assert.Equal(t, "programming_languages", byName["Python"].Category)
	assert.Equal(t, 0.9, byName["Django"].Confidence)
	assert.Equal(t, "frameworks", byName["Django"].Category)
	assert.Equal(t, 0.9, byName["PostgreSQL"].Confidence)

	// Unknown skills are kept at lower confidence with no category.
	assert.Equal(t, 0.7, byName["Interpretive Dance"].Confidence)
	assert.Empty(t, byName["Interpretive Dance"].Category)

	for _, s := range result.Skills {
		assert.Equal(t, SkillSourceSection, s.Source)
	}
}

func TestSkillsParser_SectionTakesPriorityOverTextScan(t *testing.T) {
	p := NewSkillsParser()

	result := p.Parse("I have shipped Python services and Go tooling.", "Python")

	var pythons []ExtractedSkill
	var goSkill *ExtractedSkill
	for i, s := range result.Skills {
		if s.Name == "Python" {
			pythons = append(pythons, s)
		}
		if s.Name == "Go" {
			goSkill = &result.Skills[i]
		}
	}

	require.Len(t, pythons, 1, "section skill must not be duplicated by the text scan")
	assert.Equal(t, SkillSourceSection, pythons[0].Source)
	assert.Equal(t, 0.9, pythons[0].Confidence)

	require.NotNil(t, goSkill)
	assert.Equal(t, SkillSourceText, goSkill.Source)
	assert.Equal(t, 0.68, goSkill.Confidence)
}

func TestSkillsParser_ProficiencyDetection(t *testing.T) {
	p := NewSkillsParser()

	result := p.Parse("", "Expert in Rust\nfamiliar with terraform")

	byName := map[string]string{}
	for _, s := range result.Skills {
		byName[s.Name] = s.Proficiency
	}
	assert.Equal(t, "expert", byName["Expert in Rust"])
	assert.Equal(t, "intermediate", byName["familiar with terraform"])
}

func TestScanKnownSkills_WordBoundaries(t *testing.T) {
	p := NewSkillsParser()

	names := func(text string) map[string]bool {
		out := map[string]bool{}
		for _, s := range p.ScanKnownSkills(text) {
			out[s.Name] = true
		}
		return out
	}

	// "c++" and ".net" are matchable despite non-word characters.
	found := names("Low-level work in C++ and services on .NET")
	assert.True(t, found["C++"])
	assert.True(t, found[".NET"])

	// "java" inside "javascript" is not a whole-word match.
	found = names("Frontend in javascript only")
	assert.True(t, found["javascript"])
	assert.False(t, found["java"])

	// Single letter languages need real boundaries.
	found = names("statistical computing in R")
	assert.True(t, found["R"])
}

func TestScanKnownSkills_KeepsOriginalCase(t *testing.T) {
	p := NewSkillsParser()

	skills := p.ScanKnownSkills("Deployed on KUBERNETES with Docker")
	byLower := map[string]string{}
	for _, s := range skills {
		byLower[s.Name] = s.Category
	}
	assert.Contains(t, byLower, "KUBERNETES")
	assert.Contains(t, byLower, "Docker")
}

func TestSkillsParser_LongSectionEntryFallsBackToScan(t *testing.T) {
	p := NewSkillsParser()

	long := "several years of production experience with python and postgresql in regulated environments"
	result := p.Parse("", long)

	names := map[string]bool{}
	for _, s := range result.Skills {
		names[s.Name] = true
	}
	assert.True(t, names["python"])
	assert.True(t, names["postgresql"])
}

func TestSkillsParser_EmptyInput(t *testing.T) {
	p := NewSkillsParser()

	result := p.Parse("", "")
	assert.Empty(t, result.Skills)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestCategorizeSkills(t *testing.T) {
	grouped := CategorizeSkills([]ExtractedSkill{
		{Name: "Python", Category: "programming_languages"},
		{Name: "Go", Category: "programming_languages"},
		{Name: "Mystery", Category: ""},
	})

	assert.Len(t, grouped["programming_languages"], 2)
	assert.Len(t, grouped["other"], 1)
}

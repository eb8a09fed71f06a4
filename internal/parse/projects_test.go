package parse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectsParser_ECommercePlatform(t *testing.T) {
	p := NewProjectsParser(nil)

	result := p.Parse("E-Commerce Platform\nBuilt a scalable online store using Python and Django.")
	require.Len(t, result.Projects, 1)

	project := result.Projects[0]
	assert.Equal(t, "E-Commerce Platform", project.Name)
	assert.Contains(t, project.Technologies, "Python")
	assert.Contains(t, project.Technologies, "Django")
	assert.Contains(t, project.Description, "scalable online store")
}

func TestProjectsParser_PrefersRepoURL(t *testing.T) {
	p := NewProjectsParser(nil)

	result := p.Parse("Log Shipper\nAgent that tails files and forwards them.\nhttps://demo.logshipper.example/docs\ngithub.com/someone/logshipper")
	require.Len(t, result.Projects, 1)
	assert.Equal(t, "github.com/someone/logshipper", result.Projects[0].URL)
}

func TestProjectsParser_TechLabelNarrowsScan(t *testing.T) {
	p := NewProjectsParser(nil)

	result := p.Parse("Chat Server\nRealtime chat with history.\nTech stack: Go, Redis")
	require.Len(t, result.Projects, 1)

	techs := result.Projects[0].Technologies
	assert.Contains(t, techs, "Go")
	assert.Contains(t, techs, "Redis")
}

func TestProjectsParser_NumberedHeaderFallbackSplit(t *testing.T) {
	p := NewProjectsParser(nil)

	text := "1. Inventory Tracker\nTracks warehouse stock in realtime.\n2. Budget Planner\nMonthly budget planning tool with charts."
	result := p.Parse(text)

	require.Len(t, result.Projects, 2)
	assert.Equal(t, "Inventory Tracker", result.Projects[0].Name)
	assert.Equal(t, "Budget Planner", result.Projects[1].Name)
}

func TestProjectsParser_DescriptionCappedAt300(t *testing.T) {
	p := NewProjectsParser(nil)

	long := strings.Repeat("very long description text ", 30)
	result := p.Parse("Big Project\n" + long)
	require.Len(t, result.Projects, 1)
	assert.LessOrEqual(t, len(result.Projects[0].Description), 300)
}

func TestProjectsParser_DescriptionCapKeepsValidUTF8(t *testing.T) {
	p := NewProjectsParser(nil)

	// Odd byte offset so the 300-byte cap lands inside a two-byte rune.
	result := p.Parse("Translation Memory\nx" + strings.Repeat("é", 200))
	require.Len(t, result.Projects, 1)

	desc := result.Projects[0].Description
	assert.LessOrEqual(t, len(desc), 300)
	assert.True(t, utf8.ValidString(desc))
}

func TestProjectsParser_ConfidenceMonotonicInFields(t *testing.T) {
	nameOnly := ExtractedProject{Name: "Thing"}
	full := ExtractedProject{
		Name:         "Thing",
		Description:  "A thing that does many useful things.",
		Technologies: []string{"Go"},
		URL:          "https://github.com/x/thing",
	}

	assert.Equal(t, 0.35, projectConfidence(&nameOnly))
	assert.Equal(t, 1.0, projectConfidence(&full))
}

func TestProjectsParser_EmptyInput(t *testing.T) {
	p := NewProjectsParser(nil)

	result := p.Parse("")
	assert.Empty(t, result.Projects)
	assert.Equal(t, 0.0, result.Confidence)
}

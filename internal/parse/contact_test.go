package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactParser_FullHeader(t *testing.T) {
	p := NewContactParser()

	text := "John Smith\nSeattle, WA 98101\njohn.smith@acme-corp.io\n(555) 123-4567\nlinkedin.com/in/johnsmith\ngithub.com/jsmith"
	info := p.Parse(text)

	assert.Equal(t, "John Smith", info.FullName)
	assert.Equal(t, "John", info.FirstName)
	assert.Equal(t, "Smith", info.LastName)
	assert.Equal(t, "john.smith@acme-corp.io", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Equal(t, "https://linkedin.com/in/johnsmith", info.LinkedInURL)
	assert.Equal(t, "https://github.com/jsmith", info.GitHubURL)
	assert.Equal(t, "Seattle", info.City)
	assert.Equal(t, "WA", info.State)
	assert.Equal(t, "USA", info.Country)
	assert.Equal(t, "98101", info.PostalCode)
	assert.Equal(t, 1.0, info.Confidence)
}

func TestContactParser_RejectsPlaceholderEmails(t *testing.T) {
	p := NewContactParser()

	info := p.Parse("reach me at john@example.com or jane@test.org")
	assert.Empty(t, info.Email)

	info = p.Parse("reach me at jane.doe@realcompany.net")
	assert.Equal(t, "jane.doe@realcompany.net", info.Email)
}

func TestContactParser_NameSkipsBoilerplate(t *testing.T) {
	p := NewContactParser()

	text := "Curriculum Vitae\nResume of Applicant\nMaria Garcia-Lopez\nmaria@somecompany.net"
	info := p.Parse(text)

	assert.Equal(t, "Maria Garcia-Lopez", info.FullName)
	assert.Equal(t, "Maria", info.FirstName)
	assert.Equal(t, "Garcia-Lopez", info.LastName)
}

func TestContactParser_NameNotFalselyRejectedByStopwordSubstring(t *testing.T) {
	p := NewContactParser()

	// "of" is a stopword but only as a whole word, not inside "Geoffrey".
	info := p.Parse("Geoffrey Hinton\ngeoff@research.net")
	assert.Equal(t, "Geoffrey Hinton", info.FullName)
}

func TestContactParser_PhoneRequiresTenDigits(t *testing.T) {
	p := NewContactParser()

	info := p.Parse("call 555-1234 anytime")
	assert.Empty(t, info.Phone)
}

func TestContactParser_EmptyInput(t *testing.T) {
	p := NewContactParser()

	info := p.Parse("")
	assert.Equal(t, 0.0, info.Confidence)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.FullName)
}

func TestContactConfidence_Weights(t *testing.T) {
	cases := []struct {
		name string
		info ContactInfo
		want float64
	}{
		{"email only", ContactInfo{Email: "a@b.co"}, 1.5 / 5.0},
		{"email and name", ContactInfo{Email: "a@b.co", FullName: "A B"}, 3.0 / 5.0},
		{"everything", ContactInfo{
			Email: "a@b.co", Phone: "5551234567", FullName: "A B",
			LinkedInURL: "https://linkedin.com/in/ab", City: "Austin",
		}, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, contactConfidence(&tc.info), 1e-9)
		})
	}
}

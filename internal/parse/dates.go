package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Loose date forms seen in resumes: "Jan 2020", "January 2020", "01/2020",
// bare "2020".
const datePatternSrc = `(?:(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|` +
	`jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)` +
	`[,.\s]*\d{4})|(?:\d{1,2}[/\-]\d{4})|(?:\d{4})`

var (
	dateRe = regexp.MustCompile(`(?i)` + datePatternSrc)

	dateRangeRe = regexp.MustCompile(`(?i)(` + datePatternSrc + `)` +
		`\s*(?:[-–—]|to)+\s*` +
		`(` + datePatternSrc + `|present|current|now|ongoing)`)

	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

var presentTokens = map[string]bool{
	"present": true, "current": true, "now": true, "ongoing": true,
}

// parseLooseDate resolves a date token to the first of its month, or nil
// when no year can be found or the token means "present".
func parseLooseDate(s string) *time.Time {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || presentTokens[s] {
		return nil
	}

	month := time.January
	for i, name := range monthNames {
		if strings.Contains(s, name) {
			month = time.Month(i%12 + 1)
			break
		}
	}

	// "MM/YYYY" and "MM-YYYY" carry the month numerically.
	if m := regexp.MustCompile(`^(\d{1,2})[/\-](\d{4})$`).FindStringSubmatch(s); m != nil {
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

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

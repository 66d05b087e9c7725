package dashboard

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	SkillBadgeTotal = 19
	ArcadeGameTotal = 1

	// Local hour from which the nightly export is assumed to have landed.
	exportReadyHour = 15

	lastUpdatedLayout = "January 2, 2006, 3:04 PM"
)

const (
	StatusSuccess = "success"
	StatusDanger  = "danger"
	StatusWarning = "warning"
)

// Initials returns up to two uppercased leading letters of name, or "?" for
// an empty name.
func Initials(name string) string {
	if name == "" {
		return "?"
	}

	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}

	initials := []rune(strings.ToUpper(b.String()))
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return string(initials)
}

// ParseBadges splits a pipe-delimited badge list, trimming each name and
// keeping order. Blank input yields an empty slice.
func ParseBadges(badges string) []string {
	if strings.TrimSpace(badges) == "" {
		return []string{}
	}

	parts := strings.Split(badges, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func StatusClass(status string) string {
	switch status {
	case "Yes", "All Good":
		return StatusSuccess
	case "No":
		return StatusDanger
	default:
		return StatusWarning
	}
}

// Percentages are not clamped; out-of-range counts pass straight through to
// the progress bar width.
func SkillBadgesPercentage(completed float64) float64 {
	return completed / SkillBadgeTotal * 100
}

func ArcadeGamesPercentage(completed float64) float64 {
	return completed / ArcadeGameTotal * 100
}

// BarWidth renders a percentage for a CSS width without rounding. Non-finite
// values render as 0.
func BarWidth(percentage float64) string {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return "0"
	}
	return strconv.FormatFloat(percentage, 'f', -1, 64)
}

// LastUpdatedLabel approximates when the nightly export last ran: 23:59
// yesterday once the local clock passes 15:00, otherwise 23:59 two days
// ago. It says nothing about the freshness of any fetched record.
func LastUpdatedLabel(now time.Time) string {
	daysBack := 2
	if now.Hour() >= exportReadyHour {
		daysBack = 1
	}

	y, m, d := now.Date()
	last := time.Date(y, m, d-daysBack, 23, 59, 0, 0, now.Location())

	return last.Format(lastUpdatedLayout)
}

package dashboard

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two words", in: "Jane Doe", want: "JD"},
		{name: "empty", in: "", want: "?"},
		{name: "single word", in: "Madonna", want: "M"},
		{name: "truncated to two", in: "ada king lovelace", want: "AK"},
		{name: "extra whitespace", in: "  jane   doe ", want: "JD"},
		{name: "multibyte", in: "élodie ñuñez", want: "ÉÑ"},
		{name: "whitespace only", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestParseBadges(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "trims and keeps order", in: "A | B|C", want: []string{"A", "B", "C"}},
		{name: "empty", in: "", want: []string{}},
		{name: "blank", in: "   ", want: []string{}},
		{name: "single", in: " Cloud Run ", want: []string{"Cloud Run"}},
		{name: "empty middle segment kept", in: "A||B", want: []string{"A", "", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBadges(tt.in))
		})
	}
}

func TestParseBadges_Restartable(t *testing.T) {
	in := "X|Y"
	assert.Equal(t, ParseBadges(in), ParseBadges(in))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusClass("Yes"))
	assert.Equal(t, StatusSuccess, StatusClass("All Good"))
	assert.Equal(t, StatusDanger, StatusClass("No"))
	assert.Equal(t, StatusWarning, StatusClass("Pending"))
	assert.Equal(t, StatusWarning, StatusClass(""))
	assert.Equal(t, StatusWarning, StatusClass("yes"))
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, 100.0, SkillBadgesPercentage(19))
	assert.Equal(t, 0.0, SkillBadgesPercentage(0))
	assert.InDelta(t, 131.6, SkillBadgesPercentage(25), 0.05)
	assert.InDelta(t, -5.26, SkillBadgesPercentage(-1), 0.01)

	assert.Equal(t, 100.0, ArcadeGamesPercentage(1))
	assert.Equal(t, 0.0, ArcadeGamesPercentage(0))
	assert.Equal(t, 300.0, ArcadeGamesPercentage(3))
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, "100", BarWidth(100))
	assert.Equal(t, "0", BarWidth(0))
	assert.True(t, strings.HasPrefix(BarWidth(SkillBadgesPercentage(25)), "131.578947"))
	assert.Equal(t, "-5", BarWidth(-5))
	assert.Equal(t, "0", BarWidth(math.NaN()))
	assert.Equal(t, "0", BarWidth(math.Inf(1)))
	assert.Equal(t, "0", BarWidth(math.Inf(-1)))
}

func TestLastUpdatedLabel(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "before three pm goes back two days",
			now:  time.Date(2024, time.March, 10, 14, 59, 0, 0, loc),
			want: "March 8, 2024, 11:59 PM",
		},
		{
			name: "from three pm goes back one day",
			now:  time.Date(2024, time.March, 10, 15, 0, 0, 0, loc),
			want: "March 9, 2024, 11:59 PM",
		},
		{
			name: "crosses month boundary",
			now:  time.Date(2024, time.March, 1, 9, 0, 0, 0, loc),
			want: "February 28, 2024, 11:59 PM",
		},
		{
			name: "crosses year boundary",
			now:  time.Date(2025, time.January, 1, 16, 0, 0, 0, loc),
			want: "December 31, 2024, 11:59 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastUpdatedLabel(tt.now))
		})
	}
}

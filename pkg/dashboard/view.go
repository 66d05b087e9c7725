package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cohort-stats/skills-dashboard/pkg/choice"
	"github.com/cohort-stats/skills-dashboard/pkg/lookup"
)

const (
	ButtonLabelIdle    = "Get Stats"
	ButtonLabelLoading = "Searching..."
)

type StatusBadge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

type Progress struct {
	Completed  float64 `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// BadgeList is shown whenever the raw field is non-empty; Items may still be
// empty when the field is only whitespace.
type BadgeList struct {
	Show  bool     `json:"show"`
	Items []string `json:"items"`
}

type Stats struct {
	Name            string            `json:"name"`
	Initials        string            `json:"initials"`
	Email           string            `json:"email"`
	SkillBadges     Progress          `json:"skillBadges"`
	ArcadeGames     Progress          `json:"arcadeGames"`
	ProfileStatus   StatusBadge       `json:"profileStatus"`
	AccessCode      StatusBadge       `json:"accessCode"`
	AllCompleted    StatusBadge       `json:"allCompleted"`
	SkillBadgeNames BadgeList         `json:"skillBadgeNames"`
	ArcadeGameNames BadgeList         `json:"arcadeGameNames"`
	ProfileURL      string            `json:"profileUrl,omitempty"`
	Record          lookup.UserRecord `json:"record"`
}

// View is everything the page template needs, recomputed on every render.
// LoadingLabel is what the page swaps onto the button while a submission is
// in flight.
type View struct {
	Email        string `json:"email"`
	Loading      bool   `json:"loading"`
	Error        string `json:"error,omitempty"`
	ButtonLabel  string `json:"-"`
	LoadingLabel string `json:"-"`
	LastUpdated  string `json:"lastUpdated"`
	Stats        *Stats `json:"stats,omitempty"`
}

func NewView(state ViewState, now time.Time) View {
	v := View{
		Email:        state.Email,
		Loading:      state.Loading,
		Error:        state.Error,
		ButtonLabel:  choice.Ternary(state.Loading, ButtonLabelLoading, ButtonLabelIdle),
		LoadingLabel: ButtonLabelLoading,
		LastUpdated:  LastUpdatedLabel(now),
	}

	if state.Record != nil {
		v.Stats = newStats(state.Record)
	}

	return v
}

func newStats(rec lookup.UserRecord) *Stats {
	skill := rec.SkillBadgesCompleted()
	arcade := rec.ArcadeGamesCompleted()

	return &Stats{
		Name:     rec.Name(),
		Initials: Initials(rec.Name()),
		Email:    rec.Email(),
		SkillBadges: Progress{
			Completed:  skill,
			Total:      SkillBadgeTotal,
			Percentage: SkillBadgesPercentage(skill),
			Label:      countLabel(skill, SkillBadgeTotal),
		},
		ArcadeGames: Progress{
			Completed:  arcade,
			Total:      ArcadeGameTotal,
			Percentage: ArcadeGamesPercentage(arcade),
			Label:      countLabel(arcade, ArcadeGameTotal),
		},
		ProfileStatus:   statusBadge(rec.ProfileURLStatus()),
		AccessCode:      statusBadge(rec.AccessCodeRedemption()),
		AllCompleted:    statusBadge(rec.AllCompleted()),
		SkillBadgeNames: badgeList(rec.SkillBadgeNames()),
		ArcadeGameNames: badgeList(rec.ArcadeGameNames()),
		ProfileURL:      rec.ProfileURL(),
		Record:          rec,
	}
}

func statusBadge(status string) StatusBadge {
	return StatusBadge{Label: status, Class: StatusClass(status)}
}

func badgeList(raw string) BadgeList {
	return BadgeList{Show: raw != "", Items: ParseBadges(raw)}
}

func countLabel(completed float64, total int) string {
	return fmt.Sprintf("%s/%d", strconv.FormatFloat(completed, 'f', -1, 64), total)
}

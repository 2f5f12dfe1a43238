package timeline

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	StatusCompleted = "completed"
	StatusOverdue   = "overdue"
	StatusDueSoon   = "due-soon"
	StatusUpcoming  = "upcoming"
)

const (
	SeasonSeptember = "september"
	SeasonJanuary   = "january"
	SeasonMay       = "may"
)

// DueSoonDays is the inclusive window in which an incomplete milestone is due soon.
const DueSoonDays = 7

var ErrInvalidSeason = errors.New("season must be september, january or may")

var seasonMonths = map[string]time.Month{
	SeasonSeptember: time.September,
	SeasonJanuary:   time.January,
	SeasonMay:       time.May,
}

type Milestone struct {
	Order       int       `json:"order"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
}

// Seasons lists the accepted intake seasons in calendar order of their intake month.
func Seasons() []string {
	return []string{SeasonJanuary, SeasonMay, SeasonSeptember}
}

// IsSeason reports whether s names an intake season.
func IsSeason(s string) bool {
	_, ok := seasonMonths[strings.ToLower(s)]
	return ok
}

// IntakeDate resolves a season and year to the first day of the intake month.
// A zero year means the year of now. Once the intake day has started it
// counts as passed and the following year is used.
func IntakeDate(season string, year int, now time.Time) (time.Time, error) {
	month, ok := seasonMonths[strings.ToLower(season)]
	if !ok {
		return time.Time{}, ErrInvalidSeason
	}
	if year == 0 {
		year = now.Year()
	}

	intake := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if intake.Before(now) {
		intake = intake.AddDate(1, 0, 0)
	}
	return intake, nil
}

// Generate builds the full milestone list for an intake date, in catalog order.
func Generate(intake time.Time) []Milestone {
	milestones := make([]Milestone, 0, len(Catalog))
	for _, def := range Catalog {
		milestones = append(milestones, Milestone{
			Order:       def.Order,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			Priority:    def.Priority,
			DueDate:     def.Offset.Apply(intake),
		})
	}
	return milestones
}

// Overlay copies completion flags onto milestones by title.
// Titles absent from completed keep their current flag.
func Overlay(milestones []Milestone, completed map[string]bool) []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	for i := range out {
		if done, ok := completed[out[i].Title]; ok {
			out[i].Completed = done
		}
	}
	return out
}

// Classify returns the live status of a milestone relative to now.
func Classify(m Milestone, now time.Time) string {
	if m.Completed {
		return StatusCompleted
	}
	days := DaysBetween(now, m.DueDate)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= DueSoonDays:
		return StatusDueSoon
	default:
		return StatusUpcoming
	}
}

// PersistedStatus is the three-way status stored alongside a completion record.
// It never reports due-soon and is not used for display.
func PersistedStatus(completed bool, dueDate, now time.Time) string {
	if completed {
		return StatusCompleted
	}
	if dueDate.Before(now) {
		return StatusOverdue
	}
	return StatusUpcoming
}

// Progress is the rounded percentage of completed milestones, 0 for an empty list.
func Progress(milestones []Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(milestones))))
}

// Next returns the incomplete, not yet overdue milestone closest to now.
// Ties keep list order.
func Next(milestones []Milestone, now time.Time) (Milestone, bool) {
	var pending []Milestone
	for _, m := range milestones {
		if !m.Completed && DaysBetween(now, m.DueDate) >= 0 {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		return Milestone{}, false
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return DaysBetween(now, pending[i].DueDate) < DaysBetween(now, pending[j].DueDate)
	})
	return pending[0], true
}

// Summary counts milestones per live status.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"dueSoon"`
	Upcoming  int `json:"upcoming"`
}

func Summarize(milestones []Milestone, now time.Time) Summary {
	s := Summary{Total: len(milestones)}
	for _, m := range milestones {
		switch Classify(m, now) {
		case StatusCompleted:
			s.Completed++
		case StatusOverdue:
			s.Overdue++
		case StatusDueSoon:
			s.DueSoon++
		default:
			s.Upcoming++
		}
	}
	return s
}

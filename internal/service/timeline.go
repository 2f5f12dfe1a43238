package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canstudy/tracker/internal/metrics"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/timeline"
	"github.com/canstudy/tracker/internal/validation"
)

var ErrUnknownMilestone = errors.New("milestone is not part of the timeline")

type MilestoneToggle struct {
	Title     string `json:"title" validate:"required,notblank"`
	Completed bool   `json:"completed"`
}

// MilestoneView is a milestone with its live status.
type MilestoneView struct {
	timeline.Milestone
	Status    string `json:"status"`
	DaysUntil int    `json:"daysUntil"`
}

type TimelineView struct {
	Season     string           `json:"season"`
	Year       int              `json:"year"`
	IntakeDate time.Time        `json:"intakeDate"`
	Milestones []MilestoneView  `json:"milestones"`
	Progress   int              `json:"progress"`
	Next       *MilestoneView   `json:"nextMilestone"`
	Summary    timeline.Summary `json:"summary"`
}

type TimelineService struct {
	timelineRepo repository.TimelineRepository
	profileRepo  repository.ProfileRepository
	now          func() time.Time
}

func NewTimelineService(timelineRepo repository.TimelineRepository, profileRepo repository.ProfileRepository) *TimelineService {
	return &TimelineService{
		timelineRepo: timelineRepo,
		profileRepo:  profileRepo,
		now:          time.Now,
	}
}

// Timeline builds the user's timeline. An empty season or zero year falls
// back to the profile intake, then to September of the current year.
func (s *TimelineService) Timeline(userID, season string, year int) (*TimelineView, error) {
	season, year, err := s.resolveIntake(userID, season, year)
	if err != nil {
		return nil, err
	}

	completed, err := s.timelineRepo.Completions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	return Build(season, year, completed, s.now())
}

// SetCompleted records completion for a catalog milestone at the user's profile intake.
func (s *TimelineService) SetCompleted(userID string, toggle MilestoneToggle) (*model.MilestoneRecord, error) {
	err := validation.Struct(toggle)
	if err != nil {
		return nil, err
	}

	def, ok := timeline.Lookup(strings.TrimSpace(toggle.Title))
	if !ok {
		return nil, ErrUnknownMilestone
	}

	season, year, err := s.resolveIntake(userID, "", 0)
	if err != nil {
		return nil, err
	}

	now := s.now()
	intake, err := timeline.IntakeDate(season, year, now)
	if err != nil {
		return nil, err
	}
	dueDate := def.Offset.Apply(intake)

	record, err := s.timelineRepo.Upsert(&model.MilestoneRecord{
		UserID:      userID,
		Title:       def.Title,
		Description: def.Description,
		DueDate:     dueDate,
		Category:    def.Category,
		Completed:   toggle.Completed,
		Status:      timeline.PersistedStatus(toggle.Completed, dueDate, now),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save milestone: %w", err)
	}

	metrics.IncrementMilestoneUpdate(toggle.Completed)
	return record, nil
}

func (s *TimelineService) resolveIntake(userID, season string, year int) (string, int, error) {
	if season != "" && year != 0 {
		return season, year, nil
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return "", 0, fmt.Errorf("failed to load profile: %w", err)
	}

	if season == "" {
		season = timeline.SeasonSeptember
		if profile != nil && profile.IntakeTerm != "" {
			season = profile.IntakeTerm
		}
	}
	if year == 0 && profile != nil {
		year = profile.IntakeYear
	}
	return season, year, nil
}

// Build assembles a timeline view from an intake and completion flags.
func Build(season string, year int, completed map[string]bool, now time.Time) (*TimelineView, error) {
	intake, err := timeline.IntakeDate(season, year, now)
	if err != nil {
		return nil, err
	}

	milestones := timeline.Overlay(timeline.Generate(intake), completed)

	view := &TimelineView{
		Season:     strings.ToLower(season),
		Year:       intake.Year(),
		IntakeDate: intake,
		Milestones: make([]MilestoneView, 0, len(milestones)),
		Progress:   timeline.Progress(milestones),
		Summary:    timeline.Summarize(milestones, now),
	}
	for _, m := range milestones {
		view.Milestones = append(view.Milestones, newMilestoneView(m, now))
	}

	if next, ok := timeline.Next(milestones, now); ok {
		v := newMilestoneView(next, now)
		view.Next = &v
	}

	return view, nil
}

func newMilestoneView(m timeline.Milestone, now time.Time) MilestoneView {
	return MilestoneView{
		Milestone: m,
		Status:    timeline.Classify(m, now),
		DaysUntil: timeline.DaysBetween(now, m.DueDate),
	}
}

package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/timeline"
)

const (
	DeadlineTypeApplication = "application"
	DeadlineTypePayment     = "payment"

	upcomingDeadlineLimit = 5
)

type ProgressCount struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type Deadline struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Type  string    `json:"type"`
}

type Dashboard struct {
	Schools             ProgressCount       `json:"schools"`
	PendingApplications int                 `json:"pendingApplications"`
	Documents           ProgressCount       `json:"documents"`
	Finances            ProgressCount       `json:"finances"`
	Overall             int                 `json:"overall"`
	Timeline            int                 `json:"timelineProgress"`
	NextMilestone       *MilestoneView      `json:"nextMilestone"`
	Expenses            model.FinanceTotals `json:"expenses"`
	UpcomingDeadlines   []Deadline          `json:"upcomingDeadlines"`
}

type DashboardService struct {
	applicationRepo repository.ApplicationRepository
	documentRepo    repository.DocumentRepository
	financeRepo     repository.FinanceRepository
	timelineService *TimelineService
	now             func() time.Time
}

func NewDashboardService(
	applicationRepo repository.ApplicationRepository,
	documentRepo repository.DocumentRepository,
	financeRepo repository.FinanceRepository,
	timelineService *TimelineService,
) *DashboardService {
	return &DashboardService{
		applicationRepo: applicationRepo,
		documentRepo:    documentRepo,
		financeRepo:     financeRepo,
		timelineService: timelineService,
		now:             time.Now,
	}
}

func (s *DashboardService) Dashboard(userID string, profile *model.Profile) (*Dashboard, error) {
	applications, err := s.applicationRepo.Applications(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	documents, err := s.documentRepo.Documents(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	finances, err := s.financeRepo.Finances(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load finances: %w", err)
	}
	tl, err := s.timelineService.Timeline(userID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to build timeline: %w", err)
	}

	d := &Dashboard{
		Timeline:      tl.Progress,
		NextMilestone: tl.Next,
	}

	for _, a := range applications {
		switch a.Status {
		case model.ApplicationStatusAccepted:
			d.Schools.Done++
		case model.ApplicationStatusInProgress, model.ApplicationStatusSubmitted:
			d.PendingApplications++
		}
	}
	d.Schools.Total = len(applications)

	for _, doc := range documents {
		if doc.IsDone() {
			d.Documents.Done++
		}
	}
	d.Documents.Total = len(documents)

	for _, f := range finances {
		if f.Paid {
			d.Finances.Done++
		}
	}
	d.Finances.Total = len(finances)

	schools := ratio(d.Schools.Done, d.Schools.Total)
	docs := ratio(d.Documents.Done, d.Documents.Total)
	money := ratio(d.Finances.Done, d.Finances.Total)
	d.Schools.Percent = roundPercent(schools)
	d.Documents.Percent = roundPercent(docs)
	d.Finances.Percent = roundPercent(money)
	d.Overall = roundPercent((schools + docs + money) / 3)

	target := ""
	if profile != nil {
		target = profile.DefaultCurrency
	}
	d.Expenses = Totals(finances, target)
	d.UpcomingDeadlines = upcomingDeadlines(applications, finances, s.now())

	return d, nil
}

func ratio(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

func roundPercent(r float64) int {
	return int(math.Round(r * 100))
}

// upcomingDeadlines merges application deadlines with unpaid due dates that
// are today or later, soonest first.
func upcomingDeadlines(applications []*model.Application, finances []*model.Finance, now time.Time) []Deadline {
	deadlines := []Deadline{}
	for _, a := range applications {
		if a.Deadline == nil || timeline.DaysBetween(now, *a.Deadline) < 0 {
			continue
		}
		deadlines = append(deadlines, Deadline{
			Title: a.InstitutionName + " Application Deadline",
			Date:  *a.Deadline,
			Type:  DeadlineTypeApplication,
		})
	}
	for _, f := range finances {
		if f.Paid || f.DueDate == nil || timeline.DaysBetween(now, *f.DueDate) < 0 {
			continue
		}
		deadlines = append(deadlines, Deadline{
			Title: f.Description,
			Date:  *f.DueDate,
			Type:  DeadlineTypePayment,
		})
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].Date.Before(deadlines[j].Date)
	})
	if len(deadlines) > upcomingDeadlineLimit {
		deadlines = deadlines[:upcomingDeadlineLimit]
	}
	return deadlines
}

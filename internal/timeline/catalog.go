package timeline

import "time"

const (
	CategoryApplication = "application"
	CategoryVisa        = "visa"
	CategoryPreparation = "preparation"
	CategoryArrival     = "arrival"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Offset is how far before the intake date a milestone falls.
// Months are applied first, then weeks, then days.
type Offset struct {
	Months int
	Weeks  int
	Days   int
}

// Apply returns intake shifted back by the offset.
func (o Offset) Apply(intake time.Time) time.Time {
	d := intake
	if o.Months != 0 {
		d = SubtractMonths(d, o.Months)
	}
	if o.Weeks != 0 {
		d = SubtractWeeks(d, o.Weeks)
	}
	if o.Days != 0 {
		d = d.AddDate(0, 0, -o.Days)
	}
	return d
}

// Definition is one row of the milestone catalog.
type Definition struct {
	Order       int
	Title       string
	Description string
	Category    string
	Priority    string
	Offset      Offset
}

func months(n int) Offset { return Offset{Months: n} }
func weeks(n int) Offset  { return Offset{Weeks: n} }

// Catalog is the fixed, ordered list of milestones generated for every intake.
// Order is display order, not chronological order.
var Catalog = []Definition{
	{1, "Research Canadian Schools", "Browse schools, compare programs, check admission requirements", CategoryApplication, PriorityHigh, months(10)},
	{2, "Gather Academic Documents", "Collect transcripts, diplomas, recommendation letters", CategoryApplication, PriorityHigh, months(8)},
	{3, "Take Language Test", "Complete IELTS, TOEFL, or PTE Academic", CategoryApplication, PriorityHigh, months(7)},
	{4, "Submit University Applications", "Apply to your selected schools before deadlines", CategoryApplication, PriorityHigh, months(6)},
	{5, "Pay Application Fees", "Complete payment for school applications", CategoryApplication, PriorityMedium, months(6)},
	{6, "Receive Letter of Acceptance", "Get LOA from your chosen institution", CategoryApplication, PriorityHigh, months(4)},
	{7, "Prepare Financial Proof", "Bank statements, GIC, sponsorship letters", CategoryVisa, PriorityHigh, months(4)},
	{8, "Submit Study Permit Application", "Apply online through IRCC portal", CategoryVisa, PriorityHigh, months(3)},
	{9, "Pay Study Permit Fee", "CAD $150 application fee", CategoryVisa, PriorityHigh, months(3)},
	// 2.5 months, fixed as two calendar months plus 15 days.
	{10, "Complete Biometrics", "Fingerprints and photo at VAC/ASC", CategoryVisa, PriorityHigh, Offset{Months: 2, Days: 15}},
	{11, "Medical Examination", "Complete medical exam with panel physician", CategoryVisa, PriorityMedium, months(2)},
	{12, "Obtain Police Certificate", "Get police clearance if required", CategoryVisa, PriorityMedium, months(2)},
	{13, "Receive Study Permit Approval", "Get passport back with visa", CategoryVisa, PriorityHigh, months(1)},
	{14, "Book Flight to Canada", "Purchase one-way or return ticket", CategoryPreparation, PriorityHigh, weeks(4)},
	{15, "Secure Housing", "Book temporary or permanent accommodation", CategoryPreparation, PriorityHigh, weeks(3)},
	{16, "Prepare Port of Entry Documents", "LOA, passport, financial proof, study permit letter", CategoryPreparation, PriorityHigh, weeks(2)},
	{17, "Pack for Travel", "Pack essentials, winter clothes, documents", CategoryPreparation, PriorityMedium, weeks(1)},
	{18, "Arrive in Canada", "Travel to Canada and complete border formalities", CategoryArrival, PriorityHigh, weeks(1)},
	{19, "Attend University Orientation", "Register for classes, get student ID", CategoryArrival, PriorityMedium, weeks(0)},
}

// Lookup returns the catalog row with the given title.
func Lookup(title string) (Definition, bool) {
	for _, d := range Catalog {
		if d.Title == title {
			return d, true
		}
	}
	return Definition{}, false
}

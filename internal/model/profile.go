package model

import "time"

const (
	DegreeUndergrad = "undergrad"
	DegreeMasters   = "masters"
	DegreePhD       = "phd"
)

var DegreeTypes = []string{DegreeUndergrad, DegreeMasters, DegreePhD}

func IsDegreeType(s string) bool {
	for _, d := range DegreeTypes {
		if d == s {
			return true
		}
	}
	return false
}

type Profile struct {
	ID                   string    `db:"id" json:"id"`
	UserID               string    `db:"user_id" json:"userId"`
	Name                 string    `db:"name" json:"name"`
	DegreeType           string    `db:"degree_type" json:"degreeType"`
	ProgramOfStudy       string    `db:"program_of_study" json:"programOfStudy"`
	InstitutionName      string    `db:"institution_name" json:"institutionName"`
	IntakeTerm           string    `db:"intake_term" json:"intakeTerm"`
	IntakeYear           int       `db:"intake_year" json:"intakeYear"`
	DefaultCurrency      string    `db:"default_currency" json:"defaultCurrency"`
	NotificationsEnabled bool      `db:"notifications_enabled" json:"notificationsEnabled"`
	EmailNotifications   bool      `db:"email_notifications" json:"emailNotifications"`
	ReminderDays         int       `db:"reminder_days" json:"reminderDays"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

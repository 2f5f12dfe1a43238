package model

import (
	"time"
)

const (
	DocumentStatusNotStarted = "not_started"
	DocumentStatusInProgress = "in_progress"
	DocumentStatusSubmitted  = "submitted"
	DocumentStatusApproved   = "approved"
	DocumentStatusRejected   = "rejected"
)

var DocumentStatuses = []string{
	DocumentStatusNotStarted,
	DocumentStatusInProgress,
	DocumentStatusSubmitted,
	DocumentStatusApproved,
	DocumentStatusRejected,
}

type Document struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"-"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	Category     string     `db:"category" json:"category"`
	Required     bool       `db:"required" json:"required"`
	Status       string     `db:"status" json:"status"`
	FileID       *string    `db:"file_id" json:"fileId"`
	UploadedDate *time.Time `db:"uploaded_date" json:"uploadedDate"`
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiryDate"`
	Notes        string     `db:"notes" json:"notes"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	FileURL string `db:"-" json:"fileUrl,omitempty"`
}

// IsDone reports whether the document counts towards checklist progress.
func (d *Document) IsDone() bool {
	return d.Status == DocumentStatusSubmitted || d.Status == DocumentStatusApproved
}

// DocumentTemplate seeds a new user's checklist depending on degree type.
type DocumentTemplate struct {
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	Category     string `yaml:"category" json:"category"`
	Required     bool   `yaml:"required" json:"required"`
	Order        int    `yaml:"order" json:"order"`
	ForUndergrad bool   `yaml:"undergrad" json:"forUndergrad"`
	ForMasters   bool   `yaml:"masters" json:"forMasters"`
	ForPhD       bool   `yaml:"phd" json:"forPhd"`
}

func (t DocumentTemplate) AppliesTo(degreeType string) bool {
	switch degreeType {
	case DegreeUndergrad:
		return t.ForUndergrad
	case DegreeMasters:
		return t.ForMasters
	case DegreePhD:
		return t.ForPhD
	}
	return false
}

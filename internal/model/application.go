package model

import (
	"time"
)

const (
	ApplicationStatusNotStarted = "not_started"
	ApplicationStatusInProgress = "in_progress"
	ApplicationStatusSubmitted  = "submitted"
	ApplicationStatusAccepted   = "accepted"
	ApplicationStatusRejected   = "rejected"
	ApplicationStatusWaitlisted = "waitlisted"
)

var ApplicationStatuses = []string{
	ApplicationStatusNotStarted,
	ApplicationStatusInProgress,
	ApplicationStatusSubmitted,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusWaitlisted,
}

type Application struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"-"`
	InstitutionName string     `db:"institution_name" json:"institutionName"`
	Program         string     `db:"program" json:"program"`
	Level           string     `db:"level" json:"level"`
	City            string     `db:"city" json:"city"`
	Province        string     `db:"province" json:"province"`
	ApplicationFee  float64    `db:"application_fee" json:"applicationFee"`
	TuitionFee      float64    `db:"tuition_fee" json:"tuitionFee"`
	Deadline        *time.Time `db:"deadline" json:"deadline"`
	Status          string     `db:"status" json:"status"`
	AppliedDate     *time.Time `db:"applied_date" json:"appliedDate"`
	DecisionDate    *time.Time `db:"decision_date" json:"decisionDate"`
	Notes           string     `db:"notes" json:"notes"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

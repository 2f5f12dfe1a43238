package model

import (
	"time"
)

// MilestoneRecord is the persisted completion state of one timeline milestone,
// keyed by user and title. Status is a cached three-way value; display status
// is always recomputed.
type MilestoneRecord struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DueDate     time.Time `db:"due_date" json:"dueDate"`
	Category    string    `db:"category" json:"category"`
	Completed   bool      `db:"completed" json:"completed"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

package repository

import (
	"time"

	"github.com/canstudy/tracker/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TimelineRepository interface {
	Upsert(record *model.MilestoneRecord) (*model.MilestoneRecord, error)
	Records(userID string) ([]*model.MilestoneRecord, error)
	Completions(userID string) (map[string]bool, error)
}

type timelineRepository struct {
	db *sqlx.DB
}

func NewTimelineRepository(db *sqlx.DB) TimelineRepository {
	return &timelineRepository{db: db}
}

// Upsert inserts or updates the record for (user_id, title) and returns the stored row.
func (r *timelineRepository) Upsert(record *model.MilestoneRecord) (*model.MilestoneRecord, error) {
	now := time.Now()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	query := `
		INSERT INTO timeline_milestones (id, user_id, title, description, due_date, category, completed, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, title) DO UPDATE
		SET description = excluded.description,
		    due_date = excluded.due_date,
		    category = excluded.category,
		    completed = excluded.completed,
		    status = excluded.status,
		    updated_at = excluded.updated_at
		RETURNING *
	`

	var stored model.MilestoneRecord
	err := r.db.Get(&stored, query,
		record.ID,
		record.UserID,
		record.Title,
		record.Description,
		record.DueDate,
		record.Category,
		record.Completed,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *timelineRepository) Records(userID string) ([]*model.MilestoneRecord, error) {
	records := []*model.MilestoneRecord{}
	query := `SELECT * FROM timeline_milestones WHERE user_id = $1 ORDER BY due_date ASC`

	err := r.db.Select(&records, query, userID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Completions maps milestone title to its persisted completion flag.
func (r *timelineRepository) Completions(userID string) (map[string]bool, error) {
	records, err := r.Records(userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(records))
	for _, record := range records {
		completed[record.Title] = record.Completed
	}
	return completed, nil
}

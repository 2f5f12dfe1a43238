package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/canstudy/tracker/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application for this school already exists")
)

type ApplicationRepository interface {
	Create(application *model.Application) error
	ByID(userID, applicationID string) (*model.Application, error)
	Applications(userID string) ([]*model.Application, error)
	CountByStatus(userID string) (map[string]int, error)
	Update(application *model.Application) error
	Delete(userID, applicationID string) error
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(application *model.Application) error {
	query := `INSERT INTO applications (id, user_id, institution_name, program, level, city, province,
	          application_fee, tuition_fee, deadline, status, applied_date, decision_date, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(query,
		application.ID,
		application.UserID,
		application.InstitutionName,
		application.Program,
		application.Level,
		application.City,
		application.Province,
		application.ApplicationFee,
		application.TuitionFee,
		application.Deadline,
		application.Status,
		application.AppliedDate,
		application.DecisionDate,
		application.Notes,
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateApplication
	}

	return err
}

func (r *applicationRepository) ByID(userID, applicationID string) (*model.Application, error) {
	application := &model.Application{}
	query := `SELECT * FROM applications WHERE id = $1 AND user_id = $2`

	err := r.db.Get(application, query, applicationID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}

	return application, err
}

func (r *applicationRepository) Applications(userID string) ([]*model.Application, error) {
	applications := []*model.Application{}
	query := `SELECT * FROM applications WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&applications, query, userID)
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) CountByStatus(userID string) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM applications WHERE user_id = $1 GROUP BY status`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *applicationRepository) Update(application *model.Application) error {
	query := `UPDATE applications
	          SET status = $1, applied_date = $2, decision_date = $3, notes = $4, deadline = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		application.Status,
		application.AppliedDate,
		application.DecisionDate,
		application.Notes,
		application.Deadline,
		time.Now(),
		application.ID,
		application.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

func (r *applicationRepository) Delete(userID, applicationID string) error {
	query := `DELETE FROM applications WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, applicationID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

package repository

import (
	"database/sql"
	"time"

	"github.com/canstudy/tracker/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	Update(profile *model.Profile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

const insertProfileQuery = `
	INSERT INTO profiles (id, user_id, name, degree_type, program_of_study, institution_name,
		intake_term, intake_year, default_currency, notifications_enabled, email_notifications,
		reminder_days, created_at, updated_at)
	VALUES (:id, :user_id, :name, :degree_type, :program_of_study, :institution_name,
		:intake_term, :intake_year, :default_currency, :notifications_enabled, :email_notifications,
		:reminder_days, :created_at, :updated_at)`

func prepareProfile(profile *model.Profile) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}
}

func (r *profileRepository) Update(profile *model.Profile) error {
	profile.UpdatedAt = time.Now()

	result, err := r.db.NamedExec(`
		UPDATE profiles
		SET name = :name, degree_type = :degree_type, program_of_study = :program_of_study,
			institution_name = :institution_name, intake_term = :intake_term, intake_year = :intake_year,
			default_currency = :default_currency, notifications_enabled = :notifications_enabled,
			email_notifications = :email_notifications, reminder_days = :reminder_days,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`, profile)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

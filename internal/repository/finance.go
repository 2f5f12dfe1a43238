package repository

import (
	"database/sql"
	"errors"

	"github.com/canstudy/tracker/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrFinanceNotFound = errors.New("expense not found")
)

type FinanceRepository interface {
	Create(finance *model.Finance) error
	ByID(userID, financeID string) (*model.Finance, error)
	Finances(userID string) ([]*model.Finance, error)
	UpdatePaid(finance *model.Finance) error
	Delete(userID, financeID string) error
}

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) Create(finance *model.Finance) error {
	query := `INSERT INTO finances (id, user_id, category, description, amount, currency, paid, due_date, paid_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		finance.ID,
		finance.UserID,
		finance.Category,
		finance.Description,
		finance.Amount,
		finance.Currency,
		finance.Paid,
		finance.DueDate,
		finance.PaidDate,
		finance.CreatedAt,
	)

	return err
}

func (r *financeRepository) ByID(userID, financeID string) (*model.Finance, error) {
	finance := &model.Finance{}
	query := `SELECT * FROM finances WHERE id = $1 AND user_id = $2`

	err := r.db.Get(finance, query, financeID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFinanceNotFound
	}

	return finance, err
}

func (r *financeRepository) Finances(userID string) ([]*model.Finance, error) {
	finances := []*model.Finance{}
	query := `SELECT * FROM finances WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&finances, query, userID)
	if err != nil {
		return nil, err
	}

	return finances, nil
}

func (r *financeRepository) UpdatePaid(finance *model.Finance) error {
	query := `UPDATE finances SET paid = $1, paid_date = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, finance.Paid, finance.PaidDate, finance.ID, finance.UserID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFinanceNotFound
	}

	return nil
}

func (r *financeRepository) Delete(userID, financeID string) error {
	query := `DELETE FROM finances WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, financeID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFinanceNotFound
	}

	return nil
}

package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/canstudy/tracker/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDuplicateDocument = errors.New("document with this name already exists")
)

type DocumentRepository interface {
	Create(document *model.Document) error
	CreateMany(documents []*model.Document) error
	ByID(userID, documentID string) (*model.Document, error)
	Documents(userID string) ([]*model.Document, error)
	Update(document *model.Document) error
	Delete(userID, documentID string) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

const insertDocumentQuery = `INSERT INTO documents (id, user_id, name, description, category, required, status,
	file_id, uploaded_date, expiry_date, notes, created_at, updated_at)
	VALUES (:id, :user_id, :name, :description, :category, :required, :status,
	:file_id, :uploaded_date, :expiry_date, :notes, :created_at, :updated_at)`

func (r *documentRepository) Create(document *model.Document) error {
	_, err := r.db.NamedExec(insertDocumentQuery, document)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateDocument
	}
	return err
}

// CreateMany inserts all documents in one transaction.
func (r *documentRepository) CreateMany(documents []*model.Document) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, document := range documents {
		_, err = tx.NamedExec(insertDocumentQuery, document)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateDocument
			}
			return err
		}
	}

	return tx.Commit()
}

func (r *documentRepository) ByID(userID, documentID string) (*model.Document, error) {
	document := &model.Document{}
	query := `SELECT * FROM documents WHERE id = $1 AND user_id = $2`

	err := r.db.Get(document, query, documentID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}

	return document, err
}

func (r *documentRepository) Documents(userID string) ([]*model.Document, error) {
	documents := []*model.Document{}
	query := `SELECT * FROM documents WHERE user_id = $1 ORDER BY category ASC, name ASC`

	err := r.db.Select(&documents, query, userID)
	if err != nil {
		return nil, err
	}

	return documents, nil
}

func (r *documentRepository) Update(document *model.Document) error {
	document.UpdatedAt = time.Now()
	query := `UPDATE documents
	          SET status = :status, file_id = :file_id, uploaded_date = :uploaded_date,
	              expiry_date = :expiry_date, notes = :notes, updated_at = :updated_at
	          WHERE id = :id AND user_id = :user_id`

	result, err := r.db.NamedExec(query, document)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) Delete(userID, documentID string) error {
	query := `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, documentID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

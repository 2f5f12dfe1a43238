package repository

import (
	"database/sql"
	"errors"

	"github.com/canstudy/tracker/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrFileNotFound = errors.New("file not found")

// FileRepository tracks stored blobs. Rows belong to a user and point at
// their owning record through (owner_type, owner_id).
type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
	UserFiles(userID string) ([]*model.File, error)
	Delete(id string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (id, user_id, owner_type, owner_id, type, filename, original_name, mime_type, size, storage_path, public, created_at)
	          VALUES (:id, :user_id, :owner_type, :owner_id, :type, :filename, :original_name, :mime_type, :size, :storage_path, :public, :created_at)`

	_, err := r.db.NamedExec(query, file)
	return err
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	file := &model.File{}

	err := r.db.Get(file, `SELECT * FROM files WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) UserFiles(userID string) ([]*model.File, error) {
	files := []*model.File{}

	err := r.db.Select(&files, `SELECT * FROM files WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFileNotFound
	}

	return nil
}

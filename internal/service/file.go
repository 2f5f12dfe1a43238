package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/storage"
)

// Upload describes a validated file ready to be stored.
type Upload struct {
	Filename string
	MimeType string
	Size     int64
	Body     io.Reader
}

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload stores a file and creates its database record.
// Type, size and content checks happen in the caller.
func (s *FileService) Upload(userID, ownerType, ownerID, fileType string, upload Upload) (*model.File, error) {
	ext := filepath.Ext(upload.Filename)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	// private/<user>/documents/<uuid>.pdf
	storagePath := path.Join("private", userID, fileType+"s", filename)

	err := s.storage.Save(storagePath, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileModel := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Type:         fileType,
		Filename:     filename,
		OriginalName: upload.Filename,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
		StoragePath:  storagePath,
		Public:       false,
		CreatedAt:    time.Now(),
	}

	err = s.fileRepo.Create(fileModel)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return fileModel, nil
}

func (s *FileService) ByID(fileID string) (*model.File, error) {
	return s.fileRepo.ByID(fileID)
}

// Download returns either a redirect URL (object storage) or an open reader (local disk).
func (s *FileService) Download(file *model.File) (string, io.ReadCloser, error) {
	if signer, ok := s.storage.(storage.Signer); ok {
		url, err := signer.SignedURL(file.StoragePath)
		if err != nil {
			return "", nil, err
		}
		return url, nil, nil
	}

	body, err := s.storage.Open(file.StoragePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open file: %w", err)
	}
	return "", body, nil
}

// Delete removes a file from storage and database
func (s *FileService) Delete(fileID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get file: %w", err)
	}

	// Delete from storage (best effort)
	delErr := s.storage.Delete(file.StoragePath)
	if delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

func (s *FileService) DeleteAllUserFilesFromStorage(userID string) error {
	files, err := s.fileRepo.UserFiles(userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		err = s.storage.Delete(file.StoragePath)
		if err != nil {
			// Log but continue - physical file may already be gone
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
	}

	return nil
}

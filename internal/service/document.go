package service

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/metrics"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/validation"
)

type DocumentInput struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"omitempty,oneof=identity educational financial medical employment other"`
	Required    *bool  `json:"required"`
}

type DocumentUpdate struct {
	Status     *string `json:"status" validate:"omitempty,oneof=not_started in_progress submitted approved rejected"`
	ExpiryDate *string `json:"expiryDate"`
	Notes      *string `json:"notes" validate:"omitempty,max=5000"`
}

type DocumentService struct {
	documentRepo repository.DocumentRepository
	fileService  *FileService
	catalog      *catalog.Catalog
}

func NewDocumentService(documentRepo repository.DocumentRepository, fileService *FileService, catalog *catalog.Catalog) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		fileService:  fileService,
		catalog:      catalog,
	}
}

func (s *DocumentService) Documents(userID string) ([]*model.Document, error) {
	documents, err := s.documentRepo.Documents(userID)
	if err != nil {
		return nil, err
	}
	for _, document := range documents {
		s.populateFileURL(document)
	}
	return documents, nil
}

func (s *DocumentService) ByID(userID, documentID string) (*model.Document, error) {
	document, err := s.documentRepo.ByID(userID, documentID)
	if err != nil {
		return nil, err
	}
	s.populateFileURL(document)
	return document, nil
}

// SeedChecklist creates the starting checklist for a degree type from the template catalog.
func (s *DocumentService) SeedChecklist(userID, degreeType string) ([]*model.Document, error) {
	templates := s.catalog.TemplatesFor(degreeType)
	now := time.Now()

	documents := make([]*model.Document, 0, len(templates))
	for _, t := range templates {
		documents = append(documents, &model.Document{
			ID:          uuid.New().String(),
			UserID:      userID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Required:    t.Required,
			Status:      model.DocumentStatusNotStarted,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	err := s.documentRepo.CreateMany(documents)
	if err != nil {
		return nil, fmt.Errorf("failed to seed checklist: %w", err)
	}
	return documents, nil
}

func (s *DocumentService) Create(userID string, input DocumentInput) (*model.Document, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	required := true
	if input.Required != nil {
		required = *input.Required
	}
	category := input.Category
	if category == "" {
		category = "other"
	}

	now := time.Now()
	document := &model.Document{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		Required:    required,
		Status:      model.DocumentStatusNotStarted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.documentRepo.Create(document)
	if err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) Update(userID, documentID string, update DocumentUpdate) (*model.Document, error) {
	err := validation.Struct(update)
	if err != nil {
		return nil, err
	}

	document, err := s.documentRepo.ByID(userID, documentID)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		document.Status = *update.Status
	}
	if update.Notes != nil {
		document.Notes = *update.Notes
	}
	if update.ExpiryDate != nil {
		expiry, err := parseDate(*update.ExpiryDate)
		if err != nil {
			return nil, validation.Field("expiryDate", err)
		}
		document.ExpiryDate = expiry
	}

	err = s.documentRepo.Update(document)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	s.populateFileURL(document)
	return document, nil
}

func (s *DocumentService) Delete(userID, documentID string) error {
	document, err := s.documentRepo.ByID(userID, documentID)
	if err != nil {
		return err
	}

	err = s.documentRepo.Delete(userID, documentID)
	if err != nil {
		return err
	}

	if document.FileID != nil {
		err = s.fileService.Delete(*document.FileID)
		if err != nil {
			slog.Warn("failed to delete document file", "error", err, "document_id", documentID)
		}
	}
	return nil
}

// Upload attaches a validated file to a document, replacing any previous file.
// A not_started document moves to in_progress.
func (s *DocumentService) Upload(userID, documentID string, upload Upload) (*model.Document, error) {
	document, err := s.documentRepo.ByID(userID, documentID)
	if err != nil {
		return nil, err
	}

	file, err := s.fileService.Upload(userID, model.OwnerTypeDocument, document.ID, model.FileTypeDocument, upload)
	if err != nil {
		metrics.IncrementDocumentUpload("failed")
		return nil, err
	}

	previous := document.FileID
	now := time.Now()
	document.FileID = &file.ID
	document.UploadedDate = &now
	if document.Status == model.DocumentStatusNotStarted {
		document.Status = model.DocumentStatusInProgress
	}

	err = s.documentRepo.Update(document)
	if err != nil {
		metrics.IncrementDocumentUpload("failed")
		if delErr := s.fileService.Delete(file.ID); delErr != nil {
			slog.Error("failed to clean up orphaned upload", "error", delErr, "file_id", file.ID)
		}
		return nil, fmt.Errorf("failed to attach file: %w", err)
	}

	if previous != nil {
		err = s.fileService.Delete(*previous)
		if err != nil {
			slog.Warn("failed to delete replaced file", "error", err, "file_id", *previous)
		}
	}

	metrics.IncrementDocumentUpload("success")
	s.populateFileURL(document)
	return document, nil
}

// Download resolves the attached file to a redirect URL or a reader.
func (s *DocumentService) Download(userID, documentID string) (*model.File, string, io.ReadCloser, error) {
	document, err := s.documentRepo.ByID(userID, documentID)
	if err != nil {
		return nil, "", nil, err
	}
	if document.FileID == nil {
		return nil, "", nil, repository.ErrFileNotFound
	}

	file, err := s.fileService.ByID(*document.FileID)
	if err != nil {
		return nil, "", nil, err
	}

	url, body, err := s.fileService.Download(file)
	if err != nil {
		return nil, "", nil, err
	}
	return file, url, body, nil
}

func (s *DocumentService) populateFileURL(document *model.Document) {
	if document.FileID != nil {
		document.FileURL = "/api/documents/" + document.ID + "/file"
	}
}

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/validation"
)

type ApplicationInput struct {
	InstitutionName string  `json:"institutionName" validate:"required,notblank,max=200"`
	Program         string  `json:"program" validate:"required,notblank,max=200"`
	Level           string  `json:"level" validate:"required,notblank,max=50"`
	City            string  `json:"city" validate:"required,notblank,max=100"`
	Province        string  `json:"province" validate:"required,notblank,max=50"`
	ApplicationFee  float64 `json:"applicationFee" validate:"min=0"`
	TuitionFee      float64 `json:"tuitionFee" validate:"min=0"`
	Deadline        string  `json:"deadline"`
}

type ApplicationUpdate struct {
	Status       *string `json:"status" validate:"omitempty,oneof=not_started in_progress submitted accepted rejected waitlisted"`
	AppliedDate  *string `json:"appliedDate"`
	DecisionDate *string `json:"decisionDate"`
	Deadline     *string `json:"deadline"`
	Notes        *string `json:"notes" validate:"omitempty,max=5000"`
}

type ApplicationService struct {
	applicationRepo repository.ApplicationRepository
}

func NewApplicationService(applicationRepo repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
	}
}

func (s *ApplicationService) Applications(userID string) ([]*model.Application, error) {
	return s.applicationRepo.Applications(userID)
}

func (s *ApplicationService) Create(userID string, input ApplicationInput) (*model.Application, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	deadline, err := parseDate(input.Deadline)
	if err != nil {
		return nil, validation.Field("deadline", err)
	}

	now := time.Now()
	application := &model.Application{
		ID:              uuid.New().String(),
		UserID:          userID,
		InstitutionName: strings.TrimSpace(input.InstitutionName),
		Program:         strings.TrimSpace(input.Program),
		Level:           strings.TrimSpace(input.Level),
		City:            strings.TrimSpace(input.City),
		Province:        strings.TrimSpace(input.Province),
		ApplicationFee:  input.ApplicationFee,
		TuitionFee:      input.TuitionFee,
		Deadline:        deadline,
		Status:          model.ApplicationStatusNotStarted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.applicationRepo.Create(application)
	if err != nil {
		return nil, err
	}

	return application, nil
}

func (s *ApplicationService) Update(userID, applicationID string, update ApplicationUpdate) (*model.Application, error) {
	err := validation.Struct(update)
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.ByID(userID, applicationID)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		application.Status = *update.Status
	}
	if update.Notes != nil {
		application.Notes = *update.Notes
	}

	dates := []struct {
		field string
		value *string
		dst   **time.Time
	}{
		{"appliedDate", update.AppliedDate, &application.AppliedDate},
		{"decisionDate", update.DecisionDate, &application.DecisionDate},
		{"deadline", update.Deadline, &application.Deadline},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		parsed, err := parseDate(*d.value)
		if err != nil {
			return nil, validation.Field(d.field, err)
		}
		*d.dst = parsed
	}

	err = s.applicationRepo.Update(application)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return application, nil
}

func (s *ApplicationService) Delete(userID, applicationID string) error {
	return s.applicationRepo.Delete(userID, applicationID)
}

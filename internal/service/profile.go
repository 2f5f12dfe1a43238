package service

import (
	"fmt"
	"strings"

	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/validation"
)

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Name                 *string `json:"name" validate:"omitempty,person_name"`
	DegreeType           *string `json:"degreeType" validate:"omitempty,degree_type"`
	ProgramOfStudy       *string `json:"programOfStudy" validate:"omitempty,max=200"`
	InstitutionName      *string `json:"institutionName" validate:"omitempty,max=200"`
	IntakeTerm           *string `json:"intakeTerm" validate:"omitempty,season"`
	IntakeYear           *int    `json:"intakeYear" validate:"omitempty,min=2000,max=2100"`
	DefaultCurrency      *string `json:"defaultCurrency" validate:"omitempty,currency"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	EmailNotifications   *bool   `json:"emailNotifications"`
	ReminderDays         *int    `json:"reminderDays" validate:"omitempty,min=1,max=30"`
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

func (s *ProfileService) Update(userID string, update ProfileUpdate) (*model.Profile, error) {
	err := validation.Struct(update)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		profile.Name = strings.TrimSpace(*update.Name)
	}
	if update.DegreeType != nil {
		profile.DegreeType = *update.DegreeType
	}
	if update.ProgramOfStudy != nil {
		profile.ProgramOfStudy = strings.TrimSpace(*update.ProgramOfStudy)
	}
	if update.InstitutionName != nil {
		profile.InstitutionName = strings.TrimSpace(*update.InstitutionName)
	}
	if update.IntakeTerm != nil {
		profile.IntakeTerm = strings.ToLower(*update.IntakeTerm)
	}
	if update.IntakeYear != nil {
		profile.IntakeYear = *update.IntakeYear
	}
	if update.DefaultCurrency != nil {
		profile.DefaultCurrency = strings.ToUpper(*update.DefaultCurrency)
	}
	if update.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *update.NotificationsEnabled
	}
	if update.EmailNotifications != nil {
		profile.EmailNotifications = *update.EmailNotifications
	}
	if update.ReminderDays != nil {
		profile.ReminderDays = *update.ReminderDays
	}

	err = s.profileRepo.Update(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canstudy/tracker/internal/currency"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/validation"
)

type FinanceInput struct {
	Category    string  `json:"category" validate:"required,oneof=application_fee visa_fee tuition living_expenses travel insurance other"`
	Description string  `json:"description" validate:"required,notblank,max=500"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,currency"`
	DueDate     string  `json:"dueDate"`
}

type FinanceUpdate struct {
	Paid     bool    `json:"paid"`
	PaidDate *string `json:"paidDate"`
}

type FinanceService struct {
	financeRepo repository.FinanceRepository
}

func NewFinanceService(financeRepo repository.FinanceRepository) *FinanceService {
	return &FinanceService{
		financeRepo: financeRepo,
	}
}

func (s *FinanceService) Finances(userID string) ([]*model.Finance, error) {
	return s.financeRepo.Finances(userID)
}

func (s *FinanceService) Create(userID string, input FinanceInput) (*model.Finance, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return nil, validation.Field("dueDate", err)
	}

	code := strings.ToUpper(input.Currency)
	if code == "" {
		code = currency.Base
	}

	finance := &model.Finance{
		ID:          uuid.New().String(),
		UserID:      userID,
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Currency:    code,
		DueDate:     dueDate,
		CreatedAt:   time.Now(),
	}

	err = s.financeRepo.Create(finance)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return finance, nil
}

// MarkPaid sets the paid flag. Paying without a date stamps today; unpaying clears the date.
func (s *FinanceService) MarkPaid(userID, financeID string, update FinanceUpdate) (*model.Finance, error) {
	finance, err := s.financeRepo.ByID(userID, financeID)
	if err != nil {
		return nil, err
	}

	finance.Paid = update.Paid
	switch {
	case !update.Paid:
		finance.PaidDate = nil
	case update.PaidDate != nil && *update.PaidDate != "":
		paidDate, err := parseDate(*update.PaidDate)
		if err != nil {
			return nil, validation.Field("paidDate", err)
		}
		finance.PaidDate = paidDate
	default:
		now := time.Now().UTC()
		finance.PaidDate = &now
	}

	err = s.financeRepo.UpdatePaid(finance)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return finance, nil
}

func (s *FinanceService) Delete(userID, financeID string) error {
	return s.financeRepo.Delete(userID, financeID)
}

// Totals converts every expense into target and sums them.
func Totals(finances []*model.Finance, target string) model.FinanceTotals {
	target = strings.ToUpper(target)
	if !currency.IsSupported(target) {
		target = currency.Base
	}

	totals := model.FinanceTotals{Currency: target}
	for _, f := range finances {
		amount := currency.Convert(f.Amount, f.Currency, target)
		totals.Total += amount
		if f.Paid {
			totals.Paid += amount
		}
	}

	totals.Total = currency.Round(totals.Total)
	totals.Paid = currency.Round(totals.Paid)
	totals.Outstanding = currency.Round(totals.Total - totals.Paid)
	totals.Formatted = currency.Format(totals.Total, target)
	return totals
}

package model

import (
	"time"
)

const (
	FinanceCategoryApplicationFee = "application_fee"
	FinanceCategoryVisaFee        = "visa_fee"
	FinanceCategoryTuition        = "tuition"
	FinanceCategoryLiving         = "living_expenses"
	FinanceCategoryTravel         = "travel"
	FinanceCategoryInsurance      = "insurance"
	FinanceCategoryOther          = "other"
)

var FinanceCategories = []string{
	FinanceCategoryApplicationFee,
	FinanceCategoryVisaFee,
	FinanceCategoryTuition,
	FinanceCategoryLiving,
	FinanceCategoryTravel,
	FinanceCategoryInsurance,
	FinanceCategoryOther,
}

type Finance struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Category    string     `db:"category" json:"category"`
	Description string     `db:"description" json:"description"`
	Amount      float64    `db:"amount" json:"amount"`
	Currency    string     `db:"currency" json:"currency"`
	Paid        bool       `db:"paid" json:"paid"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	PaidDate    *time.Time `db:"paid_date" json:"paidDate"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

// FinanceTotals are sums converted to a single currency.
type FinanceTotals struct {
	Currency    string  `json:"currency"`
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
	Formatted   string  `json:"formatted"`
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/validation"
)

func TestFinanceService(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	fee, err := env.finances.Create(user.ID, FinanceInput{
		Category:    model.FinanceCategoryApplicationFee,
		Description: "  UofT application  ",
		Amount:      180,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAD", fee.Currency)
	assert.Equal(t, "UofT application", fee.Description)

	tests := []struct {
		name  string
		input FinanceInput
		field string
	}{
		{"zero amount", FinanceInput{Category: model.FinanceCategoryOther, Description: "x", Amount: 0}, "amount"},
		{"unknown currency", FinanceInput{Category: model.FinanceCategoryOther, Description: "x", Amount: 1, Currency: "JPY"}, "currency"},
		{"unknown category", FinanceInput{Category: "food", Description: "x", Amount: 1}, "category"},
		{"bad due date", FinanceInput{Category: model.FinanceCategoryOther, Description: "x", Amount: 1, DueDate: "tomorrow"}, "dueDate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.finances.Create(user.ID, tc.input)
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	t.Run("mark paid stamps today", func(t *testing.T) {
		paid, err := env.finances.MarkPaid(user.ID, fee.ID, FinanceUpdate{Paid: true})
		require.NoError(t, err)
		require.NotNil(t, paid.PaidDate)
		assert.WithinDuration(t, time.Now(), *paid.PaidDate, time.Minute)
	})

	t.Run("explicit paid date", func(t *testing.T) {
		date := "2026-09-30"
		paid, err := env.finances.MarkPaid(user.ID, fee.ID, FinanceUpdate{Paid: true, PaidDate: &date})
		require.NoError(t, err)
		assert.Equal(t, date, paid.PaidDate.Format("2006-01-02"))
	})

	t.Run("unpay clears date", func(t *testing.T) {
		unpaid, err := env.finances.MarkPaid(user.ID, fee.ID, FinanceUpdate{Paid: false})
		require.NoError(t, err)
		assert.Nil(t, unpaid.PaidDate)
	})

	t.Run("foreign expense", func(t *testing.T) {
		other := env.register(t, "bob@example.com")
		_, err := env.finances.MarkPaid(other.ID, fee.ID, FinanceUpdate{Paid: true})
		assert.ErrorIs(t, err, repository.ErrFinanceNotFound)
	})

	require.NoError(t, env.finances.Delete(user.ID, fee.ID))
	list, err := env.finances.Finances(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTotals(t *testing.T) {
	finances := []*model.Finance{
		{Amount: 150, Currency: "CAD", Paid: true},
		{Amount: 740, Currency: "USD"},
		{Amount: 58, Currency: "GBP", Paid: true},
	}

	totals := Totals(finances, "cad")
	assert.Equal(t, "CAD", totals.Currency)
	assert.InDelta(t, 1250, totals.Total, 0.01)
	assert.InDelta(t, 250, totals.Paid, 0.01)
	assert.InDelta(t, 1000, totals.Outstanding, 0.01)

	totals = Totals(finances, "XYZ")
	assert.Equal(t, "CAD", totals.Currency)

	empty := Totals(nil, "USD")
	assert.Equal(t, model.FinanceTotals{Currency: "USD", Formatted: empty.Formatted}, empty)
}

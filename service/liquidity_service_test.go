package service

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhub-engine/domain"
)

var evalTime = time.Date(2026, time.March, 10, 10, 30, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func bank(id string, balance float64) domain.Account {
	return domain.Account{ID: id, Name: "Bank " + id, Type: domain.AccountBank, Balance: balance}
}

func card(id string, limit, balance float64, safePct *float64) domain.Account {
	return domain.Account{
		ID:                  id,
		Name:                "Card " + id,
		Type:                domain.AccountCreditCard,
		Balance:             balance,
		CreditLimit:         ptr(limit),
		SafeLimitPercentage: safePct,
	}
}

func expenseIn(id, accountID string, days int, amount float64) domain.RecurringObligation {
	return domain.RecurringObligation{
		ID:        id,
		AccountID: accountID,
		Type:      domain.ObligationExpense,
		Amount:    amount,
		StartDate: time.Date(2026, time.March, 10+days, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateSafeToSpend_CriticalWhenDuesExceedBalance(t *testing.T) {
	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts:    []domain.Account{bank("main", 10000)},
		Obligations: []domain.RecurringObligation{expenseIn("rent", "main", 3, 12000)},
	}, evalTime)

	assert.Equal(t, 10000.0, snapshot.LiquidBalance)
	assert.Equal(t, 12000.0, snapshot.UpcomingDues)
	assert.Equal(t, -2000.0, snapshot.LiquidSafeSpend)
	assert.Equal(t, domain.StatusCritical, snapshot.Status)
	require.NotNil(t, snapshot.TopAlert)
	assert.Equal(t, domain.AlertPaymentRisk, snapshot.TopAlert.Kind)
	assert.Equal(t, "main", snapshot.TopAlert.AccountID)
	assert.Contains(t, snapshot.TopAlert.Message, "Bank main")
	// the only account is both underfunded and suggested
	assert.Nil(t, snapshot.QuickFix)
}

func TestCalculateSafeToSpend_CreditSafetyCap(t *testing.T) {
	tests := []struct {
		name string
		card domain.Account
		want float64
	}{
		{"available credit is smaller", card("c", 100000, 80000, ptr(30)), 20000},
		{"safety cap is smaller", card("c", 100000, 10000, ptr(30)), 30000},
		{"default percentage", card("c", 10000, 0, nil), 3000},
		{"explicit zero percentage", card("c", 10000, 0, ptr(0)), 0},
		{"over limit", card("c", 10000, 12000, nil), 0},
		{"no limit", domain.Account{ID: "c", Type: domain.AccountCreditCard, Balance: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := CalculateSafeToSpend(domain.LiquidityInput{
				Accounts: []domain.Account{bank("main", 50000), tt.card},
			}, evalTime)

			assert.Equal(t, tt.want, snapshot.CreditSafeSpend)
			assert.Equal(t, 50000.0, snapshot.LiquidBalance)
			assert.Equal(t, snapshot.LiquidSafeSpend+tt.want, snapshot.SafeToSpendGlobal)
		})
	}
}

func TestCalculateSafeToSpend_DueWindowIsInclusive(t *testing.T) {
	income := expenseIn("salary", "main", 1, 9000)
	income.Type = domain.ObligationIncome

	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{bank("main", 100000)},
		Obligations: []domain.RecurringObligation{
			expenseIn("today", "main", 0, 1),
			expenseIn("last-day", "main", DueWindowDays, 10),
			expenseIn("too-late", "main", DueWindowDays+1, 100),
			expenseIn("overdue", "main", -1, 1000),
			income,
		},
	}, evalTime)

	assert.Equal(t, 11.0, snapshot.UpcomingDues)
}

func TestCalculateSafeToSpend_ReservedGoalsReduceLiquidity(t *testing.T) {
	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{bank("main", 100000)},
		Goals: []domain.Goal{
			{ID: "trip", CurrentAmount: 60000},
			{ID: "car", CurrentAmount: 35000},
			{ID: "bad", CurrentAmount: math.NaN()},
		},
	}, evalTime)

	assert.Equal(t, 95000.0, snapshot.ReservedAmount)
	assert.Equal(t, 5000.0, snapshot.LiquidSafeSpend)
	// 5000 is below 10% of 100000
	assert.Equal(t, domain.StatusTight, snapshot.Status)
	require.NotNil(t, snapshot.TopAlert)
	assert.Equal(t, domain.AlertLowSafeSpend, snapshot.TopAlert.Kind)
}

func TestCalculateSafeToSpend_Status(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		want    domain.LiquidityStatus
	}{
		{"comfortable", 5000, domain.StatusSafe},
		{"exactly at floor", TightAbsoluteFloor, domain.StatusSafe},
		{"below absolute floor", 1500, domain.StatusTight},
		{"overdrawn", -10, domain.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := CalculateSafeToSpend(domain.LiquidityInput{
				Accounts: []domain.Account{bank("main", tt.balance)},
			}, evalTime)
			assert.Equal(t, tt.want, snapshot.Status)
		})
	}
}

func TestCalculateSafeToSpend_QuickFixFromBestAccount(t *testing.T) {
	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{
			bank("bills", 1000),
			bank("savings", 50000),
		},
		Obligations: []domain.RecurringObligation{expenseIn("emi", "bills", 2, 3000)},
	}, evalTime)

	assert.Equal(t, 48000.0, snapshot.LiquidSafeSpend)
	assert.Equal(t, domain.StatusCritical, snapshot.Status)
	assert.Equal(t, "savings", snapshot.SuggestedAccountID)
	assert.Equal(t, "Bank savings", snapshot.SuggestedAccountName)
	assert.NotEmpty(t, snapshot.SuggestedReason)
	require.NotNil(t, snapshot.TopAlert)
	assert.Equal(t, "bills", snapshot.TopAlert.AccountID)
	assert.Equal(t, &domain.QuickFix{FromAccountID: "savings", ToAccountID: "bills", Amount: 2000}, snapshot.QuickFix)
}

func TestCalculateSafeToSpend_SuggestedAccount(t *testing.T) {
	wallet := domain.Account{ID: "wallet", Type: domain.AccountWallet, Balance: 9000, MinBuffer: ptr(5000)}

	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{
			card("visa", 100000, 0, nil),
			bank("first", 6000),
			wallet,
			bank("second", 6000),
		},
		Obligations: []domain.RecurringObligation{expenseIn("phone", "second", 1, 500)},
	}, evalTime)

	// first 6000, wallet 4000, second 5500: the credit card is never suggested
	assert.Equal(t, "first", snapshot.SuggestedAccountID)

	tie := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{bank("a", 3000), bank("b", 3000)},
	}, evalTime)
	assert.Equal(t, "a", tie.SuggestedAccountID)

	none := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{card("visa", 1000, 0, nil)},
	}, evalTime)
	assert.Empty(t, none.SuggestedAccountID)
}

func TestCalculateSafeToSpend_HighUtilizationAlert(t *testing.T) {
	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{
			bank("main", 100000),
			card("low", 10000, 1000, nil),
			card("high", 10000, 8000, nil),
		},
	}, evalTime)

	assert.Equal(t, domain.StatusSafe, snapshot.Status)
	assert.Equal(t, 5000.0, snapshot.CreditSafeSpend)
	require.NotNil(t, snapshot.TopAlert)
	assert.Equal(t, domain.AlertHighUtilization, snapshot.TopAlert.Kind)
	assert.Equal(t, "high", snapshot.TopAlert.AccountID)
}

func TestCalculateSafeToSpend_NoAlertWhenHealthy(t *testing.T) {
	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{bank("main", 100000), card("visa", 10000, 7000, nil)},
	}, evalTime)

	assert.Equal(t, domain.StatusSafe, snapshot.Status)
	assert.Nil(t, snapshot.TopAlert)
	assert.Nil(t, snapshot.QuickFix)
}

func TestCalculateSafeToSpend_NextDue(t *testing.T) {
	rent := expenseIn("rent", "main", 5, 15000)
	rent.Description = "Rent"
	salary := expenseIn("salary", "main", 1, 50000)
	salary.Type = domain.ObligationIncome

	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{bank("main", 100000)},
		Obligations: []domain.RecurringObligation{
			rent,
			expenseIn("overdue", "main", -1, 10),
			salary,
			expenseIn("gym", "main", 2, 40),
			expenseIn("netflix", "main", 2, 15),
		},
	}, evalTime)

	assert.Equal(t, &domain.NextDue{
		ObligationID:  "gym",
		Title:         "Upcoming Payment",
		Amount:        40,
		DaysRemaining: 2,
	}, snapshot.NextDue)

	far := CalculateSafeToSpend(domain.LiquidityInput{
		Obligations: []domain.RecurringObligation{rent, expenseIn("insurance", "main", 20, 900)},
	}, evalTime)
	require.NotNil(t, far.NextDue)
	assert.Equal(t, "Rent", far.NextDue.Title)
	assert.Equal(t, 5, far.NextDue.DaysRemaining)

	assert.Nil(t, CalculateSafeToSpend(domain.LiquidityInput{}, evalTime).NextDue)
}

func TestCalculateSafeToSpend_EvaluatesByCalendarDay(t *testing.T) {
	obligation := domain.RecurringObligation{
		ID:        "late-night",
		AccountID: "main",
		Type:      domain.ObligationExpense,
		Amount:    100,
		StartDate: time.Date(2026, time.March, 17, 23, 59, 0, 0, time.UTC),
	}

	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts:    []domain.Account{bank("main", 100000)},
		Obligations: []domain.RecurringObligation{obligation},
	}, evalTime)

	assert.Equal(t, 100.0, snapshot.UpcomingDues)
	assert.Equal(t, 7, snapshot.NextDue.DaysRemaining)
}

func TestCalculateSafeToSpend_DeterministicAndReadOnly(t *testing.T) {
	input := domain.LiquidityInput{
		Accounts:    []domain.Account{bank("bills", 1000), bank("savings", 50000), card("visa", 10000, 9000, ptr(25))},
		Obligations: []domain.RecurringObligation{expenseIn("emi", "bills", 2, 3000)},
		Goals:       []domain.Goal{{ID: "g", CurrentAmount: 100}},
		Currency:    "EUR",
	}
	before := domain.LiquidityInput{
		Accounts:    append([]domain.Account(nil), input.Accounts...),
		Obligations: append([]domain.RecurringObligation(nil), input.Obligations...),
		Goals:       append([]domain.Goal(nil), input.Goals...),
		Currency:    "EUR",
	}

	first := CalculateSafeToSpend(input, evalTime)
	second := CalculateSafeToSpend(input, evalTime)

	assert.Equal(t, first, second)
	assert.Equal(t, before, input)
	assert.Equal(t, "EUR", first.Currency)
}

func TestLiquidityService_UsesInjectedClock(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	svc := NewLiquidityService(logger, func() time.Time { return evalTime })

	snapshot := svc.SafeToSpend(domain.LiquidityInput{
		Accounts:    []domain.Account{bank("main", 10000)},
		Obligations: []domain.RecurringObligation{expenseIn("rent", "main", 3, 12000)},
	})

	assert.Equal(t, domain.StatusCritical, snapshot.Status)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), svc.Today())
}

func TestCalculateSafeToSpend_HugeBalancesStayFinite(t *testing.T) {
	snapshot := CalculateSafeToSpend(domain.LiquidityInput{
		Accounts: []domain.Account{
			bank("a", 1.7e308),
			bank("b", 1.7e308),
			bank("c", -1.7e308),
			bank("d", -1.7e308),
			bank("e", -1.7e308),
			card("visa", 1.7e308, -1.7e308, nil),
			card("amex", 1.7e308, -1.7e308, nil),
		},
		Obligations: []domain.RecurringObligation{
			expenseIn("x", "e", 1, 1.7e308),
			expenseIn("y", "e", 2, 1.7e308),
		},
		Goals: []domain.Goal{{ID: "g1", CurrentAmount: 1.7e308}, {ID: "g2", CurrentAmount: 1.7e308}},
	}, evalTime)

	for name, v := range map[string]float64{
		"liquidBalance":     snapshot.LiquidBalance,
		"upcomingDues":      snapshot.UpcomingDues,
		"reservedAmount":    snapshot.ReservedAmount,
		"liquidSafeSpend":   snapshot.LiquidSafeSpend,
		"creditSafeSpend":   snapshot.CreditSafeSpend,
		"safeToSpendGlobal": snapshot.SafeToSpendGlobal,
	} {
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), name)
		assert.LessOrEqual(t, math.Abs(v), OverflowCeiling, name)
	}
	assert.Equal(t, OverflowCeiling, snapshot.UpcomingDues)
	assert.Equal(t, OverflowCeiling, snapshot.CreditSafeSpend)
	require.NotNil(t, snapshot.QuickFix)
	assert.False(t, math.IsInf(snapshot.QuickFix.Amount, 0))

	_, err := json.Marshal(snapshot)
	assert.NoError(t, err)
}

package service

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhub-engine/domain"
)

func TestSimulateCompoundGrowth_ZeroReturn(t *testing.T) {
	result := SimulateCompoundGrowth(1000, 0, 2)

	assert.Equal(t, []domain.WealthPoint{
		{Year: 1, Invested: 12000, Wealth: 12000, Returns: 0},
		{Year: 2, Invested: 24000, Wealth: 24000, Returns: 0},
	}, result.WealthSeries)
	assert.Equal(t, 24000.0, result.Summary.Invested)
	assert.Equal(t, 24, result.Summary.MonthsSimulated)
	assert.False(t, result.Summary.Truncated)
}

func TestSimulateCompoundGrowth_MonthlyCompounding(t *testing.T) {
	result := SimulateCompoundGrowth(1000, 12, 1)

	// 1000 * sum(1.01^k, k=1..12)
	expected := 1000 * 1.01 * (math.Pow(1.01, 12) - 1) / 0.01
	assert.InDelta(t, expected, result.Summary.Wealth, 1e-6)
	assert.InDelta(t, expected-12000, result.Summary.Returns, 1e-6)
	require.Len(t, result.WealthSeries, 1)
	assert.Equal(t, math.Round(expected), result.WealthSeries[0].Wealth)
}

func TestSimulateCompoundGrowth_OverflowIsClamped(t *testing.T) {
	result := SimulateCompoundGrowth(1e12, 30, 100)

	assert.Equal(t, OverflowCeiling, result.Summary.Wealth)
	assert.True(t, result.Summary.Truncated)
	assert.Less(t, result.Summary.MonthsSimulated, MaxGrowthYears*12)
	assert.Less(t, len(result.WealthSeries), MaxGrowthYears)
	for _, p := range result.WealthSeries {
		assert.False(t, math.IsInf(p.Wealth, 0) || math.IsNaN(p.Wealth))
		assert.LessOrEqual(t, p.Wealth, OverflowCeiling)
	}
}

func TestSimulateCompoundGrowth_InputClamping(t *testing.T) {
	tests := []struct {
		name       string
		investment float64
		returnPct  float64
		years      int
		wantPoints int
		wantMonths int
	}{
		{"years floored at one", 100, 5, 0, 1, 12},
		{"negative years floored at one", 100, 5, -4, 1, 12},
		{"years capped at one hundred", 100, 0, 500, 100, 1200},
		{"nan investment", math.NaN(), 5, 3, 3, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SimulateCompoundGrowth(tt.investment, tt.returnPct, tt.years)
			assert.Len(t, result.WealthSeries, tt.wantPoints)
			assert.Equal(t, tt.wantMonths, result.Summary.MonthsSimulated)
		})
	}
}

func TestSimulateCompoundGrowth_LossesKeepReturnsNonNegative(t *testing.T) {
	floored := SimulateCompoundGrowth(1000, -200, 5)
	atFloor := SimulateCompoundGrowth(1000, MinAnnualReturnPct, 5)

	assert.Equal(t, atFloor, floored)
	assert.Greater(t, floored.Summary.Wealth, 0.0)
	assert.Equal(t, 0.0, floored.Summary.Returns)
	assert.Less(t, floored.Summary.GainLoss, 0.0)
	for _, p := range floored.WealthSeries {
		assert.Equal(t, 0.0, p.Returns)
	}
}

func TestSimulateCompoundGrowth_Deterministic(t *testing.T) {
	assert.Equal(t, SimulateCompoundGrowth(2500, 11.5, 30), SimulateCompoundGrowth(2500, 11.5, 30))
}

func TestWeightedDebtRate(t *testing.T) {
	assert.Equal(t, 0.0, WeightedDebtRate(nil))
	assert.Equal(t, 0.0, WeightedDebtRate([]domain.Liability{{Outstanding: 0, InterestRate: 20}}))
	assert.InDelta(t, 17.5, WeightedDebtRate([]domain.Liability{
		{Outstanding: 1000, InterestRate: 10},
		{Outstanding: 3000, InterestRate: 20},
	}), 1e-9)
}

func TestGrowthService_Project(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	svc := NewGrowthService(logger)

	result := svc.Project(domain.WealthInput{
		MonthlyInvestment:       5000,
		ExpectedAnnualReturnPct: 12,
		Years:                   10,
		Currency:                "INR",
		Liabilities: []domain.Liability{
			{Outstanding: 1000, InterestRate: 10},
			{Outstanding: 3000, InterestRate: 20},
		},
	})

	assert.Equal(t, "INR", result.Currency)
	require.NotNil(t, result.DebtComparison)
	assert.Equal(t, 17.5, result.DebtComparison.WeightedDebtRate)
	assert.False(t, result.DebtComparison.ReturnBeatsDebt)
	assert.Empty(t, hook.AllEntries())

	svc.Project(domain.WealthInput{MonthlyInvestment: 1e12, ExpectedAnnualReturnPct: 30, Years: 100})
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

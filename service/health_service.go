package service

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
)

type HealthService struct {
	log logrus.FieldLogger
	now func() time.Time
}

func NewHealthService(log logrus.FieldLogger, now func() time.Time) *HealthService {
	if now == nil {
		now = time.Now
	}
	return &HealthService{log: log, now: now}
}

// Today is the service clock truncated to the day.
func (s *HealthService) Today() time.Time {
	return startOfDay(s.now())
}

// Score resolves months active from the first transaction date when the
// caller did not supply it, then scores.
func (s *HealthService) Score(input domain.HealthInput) domain.HealthScoreResult {
	if input.MonthsActive <= 0 && input.FirstTransaction != nil {
		input.MonthsActive = float64(MonthsActiveSince(*input.FirstTransaction, s.now()))
	}
	result := CalculateHealthScore(input)
	s.log.WithField("score", result.Score).Debug("health score computed")
	return result
}

// MonthsActiveSince counts whole months between first and now, never less
// than 1.
func MonthsActiveSince(first, now time.Time) int {
	months := (now.Year()-first.Year())*12 + int(now.Month()-first.Month())
	if now.Day() < first.Day() {
		months--
	}
	if months < 1 {
		return 1
	}
	return months
}

// CalculateHealthScore scores aggregates starting from HealthBaseScore.
// With no income and no debt the neutral base score is returned untouched.
func CalculateHealthScore(input domain.HealthInput) domain.HealthScoreResult {
	income := NonNegative(input.TotalIncome)
	expenses := NonNegative(input.TotalExpenses)
	debt := NonNegative(input.TotalDebt)

	if income == 0 && debt == 0 {
		return domain.HealthScoreResult{Score: HealthBaseScore}
	}

	savingsRate := 0.0
	spendingRatio := 0.0
	if income > 0 {
		savingsRate = (income - expenses) / income
		spendingRatio = expenses / income
	}

	monthsActive := math.Max(1, NonNegative(input.MonthsActive))
	annualizedIncome := income / monthsActive * 12

	debtRatio := 0.0
	unbounded := false
	switch {
	case debt == 0:
	case annualizedIncome == 0:
		debtRatio = math.Inf(1)
		unbounded = true
	default:
		debtRatio = debt / annualizedIncome
	}

	result := domain.HealthScoreResult{
		Score:         ScoreRatios(savingsRate, debtRatio, spendingRatio),
		SavingsRate:   savingsRate,
		DebtRatio:     debtRatio,
		SpendingRatio: spendingRatio,
	}
	if unbounded {
		result.DebtRatio = UnboundedDebtRatio
		result.DebtRatioUnbounded = true
	}
	return result
}

// ScoreRatios applies the savings, debt and spending bands to the base
// score and clamps the outcome to [0,100].
func ScoreRatios(savingsRate, debtRatio, spendingRatio float64) int {
	score := float64(HealthBaseScore)

	switch {
	case savingsRate >= 0.4:
		score += 30
	case savingsRate >= 0.2:
		score += 20
	case savingsRate >= 0.1:
		score += 10
	case savingsRate > 0:
		score += 5
	default:
		score -= 20
	}

	switch {
	case debtRatio == 0:
		score += 20
	case debtRatio <= 0.3:
		score += 10
	case debtRatio <= 0.6:
		score -= 10
	case debtRatio <= 1.0:
		score -= 30
	default:
		score -= 50
	}

	switch {
	case spendingRatio <= 0.5:
		score += 20
	case spendingRatio <= 0.7:
		score += 10
	case spendingRatio <= 0.9:
	default:
		score -= 10
	}

	return int(math.Round(Clamp(score, 0, 100)))
}

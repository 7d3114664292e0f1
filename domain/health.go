package domain

import "time"

// HealthInput carries all-time aggregates. MonthsActive annualizes income;
// when it is zero and FirstTransaction is set, it is derived from that date.
type HealthInput struct {
	TotalIncome      float64    `json:"totalIncome"`
	TotalExpenses    float64    `json:"totalExpenses"`
	TotalDebt        float64    `json:"totalDebt"`
	MonthsActive     float64    `json:"monthsActive,omitempty"`
	FirstTransaction *time.Time `json:"firstTransaction,omitempty"`
}

// HealthScoreResult. DebtRatioUnbounded is set when there is debt but no
// income to service it; DebtRatio is then reported as -1.
type HealthScoreResult struct {
	Score              int     `json:"score"`
	SavingsRate        float64 `json:"savingsRate"`
	DebtRatio          float64 `json:"debtRatio"`
	SpendingRatio      float64 `json:"spendingRatio"`
	DebtRatioUnbounded bool    `json:"debtRatioUnbounded,omitempty"`
}

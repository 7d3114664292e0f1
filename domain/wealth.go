package domain

type WealthInput struct {
	MonthlyInvestment       float64 `json:"monthlyInvestment"`
	ExpectedAnnualReturnPct float64 `json:"expectedAnnualReturnPct"`
	Years                   int     `json:"years"`
	// Liabilities are optional; when present the result compares the
	// expected return against their weighted interest rate.
	Liabilities []Liability `json:"liabilities,omitempty"`
	Currency    string      `json:"currency,omitempty"`
}

type WealthPoint struct {
	Year     int     `json:"year"`
	Invested float64 `json:"invested"`
	Wealth   float64 `json:"wealth"`
	Returns  float64 `json:"returns"`
}

type WealthSummary struct {
	Invested float64 `json:"invested"`
	Wealth   float64 `json:"wealth"`
	Returns  float64 `json:"returns"`
	// GainLoss is wealth minus invested and may be negative.
	GainLoss        float64 `json:"gainLoss"`
	MonthsSimulated int     `json:"monthsSimulated"`
	Truncated       bool    `json:"truncated"`
}

type DebtComparison struct {
	WeightedDebtRate float64 `json:"weightedDebtRate"`
	ReturnBeatsDebt  bool    `json:"returnBeatsDebt"`
}

type WealthResult struct {
	WealthSeries   []WealthPoint   `json:"wealthSeries"`
	Summary        WealthSummary   `json:"summary"`
	DebtComparison *DebtComparison `json:"debtComparison,omitempty"`
	Currency       string          `json:"currency,omitempty"`
}

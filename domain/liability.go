package domain

type Strategy string

const (
	StrategyAvalanche Strategy = "avalanche"
	StrategySnowball  Strategy = "snowball"
)

// Liability is a read-only snapshot of a loan or card debt.
// InterestRate is an annual percentage.
type Liability struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Principal    float64 `json:"principal"`
	Outstanding  float64 `json:"outstanding"`
	InterestRate float64 `json:"interestRate"`
	EMIAmount    float64 `json:"emiAmount"`
}

type SimulationParameters struct {
	Strategy              Strategy `json:"strategy"`
	MonthlyExtra          float64  `json:"monthlyExtra"`
	LumpSum               float64  `json:"lumpSum"`
	RefinanceReductionPct float64  `json:"refinanceReductionPct"`
}

type DebtSimulationInput struct {
	Liabilities []Liability          `json:"liabilities"`
	Parameters  SimulationParameters `json:"parameters"`
	Currency    string               `json:"currency,omitempty"`
}

// BalancePoint is one charting sample of the combined balance on each track.
type BalancePoint struct {
	MonthIndex       int     `json:"monthIndex"`
	BaselineBalance  float64 `json:"baselineBalance"`
	OptimizedBalance float64 `json:"optimizedBalance"`
}

type LiabilityPayoff struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	MonthsToZeroBaseline  int     `json:"monthsToZeroBaseline"`
	MonthsToZeroOptimized int     `json:"monthsToZeroOptimized"`
	InterestBaseline      float64 `json:"interestBaseline"`
	InterestOptimized     float64 `json:"interestOptimized"`
}

// SimulationSummary holds the scalar outcome of both tracks. When a track does
// not reach zero inside the horizon its MonthsToZero equals the horizon and
// the matching Resolved flag is false.
type SimulationSummary struct {
	MonthsToZeroBaseline   int     `json:"monthsToZeroBaseline"`
	MonthsToZeroOptimized  int     `json:"monthsToZeroOptimized"`
	TotalInterestBaseline  float64 `json:"totalInterestBaseline"`
	TotalInterestOptimized float64 `json:"totalInterestOptimized"`
	BaselineResolved       bool    `json:"baselineResolved"`
	OptimizedResolved      bool    `json:"optimizedResolved"`
	MonthsSaved            int     `json:"monthsSaved"`
	InterestSaved          float64 `json:"interestSaved"`
	TotalDebt              float64 `json:"totalDebt"`
}

type SimulationResult struct {
	Strategy    Strategy          `json:"strategy"`
	Points      []BalancePoint    `json:"points"`
	Summary     SimulationSummary `json:"summary"`
	Liabilities []LiabilityPayoff `json:"liabilities"`
	Currency    string            `json:"currency,omitempty"`
}

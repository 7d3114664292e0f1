package service

const (
	SimulationHorizonMonths  = 360 // 30 años
	SampleIntervalMonths     = 6
	MaxRefinanceReductionPct = 5.0

	MinGrowthYears     = 1
	MaxGrowthYears     = 100
	MinAnnualReturnPct = -90.0
	OverflowCeiling    = 1e18

	DueWindowDays              = 7
	DefaultSafeLimitPercentage = 30.0
	TightRatio                 = 0.10
	TightAbsoluteFloor         = 2000.0
	HighUtilizationRatio       = 0.70

	HealthBaseScore    = 50
	UnboundedDebtRatio = -1.0

	// Newton-Raphson para tasa implícita
	RateSolverIterations = 20
	RateSolverTolerance  = 0.000001
)

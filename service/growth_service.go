package service

import (
	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
)

type GrowthService struct {
	log logrus.FieldLogger
}

func NewGrowthService(log logrus.FieldLogger) *GrowthService {
	return &GrowthService{log: log}
}

// Project runs the wealth projection and, when liabilities are supplied,
// compares the expected return with their weighted interest rate.
func (s *GrowthService) Project(input domain.WealthInput) domain.WealthResult {
	result := SimulateCompoundGrowth(input.MonthlyInvestment, input.ExpectedAnnualReturnPct, input.Years)
	result.Currency = input.Currency

	if len(input.Liabilities) > 0 {
		rate := WeightedDebtRate(input.Liabilities)
		result.DebtComparison = &domain.DebtComparison{
			WeightedDebtRate: RoundCents(rate),
			ReturnBeatsDebt:  Clamp(input.ExpectedAnnualReturnPct, MinAnnualReturnPct, OverflowCeiling) > rate,
		}
	}

	if result.Summary.Truncated {
		s.log.WithField("months", result.Summary.MonthsSimulated).
			Warn("wealth projection hit the overflow ceiling")
	}
	return result
}

// SimulateCompoundGrowth compounds monthly contributions and samples the
// series once per year. Wealth above OverflowCeiling (or non-finite) is
// clamped and the remaining months are not simulated.
func SimulateCompoundGrowth(
	monthlyInvestment float64,
	expectedAnnualReturnPct float64,
	years int,
) domain.WealthResult {
	contribution := NonNegative(monthlyInvestment)
	annual := Clamp(expectedAnnualReturnPct, MinAnnualReturnPct, OverflowCeiling) / 100
	monthlyRate := annual / 12
	months := ClampInt(years, MinGrowthYears, MaxGrowthYears) * 12

	series := make([]domain.WealthPoint, 0, months/12)
	wealth := 0.0
	invested := 0.0
	simulated := 0
	truncated := false

	for i := 1; i <= months; i++ {
		wealth = (wealth + contribution) * (1 + monthlyRate)
		invested += contribution
		simulated = i

		if wealth, truncated = CapOverflow(wealth); truncated {
			break
		}

		if i%12 == 0 {
			series = append(series, domain.WealthPoint{
				Year:     i / 12,
				Invested: RoundUnits(invested),
				Wealth:   RoundUnits(wealth),
				Returns:  RoundUnits(NonNegative(wealth - invested)),
			})
		}
	}

	return domain.WealthResult{
		WealthSeries: series,
		Summary: domain.WealthSummary{
			Invested:        invested,
			Wealth:          wealth,
			Returns:         NonNegative(wealth - invested),
			GainLoss:        wealth - invested,
			MonthsSimulated: simulated,
			Truncated:       truncated,
		},
	}
}

// WeightedDebtRate is the outstanding-weighted average annual rate, 0 when
// nothing is outstanding.
func WeightedDebtRate(liabilities []domain.Liability) float64 {
	outstanding := 0.0
	weighted := 0.0
	for _, l := range liabilities {
		balance := NonNegative(l.Outstanding)
		outstanding += balance
		weighted += balance * NonNegative(l.InterestRate)
	}
	if outstanding == 0 {
		return 0
	}
	return weighted / outstanding
}

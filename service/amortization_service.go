package service

import (
	"sort"

	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
)

type AmortizationService struct {
	log logrus.FieldLogger
}

func NewAmortizationService(log logrus.FieldLogger) *AmortizationService {
	return &AmortizationService{log: log}
}

// Simulate runs the payoff simulation and logs tracks that hit the horizon.
func (s *AmortizationService) Simulate(
	liabilities []domain.Liability,
	params domain.SimulationParameters,
) domain.SimulationResult {
	result := SimulateDebtPayoff(liabilities, params)

	entry := s.log.WithFields(logrus.Fields{
		"strategy":    result.Strategy,
		"liabilities": len(liabilities),
		"baseline":    result.Summary.MonthsToZeroBaseline,
		"optimized":   result.Summary.MonthsToZeroOptimized,
	})
	if !result.Summary.BaselineResolved || !result.Summary.OptimizedResolved {
		entry.Warnf("debt payoff did not resolve within %d months", SimulationHorizonMonths)
	} else {
		entry.Debug("debt payoff simulated")
	}
	return result
}

// track is the working state of one liability on one simulated path.
type track struct {
	index        int
	balance      float64
	monthlyRate  float64
	emi          float64
	interest     float64
	monthsToZero int
	paid         bool
}

// accrue applies one month of interest and the standard EMI payment.
// Returns the interest charged.
func (t *track) accrue(month int) float64 {
	if t.paid {
		return 0
	}
	interest := BoundMagnitude(t.balance * t.monthlyRate)
	principal := t.emi - interest
	if principal > t.balance {
		principal = t.balance
	}
	t.interest = BoundMagnitude(t.interest + interest)
	// un EMI menor que el interés hace crecer el saldo
	t.balance, _ = CapOverflow(t.balance - principal)
	t.settle(month)
	return interest
}

// prepay reduces the balance by up to amount and returns what was used.
func (t *track) prepay(amount float64, month int) float64 {
	if t.paid || amount <= 0 {
		return 0
	}
	used := amount
	if used > t.balance {
		used = t.balance
	}
	t.balance -= used
	t.settle(month)
	return used
}

func (t *track) settle(month int) {
	if t.paid || t.balance > 0 {
		return
	}
	t.balance = 0
	t.paid = true
	t.monthsToZero = month
}

func totalBalance(tracks []*track) float64 {
	total := 0.0
	for _, t := range tracks {
		total = BoundMagnitude(total + t.balance)
	}
	return total
}

// payoffMonth is the month the last liability reached zero, or the horizon
// when any of them is still open.
func payoffMonth(tracks []*track) (int, bool) {
	months := 0
	for _, t := range tracks {
		if !t.paid {
			return SimulationHorizonMonths, false
		}
		if t.monthsToZero > months {
			months = t.monthsToZero
		}
	}
	return months, true
}

func sanitizeParameters(params domain.SimulationParameters) domain.SimulationParameters {
	strategy := params.Strategy
	if strategy != domain.StrategySnowball {
		strategy = domain.StrategyAvalanche
	}
	return domain.SimulationParameters{
		Strategy:              strategy,
		MonthlyExtra:          NonNegative(params.MonthlyExtra),
		LumpSum:               NonNegative(params.LumpSum),
		RefinanceReductionPct: Clamp(params.RefinanceReductionPct, 0, MaxRefinanceReductionPct),
	}
}

// SimulateDebtPayoff projects a baseline track (EMI only) against an optimized
// track (strategy ordering, lump sum, monthly extra and refinance reduction).
// Input liabilities are never modified.
func SimulateDebtPayoff(
	liabilities []domain.Liability,
	params domain.SimulationParameters,
) domain.SimulationResult {
	params = sanitizeParameters(params)

	baseline := make([]*track, len(liabilities))
	optimized := make([]*track, len(liabilities))
	totalDebt := 0.0
	for i, l := range liabilities {
		balance := BoundMagnitude(NonNegative(l.Outstanding))
		rate := NonNegative(l.InterestRate)
		emi := BoundMagnitude(NonNegative(l.EMIAmount))
		totalDebt = BoundMagnitude(totalDebt + balance)

		baseline[i] = &track{index: i, balance: balance, monthlyRate: rate / 12 / 100, emi: emi}
		optimized[i] = &track{
			index:       i,
			balance:     balance,
			monthlyRate: NonNegative(rate-params.RefinanceReductionPct) / 12 / 100,
			emi:         emi,
		}
		baseline[i].settle(0)
		optimized[i].settle(0)
	}

	// Ordenar según estrategia, empates en orden de entrada.
	// Avalanche ranks on the nominal rate so a refinance floor at zero
	// cannot reorder liabilities.
	if params.Strategy == domain.StrategySnowball {
		sort.SliceStable(optimized, func(i, j int) bool {
			return optimized[i].balance < optimized[j].balance
		})
	} else {
		sort.SliceStable(optimized, func(i, j int) bool {
			return NonNegative(liabilities[optimized[i].index].InterestRate) >
				NonNegative(liabilities[optimized[j].index].InterestRate)
		})
	}

	lump := params.LumpSum
	for _, t := range optimized {
		if lump <= 0 {
			break
		}
		lump -= t.prepay(lump, 0)
	}

	points := []domain.BalancePoint{{
		MonthIndex:       0,
		BaselineBalance:  RoundUnits(totalBalance(baseline)),
		OptimizedBalance: RoundUnits(totalBalance(optimized)),
	}}

	baselineInterest := 0.0
	optimizedInterest := 0.0
	baselineTotal := totalBalance(baseline)
	optimizedTotal := totalBalance(optimized)

	month := 0
	for (baselineTotal > 0 || optimizedTotal > 0) && month < SimulationHorizonMonths {
		month++

		for _, t := range baseline {
			baselineInterest = BoundMagnitude(baselineInterest + t.accrue(month))
		}

		for _, t := range optimized {
			optimizedInterest = BoundMagnitude(optimizedInterest + t.accrue(month))
		}
		extra := params.MonthlyExtra
		for _, t := range optimized {
			if extra <= 0 {
				break
			}
			extra -= t.prepay(extra, month)
		}

		baselineTotal = totalBalance(baseline)
		optimizedTotal = totalBalance(optimized)

		done := baselineTotal <= 0 && optimizedTotal <= 0
		if month%SampleIntervalMonths == 0 || done || month == SimulationHorizonMonths {
			points = append(points, domain.BalancePoint{
				MonthIndex:       month,
				BaselineBalance:  RoundUnits(baselineTotal),
				OptimizedBalance: RoundUnits(optimizedTotal),
			})
		}
	}

	baselineMonths, baselineResolved := payoffMonth(baseline)
	optimizedMonths, optimizedResolved := payoffMonth(optimized)

	payoffs := make([]domain.LiabilityPayoff, len(liabilities))
	for i, l := range liabilities {
		payoffs[i] = domain.LiabilityPayoff{
			ID:                   l.ID,
			Name:                 l.Name,
			MonthsToZeroBaseline: monthsOrHorizon(baseline[i]),
			InterestBaseline:     RoundCents(baseline[i].interest),
		}
	}
	for _, t := range optimized {
		payoffs[t.index].MonthsToZeroOptimized = monthsOrHorizon(t)
		payoffs[t.index].InterestOptimized = RoundCents(t.interest)
	}

	return domain.SimulationResult{
		Strategy: params.Strategy,
		Points:   points,
		Summary: domain.SimulationSummary{
			MonthsToZeroBaseline:   baselineMonths,
			MonthsToZeroOptimized:  optimizedMonths,
			TotalInterestBaseline:  RoundCents(baselineInterest),
			TotalInterestOptimized: RoundCents(optimizedInterest),
			BaselineResolved:       baselineResolved,
			OptimizedResolved:      optimizedResolved,
			MonthsSaved:            baselineMonths - optimizedMonths,
			InterestSaved:          RoundCents(baselineInterest - optimizedInterest),
			TotalDebt:              RoundCents(totalDebt),
		},
		Liabilities: payoffs,
	}
}

func monthsOrHorizon(t *track) int {
	if !t.paid {
		return SimulationHorizonMonths
	}
	return t.monthsToZero
}

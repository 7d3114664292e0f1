package service

import (
	"math"

	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
)

type LoanService struct {
	log logrus.FieldLogger
}

// NewLoanService creates a new LoanService.
func NewLoanService(log logrus.FieldLogger) *LoanService {
	return &LoanService{log: log}
}

// CalculateLoan computes EMI, totals and outstanding for a reducing-balance
// loan. Invalid inputs yield a zero result.
func (s *LoanService) CalculateLoan(input domain.LoanInput) domain.LoanResult {
	amount := NonNegative(input.Amount)
	rate := NonNegative(input.InterestRate)

	if amount <= 0 || input.TermMonths <= 0 {
		s.log.WithField("termMonths", input.TermMonths).Debug("loan input out of range, returning zero result")
		return domain.LoanResult{}
	}

	cuota := EMI(amount, rate, input.TermMonths)
	total := cuota * float64(input.TermMonths)

	result := domain.LoanResult{
		MonthlyPayment: RoundCents(cuota),
		TotalPayment:   RoundCents(total),
		TotalInterest:  RoundCents(total - amount),
		Outstanding:    RoundCents(OutstandingAfter(amount, rate, input.TermMonths, input.InstallmentsPaid)),
	}

	if emi := NonNegative(input.EMI); emi > 0 {
		result.ImpliedRate = RoundCents(SolveAnnualRate(amount, emi, input.TermMonths))
		result.TenureForEMI = Tenure(amount, emi, rate)
	}
	return result
}

// EMI is the fixed installment for principal at annualRate (percent) over
// months.
func EMI(principal, annualRate float64, months int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}
	r := annualRate / 12 / 100
	n := float64(months)
	if r == 0 {
		return principal / n
	}
	pow := math.Pow(1+r, n)
	return principal * r * pow / (pow - 1)
}

// OutstandingAfter is the remaining principal once paid installments are
// settled. paid is clamped to [0, months].
func OutstandingAfter(principal, annualRate float64, months, paid int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}
	paid = ClampInt(paid, 0, months)
	r := annualRate / 12 / 100
	var outstanding float64
	if r == 0 {
		outstanding = principal - EMI(principal, annualRate, months)*float64(paid)
	} else {
		powN := math.Pow(1+r, float64(months))
		powK := math.Pow(1+r, float64(paid))
		outstanding = principal * (powN - powK) / (powN - 1)
	}
	return math.Max(0, outstanding)
}

// Tenure is the number of months emi needs to clear principal. Returns 0
// when emi never covers the monthly interest.
func Tenure(principal, emi, annualRate float64) int {
	if principal <= 0 || emi <= 0 || annualRate < 0 {
		return 0
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return int(math.Ceil(principal / emi))
	}
	if emi <= principal*r {
		return 0
	}
	n := math.Log(emi/(emi-principal*r)) / math.Log(1+r)
	return int(math.Ceil(n))
}

// SolveAnnualRate finds the annual rate (percent) implied by emi using
// Newton-Raphson, bounded to RateSolverIterations. Returns 0 when emi does
// not exceed a zero-interest repayment.
func SolveAnnualRate(principal, emi float64, months int) float64 {
	if principal <= 0 || emi <= 0 || months <= 0 || emi*float64(months) <= principal {
		return 0
	}
	n := float64(months)
	r := 0.1 / 12
	for i := 0; i < RateSolverIterations; i++ {
		pow := math.Pow(1+r, n)
		f := emi*(pow-1) - principal*r*pow
		df := emi*n*math.Pow(1+r, n-1) - principal*(pow+r*n*math.Pow(1+r, n-1))
		if df == 0 {
			break
		}
		next := r - f/df
		if math.Abs(next-r) < RateSolverTolerance {
			r = next
			break
		}
		r = next
	}
	return NonNegative(r * 12 * 100)
}

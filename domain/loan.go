package domain

// LoanInput describes a reducing-balance loan. InstallmentsPaid and EMI are
// optional: InstallmentsPaid drives the outstanding estimate, EMI lets the
// annual rate be solved when InterestRate is unknown.
type LoanInput struct {
	Amount           float64 `json:"amount"`
	InterestRate     float64 `json:"interestRate"`
	TermMonths       int     `json:"termMonths"`
	InstallmentsPaid int     `json:"installmentsPaid,omitempty"`
	EMI              float64 `json:"emi,omitempty"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Outstanding    float64 `json:"outstanding"`
	// ImpliedRate is the annual rate solved from EMI, 0 when EMI is absent.
	ImpliedRate float64 `json:"impliedRate,omitempty"`
	// TenureForEMI is the number of months EMI needs to clear Amount at
	// InterestRate, 0 when EMI is absent or never covers the interest.
	TenureForEMI int `json:"tenureForEmi,omitempty"`
}

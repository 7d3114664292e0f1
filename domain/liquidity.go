package domain

import "time"

type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountCash       AccountType = "cash"
	AccountCreditCard AccountType = "credit_card"
	AccountWallet     AccountType = "wallet"
)

// Account is a snapshot of a funds source. For credit cards Balance is the
// outstanding debt, not available funds.
type Account struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Type                AccountType `json:"type"`
	Balance             float64     `json:"balance"`
	CreditLimit         *float64    `json:"creditLimit,omitempty"`
	SafeLimitPercentage *float64    `json:"safeLimitPercentage,omitempty"`
	MinBuffer           *float64    `json:"minBuffer,omitempty"`
}

type ObligationType string

const (
	ObligationExpense ObligationType = "expense"
	ObligationIncome  ObligationType = "income"
)

type RecurringObligation struct {
	ID          string         `json:"id"`
	AccountID   string         `json:"accountId"`
	Type        ObligationType `json:"type"`
	Amount      float64        `json:"amount"`
	StartDate   time.Time      `json:"startDate"`
	Description string         `json:"description,omitempty"`
}

// Goal money is earmarked and excluded from spendable liquidity.
type Goal struct {
	ID            string  `json:"id"`
	Name          string  `json:"name,omitempty"`
	CurrentAmount float64 `json:"currentAmount"`
}

type LiquidityInput struct {
	Accounts    []Account             `json:"accounts"`
	Obligations []RecurringObligation `json:"obligations"`
	Goals       []Goal                `json:"goals"`
	Currency    string                `json:"currency,omitempty"`
}

type LiquidityStatus string

const (
	StatusSafe     LiquidityStatus = "SAFE"
	StatusTight    LiquidityStatus = "TIGHT"
	StatusCritical LiquidityStatus = "CRITICAL"
)

type AlertKind string

const (
	AlertPaymentRisk     AlertKind = "payment_risk"
	AlertLowSafeSpend    AlertKind = "low_safe_spend"
	AlertHighUtilization AlertKind = "high_utilization"
)

type Alert struct {
	Kind        AlertKind `json:"kind"`
	AccountID   string    `json:"accountId,omitempty"`
	AccountName string    `json:"accountName,omitempty"`
	Message     string    `json:"message"`
}

// QuickFix is a suggested transfer. It is never executed by the engine.
type QuickFix struct {
	FromAccountID string  `json:"fromAccountId"`
	ToAccountID   string  `json:"toAccountId"`
	Amount        float64 `json:"amount"`
}

type NextDue struct {
	ObligationID  string  `json:"obligationId"`
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	DaysRemaining int     `json:"daysRemaining"`
}

type LiquiditySnapshot struct {
	LiquidBalance        float64         `json:"liquidBalance"`
	UpcomingDues         float64         `json:"upcomingDues"`
	ReservedAmount       float64         `json:"reservedAmount"`
	LiquidSafeSpend      float64         `json:"liquidSafeSpend"`
	CreditSafeSpend      float64         `json:"creditSafeSpend"`
	SafeToSpendGlobal    float64         `json:"safeToSpendGlobal"`
	Status               LiquidityStatus `json:"status"`
	SuggestedAccountID   string          `json:"suggestedAccountId,omitempty"`
	SuggestedAccountName string          `json:"suggestedAccountName,omitempty"`
	SuggestedReason      string          `json:"suggestedReason,omitempty"`
	TopAlert             *Alert          `json:"topAlert"`
	QuickFix             *QuickFix       `json:"quickFix,omitempty"`
	NextDue              *NextDue        `json:"nextDue,omitempty"`
	Currency             string          `json:"currency,omitempty"`
}

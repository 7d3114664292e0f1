package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
)

const suggestedReason = "Highest free buffer after upcoming payments"

type LiquidityService struct {
	log logrus.FieldLogger
	now func() time.Time
}

// NewLiquidityService builds the service with a clock; nil uses time.Now.
func NewLiquidityService(log logrus.FieldLogger, now func() time.Time) *LiquidityService {
	if now == nil {
		now = time.Now
	}
	return &LiquidityService{log: log, now: now}
}

// Today is the evaluation date the service would use right now.
func (s *LiquidityService) Today() time.Time {
	return startOfDay(s.now())
}

func (s *LiquidityService) SafeToSpend(input domain.LiquidityInput) domain.LiquiditySnapshot {
	snapshot := CalculateSafeToSpend(input, s.now())
	s.log.WithFields(logrus.Fields{
		"status":    snapshot.Status,
		"accounts":  len(input.Accounts),
		"safeSpend": RoundCents(snapshot.SafeToSpendGlobal),
	}).Debug("safe-to-spend computed")
	return snapshot
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysUntil counts calendar days from today to date in today's location.
func daysUntil(today, date time.Time) int {
	due := startOfDay(date.In(today.Location()))
	return int(math.Round(due.Sub(today).Hours() / 24))
}

// dueSoon reports whether an obligation is an expense dated inside
// [today, today+DueWindowDays].
func dueSoon(today time.Time, o domain.RecurringObligation) bool {
	if o.Type != domain.ObligationExpense {
		return false
	}
	days := daysUntil(today, o.StartDate)
	return days >= 0 && days <= DueWindowDays
}

func optional(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return SafeNumber(*v)
}

// CalculateSafeToSpend derives the liquidity snapshot as of the calendar day
// of asOf. It does not modify its input.
func CalculateSafeToSpend(input domain.LiquidityInput, asOf time.Time) domain.LiquiditySnapshot {
	today := startOfDay(asOf)

	duesByAccount := make(map[string]float64)
	upcomingDues := 0.0
	for _, o := range input.Obligations {
		if !dueSoon(today, o) {
			continue
		}
		amount := NonNegative(o.Amount)
		upcomingDues = BoundMagnitude(upcomingDues + amount)
		duesByAccount[o.AccountID] = BoundMagnitude(duesByAccount[o.AccountID] + amount)
	}

	liquidBalance := 0.0
	creditSafeSpend := 0.0
	var liquid, cards []domain.Account
	for _, a := range input.Accounts {
		if a.Type == domain.AccountCreditCard {
			cards = append(cards, a)
			creditSafeSpend = BoundMagnitude(creditSafeSpend + safeCardSpend(a))
			continue
		}
		liquid = append(liquid, a)
		liquidBalance = BoundMagnitude(liquidBalance + SafeNumber(a.Balance))
	}

	reservedAmount := 0.0
	for _, g := range input.Goals {
		reservedAmount = BoundMagnitude(reservedAmount + NonNegative(g.CurrentAmount))
	}

	liquidSafeSpend := BoundMagnitude(liquidBalance - upcomingDues - reservedAmount)

	snapshot := domain.LiquiditySnapshot{
		LiquidBalance:     liquidBalance,
		UpcomingDues:      upcomingDues,
		ReservedAmount:    reservedAmount,
		LiquidSafeSpend:   liquidSafeSpend,
		CreditSafeSpend:   creditSafeSpend,
		SafeToSpendGlobal: BoundMagnitude(liquidSafeSpend + creditSafeSpend),
		Currency:          input.Currency,
	}

	// Cuenta sugerida: mayor buffer libre, el primero gana empates
	var suggested *domain.Account
	maxBuffer := math.Inf(-1)
	for i := range liquid {
		a := &liquid[i]
		buffer := BoundMagnitude(SafeNumber(a.Balance) - duesByAccount[a.ID] - optional(a.MinBuffer, 0))
		if buffer > maxBuffer {
			maxBuffer = buffer
			suggested = a
		}
	}
	if suggested != nil {
		snapshot.SuggestedAccountID = suggested.ID
		snapshot.SuggestedAccountName = suggested.Name
		snapshot.SuggestedReason = suggestedReason
	}

	var underfunded *domain.Account
	for i := range liquid {
		if SafeNumber(liquid[i].Balance) < duesByAccount[liquid[i].ID] {
			underfunded = &liquid[i]
			break
		}
	}

	switch {
	case liquidSafeSpend < 0 || underfunded != nil:
		snapshot.Status = domain.StatusCritical
	case liquidSafeSpend < TightRatio*liquidBalance || liquidSafeSpend < TightAbsoluteFloor:
		snapshot.Status = domain.StatusTight
	default:
		snapshot.Status = domain.StatusSafe
	}

	snapshot.TopAlert = topAlert(snapshot.Status, underfunded, cards)

	if snapshot.Status == domain.StatusCritical && underfunded != nil &&
		suggested != nil && suggested.ID != underfunded.ID {
		snapshot.QuickFix = &domain.QuickFix{
			FromAccountID: suggested.ID,
			ToAccountID:   underfunded.ID,
			Amount:        BoundMagnitude(duesByAccount[underfunded.ID] - SafeNumber(underfunded.Balance)),
		}
	}

	snapshot.NextDue = nextDue(today, input.Obligations)
	return snapshot
}

func safeCardSpend(card domain.Account) float64 {
	limit := NonNegative(optional(card.CreditLimit, 0))
	available := math.Max(0, limit-SafeNumber(card.Balance))
	safetyCap := limit * NonNegative(optional(card.SafeLimitPercentage, DefaultSafeLimitPercentage)) / 100
	return BoundMagnitude(math.Min(available, safetyCap))
}

// utilization is balance over limit. A card with no limit is fully utilized
// as soon as it carries a balance.
func utilization(card domain.Account) float64 {
	limit := NonNegative(optional(card.CreditLimit, 0))
	balance := SafeNumber(card.Balance)
	if limit == 0 {
		if balance > 0 {
			return 1
		}
		return 0
	}
	return balance / limit
}

func topAlert(status domain.LiquidityStatus, underfunded *domain.Account, cards []domain.Account) *domain.Alert {
	if underfunded != nil {
		return &domain.Alert{
			Kind:        domain.AlertPaymentRisk,
			AccountID:   underfunded.ID,
			AccountName: underfunded.Name,
			Message:     fmt.Sprintf("Payment risk: %s insufficient for upcoming dues.", underfunded.Name),
		}
	}
	if status == domain.StatusTight {
		return &domain.Alert{
			Kind:    domain.AlertLowSafeSpend,
			Message: "Low Safe-to-Spend: Consider postponing large purchases.",
		}
	}
	for _, card := range cards {
		if utilization(card) > HighUtilizationRatio {
			return &domain.Alert{
				Kind:        domain.AlertHighUtilization,
				AccountID:   card.ID,
				AccountName: card.Name,
				Message: fmt.Sprintf("High credit utilization on %s (>%.0f%%).",
					card.Name, HighUtilizationRatio*100),
			}
		}
	}
	return nil
}

func nextDue(today time.Time, obligations []domain.RecurringObligation) *domain.NextDue {
	type candidate struct {
		obligation domain.RecurringObligation
		days       int
	}
	var candidates []candidate
	for _, o := range obligations {
		if o.Type != domain.ObligationExpense {
			continue
		}
		if days := daysUntil(today, o.StartDate); days >= 0 {
			candidates = append(candidates, candidate{obligation: o, days: days})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].days < candidates[j].days
	})

	first := candidates[0]
	title := first.obligation.Description
	if title == "" {
		title = "Upcoming Payment"
	}
	return &domain.NextDue{
		ObligationID:  first.obligation.ID,
		Title:         title,
		Amount:        NonNegative(first.obligation.Amount),
		DaysRemaining: first.days,
	}
}

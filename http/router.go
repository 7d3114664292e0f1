package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Debt      *DebtHandler
	Wealth    *WealthHandler
	Liquidity *LiquidityHandler
	Health    *HealthScoreHandler
	Loan      *LoanHandler
	QuickFix  *QuickFixHandler
}

// NewRouter mounts the calculators under /v1 behind the rate limiter; the
// liveness check is left unthrottled.
func NewRouter(h Handlers, limiter *RateLimiter, log logrus.FieldLogger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(log))

	r.HandleFunc("/health", Liveness).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(RateLimitMiddleware(limiter))
	api.HandleFunc("/debt/simulate", h.Debt.SimulatePayoff).Methods(http.MethodPost)
	api.HandleFunc("/wealth/simulate", h.Wealth.SimulateGrowth).Methods(http.MethodPost)
	api.HandleFunc("/liquidity/safe-to-spend", h.Liquidity.SafeToSpend).Methods(http.MethodPost)
	api.HandleFunc("/liquidity/quick-fix", h.QuickFix.Apply).Methods(http.MethodPost)
	api.HandleFunc("/health/score", h.Health.Score).Methods(http.MethodPost)
	api.HandleFunc("/loan/details", h.Loan.CalculateLoan).Methods(http.MethodPost)

	return r
}

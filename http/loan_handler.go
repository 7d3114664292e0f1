package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"finhub-engine/repository"
	"finhub-engine/service"
)

type LoanHandler struct {
	calculator
	service *service.LoanService
}

func NewLoanHandler(
	service *service.LoanService,
	cache repository.CacheRepository,
	log logrus.FieldLogger,
) *LoanHandler {
	return &LoanHandler{calculator: calculator{cache: cache, log: log}, service: service}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.calculator, w, r, "loan-details", "", h.service.CalculateLoan)
}

package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
	"finhub-engine/repository"
	"finhub-engine/service"
)

type DebtHandler struct {
	calculator
	service *service.AmortizationService
}

func NewDebtHandler(
	service *service.AmortizationService,
	cache repository.CacheRepository,
	log logrus.FieldLogger,
) *DebtHandler {
	return &DebtHandler{calculator: calculator{cache: cache, log: log}, service: service}
}

func (h *DebtHandler) SimulatePayoff(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.calculator, w, r, "debt-simulate", "",
		func(input domain.DebtSimulationInput) domain.SimulationResult {
			result := h.service.Simulate(input.Liabilities, input.Parameters)
			result.Currency = input.Currency
			return result
		})
}

package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"finhub-engine/repository"
	"finhub-engine/service"
)

type WealthHandler struct {
	calculator
	service *service.GrowthService
}

func NewWealthHandler(
	service *service.GrowthService,
	cache repository.CacheRepository,
	log logrus.FieldLogger,
) *WealthHandler {
	return &WealthHandler{calculator: calculator{cache: cache, log: log}, service: service}
}

func (h *WealthHandler) SimulateGrowth(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.calculator, w, r, "wealth-simulate", "", h.service.Project)
}

package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"finhub-engine/repository"
	"finhub-engine/service"
)

type LiquidityHandler struct {
	calculator
	service *service.LiquidityService
}

func NewLiquidityHandler(
	service *service.LiquidityService,
	cache repository.CacheRepository,
	log logrus.FieldLogger,
) *LiquidityHandler {
	return &LiquidityHandler{calculator: calculator{cache: cache, log: log}, service: service}
}

// SafeToSpend depends on the evaluation date, so cached answers are scoped
// to the current day.
func (h *LiquidityHandler) SafeToSpend(w http.ResponseWriter, r *http.Request) {
	day := h.service.Today().Format(time.DateOnly)
	serveCalculation(h.calculator, w, r, "safe-to-spend", day, h.service.SafeToSpend)
}

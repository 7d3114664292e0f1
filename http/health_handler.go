package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"finhub-engine/repository"
	"finhub-engine/service"
)

type HealthScoreHandler struct {
	calculator
	service *service.HealthService
}

func NewHealthScoreHandler(
	service *service.HealthService,
	cache repository.CacheRepository,
	log logrus.FieldLogger,
) *HealthScoreHandler {
	return &HealthScoreHandler{calculator: calculator{cache: cache, log: log}, service: service}
}

// Score is scoped by day: months active derived from the first transaction
// turns over on the day of month, not on the first.
func (h *HealthScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	day := h.service.Today().Format(time.DateOnly)
	serveCalculation(h.calculator, w, r, "health-score", day, h.service.Score)
}

// Liveness answers the orchestrator health check.
func Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy","service":"finhub-engine"}` + "\n"))
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"finhub-engine/domain"
	"finhub-engine/repository"
)

// QuickFixHandler hands a quick fix chosen by the user to the injected
// transfer gateway.
type QuickFixHandler struct {
	gateway repository.TransferGateway
	log     logrus.FieldLogger
}

func NewQuickFixHandler(gateway repository.TransferGateway, log logrus.FieldLogger) *QuickFixHandler {
	return &QuickFixHandler{gateway: gateway, log: log}
}

func (h *QuickFixHandler) Apply(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}

	var fix domain.QuickFix
	if err := json.Unmarshal(body, &fix); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.gateway.Transfer(r.Context(), fix)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTransfer) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.WithError(err).Error("transfer gateway failed")
		http.Error(w, "transfer failed", http.StatusBadGateway)
		return
	}

	payload, err := encode(record)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.log.WithFields(logrus.Fields{
		"transfer": record.ID,
		"from":     fix.FromAccountID,
		"to":       fix.ToAccountID,
	}).Info("quick fix submitted")
	writeJSON(w, h.log, http.StatusCreated, payload)
}

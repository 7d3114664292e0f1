package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"finhub-engine/domain"
)

var ErrInvalidTransfer = errors.New("invalid transfer request")

// TransferGatewayMemory records transfers in memory instead of moving funds.
type TransferGatewayMemory struct {
	mu   sync.Mutex
	now  func() time.Time
	data []domain.TransferRecord
}

// NewTransferGatewayMemory creates a new in-memory transfer gateway.
func NewTransferGatewayMemory() *TransferGatewayMemory {
	return &TransferGatewayMemory{
		now:  time.Now,
		data: []domain.TransferRecord{},
	}
}

// Transfer validates and stores the request.
func (g *TransferGatewayMemory) Transfer(
	_ context.Context,
	fix domain.QuickFix,
) (domain.TransferRecord, error) {
	if fix.FromAccountID == "" || fix.ToAccountID == "" || fix.FromAccountID == fix.ToAccountID {
		return domain.TransferRecord{}, ErrInvalidTransfer
	}
	if !(fix.Amount > 0) {
		return domain.TransferRecord{}, ErrInvalidTransfer
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	record := domain.TransferRecord{
		ID:          uuid.NewString(),
		QuickFix:    fix,
		RequestedAt: g.now().UTC(),
	}
	g.data = append(g.data, record)
	return record, nil
}

// Transfers returns a copy of everything recorded so far.
func (g *TransferGatewayMemory) Transfers() []domain.TransferRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.TransferRecord, len(g.data))
	copy(out, g.data)
	return out
}

package repository

import (
	"context"

	"finhub-engine/domain"
)

// TransferGateway executes a suggested quick fix. The liquidity engine only
// produces the request; callers decide whether to hand it to a gateway.
type TransferGateway interface {
	Transfer(ctx context.Context, fix domain.QuickFix) (domain.TransferRecord, error)
}

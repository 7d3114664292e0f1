package domain

import "time"

type TransferRecord struct {
	ID          string    `json:"id"`
	QuickFix    QuickFix  `json:"quickFix"`
	RequestedAt time.Time `json:"requestedAt"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a balance and the ids of the transactions that touched it,
// in the order they were committed. The IBAN doubles as the primary key.
// Balance is never negative in a committed account.
type Account struct {
	IBAN            string          `json:"iban"`
	Balance         decimal.Decimal `json:"balance"`
	TransferHistory []string        `json:"transfer_history"`
	CreatedAt       time.Time       `json:"created_at"`
}

package model

import "time"

// Owner references its accounts by IBAN instead of embedding them, so an
// account is never duplicated into a stale nested copy.
type Owner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BankAccounts []string  `json:"bank_accounts"`
	CreatedAt    time.Time `json:"created_at"`
}

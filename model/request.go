package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerPayload is the nested owner object of a CreateOwnerRequest.
type OwnerPayload struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateOwnerRequest defines the payload for creating a new owner with an
// initial account. Positivity of the amount is a business rule checked by
// the service; the tags only reject a missing or zero amount at the door.
type CreateOwnerRequest struct {
	Owner  OwnerPayload    `json:"owner" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type CreateOwnerResponse struct {
	ID   string `json:"id"`
	IBAN string `json:"iban"`
}

type CreateAccountResponse struct {
	IBAN string `json:"iban"`
}

// TransferResponse reports the outward transaction id and the origin
// account's balance after commit. Balances serialize as decimal strings.
type TransferResponse struct {
	TransactionReferenceNumber string          `json:"transaction_reference_number"`
	AccountBalance             decimal.Decimal `json:"account_balance"`
}

type BalanceResponse struct {
	AccountBalance decimal.Decimal `json:"account_balance"`
}

// TransactionView is one history entry as returned to clients. Exactly one
// of Origin and Destination is set; the other is null on the wire.
type TransactionView struct {
	TransactionType TransactionType `json:"transaction_type"`
	Timestamp       time.Time       `json:"timestamp"`
	Amount          decimal.Decimal `json:"amount"`
	Origin          *string         `json:"origin"`
	Destination     *string         `json:"destination"`
}

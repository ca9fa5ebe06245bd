package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	// TransactionTypeTransfer is the outward leg, recorded on the origin account.
	TransactionTypeTransfer TransactionType = "TRANSFER"
	// TransactionTypeReceive is the inward leg, recorded on the destination account.
	TransactionTypeReceive TransactionType = "RECEIVE"
)

// Transaction is one immutable leg of a funds movement. Type tags what the
// Counterparty field holds: the destination IBAN for a TRANSFER leg, the
// origin IBAN for a RECEIVE leg. Records are never updated or deleted once
// written.
type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"transaction_type"`
	Timestamp    time.Time       `json:"timestamp"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty"`
}

// NewOutwardTransaction builds the origin-side leg of a transfer.
func NewOutwardTransaction(id, destination string, amount decimal.Decimal, ts time.Time) *Transaction {
	return &Transaction{
		ID:           id,
		Type:         TransactionTypeTransfer,
		Timestamp:    ts,
		Amount:       amount,
		Counterparty: destination,
	}
}

// NewInwardTransaction builds the destination-side leg of a transfer.
func NewInwardTransaction(id, origin string, amount decimal.Decimal, ts time.Time) *Transaction {
	return &Transaction{
		ID:           id,
		Type:         TransactionTypeReceive,
		Timestamp:    ts,
		Amount:       amount,
		Counterparty: origin,
	}
}

// View maps the tagged counterparty into the wire shape, where the unused
// side is an explicit null.
func (t *Transaction) View() TransactionView {
	view := TransactionView{
		TransactionType: t.Type,
		Timestamp:       t.Timestamp,
		Amount:          t.Amount,
	}
	counterparty := t.Counterparty
	switch t.Type {
	case TransactionTypeTransfer:
		view.Destination = &counterparty
	case TransactionTypeReceive:
		view.Origin = &counterparty
	}
	return view
}

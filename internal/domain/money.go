package domain

import (
	"fmt"
	"time"
)

// EntryKind says which direction the money went: a debt is money the owner
// owes someone, a credit is money owed to the owner.
type EntryKind string

const (
	KindDebt   EntryKind = "debt"
	KindCredit EntryKind = "credit"
)

func ParseEntryKind(s string) (EntryKind, error) {
	switch EntryKind(s) {
	case KindDebt, KindCredit:
		return EntryKind(s), nil
	}
	return "", fmt.Errorf("unknown entry kind %q", s)
}

// MoneyEntry is one debt/credit record. Amounts are integer cents.
type MoneyEntry struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	Kind         EntryKind `db:"kind" json:"kind"`
	Counterparty string    `db:"counterparty" json:"counterparty"`
	AmountCents  int64     `db:"amount_cents" json:"amount_cents"`
	Note         string    `db:"note" json:"note"`
	Settled      bool      `db:"settled" json:"settled"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// MoneySummary totals the owner's outstanding (unsettled) entries.
type MoneySummary struct {
	DebtCents   int64 `json:"debt_cents"`
	CreditCents int64 `json:"credit_cents"`
}

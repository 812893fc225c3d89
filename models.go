package main

import "github.com/shopspring/decimal"

// RawRecord is one transaction as it sits in the KV document. Key names, date
// formats and category labels vary between the producers that wrote them, so
// nothing is assumed about its shape.
type RawRecord map[string]any

// EntryKind classifies which direction a ledger entry moves the debt.
type EntryKind string

const (
	// KindTerima is money received: the counterparty paid something back.
	KindTerima EntryKind = "terima"
	// KindBerikan is money given out: the counterparty's debt grows.
	KindBerikan EntryKind = "berikan"
	// KindUnclassified means the category label matched neither vocabulary.
	KindUnclassified EntryKind = "unclassified"
)

// LedgerEntry is the canonical, normalized form of one raw record.
// Kind is decided once at normalization time and never re-derived from the
// amount; amounts are unsigned magnitudes, direction lives in Kind.
type LedgerEntry struct {
	Instant     *int64           `json:"instant"`      // ms since epoch, nil when the date was unparseable
	DisplayDate string           `json:"display_date"` // "-" when Instant is nil
	Note        string           `json:"note"`
	Kind        EntryKind        `json:"kind"`
	Amount      *decimal.Decimal `json:"amount"` // nil when the amount was missing or non-numeric
	Raw         RawRecord        `json:"raw"`    // kept for detail display only
}

// BalanceStatus is the three-way display band for a reconciled balance.
type BalanceStatus string

const (
	StatusOwing    BalanceStatus = "owing"    // counterparty still owes
	StatusSettled  BalanceStatus = "settled"  // balance is exactly zero
	StatusOverpaid BalanceStatus = "overpaid" // counterparty paid in excess
)

// LedgerSummary is the aggregate over one batch of entries. It is recomputed
// from scratch on every aggregation and never persisted.
type LedgerSummary struct {
	TotalTerima  decimal.Decimal `json:"total_terima"`
	TotalBerikan decimal.Decimal `json:"total_berikan"`
	Balance      decimal.Decimal `json:"balance"`
	Status       BalanceStatus   `json:"status"`
	// Owed is abs(Balance) while owing; Overpayment carries a positive balance
	// as a supplementary figure instead of a negative total owed.
	Owed        decimal.Decimal `json:"owed"`
	Overpayment decimal.Decimal `json:"overpayment"`
}

// Profile identifies whose ledger is being viewed.
type Profile struct {
	Nama  string `json:"nama"`
	Nomor string `json:"nomor"`
}

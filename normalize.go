package main

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeRecord converts one raw record into a canonical ledger entry.
// No field is required: every resolution degrades to its sentinel instead of
// failing, so one malformed record can never poison a batch.
func normalizeRecord(raw RawRecord) LedgerEntry {
	entry := LedgerEntry{
		Amount:      coerceAmount(pickField(raw, amountKeys, nil)),
		Kind:        classifyKind(asString(pickField(raw, kindKeys, ""))),
		Note:        strings.TrimSpace(asString(pickField(raw, noteKeys, ""))),
		DisplayDate: "-",
		Raw:         raw,
	}

	if ms, ok := parseInstant(pickField(raw, dateKeys, nil)); ok {
		entry.Instant = &ms
		entry.DisplayDate = dateLabel(ms)
	}

	return entry
}

// normalizeBatch maps a whole raw batch to canonical entries, preserving order.
func normalizeBatch(raws []RawRecord) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(raws))
	for _, raw := range raws {
		entries = append(entries, normalizeRecord(raw))
	}
	return entries
}

// coerceAmount turns a raw amount value into a decimal magnitude. JSON numbers
// and numeric strings are accepted; anything else yields the nil sentinel.
func coerceAmount(v any) *decimal.Decimal {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		d := decimal.NewFromFloat(t)
		return &d
	case int:
		d := decimal.NewFromInt(int64(t))
		return &d
	case int64:
		d := decimal.NewFromInt(t)
		return &d
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return nil
		}
		return &d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}

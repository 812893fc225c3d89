package main

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// aggregateEntries sorts a batch of canonical entries for display and computes
// the reconciled totals. The input slice is never mutated; calling this twice
// on the same batch yields identical results.
//
// Ordering: most recent first. Entries with an unparseable date sort as the
// oldest possible, so they sink to the bottom. Equal instants keep their
// original relative order (stable, no secondary key).
//
// Totals: terima sums Credit amounts; berikan sums Debit amounts plus
// Unclassified entries that carry a numeric amount (an unacknowledged debt is
// assumed to still be owed). Entries without a numeric amount contribute
// nothing but stay in the list.
func aggregateEntries(entries []LedgerEntry) ([]LedgerEntry, LedgerSummary) {
	sorted := make([]LedgerEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sortInstant(sorted[i]) > sortInstant(sorted[j])
	})

	totalTerima := decimal.Zero
	totalBerikan := decimal.Zero
	for _, e := range sorted {
		if e.Amount == nil {
			continue
		}
		switch e.Kind {
		case KindTerima:
			totalTerima = totalTerima.Add(*e.Amount)
		case KindBerikan, KindUnclassified:
			totalBerikan = totalBerikan.Add(*e.Amount)
		}
	}

	balance := totalTerima.Sub(totalBerikan)
	summary := LedgerSummary{
		TotalTerima:  totalTerima,
		TotalBerikan: totalBerikan,
		Balance:      balance,
		Status:       StatusSettled,
		Owed:         decimal.Zero,
		Overpayment:  decimal.Zero,
	}

	// Positive balance is overpayment, shown as a supplementary figure rather
	// than a negative amount owed.
	switch {
	case balance.IsNegative():
		summary.Status = StatusOwing
		summary.Owed = balance.Abs()
	case balance.IsPositive():
		summary.Status = StatusOverpaid
		summary.Overpayment = balance
	}

	return sorted, summary
}

func sortInstant(e LedgerEntry) int64 {
	if e.Instant == nil {
		return math.MinInt64
	}
	return *e.Instant
}

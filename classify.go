package main

import "strings"

// The two category vocabularies. They must never overlap; classify_test
// asserts the disjointness.
var (
	terimaLabels = map[string]struct{}{
		"terima":  {},
		"bayar":   {},
		"payment": {},
		"kredit":  {},
		"masuk":   {},
	}
	berikanLabels = map[string]struct{}{
		"berikan": {},
		"hutang":  {},
		"debit":   {},
		"keluar":  {},
		"pinjam":  {},
	}
)

// classifyKind maps a raw category label to an entry kind, case-insensitively.
// Labels outside both vocabularies (including empty) are Unclassified.
func classifyKind(label string) EntryKind {
	l := strings.ToLower(strings.TrimSpace(label))
	if _, ok := terimaLabels[l]; ok {
		return KindTerima
	}
	if _, ok := berikanLabels[l]; ok {
		return KindBerikan
	}
	return KindUnclassified
}

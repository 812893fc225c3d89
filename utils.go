package main

import (
	"regexp"
	"time"
)

var nonDigitsRe = regexp.MustCompile(`[^\d]`)

// Keys a stored document may use for the owner's display name.
var profileNameKeys = []string{"nama", "name", "username"}

// normalizePhone reduces a raw WhatsApp number to the canonical identity:
// digits only, must start with "08", at least 9 digits. Returns "" when the
// input cannot be a valid identity.
func normalizePhone(raw string) string {
	digits := nonDigitsRe.ReplaceAllString(raw, "")
	if len(digits) < 9 {
		return ""
	}
	if digits[:2] != "08" {
		return ""
	}
	return digits
}

// kvKey addresses a ledger document for a validated identity.
func kvKey(wa string) string {
	return "wa:" + wa
}

// transactionsOf extracts the raw transaction batch from a stored document.
// Missing or non-array transactions mean an empty ledger, never a failure.
func transactionsOf(doc map[string]any) []RawRecord {
	list, ok := doc["transactions"].([]any)
	if !ok {
		return nil
	}

	records := make([]RawRecord, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, RawRecord(m))
		}
	}
	return records
}

// profileOf builds the display profile for a document, falling back to the
// identity itself when no name field is present.
func profileOf(doc map[string]any, wa string) Profile {
	nama := asString(pickField(RawRecord(doc), profileNameKeys, ""))
	if nama == "" {
		nama = wa
	}
	return Profile{Nama: nama, Nomor: wa}
}

// publicProjection reduces a stored document to the fields safe to expose on
// the unauthenticated endpoint. Arbitrary fields are never echoed back.
func publicProjection(doc map[string]any) map[string]any {
	out := make(map[string]any, 4)
	for _, k := range []string{"nama", "nomor", "updatedAt", "transactions"} {
		if v, ok := doc[k]; ok {
			out[k] = v
		}
	}
	return out
}

// stampDocument applies the write-time stamps: the validated identity, a fresh
// updatedAt in epoch milliseconds, and the schema version unless the caller
// already set one.
func stampDocument(doc map[string]any, wa string, schemaVersion int, now time.Time) {
	doc["nomor"] = wa
	doc["updatedAt"] = now.UnixMilli()
	if _, ok := doc["schema"]; !ok {
		doc["schema"] = schemaVersion
	}
}

package main

import "strconv"

// Field alias tables. Different writers used different key names for the same
// logical field; first present non-empty candidate wins.
var (
	amountKeys = []string{"amount", "nominal", "nilai"}
	kindKeys   = []string{"type", "jenis", "kategori"}
	noteKeys   = []string{"note", "keterangan", "nama", "by", "from"}
	dateKeys   = []string{"ts", "time", "createdAt", "date", "tanggal"}
)

// pickField returns the first candidate key whose value is present, non-nil and
// not an empty string. Absence is expected, not an error.
func pickField(record RawRecord, keys []string, fallback any) any {
	for _, k := range keys {
		v, ok := record[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return fallback
}

// asString renders a raw field value as text for note and label fields.
// Non-scalar values render as empty rather than leaking Go syntax into display.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

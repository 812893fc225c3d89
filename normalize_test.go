package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecord(t *testing.T) {
	t.Run("well formed record", func(t *testing.T) {
		entry := normalizeRecord(RawRecord{
			"amount": 100000,
			"type":   "bayar",
			"note":   "  cicilan pertama  ",
			"ts":     "2024-01-10",
		})

		require.NotNil(t, entry.Amount)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, KindTerima, entry.Kind)
		assert.Equal(t, "cicilan pertama", entry.Note)
		require.NotNil(t, entry.Instant)
		assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local).UnixMilli(), *entry.Instant)
		assert.Equal(t, "10 Jan 2024", entry.DisplayDate)
	})

	t.Run("alias keys resolve", func(t *testing.T) {
		entry := normalizeRecord(RawRecord{
			"nominal":    float64(50000),
			"jenis":      "PINJAM",
			"keterangan": "modal warung",
			"tanggal":    "15 Agustus 2024",
		})

		require.NotNil(t, entry.Amount)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, KindBerikan, entry.Kind)
		assert.Equal(t, "modal warung", entry.Note)
		assert.Equal(t, "15 Agu 2024", entry.DisplayDate)
	})

	t.Run("empty record degrades to sentinels", func(t *testing.T) {
		entry := normalizeRecord(RawRecord{})

		assert.Nil(t, entry.Amount)
		assert.Equal(t, KindUnclassified, entry.Kind)
		assert.Equal(t, "", entry.Note)
		assert.Nil(t, entry.Instant)
		assert.Equal(t, "-", entry.DisplayDate)
	})

	t.Run("malformed fields never panic", func(t *testing.T) {
		entry := normalizeRecord(RawRecord{
			"amount": []any{"not", "a", "number"},
			"type":   map[string]any{"nested": true},
			"note":   12345,
			"ts":     "kapan-kapan",
		})

		assert.Nil(t, entry.Amount)
		assert.Equal(t, KindUnclassified, entry.Kind)
		assert.Equal(t, "12345", entry.Note)
		assert.Nil(t, entry.Instant)
		assert.Equal(t, "-", entry.DisplayDate)
	})

	t.Run("numeric string amount", func(t *testing.T) {
		entry := normalizeRecord(RawRecord{"amount": "250000"})
		require.NotNil(t, entry.Amount)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(250000)))
	})

	t.Run("non-numeric string amount is the sentinel", func(t *testing.T) {
		entry := normalizeRecord(RawRecord{"amount": "dua ratus"})
		assert.Nil(t, entry.Amount)
	})

	t.Run("raw record is retained", func(t *testing.T) {
		raw := RawRecord{"amount": 10, "detail": "warisan"}
		entry := normalizeRecord(raw)
		assert.Equal(t, raw, entry.Raw)
	})
}

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  *int64
	}{
		{"float", float64(12500), int64Ptr(12500)},
		{"int", 300, int64Ptr(300)},
		{"int64", int64(400), int64Ptr(400)},
		{"json number", json.Number("99000"), int64Ptr(99000)},
		{"string", "1500", int64Ptr(1500)},
		{"padded string", " 1500 ", int64Ptr(1500)},
		{"bad string", "seribu", nil},
		{"bad json number", json.Number("abc"), nil},
		{"nil", nil, nil},
		{"bool", true, nil},
		{"slice", []any{1}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := coerceAmount(tc.input)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.NewFromInt(*tc.want)), "got %s", got)
		})
	}
}

func TestNormalizeBatch(t *testing.T) {
	t.Run("preserves order and count", func(t *testing.T) {
		entries := normalizeBatch([]RawRecord{
			{"note": "pertama"},
			{"note": "kedua"},
		})
		require.Len(t, entries, 2)
		assert.Equal(t, "pertama", entries[0].Note)
		assert.Equal(t, "kedua", entries[1].Note)
	})

	t.Run("nil batch yields empty slice", func(t *testing.T) {
		entries := normalizeBatch(nil)
		assert.NotNil(t, entries)
		assert.Len(t, entries, 0)
	})

	t.Run("one bad record does not poison the batch", func(t *testing.T) {
		entries := normalizeBatch([]RawRecord{
			{"amount": "???", "ts": true, "type": 9},
			{"amount": 5000, "type": "terima", "ts": "2024-02-01"},
		})
		require.Len(t, entries, 2)
		assert.Nil(t, entries[0].Amount)
		require.NotNil(t, entries[1].Amount)
		assert.Equal(t, KindTerima, entries[1].Kind)
	})
}

func int64Ptr(v int64) *int64 { return &v }

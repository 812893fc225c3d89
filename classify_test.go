package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKind(t *testing.T) {
	t.Run("terima vocabulary", func(t *testing.T) {
		for _, label := range []string{"terima", "bayar", "payment", "kredit", "masuk"} {
			assert.Equal(t, KindTerima, classifyKind(label), "label %q", label)
		}
	})

	t.Run("berikan vocabulary", func(t *testing.T) {
		for _, label := range []string{"berikan", "hutang", "debit", "keluar", "pinjam"} {
			assert.Equal(t, KindBerikan, classifyKind(label), "label %q", label)
		}
	})

	t.Run("case-insensitive", func(t *testing.T) {
		assert.Equal(t, KindTerima, classifyKind("BAYAR"))
		assert.Equal(t, KindBerikan, classifyKind("Pinjam"))
		assert.Equal(t, KindTerima, classifyKind("  payment  "))
	})

	t.Run("unknown labels are unclassified", func(t *testing.T) {
		for _, label := range []string{"", "unknown", "transfer", "cicilan", "bayar hutang"} {
			assert.Equal(t, KindUnclassified, classifyKind(label), "label %q", label)
		}
	})

	t.Run("vocabularies never overlap", func(t *testing.T) {
		for label := range terimaLabels {
			_, both := berikanLabels[label]
			assert.False(t, both, "label %q claimed by both vocabularies", label)
		}
	})
}

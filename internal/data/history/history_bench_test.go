package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func BenchmarkStore_Record(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "history.db"), 0)
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run := Run{
			StartedAt:  base.Add(time.Duration(i) * time.Second),
			FileCount:  250 + (i % 11),
			Violations: i % 17,
			Codes:      map[string]int{"D100": i % 3, "D401": i % 5, "D205": 1},
		}
		if _, err := store.Record(ctx, run); err != nil {
			b.Fatalf("record run: %v", err)
		}
	}
}

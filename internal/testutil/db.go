package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/Skotchmaster/orders/internal/db"
)

// MemoryDSN is a private in-memory sqlite store with foreign keys enforced.
const MemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// NewDB opens a fresh migrated in-memory store that is closed when t ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	store, err := db.Open(context.Background(), MemoryDSN)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	if err := db.Migrate(store); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close(store)
	})
	return store
}

package testutil

import (
	"testing"

	"go.uber.org/zap"

	"github.com/tpham/study-tracker/internal/store"
)

// NewTestGateway creates an in-memory SQLiteGateway with all migrations
// applied. It automatically closes the gateway when the test completes.
func NewTestGateway(t *testing.T) *store.SQLiteGateway {
	t.Helper()

	g, err := store.NewSQLiteGateway(":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("creating test gateway: %v", err)
	}

	t.Cleanup(func() {
		if err := g.Close(); err != nil {
			t.Errorf("closing test gateway: %v", err)
		}
	})

	return g
}

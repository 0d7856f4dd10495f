// Package integrationtest provides backend helpers used in integration tests.
package integrationtest

import (
	"context"
	"testing"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/storage"
)

// SetupBackend returns an in-memory backend with the schema applied.
// The test owns it for its lifetime; it is closed on cleanup.
func SetupBackend(t *testing.T) storage.Backend {
	t.Helper()

	ctx := context.Background()

	backend, err := storage.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf(`storage.OpenSQLite(ctx, ":memory:") returned error: %v`, err)
	}

	t.Cleanup(func() { backend.Close() })

	if err := storage.EnsureSchema(ctx, backend); err != nil {
		t.Fatalf("storage.EnsureSchema(ctx, backend) returned error: %v", err)
	}

	return backend
}

// Currencies returns the policy table shared by the integration tests.
func Currencies() domain.Currencies {
	return domain.Currencies{
		"money": {
			Type:            "money",
			InitialBalance:  100,
			TransferAllowed: true,
			TransferTaxRate: 0.05,
		},
		"gems": {
			Type:           "gems",
			MinimumBalance: -50,
		},
	}
}

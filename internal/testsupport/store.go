package testsupport

import (
	"testing"

	"github.com/AHSpire/StarSound/internal/config"
	"github.com/AHSpire/StarSound/internal/state"
)

// MustOpenLedger opens a state.Ledger for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *state.Ledger {
	t.Helper()

	ledger, err := state.OpenLedger(cfg.Paths.WorkspaceDir)
	if err != nil {
		t.Fatalf("state.OpenLedger: %v", err)
	}
	t.Cleanup(func() {
		ledger.Close()
	})
	return ledger
}

// Package state persists StarSound's three durability tiers: the SQLite
// job ledger in the workspace, named project snapshots as JSON files,
// and the small preferences file remembering the last used inputs.
package state

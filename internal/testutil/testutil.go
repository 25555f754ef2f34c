// Package testutil provides shared test helpers for setting up history
// databases and term lists.
package testutil

import (
	"fmt"
	"testing"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/history"
)

// TestHistory opens an in-memory history database that is automatically
// closed when the test ends.
func TestHistory(t *testing.T) *history.DB {
	t.Helper()
	db, err := history.Open(history.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Terms returns n distinct non-empty terms.
func Terms(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("term %d", i+1)
	}
	return out
}

package repo_test

import (
	"testing"

	"github.com/pbaches/stockwatch/internal/repo"
	"github.com/pbaches/stockwatch/internal/repo/memory"
	pg "github.com/pbaches/stockwatch/internal/repo/postgres"
)

// Compile-time interface satisfaction checks.
// Using external test package avoids import cycle.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.AlertStore = memory.New()
	var _ repo.AlertStore = (*pg.Store)(nil)
}

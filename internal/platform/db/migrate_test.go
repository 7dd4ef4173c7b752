package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/hr":   "pgx5://u:p@localhost:5432/hr",
		"postgresql://u:p@localhost:5432/hr": "pgx5://u:p@localhost:5432/hr",
		"pgx5://already":                     "pgx5://already",
	}
	for in, want := range tests {
		if got := migrationURL(in); got != want {
			t.Fatalf("migrationURL(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatal("expected embedded migrations")
	}
	for name := range ups {
		if !downs[name] {
			t.Fatalf("migration %s has no down file", name)
		}
	}

	latest, err := latestVersion()
	if err != nil {
		t.Fatalf("latest version: %v", err)
	}
	if int(latest) != len(ups) {
		t.Fatalf("expected latest version %d, got %d", len(ups), latest)
	}
}

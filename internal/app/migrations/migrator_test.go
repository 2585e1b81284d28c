package migrations

import (
	"testing"
	"testing/fstest"
)

func TestPendingFilesOrder(t *testing.T) {
	m := &Migrator{
		files: fstest.MapFS{
			"sql/002_more.sql":        {Data: []byte("SELECT 2;")},
			"sql/001_client_state.sql": {Data: []byte("SELECT 1;")},
			"sql/README.md":            {Data: []byte("notes")},
		},
		dir: "sql",
	}

	files, err := m.pendingFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0] != "001_client_state.sql" || files[1] != "002_more.sql" {
		t.Fatalf("unexpected order %v", files)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files, err := NewMigrator(nil).pendingFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) == 0 || migrationVersion(files[0]) != "001" {
		t.Fatalf("expected embedded client_state migration, got %v", files)
	}
}

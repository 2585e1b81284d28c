package repositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exerciseRepository(t *testing.T, repo StateRepository) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, KeyDarkMode); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := repo.Set(ctx, KeyDarkMode, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if value, ok, err := repo.Get(ctx, KeyDarkMode); err != nil || !ok || value != "true" {
		t.Fatalf("expected stored value, got %q ok=%v err=%v", value, ok, err)
	}
	if err := repo.Set(ctx, KeyDarkMode, "false"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if value, _, _ := repo.Get(ctx, KeyDarkMode); value != "false" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
	if err := repo.Remove(ctx, KeyDarkMode); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, KeyDarkMode); err != nil {
		t.Fatalf("second remove must be a no-op: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, KeyDarkMode); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryStateRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryStateRepository())
}

func TestFileStateRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	exerciseRepository(t, NewFileStateRepository(path))
}

func TestFileStateRepositorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.yaml")

	first := NewFileStateRepository(path)
	if err := first.Set(ctx, KeyCurrentUser, `{"id":"u1","email":"a@b.com"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := NewFileStateRepository(path)
	value, ok, err := second.Get(ctx, KeyCurrentUser)
	if err != nil || !ok || !strings.Contains(value, `"u1"`) {
		t.Fatalf("expected persisted user, got %q ok=%v err=%v", value, ok, err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestFileStateRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("- not\n- a map\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := NewFileStateRepository(path).Get(context.Background(), KeyDarkMode); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}

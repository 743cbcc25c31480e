package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReloadSchemas(t *testing.T) {
	// Embedded defaults only.
	if err := reloadSchemas(""); err != nil {
		t.Errorf("reloadSchemas(\"\") = %v", err)
	}

	// Empty override dir falls back to the embedded defaults per kind.
	if err := reloadSchemas(t.TempDir()); err != nil {
		t.Errorf("reloadSchemas(empty dir) = %v", err)
	}
}

func TestReloadSchemasBrokenOverride(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "account.yaml")
	if err := os.WriteFile(bad, []byte("columns: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := reloadSchemas(dir); err == nil {
		t.Error("expected error for unparseable schema override")
	}
}

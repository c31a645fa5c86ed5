package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	defs := DefaultCatalog()
	if len(defs) == 0 {
		t.Fatal("empty default catalog")
	}

	urls := make(map[string]bool)
	for _, def := range defs {
		if def.Name == "" || def.URL == "" {
			t.Errorf("incomplete entry: %+v", def)
		}
		if urls[def.URL] {
			t.Errorf("duplicate URL %s", def.URL)
		}
		urls[def.URL] = true

		switch def.Category {
		case CategoryGrants, CategoryProtocol, CategoryGovernance, CategoryEcosystem:
		default:
			t.Errorf("entry %s has unknown category %q", def.Name, def.Category)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	raw := `- name: Test Grants
  kind: html
  url: https://example.com/grants
  category: grants
  extractor: paragraph
  enabled: true
- name: Test Forum
  kind: html
  url: https://example.com/forum
  category: governance
  enabled: false
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	defs, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("entries = %d, want 2", len(defs))
	}

	first := defs[0]
	if first.Name != "Test Grants" || first.Category != CategoryGrants || first.Extractor != "paragraph" {
		t.Errorf("first entry = %+v", first)
	}
	if !first.Enabled {
		t.Error("first entry should be enabled")
	}
	if defs[1].Enabled {
		t.Error("second entry should be disabled")
	}
	if defs[1].Extractor != "" {
		t.Errorf("second entry extractor = %q, want empty", defs[1].Extractor)
	}
}

func TestLoadCatalog_MissingRequiredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	raw := `- name: No URL
  category: grants
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Error("entry without url accepted")
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

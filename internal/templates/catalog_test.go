package templates

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuiltinCatalog(t *testing.T) {
	c := NewCatalog()
	items := c.Items()
	if len(items) != 7 {
		t.Fatalf("builtin templates = %d, want 7", len(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if it.ID == "" || it.Name == "" {
			t.Errorf("incomplete entry: %+v", it)
		}
		if seen[it.ID] {
			t.Errorf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestGet_ReturnsDeepCopy(t *testing.T) {
	c := NewCatalog()
	first := c.Get("sprint-planning")
	if first == nil {
		t.Fatal("sprint-planning not found")
	}
	first.Agenda.Topics[0].Name = "mutated"

	second := c.Get("sprint-planning")
	if second.Agenda.Topics[0].Name == "mutated" {
		t.Error("catalog entry mutated through a returned copy")
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCatalog()
	if it := c.Get("no-such-template"); it != nil {
		t.Errorf("got %+v, want nil", it)
	}
}

const catalogYAML = `templates:
  - id: custom-sync
    name: Custom Sync
    agenda:
      opening: Short opener.
      topics:
        - name: Topic one
          duration: 10 min
      wrap_up: Short closer.
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog()
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].ID != "custom-sync" {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Agenda.WrapUp != "Short closer." {
		t.Errorf("wrap_up = %q", items[0].Agenda.WrapUp)
	}
}

func TestLoadFile_RejectsEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	if err := os.WriteFile(path, []byte("templates: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog()
	if err := c.LoadFile(path); err == nil {
		t.Fatal("empty catalog should fail to load")
	}
	if len(c.Items()) != 7 {
		t.Error("failed load must keep the previous catalog")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog()
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Watch(ctx, path, logger)
	}()

	// Give the watcher a moment to register, then rewrite the catalog.
	time.Sleep(100 * time.Millisecond)
	updated := `templates:
  - id: replaced
    name: Replaced
    agenda:
      opening: New opener.
      topics: []
      wrap_up: New closer.
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		items := c.Items()
		if len(items) == 1 && items[0].ID == "replaced" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("catalog not reloaded, items = %+v", items)
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

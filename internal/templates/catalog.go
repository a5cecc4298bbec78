// Package templates provides the static agenda template catalog, with an
// optional YAML catalog file that hot-reloads on change.
package templates

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/models"
)

// Item is one catalog entry.
type Item struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Agenda models.Agenda `json:"agenda" yaml:"agenda"`
}

// Catalog holds the current template set. Reads return deep copies so
// callers can freely edit a selected template as a draft.
type Catalog struct {
	mu    sync.RWMutex
	items []Item
}

// NewCatalog returns a catalog seeded with the built-in templates.
func NewCatalog() *Catalog {
	return &Catalog{items: builtin()}
}

// LoadFile replaces the catalog with the templates from a YAML file.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("templates: read catalog: %w", err)
	}

	var doc struct {
		Templates []Item `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("templates: parse catalog: %w", err)
	}
	if len(doc.Templates) == 0 {
		return fmt.Errorf("templates: no templates in %s", path)
	}
	for _, it := range doc.Templates {
		if it.ID == "" || it.Name == "" {
			return fmt.Errorf("templates: entry missing id or name in %s", path)
		}
	}

	c.mu.Lock()
	c.items = doc.Templates
	c.mu.Unlock()
	return nil
}

// Items returns deep copies of all catalog entries.
func (c *Catalog) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = Item{ID: it.ID, Name: it.Name, Agenda: it.Agenda.Clone()}
	}
	return out
}

// Get returns a deep copy of the entry with the given id, or nil.
func (c *Catalog) Get(id string) *Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ID == id {
			return &Item{ID: it.ID, Name: it.Name, Agenda: it.Agenda.Clone()}
		}
	}
	return nil
}

// Watch reloads the catalog whenever the file changes, until ctx is
// cancelled. The parent directory is watched because editors typically
// replace files via rename.
func (c *Catalog) Watch(ctx context.Context, path string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	logger.Info("templates: watching catalog", slog.String("path", path))

	for {
		select {
		case <-ctx.Done():
			logger.Info("templates: watcher stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := c.LoadFile(path); err != nil {
				logger.Warn("templates: reload failed", slog.String("error", err.Error()))
			} else {
				logger.Info("templates: catalog reloaded", slog.String("path", path))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("templates: watcher error", slog.String("error", err.Error()))
		}
	}
}

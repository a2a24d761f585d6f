package container

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/routing"
)

// Save serializes every tracked route's key/value map to a JSON
// document at path, creating parent directories as needed. Entry
// metadata (timestamps, access counts) is not part of the durable
// contract and is not persisted.
func (m *Manager) Save(path string) error {
	doc := make(map[string]map[string]any, len(m.containers))
	for routeKey, c := range m.containers {
		doc[routeKey] = c.Items()
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save containers: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save containers: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("save containers: %w", err)
	}

	m.log.Info("container data saved", "path", path, "routes", len(doc))
	return nil
}

// Load restores container data from a JSON document by re-applying Set
// for every entry, which refreshes timestamps and access counts rather
// than restoring them. A missing or malformed file is logged and
// treated as a no-op load; Load never fails.
func (m *Manager) Load(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		m.log.Warn("container load skipped", "path", path, "error", err)
		return
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		m.log.Warn("container load skipped: malformed document", "path", path, "error", err)
		return
	}

	for routeKey, values := range doc {
		c := m.Container(routing.Key(routeKey))
		for k, v := range values {
			c.Set(k, v)
		}
	}
	m.log.Info("container data loaded", "path", path, "routes", len(doc))
}

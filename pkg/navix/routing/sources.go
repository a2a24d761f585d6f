package routing

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Table is a named route table loaded from a configuration file: a
// mapping from a symbolic route name to its route key. It is the
// file-driven counterpart of declaring Key constants in code.
type Table map[string]Key

// Key returns the route key for a symbolic name.
func (t Table) Key(name string) (Key, bool) {
	k, ok := t[name]
	return k, ok
}

// Names returns all symbolic names in the table, in map order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	return names
}

// FromJSON loads a route table from a JSON document mapping names to
// route keys:
//
//	{"asset_browser": "asset.browser", "asset_detail": "asset.detail"}
func FromJSON(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	var routes map[string]string
	if err := json.Unmarshal(raw, &routes); err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	return toTable(routes), nil
}

// FromTOML loads a route table from a TOML document of name = "key"
// pairs.
func FromTOML(path string) (Table, error) {
	var routes map[string]string
	if _, err := toml.DecodeFile(path, &routes); err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	return toTable(routes), nil
}

// FromYAML loads a route table from a YAML document of name: key pairs.
func FromYAML(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	var routes map[string]string
	if err := yaml.Unmarshal(raw, &routes); err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	return toTable(routes), nil
}

// FromCSV loads a route table from a CSV file with a header row. The
// key and value columns default to "route_name" and "route_path".
func FromCSV(path, keyCol, valueCol string) (Table, error) {
	if keyCol == "" {
		keyCol = "route_name"
	}
	if valueCol == "" {
		valueCol = "route_path"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("route source %q: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	keyIdx, valueIdx := -1, -1
	for i, col := range records[0] {
		switch col {
		case keyCol:
			keyIdx = i
		case valueCol:
			valueIdx = i
		}
	}
	if keyIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("route source %q: missing column %q or %q", path, keyCol, valueCol)
	}

	table := make(Table, len(records)-1)
	for _, row := range records[1:] {
		if keyIdx >= len(row) || valueIdx >= len(row) {
			continue
		}
		table[row[keyIdx]] = Key(row[valueIdx])
	}
	return table, nil
}

func toTable(routes map[string]string) Table {
	table := make(Table, len(routes))
	for name, key := range routes {
		table[name] = Key(key)
	}
	return table
}

package ranking

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/draftboard/go/internal/models"
)

//go:embed ktc_rookies.yaml
var defaultTableYAML []byte

// Entry is one named player in a ranking table.
type Entry struct {
	Name     string          `yaml:"name"`
	Position models.Position `yaml:"position"`
}

// Table is an ordered external rookie ranking. An entry's rank is its 1-based index.
type Table struct {
	Source  string  `yaml:"source"`
	Season  string  `yaml:"season"`
	Players []Entry `yaml:"players"`
}

// DefaultTable returns the built-in rookie ranking table.
func DefaultTable() *Table {
	t, err := ParseTable(defaultTableYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded ranking table: %v", err))
	}
	return t
}

// LoadTable reads a ranking table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking table %s: %w", path, err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ranking table %s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a YAML ranking table.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	for i, e := range t.Players {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("entry %d has no name", i+1)
		}
		if !e.Position.IsSkill() {
			return nil, fmt.Errorf("entry %d (%s) has unsupported position %q", i+1, e.Name, e.Position)
		}
	}
	return &t, nil
}

// Len returns the number of ranked players.
func (t *Table) Len() int {
	return len(t.Players)
}

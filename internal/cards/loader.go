package cards

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SetMapping maps a full set name ("Burning Shadows") to its decklist
// abbreviation ("BUS").
type SetMapping map[string]string

// Abbr returns the abbreviation for a full set name.
func (m SetMapping) Abbr(name string) (string, bool) {
	abbr, ok := m[name]
	return abbr, ok && abbr != ""
}

type setMappingRow struct {
	Name string `yaml:"name" json:"name"`
	Abbr string `yaml:"abbr" json:"abbr"`
}

// LoadSetMapping reads the set name table. YAML and JSON files hold a list
// of {name, abbr}; CSV files need a header with "name" and "abbr" columns.
func LoadSetMapping(path string) (SetMapping, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return loadSetMappingCSV(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read set mapping %s", path)
	}
	if ext == ".json" {
		var rows []setMappingRow
		if err := json.Unmarshal(b, &rows); err != nil {
			return nil, errors.Wrap(err, "failed to decode set mapping")
		}
		return newSetMapping(rows), nil
	}
	return ParseSetMapping(b)
}

// ParseSetMapping decodes a YAML (or JSON) list of {name, abbr}.
func ParseSetMapping(b []byte) (SetMapping, error) {
	var rows []setMappingRow
	if err := yaml.Unmarshal(b, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode set mapping")
	}
	return newSetMapping(rows), nil
}

func newSetMapping(rows []setMappingRow) SetMapping {
	m := make(SetMapping, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		m[name] = strings.TrimSpace(r.Abbr)
	}
	return m
}

func loadSetMappingCSV(path string) (SetMapping, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open set mapping %s", path)
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read csv %s", path)
	}
	if len(rows) < 1 {
		return nil, errors.Errorf("csv %s has no header", path)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.Errorf("csv %s has no name column", path)
	}
	if _, ok := cols["abbr"]; !ok {
		return nil, errors.Errorf("csv %s has no abbr column", path)
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	m := SetMapping{}
	for _, row := range rows[1:] {
		name := get(row, "name")
		if name == "" {
			continue
		}
		m[name] = get(row, "abbr")
	}
	return m, nil
}

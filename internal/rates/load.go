package rates

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads and validates a rate table from a YAML file.
func Load(path string) (*Table, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load rate table %s: %w", path, err)
	}
	var table Table
	if err := k.Unmarshal("", &table); err != nil {
		return nil, fmt.Errorf("parse rate table %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

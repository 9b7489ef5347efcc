package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/model"
)

// readValues decodes a flat value map from a JSON or YAML file. The format
// follows the extension; anything that is not .yaml or .yml is read as JSON.
func readValues(path string) (model.Values, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		values := make(model.Values, len(raw))
		for name, item := range raw {
			value, err := model.ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("decode %s: field %q: %w", path, name, err)
			}
			values[name] = value
		}
		return values, nil
	default:
		var values model.Values
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return values, nil
	}
}

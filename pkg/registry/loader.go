package registry

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
)

type documentFile struct {
	Key         string                 `json:"key" yaml:"key"`
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description" yaml:"description"`
	Fields      []model.Field          `json:"fields" yaml:"fields"`
	Aggregate   []schema.AggregateRule `json:"aggregate" yaml:"aggregate"`
}

// LoadFS walks fsys and registers one schema per JSON or YAML file. Files
// are visited in lexical order. Files without a key take their base name.
// A file that fails to parse or check aborts the load.
func (r *Registry) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("registry: read %s: %w", name, err)
		}
		s, err := ParseSchema(name, data)
		if err != nil {
			return err
		}
		return r.Register(s)
	})
}

// ParseSchema decodes a schema document. The format is picked from the file
// extension of name.
func ParseSchema(name string, data []byte) (*schema.Schema, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("registry: file %s is empty", name)
	}

	var doc documentFile
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("registry: parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("registry: parse %s: %w", name, err)
		}
	}

	key := strings.TrimSpace(doc.Key)
	if key == "" {
		base := path.Base(name)
		key = strings.TrimSuffix(base, path.Ext(base))
	}

	s := &schema.Schema{
		Key:         key,
		Title:       doc.Title,
		Description: doc.Description,
		Fields:      doc.Fields,
	}
	if len(doc.Aggregate) > 0 {
		refiner, err := schema.BuildRefiner(doc.Aggregate)
		if err != nil {
			return nil, fmt.Errorf("registry: %s: %w", name, err)
		}
		s.Validator = refiner
	}
	return s, nil
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

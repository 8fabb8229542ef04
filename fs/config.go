package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/wenku"
	"github.com/google/jsonschema-go/jsonschema"
)

// ResourceSchema returns the JSON schema of a configuration record.
func ResourceSchema() (*jsonschema.Schema, error) {
	return jsonschema.For[wenku.Resource](nil)
}

// Ensure ConfigLoader implements wenku.ResourceStore.
var _ wenku.ResourceStore = (*ConfigLoader)(nil)

// ConfigLoader reads configuration records, one JSON file per resource.
type ConfigLoader struct {
	dir    string
	schema *jsonschema.Resolved
}

// NewConfigLoader returns a loader for the records in dir.
func NewConfigLoader(dir string) (*ConfigLoader, error) {
	schema, err := ResourceSchema()
	if err != nil {
		return nil, err
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, err
	}
	return &ConfigLoader{dir: dir, schema: resolved}, nil
}

// LoadResources returns every record in the directory, ordered by file name.
// Returns EINVALID naming the file if a record fails validation and
// ECONFLICT if two records share an ID.
func (l *ConfigLoader) LoadResources(ctx context.Context) ([]*wenku.Resource, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wenku.Errorf(wenku.ENOTFOUND, "config directory %s not found", l.dir)
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	seen := make(map[string]string)
	resources := make([]*wenku.Resource, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := l.loadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, wenku.Errorf(wenku.ErrorCode(err), "%s: %s", name, wenku.ErrorMessage(err))
		}
		if prev, ok := seen[r.ID]; ok {
			return nil, wenku.Errorf(wenku.ECONFLICT, "%s: resource %s already defined in %s", name, r.ID, prev)
		}
		seen[r.ID] = name
		resources = append(resources, r)
	}
	return resources, nil
}

// FindResource returns the record with the given ID.
// Returns ENOTFOUND if no record has that ID.
func (l *ConfigLoader) FindResource(ctx context.Context, id string) (*wenku.Resource, error) {
	resources, err := l.LoadResources(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range resources {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, wenku.Errorf(wenku.ENOTFOUND, "resource %s not found", id)
}

// CreateResource writes r to <dir>/<id>.json.
// Returns ECONFLICT if the file already exists.
func (l *ConfigLoader) CreateResource(ctx context.Context, r *wenku.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	path := filepath.Join(l.dir, r.ID+".json")
	if _, err := os.Stat(path); err == nil {
		return wenku.Errorf(wenku.ECONFLICT, "%s already exists", path)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func (l *ConfigLoader) loadFile(path string) (*wenku.Resource, error) {
	var raw any
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	if err := l.schema.Validate(raw); err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "%s", err)
	}

	var r wenku.Resource
	if err := readJSON(path, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

package out

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cigbreak/internal/modules/clip/domain"
	clipout "cigbreak/internal/modules/clip/port/out"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Clips []domain.Clip `yaml:"clips"`
}

// YAMLCatalogStore reads the catalog from a YAML document. With an empty path
// it serves the catalog compiled into the binary.
type YAMLCatalogStore struct {
	path string
}

func NewEmbeddedCatalogStore() clipout.CatalogStore {
	return &YAMLCatalogStore{}
}

func NewFileCatalogStore(path string) clipout.CatalogStore {
	return &YAMLCatalogStore{path: path}
}

func (s *YAMLCatalogStore) Load(_ context.Context) ([]domain.Clip, error) {
	raw := defaultCatalog
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
		}
		raw = b
	}
	var doc catalogFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.Clips, nil
}

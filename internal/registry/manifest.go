package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a bundle directory: which namespace it provides,
// the schema version of its SQLite tables, and the database file name.
// Keeping this in YAML alongside the SQLite file lets a bundle directory
// self-describe without opening the database first.
type Manifest struct {
	Namespace     string `yaml:"namespace"`
	SchemaVersion int    `yaml:"schemaVersion"`
	Database      string `yaml:"database"`
}

func loadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("registry: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("registry: parse manifest: %w", err)
	}
	if m.Namespace == "" {
		return Manifest{}, fmt.Errorf("registry: manifest missing namespace")
	}
	if m.Database == "" {
		m.Database = "bundle.db"
	}
	return m, nil
}

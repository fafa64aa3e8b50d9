package colladaimport

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xle-project/scaffoldc/core/depval"
	"github.com/xle-project/scaffoldc/core/log"
)

// BindingConfig renames or suppresses one category of exporter-authored
// names (resource, constant, or vertex-semantic), mirroring
// ColladaConversion::BindingConfig's Rename/Suppress attribute groups
//.
type BindingConfig struct {
	Rename   map[string]string `yaml:"rename"`
	Suppress []string          `yaml:"suppress"`
}

// AsNative maps an exporter-authored name to its native binding, or
// returns it unchanged if no rename applies.
func (b BindingConfig) AsNative(exportName string) string {
	if native, ok := b.Rename[exportName]; ok {
		return native
	}
	return exportName
}

// IsSuppressed reports whether exportName is on the suppression list.
func (b BindingConfig) IsSuppressed(exportName string) bool {
	for _, s := range b.Suppress {
		if s == exportName {
			return true
		}
	}
	return false
}

// ImportConfiguration is colladaimport.dat's decoded form: the three
// binding categories ConversionConfig.cpp reads from its "Resources",
// "Constants" and "VertexSemantics" document elements.
type ImportConfiguration struct {
	Resources       BindingConfig `yaml:"resources"`
	Constants       BindingConfig `yaml:"constants"`
	VertexSemantics BindingConfig `yaml:"vertexSemantics"`
}

// LoadImportConfiguration reads and decodes path as YAML, returning the
// configuration plus a depval.FileSet watching it so a compile built
// against this sidecar can be invalidated when it is edited.
// The caller must Close the returned FileSet once the compile result is
// evicted.
func LoadImportConfiguration(ctx context.Context, path string) (*ImportConfiguration, *depval.FileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("colladaimport: reading %s: %w", path, err)
	}
	var cfg ImportConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("colladaimport: parsing %s: %w", path, err)
	}
	fs, err := depval.NewFileSet([]string{path})
	if err != nil {
		return nil, nil, fmt.Errorf("colladaimport: watching %s: %w", path, err)
	}
	log.From(ctx).With("path", path).Debugf("colladaimport: loaded import configuration")
	return &cfg, fs, nil
}
